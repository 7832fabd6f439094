package exec

import (
	"encoding/binary"

	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/vmerr"
)

// readWidthValue reads an immediate sized to a register's declared width
// (the immediate-to-register addressing mode's "imm of dst's width").
func readWidthValue(ctx *Context, width int) (uint64, error) {
	switch width {
	case 1:
		v, err := ctx.Args.ParseU8()
		return uint64(v), err
	case 2:
		v, err := ctx.Args.ParseU16()
		return uint64(v), err
	case 4:
		v, err := ctx.Args.ParseU32()
		return uint64(v), err
	default:
		return ctx.Args.ParseU64()
	}
}

func writeWidthBytes(ctx *Context, addr uint64, width int, value uint64) error {
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(value))
	default:
		binary.LittleEndian.PutUint64(buf, value)
	}
	return ctx.Mem.Set(addrFrom(addr), buf)
}

func readWidthBytes(ctx *Context, addr uint64, width int) (uint64, error) {
	b, err := ctx.Mem.Get(addrFrom(addr), width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

// handleMov implements MOV's 12 addressing-mode sub-opcodes.
func handleMov(ctx *Context) error {
	sub, err := ctx.Args.ParseU8()
	if err != nil {
		return err
	}
	switch sub {
	case isa.MovReg2Reg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		src, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		v, err := ctx.Regs.GetGeneral(src)
		if err != nil {
			return err
		}
		return ctx.Regs.SetGeneral(dst, v)

	case isa.MovReg2Addr:
		addr, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		src, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		width, ok := regWidth(src)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: src}
		}
		v, err := ctx.Regs.GetGeneral(src)
		if err != nil {
			return err
		}
		return writeWidthBytes(ctx, addr, width, v)

	case isa.MovNum2Reg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		width, ok := regWidth(dst)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: dst}
		}
		imm, err := readWidthValue(ctx, width)
		if err != nil {
			return err
		}
		return ctx.Regs.SetGeneral(dst, imm)

	case isa.MovImm2SP:
		if _, err := ctx.Args.ParseRegister(); err != nil {
			return err
		}
		addr, err := ctx.Args.ParseAddress()
		if err != nil {
			return err
		}
		ctx.Regs.SetSP(addr)
		return nil

	case isa.MovReg2SP:
		if _, err := ctx.Args.ParseRegister(); err != nil {
			return err
		}
		src, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		v, err := ctx.Regs.GetGeneral(src)
		if err != nil {
			return err
		}
		ctx.Regs.SetSP(addrFrom(v))
		return nil

	case isa.MovDerefReg2Reg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		dstWidth, ok := regWidth(dst)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: dst}
		}
		addr, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		v, err := readWidthBytes(ctx, addr, dstWidth)
		if err != nil {
			return err
		}
		return ctx.Regs.SetGeneral(dst, v)

	case isa.MovSection2Reg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		hash, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		width, ok := regWidth(dst)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: dst}
		}
		if width != 8 {
			return &vmerr.AddressToNarrowRegisterError{Bytes: width}
		}
		proc, err := lookupProcedure(ctx.Sections, hash)
		if err != nil {
			return err
		}
		return ctx.Regs.SetGeneral(dst, proc.LoadStart.Raw())

	case isa.MovNum2DerefReg:
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		width, ok := regWidth(regAddr)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: regAddr}
		}
		imm, err := readWidthValue(ctx, width)
		if err != nil {
			return err
		}
		addr, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		return writeWidthBytes(ctx, addr, width, imm)

	case isa.MovNum2DerefRegOffset:
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		width, ok := regWidth(regAddr)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: regAddr}
		}
		imm, err := readWidthValue(ctx, width)
		if err != nil {
			return err
		}
		off, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		base, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		return writeWidthBytes(ctx, base+off, width, imm)

	case isa.MovReg2DerefRegOffset:
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		src, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		off, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		width, ok := regWidth(src)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: src}
		}
		v, err := ctx.Regs.GetGeneral(src)
		if err != nil {
			return err
		}
		base, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		return writeWidthBytes(ctx, base+off, width, v)

	case isa.MovDerefRegOffset2Reg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		off, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		dstWidth, ok := regWidth(dst)
		if !ok {
			return &vmerr.NonGeneralRegisterError{Register: dst}
		}
		base, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		v, err := readWidthBytes(ctx, base+off, dstWidth)
		if err != nil {
			return err
		}
		return ctx.Regs.SetGeneral(dst, v)

	case isa.MovSection2DerefRegOffset:
		regAddr, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		hash, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		off, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		base, err := ctx.Regs.GetGeneral(regAddr)
		if err != nil {
			return err
		}
		proc, err := lookupProcedure(ctx.Sections, hash)
		if err != nil {
			return err
		}
		return writeWidthBytes(ctx, base+off, 8, proc.LoadStart.Raw())

	default:
		return &vmerr.InvalidSubOpcodeError{Main: uint16(isa.MOV), Sub: sub}
	}
}

