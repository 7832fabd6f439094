package exec

import (
	"encoding/binary"

	"github.com/pantae35872/craion/internal/vmerr"
)

// handlePush implements PUSH reg: SP -= width(reg); mem[SP..SP+width] <- reg
// value, little-endian.
func handlePush(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	width, ok := regWidth(reg)
	if !ok {
		return &vmerr.NonGeneralRegisterError{Register: reg}
	}
	v, err := ctx.Regs.GetGeneral(reg)
	if err != nil {
		return err
	}
	sp := ctx.Regs.DecSP(uint64(width))
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	default:
		binary.LittleEndian.PutUint64(buf, v)
	}
	return ctx.Mem.Set(sp, buf)
}

// handlePop implements POP reg: reg <- mem[SP..SP+width] LE; SP += width(reg).
func handlePop(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	width, ok := regWidth(reg)
	if !ok {
		return &vmerr.NonGeneralRegisterError{Register: reg}
	}
	sp := ctx.Regs.GetSP()
	b, err := ctx.Mem.Get(sp, width)
	if err != nil {
		return err
	}
	var v uint64
	switch width {
	case 1:
		v = uint64(b[0])
	case 2:
		v = uint64(binary.LittleEndian.Uint16(b))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(b))
	default:
		v = binary.LittleEndian.Uint64(b)
	}
	ctx.Regs.IncSP(uint64(width))
	return ctx.Regs.SetGeneral(reg, v)
}

// handleEnter implements ENTER imm64: SP -= imm64; the size is pushed onto
// the saved-stack-size LIFO for the matching LEAVE.
func handleEnter(ctx *Context) error {
	n, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	ctx.Regs.DecSP(n)
	ctx.State.PushSavedSize(n)
	return nil
}

// handleLeave implements LEAVE: pop the saved size (0 if none) and grow SP
// back by that amount.
func handleLeave(ctx *Context) error {
	n := ctx.State.PopSavedSize()
	ctx.Regs.IncSP(n)
	return nil
}
