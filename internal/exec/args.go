package exec

import (
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/vmerr"
)

// handleArg implements ARG: stores a procedure argument slot either from an
// immediate (sub 1) or from a register's current value (sub 2).
func handleArg(ctx *Context) error {
	sub, err := ctx.Args.ParseU8()
	if err != nil {
		return err
	}
	index, err := ctx.Args.ParseU32()
	if err != nil {
		return err
	}
	switch sub {
	case isa.ArgNum:
		v, err := ctx.Args.ParseU64()
		if err != nil {
			return err
		}
		ctx.State.SetArg(index, v)
		return nil
	case isa.ArgReg:
		reg, err := ctx.Args.ParseRegister()
		if err != nil {
			return err
		}
		v, err := ctx.Regs.GetGeneral(reg)
		if err != nil {
			return err
		}
		ctx.State.SetArg(index, v)
		return nil
	default:
		return &vmerr.InvalidSubOpcodeError{Main: uint16(isa.ARG), Sub: sub}
	}
}

// handleLarg implements LARG reg, index(u32): loads slot index (0 if unset)
// into reg.
func handleLarg(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	index, err := ctx.Args.ParseU32()
	if err != nil {
		return err
	}
	return ctx.Regs.SetGeneral(reg, ctx.State.GetArg(index))
}
