package exec

import (
	"math/bits"

	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/vmerr"
)

// setArithFlags applies the ADD/SUB/INC flag rule: Carry iff the
// operation overflowed/borrowed, Zero iff the result is 0, Negative iff bit
// 63 of the result is set.
func setArithFlags(ctx *Context, result uint64, carry bool) {
	ctx.Regs.SetCarry(carry)
	ctx.Regs.SetZero(result == 0)
	ctx.Regs.SetNegative(result&(1<<63) != 0)
}

// operand is the left-hand side of a reg/reg, reg/imm64, or SP/imm64
// arithmetic operation: a getter/setter pair plus the right-hand value.
type operand struct {
	get func() (uint64, error)
	set func(uint64) error
	rhs uint64
}

// parseArithOperands reads the sub-opcode and operands shared by ADD, SUB,
// MUL, and DIV: the sub-opcode picks reg+reg, reg+imm64, or SP+imm64.
func parseArithOperands(ctx *Context, opcode isa.Opcode) (operand, error) {
	sub, err := ctx.Args.ParseU8()
	if err != nil {
		return operand{}, err
	}
	switch sub {
	case isa.ArithRegWReg:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return operand{}, err
		}
		src, err := ctx.Args.ParseRegister()
		if err != nil {
			return operand{}, err
		}
		rhs, err := ctx.Regs.GetGeneral(src)
		if err != nil {
			return operand{}, err
		}
		return operand{
			get: func() (uint64, error) { return ctx.Regs.GetGeneral(dst) },
			set: func(v uint64) error { return ctx.Regs.SetGeneral(dst, v) },
			rhs: rhs,
		}, nil

	case isa.ArithRegWNum:
		dst, err := ctx.Args.ParseRegister()
		if err != nil {
			return operand{}, err
		}
		rhs, err := ctx.Args.ParseU64()
		if err != nil {
			return operand{}, err
		}
		return operand{
			get: func() (uint64, error) { return ctx.Regs.GetGeneral(dst) },
			set: func(v uint64) error { return ctx.Regs.SetGeneral(dst, v) },
			rhs: rhs,
		}, nil

	case isa.ArithSPWNum:
		rhs, err := ctx.Args.ParseU64()
		if err != nil {
			return operand{}, err
		}
		return operand{
			get: func() (uint64, error) { return ctx.Regs.GetSP().Raw(), nil },
			set: func(v uint64) error { ctx.Regs.SetSP(addrFrom(v)); return nil },
			rhs: rhs,
		}, nil

	default:
		return operand{}, &vmerr.InvalidSubOpcodeError{Main: uint16(opcode), Sub: sub}
	}
}

func handleAdd(ctx *Context) error {
	op, err := parseArithOperands(ctx, isa.ADD)
	if err != nil {
		return err
	}
	a, err := op.get()
	if err != nil {
		return err
	}
	result, carry := bits.Add64(a, op.rhs, 0)
	setArithFlags(ctx, result, carry != 0)
	return op.set(result)
}

func handleSub(ctx *Context) error {
	op, err := parseArithOperands(ctx, isa.SUB)
	if err != nil {
		return err
	}
	a, err := op.get()
	if err != nil {
		return err
	}
	result, borrow := bits.Sub64(a, op.rhs, 0)
	setArithFlags(ctx, result, borrow != 0)
	return op.set(result)
}

func handleMul(ctx *Context) error {
	op, err := parseArithOperands(ctx, isa.MUL)
	if err != nil {
		return err
	}
	a, err := op.get()
	if err != nil {
		return err
	}
	hi, lo := bits.Mul64(a, op.rhs)
	setArithFlags(ctx, lo, hi != 0)
	return op.set(lo)
}

func handleDiv(ctx *Context) error {
	op, err := parseArithOperands(ctx, isa.DIV)
	if err != nil {
		return err
	}
	a, err := op.get()
	if err != nil {
		return err
	}
	if op.rhs == 0 {
		return vmerr.ErrDivideByZero
	}
	result := a / op.rhs
	setArithFlags(ctx, result, false)
	return op.set(result)
}

// handleCmp implements CMP: like SUB reg,reg but discards the result,
// applying the same flag rule with no write-back.
func handleCmp(ctx *Context) error {
	a, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	b, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	av, err := ctx.Regs.GetGeneral(a)
	if err != nil {
		return err
	}
	bv, err := ctx.Regs.GetGeneral(b)
	if err != nil {
		return err
	}
	result, borrow := bits.Sub64(av, bv, 0)
	setArithFlags(ctx, result, borrow != 0)
	return nil
}

// handleInc implements INC reg: reg <- reg+1 (wrapping), updating flags.
func handleInc(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	v, err := ctx.Regs.GetGeneral(reg)
	if err != nil {
		return err
	}
	result, carry := bits.Add64(v, 1, 0)
	setArithFlags(ctx, result, carry != 0)
	return ctx.Regs.SetGeneral(reg, result)
}
