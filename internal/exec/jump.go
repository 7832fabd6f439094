package exec

import "math/bits"

// jumpToSection reads hash(u64), offset(u64) and sets IP to the named
// procedure's loaded start plus offset.
func jumpToSection(ctx *Context) error {
	hash, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	offset, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	proc, err := lookupProcedure(ctx.Sections, hash)
	if err != nil {
		return err
	}
	ctx.Regs.SetIP(proc.LoadStart.Add(offset))
	ctx.Jumped = true
	return nil
}

// conditionalJump jumps when cond is true; otherwise it must still consume
// the hash/offset tail so the instruction's argument framing is honored,
// leaving Jumped false so the executor loop's length auto-increment fires.
func conditionalJump(ctx *Context, cond bool) error {
	hash, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	offset, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	if !cond {
		return nil
	}
	proc, err := lookupProcedure(ctx.Sections, hash)
	if err != nil {
		return err
	}
	ctx.Regs.SetIP(proc.LoadStart.Add(offset))
	ctx.Jumped = true
	return nil
}

func handleJmp(ctx *Context) error { return jumpToSection(ctx) }

func handleJmz(ctx *Context) error { return conditionalJump(ctx, ctx.Regs.GetZero()) }

func handleJmn(ctx *Context) error { return conditionalJump(ctx, ctx.Regs.GetNegative()) }

func handleJmc(ctx *Context) error { return conditionalJump(ctx, ctx.Regs.GetCarry()) }

// handleJme implements JME: jump when none of Zero/Negative/Carry are set.
func handleJme(ctx *Context) error {
	cond := !ctx.Regs.GetZero() && !ctx.Regs.GetNegative() && !ctx.Regs.GetCarry()
	return conditionalJump(ctx, cond)
}

// compareAndJump reads reg1,reg2,hash,offset, computes reg1-reg2, and jumps
// when pick(result, borrow) is true.
func compareAndJump(ctx *Context, pick func(result uint64, borrow bool) bool) error {
	r1, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	r2, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	hash, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	offset, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	v1, err := ctx.Regs.GetGeneral(r1)
	if err != nil {
		return err
	}
	v2, err := ctx.Regs.GetGeneral(r2)
	if err != nil {
		return err
	}
	result, borrow := bits.Sub64(v1, v2, 0)
	if !pick(result, borrow != 0) {
		return nil
	}
	proc, err := lookupProcedure(ctx.Sections, hash)
	if err != nil {
		return err
	}
	ctx.Regs.SetIP(proc.LoadStart.Add(offset))
	ctx.Jumped = true
	return nil
}

func handleJacz(ctx *Context) error {
	return compareAndJump(ctx, func(result uint64, borrow bool) bool { return result == 0 })
}

func handleJacn(ctx *Context) error {
	return compareAndJump(ctx, func(result uint64, borrow bool) bool { return result&(1<<63) != 0 })
}

func handleJacc(ctx *Context) error {
	return compareAndJump(ctx, func(result uint64, borrow bool) bool { return borrow })
}

func handleJace(ctx *Context) error {
	return compareAndJump(ctx, func(result uint64, borrow bool) bool {
		return !borrow && result != 0 && result&(1<<63) == 0
	})
}
