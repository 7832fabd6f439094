package exec

// handleCall implements CALL hash(u64): push IP+length onto the return
// stack, then jump to the named procedure's loaded start.
func handleCall(ctx *Context) error {
	hash, err := ctx.Args.ParseU64()
	if err != nil {
		return err
	}
	proc, err := lookupProcedure(ctx.Sections, hash)
	if err != nil {
		return err
	}
	returnTo := ctx.Regs.GetIP().Add(ctx.Length)
	ctx.Returns.Push(returnTo)
	ctx.Regs.SetIP(proc.LoadStart)
	ctx.Jumped = true
	return nil
}

// handleRet implements RET: pop the return stack into IP.
func handleRet(ctx *Context) error {
	addr, err := ctx.Returns.Pop()
	if err != nil {
		return err
	}
	ctx.Regs.SetIP(addr)
	ctx.Jumped = true
	return nil
}
