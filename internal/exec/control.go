package exec

// handleExit implements EXIT reg: records reg's value as the exit code and
// halts.
func handleExit(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	v, err := ctx.Regs.GetGeneral(reg)
	if err != nil {
		return err
	}
	ctx.State.SetExitCode(v)
	ctx.Regs.SetHalt(true)
	return nil
}

// handleHalt implements HALT: halts with no exit-code change.
func handleHalt(ctx *Context) error {
	ctx.Regs.SetHalt(true)
	return nil
}
