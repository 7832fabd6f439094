package exec

// handleSavr implements SAVR reg: saves reg's general-register family into
// its one-deep shadow bank.
func handleSavr(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	return ctx.Regs.Save(reg)
}

// handleRestr implements RESTR reg: restores reg's general-register family
// from its shadow bank.
func handleRestr(ctx *Context) error {
	reg, err := ctx.Args.ParseRegister()
	if err != nil {
		return err
	}
	return ctx.Regs.Restore(reg)
}
