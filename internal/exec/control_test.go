package exec

import (
	"testing"

	"github.com/pantae35872/craion/internal/argparse"
	"github.com/pantae35872/craion/internal/isa"
)

func TestExitSetsExitCodeAndHalts(t *testing.T) {
	ctx := newTestContext(nil)
	ctx.Regs.SetGeneral(isa.A64, 7)
	ctx.Args = argparse.New(regTail(isa.A64))

	if err := handleExit(ctx); err != nil {
		t.Fatalf("handleExit: %v", err)
	}
	if ctx.State.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", ctx.State.ExitCode())
	}
	if !ctx.Regs.GetHalt() {
		t.Fatal("expected Halt set")
	}
}

func TestHaltSetsHaltOnly(t *testing.T) {
	ctx := newTestContext(nil)
	if err := handleHalt(ctx); err != nil {
		t.Fatalf("handleHalt: %v", err)
	}
	if !ctx.Regs.GetHalt() {
		t.Fatal("expected Halt set")
	}
	if ctx.State.ExitCode() != 0 {
		t.Fatalf("expected exit code unchanged at 0, got %d", ctx.State.ExitCode())
	}
}
