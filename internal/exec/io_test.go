package exec

import (
	"bytes"
	"testing"

	"github.com/pantae35872/craion/internal/argparse"
	"github.com/pantae35872/craion/internal/isa"
)

func TestOutcWritesUTF8(t *testing.T) {
	ctx := newTestContext(nil)
	var out bytes.Buffer
	ctx.Out = &out
	ctx.Regs.SetGeneral(isa.A32, uint64('A'))
	ctx.Args = argparse.New(regTail(isa.A32))

	if err := handleOutc(ctx); err != nil {
		t.Fatalf("handleOutc: %v", err)
	}
	if out.String() != "A" {
		t.Fatalf("expected %q, got %q", "A", out.String())
	}
}

func TestOutcMultiByteRune(t *testing.T) {
	ctx := newTestContext(nil)
	var out bytes.Buffer
	ctx.Out = &out
	ctx.Regs.SetGeneral(isa.A32, uint64('€'))
	ctx.Args = argparse.New(regTail(isa.A32))

	if err := handleOutc(ctx); err != nil {
		t.Fatalf("handleOutc: %v", err)
	}
	if out.String() != "€" {
		t.Fatalf("expected euro sign, got %q", out.String())
	}
}

func TestOutcRejectsInvalidScalar(t *testing.T) {
	ctx := newTestContext(nil)
	var out bytes.Buffer
	ctx.Out = &out
	ctx.Regs.SetGeneral(isa.A32, 0xd800) // surrogate half, not a valid scalar
	ctx.Args = argparse.New(regTail(isa.A32))

	if err := handleOutc(ctx); err == nil {
		t.Fatal("expected ErrInvalidUTF8")
	}
}
