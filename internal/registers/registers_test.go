package registers

import (
	"testing"

	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/isa"
)

func TestAliasedWidths(t *testing.T) {
	f := New()
	if err := f.SetGeneral(isa.A64, 0x1122334455667788); err != nil {
		t.Fatal(err)
	}
	v, err := f.GetGeneral(isa.A8)
	if err != nil || v != 0x88 {
		t.Fatalf("A8: got %#x,%v", v, err)
	}
	v, err = f.GetGeneral(isa.A16)
	if err != nil || v != 0x7788 {
		t.Fatalf("A16: got %#x,%v", v, err)
	}
	v, err = f.GetGeneral(isa.A32)
	if err != nil || v != 0x55667788 {
		t.Fatalf("A32: got %#x,%v", v, err)
	}

	if err := f.SetGeneral(isa.A8, 0xff); err != nil {
		t.Fatal(err)
	}
	v, _ = f.GetGeneral(isa.A64)
	if v != 0x11223344556677ff {
		t.Fatalf("expected upper bits preserved, got %#x", v)
	}
}

func TestSetOverflow(t *testing.T) {
	f := New()
	if err := f.SetGeneral(isa.A8, 256); err == nil {
		t.Fatal("expected overflow error")
	}
	if err := f.SetGeneral(isa.A16, 1<<16); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestNonGeneralRegister(t *testing.T) {
	f := New()
	if _, err := f.GetGeneral(isa.IP); err == nil {
		t.Fatal("expected error for IP via GetGeneral")
	}
}

func TestIPSP(t *testing.T) {
	f := New()
	f.SetIP(address.New(10))
	f.IncIP(5)
	if f.GetIP().Raw() != 15 {
		t.Fatalf("got %d want 15", f.GetIP().Raw())
	}
	f.SetSP(address.New(100))
	got := f.DecSP(10)
	if got.Raw() != 90 || f.GetSP().Raw() != 90 {
		t.Fatalf("got %d want 90", got.Raw())
	}
	f.IncSP(5)
	if f.GetSP().Raw() != 95 {
		t.Fatalf("got %d want 95", f.GetSP().Raw())
	}
}

func TestFlags(t *testing.T) {
	f := New()
	f.SetZero(true)
	f.SetCarry(true)
	f.SetNegative(true)
	f.SetHalt(true)
	if !f.GetZero() || !f.GetCarry() || !f.GetNegative() || !f.GetHalt() {
		t.Fatal("expected all flags set")
	}
	raw := f.GetFlagsRaw()
	f2 := New()
	f2.SetFlagsRaw(raw)
	if !f2.GetZero() || !f2.GetCarry() || !f2.GetNegative() || !f2.GetHalt() {
		t.Fatal("expected flags to round-trip through raw word")
	}
}

func TestSaveRestore(t *testing.T) {
	f := New()
	f.SetGeneral(isa.A64, 42)
	if err := f.Save(isa.A8); err != nil {
		t.Fatal(err)
	}
	f.SetGeneral(isa.A64, 99)
	if err := f.Restore(isa.A8); err != nil {
		t.Fatal(err)
	}
	v, _ := f.GetGeneral(isa.A64)
	if v != 42 {
		t.Fatalf("got %d want 42", v)
	}
}

func TestSaveNonGeneral(t *testing.T) {
	f := New()
	if err := f.Save(isa.SP); err == nil {
		t.Fatal("expected error saving non-general register")
	}
}
