package argparse

import (
	"testing"

	"github.com/pantae35872/craion/internal/buffer"
	"github.com/pantae35872/craion/internal/isa"
)

func TestParseSequence(t *testing.T) {
	w := buffer.NewWriter()
	w.WriteU8(isa.A64)
	w.WriteU64(42)
	w.WriteU8(7)
	w.WriteU16(1000)
	w.WriteU32(70000)

	c := New(w.Bytes())
	reg, err := c.ParseRegister()
	if err != nil || reg != isa.A64 {
		t.Fatalf("ParseRegister: %v, %v", reg, err)
	}
	val, err := c.ParseU64()
	if err != nil || val != 42 {
		t.Fatalf("ParseU64: %v, %v", val, err)
	}
	u8, err := c.ParseU8()
	if err != nil || u8 != 7 {
		t.Fatalf("ParseU8: %v, %v", u8, err)
	}
	u16, err := c.ParseU16()
	if err != nil || u16 != 1000 {
		t.Fatalf("ParseU16: %v, %v", u16, err)
	}
	u32, err := c.ParseU32()
	if err != nil || u32 != 70000 {
		t.Fatalf("ParseU32: %v, %v", u32, err)
	}
}

func TestParseShortRead(t *testing.T) {
	c := New([]byte{1})
	if _, err := c.ParseU64(); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestParseInvalidRegisterByte(t *testing.T) {
	c := New([]byte{0})
	if _, err := c.ParseRegister(); err == nil {
		t.Fatal("expected invalid register byte error")
	}
	c = New([]byte{200})
	if _, err := c.ParseRegister(); err == nil {
		t.Fatal("expected invalid register byte error")
	}
}
