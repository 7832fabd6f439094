package buffer

import "testing"

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(0x12)
	w.WriteU16(0x3456)
	w.WriteU32(0x789abcde)
	w.WriteU64(0x0123456789abcdef)
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if v, ok := r.ReadU8(); !ok || v != 0x12 {
		t.Fatalf("ReadU8: got %d,%v", v, ok)
	}
	if v, ok := r.ReadU16(); !ok || v != 0x3456 {
		t.Fatalf("ReadU16: got %d,%v", v, ok)
	}
	if v, ok := r.ReadU32(); !ok || v != 0x789abcde {
		t.Fatalf("ReadU32: got %d,%v", v, ok)
	}
	if v, ok := r.ReadU64(); !ok || v != 0x0123456789abcdef {
		t.Fatalf("ReadU64: got %d,%v", v, ok)
	}
	if b, ok := r.ReadBytes(3); !ok || string(b) != "\x01\x02\x03" {
		t.Fatalf("ReadBytes: got %v,%v", b, ok)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", r.Remaining())
	}
}

func TestShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, ok := r.ReadU32(); ok {
		t.Fatal("expected short read to fail")
	}
}
