package memory

import (
	"testing"

	"github.com/pantae35872/craion/internal/address"
)

func TestGetSetRoundTrip(t *testing.T) {
	m := New(16)
	if err := m.Set1(address.New(0), 0xab); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get1(address.New(0))
	if err != nil || got != 0xab {
		t.Fatalf("got %v,%v want 0xab,nil", got, err)
	}
	if err := m.Set(address.New(4), []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	gotSlice, err := m.Get(address.New(4), 3)
	if err != nil || string(gotSlice) != "\x01\x02\x03" {
		t.Fatalf("got %v,%v", gotSlice, err)
	}
}

func TestOutOfBounds(t *testing.T) {
	m := New(4)
	if _, err := m.Get1(address.New(4)); err == nil {
		t.Fatal("expected error at capacity boundary")
	}
	if _, err := m.Get(address.New(2), 4); err == nil {
		t.Fatal("expected OutOfRange error")
	}
	if err := m.Set1(address.New(100), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestZeroInitialised(t *testing.T) {
	m := New(8)
	got, err := m.Get(address.New(0), 8)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range got {
		if b != 0 {
			t.Fatal("expected zero-initialised memory")
		}
	}
}
