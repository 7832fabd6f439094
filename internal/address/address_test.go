package address

import "testing"

func TestAddArithmetic(t *testing.T) {
	a := New(10)
	if got := a.Add(5); got.Raw() != 15 {
		t.Fatalf("Add: got %d, want 15", got.Raw())
	}
	if got := a.Sub(5); got.Raw() != 5 {
		t.Fatalf("Sub: got %d, want 5", got.Raw())
	}
}

func TestLess(t *testing.T) {
	if !New(1).Less(New(2)) {
		t.Fatal("expected 1 < 2")
	}
	if New(2).Less(New(1)) {
		t.Fatal("expected 2 !< 1")
	}
}

func TestString(t *testing.T) {
	if got, want := New(0xff).String(), "0xff"; got != want {
		t.Fatalf("String: got %q, want %q", got, want)
	}
}
