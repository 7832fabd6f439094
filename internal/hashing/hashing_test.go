package hashing

import "testing"

func TestHashDeterministic(t *testing.T) {
	if Hash("foo") != Hash("foo") {
		t.Fatal("expected deterministic hash")
	}
	if Hash("foo") == Hash("bar") {
		t.Fatal("expected distinct hashes for distinct names")
	}
}

func TestPrimitiveHashesDistinct(t *testing.T) {
	seen := map[uint64]string{}
	table := map[string]uint64{
		"u8": U8Hash, "u16": U16Hash, "u32": U32Hash, "u64": U64Hash,
		"i8": I8Hash, "i16": I16Hash, "i32": I32Hash, "i64": I64Hash,
		"bool": BoolHash, "void": VoidHash,
	}
	for name, h := range table {
		if other, ok := seen[h]; ok {
			t.Fatalf("hash collision between %q and %q", name, other)
		}
		seen[h] = name
	}
}
