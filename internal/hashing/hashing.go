// Package hashing computes the content-addressed name hashes used as the
// sole key for types, fields, procedures, and interfaces. Names are hashed
// through github.com/cespare/xxhash/v2 (XXH64) behind this single seam, so
// swapping the underlying hash function later is a one-function change.
package hashing

import "github.com/cespare/xxhash/v2"

// Hash returns the content-addressed hash of name.
func Hash(name string) uint64 {
	return xxhash.Sum64String(name)
}

// The fixed primitive-type hash table. Computed once at init time rather
// than hardcoded, so it always matches whatever hash function Hash uses.
var (
	U8Hash   = Hash("u8")
	U16Hash  = Hash("u16")
	U32Hash  = Hash("u32")
	U64Hash  = Hash("u64")
	I8Hash   = Hash("i8")
	I16Hash  = Hash("i16")
	I32Hash  = Hash("i32")
	I64Hash  = Hash("i64")
	BoolHash = Hash("bool")
	VoidHash = Hash("void")
)
