// Package memory implements the VM's linear, fixed-capacity, byte-addressable
// memory.
package memory

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Memory is an owned, fixed-capacity, zero-initialised byte array. Every
// index in [0, cap) is valid; anything else fails with a structured error.
type Memory struct {
	data []byte
}

// New allocates a Memory of the given capacity in bytes.
func New(capacity int) *Memory {
	return &Memory{data: make([]byte, capacity)}
}

// Len returns the memory's capacity in bytes.
func (m *Memory) Len() int {
	return len(m.data)
}

// Get1 reads a single byte at addr.
func (m *Memory) Get1(addr address.Address) (byte, error) {
	i := addr.Raw()
	if i >= uint64(len(m.data)) {
		return 0, &vmerr.InvalidAddrError{Addr: addr}
	}
	return m.data[i], nil
}

// Get reads length bytes starting at addr.
func (m *Memory) Get(addr address.Address, length int) ([]byte, error) {
	i := addr.Raw()
	if length < 0 || i+uint64(length) > uint64(len(m.data)) {
		return nil, &vmerr.OutOfRangeError{Addr: addr, Len: length}
	}
	return m.data[i : i+uint64(length)], nil
}

// Set1 writes a single byte at addr.
func (m *Memory) Set1(addr address.Address, v byte) error {
	i := addr.Raw()
	if i >= uint64(len(m.data)) {
		return &vmerr.InvalidAddrError{Addr: addr}
	}
	m.data[i] = v
	return nil
}

// Set writes b starting at addr.
func (m *Memory) Set(addr address.Address, b []byte) error {
	i := addr.Raw()
	if i+uint64(len(b)) > uint64(len(m.data)) {
		return &vmerr.OutOfRangeError{Addr: addr, Len: len(b)}
	}
	copy(m.data[i:], b)
	return nil
}
