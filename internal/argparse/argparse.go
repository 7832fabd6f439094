// Package argparse pulls typed fields from an instruction's argument tail
// bytes.
package argparse

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/buffer"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Cursor decodes a sequence of typed fields from an instruction's tail.
type Cursor struct {
	r *buffer.Reader
}

// New wraps the tail bytes of a decoded instruction.
func New(tail []byte) *Cursor {
	return &Cursor{r: buffer.NewReader(tail)}
}

func (c *Cursor) outOfRange() error {
	return &vmerr.ArgumentParseError{Cause: &rangeError{pos: c.r.Pos()}}
}

type rangeError struct{ pos int }

func (e *rangeError) Error() string {
	return "argument tail exhausted"
}

// ParseU8 reads one byte.
func (c *Cursor) ParseU8() (uint8, error) {
	v, ok := c.r.ReadU8()
	if !ok {
		return 0, c.outOfRange()
	}
	return v, nil
}

// ParseU16 reads a little-endian uint16.
func (c *Cursor) ParseU16() (uint16, error) {
	v, ok := c.r.ReadU16()
	if !ok {
		return 0, c.outOfRange()
	}
	return v, nil
}

// ParseU32 reads a little-endian uint32.
func (c *Cursor) ParseU32() (uint32, error) {
	v, ok := c.r.ReadU32()
	if !ok {
		return 0, c.outOfRange()
	}
	return v, nil
}

// ParseU64 reads a little-endian uint64.
func (c *Cursor) ParseU64() (uint64, error) {
	v, ok := c.r.ReadU64()
	if !ok {
		return 0, c.outOfRange()
	}
	return v, nil
}

// ParseAddress reads a u64 and reinterprets it as an Address.
func (c *Cursor) ParseAddress() (address.Address, error) {
	v, ok := c.r.ReadU64()
	if !ok {
		return 0, c.outOfRange()
	}
	return address.New(v), nil
}

// ParseRegister reads one byte naming a register id. An id with no known
// encoding is an error.
func (c *Cursor) ParseRegister() (byte, error) {
	v, ok := c.r.ReadU8()
	if !ok {
		return 0, c.outOfRange()
	}
	if !isValidRegisterByte(v) {
		return 0, &vmerr.ArgumentParseError{Cause: &vmerr.InvalidRegisterByteError{Byte: v}}
	}
	return v, nil
}

func isValidRegisterByte(b byte) bool {
	switch {
	case b >= 1 && b <= 16:
		return true
	case b == 253, b == 254, b == 255:
		return true
	default:
		return false
	}
}
