// Package vmerr holds the stable error taxonomy shared by the binary module
// codec, linear memory, register file, decoder, instruction handlers, and
// section loader. A kind that carries a payload is its own exported struct
// type, so a caller can errors.As into it; a kind without one is an
// exported sentinel value, so a caller can errors.Is against it. Neither
// needs string-matching.
package vmerr

import (
	"fmt"

	"github.com/pantae35872/craion/internal/address"
)

// Codec errors.

// ErrInvalidMagic indicates the module's leading 4 bytes are not the
// expected magic sequence.
var ErrInvalidMagic = fmt.Errorf("invalid magic")

// ErrTruncated indicates a short read occurred while parsing a module.
var ErrTruncated = fmt.Errorf("truncated module")

// UnknownSectionTagError indicates an unrecognised section tag byte.
type UnknownSectionTagError struct {
	Tag byte
}

func (e *UnknownSectionTagError) Error() string {
	return fmt.Sprintf("unknown section tag: %d", e.Tag)
}

// UnknownAttributeTagError indicates an unrecognised attribute tag byte.
type UnknownAttributeTagError struct {
	Tag byte
}

func (e *UnknownAttributeTagError) Error() string {
	return fmt.Sprintf("unknown attribute tag: %d", e.Tag)
}

// Memory errors.

// InvalidAddrError indicates a single-byte memory access outside [0, capacity).
type InvalidAddrError struct {
	Addr address.Address
}

func (e *InvalidAddrError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Addr)
}

// OutOfRangeError indicates a slice memory access outside [0, capacity).
type OutOfRangeError struct {
	Addr address.Address
	Len  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: addr=%s len=%d", e.Addr, e.Len)
}

// Register errors.

// InvalidRegisterByteError indicates a register-id byte with no known
// encoding.
type InvalidRegisterByteError struct {
	Byte byte
}

func (e *InvalidRegisterByteError) Error() string {
	return fmt.Sprintf("invalid register byte: %d", e.Byte)
}

// SetOverflowError indicates a value written to a register view does not
// fit that view's declared width.
type SetOverflowError struct {
	Register byte
	Value    uint64
}

func (e *SetOverflowError) Error() string {
	return fmt.Sprintf("value %d does not fit register %d", e.Value, e.Register)
}

// NonGeneralRegisterError indicates a general-register-only operation was
// attempted on IP/SP/FLAGS.
type NonGeneralRegisterError struct {
	Register byte
}

func (e *NonGeneralRegisterError) Error() string {
	return fmt.Sprintf("register %d is not a general-purpose register", e.Register)
}

// Decoder errors.

// InvalidIPError indicates the instruction pointer does not reference a
// readable instruction-length byte.
type InvalidIPError struct {
	IP address.Address
}

func (e *InvalidIPError) Error() string {
	return fmt.Sprintf("invalid instruction pointer: %s", e.IP)
}

// InvalidLengthError indicates an instruction whose declared length byte is
// out of bounds (<3) or whose body could not be fully read.
type InvalidLengthError struct {
	IP     address.Address
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid instruction length %d at ip=%s", e.Length, e.IP)
}

// InvalidOpcodeError indicates an opcode with no registered handler.
type InvalidOpcodeError struct {
	Opcode uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: %d", e.Opcode)
}

// Instruction errors.

// InvalidSubOpcodeError indicates a sub-opcode byte unrecognised by its
// owning main opcode's handler.
type InvalidSubOpcodeError struct {
	Main uint16
	Sub  byte
}

func (e *InvalidSubOpcodeError) Error() string {
	return fmt.Sprintf("invalid sub-opcode %d for opcode %d", e.Sub, e.Main)
}

// ArgumentParseError wraps a failure reading an instruction's argument tail.
type ArgumentParseError struct {
	Cause error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("argument parse error: %s", e.Cause)
}

func (e *ArgumentParseError) Unwrap() error {
	return e.Cause
}

// InvalidSectionError indicates a hash with no matching loaded section.
type InvalidSectionError struct {
	Hash uint64
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("invalid section: %#x", e.Hash)
}

// ErrEmptyReturnStack indicates RET was executed with nothing on the return stack.
var ErrEmptyReturnStack = fmt.Errorf("empty return stack")

// ErrSavedNonGeneral indicates SAVR/RESTR was given a non-general register.
var ErrSavedNonGeneral = fmt.Errorf("saved register is not general purpose")

// AddressToNarrowRegisterError indicates an attempt to load a loaded-section
// address into a register view narrower than 64 bits.
type AddressToNarrowRegisterError struct {
	Bytes int
}

func (e *AddressToNarrowRegisterError) Error() string {
	return fmt.Sprintf("cannot store an address into a %d-byte register", e.Bytes)
}

// ErrDivideByZero indicates DIV was executed with a zero divisor.
var ErrDivideByZero = fmt.Errorf("divide by zero")

// ErrInvalidUTF8 indicates OUTC was given a value that is not a valid
// Unicode scalar value.
var ErrInvalidUTF8 = fmt.Errorf("invalid utf-8 code point")

// ErrNotProcedureSection indicates CALL/JMP targeted a section hash that
// resolves to something other than a Procedure.
var ErrNotProcedureSection = fmt.Errorf("section is not a procedure")

// Section loader errors.

// UnimplementedInterfaceError indicates a structure declares
// Implemented(hash) without a matching Overwrite(hash) procedure.
type UnimplementedInterfaceError struct {
	Hash uint64
}

func (e *UnimplementedInterfaceError) Error() string {
	return fmt.Sprintf("unimplemented interface: %#x", e.Hash)
}

// ErrOverwriteOutsideStructure indicates an Overwrite attribute was found on
// a procedure that does not live inside a structure.
var ErrOverwriteOutsideStructure = fmt.Errorf("overwrite attribute outside structure")

// ErrNotImplemented marks an external-collaborator seam (compiler front-end)
// that this repository intentionally does not implement.
var ErrNotImplemented = fmt.Errorf("not implemented")

// Type heap errors.

// RecursiveStructureError indicates a structure's fields recursively
// contain the structure itself, which would give it unbounded size.
type RecursiveStructureError struct {
	Hash uint64
}

func (e *RecursiveStructureError) Error() string {
	return fmt.Sprintf("recursive structure containment: %#x", e.Hash)
}
