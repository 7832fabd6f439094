// Package decode implements the fetch stage of the fetch/decode/dispatch
// loop: reading one instruction's length, opcode, and argument tail out of
// VM memory at the instruction pointer.
package decode

import (
	"encoding/binary"

	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/memory"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Instruction is one fetched, framed instruction: its total on-the-wire
// length, its opcode, and the raw bytes following the opcode.
type Instruction struct {
	Opcode isa.Opcode
	Length uint64
	Tail   []byte
}

// minInstructionLength is the length byte plus the 2-byte opcode; no
// instruction can be shorter than this.
const minInstructionLength = 3

// Fetch reads one instruction from mem at ip: a single length byte,
// followed by length-1 more bytes holding the u16 little-endian opcode and
// the argument tail.
func Fetch(mem *memory.Memory, ip address.Address) (Instruction, error) {
	lengthByte, err := mem.Get1(ip)
	if err != nil {
		return Instruction{}, &vmerr.InvalidIPError{IP: ip}
	}
	length := int(lengthByte)
	if length < minInstructionLength {
		return Instruction{}, &vmerr.InvalidLengthError{IP: ip, Length: length}
	}
	body, err := mem.Get(ip, length)
	if err != nil {
		return Instruction{}, &vmerr.InvalidLengthError{IP: ip, Length: length}
	}
	opcode := binary.LittleEndian.Uint16(body[1:3])
	tail := body[3:length]
	return Instruction{
		Opcode: isa.Opcode(opcode),
		Length: uint64(length),
		Tail:   tail,
	}, nil
}
