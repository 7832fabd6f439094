// Package module implements the binary module format's magic header +
// section table + data blob codec, with a byte-exact round-trip.
package module

import (
	"bytes"

	"github.com/pantae35872/craion/internal/buffer"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/section"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Module is the parsed on-wire container: magic, a section array, and a
// contiguous data blob holding procedure code/constants.
type Module struct {
	Sections []section.Section
	Data     []byte
}

// Parse decodes a module from its on-wire byte representation.
func Parse(b []byte) (*Module, error) {
	r := buffer.NewReader(b)
	magic, ok := r.ReadBytes(4)
	if !ok {
		return nil, vmerr.ErrTruncated
	}
	if !bytes.Equal(magic, isa.Magic[:]) {
		return nil, vmerr.ErrInvalidMagic
	}
	sectionCount, ok := r.ReadU32()
	if !ok {
		return nil, vmerr.ErrTruncated
	}
	dataLen, ok := r.ReadU64()
	if !ok {
		return nil, vmerr.ErrTruncated
	}
	sections := make([]section.Section, 0, sectionCount)
	for i := uint32(0); i < sectionCount; i++ {
		s, err := section.ReadSection(r)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	data, ok := r.ReadBytes(int(dataLen))
	if !ok {
		return nil, vmerr.ErrTruncated
	}
	// Copy so the returned Module does not alias the caller's input slice.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return &Module{Sections: sections, Data: dataCopy}, nil
}

// Emit serialises m back to its on-wire byte representation. For any
// module produced by Parse, Emit(m) is byte-identical across repeated
// parse/emit cycles.
func (m *Module) Emit() []byte {
	w := buffer.NewWriter()
	w.WriteBytes(isa.Magic[:])
	w.WriteU32(uint32(len(m.Sections)))
	w.WriteU64(uint64(len(m.Data)))
	for _, s := range m.Sections {
		s.WriteTo(w)
	}
	w.WriteBytes(m.Data)
	return w.Bytes()
}
