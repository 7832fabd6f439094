// Package registers implements the register file: four general registers
// each with aliased 8/16/32/64-bit views, IP, SP, a flag word, and a
// one-deep shadow bank for save/restore.
package registers

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/vmerr"
)

// Family identifies which general register (A/B/C/D) a byte belongs to.
type Family int

// The four general-register families.
const (
	FamilyA Family = iota
	FamilyB
	FamilyC
	FamilyD
	FamilyNone
)

// FamilyOf returns the general-register family a register byte belongs to,
// or FamilyNone if reg does not name a general register.
func FamilyOf(reg byte) Family {
	switch reg {
	case isa.A8, isa.A16, isa.A32, isa.A64:
		return FamilyA
	case isa.B8, isa.B16, isa.B32, isa.B64:
		return FamilyB
	case isa.C8, isa.C16, isa.C32, isa.C64:
		return FamilyC
	case isa.D8, isa.D16, isa.D32, isa.D64:
		return FamilyD
	default:
		return FamilyNone
	}
}

// Width returns the byte width of a general-register view, or false if reg
// does not name one.
func Width(reg byte) (int, bool) {
	return widthBytes(reg)
}

func widthBytes(reg byte) (int, bool) {
	switch reg {
	case isa.A8, isa.B8, isa.C8, isa.D8:
		return 1, true
	case isa.A16, isa.B16, isa.C16, isa.D16:
		return 2, true
	case isa.A32, isa.B32, isa.C32, isa.D32:
		return 4, true
	case isa.A64, isa.B64, isa.C64, isa.D64:
		return 8, true
	default:
		return 0, false
	}
}

// Flags bit-packs Zero/Carry/Negative/Halt into a 16-bit word.
type Flags uint16

// Flag bit positions.
const (
	bitZero     = 0
	bitCarry    = 1
	bitNegative = 2
	bitHalt     = 15
)

func (f Flags) bit(pos uint) bool {
	return f&(1<<pos) != 0
}

func (f *Flags) setBit(pos uint, v bool) {
	if v {
		*f |= 1 << pos
	} else {
		*f &^= 1 << pos
	}
}

// File is the VM's register file: A,B,C,D, IP, SP, Flags, and a one-deep
// shadow bank per general register.
type File struct {
	a, b, c, d uint64
	ip, sp     address.Address
	flags      Flags

	shadow [4]uint64
}

// New returns a zeroed register file.
func New() *File {
	return &File{}
}

func (f *File) wordFor(fam Family) *uint64 {
	switch fam {
	case FamilyA:
		return &f.a
	case FamilyB:
		return &f.b
	case FamilyC:
		return &f.c
	case FamilyD:
		return &f.d
	default:
		return nil
	}
}

// GetGeneral reads the value of a general-register view, zero-extended to
// 64 bits.
func (f *File) GetGeneral(reg byte) (uint64, error) {
	fam := FamilyOf(reg)
	width, ok := widthBytes(reg)
	if fam == FamilyNone || !ok {
		return 0, &vmerr.NonGeneralRegisterError{Register: reg}
	}
	word := *f.wordFor(fam)
	switch width {
	case 1:
		return word & 0xff, nil
	case 2:
		return word & 0xffff, nil
	case 4:
		return word & 0xffffffff, nil
	default:
		return word, nil
	}
}

// SetGeneral writes a value into a general-register view. Writing an N-bit
// view preserves the upper (64-N) bits of the underlying word; a value that
// does not fit the declared width is an error.
func (f *File) SetGeneral(reg byte, value uint64) error {
	fam := FamilyOf(reg)
	width, ok := widthBytes(reg)
	if fam == FamilyNone || !ok {
		return &vmerr.NonGeneralRegisterError{Register: reg}
	}
	word := f.wordFor(fam)
	switch width {
	case 1:
		if value > 0xff {
			return &vmerr.SetOverflowError{Register: reg, Value: value}
		}
		*word = (*word &^ 0xff) | value
	case 2:
		if value > 0xffff {
			return &vmerr.SetOverflowError{Register: reg, Value: value}
		}
		*word = (*word &^ 0xffff) | value
	case 4:
		if value > 0xffffffff {
			return &vmerr.SetOverflowError{Register: reg, Value: value}
		}
		*word = (*word &^ 0xffffffff) | value
	default:
		*word = value
	}
	return nil
}

// GetIP returns the instruction pointer.
func (f *File) GetIP() address.Address { return f.ip }

// SetIP sets the instruction pointer.
func (f *File) SetIP(a address.Address) { f.ip = a }

// IncIP advances the instruction pointer by n bytes.
func (f *File) IncIP(n uint64) { f.ip = f.ip.Add(n) }

// GetSP returns the stack pointer.
func (f *File) GetSP() address.Address { return f.sp }

// SetSP sets the stack pointer.
func (f *File) SetSP(a address.Address) { f.sp = a }

// IncSP advances the stack pointer by n bytes.
func (f *File) IncSP(n uint64) { f.sp = f.sp.Add(n) }

// DecSP retreats the stack pointer by n bytes and returns the new value.
func (f *File) DecSP(n uint64) address.Address {
	f.sp = f.sp.Sub(n)
	return f.sp
}

// Flag accessors.

func (f *File) GetZero() bool      { return f.flags.bit(bitZero) }
func (f *File) SetZero(v bool)     { f.flags.setBit(bitZero, v) }
func (f *File) GetCarry() bool     { return f.flags.bit(bitCarry) }
func (f *File) SetCarry(v bool)    { f.flags.setBit(bitCarry, v) }
func (f *File) GetNegative() bool  { return f.flags.bit(bitNegative) }
func (f *File) SetNegative(v bool) { f.flags.setBit(bitNegative, v) }
func (f *File) GetHalt() bool      { return f.flags.bit(bitHalt) }
func (f *File) SetHalt(v bool)     { f.flags.setBit(bitHalt, v) }

// GetFlagsRaw reads the flag word as FLAGS, the pseudo-register.
func (f *File) GetFlagsRaw() uint16 { return uint16(f.flags) }

// SetFlagsRaw writes the flag word as FLAGS, the pseudo-register.
func (f *File) SetFlagsRaw(v uint16) { f.flags = Flags(v) }

// Save copies the current value of the general register named by reg into
// its one-deep shadow slot.
func (f *File) Save(reg byte) error {
	fam := FamilyOf(reg)
	if fam == FamilyNone {
		return vmerr.ErrSavedNonGeneral
	}
	f.shadow[fam] = *f.wordFor(fam)
	return nil
}

// Restore copies the shadow slot back into the general register named by reg.
func (f *File) Restore(reg byte) error {
	fam := FamilyOf(reg)
	if fam == FamilyNone {
		return vmerr.ErrSavedNonGeneral
	}
	*f.wordFor(fam) = f.shadow[fam]
	return nil
}
