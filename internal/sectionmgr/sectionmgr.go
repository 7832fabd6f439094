// Package sectionmgr implements the section manager: it loads a
// parsed module's sections into VM memory, records loaded procedure/
// structure/interface entries keyed by their content hash, and verifies
// that every declared interface implementation has a matching overwrite.
package sectionmgr

import (
	"github.com/pantae35872/craion/internal/address"
	"github.com/pantae35872/craion/internal/hashing"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/memory"
	"github.com/pantae35872/craion/internal/module"
	"github.com/pantae35872/craion/internal/section"
	"github.com/pantae35872/craion/internal/vmerr"
)

// PrimitiveKind enumerates the fixed primitive type set.
type PrimitiveKind int

// The ten primitive kinds, in declaration order.
const (
	PrimitiveU8 PrimitiveKind = iota
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveBool
	PrimitiveVoid
)

// Size returns the primitive's fixed byte size.
func (p PrimitiveKind) Size() int {
	switch p {
	case PrimitiveU8, PrimitiveI8, PrimitiveBool:
		return 1
	case PrimitiveU16, PrimitiveI16:
		return 2
	case PrimitiveU32, PrimitiveI32:
		return 4
	case PrimitiveU64, PrimitiveI64:
		return 8
	default: // PrimitiveVoid
		return 0
	}
}

var primitiveByHash = map[uint64]PrimitiveKind{
	hashing.U8Hash:   PrimitiveU8,
	hashing.U16Hash:  PrimitiveU16,
	hashing.U32Hash:  PrimitiveU32,
	hashing.U64Hash:  PrimitiveU64,
	hashing.I8Hash:   PrimitiveI8,
	hashing.I16Hash:  PrimitiveI16,
	hashing.I32Hash:  PrimitiveI32,
	hashing.I64Hash:  PrimitiveI64,
	hashing.BoolHash: PrimitiveBool,
	hashing.VoidHash: PrimitiveVoid,
}

// LoadedType is either a fixed-size primitive or a reference to a custom
// (structure) type by hash.
type LoadedType struct {
	IsCustom  bool
	Primitive PrimitiveKind
	Custom    uint64
}

// ClassifyType resolves a declared type hash to a primitive or custom type
// by comparing it against the fixed primitive-hash table.
func ClassifyType(hash uint64) LoadedType {
	if p, ok := primitiveByHash[hash]; ok {
		return LoadedType{Primitive: p}
	}
	return LoadedType{IsCustom: true, Custom: hash}
}

// LoadedField is a structure field with its declared type resolved.
type LoadedField struct {
	HashName uint64
	Type     LoadedType
}

// LoadedProcedure is a procedure after its code has been copied into VM
// memory.
type LoadedProcedure struct {
	HashName        uint64
	LoadStart       address.Address
	Size            uint64
	ReturnType      uint64 // hash from Return attribute, 0 if absent
	AcceptedTypes   []uint64
	Public          bool
	Private         bool
	Static          bool
	OverwriteTarget uint64 // hash from Overwrite attribute, 0 if absent
	HasOverwrite    bool
}

// LoadedStructure is a structure after its methods have been loaded.
type LoadedStructure struct {
	HashName   uint64
	Fields     []LoadedField
	Methods    map[uint64]*LoadedProcedure // keyed by method hash
	Overwrites map[uint64]*LoadedProcedure // keyed by the interface vproc hash they implement
	Implements []uint64                    // hashes from Implemented(h) attributes
	Public     bool
}

// LoadedInterface is an interface's virtual-procedure signature table.
type LoadedInterface struct {
	HashName    uint64
	VProcedures []section.VProcedure
}

// EntityKind distinguishes what a hash resolves to.
type EntityKind int

// The three entity kinds a hash may resolve to.
const (
	EntityNone EntityKind = iota
	EntityProcedure
	EntityStructure
	EntityInterface
)

// Entity is the result of a hash lookup across every loaded section kind.
type Entity struct {
	Kind      EntityKind
	Procedure *LoadedProcedure
	Structure *LoadedStructure
	Interface *LoadedInterface
}

// Manager is the section manager: it owns the loaded-entity tables built
// while consuming a module's sections.
type Manager struct {
	procedures map[uint64]*LoadedProcedure
	structures map[uint64]*LoadedStructure
	interfaces map[uint64]*LoadedInterface
	cursor     address.Address
}

// New returns an empty section manager.
func New() *Manager {
	return &Manager{
		procedures: map[uint64]*LoadedProcedure{},
		structures: map[uint64]*LoadedStructure{},
		interfaces: map[uint64]*LoadedInterface{},
	}
}

// Load consumes every section of m, copying procedure code into mem
// starting at the manager's current write cursor.
func (mgr *Manager) Load(m *module.Module, mem *memory.Memory) error {
	for _, s := range m.Sections {
		switch s.Kind {
		case section.KindProcedure:
			lp, err := mgr.loadProcedure(s.Procedure, m.Data, mem)
			if err != nil {
				return err
			}
			if lp.HasOverwrite {
				return vmerr.ErrOverwriteOutsideStructure
			}
			mgr.procedures[lp.HashName] = lp
		case section.KindStructure:
			ls, err := mgr.loadStructure(s.Structure, m.Data, mem)
			if err != nil {
				return err
			}
			mgr.structures[ls.HashName] = ls
		case section.KindInterface:
			li := &LoadedInterface{HashName: s.Interface.HashName, VProcedures: s.Interface.VProcedures}
			mgr.interfaces[li.HashName] = li
		}
	}
	return nil
}

func (mgr *Manager) loadProcedure(p section.Procedure, data []byte, mem *memory.Memory) (*LoadedProcedure, error) {
	if p.CodeStart+p.CodeSize > uint64(len(data)) {
		return nil, vmerr.ErrTruncated
	}
	code := data[p.CodeStart : p.CodeStart+p.CodeSize]
	loadStart := mgr.cursor
	if err := mem.Set(loadStart, code); err != nil {
		return nil, err
	}
	mgr.cursor = mgr.cursor.Add(p.CodeSize)

	lp := &LoadedProcedure{
		HashName:  p.HashName,
		LoadStart: loadStart,
		Size:      p.CodeSize,
	}
	for _, attr := range p.Attributes.List {
		switch byte(attr.Tag) {
		case isa.AttrPublic:
			lp.Public = true
		case isa.AttrPrivate:
			lp.Private = true
		case isa.AttrStatic:
			lp.Static = true
		case isa.AttrReturn:
			lp.ReturnType = attr.Payload
		case isa.AttrAccept:
			lp.AcceptedTypes = attr.List
		case isa.AttrOverwrite:
			lp.OverwriteTarget = attr.Payload
			lp.HasOverwrite = true
		}
	}
	return lp, nil
}

func (mgr *Manager) loadStructure(s section.Structure, data []byte, mem *memory.Memory) (*LoadedStructure, error) {
	ls := &LoadedStructure{
		HashName:   s.HashName,
		Methods:    map[uint64]*LoadedProcedure{},
		Overwrites: map[uint64]*LoadedProcedure{},
	}
	for _, attr := range s.Attributes.List {
		switch byte(attr.Tag) {
		case isa.AttrPublic:
			ls.Public = true
		case isa.AttrImplemented:
			ls.Implements = append(ls.Implements, attr.Payload)
		}
	}
	for _, f := range s.Fields {
		typeHash, _ := f.Attributes.Find(AttributeTagContain())
		ls.Fields = append(ls.Fields, LoadedField{
			HashName: f.HashName,
			Type:     ClassifyType(typeHash.Payload),
		})
	}
	for _, p := range s.Procedures {
		lp, err := mgr.loadProcedure(p, data, mem)
		if err != nil {
			return nil, err
		}
		mgr.procedures[lp.HashName] = lp
		if lp.HasOverwrite {
			ls.Overwrites[lp.OverwriteTarget] = lp
		} else {
			ls.Methods[lp.HashName] = lp
		}
	}
	for _, impl := range ls.Implements {
		if _, ok := ls.Overwrites[impl]; !ok {
			return nil, &vmerr.UnimplementedInterfaceError{Hash: impl}
		}
	}
	return ls, nil
}

// AttributeTagContain returns the Contain attribute tag; exported as a
// function (rather than re-exporting section.AttributeTag's numeric value)
// so callers never need to know the wire tag byte.
func AttributeTagContain() section.AttributeTag {
	return section.AttributeTag(isa.AttrContain)
}

// Lookup resolves hash against every loaded entity kind.
func (mgr *Manager) Lookup(hash uint64) (Entity, bool) {
	if p, ok := mgr.procedures[hash]; ok {
		return Entity{Kind: EntityProcedure, Procedure: p}, true
	}
	if s, ok := mgr.structures[hash]; ok {
		return Entity{Kind: EntityStructure, Structure: s}, true
	}
	if i, ok := mgr.interfaces[hash]; ok {
		return Entity{Kind: EntityInterface, Interface: i}, true
	}
	return Entity{}, false
}

// Procedure looks up a loaded procedure by hash.
func (mgr *Manager) Procedure(hash uint64) (*LoadedProcedure, bool) {
	p, ok := mgr.procedures[hash]
	return p, ok
}

// Structure looks up a loaded structure by hash.
func (mgr *Manager) Structure(hash uint64) (*LoadedStructure, bool) {
	s, ok := mgr.structures[hash]
	return s, ok
}

// Interface looks up a loaded interface by hash.
func (mgr *Manager) Interface(hash uint64) (*LoadedInterface, bool) {
	i, ok := mgr.interfaces[hash]
	return i, ok
}

// Structures returns every loaded structure, for type-heap construction.
func (mgr *Manager) Structures() map[uint64]*LoadedStructure {
	return mgr.structures
}

// Cursor returns the current write cursor (the address the next loaded
// procedure's code will start at).
func (mgr *Manager) Cursor() address.Address {
	return mgr.cursor
}
