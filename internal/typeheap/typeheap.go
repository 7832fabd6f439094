// Package typeheap computes structure layouts by depth-first flattening of
// custom field containment, and performs structural assignment between
// byte slices according to those layouts.
package typeheap

import (
	"github.com/pantae35872/craion/internal/sectionmgr"
	"github.com/pantae35872/craion/internal/vmerr"
)

// FieldLayout is a structure field's resolved offset and size within its
// owning structure's flattened byte layout.
type FieldLayout struct {
	IsCustom  bool
	Primitive sectionmgr.PrimitiveKind
	TypeIndex int // valid when IsCustom
	Offset    int
}

// Size returns the field's byte footprint.
func (f FieldLayout) Size(h *Heap) int {
	if f.IsCustom {
		return h.types[f.TypeIndex].Size
	}
	return f.Primitive.Size()
}

// StructureType is a structure's flattened layout: every field's offset is
// computed by recursively inlining custom fields, matching the structure's
// declared field order.
type StructureType struct {
	HashName   uint64
	FieldOrder []uint64
	Fields     map[uint64]FieldLayout
	Size       int
	Procedures map[uint64]*sectionmgr.LoadedProcedure
}

// Heap is the type heap: every loaded structure's layout, indexed both by
// hash and by a dense type index assigned as each layout is completed, so a
// nested structure gets its index before the structure that contains it.
type Heap struct {
	types   []StructureType
	typeMap map[uint64]int
}

// Build computes layouts for every structure loaded by mgr.
func Build(mgr *sectionmgr.Manager) (*Heap, error) {
	h := &Heap{typeMap: map[uint64]int{}}
	visiting := map[uint64]bool{}
	for hash := range mgr.Structures() {
		if _, err := h.resolve(hash, mgr, visiting); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Heap) resolve(hash uint64, mgr *sectionmgr.Manager, visiting map[uint64]bool) (int, error) {
	if idx, ok := h.typeMap[hash]; ok {
		return idx, nil
	}
	if visiting[hash] {
		return 0, &vmerr.RecursiveStructureError{Hash: hash}
	}
	structure, ok := mgr.Structure(hash)
	if !ok {
		return 0, &vmerr.InvalidSectionError{Hash: hash}
	}
	visiting[hash] = true
	defer delete(visiting, hash)

	st := StructureType{
		HashName:   hash,
		Fields:     map[uint64]FieldLayout{},
		Procedures: structure.Methods,
	}
	offset := 0
	for _, f := range structure.Fields {
		st.FieldOrder = append(st.FieldOrder, f.HashName)
		if f.Type.IsCustom {
			nestedIdx, err := h.resolve(f.Type.Custom, mgr, visiting)
			if err != nil {
				return 0, err
			}
			layout := FieldLayout{IsCustom: true, TypeIndex: nestedIdx, Offset: offset}
			st.Fields[f.HashName] = layout
			offset += h.types[nestedIdx].Size
		} else {
			layout := FieldLayout{Primitive: f.Type.Primitive, Offset: offset}
			st.Fields[f.HashName] = layout
			offset += f.Type.Primitive.Size()
		}
	}
	st.Size = offset

	idx := len(h.types)
	h.types = append(h.types, st)
	h.typeMap[hash] = idx
	return idx, nil
}

// TypeIndex returns the dense type index for a structure's hash.
func (h *Heap) TypeIndex(hash uint64) (int, bool) {
	idx, ok := h.typeMap[hash]
	return idx, ok
}

// SizeOf returns the total flattened byte size of the structure at idx.
func (h *Heap) SizeOf(idx int) int {
	return h.types[idx].Size
}

// StructureAt returns the flattened layout at a dense type index.
func (h *Heap) StructureAt(idx int) StructureType {
	return h.types[idx]
}

// Field looks up a field's layout within the structure named by
// structureHash.
func (h *Heap) Field(fieldHash, structureHash uint64) (FieldLayout, error) {
	idx, ok := h.typeMap[structureHash]
	if !ok {
		return FieldLayout{}, &vmerr.InvalidSectionError{Hash: structureHash}
	}
	layout, ok := h.types[idx].Fields[fieldHash]
	if !ok {
		return FieldLayout{}, &vmerr.InvalidSectionError{Hash: fieldHash}
	}
	return layout, nil
}

// Assign copies the first field.Size(h) bytes of src into dst at
// baseOffset+field.Offset in one flat copy. Nested custom fields are
// inlined in the layout, so this covers a custom field's whole sub-tree
// while touching only the bytes the field's layout claims.
func (h *Heap) Assign(field FieldLayout, src []byte, dst []byte, baseOffset int) {
	start := baseOffset + field.Offset
	size := field.Size(h)
	copy(dst[start:start+size], src[:size])
}
