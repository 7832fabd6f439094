package exec

import (
	"sync/atomic"

	"github.com/pantae35872/craion/internal/typeheap"
)

// HeapHandle is a reference-counted guest heap object: the counter and the
// backing slab are two separately owned regions joined only by this
// handle, so the count can be bumped with a plain atomic op instead of
// through aliased raw pointers.
type HeapHandle struct {
	typeIndex int
	slab      []byte
	refCount  *int64
}

// NewHeapHandle allocates a zero-initialised slab sized for the structure
// at typeIndex, with an initial reference count of 1.
func NewHeapHandle(types *typeheap.Heap, typeIndex int) *HeapHandle {
	count := int64(1)
	return &HeapHandle{
		typeIndex: typeIndex,
		slab:      make([]byte, types.SizeOf(typeIndex)),
		refCount:  &count,
	}
}

// TypeIndex returns the handle's structure type index.
func (h *HeapHandle) TypeIndex() int { return h.typeIndex }

// Bytes exposes the handle's backing slab for structural field access via
// typeheap.Heap.Assign.
func (h *HeapHandle) Bytes() []byte { return h.slab }

// Retain atomically increments the reference count, returning the handle
// for chaining at a new holder.
func (h *HeapHandle) Retain() *HeapHandle {
	atomic.AddInt64(h.refCount, 1)
	return h
}

// Release atomically decrements the reference count. When it reaches zero,
// Release is called once on the handle that children maps to each of the
// structure's Custom fields, and then the slab itself is dropped. Those
// child handles are released with no children map of their own, so Custom
// fields nested two or more levels deep are not released by this call.
// Reference cycles between guest objects are not detected or collected.
func (h *HeapHandle) Release(types *typeheap.Heap, children map[uint64]*HeapHandle) {
	if atomic.AddInt64(h.refCount, -1) > 0 {
		return
	}
	st := types.StructureAt(h.typeIndex)
	for _, fieldHash := range st.FieldOrder {
		layout := st.Fields[fieldHash]
		if !layout.IsCustom {
			continue
		}
		if child, ok := children[fieldHash]; ok {
			child.Release(types, nil)
		}
	}
	h.slab = nil
}

// RefCount reports the current reference count, for tests and diagnostics.
func (h *HeapHandle) RefCount() int64 {
	return atomic.LoadInt64(h.refCount)
}
