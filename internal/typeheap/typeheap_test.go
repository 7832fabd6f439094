package typeheap

import (
	"testing"

	"github.com/pantae35872/craion/internal/hashing"
	"github.com/pantae35872/craion/internal/memory"
	"github.com/pantae35872/craion/internal/module"
	"github.com/pantae35872/craion/internal/sectionmgr"
	"github.com/pantae35872/craion/internal/section"
)

func TestFlatStructureLayout(t *testing.T) {
	m := &module.Module{
		Sections: []section.Section{
			{Kind: section.KindStructure, Structure: section.Structure{
				HashName: hashing.Hash("point"),
				Fields: []section.Field{
					{HashName: hashing.Hash("x"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.U32Hash),
					}}},
					{HashName: hashing.Hash("y"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.U32Hash),
					}}},
				},
				Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
			}},
		},
	}
	mgr := sectionmgr.New()
	if err := mgr.Load(m, memory.New(16)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h, err := Build(mgr)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	idx, ok := h.TypeIndex(hashing.Hash("point"))
	if !ok {
		t.Fatal("expected point type index")
	}
	if h.SizeOf(idx) != 8 {
		t.Fatalf("expected size 8, got %d", h.SizeOf(idx))
	}
	xLayout, err := h.Field(hashing.Hash("x"), hashing.Hash("point"))
	if err != nil || xLayout.Offset != 0 {
		t.Fatalf("x layout: %+v, %v", xLayout, err)
	}
	yLayout, err := h.Field(hashing.Hash("y"), hashing.Hash("point"))
	if err != nil || yLayout.Offset != 4 {
		t.Fatalf("y layout: %+v, %v", yLayout, err)
	}
}

func TestNestedCustomFieldInlined(t *testing.T) {
	m := &module.Module{
		Sections: []section.Section{
			{Kind: section.KindStructure, Structure: section.Structure{
				HashName: hashing.Hash("point"),
				Fields: []section.Field{
					{HashName: hashing.Hash("x"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.U32Hash),
					}}},
				},
				Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
			}},
			{Kind: section.KindStructure, Structure: section.Structure{
				HashName: hashing.Hash("line"),
				Fields: []section.Field{
					{HashName: hashing.Hash("a"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.Hash("point")),
					}}},
					{HashName: hashing.Hash("b"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.Hash("point")),
					}}},
				},
				Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
			}},
		},
	}
	mgr := sectionmgr.New()
	if err := mgr.Load(m, memory.New(16)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h, err := Build(mgr)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lineIdx, _ := h.TypeIndex(hashing.Hash("line"))
	if h.SizeOf(lineIdx) != 8 {
		t.Fatalf("expected line size 8 (two nested 4-byte points), got %d", h.SizeOf(lineIdx))
	}
	bLayout, err := h.Field(hashing.Hash("b"), hashing.Hash("line"))
	if err != nil || bLayout.Offset != 4 || !bLayout.IsCustom {
		t.Fatalf("b layout: %+v, %v", bLayout, err)
	}
}

func TestRecursiveStructureRejected(t *testing.T) {
	selfHash := hashing.Hash("node")
	m := &module.Module{
		Sections: []section.Section{
			{Kind: section.KindStructure, Structure: section.Structure{
				HashName: selfHash,
				Fields: []section.Field{
					{HashName: hashing.Hash("next"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(selfHash),
					}}},
				},
				Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
			}},
		},
	}
	mgr := sectionmgr.New()
	if err := mgr.Load(m, memory.New(16)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Build(mgr); err == nil {
		t.Fatal("expected recursive structure error")
	}
}

func TestAssignCopiesFieldBytes(t *testing.T) {
	m := &module.Module{
		Sections: []section.Section{
			{Kind: section.KindStructure, Structure: section.Structure{
				HashName: hashing.Hash("point"),
				Fields: []section.Field{
					{HashName: hashing.Hash("x"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.U32Hash),
					}}},
					{HashName: hashing.Hash("y"), Attributes: section.Attributes{List: []section.Attribute{
						section.Contain(hashing.U32Hash),
					}}},
				},
				Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
			}},
		},
	}
	mgr := sectionmgr.New()
	if err := mgr.Load(m, memory.New(16)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h, err := Build(mgr)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	yLayout, _ := h.Field(hashing.Hash("y"), hashing.Hash("point"))
	dst := make([]byte, 8)
	src := []byte{0xde, 0xad, 0xbe, 0xef}
	h.Assign(yLayout, src, dst, 0)
	if dst[4] != 0xde || dst[5] != 0xad || dst[6] != 0xbe || dst[7] != 0xef {
		t.Fatalf("assign did not write expected bytes: %v", dst)
	}
	if dst[0] != 0 || dst[1] != 0 || dst[2] != 0 || dst[3] != 0 {
		t.Fatalf("assign touched bytes outside the field: %v", dst)
	}
}
