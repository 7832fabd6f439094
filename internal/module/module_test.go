package module

import (
	"bytes"
	"testing"

	"github.com/pantae35872/craion/internal/hashing"
	"github.com/pantae35872/craion/internal/section"
)

func buildScenario6() *Module {
	p := section.Procedure{
		HashName:  hashing.Hash("p"),
		CodeStart: 0,
		CodeSize:  3,
		Attributes: section.Attributes{List: []section.Attribute{
			section.Public(),
			section.Return(hashing.U32Hash),
		}},
	}
	s := section.Structure{
		HashName: hashing.Hash("s"),
		Fields: []section.Field{
			{
				HashName: hashing.Hash("H"),
				Attributes: section.Attributes{List: []section.Attribute{
					section.Public(),
					section.Contain(hashing.U64Hash),
				}},
			},
		},
		Procedures: nil,
		Attributes: section.Attributes{List: []section.Attribute{section.Public()}},
	}
	return &Module{
		Sections: []section.Section{
			{Kind: section.KindProcedure, Procedure: p},
			{Kind: section.KindStructure, Structure: s},
		},
		Data: []byte{0x01, 0x10, 0x00},
	}
}

func TestRoundTripScenario6(t *testing.T) {
	m := buildScenario6()
	emitted := m.Emit()

	parsed, err := Parse(emitted)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reEmitted := parsed.Emit()
	if !bytes.Equal(emitted, reEmitted) {
		t.Fatal("emit is not byte-stable across a parse/emit round trip")
	}

	parsedAgain, err := Parse(reEmitted)
	if err != nil {
		t.Fatalf("Parse (again): %v", err)
	}
	if len(parsedAgain.Sections) != len(parsed.Sections) {
		t.Fatalf("section count mismatch: %d vs %d", len(parsedAgain.Sections), len(parsed.Sections))
	}
	if !bytes.Equal(parsedAgain.Data, parsed.Data) {
		t.Fatal("data blob mismatch across second round trip")
	}
}

func TestParseInvalidMagic(t *testing.T) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := Parse(b); err == nil {
		t.Fatal("expected invalid magic error")
	}
}

func TestParseTruncated(t *testing.T) {
	m := buildScenario6()
	full := m.Emit()
	for cut := 0; cut < len(full); cut++ {
		if _, err := Parse(full[:cut]); err == nil {
			t.Fatalf("expected truncation error at cut=%d", cut)
		}
	}
}

func TestParseUnknownSectionTag(t *testing.T) {
	m := buildScenario6()
	full := m.Emit()
	// Section tag byte sits right after the 4-byte magic + 4-byte count + 8-byte data len.
	corrupted := append([]byte{}, full...)
	corrupted[16] = 0xff
	if _, err := Parse(corrupted); err == nil {
		t.Fatal("expected unknown section tag error")
	}
}
