// Package section implements the on-wire Attribute/Field/Procedure/
// Structure/Interface/Section shapes and their codec.
package section

import (
	"github.com/pantae35872/craion/internal/buffer"
	"github.com/pantae35872/craion/internal/isa"
	"github.com/pantae35872/craion/internal/vmerr"
)

// AttributeTag identifies the kind of an Attribute.
type AttributeTag byte

// Attribute is a tagged variant describing a declarative property attached
// to procedures, fields, structures, or interfaces.
type Attribute struct {
	Tag     AttributeTag
	Payload uint64   // valid for Contain, Implemented, Return, Overwrite
	List    []uint64 // valid for Accept
}

// Constructors for each attribute variant.

func Public() Attribute             { return Attribute{Tag: AttributeTag(isa.AttrPublic)} }
func Private() Attribute            { return Attribute{Tag: AttributeTag(isa.AttrPrivate)} }
func Static() Attribute             { return Attribute{Tag: AttributeTag(isa.AttrStatic)} }
func Contain(hash uint64) Attribute { return Attribute{Tag: AttributeTag(isa.AttrContain), Payload: hash} }
func Implemented(hash uint64) Attribute {
	return Attribute{Tag: AttributeTag(isa.AttrImplemented), Payload: hash}
}
func Accept(types []uint64) Attribute { return Attribute{Tag: AttributeTag(isa.AttrAccept), List: types} }
func Return(hash uint64) Attribute    { return Attribute{Tag: AttributeTag(isa.AttrReturn), Payload: hash} }
func Overwrite(hash uint64) Attribute { return Attribute{Tag: AttributeTag(isa.AttrOverwrite), Payload: hash} }

func readAttribute(r *buffer.Reader) (Attribute, error) {
	tag, ok := r.ReadU8()
	if !ok {
		return Attribute{}, vmerr.ErrTruncated
	}
	switch tag {
	case isa.AttrPublic, isa.AttrPrivate, isa.AttrStatic:
		return Attribute{Tag: AttributeTag(tag)}, nil
	case isa.AttrContain, isa.AttrImplemented, isa.AttrReturn, isa.AttrOverwrite:
		v, ok := r.ReadU64()
		if !ok {
			return Attribute{}, vmerr.ErrTruncated
		}
		return Attribute{Tag: AttributeTag(tag), Payload: v}, nil
	case isa.AttrAccept:
		count, ok := r.ReadU64()
		if !ok {
			return Attribute{}, vmerr.ErrTruncated
		}
		list := make([]uint64, 0, count)
		for i := uint64(0); i < count; i++ {
			v, ok := r.ReadU64()
			if !ok {
				return Attribute{}, vmerr.ErrTruncated
			}
			list = append(list, v)
		}
		return Attribute{Tag: AttributeTag(tag), List: list}, nil
	default:
		return Attribute{}, &vmerr.UnknownAttributeTagError{Tag: tag}
	}
}

func (a Attribute) writeTo(w *buffer.Writer) {
	w.WriteU8(byte(a.Tag))
	switch byte(a.Tag) {
	case isa.AttrContain, isa.AttrImplemented, isa.AttrReturn, isa.AttrOverwrite:
		w.WriteU64(a.Payload)
	case isa.AttrAccept:
		w.WriteU64(uint64(len(a.List)))
		for _, v := range a.List {
			w.WriteU64(v)
		}
	}
}

// Attributes is an ordered, encoded list of attributes.
type Attributes struct {
	List []Attribute
}

func readAttributes(r *buffer.Reader) (Attributes, error) {
	count, ok := r.ReadU64()
	if !ok {
		return Attributes{}, vmerr.ErrTruncated
	}
	out := make([]Attribute, 0, count)
	for i := uint64(0); i < count; i++ {
		a, err := readAttribute(r)
		if err != nil {
			return Attributes{}, err
		}
		out = append(out, a)
	}
	return Attributes{List: out}, nil
}

func (a Attributes) writeTo(w *buffer.Writer) {
	w.WriteU64(uint64(len(a.List)))
	for _, attr := range a.List {
		attr.writeTo(w)
	}
}

// Has reports whether attrs contains an attribute of the given tag.
func (a Attributes) Has(tag AttributeTag) bool {
	for _, attr := range a.List {
		if attr.Tag == tag {
			return true
		}
	}
	return false
}

// Find returns the first attribute with the given tag.
func (a Attributes) Find(tag AttributeTag) (Attribute, bool) {
	for _, attr := range a.List {
		if attr.Tag == tag {
			return attr, true
		}
	}
	return Attribute{}, false
}

// FindAll returns every attribute with the given tag.
func (a Attributes) FindAll(tag AttributeTag) []Attribute {
	var out []Attribute
	for _, attr := range a.List {
		if attr.Tag == tag {
			out = append(out, attr)
		}
	}
	return out
}

// Field is an on-wire structure field.
type Field struct {
	HashName   uint64
	Attributes Attributes
}

func readField(r *buffer.Reader) (Field, error) {
	hash, ok := r.ReadU64()
	if !ok {
		return Field{}, vmerr.ErrTruncated
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return Field{}, err
	}
	return Field{HashName: hash, Attributes: attrs}, nil
}

func (f Field) writeTo(w *buffer.Writer) {
	w.WriteU64(f.HashName)
	f.Attributes.writeTo(w)
}

// VProcedure is an on-wire interface virtual-procedure signature.
type VProcedure struct {
	HashName   uint64
	Attributes Attributes
}

func readVProcedure(r *buffer.Reader) (VProcedure, error) {
	hash, ok := r.ReadU64()
	if !ok {
		return VProcedure{}, vmerr.ErrTruncated
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return VProcedure{}, err
	}
	return VProcedure{HashName: hash, Attributes: attrs}, nil
}

func (p VProcedure) writeTo(w *buffer.Writer) {
	w.WriteU64(p.HashName)
	p.Attributes.writeTo(w)
}

// Procedure is an on-wire procedure. CodeStart..CodeStart+CodeSize
// indexes the module's data blob.
type Procedure struct {
	HashName   uint64
	CodeStart  uint64
	CodeSize   uint64
	Attributes Attributes
}

func readProcedure(r *buffer.Reader) (Procedure, error) {
	hash, ok := r.ReadU64()
	if !ok {
		return Procedure{}, vmerr.ErrTruncated
	}
	start, ok := r.ReadU64()
	if !ok {
		return Procedure{}, vmerr.ErrTruncated
	}
	size, ok := r.ReadU64()
	if !ok {
		return Procedure{}, vmerr.ErrTruncated
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return Procedure{}, err
	}
	return Procedure{HashName: hash, CodeStart: start, CodeSize: size, Attributes: attrs}, nil
}

func (p Procedure) writeTo(w *buffer.Writer) {
	w.WriteU64(p.HashName)
	w.WriteU64(p.CodeStart)
	w.WriteU64(p.CodeSize)
	p.Attributes.writeTo(w)
}

// Structure is an on-wire structure.
type Structure struct {
	HashName   uint64
	Fields     []Field
	Procedures []Procedure
	Attributes Attributes
}

func readStructure(r *buffer.Reader) (Structure, error) {
	hash, ok := r.ReadU64()
	if !ok {
		return Structure{}, vmerr.ErrTruncated
	}
	fieldCount, ok := r.ReadU64()
	if !ok {
		return Structure{}, vmerr.ErrTruncated
	}
	fields := make([]Field, 0, fieldCount)
	for i := uint64(0); i < fieldCount; i++ {
		f, err := readField(r)
		if err != nil {
			return Structure{}, err
		}
		fields = append(fields, f)
	}
	procCount, ok := r.ReadU64()
	if !ok {
		return Structure{}, vmerr.ErrTruncated
	}
	procs := make([]Procedure, 0, procCount)
	for i := uint64(0); i < procCount; i++ {
		p, err := readProcedure(r)
		if err != nil {
			return Structure{}, err
		}
		procs = append(procs, p)
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return Structure{}, err
	}
	return Structure{HashName: hash, Fields: fields, Procedures: procs, Attributes: attrs}, nil
}

func (s Structure) writeTo(w *buffer.Writer) {
	w.WriteU64(s.HashName)
	w.WriteU64(uint64(len(s.Fields)))
	for _, f := range s.Fields {
		f.writeTo(w)
	}
	w.WriteU64(uint64(len(s.Procedures)))
	for _, p := range s.Procedures {
		p.writeTo(w)
	}
	s.Attributes.writeTo(w)
}

// Interface is an on-wire interface.
type Interface struct {
	HashName    uint64
	VProcedures []VProcedure
	Attributes  Attributes
}

func readInterface(r *buffer.Reader) (Interface, error) {
	hash, ok := r.ReadU64()
	if !ok {
		return Interface{}, vmerr.ErrTruncated
	}
	count, ok := r.ReadU64()
	if !ok {
		return Interface{}, vmerr.ErrTruncated
	}
	vprocs := make([]VProcedure, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readVProcedure(r)
		if err != nil {
			return Interface{}, err
		}
		vprocs = append(vprocs, v)
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return Interface{}, err
	}
	return Interface{HashName: hash, VProcedures: vprocs, Attributes: attrs}, nil
}

func (i Interface) writeTo(w *buffer.Writer) {
	w.WriteU64(i.HashName)
	w.WriteU64(uint64(len(i.VProcedures)))
	for _, v := range i.VProcedures {
		v.writeTo(w)
	}
	i.Attributes.writeTo(w)
}

// Kind identifies which variant a Section holds.
type Kind byte

// Section kinds.
const (
	KindProcedure = Kind(isa.SectionProcedure)
	KindStructure = Kind(isa.SectionStructure)
	KindInterface = Kind(isa.SectionInterface)
)

// Section is the tagged union {Procedure, Structure, Interface}.
type Section struct {
	Kind      Kind
	Procedure Procedure
	Structure Structure
	Interface Interface
}

// ReadSection parses one tagged section from r.
func ReadSection(r *buffer.Reader) (Section, error) {
	tag, ok := r.ReadU8()
	if !ok {
		return Section{}, vmerr.ErrTruncated
	}
	switch tag {
	case isa.SectionProcedure:
		p, err := readProcedure(r)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: KindProcedure, Procedure: p}, nil
	case isa.SectionStructure:
		s, err := readStructure(r)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: KindStructure, Structure: s}, nil
	case isa.SectionInterface:
		i, err := readInterface(r)
		if err != nil {
			return Section{}, err
		}
		return Section{Kind: KindInterface, Interface: i}, nil
	default:
		return Section{}, &vmerr.UnknownSectionTagError{Tag: tag}
	}
}

// WriteTo serialises a section to w.
func (s Section) WriteTo(w *buffer.Writer) {
	w.WriteU8(byte(s.Kind))
	switch s.Kind {
	case KindProcedure:
		s.Procedure.writeTo(w)
	case KindStructure:
		s.Structure.writeTo(w)
	case KindInterface:
		s.Interface.writeTo(w)
	}
}
