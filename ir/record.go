package ir

import "github.com/wippyai/bebytes"

// File is the IR of one description: every record and enum it declares.
type File struct {
	Records []*Record
	Enums   []*Enum
}

// Record is a struct record: an ordered, non-empty sequence of fields.
type Record struct {
	Name   string
	Fields []*Field
	Line   int
	Endian bebytes.Endian
}

// Field is one record member with its layout attributes. Zero values mean
// the attribute is absent.
type Field struct {
	Type        *Type
	Size        Expr
	UntilMarker *byte
	AfterMarker *byte
	Name        string
	FromField   Path
	Bits        int
	Line        int
}

// Enum is a plain or flags enum. Both encode as a single byte.
type Enum struct {
	Name     string
	Variants []Variant
	Line     int
	Flags    bool
}

// Variant is one named discriminant.
type Variant struct {
	Name  string
	Value uint64
	Line  int
}

// Marker returns a pointer to b, for Field.UntilMarker and Field.AfterMarker.
func Marker(b byte) *byte {
	return &b
}

// Record returns the record named name, or nil.
func (f *File) Record(name string) *Record {
	for _, r := range f.Records {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Enum returns the enum named name, or nil.
func (f *File) Enum(name string) *Enum {
	for _, e := range f.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Field returns the field named name, or nil.
func (r *Record) Field(name string) *Field {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldIndex returns the position of the field named name, or -1.
func (r *Record) FieldIndex(name string) int {
	for i, f := range r.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// HasSize reports whether the field carries size(...).
func (f *Field) HasSize() bool { return f.Size != nil }

// HasFromField reports whether the field carries from_field(...).
func (f *Field) HasFromField() bool { return len(f.FromField) > 0 }

// Governed reports whether the element count or byte length of the field
// is fixed by size or from_field.
func (f *Field) Governed() bool { return f.HasSize() || f.HasFromField() }

// MaxValue returns the largest discriminant of the enum.
func (e *Enum) MaxValue() uint64 {
	var m uint64
	for _, v := range e.Variants {
		m = max(m, v.Value)
	}
	return m
}

// BitWidth is the minimal number of bits holding every discriminant. For
// flags it covers the union of all declared bits.
func (e *Enum) BitWidth() int {
	if e.Flags {
		return bebytes.BitWidth(e.Mask())
	}
	return bebytes.BitWidth(e.MaxValue())
}

// Mask is the OR of every variant value.
func (e *Enum) Mask() uint64 {
	var m uint64
	for _, v := range e.Variants {
		m |= v.Value
	}
	return m
}

// Variant returns the variant with the given value.
func (e *Enum) Variant(value uint64) (Variant, bool) {
	for _, v := range e.Variants {
		if v.Value == value {
			return v, true
		}
	}
	return Variant{}, false
}
