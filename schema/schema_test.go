package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

const seeds = `
be record TwoNibbles {
	high: u8 bits(4)
	low: u8 bits(4)
}

be record Dynamic {
	len: u16
	data: Vec<u8> from_field(len)
	checksum: u32
}

le record Framed {
	data: Vec<u8> until_marker(0xFF)
	tail: u16
}

enum Color { Red = 0, Green = 1, Blue = 2 }
flags enum Perms { Read = 1, Write = 2, Execute = 4 }
`

func TestParse(t *testing.T) {
	f, err := Parse(seeds)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(f.Records) != 3 || len(f.Enums) != 2 {
		t.Fatalf("got %d records, %d enums", len(f.Records), len(f.Enums))
	}

	want := &ir.Record{
		Name:   "Dynamic",
		Endian: bebytes.BigEndian,
		Line:   7,
		Fields: []*ir.Field{
			{Name: "len", Type: ir.Prim(ir.KindU16), Line: 8},
			{Name: "data", Type: ir.VecOf(ir.Prim(ir.KindU8)), FromField: ir.Path{"len"}, Line: 9},
			{Name: "checksum", Type: ir.Prim(ir.KindU32), Line: 10},
		},
	}
	if diff := cmp.Diff(want, f.Record("Dynamic")); diff != "" {
		t.Errorf("Dynamic mismatch (-want +got):\n%s", diff)
	}

	framed := f.Record("Framed")
	if framed.Endian != bebytes.LittleEndian {
		t.Errorf("Framed endian = %v, want le", framed.Endian)
	}
	if m := framed.Fields[0].UntilMarker; m == nil || *m != 0xFF {
		t.Errorf("until_marker = %v, want 0xFF", m)
	}
	if nib := f.Record("TwoNibbles"); nib.Fields[0].Bits != 4 || nib.Fields[1].Bits != 4 {
		t.Errorf("bits = %d, %d", nib.Fields[0].Bits, nib.Fields[1].Bits)
	}
	if perms := f.Enum("Perms"); !perms.Flags || perms.Mask() != 7 {
		t.Errorf("Perms = %+v", perms)
	}
}

func TestBuild_CollectsErrors(t *testing.T) {
	desc := FileDesc{Records: []RecordDesc{{
		Name: "Bad",
		Fields: []FieldDesc{
			{Name: "a", Type: "Vec<Vec<u16>>"},
			{Name: "b", Type: "u8", Attrs: []string{"bits(0)"}},
			{Name: "c", Type: "u8", Attrs: []string{"bits(3)", "bits(5)"}},
			{Name: "d", Type: "Vec<u8>", Attrs: []string{"size(len *)"}},
			{Name: "e", Type: "Vec<u8>", Attrs: []string{"until_marker(256)"}},
			{Name: "f", Type: "Vec<u8>", Attrs: []string{"from_field(a..b)"}},
			{Name: "g", Type: "u8", Attrs: []string{"align(4)"}},
			{Name: "b", Type: "u8"},
		},
	}}}

	_, err := Build(desc)
	if err == nil {
		t.Fatal("expected errors")
	}
	want := []errors.Kind{
		errors.KindUnsupportedType,
		errors.KindMalformedAttribute,
		errors.KindDuplicateAttribute,
		errors.KindMalformedAttribute,
		errors.KindMalformedAttribute,
		errors.KindMalformedAttribute,
		errors.KindMalformedAttribute,
		errors.KindDuplicateName,
	}
	if diff := cmp.Diff(want, errors.KindsOf(err)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}

	list := err.(errors.List)
	if got := strings.Join(list[0].Path, "."); got != "Bad.a" {
		t.Errorf("first error path = %q, want Bad.a", got)
	}
}

func TestBuild_DuplicateDeclarations(t *testing.T) {
	desc := FileDesc{
		Records: []RecordDesc{{Name: "X", Fields: []FieldDesc{{Name: "a", Type: "u8"}}}},
		Enums:   []EnumDesc{{Name: "X", Variants: []VariantDesc{{Name: "A"}, {Name: "A", Value: 1}}}},
	}
	_, err := Build(desc)
	want := []errors.Kind{errors.KindDuplicateName, errors.KindDuplicateName}
	if diff := cmp.Diff(want, errors.KindsOf(err)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SyntaxErrorLine(t *testing.T) {
	_, err := Parse("be record X {\n a: u8\n b u8\n}")
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindSyntax || e.Line != 3 {
		t.Fatalf("err = %v, want syntax error at line 3", err)
	}
}

func TestParse_AttributeLine(t *testing.T) {
	_, err := Parse("be record X {\n a: u8\n b: u8 bits(99)\n}")
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindMalformedAttribute || e.Line != 3 {
		t.Fatalf("err = %v, want malformed attribute at line 3", err)
	}
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"4", "4"},
		{"len", "len"},
		{"hdr.count", "hdr.count"},
		{"len * 2 + 1", "((len * 2) + 1)"},
		{"len + 2 * 3", "(len + (2 * 3))"},
		{"(a + b) % 0x10", "((a + b) % 16)"},
		{"a - b - c", "((a - b) - c)"},
		{"total / 4", "(total / 4)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpr(tt.src)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error: %v", tt.src, err)
			}
			if got := e.String(); got != tt.want {
				t.Errorf("ParseExpr(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "(a", "a +", "a b", "hdr.", "2 # 3", "*"} {
		if _, err := ParseExpr(bad); err == nil {
			t.Errorf("ParseExpr(%q) should fail", bad)
		}
	}
}

func strPtr(s string) *string { return &s }

func TestFromWIT(t *testing.T) {
	color := &wit.TypeDef{
		Name: strPtr("color"),
		Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "red"}, {Name: "green"}}},
	}
	perms := &wit.TypeDef{
		Name: strPtr("perms"),
		Kind: &wit.Flags{Flags: []wit.Flag{{Name: "read"}, {Name: "write"}}},
	}
	pkt := &wit.TypeDef{
		Name: strPtr("packet-header"),
		Kind: &wit.Record{Fields: []wit.Field{
			{Name: "msg-id", Type: wit.U32{}},
			{Name: "signed", Type: wit.S16{}},
			{Name: "tint", Type: color},
			{Name: "label", Type: wit.String{}},
			{Name: "maybe", Type: &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}},
			{Name: "body", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
		}},
	}

	defs, err := SelectWIT([]*wit.TypeDef{pkt, color, perms}, "packet-header")
	if err != nil {
		t.Fatalf("SelectWIT error: %v", err)
	}
	if len(defs) != 2 || defs[0] != color || defs[1] != pkt {
		t.Fatalf("SelectWIT should order dependencies first, got %d defs", len(defs))
	}

	f, err := FromWIT([]*wit.TypeDef{color, perms, pkt}, bebytes.LittleEndian)
	if err != nil {
		t.Fatalf("FromWIT error: %v", err)
	}

	rec := f.Record("packet_header")
	if rec == nil || rec.Endian != bebytes.LittleEndian {
		t.Fatalf("record = %+v", rec)
	}
	var types []string
	for _, fl := range rec.Fields {
		types = append(types, fl.Name+":"+fl.Type.String())
	}
	want := []string{"msg_id:u32", "signed:i16", "tint:color", "label:VarString32", "maybe:Option<u8>", "body:Vec<u8>"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	if p := f.Enum("perms"); !p.Flags || p.Variants[1].Value != 2 {
		t.Errorf("perms = %+v", p)
	}
	if c := f.Enum("color"); c.Flags || c.Variants[1].Value != 1 {
		t.Errorf("color = %+v", c)
	}
}

func TestFromWIT_Unsupported(t *testing.T) {
	variant := &wit.TypeDef{
		Name: strPtr("shape"),
		Kind: &wit.Variant{Cases: []wit.Case{{Name: "circle", Type: wit.F32{}}}},
	}
	rec := &wit.TypeDef{
		Name: strPtr("bad"),
		Kind: &wit.Record{Fields: []wit.Field{
			{Name: "nested", Type: &wit.TypeDef{Kind: &wit.List{Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U32{}}}}}},
		}},
	}
	_, err := FromWIT([]*wit.TypeDef{variant, rec}, bebytes.BigEndian)
	want := []errors.Kind{errors.KindUnsupportedType, errors.KindUnsupportedType}
	if diff := cmp.Diff(want, errors.KindsOf(err)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}
