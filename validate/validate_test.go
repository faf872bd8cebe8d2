package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/schema"
)

func check(t *testing.T, src string) []errors.Kind {
	t.Helper()
	f, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return errors.KindsOf(File(f))
}

func TestFile_Valid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"nibbles", `be record TwoNibbles { high: u8 bits(4) low: u8 bits(4) }`},
		{"cross", `be record Cross { twelve: u16 bits(12) ten: u16 bits(10) seven: u8 bits(7) three: u8 bits(3) }`},
		{"dynamic", `be record Dynamic { len: u16 data: Vec<u8> from_field(len) checksum: u32 }`},
		{"until marker", `be record M { data: Vec<u8> until_marker(0xFF) tail: u16 }`},
		{"after marker", `le record A { id: u8 rest: Vec<u8> after_marker(0x7E) }`},
		{"nested vectors", `be record N { count: u8 parts: Vec<Vec<u8>> from_field(count) until_marker(0) crc: u16 }`},
		{"nested path", `
			be record Hdr { count: u16 kind: u8 }
			be record Msg { hdr: Hdr items: Vec<u32> from_field(hdr.count) tail: u8 }`},
		{"size expression", `be record S { n: u8 data: Vec<u16> size(n * 2 + 1) s: String size(n % 4) end: u8 }`},
		{"enum in bits", `
			enum Color { Red = 0, Green = 1, Blue = 2 }
			be record P { c: Color bits(2) pad: u8 bits(6) }`},
		{"flags", `flags enum Perms { None = 0, Read = 1, Write = 2, Execute = 4 }`},
		{"strings", `be record T { a: CString b: VarString16 c: FixedString<8> d: Vec<u8> }`},
		{"trailing sub-record list", `
			be record E { a: u8 b: u16 }
			be record L { n: u8 items: Vec<E> }`},
		{"open record last", `
			be record Open { a: u8 rest: Vec<u8> }
			be record Outer { x: u32 inner: Open }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if kinds := check(t, tt.src); kinds != nil {
				t.Errorf("unexpected errors: %v", kinds)
			}
		})
	}
}

func TestFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []errors.Kind
	}{
		{
			"incomplete byte before field",
			`be record R { a: u8 bits(3) b: u8 }`,
			[]errors.Kind{errors.KindIncompleteByte},
		},
		{
			"record ends mid-byte",
			`be record R { a: u8 bits(4) b: u8 bits(5) }`,
			[]errors.Kind{errors.KindIncompleteByte},
		},
		{
			"from_field forward",
			`be record R { data: Vec<u8> from_field(len) len: u8 }`,
			[]errors.Kind{errors.KindBadReference},
		},
		{
			"from_field signed",
			`be record R { len: i16 data: Vec<u8> from_field(len) }`,
			[]errors.Kind{errors.KindBadReference},
		},
		{
			"from_field into non record",
			`be record R { len: u8 data: Vec<u8> from_field(len.x) }`,
			[]errors.Kind{errors.KindBadReference},
		},
		{
			"size references missing field",
			`be record R { data: Vec<u8> size(n + 1) }`,
			[]errors.Kind{errors.KindBadReference},
		},
		{
			"size divides by field",
			`be record R { n: u8 d: u8 data: Vec<u8> size(n / d) }`,
			[]errors.Kind{errors.KindMalformedAttribute},
		},
		{
			"size negative",
			`be record R { data: Vec<u8> size(1 - 2) }`,
			[]errors.Kind{errors.KindMalformedAttribute},
		},
		{
			"size and from_field",
			`be record R { n: u8 data: Vec<u8> size(2) from_field(n) }`,
			[]errors.Kind{errors.KindMalformedAttribute},
		},
		{
			"size on primitive",
			`be record R { a: u32 size(2) }`,
			[]errors.Kind{errors.KindMalformedAttribute},
		},
		{
			"both markers",
			`be record R { data: Vec<u8> until_marker(1) after_marker(2) }`,
			[]errors.Kind{errors.KindMarkerGovernance},
		},
		{
			"nested vector without governance",
			`be record R { parts: Vec<Vec<u8>> until_marker(0) }`,
			[]errors.Kind{errors.KindMarkerGovernance},
		},
		{
			"nested vector after marker",
			`be record R { parts: Vec<Vec<u8>> size(2) after_marker(0) }`,
			[]errors.Kind{errors.KindMarkerGovernance},
		},
		{
			"marker on u32 vector",
			`be record R { data: Vec<u32> until_marker(0) }`,
			[]errors.Kind{errors.KindMalformedAttribute},
		},
		{
			"after marker not last",
			`be record R { data: Vec<u8> after_marker(0) x: u8 }`,
			[]errors.Kind{errors.KindTrailingVector},
		},
		{
			"trailing vector",
			`be record R { data: Vec<u8> x: u8 }`,
			[]errors.Kind{errors.KindTrailingVector},
		},
		{
			"trailing string",
			`be record R { s: String x: u8 }`,
			[]errors.Kind{errors.KindTrailingVector},
		},
		{
			"bits wider than type",
			`be record R { a: u8 bits(9) b: u8 bits(7) }`,
			[]errors.Kind{errors.KindInvalidBitWidth},
		},
		{
			"bits on float",
			`be record R { a: f32 bits(8) }`,
			[]errors.Kind{errors.KindInvalidBitWidth},
		},
		{
			"bits on bool",
			`be record R { a: bool bits(8) }`,
			[]errors.Kind{errors.KindInvalidBitWidth},
		},
		{
			"bits on u128",
			`be record R { a: u128 bits(64) }`,
			[]errors.Kind{errors.KindInvalidBitWidth},
		},
		{
			"enum too narrow",
			`enum Color { Red = 0, Green = 1, Blue = 2 }
			 be record R { c: Color bits(1) pad: u8 bits(7) }`,
			[]errors.Kind{errors.KindInvalidBitWidth},
		},
		{
			"unknown type",
			`be record R { h: Header }`,
			[]errors.Kind{errors.KindBadReference},
		},
		{
			"circular",
			`be record A { b: B }
			 be record B { a: Vec<A> }`,
			[]errors.Kind{errors.KindCircularRecord},
		},
		{
			"open record embedded",
			`be record Open { a: u8 rest: Vec<u8> }
			 be record Outer { inner: Open x: u32 }`,
			[]errors.Kind{errors.KindTrailingVector},
		},
		{
			"open record as element",
			`be record Open { a: u8 rest: Vec<u8> }
			 be record Outer { items: Vec<Open> }`,
			[]errors.Kind{errors.KindTrailingVector},
		},
		{
			"empty record",
			`be record R { }`,
			[]errors.Kind{errors.KindEmptyRecord},
		},
		{
			"discriminant overflow",
			`enum E { A = 0, B = 256 }`,
			[]errors.Kind{errors.KindDiscriminantOverflow},
		},
		{
			"flags not power of two",
			`flags enum F { A = 1, B = 3 }`,
			[]errors.Kind{errors.KindInvalidFlagsEnum},
		},
		{
			"flags repeated",
			`flags enum F { A = 1, B = 1 }`,
			[]errors.Kind{errors.KindInvalidFlagsEnum},
		},
		{
			"plain enum repeated value",
			`enum E { A = 1, B = 1 }`,
			[]errors.Kind{errors.KindDuplicateName},
		},
		{
			"reserved field name",
			`be record R { field_size: u8 }`,
			[]errors.Kind{errors.KindDuplicateName},
		},
		{
			"go name collision",
			`be record R { msg_id: u8 msgID: u8 }`,
			[]errors.Kind{errors.KindDuplicateName},
		},
		{
			"several problems reported together",
			`be record R { a: u8 bits(3) b: u8 data: Vec<u8> c: u8 }`,
			[]errors.Kind{errors.KindIncompleteByte, errors.KindTrailingVector},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, check(t, tt.src)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFile_ErrorPathAndLine(t *testing.T) {
	f, err := schema.Parse("be record R {\n a: u8 bits(3)\n b: u8\n}")
	if err != nil {
		t.Fatal(err)
	}
	verr := File(f)
	e, ok := verr.(*errors.Error)
	if !ok {
		t.Fatalf("err = %T, want *errors.Error", verr)
	}
	if e.Phase != errors.PhaseValidate || e.Line != 3 {
		t.Errorf("phase = %s, line = %d", e.Phase, e.Line)
	}
	if diff := cmp.Diff([]string{"R", "b"}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}
