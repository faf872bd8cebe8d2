package codec

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/plan"
	"github.com/wippyai/bebytes/schema"
	"github.com/wippyai/bebytes/validate"
)

const seeds = `
enum Color { Red = 0, Green = 1, Blue = 2 }
flags enum Perms { Read = 1, Write = 2, Execute = 4 }

be record TwoNibbles { high: u8 bits(4) low: u8 bits(4) }
be record Cross { twelve: u16 bits(12) ten: u16 bits(10) seven: u8 bits(7) three: u8 bits(3) }
be record Dynamic { len: u16 data: Vec<u8> from_field(len) checksum: u32 }
be record Marked { data: Vec<u8> until_marker(0xFF) tail: u16 }
be record Paint { color: Color }
be record Access { perms: Perms }
be record Named { name: CString }
`

func buildPlan(t *testing.T, src string) *plan.Plan {
	t.Helper()
	f, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := validate.File(f); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	p, err := plan.Build(f)
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	return p
}

func encode(t *testing.T, r *plan.Record, v map[string]any, order bebytes.Endian) []byte {
	t.Helper()
	var out bebytes.Vec
	if err := Encode(r, v, order, &out); err != nil {
		t.Fatalf("Encode(%s) error: %v", r.Name, err)
	}
	return out
}

func TestSeedEncodings(t *testing.T) {
	p := buildPlan(t, seeds)

	tests := []struct {
		record string
		value  map[string]any
		want   []byte
	}{
		{
			record: "TwoNibbles",
			value:  map[string]any{"high": uint8(0xA), "low": uint8(0x5)},
			want:   []byte{0xA5},
		},
		{
			record: "Cross",
			value:  map[string]any{"twelve": uint16(0x123), "ten": uint16(0x1FF), "seven": uint8(65), "three": uint8(2)},
			want:   []byte{0x12, 0x37, 0xFE, 0x0A},
		},
		{
			record: "Dynamic",
			value:  map[string]any{"len": uint16(5), "data": []byte{0x10, 0x20, 0x30, 0x40, 0x50}, "checksum": uint32(0x12345678)},
			want:   []byte{0x00, 0x05, 0x10, 0x20, 0x30, 0x40, 0x50, 0x12, 0x34, 0x56, 0x78},
		},
		{
			record: "Marked",
			value:  map[string]any{"data": []byte{0xAA, 0xBB}, "tail": uint16(0x1234)},
			want:   []byte{0xAA, 0xBB, 0xFF, 0x12, 0x34},
		},
		{
			record: "Named",
			value:  map[string]any{"name": "hi"},
			want:   []byte{0x68, 0x69, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.record, func(t *testing.T) {
			r := p.Record(tt.record)
			got := encode(t, r, tt.value, bebytes.BigEndian)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("encoding mismatch (-want +got):\n%s", diff)
			}

			back, n, err := Decode(r, got, bebytes.BigEndian)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if n != len(got) {
				t.Errorf("consumed = %d, want %d", n, len(got))
			}
			if diff := cmp.Diff(tt.value, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeedDecodeErrors(t *testing.T) {
	p := buildPlan(t, seeds)

	tests := []struct {
		name   string
		record string
		input  []byte
		want   *bebytes.Error
	}{
		{
			name:   "truncated dynamic",
			record: "Dynamic",
			input:  []byte{0x00, 0x05, 0x10, 0x20, 0x30, 0x40, 0x50, 0x12, 0x34},
			want:   bebytes.InsufficientData(4, 2),
		},
		{
			name:   "marker absent before tail",
			record: "Marked",
			input:  []byte{0xAA, 0xBB, 0x12, 0x34},
			want:   bebytes.MarkerNotFound(0xFF, "data"),
		},
		{
			name:   "undeclared color",
			record: "Paint",
			input:  []byte{7},
			want:   bebytes.InvalidDiscriminant(7, "Color"),
		},
		{
			name:   "undeclared flag",
			record: "Access",
			input:  []byte{8},
			want:   bebytes.InvalidDiscriminant(8, "Perms"),
		},
		{
			name:   "unterminated cstring",
			record: "Named",
			input:  []byte{0x68, 0x69},
			want:   bebytes.InvalidDiscriminant(0, bebytes.TypeCStringMissingNull),
		},
		{
			name:   "empty input",
			record: "TwoNibbles",
			input:  nil,
			want:   bebytes.EmptyBuffer(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(p.Record(tt.record), tt.input, bebytes.BigEndian)
			var got *bebytes.Error
			if !stderrors.As(err, &got) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnumDecode(t *testing.T) {
	p := buildPlan(t, seeds)

	v, n, err := Decode(p.Record("Paint"), []byte{2}, bebytes.BigEndian)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if n != 1 {
		t.Errorf("consumed = %d, want 1", n)
	}
	if got := v["color"].(Enum).String(); got != "Blue" {
		t.Errorf("color = %s, want Blue", got)
	}

	v, _, err = Decode(p.Record("Access"), []byte{5}, bebytes.BigEndian)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got := v["perms"].(Enum).String(); got != "Read|Execute" {
		t.Errorf("perms = %s, want Read|Execute", got)
	}

	// Enum values may be given by name.
	got := encode(t, p.Record("Access"), map[string]any{"perms": "Read|Write"}, bebytes.BigEndian)
	if diff := cmp.Diff([]byte{3}, got); diff != "" {
		t.Errorf("encoding mismatch (-want +got):\n%s", diff)
	}
}

const everything = `
enum Mode { Off = 0, On = 1, Auto = 2 }
flags enum Opts { A = 1, B = 2, C = 4 }

le record Point { x: i16 y: i16 }
le record Item { tag: u8 name: VarString8 }

le record Everything {
	flag: bool
	mode: Mode
	opts: Opts
	small: i8
	wide: u64
	big: u128
	neg: i128
	ratio: f32
	precise: f64
	letter: char
	id: Array<4>
	nib: u8 bits(3)
	level: Mode bits(2)
	sign: i8 bits(3)
	origin: Point
	count: u8
	points: Vec<Point> from_field(count)
	nums: Vec<u16> size(count * 2)
	pair: Vec<u32> size(2)
	title: VarString16
	note: CString
	code: FixedString<5>
	label: String size(3)
	maybe: Option<u32>
	nothing: Option<Array<2>>
	items: Vec<Item> size(2)
	chunks: Vec<Vec<u8>> size(count) until_marker(0x00)
	rest: Vec<u16>
}
`

func everythingValue(p *plan.Plan) map[string]any {
	mode := p.File.Enum("Mode")
	opts := p.File.Enum("Opts")
	return map[string]any{
		"flag":    true,
		"mode":    Enum{Type: mode, Value: 2},
		"opts":    Enum{Type: opts, Value: 5},
		"small":   int8(-3),
		"wide":    uint64(0x0102030405060708),
		"big":     bebytes.Uint128{Hi: 1, Lo: 2},
		"neg":     bebytes.I128(-42),
		"ratio":   float32(1.5),
		"precise": float64(-2.25),
		"letter":  'é',
		"id":      []byte{1, 2, 3, 4},
		"nib":     uint8(7),
		"level":   Enum{Type: mode, Value: 1},
		"sign":    int8(5),
		"origin":  map[string]any{"x": int16(-1), "y": int16(300)},
		"count":   uint8(2),
		"points": []any{
			map[string]any{"x": int16(1), "y": int16(2)},
			map[string]any{"x": int16(3), "y": int16(4)},
		},
		"nums":    []any{uint16(1), uint16(2), uint16(3), uint16(4)},
		"pair":    []any{uint32(7), uint32(8)},
		"title":   "hello",
		"note":    "c",
		"code":    "abc",
		"label":   "xyz",
		"maybe":   uint32(99),
		"nothing": nil,
		"items": []any{
			map[string]any{"tag": uint8(1), "name": "one"},
			map[string]any{"tag": uint8(2), "name": ""},
		},
		"chunks": [][]byte{{0xAA}, {}},
		"rest":   []any{uint16(0xBEEF)},
	}
}

func TestRoundTrip(t *testing.T) {
	p := buildPlan(t, everything)
	r := p.Record("Everything")
	want := everythingValue(p)

	for _, order := range []bebytes.Endian{bebytes.BigEndian, bebytes.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			b := encode(t, r, want, order)
			got, n, err := Decode(r, b, order)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if n != len(b) {
				t.Errorf("consumed = %d, want %d", n, len(b))
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalUsesDeclaredOrder(t *testing.T) {
	p := buildPlan(t, `le record R { a: u16 } be record S { a: u16 }`)
	for name, want := range map[string][]byte{"R": {0x34, 0x12}, "S": {0x12, 0x34}} {
		got, err := Marshal(p.Record(name), map[string]any{"a": 0x1234})
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
		back, _, err := Unmarshal(p.Record(name), got)
		if err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if back["a"] != uint16(0x1234) {
			t.Errorf("%s: a = %v, want 0x1234", name, back["a"])
		}
	}
}

func TestEndianSymmetry(t *testing.T) {
	p := buildPlan(t, `be record R { a: u16 b: u32 c: u64 d: i16 e: u8 }`)
	r := p.Record("R")
	v := map[string]any{
		"a": uint16(0x0102),
		"b": uint32(0x03040506),
		"c": uint64(0x0708090A0B0C0D0E),
		"d": int16(-2),
		"e": uint8(0x7F),
	}

	be := encode(t, r, v, bebytes.BigEndian)
	le := encode(t, r, v, bebytes.LittleEndian)

	off := 0
	for _, f := range r.Fields {
		a, b := be[off:off+f.Size], le[off:off+f.Size]
		for k := range a {
			if a[k] != b[len(b)-1-k] {
				t.Fatalf("%s: BE %x is not the reverse of LE %x", f.Name, a, b)
			}
		}
		off += f.Size
	}

	for _, tc := range []struct {
		b     []byte
		order bebytes.Endian
	}{{be, bebytes.BigEndian}, {le, bebytes.LittleEndian}} {
		got, _, err := Decode(r, tc.b, tc.order)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tc.order, diff)
		}
	}
}

func TestBitFieldCompleteness(t *testing.T) {
	p := buildPlan(t, `be record R { lo: u8 bits(3) mid: u16 bits(11) hi: u8 bits(2) }`)
	r := p.Record("R")

	for _, order := range []bebytes.Endian{bebytes.BigEndian, bebytes.LittleEndian} {
		maxed := map[string]any{"lo": uint8(7), "mid": uint16(0x7FF), "hi": uint8(3)}
		if got := encode(t, r, maxed, order); !bytes.Equal(got, []byte{0xFF, 0xFF}) {
			t.Errorf("%s: max values = %x, want ffff", order, got)
		}
		zero := map[string]any{"lo": uint8(0), "mid": uint16(0), "hi": uint8(0)}
		if got := encode(t, r, zero, order); !bytes.Equal(got, []byte{0, 0}) {
			t.Errorf("%s: zero values = %x, want 0000", order, got)
		}

		for _, v := range []map[string]any{maxed, zero} {
			b := encode(t, r, v, order)
			got, _, err := Decode(r, b, order)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", order, diff)
			}
		}

		var out bebytes.Vec
		err := Encode(r, map[string]any{"lo": uint8(1), "mid": uint16(0x800), "hi": uint8(1)}, order, &out)
		if diff := cmp.Diff(error(bebytes.InvalidBitField("mid", 0x800, 0x7FF)), err); diff != "" {
			t.Errorf("overflow error mismatch (-want +got):\n%s", diff)
		}
		if len(out) != 0 {
			t.Errorf("overflow wrote %x", []byte(out))
		}
	}
}

func TestTypeMismatch(t *testing.T) {
	p := buildPlan(t, `be record R { a: u8 b: Array<2> }`)
	r := p.Record("R")

	tests := []map[string]any{
		{"a": 256},
		{"a": "x"},
		{"b": []byte{1, 2, 3}},
	}
	for _, v := range tests {
		var out bebytes.Vec
		err := Encode(r, v, bebytes.BigEndian, &out)
		if diff := cmp.Diff([]errors.Kind{errors.KindTypeMismatch}, errors.KindsOf(err)); diff != "" {
			t.Errorf("Encode(%v) kinds mismatch (-want +got):\n%s", v, diff)
		}
	}
}

func TestFixedStringLength(t *testing.T) {
	p := buildPlan(t, `be record R { s: String size(3) f: FixedString<2> }`)
	r := p.Record("R")

	var out bebytes.Vec
	err := Encode(r, map[string]any{"s": "ab"}, bebytes.BigEndian, &out)
	if diff := cmp.Diff(error(bebytes.InvalidBitField("s", 2, 3)), err); diff != "" {
		t.Errorf("String error mismatch (-want +got):\n%s", diff)
	}

	out = nil
	err = Encode(r, map[string]any{"s": "abc", "f": "xyz"}, bebytes.BigEndian, &out)
	if diff := cmp.Diff(error(bebytes.InvalidBitField("f", 3, 2)), err); diff != "" {
		t.Errorf("FixedString error mismatch (-want +got):\n%s", diff)
	}
}

func TestSignedBitFields(t *testing.T) {
	p := buildPlan(t, `be record R { a: i8 bits(8) b: i16 bits(16) c: i8 bits(4) d: i8 bits(4) }`)
	r := p.Record("R")

	for _, order := range []bebytes.Endian{bebytes.BigEndian, bebytes.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			in := []byte{0xFF, 0xFF, 0xFE, 0x73}
			v, n, err := Decode(r, in, order)
			if err != nil || n != 4 {
				t.Fatalf("Decode = %d, %v", n, err)
			}
			if v["a"] != int8(-1) {
				t.Errorf("a = %v, want -1", v["a"])
			}
			if got := encode(t, r, v, order); !bytes.Equal(got, in) {
				t.Errorf("re-encode = % X, want % X", got, in)
			}
		})
	}

	var out bebytes.Vec
	err := Encode(r, map[string]any{"c": int8(-1)}, bebytes.BigEndian, &out)
	if diff := cmp.Diff(error(bebytes.InvalidBitField("c", 0xff, 0xf)), err); diff != "" {
		t.Errorf("narrow field error mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedMarkerCount(t *testing.T) {
	p := buildPlan(t, `be record R { parts: Vec<Vec<u8>> size(2) until_marker(0) tail: u8 }`)
	r := p.Record("R")

	var out bebytes.Vec
	err := Encode(r, map[string]any{"parts": [][]byte{{1}, {2}, {3}}, "tail": 9}, bebytes.BigEndian, &out)
	if diff := cmp.Diff(error(bebytes.InvalidBitField("parts", 3, 2)), err); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}

	b := encode(t, r, map[string]any{"parts": [][]byte{{1}, {2}}, "tail": 9}, bebytes.BigEndian)
	if want := []byte{1, 0, 2, 0, 9}; !bytes.Equal(b, want) {
		t.Errorf("encoding = % X, want % X", b, want)
	}
}

func TestNegativeSizeExpression(t *testing.T) {
	p := buildPlan(t, `be record R { n: u8 data: Vec<u8> size(n - 4) }`)
	_, _, err := Decode(p.Record("R"), []byte{1, 0, 0}, bebytes.BigEndian)
	if !stderrors.Is(err, bebytes.ErrInvalidDiscriminant) {
		t.Errorf("err = %v, want InvalidDiscriminant", err)
	}
}

func TestFormat(t *testing.T) {
	p := buildPlan(t, seeds+`be record Outer { inner: TwoNibbles color: Color data: Vec<u8> }`)
	r := p.Record("Outer")
	v, _, err := Decode(r, []byte{0xA5, 0x01, 0xDE, 0xAD}, bebytes.BigEndian)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := "inner:\n  high: 10\n  low: 5\ncolor: Green\ndata: 0xdead\n"
	if got := Format(r, v); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestParseHex(t *testing.T) {
	for _, in := range []string{"0x01 0x02 0xff", "01:02:ff", "0102ff", "1, 2, ff"} {
		got, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", in, err)
		}
		if diff := cmp.Diff([]byte{1, 2, 0xFF}, got); diff != "" {
			t.Errorf("ParseHex(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
	if _, err := ParseHex("zz"); err == nil {
		t.Error("expected error for non-hex input")
	}
}
