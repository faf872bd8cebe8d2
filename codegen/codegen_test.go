package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bebytes"
	bberrors "github.com/wippyai/bebytes/errors"
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
le record Header { id: u32 kind: Color mode: Perms tag: Array<4> ok: bool }
le record Packet {
	hdr: Header
	shade: Color bits(2)
	pad: u8 bits(6)
	count: u8
	items: Vec<u32> from_field(count)
	name: VarString8
	label: FixedString<6>
	code: String size(2)
	opt: Option<u16>
	parts: Vec<Vec<u8>> size(2) until_marker(0)
	rest: Vec<u8> after_marker(0x7E)
}
`

func generate(t *testing.T, src string, opts Options) []byte {
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
	out, err := Generate(p, opts)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return out
}

func parse(t *testing.T, src []byte) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	return f
}

// methods groups the method names of the file by receiver type.
func methods(f *ast.File) map[string][]string {
	out := make(map[string][]string)
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		typ := fn.Recv.List[0].Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		name := typ.(*ast.Ident).Name
		out[name] = append(out[name], fn.Name.Name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

func TestGenerate_Parses(t *testing.T) {
	opts := Options{Package: "wire", Source: "seeds.bb", RawEncode: true}
	src := generate(t, seeds, opts)
	f := parse(t, src)

	if f.Name.Name != "wire" {
		t.Errorf("package = %s, want wire", f.Name.Name)
	}
	if !strings.HasPrefix(string(src), "// Code generated by bebytesgen from seeds.bb. DO NOT EDIT.\n") {
		t.Errorf("missing generated header:\n%s", src[:80])
	}

	var imports []string
	for _, imp := range f.Imports {
		imports = append(imports, strings.Trim(imp.Path.Value, `"`))
	}
	wantImports := []string{"bytes", "encoding/binary", "strconv", "strings", RuntimePath}
	if diff := cmp.Diff(wantImports, imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Methods(t *testing.T) {
	src := generate(t, seeds, Options{Package: "wire", RawEncode: true})
	got := methods(parse(t, src))

	record := []string{
		"DecodeBE", "DecodeLE", "EncodeBE", "EncodeLE", "EncodedSize", "FieldSize",
		"Marshal", "OptimalSerializationMethod", "SupportsRawPointerEncoding",
		"ToBEBytes", "ToLEBytes", "Unmarshal", "decodeBE", "decodeLE",
	}
	raw := append([]string{"EncodeBERaw", "EncodeLERaw"}, record...)
	sort.Strings(raw)

	want := map[string][]string{
		"Color":      {"DecodeBE", "DecodeLE", "EncodeBE", "EncodeLE", "FieldSize", "String"},
		"Perms":      {"Contains", "DecodeBE", "DecodeLE", "EncodeBE", "EncodeLE", "FieldSize", "String"},
		"TwoNibbles": record,
		"Cross":      record,
		"Dynamic":    record,
		"Marked":     record,
		"Header":     raw,
		"Packet":     record,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SignedBits(t *testing.T) {
	src := string(generate(t, `be record S { a: i8 bits(8) b: i16 bits(16) c: i8 bits(4) d: i8 bits(4) }`,
		Options{Package: "wire"}))

	for _, want := range []string{
		"if uint64(uint8(v.C)) > 0xf {",
		`return bebytes.InvalidBitField("c", uint64(uint8(v.C)), 0xf)`,
		"run[0] |= byte(uint64(uint8(v.A)))",
		"binary.BigEndian.PutUint16(run[1:], uint16(v.B))",
		"v.A = int8(uint64(b[i]))",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated code missing %q", want)
		}
	}
	// full-width signed fields take any value, so they get no range check
	for _, unwanted := range []string{"v.A) >", "v.B) >", "uint64(v.C)"} {
		if strings.Contains(src, unwanted) {
			t.Errorf("generated code contains %q", unwanted)
		}
	}
}

func TestGenerate_Snippets(t *testing.T) {
	src := string(generate(t, seeds, Options{Package: "wire", RawEncode: true}))

	for _, want := range []string{
		"const TwoNibblesStaticSize = 1",
		"const CrossStaticSize = 4",
		"const HeaderStaticSize = 11",
		"ColorBlue  Color = 2",
		"const ColorBits = 2",
		"func PermsFromBits(b uint8) (Perms, bool) {",
		`return 0, bebytes.InvalidDiscriminant(x, "Color")`,
		`return bebytes.InvalidBitField("high", uint64(v.High), 0xf)`,
		`return 0, bebytes.MarkerNotFound(0xff, "data")`,
		"Data     []byte // from_field(len)",
		"Tag  [4]byte",
		"Opt   *uint16",
		"Parts [][]byte",
		"Code  string",
		"Label bebytes.FixedString",
		"Name  bebytes.VarString8",
		"func (v Header) EncodeLERaw() [11]byte {",
		`return "raw_pointer"`,
		`return "dynamic_buffer"`,
		"n := int(v.Count)",
		"return r.DecodeLE(b)",
		`return bebytes.InvalidBitField("parts", uint64(len(v.Parts)), 2)`,
		"until_marker(0xFF), must not contain 0xFF",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated code missing %q", want)
		}
	}

	// Enums and records with fixed-size parts reject empty input.
	if strings.Count(src, "return 0, bebytes.EmptyBuffer()") < 2 {
		t.Errorf("public decoders should reject empty input")
	}
}

func TestGenerate_NoRawEncode(t *testing.T) {
	src := string(generate(t, `be record R { a: u32 b: u8 }`, Options{Package: "p"}))
	if strings.Contains(src, "EncodeBERaw") {
		t.Errorf("raw encoders emitted with RawEncode disabled")
	}
	if !strings.Contains(src, `return "static_buffer"`) {
		t.Errorf("method should fall back to static_buffer")
	}
	if !strings.Contains(src, "return false") {
		t.Errorf("SupportsRawPointerEncoding should report false")
	}
}

func TestGenerate_InvalidPackage(t *testing.T) {
	_, err := Generate(&plan.Plan{}, Options{Package: "not a package"})
	if !errors.Is(err, bberrors.New(bberrors.PhaseEmit, bberrors.KindInvalidInput).Build()) {
		t.Errorf("err = %v, want emit/invalid_input", err)
	}
}

func TestChunks_MatchPutBits(t *testing.T) {
	for _, order := range []bebytes.Endian{bebytes.BigEndian, bebytes.LittleEndian} {
		for off := 0; off < 8; off++ {
			for n := 1; n <= 24; n++ {
				v := bebytes.Mask(n) & 0xA5C3E1
				want := make([]byte, 5)
				bebytes.PutBits(want, off, n, v, order)

				got := make([]byte, 5)
				for _, c := range chunks(off, n, order) {
					got[c.index] |= byte((v>>uint(c.shift))&c.mask) << uint(c.pos)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("%s off=%d n=%d (-want +got):\n%s", order, off, n, diff)
				}

				var back uint64
				for _, c := range chunks(off, n, order) {
					back |= uint64(got[c.index]>>uint(c.pos)&byte(c.mask)) << uint(c.shift)
				}
				if back != v {
					t.Fatalf("%s off=%d n=%d: read %#x, want %#x", order, off, n, back, v)
				}
			}
		}
	}
}
