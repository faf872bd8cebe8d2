package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

// RuntimePath is the import path of the runtime referenced by emitted code.
const RuntimePath = "github.com/wippyai/bebytes"

// Options controls emission.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source names the description in the generated header.
	Source string
	// RawEncode emits EncodeBERaw/EncodeLERaw for eligible records.
	RawEncode bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Package: "wire", RawEncode: true}
}

// Generate returns gofmt'd Go source declaring every enum and record of p
// together with their encode and decode routines.
func Generate(p *plan.Plan, opts Options) ([]byte, error) {
	if p == nil {
		return nil, errors.InvalidInput(errors.PhaseEmit, "nil plan")
	}
	if !ir.IsIdent(opts.Package) {
		return nil, errors.InvalidInput(errors.PhaseEmit, fmt.Sprintf("invalid package name %q", opts.Package))
	}

	g := &generator{plan: p, opts: opts, imports: make(map[string]bool)}
	data := g.file()

	var decls bytes.Buffer
	if err := fileTemplate.Execute(&decls, data); err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInternal, err, "execute template")
	}

	var src bytes.Buffer
	src.WriteString(g.header())
	src.Write(decls.Bytes())

	pretty, err := format.Source(src.Bytes())
	if err != nil {
		Logger().Error("generated invalid Go source", zap.Error(err))
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInternal, err, "generated invalid Go source")
	}
	return pretty, nil
}

type generator struct {
	plan    *plan.Plan
	opts    Options
	imports map[string]bool
}

// use records an import of the emitted file.
func (g *generator) use(path string) {
	g.imports[path] = true
}

func (g *generator) header() string {
	var b strings.Builder
	if g.opts.Source != "" {
		fmt.Fprintf(&b, "// Code generated by bebytesgen from %s. DO NOT EDIT.\n\n", g.opts.Source)
	} else {
		b.WriteString("// Code generated by bebytesgen. DO NOT EDIT.\n\n")
	}
	fmt.Fprintf(&b, "package %s\n\n", g.opts.Package)

	var std, ext []string
	for path := range g.imports {
		if strings.Contains(path, ".") {
			ext = append(ext, path)
		} else {
			std = append(std, path)
		}
	}
	if len(std)+len(ext) == 0 {
		return b.String()
	}
	sort.Strings(std)
	sort.Strings(ext)
	b.WriteString("import (\n")
	for _, path := range std {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	if len(std) > 0 && len(ext) > 0 {
		b.WriteString("\n")
	}
	for _, path := range ext {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	b.WriteString(")\n")
	return b.String()
}

type fileData struct {
	Enums   []enumView
	Records []recordView
}

type enumView struct {
	Name     string
	Src      string
	ZeroName string
	Variants []variantView
	Consts   []string
	Mask     uint64
	Bits     int
	Flags    bool
}

type variantView struct {
	Const string
	Name  string
	Value uint64
}

type recordView struct {
	Name       string
	Src        string
	Endian     string
	Default    string
	Method     string
	SizeBody   string
	Fields     []fieldView
	Orders     []orderView
	StaticSize int
	FieldSize  int
	MinSize    int
	Static     bool
	Raw        bool
}

type fieldView struct {
	Name    string
	Type    string
	Comment string
}

type orderView struct {
	Suffix  string
	Long    string
	Encode  string
	Decode  string
	RawBody string
}

var orders = []struct {
	endian bebytes.Endian
	suffix string
	long   string
}{
	{bebytes.BigEndian, "BE", "big-endian"},
	{bebytes.LittleEndian, "LE", "little-endian"},
}

func (g *generator) file() fileData {
	var data fileData
	for _, e := range g.plan.File.Enums {
		data.Enums = append(data.Enums, g.enum(e))
	}
	for _, r := range g.plan.Records {
		data.Records = append(data.Records, g.record(r))
	}
	if len(data.Enums)+len(data.Records) > 0 {
		g.use(RuntimePath)
	}
	return data
}

func (g *generator) enum(e *ir.Enum) enumView {
	name := ir.GoName(e.Name)
	v := enumView{
		Name:     name,
		Src:      e.Name,
		ZeroName: "0",
		Mask:     e.Mask(),
		Bits:     e.BitWidth(),
		Flags:    e.Flags,
	}
	for _, vr := range e.Variants {
		c := name + ir.GoName(vr.Name)
		v.Variants = append(v.Variants, variantView{Const: c, Name: vr.Name, Value: vr.Value})
		v.Consts = append(v.Consts, c)
		if vr.Value == 0 {
			v.ZeroName = vr.Name
		}
	}
	g.use("strconv")
	if e.Flags {
		g.use("strings")
	}
	return v
}

func (g *generator) record(r *plan.Record) recordView {
	raw := r.Raw && g.opts.RawEncode
	method := r.Method()
	if r.Raw && !raw {
		method = plan.MethodStaticBuffer
	}

	v := recordView{
		Name:       r.GoName,
		Src:        r.Name,
		Endian:     longEndian(r.Endian),
		Default:    shortEndian(r.Endian),
		Method:     string(method),
		StaticSize: r.StaticSize,
		FieldSize:  r.MinSize,
		MinSize:    r.MinSize,
		Static:     r.Static,
		Raw:        raw,
		SizeBody:   g.sizeBody(r),
	}
	for _, f := range r.Fields {
		v.Fields = append(v.Fields, fieldView{
			Name:    f.GoName,
			Type:    g.goType(f),
			Comment: fieldComment(f),
		})
	}
	for _, o := range orders {
		ov := orderView{
			Suffix: o.suffix,
			Long:   o.long,
			Encode: g.encodeBody(r, o.endian),
			Decode: g.decodeBody(r, o.endian),
		}
		if raw {
			ov.RawBody = g.rawBody(r, o.endian)
		}
		v.Orders = append(v.Orders, ov)
	}

	Logger().Debug("generated record",
		zap.String("record", r.Name),
		zap.Int("fields", len(r.Fields)),
		zap.String("method", v.Method))
	return v
}

func longEndian(e bebytes.Endian) string {
	if e == bebytes.LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// fieldComment is the layout attributes of f. Marker-terminated values
// also state that they must not contain their marker, since decoding stops
// at its first occurrence.
func fieldComment(f *plan.Field) string {
	c := f.Attrs()
	if f.Policy == plan.VecUntilMarker {
		c += fmt.Sprintf(", must not contain 0x%02X", f.Marker)
	}
	return c
}

func shortEndian(e bebytes.Endian) string {
	if e == bebytes.LittleEndian {
		return "LE"
	}
	return "BE"
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"join": strings.Join,
	"hex":  func(v uint64) string { return fmt.Sprintf("%#x", v) },
}).Parse(`
{{- range .Enums}}{{template "enum" .}}{{end}}
{{- range .Records}}{{template "record" .}}{{end}}

{{- define "enum"}}
{{if .Flags}}// {{.Name}} is a set of one-byte flags.{{else}}// {{.Name}} is a one-byte enum.{{end}}
type {{.Name}} uint8

const (
{{- range .Variants}}
	{{.Const}} {{$.Name}} = {{.Value}}
{{- end}}
)

// {{.Name}}Bits is the minimal bit width holding every {{.Name}} value.
const {{.Name}}Bits = {{.Bits}}

{{if .Flags -}}
// {{.Name}}FromBits returns b as a {{.Name}}, or false when b sets an undeclared flag.
func {{.Name}}FromBits(b uint8) ({{.Name}}, bool) {
	if b&^{{hex .Mask}} != 0 {
		return 0, false
	}
	return {{.Name}}(b), true
}

// Contains reports whether every flag of o is set in f.
func (f {{.Name}}) Contains(o {{.Name}}) bool {
	return f&o == o
}

func (e {{.Name}}) String() string {
	if e == 0 {
		return "{{.ZeroName}}"
	}
	var names []string
{{- range .Variants}}{{if .Value}}
	if e&{{.Const}} != 0 {
		names = append(names, "{{.Name}}")
	}
{{- end}}{{end}}
	if rest := e &^ {{hex .Mask}}; rest != 0 {
		names = append(names, strconv.Itoa(int(rest)))
	}
	return strings.Join(names, "|")
}
{{- else -}}
// {{.Name}}FromBits returns b as a {{.Name}}, or false when b is not a declared discriminant.
func {{.Name}}FromBits(b uint8) ({{.Name}}, bool) {
	switch {{.Name}}(b) {
	case {{join .Consts ", "}}:
		return {{.Name}}(b), true
	}
	return 0, false
}

func (e {{.Name}}) String() string {
	switch e {
{{- range .Variants}}
	case {{.Const}}:
		return "{{.Name}}"
{{- end}}
	}
	return "{{.Src}}(" + strconv.Itoa(int(e)) + ")"
}
{{- end}}

func decode{{.Name}}(x uint64) ({{.Name}}, error) {
	if x <= 0xff {
		if e, ok := {{.Name}}FromBits(uint8(x)); ok {
			return e, nil
		}
	}
	return 0, bebytes.InvalidDiscriminant(x, "{{.Src}}")
}

// EncodeBE writes e as a single byte.
func (e {{.Name}}) EncodeBE(buf bebytes.BufMut) error {
	buf.PutU8(uint8(e))
	return nil
}

// EncodeLE writes e as a single byte.
func (e {{.Name}}) EncodeLE(buf bebytes.BufMut) error {
	return e.EncodeBE(buf)
}

// DecodeBE reads e from the first byte of b.
func (e *{{.Name}}) DecodeBE(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, bebytes.EmptyBuffer()
	}
	x, err := decode{{.Name}}(uint64(b[0]))
	if err != nil {
		return 0, err
	}
	*e = x
	return 1, nil
}

// DecodeLE reads e from the first byte of b.
func (e *{{.Name}}) DecodeLE(b []byte) (int, error) {
	return e.DecodeBE(b)
}

func ({{.Name}}) FieldSize() int { return 1 }
{{end}}

{{- define "record"}}
// {{.Name}} is the {{.Endian}} {{.Src}} record.
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}{{if .Comment}} // {{.Comment}}{{end}}
{{- end}}
}
{{if .Static}}
// {{.Name}}StaticSize is the encoded size of every {{.Name}}.
const {{.Name}}StaticSize = {{.StaticSize}}

// FieldSize returns the encoded size of every {{.Name}}.
func ({{.Name}}) FieldSize() int {
	return {{.Name}}StaticSize
}
{{else}}
// FieldSize returns the size of the fixed-size parts of {{.Name}}, a lower
// bound on its encoded size.
func ({{.Name}}) FieldSize() int {
	return {{.FieldSize}}
}
{{end}}
// EncodedSize returns the number of bytes v encodes to.
func (v {{.Name}}) EncodedSize() int {
{{.SizeBody}}}

// SupportsRawPointerEncoding reports whether {{.Name}} has fixed-array encoders.
func ({{.Name}}) SupportsRawPointerEncoding() bool {
	return {{.Raw}}
}

// OptimalSerializationMethod names the fastest encoding path for {{.Name}}.
func ({{.Name}}) OptimalSerializationMethod() string {
	return "{{.Method}}"
}
{{range .Orders}}
// Encode{{.Suffix}} appends the {{.Long}} encoding of v to buf.
func (v {{$.Name}}) Encode{{.Suffix}}(buf bebytes.BufMut) error {
{{.Encode}}	return nil
}

// Decode{{.Suffix}} decodes a {{.Long}} {{$.Name}} from the front of b and
// returns the number of bytes consumed. r is unchanged on error.
func (r *{{$.Name}}) Decode{{.Suffix}}(b []byte) (int, error) {
{{- if $.MinSize}}
	if len(b) == 0 {
		return 0, bebytes.EmptyBuffer()
	}
{{- end}}
	return r.decode{{.Suffix}}(b)
}

func (r *{{$.Name}}) decode{{.Suffix}}(b []byte) (int, error) {
	var v {{$.Name}}
	i := 0
{{.Decode}}	*r = v
	return i, nil
}

// To{{.Suffix}}Bytes returns the {{.Long}} encoding of v. It panics when a
// field value does not fit its declared width.
func (v {{$.Name}}) To{{.Suffix}}Bytes() []byte {
	return bebytes.To{{.Suffix}}Bytes(&v)
}
{{if $.Raw}}
// Encode{{.Suffix}}Raw returns the {{.Long}} encoding of v in a fixed-size array.
func (v {{$.Name}}) Encode{{.Suffix}}Raw() [{{$.StaticSize}}]byte {
	var out [{{$.StaticSize}}]byte
{{.RawBody}}	return out
}
{{end}}
{{- end}}
// Marshal returns the {{.Endian}} encoding of v.
func (v {{.Name}}) Marshal() ([]byte, error) {
	out := make(bebytes.Vec, 0, v.EncodedSize())
	if err := v.Encode{{.Default}}(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Unmarshal decodes the {{.Endian}} encoding of a {{.Name}} from b.
func (r *{{.Name}}) Unmarshal(b []byte) (int, error) {
	return r.Decode{{.Default}}(b)
}
{{end}}
`))
