package validate

import (
	"fmt"

	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

// File checks every record and enum of f and returns all violations as an
// errors.List, or nil.
func File(f *ir.File) error {
	v := &validator{file: f}
	v.names()
	for _, r := range f.Records {
		v.record(r)
	}
	v.cycles()
	for _, r := range f.Records {
		v.embedding(r)
	}
	for _, e := range f.Enums {
		v.enum(e)
	}
	return v.errs.Err()
}

type validator struct {
	file *ir.File
	errs errors.List
}

func (v *validator) fail(kind errors.Kind, path []string, line int, format string, args ...any) {
	v.errs.Add(errors.New(errors.PhaseValidate, kind).
		Path(path...).Line(line).Detail(format, args...).Build())
}

// names rejects declarations and fields whose Go names collide.
func (v *validator) names() {
	decls := make(map[string]string)
	check := func(name string, line int) {
		g := ir.GoName(name)
		if prev, ok := decls[g]; ok && prev != name {
			v.fail(errors.KindDuplicateName, []string{name}, line, "Go name %s is also used by %s", g, prev)
		}
		decls[g] = name
	}
	for _, r := range v.file.Records {
		check(r.Name, r.Line)
		fields := make(map[string]string)
		for _, f := range r.Fields {
			g := ir.GoName(f.Name)
			if ir.IsReserved(g) {
				v.fail(errors.KindDuplicateName, []string{r.Name, f.Name}, f.Line, "Go name %s collides with a generated method", g)
			} else if prev, ok := fields[g]; ok && prev != f.Name {
				v.fail(errors.KindDuplicateName, []string{r.Name, f.Name}, f.Line, "Go name %s is also used by %s", g, prev)
			}
			fields[g] = f.Name
		}
	}
	for _, e := range v.file.Enums {
		check(e.Name, e.Line)
	}
}

func (v *validator) record(r *ir.Record) {
	if len(r.Fields) == 0 {
		v.fail(errors.KindEmptyRecord, []string{r.Name}, r.Line, "record has no fields")
		return
	}

	cursor := 0
	for i, f := range r.Fields {
		path := []string{r.Name, f.Name}
		if f.Bits > 0 {
			cursor += f.Bits
		} else if cursor%8 != 0 {
			e := errors.IncompleteByte(path, cursor)
			e.Line = f.Line
			v.errs.Add(e)
			cursor += 8 - cursor%8
		}
		v.field(r, i, f)
	}
	if cursor%8 != 0 {
		last := r.Fields[len(r.Fields)-1]
		e := errors.IncompleteByte([]string{r.Name, last.Name}, cursor)
		e.Line = last.Line
		e.Detail = fmt.Sprintf("record ends mid-byte: %s", e.Detail)
		v.errs.Add(e)
	}
}

func (v *validator) field(r *ir.Record, i int, f *ir.Field) {
	path := []string{r.Name, f.Name}
	t := f.Type
	last := i == len(r.Fields)-1
	if t == nil {
		v.fail(errors.KindUnsupportedType, path, f.Line, "field has no type")
		return
	}

	v.typeRefs(path, f.Line, t)

	if f.Bits > 0 {
		v.bits(path, f)
	}

	if f.Governed() {
		if t.Kind != ir.KindVec && t.Kind != ir.KindString {
			v.fail(errors.KindMalformedAttribute, path, f.Line, "size and from_field apply to vectors and String, not %s", t)
		}
		if f.HasSize() && f.HasFromField() {
			v.fail(errors.KindMalformedAttribute, path, f.Line, "size and from_field are mutually exclusive")
		}
	}
	if f.HasFromField() {
		v.reference(r, i, path, f.Line, f.FromField)
	}
	if f.HasSize() {
		v.sizeExpr(r, i, path, f.Line, f.Size)
	}

	v.markers(path, f)

	if unbounded(f) && !last {
		v.fail(errors.KindTrailingVector, path, f.Line, "%s consumes the remaining input and must be the last field", t)
	}
}

// unbounded reports whether f consumes the rest of its input.
func unbounded(f *ir.Field) bool {
	t := f.Type
	if t == nil || f.Governed() || f.UntilMarker != nil {
		return false
	}
	if f.AfterMarker != nil {
		return true
	}
	return t.Kind == ir.KindString || (t.Kind == ir.KindVec && !t.IsNestedByteVec())
}

func (v *validator) typeRefs(path []string, line int, t *ir.Type) {
	for t != nil {
		if t.Kind == ir.KindRecord && v.file.Record(t.Name) == nil && v.file.Enum(t.Name) == nil {
			v.fail(errors.KindBadReference, path, line, "type %s is not declared", t.Name)
		}
		t = t.Elem
	}
}

func (v *validator) bits(path []string, f *ir.Field) {
	t := f.Type
	n := f.Bits
	switch {
	case t.Kind == ir.KindRecord:
		en := v.file.Enum(t.Name)
		if en == nil {
			v.fail(errors.KindInvalidBitWidth, path, f.Line, "bits(%d) applies to integers, char and enums, not record %s", n, t.Name)
			return
		}
		if n > 8 || n < en.BitWidth() {
			v.fail(errors.KindInvalidBitWidth, path, f.Line, "enum %s needs between %d and 8 bits, got %d", en.Name, en.BitWidth(), n)
		}
	case t.Kind.IsFloat():
		v.fail(errors.KindInvalidBitWidth, path, f.Line, "floating-point fields cannot be bit-packed")
	case t.Kind == ir.KindU128 || t.Kind == ir.KindI128:
		v.fail(errors.KindInvalidBitWidth, path, f.Line, "128-bit fields cannot be bit-packed")
	case t.Kind.IsInteger() || t.Kind == ir.KindChar:
		if n > t.Kind.Bits() {
			v.fail(errors.KindInvalidBitWidth, path, f.Line, "bits(%d) exceeds the %d-bit width of %s", n, t.Kind.Bits(), t)
		}
	default:
		v.fail(errors.KindInvalidBitWidth, path, f.Line, "bits(%d) applies to integers, char and enums, not %s", n, t)
	}
}

func (v *validator) reference(r *ir.Record, i int, path []string, line int, p ir.Path) {
	chain, detail := v.file.Resolve(r, i, p)
	if chain == nil {
		e := errors.BadReference(path, p.String(), detail)
		e.Line = line
		v.errs.Add(e)
		return
	}
	if target := chain[len(chain)-1]; !target.IsLengthSource() {
		e := errors.BadReference(path, p.String(), "must name an unsigned integer field of at most 64 bits, not "+target.Type.String())
		e.Line = line
		v.errs.Add(e)
	}
}

func (v *validator) sizeExpr(r *ir.Record, i int, path []string, line int, e ir.Expr) {
	for _, p := range ir.Refs(e) {
		v.reference(r, i, path, line, p)
	}
	for _, d := range ir.Divisors(e) {
		if lit, ok := d.(ir.Lit); !ok || lit.Value == 0 {
			v.fail(errors.KindMalformedAttribute, path, line, "size: divisor %s must be a non-zero literal", d)
		}
	}
	if n, ok := ir.Fold(e); ok && n < 0 {
		v.fail(errors.KindMalformedAttribute, path, line, "size: %s evaluates to %d", e, n)
	}
}

func (v *validator) markers(path []string, f *ir.Field) {
	t := f.Type
	until, after := f.UntilMarker != nil, f.AfterMarker != nil

	if until && after {
		v.fail(errors.KindMarkerGovernance, path, f.Line, "until_marker and after_marker are mutually exclusive")
		return
	}

	switch {
	case t.IsNestedByteVec():
		switch {
		case after:
			v.fail(errors.KindMarkerGovernance, path, f.Line, "after_marker is not allowed on Vec<Vec<u8>>")
		case !until || !f.Governed():
			v.fail(errors.KindMarkerGovernance, path, f.Line, "Vec<Vec<u8>> needs until_marker and size or from_field")
		}
	case until || after:
		if !t.IsByteVec() {
			v.fail(errors.KindMalformedAttribute, path, f.Line, "markers apply to Vec<u8> and Vec<Vec<u8>>, not %s", t)
			return
		}
		if f.Governed() {
			v.fail(errors.KindMarkerGovernance, path, f.Line, "a marker-delimited Vec<u8> cannot also carry size or from_field")
		}
	}
}

// cycles rejects records that contain themselves through sub-record or
// vector-of-record fields.
func (v *validator) cycles() {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)
	var visit func(r *ir.Record)
	visit = func(r *ir.Record) {
		color[r.Name] = grey
		for _, f := range r.Fields {
			name := recordRef(f.Type)
			sub := v.file.Record(name)
			if sub == nil {
				continue
			}
			switch color[name] {
			case grey:
				v.fail(errors.KindCircularRecord, []string{r.Name, f.Name}, f.Line, "record %s contains itself through %s", name, r.Name)
			case white:
				visit(sub)
			}
		}
		color[r.Name] = black
	}
	for _, r := range v.file.Records {
		if color[r.Name] == white {
			visit(r)
		}
	}
}

func recordRef(t *ir.Type) string {
	for t != nil {
		if t.Kind == ir.KindRecord {
			return t.Name
		}
		t = t.Elem
	}
	return ""
}

// embedding rejects sub-records that consume the rest of the input in a
// position where more data follows.
func (v *validator) embedding(r *ir.Record) {
	if v.cyclic() {
		return
	}
	for i, f := range r.Fields {
		sub := v.file.Record(recordRef(f.Type))
		if sub == nil || !v.openEnded(sub) {
			continue
		}
		if f.Type.Kind == ir.KindVec {
			v.fail(errors.KindTrailingVector, []string{r.Name, f.Name}, f.Line, "record %s ends with an unbounded field and cannot be a vector element", sub.Name)
		} else if i != len(r.Fields)-1 {
			v.fail(errors.KindTrailingVector, []string{r.Name, f.Name}, f.Line, "record %s ends with an unbounded field and must be the last field", sub.Name)
		}
	}
}

func (v *validator) cyclic() bool {
	for _, e := range v.errs {
		if e.Kind == errors.KindCircularRecord {
			return true
		}
	}
	return false
}

// openEnded reports whether decoding r may consume all remaining input.
func (v *validator) openEnded(r *ir.Record) bool {
	if len(r.Fields) == 0 {
		return false
	}
	last := r.Fields[len(r.Fields)-1]
	if unbounded(last) {
		return true
	}
	if last.Type != nil && last.Type.Kind == ir.KindRecord {
		if sub := v.file.Record(last.Type.Name); sub != nil {
			return v.openEnded(sub)
		}
	}
	return false
}

func (v *validator) enum(e *ir.Enum) {
	if len(e.Variants) == 0 {
		v.fail(errors.KindEmptyRecord, []string{e.Name}, e.Line, "enum has no variants")
		return
	}

	byValue := make(map[uint64]string)
	for _, vr := range e.Variants {
		path := []string{e.Name, vr.Name}
		if vr.Value > 0xFF {
			v.fail(errors.KindDiscriminantOverflow, path, vr.Line, "discriminant %d does not fit in one byte", vr.Value)
		}
		if e.Flags && vr.Value != 0 && vr.Value&(vr.Value-1) != 0 {
			v.fail(errors.KindInvalidFlagsEnum, path, vr.Line, "flag value %d is not a power of two", vr.Value)
		}
		if prev, ok := byValue[vr.Value]; ok {
			kind := errors.KindDuplicateName
			if e.Flags {
				kind = errors.KindInvalidFlagsEnum
			}
			v.fail(kind, path, vr.Line, "value %d is already used by %s", vr.Value, prev)
		}
		byValue[vr.Value] = vr.Name
	}
}
