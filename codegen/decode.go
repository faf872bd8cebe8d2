package codegen

import (
	"strconv"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

func (g *generator) decodeBody(r *plan.Record, order bebytes.Endian) string {
	w := &writer{}
	for _, s := range r.Steps {
		if s.Run != nil {
			g.decodeRun(w, s.Run, order)
			continue
		}
		g.decodeField(w, s.Field, order)
	}
	return w.decodeFunc()
}

func (g *generator) decodeField(w *writer, f *plan.Field, order bebytes.Endian) {
	val := "v." + f.GoName
	sfx := shortEndian(order)
	switch f.Policy {
	case plan.BytePrimitive:
		size := strconv.Itoa(f.Size)
		w.need(size)
		expr, fallible := g.get(f.Kind, f.Enum, order, "i")
		w.assign(val, expr, fallible)
		w.line("i += %s", size)

	case plan.ByteArray:
		w.need(strconv.Itoa(f.Count))
		w.line("copy(%s[:], b[i:])", val)
		w.line("i += %d", f.Count)

	case plan.OptPrimitive, plan.OptArray:
		w.need(strconv.Itoa(f.Size))
		w.line("switch b[i] {")
		w.line("case 0:")
		w.line("case 1:")
		w.line("var x %s", g.elemType(f.Elem, true))
		if f.Policy == plan.OptArray {
			w.line("copy(x[:], b[i+1:])")
		} else {
			expr, fallible := g.get(f.Kind, f.Enum, order, "i+1")
			w.assign("x", expr, fallible)
		}
		w.line("%s = &x", val)
		w.line("default:")
		w.line("return 0, bebytes.InvalidDiscriminant(uint64(b[i]), bebytes.TypeOption)")
		w.line("}")
		w.line("i += %d", f.Size)

	case plan.StringVar, plan.StringCStr:
		w.line("{")
		w.line("n, err := %s.Decode%s(b[i:])", val, sfx)
		w.line("if err != nil {")
		w.line("return 0, err")
		w.line("}")
		w.line("i += n")
		w.line("}")

	case plan.StringFixed:
		w.line("{")
		w.line("x, n, err := bebytes.DecodeFixedString(b[i:], %d)", f.Count)
		w.line("if err != nil {")
		w.line("return 0, err")
		w.line("}")
		w.line("%s = x", val)
		w.line("i += n")
		w.line("}")

	case plan.SubRecord:
		w.line("{")
		w.line("n, err := %s.decode%s(b[i:])", val, sfx)
		w.line("if err != nil {")
		w.line("return 0, err")
		w.line("}")
		w.line("i += n")
		w.line("}")

	case plan.VecFixed:
		g.decodeFixed(w, f, val, order)

	case plan.VecFromField:
		w.line("{")
		g.length(w, f)
		g.decodeCounted(w, f, val, order)
		w.line("}")

	case plan.VecUntilMarker:
		g.decodeUntil(w, f, val)

	case plan.VecAfterMarker:
		w.line("{")
		w.line("rest := b[i:]")
		w.line("if k := bytes.IndexByte(rest, %#x); k >= 0 {", f.Marker)
		w.line("rest = rest[k+1:]")
		w.line("} else {")
		w.line("rest = nil")
		w.line("}")
		w.line("%s = make([]byte, len(rest))", val)
		w.line("copy(%s, rest)", val)
		w.line("i = len(b)")
		w.line("}")
		g.use("bytes")

	case plan.VecTail:
		g.decodeTail(w, f, val, order)
	}
}

// length declares n, the element count or byte length of a governed field.
func (g *generator) length(w *writer, f *plan.Field) {
	w.line("n := %s", goExpr(f.Length))
	w.line("if n < 0 {")
	w.line("return 0, bebytes.InvalidDiscriminant(uint64(n), bebytes.TypeSizeExpressionRange)")
	w.line("}")
}

// decodeFixed reads a vector or string whose size is a literal.
func (g *generator) decodeFixed(w *writer, f *plan.Field, val string, order bebytes.Endian) {
	n := f.Count
	switch {
	case f.Str:
		w.assign(val, "bebytes.DecodeString(b[i:], "+strconv.Itoa(n)+")", true)
		w.line("i += %d", n)
	case f.Kind == ir.KindU8 && f.Enum == nil:
		w.need(strconv.Itoa(n))
		w.line("copy(%s[:], b[i:])", val)
		w.line("i += %d", n)
	case f.Record != nil:
		g.decodeRecords(w, val, "k", order)
	default:
		w.need(strconv.Itoa(n * f.ElemSize))
		w.line("for k := range %s {", val)
		g.decodeElem(w, f, val+"[k]", order)
		w.line("}")
	}
}

// decodeCounted reads n elements, or n bytes of a string.
func (g *generator) decodeCounted(w *writer, f *plan.Field, val string, order bebytes.Endian) {
	switch {
	case f.Str:
		w.assign(val, "bebytes.DecodeString(b[i:], n)", true)
		w.line("i += n")
	case f.Kind == ir.KindU8 && f.Enum == nil:
		w.need("n")
		w.line("%s = make([]byte, n)", val)
		w.line("copy(%s, b[i:])", val)
		w.line("i += n")
	case f.ElemSize != plan.Dynamic:
		w.line("if n > (len(b)-i)/%d {", f.ElemSize)
		w.line("return 0, bebytes.InsufficientData(n*%d, len(b)-i)", f.ElemSize)
		w.line("}")
		w.line("%s = make(%s, n)", val, g.goType(f))
		if f.Record != nil {
			g.decodeRecords(w, val, "k", order)
			return
		}
		w.line("for k := range %s {", val)
		g.decodeElem(w, f, val+"[k]", order)
		w.line("}")
	default:
		w.line("%s = make(%s, 0, min(n, len(b)-i))", val, g.goType(f))
		w.line("for range n {")
		w.line("var e %s", g.elemType(f.Elem, true))
		w.line("m, err := e.decode%s(b[i:])", shortEndian(order))
		w.line("if err != nil {")
		w.line("return 0, err")
		w.line("}")
		w.line("%s = append(%s, e)", val, val)
		w.line("i += m")
		w.line("}")
	}
}

// decodeRecords decodes each element of an allocated vector of records.
func (g *generator) decodeRecords(w *writer, val, k string, order bebytes.Endian) {
	w.line("for %s := range %s {", k, val)
	w.line("m, err := %s[%s].decode%s(b[i:])", val, k, shortEndian(order))
	w.line("if err != nil {")
	w.line("return 0, err")
	w.line("}")
	w.line("i += m")
	w.line("}")
}

// decodeElem reads one fixed-size element at b[i:] into lhs.
func (g *generator) decodeElem(w *writer, f *plan.Field, lhs string, order bebytes.Endian) {
	if f.Kind == ir.KindArray {
		w.line("copy(%s[:], b[i:])", lhs)
	} else {
		expr, fallible := g.get(f.Kind, f.Enum, order, "i")
		w.assign(lhs, expr, fallible)
	}
	w.line("i += %d", f.ElemSize)
}

// decodeUntil reads marker-terminated byte vectors. Only a final field may
// run to the end of the input without its marker.
func (g *generator) decodeUntil(w *writer, f *plan.Field, val string) {
	g.use("bytes")
	nested := f.Type.IsNestedByteVec()
	w.line("{")
	if nested {
		g.length(w, f)
		w.line("%s = make([][]byte, 0, min(n, len(b)-i+1))", val)
		w.line("for range n {")
	}
	w.line("k := bytes.IndexByte(b[i:], %#x)", f.Marker)
	w.line("if k < 0 {")
	if f.Last {
		w.line("k = len(b) - i")
	} else {
		w.line("return 0, bebytes.MarkerNotFound(%#x, %q)", f.Marker, f.Name)
	}
	w.line("}")
	target := val
	if nested {
		target = "e"
		w.line("e := make([]byte, k)")
	} else {
		w.line("%s = make([]byte, k)", val)
	}
	w.line("copy(%s, b[i:])", target)
	if nested {
		w.line("%s = append(%s, e)", val, val)
	}
	w.line("i += k")
	w.line("if i < len(b) {")
	w.line("i++")
	w.line("}")
	if nested {
		w.line("}")
	}
	w.line("}")
}

// decodeTail reads a final vector or string from the rest of the input.
func (g *generator) decodeTail(w *writer, f *plan.Field, val string, order bebytes.Endian) {
	switch {
	case f.Str:
		w.assign(val, "bebytes.DecodeString(b[i:], len(b)-i)", true)
		w.line("i = len(b)")
	case f.Kind == ir.KindU8 && f.Enum == nil:
		w.line("%s = make([]byte, len(b)-i)", val)
		w.line("copy(%s, b[i:])", val)
		w.line("i = len(b)")
	case f.ElemSize != plan.Dynamic:
		w.line("%s = make(%s, (len(b)-i)/%d)", val, g.goType(f), f.ElemSize)
		if f.Record != nil {
			g.decodeRecords(w, val, "k", order)
			return
		}
		w.line("for k := range %s {", val)
		g.decodeElem(w, f, val+"[k]", order)
		w.line("}")
	default:
		w.line("for i < len(b) {")
		w.line("var e %s", g.elemType(f.Elem, true))
		w.line("m, err := e.decode%s(b[i:])", shortEndian(order))
		w.line("if err != nil {")
		w.line("return 0, err")
		w.line("}")
		w.line("if m == 0 {")
		w.line("break")
		w.line("}")
		w.line("%s = append(%s, e)", val, val)
		w.line("i += m")
		w.line("}")
	}
}
