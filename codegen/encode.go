package codegen

import (
	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

func (g *generator) encodeBody(r *plan.Record, order bebytes.Endian) string {
	w := &writer{}
	for _, s := range r.Steps {
		if s.Run != nil {
			g.encodeRun(w, s.Run, order)
			continue
		}
		g.encodeField(w, s.Field, order)
	}
	return w.String()
}

func (g *generator) encodeField(w *writer, f *plan.Field, order bebytes.Endian) {
	val := "v." + f.GoName
	sfx := shortEndian(order)
	switch f.Policy {
	case plan.BytePrimitive:
		w.line("%s", g.put(f.Kind, f.Enum, order, val))

	case plan.ByteArray:
		w.line("buf.PutSlice(%s[:])", val)

	case plan.OptPrimitive, plan.OptArray:
		w.line("if %s != nil {", val)
		w.line("buf.PutU8(1)")
		if f.Policy == plan.OptArray {
			w.line("buf.PutSlice(%s[:])", val)
		} else {
			w.line("%s", g.put(f.Kind, f.Enum, order, "(*"+val+")"))
		}
		w.line("} else {")
		w.line("buf.PutU8(0)")
		w.line("buf.PutSlice(make([]byte, %d))", f.ElemSize)
		w.line("}")

	case plan.StringVar, plan.StringCStr:
		w.line("if err := %s.Encode%s(buf); err != nil {", val, sfx)
		w.line("return bebytes.FieldError(err, %q)", f.Name)
		w.line("}")

	case plan.StringFixed:
		w.line("if err := bebytes.EncodeFixedString(buf, string(%s), %d); err != nil {", val, f.Count)
		w.line("return bebytes.FieldError(err, %q)", f.Name)
		w.line("}")

	case plan.SubRecord:
		w.line("if err := %s.Encode%s(buf); err != nil {", val, sfx)
		w.line("return err")
		w.line("}")

	case plan.VecFixed:
		if f.Str {
			w.line("if len(%s) != %d {", val, f.Count)
			w.line("return bebytes.InvalidBitField(%q, uint64(len(%s)), %d)", f.Name, val, f.Count)
			w.line("}")
			w.line("buf.PutSlice([]byte(%s))", val)
			return
		}
		g.encodeElems(w, f, val, true, order)

	case plan.VecFromField, plan.VecTail:
		if f.Str {
			w.line("buf.PutSlice([]byte(%s))", val)
			return
		}
		g.encodeElems(w, f, val, false, order)

	case plan.VecUntilMarker:
		if f.Type.IsNestedByteVec() {
			if n, ok := ir.Fold(f.Length); ok {
				w.line("if len(%s) != %d {", val, n)
				w.line("return bebytes.InvalidBitField(%q, uint64(len(%s)), %d)", f.Name, val, n)
				w.line("}")
			}
			w.line("for _, e := range %s {", val)
			w.line("buf.PutSlice(e)")
			w.line("buf.PutU8(%#x)", f.Marker)
			w.line("}")
			return
		}
		w.line("buf.PutSlice(%s)", val)
		w.line("buf.PutU8(%#x)", f.Marker)

	case plan.VecAfterMarker:
		w.line("buf.PutU8(%#x)", f.Marker)
		w.line("buf.PutSlice(%s)", val)
	}
}

// encodeElems writes the elements of a vector. fixed marks Go arrays.
func (g *generator) encodeElems(w *writer, f *plan.Field, val string, fixed bool, order bebytes.Endian) {
	switch {
	case f.Kind == ir.KindU8 && f.Enum == nil:
		if fixed {
			w.line("buf.PutSlice(%s[:])", val)
		} else {
			w.line("buf.PutSlice(%s)", val)
		}
	case f.Kind == ir.KindArray:
		w.line("for k := range %s {", val)
		w.line("buf.PutSlice(%s[k][:])", val)
		w.line("}")
	case f.Record != nil:
		w.line("for k := range %s {", val)
		w.line("if err := %s[k].Encode%s(buf); err != nil {", val, shortEndian(order))
		w.line("return err")
		w.line("}")
		w.line("}")
	default:
		w.line("for _, e := range %s {", val)
		w.line("%s", g.put(f.Kind, f.Enum, order, "e"))
		w.line("}")
	}
}

// sizeBody computes EncodedSize: a constant for static records, otherwise
// the static parts plus the current length of every dynamic field.
func (g *generator) sizeBody(r *plan.Record) string {
	w := &writer{}
	if r.Static {
		w.line("return %sStaticSize", r.GoName)
		return w.String()
	}

	base := 0
	for _, run := range r.Runs {
		base += run.Bytes
	}
	for _, f := range r.Fields {
		if f.Policy.IsBits() || !f.Static() {
			continue
		}
		base += f.Size
	}
	w.line("n := %d", base)
	for _, f := range r.Fields {
		if f.Policy.IsBits() || f.Static() {
			continue
		}
		val := "v." + f.GoName
		switch f.Policy {
		case plan.StringVar, plan.StringCStr, plan.SubRecord:
			w.line("n += %s.EncodedSize()", val)
		case plan.VecUntilMarker:
			if f.Type.IsNestedByteVec() {
				w.line("for _, e := range %s {", val)
				w.line("n += len(e) + 1")
				w.line("}")
			} else {
				w.line("n += len(%s) + 1", val)
			}
		case plan.VecAfterMarker:
			w.line("n += 1 + len(%s)", val)
		default:
			switch {
			case f.Str || (f.Kind == ir.KindU8 && f.Enum == nil):
				w.line("n += len(%s)", val)
			case f.ElemSize != plan.Dynamic:
				w.line("n += len(%s) * %d", val, f.ElemSize)
			default:
				w.line("for k := range %s {", val)
				w.line("n += %s[k].EncodedSize()", val)
				w.line("}")
			}
		}
	}
	w.line("return n")
	return w.String()
}

// rawBody fills a fixed array for records made only of byte-aligned
// primitives and byte arrays.
func (g *generator) rawBody(r *plan.Record, order bebytes.Endian) string {
	w := &writer{}
	off := 0
	for _, f := range r.Fields {
		val := "v." + f.GoName
		switch f.Policy {
		case plan.ByteArray:
			w.line("copy(out[%d:], %s[:])", off, val)
		default:
			w.line("%s", g.rawPut(f.Kind, f.Enum, order, off, val))
		}
		off += f.Size
	}
	return w.String()
}
