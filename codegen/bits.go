package codegen

import (
	"fmt"
	"strings"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

// chunk is the part of a bit field that lands in one byte of its run.
type chunk struct {
	index int    // byte of the run
	shift int    // position of the chunk within the value
	pos   int    // position of the chunk within the byte
	mask  uint64 // width mask of the chunk
}

// chunks splits an n-bit field at bit off of its run into per-byte pieces,
// following the walk of bebytes.PutBits.
func chunks(off, n int, order bebytes.Endian) []chunk {
	var out []chunk
	done := 0
	for done < n {
		o := off % 8
		take := min(8-o, n-done)
		c := chunk{index: off / 8, mask: bebytes.Mask(take)}
		if order == bebytes.LittleEndian {
			c.shift = done
			c.pos = o
		} else {
			c.shift = n - done - take
			c.pos = 8 - o - take
		}
		out = append(out, c)
		done += take
		off += take
	}
	return out
}

func (c chunk) full() bool { return c.mask == 0xff }

// encodeRun packs a bit run into a scratch array and appends it.
func (g *generator) encodeRun(w *writer, run *plan.BitRun, order bebytes.Endian) {
	w.line("{")
	for _, f := range run.Fields {
		if fits(f) {
			continue
		}
		limit := bebytes.Mask(f.Bits)
		w.line("if %s > %#x {", pattern(f), limit)
		w.line("return bebytes.InvalidBitField(%q, %s, %#x)", f.Name, pattern(f), limit)
		w.line("}")
	}
	w.line("var run [%d]byte", run.Bytes)
	for _, f := range run.Fields {
		if f.Aligned {
			w.line("%s.Put%s(run[%d:], %s(v.%s))", g.binaryOrder(order), uintName(f.Kind), f.Offset/8, unsignedType(f.Kind), f.GoName)
			continue
		}
		for _, c := range chunks(f.Offset, f.Bits, order) {
			val := pattern(f)
			if c.shift > 0 {
				val += fmt.Sprintf(">>%d", c.shift)
			}
			if !c.full() {
				val += fmt.Sprintf("&%#x", c.mask)
			}
			stmt := fmt.Sprintf("run[%d] |= byte(%s)", c.index, val)
			if c.pos > 0 {
				stmt += fmt.Sprintf(" << %d", c.pos)
			}
			w.line("%s", stmt)
		}
	}
	w.line("buf.PutSlice(run[:])")
	w.line("}")
}

// fits reports whether every value of the field's Go type fits its width.
// A full-width signed field holds its whole two's complement range.
func fits(f *plan.Field) bool {
	if f.Enum != nil {
		return f.Bits == 8
	}
	return (f.Kind.IsUnsigned() || f.Kind.IsSigned()) && f.Bits == f.Kind.Bits()
}

// pattern is the bit pattern of the field as a uint64 expression. Signed
// values are taken at their own width, so negative numbers are not
// sign-extended past it.
func pattern(f *plan.Field) string {
	if f.Enum == nil && f.Kind.IsSigned() {
		return "uint64(" + unsignedType(f.Kind) + "(v." + f.GoName + "))"
	}
	return "uint64(v." + f.GoName + ")"
}

// decodeRun unpacks a bit run from b[i:].
func (g *generator) decodeRun(w *writer, run *plan.BitRun, order bebytes.Endian) {
	w.need(fmt.Sprint(run.Bytes))
	for _, f := range run.Fields {
		raw := g.bitsExpr(f, order)
		lhs := "v." + f.GoName
		switch {
		case f.Enum != nil:
			w.assign(lhs, "decode"+ir.GoName(f.Enum.Name)+"("+raw+")", true)
		case f.Kind == ir.KindChar:
			w.assign(lhs, "bebytes.DecodeRune(uint32("+raw+"))", true)
		default:
			w.assign(lhs, primTypes[f.Kind]+"("+raw+")", false)
		}
	}
	w.line("i += %d", run.Bytes)
}

// bitsExpr reads the field from its run as a uint64 expression.
func (g *generator) bitsExpr(f *plan.Field, order bebytes.Endian) string {
	if f.Aligned {
		return fmt.Sprintf("uint64(%s.%s(b[%s:]))", g.binaryOrder(order), uintName(f.Kind), index(f.Offset/8))
	}
	var terms []string
	for _, c := range chunks(f.Offset, f.Bits, order) {
		t := "b[" + index(c.index) + "]"
		if c.pos > 0 {
			t += fmt.Sprintf(">>%d", c.pos)
		}
		if !c.full() {
			t += fmt.Sprintf("&%#x", c.mask)
		}
		t = "uint64(" + t + ")"
		if c.shift > 0 {
			t += fmt.Sprintf("<<%d", c.shift)
		}
		terms = append(terms, t)
	}
	return strings.Join(terms, " | ")
}

func index(k int) string {
	if k == 0 {
		return "i"
	}
	return fmt.Sprintf("i+%d", k)
}
