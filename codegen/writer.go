package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/bebytes/ir"
)

// writer accumulates the statements of one function body. Indentation is
// left to gofmt.
type writer struct {
	b strings.Builder
	// err is set once a statement assigns to the shared err variable.
	err bool
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) String() string { return w.b.String() }

// need guards a read of n bytes at b[i:].
func (w *writer) need(n string) {
	w.line("if len(b)-i < %s {", n)
	w.line("return 0, bebytes.InsufficientData(%s, len(b)-i)", n)
	w.line("}")
}

// assign stores expr into lhs, propagating the error of fallible decoders.
func (w *writer) assign(lhs, expr string, fallible bool) {
	if !fallible {
		w.line("%s = %s", lhs, expr)
		return
	}
	w.err = true
	w.line("if %s, err = %s; err != nil {", lhs, expr)
	w.line("return 0, err")
	w.line("}")
}

// decodeFunc wraps a decode body, declaring err when the body needs it.
func (w *writer) decodeFunc() string {
	if w.err {
		return "var err error\n" + w.String()
	}
	return w.String()
}

// goExpr renders a size expression over the fields of v as an int.
func goExpr(e ir.Expr) string {
	switch e := e.(type) {
	case ir.Lit:
		return strconv.FormatInt(e.Value, 10)
	case ir.Ref:
		return "int(v." + goPath(e.Path) + ")"
	case ir.Binary:
		return "(" + goExpr(e.X) + " " + string(e.Op) + " " + goExpr(e.Y) + ")"
	}
	return "0"
}

func goPath(p ir.Path) string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = ir.GoName(seg)
	}
	return strings.Join(parts, ".")
}
