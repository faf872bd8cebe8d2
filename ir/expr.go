package ir

import "strconv"

// Expr is a size expression: integer literals, references to earlier
// fields, and binary arithmetic. Expressions are carried unevaluated to the
// emitter; only all-literal expressions are folded.
type Expr interface {
	String() string
	expr()
}

// Lit is an integer literal.
type Lit struct {
	Value int64
}

// Ref references an earlier field by path.
type Ref struct {
	Path Path
}

// Binary applies Op to X and Y. Op is one of + - * / %.
type Binary struct {
	X, Y Expr
	Op   byte
}

func (Lit) expr()    {}
func (Ref) expr()    {}
func (Binary) expr() {}

func (l Lit) String() string { return strconv.FormatInt(l.Value, 10) }

func (r Ref) String() string { return r.Path.String() }

func (b Binary) String() string {
	return "(" + b.X.String() + " " + string(b.Op) + " " + b.Y.String() + ")"
}

// Fold evaluates e when it contains no field references.
func Fold(e Expr) (int64, bool) {
	switch e := e.(type) {
	case Lit:
		return e.Value, true
	case Binary:
		x, ok := Fold(e.X)
		if !ok {
			return 0, false
		}
		y, ok := Fold(e.Y)
		if !ok {
			return 0, false
		}
		return apply(e.Op, x, y)
	}
	return 0, false
}

// Eval evaluates e, resolving field references through lookup. Division by
// zero yields false.
func Eval(e Expr, lookup func(Path) int64) (int64, bool) {
	switch e := e.(type) {
	case Lit:
		return e.Value, true
	case Ref:
		return lookup(e.Path), true
	case Binary:
		x, ok := Eval(e.X, lookup)
		if !ok {
			return 0, false
		}
		y, ok := Eval(e.Y, lookup)
		if !ok {
			return 0, false
		}
		return apply(e.Op, x, y)
	}
	return 0, false
}

func apply(op byte, x, y int64) (int64, bool) {
	switch op {
	case '+':
		return x + y, true
	case '-':
		return x - y, true
	case '*':
		return x * y, true
	case '/':
		if y == 0 {
			return 0, false
		}
		return x / y, true
	case '%':
		if y == 0 {
			return 0, false
		}
		return x % y, true
	}
	return 0, false
}

// Refs returns the field paths e references, in order of appearance.
func Refs(e Expr) []Path {
	var out []Path
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case Ref:
			out = append(out, e.Path)
		case Binary:
			walk(e.X)
			walk(e.Y)
		}
	}
	walk(e)
	return out
}

// Divisors returns the right operands of every / and % in e.
func Divisors(e Expr) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(e Expr) {
		if b, ok := e.(Binary); ok {
			if b.Op == '/' || b.Op == '%' {
				out = append(out, b.Y)
			}
			walk(b.X)
			walk(b.Y)
		}
	}
	walk(e)
	return out
}
