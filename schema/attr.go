package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/schema/internal/token"
)

// Attribute names accepted on fields.
const (
	AttrBits        = "bits"
	AttrSize        = "size"
	AttrFromField   = "from_field"
	AttrUntilMarker = "until_marker"
	AttrAfterMarker = "after_marker"
)

type attr struct {
	size   ir.Expr
	name   string
	path   ir.Path
	bits   int
	marker byte
}

func (a attr) apply(f *ir.Field) {
	switch a.name {
	case AttrBits:
		f.Bits = a.bits
	case AttrSize:
		f.Size = a.size
	case AttrFromField:
		f.FromField = a.path
	case AttrUntilMarker:
		f.UntilMarker = ir.Marker(a.marker)
	case AttrAfterMarker:
		f.AfterMarker = ir.Marker(a.marker)
	}
}

// parseAttr parses one attribute token such as "bits(4)" or
// "size(hdr.len * 2)".
func parseAttr(text string) (attr, error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return attr{}, fmt.Errorf("expected name(argument)")
	}
	a := attr{name: strings.TrimSpace(text[:open])}
	arg := strings.TrimSpace(text[open+1 : len(text)-1])
	if arg == "" {
		return attr{}, fmt.Errorf("missing argument")
	}

	switch a.name {
	case AttrBits:
		n, err := token.ParseUint(arg)
		if err != nil || n == 0 || n > 64 {
			return attr{}, fmt.Errorf("width must be an integer between 1 and 64, got %q", arg)
		}
		a.bits = int(n)
	case AttrSize:
		e, err := ParseExpr(arg)
		if err != nil {
			return attr{}, err
		}
		a.size = e
	case AttrFromField:
		p := ir.ParsePath(arg)
		if p == nil {
			return attr{}, fmt.Errorf("invalid field path %q", arg)
		}
		a.path = p
	case AttrUntilMarker, AttrAfterMarker:
		n, err := token.ParseUint(arg)
		if err != nil || n > 0xFF {
			return attr{}, fmt.Errorf("marker must be a byte literal, got %q", arg)
		}
		a.marker = byte(n)
	default:
		return attr{}, fmt.Errorf("unknown attribute %q", a.name)
	}
	return a, nil
}

// ParseExpr parses a size expression:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/' | '%') factor)*
//	factor := INT | PATH | '(' expr ')'
func ParseExpr(s string) (ir.Expr, error) {
	p := &exprParser{tokens: token.Tokenize(s)}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, fmt.Errorf("unexpected %q in size expression", t.Value)
	}
	return e, nil
}

type exprParser struct {
	tokens []token.Token
	pos    int
}

func (p *exprParser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *exprParser) next() *token.Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *exprParser) expr() (ir.Expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t == nil || !(t.Is("+") || t.Is("-")) {
			return x, nil
		}
		p.next()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = ir.Binary{Op: t.Value[0], X: x, Y: y}
	}
}

func (p *exprParser) term() (ir.Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t == nil || !(t.Is("*") || t.Is("/") || t.Is("%")) {
			return x, nil
		}
		p.next()
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		x = ir.Binary{Op: t.Value[0], X: x, Y: y}
	}
}

func (p *exprParser) factor() (ir.Expr, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of size expression")
	}
	switch {
	case t.Type == token.Number:
		v, err := token.ParseUint(t.Value)
		if err != nil || v > math.MaxInt64 {
			return nil, fmt.Errorf("invalid integer %q in size expression", t.Value)
		}
		return ir.Lit{Value: int64(v)}, nil

	case t.Type == token.Ident:
		path := ir.Path{t.Value}
		for {
			dot := p.peek()
			if dot == nil || !dot.Is(".") {
				break
			}
			p.next()
			name := p.next()
			if name == nil || name.Type != token.Ident {
				return nil, fmt.Errorf("expected field name after '.' in size expression")
			}
			path = append(path, name.Value)
		}
		return ir.Ref{Path: path}, nil

	case t.Is("("):
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c == nil || !c.Is(")") {
			return nil, fmt.Errorf("unbalanced parenthesis in size expression")
		}
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %q in size expression", t.Value)
}
