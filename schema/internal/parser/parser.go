package parser

import (
	"strings"

	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/schema/internal/token"
)

// File is the syntax tree of a .bb description. Types and attributes are
// kept as source text; package schema classifies them.
type File struct {
	Records []Record
	Enums   []Enum
}

type Record struct {
	Name   string
	Endian string
	Fields []Field
	Line   int
}

type Field struct {
	Name  string
	Type  string
	Attrs []string
	Line  int
}

type Enum struct {
	Name     string
	Variants []Variant
	Line     int
	Flags    bool
}

type Variant struct {
	Name  string
	Value uint64
	Line  int
}

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) Parse() (*File, error) {
	f := &File{}
	for p.peek() != nil {
		t := p.peek()
		if t.Type != token.Ident {
			return nil, errors.Syntax(t.Line, "expected record or enum declaration, got %q", t.Value)
		}
		switch t.Value {
		case "be", "le":
			rec, err := p.parseRecord()
			if err != nil {
				return nil, err
			}
			f.Records = append(f.Records, rec)
		case "enum", "flags":
			en, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			f.Enums = append(f.Enums, en)
		default:
			return nil, errors.Syntax(t.Line, "expected record or enum declaration, got %q", t.Value)
		}
	}
	return f, nil
}

func (p *Parser) peek() *token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.lastLine(), "unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, errors.Syntax(t.Line, "expected %v, got %q", typ, t.Value)
	}
	return t, nil
}

func (p *Parser) expectPunct(v string) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.lastLine(), "unexpected end of input, expected %q", v)
	}
	if !t.Is(v) {
		return nil, errors.Syntax(t.Line, "expected %q, got %q", v, t.Value)
	}
	return t, nil
}

func (p *Parser) expectKeyword(v string) (*token.Token, error) {
	t, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if t.Value != v {
		return nil, errors.Syntax(t.Line, "expected %q, got %q", v, t.Value)
	}
	return t, nil
}

func (p *Parser) peekPunct(v string) bool {
	t := p.peek()
	return t != nil && t.Is(v)
}

func (p *Parser) parseRecord() (Record, error) {
	endian := p.next()
	if _, err := p.expectKeyword("record"); err != nil {
		return Record{}, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return Record{}, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return Record{}, err
	}

	rec := Record{Name: name.Value, Endian: endian.Value, Line: endian.Line}
	for !p.peekPunct("}") {
		if p.peek() == nil {
			return Record{}, errors.Syntax(p.lastLine(), "unexpected end of input in record %s", rec.Name)
		}
		f, err := p.parseField()
		if err != nil {
			return Record{}, err
		}
		rec.Fields = append(rec.Fields, f)
	}
	p.next()
	return rec, nil
}

func (p *Parser) parseField() (Field, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return Field{}, err
	}
	if _, err := p.expectPunct(":"); err != nil {
		return Field{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return Field{}, err
	}

	f := Field{Name: name.Value, Type: typ, Line: name.Line}
	for {
		t, open := p.peek(), p.peekAt(1)
		if t == nil || t.Type != token.Ident || open == nil || !open.Is("(") {
			break
		}
		attr, err := p.parseAttr()
		if err != nil {
			return Field{}, err
		}
		f.Attrs = append(f.Attrs, attr)
	}
	if p.peekPunct(",") || p.peekPunct(";") {
		p.next()
	}
	return f, nil
}

// parseType reads a type token such as Vec<Array<4>> and returns its
// source text without whitespace.
func (p *Parser) parseType() (string, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return "", err
	}
	if !p.peekPunct("<") {
		return name.Value, nil
	}
	p.next()

	var arg string
	if t := p.peek(); t != nil && t.Type == token.Number {
		arg = p.next().Value
	} else {
		arg, err = p.parseType()
		if err != nil {
			return "", err
		}
	}
	if _, err := p.expectPunct(">"); err != nil {
		return "", err
	}
	return name.Value + "<" + arg + ">", nil
}

// parseAttr reads name(args...) and returns it as text with the argument
// tokens separated by single spaces.
func (p *Parser) parseAttr() (string, error) {
	name := p.next()
	open := p.next()

	var args []string
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return "", errors.Syntax(open.Line, "unclosed attribute %s", name.Value)
		}
		if t.Type == token.Illegal {
			return "", errors.Syntax(t.Line, "unexpected %q in attribute %s", t.Value, name.Value)
		}
		if t.Is("(") {
			depth++
		}
		if t.Is(")") {
			if depth == 0 {
				break
			}
			depth--
		}
		args = append(args, t.Value)
	}
	return name.Value + "(" + strings.Join(args, " ") + ")", nil
}

func (p *Parser) parseEnum() (Enum, error) {
	first := p.next()
	en := Enum{Line: first.Line}
	if first.Value == "flags" {
		en.Flags = true
		if _, err := p.expectKeyword("enum"); err != nil {
			return Enum{}, err
		}
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return Enum{}, err
	}
	en.Name = name.Value
	if _, err := p.expectPunct("{"); err != nil {
		return Enum{}, err
	}

	for !p.peekPunct("}") {
		v, err := p.parseVariant()
		if err != nil {
			return Enum{}, err
		}
		en.Variants = append(en.Variants, v)
		if p.peekPunct(",") {
			p.next()
			continue
		}
		if !p.peekPunct("}") {
			t := p.peek()
			if t == nil {
				return Enum{}, errors.Syntax(p.lastLine(), "unexpected end of input in enum %s", en.Name)
			}
			return Enum{}, errors.Syntax(t.Line, "expected \",\" or \"}\", got %q", t.Value)
		}
	}
	p.next()
	return en, nil
}

func (p *Parser) parseVariant() (Variant, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return Variant{}, err
	}
	if _, err := p.expectPunct("="); err != nil {
		return Variant{}, err
	}
	num, err := p.expect(token.Number)
	if err != nil {
		return Variant{}, err
	}
	val, perr := token.ParseUint(num.Value)
	if perr != nil {
		return Variant{}, errors.Syntax(num.Line, "invalid discriminant %q", num.Value)
	}
	return Variant{Name: name.Value, Value: val, Line: name.Line}, nil
}
