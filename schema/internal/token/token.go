package token

import (
	"strconv"
	"strings"
	"unicode"
)

type Type int

const (
	Ident Type = iota
	Number
	Punct
	Illegal
)

func (t Type) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Punct:
		return "punctuation"
	case Illegal:
		return "illegal character"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

// Is reports whether t is the punctuation p.
func (t Token) Is(p string) bool {
	return t.Type == Punct && t.Value == p
}

const puncts = "{}()<>:,;=.+-*/%"

func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Number: decimal, 0x hex or 0b binary, with optional underscores
		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == '_' || c == 'x' || c == 'X' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		typ := Illegal
		for _, p := range puncts {
			if r == p {
				typ = Punct
				break
			}
		}
		tokens = append(tokens, Token{string(r), typ, line})
	}

	return tokens
}

// ParseUint parses a Number token: decimal, 0x hex or 0b binary, with
// optional underscores. A leading zero does not select octal.
func ParseUint(s string) (uint64, error) {
	s = strings.ReplaceAll(s, "_", "")
	base := 10
	switch {
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		base, s = 16, s[2:]
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		base, s = 2, s[2:]
	}
	return strconv.ParseUint(s, base, 64)
}
