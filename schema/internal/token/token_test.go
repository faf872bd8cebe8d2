package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"braces",
			"{}",
			[]Token{{"{", Punct, 1}, {"}", Punct, 1}},
		},
		{
			"record header",
			"be record Header {",
			[]Token{{"be", Ident, 1}, {"record", Ident, 1}, {"Header", Ident, 1}, {"{", Punct, 1}},
		},
		{
			"newlines",
			"a\n:\nu8",
			[]Token{{"a", Ident, 1}, {":", Punct, 2}, {"u8", Ident, 3}},
		},
		{
			"generic type",
			"Vec<Array<4>>",
			[]Token{
				{"Vec", Ident, 1}, {"<", Punct, 1}, {"Array", Ident, 1}, {"<", Punct, 1},
				{"4", Number, 1}, {">", Punct, 1}, {">", Punct, 1},
			},
		},
		{
			"hex number",
			"until_marker(0xFF)",
			[]Token{{"until_marker", Ident, 1}, {"(", Punct, 1}, {"0xFF", Number, 1}, {")", Punct, 1}},
		},
		{
			"binary number",
			"0b1010_0101",
			[]Token{{"0b1010_0101", Number, 1}},
		},
		{
			"size expression",
			"size(hdr.len*2 % 3)",
			[]Token{
				{"size", Ident, 1}, {"(", Punct, 1}, {"hdr", Ident, 1}, {".", Punct, 1},
				{"len", Ident, 1}, {"*", Punct, 1}, {"2", Number, 1}, {"%", Punct, 1},
				{"3", Number, 1}, {")", Punct, 1},
			},
		},
		{
			"line comment",
			"// comment\nu8",
			[]Token{{"u8", Ident, 2}},
		},
		{
			"trailing comment",
			"a: u8 // bits later\nb",
			[]Token{{"a", Ident, 1}, {":", Punct, 1}, {"u8", Ident, 1}, {"b", Ident, 2}},
		},
		{
			"illegal",
			"a # b",
			[]Token{{"a", Ident, 1}, {"#", Illegal, 1}, {"b", Ident, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.expected), got)
			}
			for i, tok := range got {
				if tok != tt.expected[i] {
					t.Errorf("token[%d] = %v, want %v", i, tok, tt.expected[i])
				}
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{"identifier", Ident},
		{"number", Number},
		{"punctuation", Punct},
		{"illegal character", Illegal},
		{"unknown", Type(99)},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTokenIs(t *testing.T) {
	if !(Token{"{", Punct, 1}).Is("{") {
		t.Error("Is should match punctuation")
	}
	if (Token{"x", Ident, 1}).Is("x") {
		t.Error("Is should not match identifiers")
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"42", 42, true},
		{"010", 10, true},
		{"0xFF", 255, true},
		{"0b1010_0101", 0xA5, true},
		{"1_000", 1000, true},
		{"0x", 0, false},
		{"12ab", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseUint(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseUint(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseUint(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
