package ir

import (
	"strconv"
	"strings"
)

// Type is the semantic type of a field.
//
//	Array<N>        Kind=KindArray, N
//	Vec<T>          Kind=KindVec, Elem
//	Option<T>       Kind=KindOption, Elem
//	VarString{W}    Kind=KindVarString, N=W (prefix bits)
//	FixedString<N>  Kind=KindFixedString, N
//	Name            Kind=KindRecord, Name
type Type struct {
	Elem *Type
	Name string
	N    int
	Kind Kind
}

func Prim(k Kind) *Type { return &Type{Kind: k} }

func Array(n int) *Type { return &Type{Kind: KindArray, N: n} }

func VecOf(elem *Type) *Type { return &Type{Kind: KindVec, Elem: elem} }

func OptionOf(elem *Type) *Type { return &Type{Kind: KindOption, Elem: elem} }

func VarString(prefixBits int) *Type { return &Type{Kind: KindVarString, N: prefixBits} }

func CString() *Type { return &Type{Kind: KindCString} }

func FixedString(n int) *Type { return &Type{Kind: KindFixedString, N: n} }

func String() *Type { return &Type{Kind: KindString} }

func RecordRef(name string) *Type { return &Type{Kind: KindRecord, Name: name} }

// IsByte reports whether t is u8.
func (t *Type) IsByte() bool {
	return t != nil && t.Kind == KindU8
}

// IsByteVec reports whether t is Vec<u8>.
func (t *Type) IsByteVec() bool {
	return t != nil && t.Kind == KindVec && t.Elem.IsByte()
}

// IsNestedByteVec reports whether t is Vec<Vec<u8>>.
func (t *Type) IsNestedByteVec() bool {
	return t != nil && t.Kind == KindVec && t.Elem.IsByteVec()
}

// String renders t in the canonical token form accepted by ParseType.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindArray:
		return "Array<" + strconv.Itoa(t.N) + ">"
	case KindVec:
		return "Vec<" + t.Elem.String() + ">"
	case KindOption:
		return "Option<" + t.Elem.String() + ">"
	case KindVarString:
		return "VarString" + strconv.Itoa(t.N)
	case KindFixedString:
		return "FixedString<" + strconv.Itoa(t.N) + ">"
	case KindRecord:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// Path is a dotted field reference: a sibling name followed by field names
// inside sub-records.
type Path []string

// ParsePath splits a dotted reference. Empty segments yield nil.
func ParsePath(s string) Path {
	parts := strings.Split(strings.TrimSpace(s), ".")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !IsIdent(p) {
			return nil
		}
		parts[i] = p
	}
	return Path(parts)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsIdent reports whether s is a valid field or record identifier.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
