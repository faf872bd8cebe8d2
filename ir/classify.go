package ir

import (
	"strconv"
	"strings"

	"github.com/wippyai/bebytes/errors"
)

// ParseType classifies a type token against the primitive vocabulary and the
// structural patterns Array<N>, Vec<T>, Option<T>, VarString{8,16,32},
// CString, String and FixedString<N>. Any other identifier is a sub-record
// reference. The returned error has no path; callers attach one.
func ParseType(token string) (*Type, error) {
	s := strings.Join(strings.Fields(token), "")
	t, detail := classify(s)
	if t == nil {
		return nil, errors.UnsupportedType(errors.PhaseParse, nil, token, detail)
	}
	return t, nil
}

func classify(s string) (*Type, string) {
	if s == "" {
		return nil, "empty type"
	}
	if k, ok := primitiveKinds[s]; ok {
		return Prim(k), ""
	}
	switch s {
	case "CString":
		return CString(), ""
	case "String":
		return String(), ""
	case "VarString8":
		return VarString(8), ""
	case "VarString16":
		return VarString(16), ""
	case "VarString32":
		return VarString(32), ""
	}
	if strings.HasPrefix(s, "VarString") && !strings.Contains(s, "<") {
		return nil, "VarString prefix width must be 8, 16 or 32"
	}

	name, arg, generic := splitGeneric(s)
	if !generic {
		if IsIdent(s) {
			return RecordRef(s), ""
		}
		return nil, "not a type name"
	}

	switch name {
	case "Array", "FixedString":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil, name + " length must be a positive integer"
		}
		if name == "Array" {
			return Array(n), ""
		}
		return FixedString(n), ""

	case "Vec":
		elem, detail := classify(arg)
		if elem == nil {
			return nil, detail
		}
		switch {
		case elem.Kind.IsPrimitive(), elem.Kind == KindArray, elem.Kind == KindRecord:
			return VecOf(elem), ""
		case elem.IsByteVec():
			return VecOf(elem), ""
		case elem.Kind == KindVec:
			return nil, "nested vectors must be Vec<Vec<u8>>"
		}
		return nil, "vector element must be a primitive, fixed byte array or record"

	case "Option":
		elem, detail := classify(arg)
		if elem == nil {
			return nil, detail
		}
		if elem.Kind.IsPrimitive() || elem.Kind == KindArray {
			return OptionOf(elem), ""
		}
		return nil, "optional payload must be a primitive or fixed byte array"
	}
	return nil, "unknown generic type " + name
}

// splitGeneric splits "Name<arg>" into its parts. The closing bracket must
// end the token and brackets must balance.
func splitGeneric(s string) (name, arg string, ok bool) {
	open := strings.IndexByte(s, '<')
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return "", "", false
	}
	arg = s[open+1 : len(s)-1]
	depth := 0
	for _, c := range arg {
		switch c {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", "", false
			}
		}
	}
	if depth != 0 {
		return "", "", false
	}
	return s[:open], arg, true
}
