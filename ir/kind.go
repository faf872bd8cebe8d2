package ir

// Kind is the semantic kind of a field type.
type Kind uint8

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF32
	KindF64
	KindBool
	KindChar
	KindArray
	KindVec
	KindOption
	KindVarString
	KindCString
	KindFixedString
	KindString
	KindRecord
)

var kindNames = [...]string{
	KindU8:          "u8",
	KindU16:         "u16",
	KindU32:         "u32",
	KindU64:         "u64",
	KindU128:        "u128",
	KindI8:          "i8",
	KindI16:         "i16",
	KindI32:         "i32",
	KindI64:         "i64",
	KindI128:        "i128",
	KindF32:         "f32",
	KindF64:         "f64",
	KindBool:        "bool",
	KindChar:        "char",
	KindArray:       "Array",
	KindVec:         "Vec",
	KindOption:      "Option",
	KindVarString:   "VarString",
	KindCString:     "CString",
	KindFixedString: "FixedString",
	KindString:      "String",
	KindRecord:      "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// primitiveKinds maps the DSL primitive vocabulary to kinds.
var primitiveKinds = map[string]Kind{
	"u8":   KindU8,
	"u16":  KindU16,
	"u32":  KindU32,
	"u64":  KindU64,
	"u128": KindU128,
	"i8":   KindI8,
	"i16":  KindI16,
	"i32":  KindI32,
	"i64":  KindI64,
	"i128": KindI128,
	"f32":  KindF32,
	"f64":  KindF64,
	"bool": KindBool,
	"char": KindChar,
}

// LookupPrimitive returns the kind of a primitive type name.
func LookupPrimitive(name string) (Kind, bool) {
	k, ok := primitiveKinds[name]
	return k, ok
}

func (k Kind) IsPrimitive() bool {
	return k <= KindChar
}

func (k Kind) IsInteger() bool {
	return k <= KindI128
}

func (k Kind) IsUnsigned() bool {
	return k <= KindU128
}

func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI128
}

func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

// Size returns the natural wire width in bytes of a primitive kind, 0
// otherwise.
func (k Kind) Size() int {
	switch k {
	case KindU8, KindI8, KindBool:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32, KindChar:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	case KindU128, KindI128:
		return 16
	default:
		return 0
	}
}

// Bits returns the natural width in bits of a primitive kind.
func (k Kind) Bits() int {
	return k.Size() * 8
}
