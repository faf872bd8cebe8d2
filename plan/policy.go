package plan

// Policy is the emission template chosen for a field.
type Policy uint8

const (
	BytePrimitive Policy = iota
	ByteArray
	BitsSingle
	BitsCrossing
	BitsMultibyte
	VecFixed
	VecFromField
	VecUntilMarker
	VecAfterMarker
	VecTail
	OptPrimitive
	OptArray
	StringVar
	StringCStr
	StringFixed
	SubRecord
)

var policyNames = [...]string{
	BytePrimitive:  "BYTE_PRIMITIVE",
	ByteArray:      "BYTE_ARRAY",
	BitsSingle:     "BITS_SINGLE",
	BitsCrossing:   "BITS_CROSSING",
	BitsMultibyte:  "BITS_MULTIBYTE",
	VecFixed:       "VEC_FIXED",
	VecFromField:   "VEC_FROM_FIELD",
	VecUntilMarker: "VEC_UNTIL_MARKER",
	VecAfterMarker: "VEC_AFTER_MARKER",
	VecTail:        "VEC_TAIL",
	OptPrimitive:   "OPT_PRIMITIVE",
	OptArray:       "OPT_ARRAY",
	StringVar:      "STRING_VAR",
	StringCStr:     "STRING_CSTR",
	StringFixed:    "STRING_FIXED",
	SubRecord:      "SUB_RECORD",
}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "UNKNOWN"
}

// IsBits reports whether p packs a bits(n) field.
func (p Policy) IsBits() bool {
	return p == BitsSingle || p == BitsCrossing || p == BitsMultibyte
}

// Method is the serialization strategy hint reported by generated code.
type Method string

const (
	MethodRawPointer    Method = "raw_pointer"
	MethodStaticBuffer  Method = "static_buffer"
	MethodDynamicBuffer Method = "dynamic_buffer"
)

// RawLimit is the largest static size eligible for raw-stack encoding.
const RawLimit = 256
