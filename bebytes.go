package bebytes

// BeBytes is implemented by every generated record, enum and flags type
// (on the pointer receiver) and by the string wrappers.
type BeBytes interface {
	EncodeBE(buf BufMut) error
	EncodeLE(buf BufMut) error
	DecodeBE(b []byte) (int, error)
	DecodeLE(b []byte) (int, error)
	// FieldSize is the static encoded size. For records with dynamic fields
	// it is the sum of the static parts, a lower bound.
	FieldSize() int
}

// EncodedSizer reports the exact encoded size of the current value.
type EncodedSizer interface {
	EncodedSize() int
}

// Decodable constrains a pointer to T that implements BeBytes, so helpers can
// return T by value.
type Decodable[T any] interface {
	*T
	BeBytes
}

// TryFromBEBytes decodes a T from the front of b and returns it with the
// number of bytes consumed.
func TryFromBEBytes[T any, P Decodable[T]](b []byte) (T, int, error) {
	var v T
	n, err := P(&v).DecodeBE(b)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v, n, nil
}

// TryFromLEBytes is the little-endian counterpart of TryFromBEBytes.
func TryFromLEBytes[T any, P Decodable[T]](b []byte) (T, int, error) {
	var v T
	n, err := P(&v).DecodeLE(b)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v, n, nil
}

// EncodeBETo streams v into buf, reserving its encoded size first when known.
func EncodeBETo(v BeBytes, buf BufMut) error {
	buf.Reserve(sizeHint(v))
	return v.EncodeBE(buf)
}

// EncodeLETo streams v into buf, reserving its encoded size first when known.
func EncodeLETo(v BeBytes, buf BufMut) error {
	buf.Reserve(sizeHint(v))
	return v.EncodeLE(buf)
}

// ToBEBytes encodes v into a new slice. A range violation in a bit field is
// a caller contract bug and panics with the *Error.
func ToBEBytes(v BeBytes) []byte {
	out := make(Vec, 0, sizeHint(v))
	if err := v.EncodeBE(&out); err != nil {
		panic(err)
	}
	return out
}

// ToLEBytes encodes v into a new slice, panicking like ToBEBytes.
func ToLEBytes(v BeBytes) []byte {
	out := make(Vec, 0, sizeHint(v))
	if err := v.EncodeLE(&out); err != nil {
		panic(err)
	}
	return out
}

func sizeHint(v BeBytes) int {
	if s, ok := v.(EncodedSizer); ok {
		return s.EncodedSize()
	}
	return v.FieldSize()
}
