package bebytes

import "unicode/utf8"

// Type names reported for invalid primitive encodings.
const (
	TypeBool   = "bool"
	TypeChar   = "char"
	TypeOption = "Option"
)

// BoolByte is the wire form of a bool.
func BoolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// DecodeBool accepts only 0x00 and 0x01.
func DecodeBool(b uint8) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, InvalidDiscriminant(uint64(b), TypeBool)
}

// DecodeRune validates a 32-bit Unicode scalar value.
func DecodeRune(u uint32) (rune, error) {
	r := rune(u)
	if u > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, InvalidDiscriminant(uint64(u), TypeChar)
	}
	return r, nil
}
