package bebytes

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// Type names reported by string decoders in InvalidDiscriminant errors.
const (
	TypeCStringMissingNull  = "CString (missing null terminator)"
	TypeCStringInvalidUTF8  = "CString (invalid UTF-8)"
	TypeVarStringInvalid    = "VarString (invalid UTF-8)"
	TypeFixedStringInvalid  = "FixedString (invalid UTF-8)"
	TypeStringInvalidUTF8   = "String (invalid UTF-8)"
	TypeSizeExpressionRange = "size expression"
)

// CString is a UTF-8 string terminated by a single 0x00 byte on the wire.
// The value must not contain 0x00.
type CString string

func (s CString) EncodedSize() int { return len(s) + 1 }

func (s CString) FieldSize() int { return 1 }

func (s CString) EncodeBE(buf BufMut) error {
	buf.PutSlice([]byte(s))
	buf.PutU8(0)
	return nil
}

func (s CString) EncodeLE(buf BufMut) error { return s.EncodeBE(buf) }

func (s *CString) DecodeBE(b []byte) (int, error) {
	v, n, err := DecodeCString(b)
	if err != nil {
		return 0, err
	}
	*s = v
	return n, nil
}

func (s *CString) DecodeLE(b []byte) (int, error) { return s.DecodeBE(b) }

// DecodeCString reads bytes up to and including the first 0x00.
func DecodeCString(b []byte) (CString, int, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", 0, InvalidDiscriminant(0, TypeCStringMissingNull)
	}
	if !utf8.Valid(b[:end]) {
		return "", 0, InvalidDiscriminant(0, TypeCStringInvalidUTF8)
	}
	return CString(b[:end]), end + 1, nil
}

// VarString8 is a UTF-8 string with a one byte length prefix.
type VarString8 string

// VarString16 is a UTF-8 string with a two byte length prefix in record
// byte order.
type VarString16 string

// VarString32 is a UTF-8 string with a four byte length prefix in record
// byte order.
type VarString32 string

func (s VarString8) EncodedSize() int  { return len(s) + 1 }
func (s VarString16) EncodedSize() int { return len(s) + 2 }
func (s VarString32) EncodedSize() int { return len(s) + 4 }

func (s VarString8) FieldSize() int  { return 1 }
func (s VarString16) FieldSize() int { return 2 }
func (s VarString32) FieldSize() int { return 4 }

func (s VarString8) EncodeBE(buf BufMut) error {
	if len(s) > 0xFF {
		return InvalidBitField("", uint64(len(s)), 0xFF)
	}
	buf.PutU8(uint8(len(s)))
	buf.PutSlice([]byte(s))
	return nil
}

func (s VarString8) EncodeLE(buf BufMut) error { return s.EncodeBE(buf) }

func (s VarString16) EncodeBE(buf BufMut) error {
	if len(s) > 0xFFFF {
		return InvalidBitField("", uint64(len(s)), 0xFFFF)
	}
	buf.PutU16(uint16(len(s)))
	buf.PutSlice([]byte(s))
	return nil
}

func (s VarString16) EncodeLE(buf BufMut) error {
	if len(s) > 0xFFFF {
		return InvalidBitField("", uint64(len(s)), 0xFFFF)
	}
	buf.PutU16LE(uint16(len(s)))
	buf.PutSlice([]byte(s))
	return nil
}

func (s VarString32) EncodeBE(buf BufMut) error {
	if uint64(len(s)) > 0xFFFFFFFF {
		return InvalidBitField("", uint64(len(s)), 0xFFFFFFFF)
	}
	buf.PutU32(uint32(len(s)))
	buf.PutSlice([]byte(s))
	return nil
}

func (s VarString32) EncodeLE(buf BufMut) error {
	if uint64(len(s)) > 0xFFFFFFFF {
		return InvalidBitField("", uint64(len(s)), 0xFFFFFFFF)
	}
	buf.PutU32LE(uint32(len(s)))
	buf.PutSlice([]byte(s))
	return nil
}

func (s *VarString8) DecodeBE(b []byte) (int, error) {
	v, n, err := decodeVarString(b, 1, BigEndian)
	if err != nil {
		return 0, err
	}
	*s = VarString8(v)
	return n, nil
}

func (s *VarString8) DecodeLE(b []byte) (int, error) { return s.DecodeBE(b) }

func (s *VarString16) DecodeBE(b []byte) (int, error) {
	v, n, err := decodeVarString(b, 2, BigEndian)
	if err != nil {
		return 0, err
	}
	*s = VarString16(v)
	return n, nil
}

func (s *VarString16) DecodeLE(b []byte) (int, error) {
	v, n, err := decodeVarString(b, 2, LittleEndian)
	if err != nil {
		return 0, err
	}
	*s = VarString16(v)
	return n, nil
}

func (s *VarString32) DecodeBE(b []byte) (int, error) {
	v, n, err := decodeVarString(b, 4, BigEndian)
	if err != nil {
		return 0, err
	}
	*s = VarString32(v)
	return n, nil
}

func (s *VarString32) DecodeLE(b []byte) (int, error) {
	v, n, err := decodeVarString(b, 4, LittleEndian)
	if err != nil {
		return 0, err
	}
	*s = VarString32(v)
	return n, nil
}

// DecodeVarString reads a length-prefixed UTF-8 string whose prefix is
// prefixBytes (1, 2 or 4) wide.
func DecodeVarString(b []byte, prefixBytes int, order Endian) (string, int, error) {
	return decodeVarString(b, prefixBytes, order)
}

func decodeVarString(b []byte, prefixBytes int, order Endian) (string, int, error) {
	if len(b) < prefixBytes {
		return "", 0, InsufficientData(prefixBytes, len(b))
	}
	var n int
	switch prefixBytes {
	case 1:
		n = int(b[0])
	case 2:
		if order == LittleEndian {
			n = int(binary.LittleEndian.Uint16(b))
		} else {
			n = int(binary.BigEndian.Uint16(b))
		}
	default:
		if order == LittleEndian {
			n = int(binary.LittleEndian.Uint32(b))
		} else {
			n = int(binary.BigEndian.Uint32(b))
		}
	}
	body := b[prefixBytes:]
	if len(body) < n {
		return "", 0, InsufficientData(n, len(body))
	}
	if !utf8.Valid(body[:n]) {
		return "", 0, InvalidDiscriminant(0, TypeVarStringInvalid)
	}
	return string(body[:n]), prefixBytes + n, nil
}

// FixedString is a UTF-8 string stored in a fixed number of bytes,
// zero-padded. The capacity is a property of the field, not the value.
type FixedString string

// EncodeFixedString writes s padded with zeros to exactly n bytes.
func EncodeFixedString(buf BufMut, s string, n int) error {
	if len(s) > n {
		return InvalidBitField("", uint64(len(s)), uint64(n))
	}
	buf.PutSlice([]byte(s))
	for i := len(s); i < n; i++ {
		buf.PutU8(0)
	}
	return nil
}

// DecodeFixedString reads exactly n bytes; the value ends at the first 0x00
// or at n.
func DecodeFixedString(b []byte, n int) (FixedString, int, error) {
	if len(b) < n {
		return "", 0, InsufficientData(n, len(b))
	}
	raw := b[:n]
	if end := bytes.IndexByte(raw, 0); end >= 0 {
		raw = raw[:end]
	}
	if !utf8.Valid(raw) {
		return "", 0, InvalidDiscriminant(0, TypeFixedStringInvalid)
	}
	return FixedString(raw), n, nil
}

// DecodeString reads exactly n bytes as a UTF-8 string.
func DecodeString(b []byte, n int) (string, error) {
	if len(b) < n {
		return "", InsufficientData(n, len(b))
	}
	if !utf8.Valid(b[:n]) {
		return "", InvalidDiscriminant(0, TypeStringInvalidUTF8)
	}
	return string(b[:n]), nil
}
