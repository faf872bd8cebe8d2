package bebytes

import (
	"encoding/binary"
	"math/big"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is a two's complement signed 128-bit integer.
type Int128 struct {
	Hi, Lo uint64
}

// U128 returns v as a Uint128.
func U128(v uint64) Uint128 { return Uint128{Lo: v} }

// I128 sign-extends v to an Int128.
func I128(v int64) Int128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return Int128{Hi: hi, Lo: uint64(v)}
}

func (u Uint128) AppendBE(b []byte) []byte {
	b = binary.BigEndian.AppendUint64(b, u.Hi)
	return binary.BigEndian.AppendUint64(b, u.Lo)
}

func (u Uint128) AppendLE(b []byte) []byte {
	b = binary.LittleEndian.AppendUint64(b, u.Lo)
	return binary.LittleEndian.AppendUint64(b, u.Hi)
}

// U128FromBE reads 16 big-endian bytes. b must hold at least 16 bytes.
func U128FromBE(b []byte) Uint128 {
	return Uint128{Hi: binary.BigEndian.Uint64(b), Lo: binary.BigEndian.Uint64(b[8:])}
}

// U128FromLE reads 16 little-endian bytes. b must hold at least 16 bytes.
func U128FromLE(b []byte) Uint128 {
	return Uint128{Lo: binary.LittleEndian.Uint64(b), Hi: binary.LittleEndian.Uint64(b[8:])}
}

func (u Uint128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string { return u.Big().String() }

// Bits returns the raw two's complement bit pattern.
func (i Int128) Bits() Uint128 { return Uint128(i) }

// I128FromBits reinterprets a bit pattern as a signed value.
func I128FromBits(u Uint128) Int128 { return Int128(u) }

func (i Int128) Negative() bool { return i.Hi>>63 == 1 }

func (i Int128) Big() *big.Int {
	if !i.Negative() {
		return Uint128(i).Big()
	}
	// -(^x + 1)
	neg := Uint128{Hi: ^i.Hi, Lo: ^i.Lo}
	neg.Lo++
	if neg.Lo == 0 {
		neg.Hi++
	}
	return new(big.Int).Neg(neg.Big())
}

func (i Int128) String() string { return i.Big().String() }
