package bebytes

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferAndVecAgree(t *testing.T) {
	write := func(b BufMut) {
		b.Reserve(64)
		b.PutU8(0x01)
		b.PutU16(0x0203)
		b.PutU16LE(0x0203)
		b.PutU32(0x04050607)
		b.PutU32LE(0x04050607)
		b.PutU64(0x08090A0B0C0D0E0F)
		b.PutU64LE(0x08090A0B0C0D0E0F)
		b.PutU128(Uint128{Hi: 1, Lo: 2})
		b.PutU128LE(Uint128{Hi: 1, Lo: 2})
		b.PutSlice([]byte{0xAA})
		b.ExtendFromSlice([]byte{0xBB})
	}

	var buf Buffer
	write(&buf)
	var vec Vec
	write(&vec)

	if !bytes.Equal(buf.Bytes(), vec) {
		t.Fatalf("Buffer and Vec differ:\n% x\n% x", buf.Bytes(), []byte(vec))
	}
	want := []byte{
		0x01,
		0x02, 0x03, 0x03, 0x02,
		0x04, 0x05, 0x06, 0x07, 0x07, 0x06, 0x05, 0x04,
	}
	if !bytes.Equal(buf.Bytes()[:len(want)], want) {
		t.Errorf("prefix = % x, want % x", buf.Bytes()[:len(want)], want)
	}
	if buf.Len() != 1+4+8+16+32+2 {
		t.Errorf("Len = %d", buf.Len())
	}
	u := U128FromBE(buf.Bytes()[29:45])
	if u != (Uint128{Hi: 1, Lo: 2}) {
		t.Errorf("U128FromBE = %+v", u)
	}
	if l := U128FromLE(buf.Bytes()[45:61]); l != u {
		t.Errorf("U128FromLE = %+v, want %+v", l, u)
	}
}

func TestBufferReserveDoesNotChangeLength(t *testing.T) {
	b := NewBuffer(0)
	b.PutU8(7)
	b.Reserve(100)
	if b.Len() != 1 || b.Cap() < 101 {
		t.Errorf("Len=%d Cap=%d after Reserve", b.Len(), b.Cap())
	}
	out := b.Split()
	if len(out) != 1 || b.Len() != 0 {
		t.Errorf("Split = % x, remaining %d", out, b.Len())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{EmptyBuffer(), "empty buffer"},
		{InsufficientData(4, 2), "insufficient data: expected 4 bytes, got 2"},
		{InvalidDiscriminant(7, "Color"), "invalid discriminant 7 for type Color"},
		{InvalidBitField("high", 16, 15), "invalid bit field high: value 16 exceeds maximum 15"},
		{MarkerNotFound(0xFF, "data"), "marker 0xff not found for field data"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(InsufficientData(1, 0), ErrInsufficientData) {
		t.Error("errors.Is should match by kind")
	}
	if errors.Is(InsufficientData(1, 0), ErrEmptyBuffer) {
		t.Error("errors.Is must not match a different kind")
	}
}

func TestInt128(t *testing.T) {
	if got := I128(-1).String(); got != "-1" {
		t.Errorf("I128(-1) = %s", got)
	}
	if got := U128(42).String(); got != "42" {
		t.Errorf("U128(42) = %s", got)
	}
	max := Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
	if got := max.String(); got != "340282366920938463463374607431768211455" {
		t.Errorf("max = %s", got)
	}
	if got := I128FromBits(max).String(); got != "-1" {
		t.Errorf("all ones signed = %s", got)
	}
}
