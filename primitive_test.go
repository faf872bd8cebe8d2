package bebytes

import (
	"errors"
	"testing"
)

func TestDecodeBool(t *testing.T) {
	for _, b := range []uint8{0, 1} {
		got, err := DecodeBool(b)
		if err != nil {
			t.Fatalf("DecodeBool(%d) error: %v", b, err)
		}
		if BoolByte(got) != b {
			t.Errorf("BoolByte(DecodeBool(%d)) = %d", b, BoolByte(got))
		}
	}

	_, err := DecodeBool(2)
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidDiscriminant || e.TypeName != TypeBool || e.Value != 2 {
		t.Errorf("DecodeBool(2) error = %v", err)
	}
}

func TestDecodeRune(t *testing.T) {
	tests := []struct {
		in      uint32
		want    rune
		wantErr bool
	}{
		{in: 'a', want: 'a'},
		{in: 0x1F600, want: 0x1F600},
		{in: 0xD800, wantErr: true},
		{in: 0x110000, wantErr: true},
		{in: 0xFFFFFFFF, wantErr: true},
	}
	for _, tt := range tests {
		got, err := DecodeRune(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDiscriminant) {
				t.Errorf("DecodeRune(%#x) error = %v, want invalid discriminant", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("DecodeRune(%#x) = %q, %v", tt.in, got, err)
		}
	}
}
