package bebytes

import "math/bits"

// Endian selects the byte order of multi-byte values and the bit order of
// packed bit fields.
type Endian uint8

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) String() string {
	if e == LittleEndian {
		return "le"
	}
	return "be"
}

// Mask returns a value with the low n bits set, for 0 <= n <= 64.
func Mask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

// BitWidth returns the number of bits needed to represent every value in
// [0, maxValue], i.e. ceil(log2(maxValue+1)). BitWidth(0) is 0.
func BitWidth(maxValue uint64) int {
	return bits.Len64(maxValue)
}

// PutBits ORs the low n bits of v into dst starting at bit position off.
//
// Big-endian packs from the most significant bit of each byte, little-endian
// from the least significant bit; runs spill into following bytes in the same
// direction. dst must already be zero at the affected bits.
func PutBits(dst []byte, off, n int, v uint64, order Endian) {
	if order == LittleEndian {
		written := 0
		for written < n {
			o := off % 8
			take := min(8-o, n-written)
			chunk := (v >> uint(written)) & Mask(take)
			dst[off/8] |= byte(chunk << uint(o))
			written += take
			off += take
		}
		return
	}
	remaining := n
	for remaining > 0 {
		o := off % 8
		take := min(8-o, remaining)
		chunk := (v >> uint(remaining-take)) & Mask(take)
		dst[off/8] |= byte(chunk << uint(8-o-take))
		remaining -= take
		off += take
	}
}

// GetBits extracts n bits from src starting at bit position off, mirroring
// PutBits.
func GetBits(src []byte, off, n int, order Endian) uint64 {
	var v uint64
	if order == LittleEndian {
		read := 0
		for read < n {
			o := off % 8
			take := min(8-o, n-read)
			chunk := uint64(src[off/8]>>uint(o)) & Mask(take)
			v |= chunk << uint(read)
			read += take
			off += take
		}
		return v
	}
	remaining := n
	for remaining > 0 {
		o := off % 8
		take := min(8-o, remaining)
		chunk := uint64(src[off/8]>>uint(8-o-take)) & Mask(take)
		v = v<<uint(take) | chunk
		remaining -= take
		off += take
	}
	return v
}
