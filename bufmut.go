package bebytes

import "encoding/binary"

// BufMut is the byte sink generated encoders write to.
//
// Implementations append; none of the methods can fail. Generated encoders
// do not reserve space themselves. EncodeBETo and EncodeLETo call Reserve
// once with the encoded size; ToBEBytes, ToLEBytes and generated Marshal
// preallocate it.
type BufMut interface {
	PutU8(v uint8)
	PutU16(v uint16)
	PutU16LE(v uint16)
	PutU32(v uint32)
	PutU32LE(v uint32)
	PutU64(v uint64)
	PutU64LE(v uint64)
	PutU128(v Uint128)
	PutU128LE(v Uint128)
	PutSlice(p []byte)
	ExtendFromSlice(p []byte)
	Reserve(n int)
	Len() int
}

// Buffer is a growable byte buffer implementing BufMut.
// The zero value is ready to use.
type Buffer struct {
	b []byte
}

// NewBuffer returns a Buffer with at least capacity bytes preallocated.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the buffer until the
// next write.
func (b *Buffer) Bytes() []byte { return b.b }

func (b *Buffer) Len() int { return len(b.b) }

func (b *Buffer) Cap() int { return cap(b.b) }

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() { b.b = b.b[:0] }

// Split returns the written bytes as an independent slice and empties the
// buffer. Storage is not shared with later writes.
func (b *Buffer) Split() []byte {
	out := b.b
	b.b = nil
	return out
}

func (b *Buffer) PutU8(v uint8) { b.b = append(b.b, v) }

func (b *Buffer) PutU16(v uint16) { b.b = binary.BigEndian.AppendUint16(b.b, v) }

func (b *Buffer) PutU16LE(v uint16) { b.b = binary.LittleEndian.AppendUint16(b.b, v) }

func (b *Buffer) PutU32(v uint32) { b.b = binary.BigEndian.AppendUint32(b.b, v) }

func (b *Buffer) PutU32LE(v uint32) { b.b = binary.LittleEndian.AppendUint32(b.b, v) }

func (b *Buffer) PutU64(v uint64) { b.b = binary.BigEndian.AppendUint64(b.b, v) }

func (b *Buffer) PutU64LE(v uint64) { b.b = binary.LittleEndian.AppendUint64(b.b, v) }

func (b *Buffer) PutU128(v Uint128) { b.b = v.AppendBE(b.b) }

func (b *Buffer) PutU128LE(v Uint128) { b.b = v.AppendLE(b.b) }

func (b *Buffer) PutSlice(p []byte) { b.b = append(b.b, p...) }

func (b *Buffer) ExtendFromSlice(p []byte) { b.b = append(b.b, p...) }

// Reserve grows capacity so that n more bytes fit without reallocation.
func (b *Buffer) Reserve(n int) { b.b = reserve(b.b, n) }

// Vec adapts a plain byte slice to BufMut:
//
//	var out []byte
//	err := rec.EncodeBE((*bebytes.Vec)(&out))
type Vec []byte

func (v *Vec) PutU8(x uint8) { *v = append(*v, x) }

func (v *Vec) PutU16(x uint16) { *v = binary.BigEndian.AppendUint16(*v, x) }

func (v *Vec) PutU16LE(x uint16) { *v = binary.LittleEndian.AppendUint16(*v, x) }

func (v *Vec) PutU32(x uint32) { *v = binary.BigEndian.AppendUint32(*v, x) }

func (v *Vec) PutU32LE(x uint32) { *v = binary.LittleEndian.AppendUint32(*v, x) }

func (v *Vec) PutU64(x uint64) { *v = binary.BigEndian.AppendUint64(*v, x) }

func (v *Vec) PutU64LE(x uint64) { *v = binary.LittleEndian.AppendUint64(*v, x) }

func (v *Vec) PutU128(x Uint128) { *v = x.AppendBE(*v) }

func (v *Vec) PutU128LE(x Uint128) { *v = x.AppendLE(*v) }

func (v *Vec) PutSlice(p []byte) { *v = append(*v, p...) }

func (v *Vec) ExtendFromSlice(p []byte) { *v = append(*v, p...) }

func (v *Vec) Reserve(n int) { *v = reserve(*v, n) }

func (v *Vec) Len() int { return len(*v) }

func reserve(b []byte, n int) []byte {
	if n <= 0 || cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)
	return grown
}
