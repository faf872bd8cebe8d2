// Package bebytes is the runtime linked by code that bebytesgen emits for
// binary record descriptions.
//
// A record description names its fields, their types and layout
// attributes. The generator plans a layout for it and emits a pair of
// monomorphic routines per byte order:
//
//	be record Dynamic {
//	    len:      u16
//	    data:     Vec<u8> from_field(len)
//	    checksum: u32
//	}
//
// becomes a Go struct with EncodeBE/EncodeLE, DecodeBE/DecodeLE,
// ToBEBytes/ToLEBytes, FieldSize and EncodedSize methods. This package holds
// everything those methods reference:
//
//	BufMut, Buffer, Vec   byte sinks written by encoders
//	Error                 closed error taxonomy returned by decoders
//	CString               NUL-terminated UTF-8 string
//	VarString8/16/32      length-prefixed UTF-8 strings
//	FixedString           zero-padded UTF-8 string of fixed capacity
//	Uint128, Int128       128-bit integers
//	BeBytes               interface implemented by generated types
//
// # Wire format
//
// Multi-byte values are two's complement in the chosen byte order. Packed
// bit fields are written most significant bit first in big-endian records
// and least significant bit first in little-endian records; a field that
// straddles a byte boundary spills into the next byte in the same
// direction. Optional values carry a one byte tag (0x00 absent, 0x01
// present) followed by a payload that is zero-filled when absent.
//
// # Errors
//
//	empty buffer
//	insufficient data: expected 4 bytes, got 2
//	invalid discriminant 7 for type Color
//	invalid bit field high: value 16 exceeds maximum 15
//	marker 0xff not found for field data
//
// Use errors.Is with the Err* sentinels to test the kind.
//
// # Thread Safety
//
// Generated routines touch only their receiver and the caller's buffer and
// hold no package state. Buffer is not safe for concurrent writes.
package bebytes
