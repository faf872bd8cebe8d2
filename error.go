package bebytes

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of runtime failures.
type ErrorKind uint8

const (
	KindEmptyBuffer ErrorKind = iota + 1
	KindInsufficientData
	KindInvalidDiscriminant
	KindInvalidBitField
	KindMarkerNotFound
)

var kindNames = [...]string{
	KindEmptyBuffer:         "empty_buffer",
	KindInsufficientData:    "insufficient_data",
	KindInvalidDiscriminant: "invalid_discriminant",
	KindInvalidBitField:     "invalid_bit_field",
	KindMarkerNotFound:      "marker_not_found",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Error is returned by generated encoders and decoders.
// Only the fields relevant to Kind are set.
type Error struct {
	TypeName string // InvalidDiscriminant
	Field    string // InvalidBitField, MarkerNotFound
	Value    uint64 // InvalidDiscriminant, InvalidBitField
	Max      uint64 // InvalidBitField
	Expected int    // InsufficientData
	Actual   int    // InsufficientData
	Kind     ErrorKind
	Marker   byte // MarkerNotFound
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyBuffer:
		return "empty buffer"
	case KindInsufficientData:
		return fmt.Sprintf("insufficient data: expected %d bytes, got %d", e.Expected, e.Actual)
	case KindInvalidDiscriminant:
		return fmt.Sprintf("invalid discriminant %d for type %s", e.Value, e.TypeName)
	case KindInvalidBitField:
		return fmt.Sprintf("invalid bit field %s: value %d exceeds maximum %d", e.Field, e.Value, e.Max)
	case KindMarkerNotFound:
		return fmt.Sprintf("marker 0x%02x not found for field %s", e.Marker, e.Field)
	}
	return "bebytes: unknown error"
}

// Is reports whether target is an *Error of the same kind, so the
// sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrEmptyBuffer         = &Error{Kind: KindEmptyBuffer}
	ErrInsufficientData    = &Error{Kind: KindInsufficientData}
	ErrInvalidDiscriminant = &Error{Kind: KindInvalidDiscriminant}
	ErrInvalidBitField     = &Error{Kind: KindInvalidBitField}
	ErrMarkerNotFound      = &Error{Kind: KindMarkerNotFound}
)

// EmptyBuffer returns a fresh EmptyBuffer error.
func EmptyBuffer() *Error {
	return &Error{Kind: KindEmptyBuffer}
}

// InsufficientData reports that expected bytes were needed where only
// actual remained.
func InsufficientData(expected, actual int) *Error {
	return &Error{Kind: KindInsufficientData, Expected: expected, Actual: actual}
}

func InvalidDiscriminant(value uint64, typeName string) *Error {
	return &Error{Kind: KindInvalidDiscriminant, Value: value, TypeName: typeName}
}

func InvalidBitField(field string, value, maxValue uint64) *Error {
	return &Error{Kind: KindInvalidBitField, Field: field, Value: value, Max: maxValue}
}

func MarkerNotFound(marker byte, field string) *Error {
	return &Error{Kind: KindMarkerNotFound, Marker: marker, Field: field}
}

// FieldError names the field of an InvalidBitField or MarkerNotFound error
// raised by a nested helper that did not know it. Other errors pass through.
func FieldError(err error, field string) error {
	var e *Error
	if errors.As(err, &e) && e.Field == "" &&
		(e.Kind == KindInvalidBitField || e.Kind == KindMarkerNotFound) {
		named := *e
		named.Field = field
		return &named
	}
	return err
}
