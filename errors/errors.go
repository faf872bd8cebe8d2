package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which pipeline stage produced the error
type Phase string

const (
	PhaseParse    Phase = "parse"    // description to IR
	PhaseValidate Phase = "validate" // static rules
	PhasePlan     Phase = "plan"     // layout policies
	PhaseEmit     Phase = "emit"     // Go source generation
	PhaseImport   Phase = "import"   // WIT and other foreign descriptions
	PhaseConfig   Phase = "config"   // generator configuration
	PhaseCodec    Phase = "codec"    // interpreted encode and decode
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax               Kind = "syntax"
	KindUnsupportedType      Kind = "unsupported_type"
	KindMalformedAttribute   Kind = "malformed_attribute"
	KindDuplicateAttribute   Kind = "duplicate_attribute"
	KindDuplicateName        Kind = "duplicate_name"
	KindIncompleteByte       Kind = "incomplete_byte"
	KindBadReference         Kind = "bad_reference"
	KindInvalidFlagsEnum     Kind = "invalid_flags_enum"
	KindMarkerGovernance     Kind = "marker_governance"
	KindTrailingVector       Kind = "trailing_vector"
	KindDiscriminantOverflow Kind = "discriminant_overflow"
	KindInvalidBitWidth      Kind = "invalid_bit_width"
	KindCircularRecord       Kind = "circular_record"
	KindEmptyRecord          Kind = "empty_record"
	KindInvalidInput         Kind = "invalid_input"
	KindTypeMismatch         Kind = "type_mismatch"
	KindInternal             Kind = "internal"
)

// Error is the structured diagnostic produced by every stage
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
	Path   []string
	Line   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the record/field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the offending type token
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Line sets the source line of a DSL description
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedType reports a type token the stage cannot handle
func UnsupportedType(phase Phase, path []string, typ, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Path:   path,
		Type:   typ,
		Detail: detail,
	}
}

// MalformedAttribute reports an attribute that does not parse or does not
// apply to its field
func MalformedAttribute(path []string, attr, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedAttribute,
		Path:   path,
		Detail: fmt.Sprintf("%s: %s", attr, detail),
		Value:  attr,
	}
}

// DuplicateAttribute reports an attribute given twice on one field
func DuplicateAttribute(path []string, attr string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindDuplicateAttribute,
		Path:   path,
		Detail: fmt.Sprintf("attribute %q given more than once", attr),
		Value:  attr,
	}
}

// IncompleteByte reports a bit run that does not end on a byte boundary
func IncompleteByte(path []string, bits int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindIncompleteByte,
		Path:   path,
		Detail: fmt.Sprintf("bit cursor at %d is not byte aligned (%d bits pending)", bits, bits%8),
		Value:  bits,
	}
}

// BadReference reports a from_field or size path that does not resolve
func BadReference(path []string, ref, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindBadReference,
		Path:   path,
		Detail: fmt.Sprintf("reference %q %s", ref, detail),
		Value:  ref,
	}
}

// TypeMismatch reports a dynamic value whose Go type does not fit the
// field's declared type
func TypeMismatch(phase Phase, path []string, goType, declared string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Type:   declared,
		Detail: fmt.Sprintf("cannot use %s as %s", goType, declared),
	}
}

// Syntax reports a DSL syntax error
func Syntax(line int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// List collects diagnostics so that a stage can report every problem of a
// description at once.
type List []*Error

// Add appends err when it is non-nil.
func (l *List) Add(err *Error) {
	if err != nil {
		*l = append(*l, err)
	}
}

// Merge appends every diagnostic carried by err. A List is flattened, an
// *Error appended, anything else wrapped as an internal error of phase.
func (l *List) Merge(phase Phase, err error) {
	switch e := err.(type) {
	case nil:
	case List:
		*l = append(*l, e...)
	case *Error:
		*l = append(*l, e)
	default:
		*l = append(*l, Wrap(phase, KindInternal, err, "unexpected error"))
	}
}

// Err returns nil for an empty list, the single error for one entry, and the
// list itself otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	}
	return l
}

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s):", len(l))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes every diagnostic to errors.Is and errors.As
func (l List) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}

// Kinds returns the kind of every diagnostic, in order
func (l List) Kinds() []Kind {
	out := make([]Kind, len(l))
	for i, e := range l {
		out[i] = e.Kind
	}
	return out
}

// KindsOf returns the kinds carried by err, which may be a List or an *Error
func KindsOf(err error) []Kind {
	switch e := err.(type) {
	case nil:
		return nil
	case List:
		return e.Kinds()
	case *Error:
		return []Kind{e.Kind}
	}
	return nil
}
