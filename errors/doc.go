// Package errors provides structured diagnostics for the bebytes generator.
//
// Errors are categorized by Phase (which stage rejected the description) and
// Kind (error category). The Error type carries the record/field path, the
// offending type token and, for DSL input, the source line.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindIncompleteByte).
//		Path("TwoNibbles", "low").
//		Detail("bit cursor at 3 is not byte aligned").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadReference(path, "hdr.len", "is not declared before use")
//	err := errors.DuplicateAttribute(path, "bits")
//
// Stages collect diagnostics into a List and return List.Err(), so every
// problem of a description is reported at once. Both Error and List support
// errors.Is/As; Error matches by phase and kind.
//
// Runtime encode/decode failures are not reported here; they use the closed
// taxonomy of bebytes.Error.
package errors
