// Package codec encodes and decodes records by walking their layout plan at
// run time instead of through generated code. Values are map[string]any
// keyed by field name.
//
// The wire output is byte-for-byte the output of the code emitted by
// package codegen for the same plan, including every error. Bit runs are
// packed with bebytes.PutBits and read with bebytes.GetBits.
package codec
