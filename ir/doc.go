// Package ir defines the record description model shared by every stage of
// the generator.
//
// A File holds struct Records and Enums. Each Record field carries a semantic
// Type and its layout attributes (bits, size, from_field, until_marker,
// after_marker). Size expressions are kept as a small AST (Lit, Ref, Binary)
// and evaluated only by the planner or by generated code.
//
// IR values are inert: front ends in package schema produce them, package
// validate checks them and package plan consumes them.
package ir
