// Package plan computes the wire layout of validated records: one policy
// per field, bit runs, static and minimum sizes, and the size expressions
// evaluated at decode time.
package plan
