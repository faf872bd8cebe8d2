// Package validate enforces the static rules a description must satisfy
// before layout planning:
//
//   - consecutive bits(n) fields fill whole bytes, and a record never ends
//     mid-byte
//   - from_field and size references name earlier unsigned integer fields,
//     possibly inside sub-records
//   - bits(n) fits the field type; floats, bool and 128-bit integers are not
//     bit-packed
//   - marker attributes are exclusive, nested byte vectors are size-governed,
//     after_marker is not used on Vec<Vec<u8>>
//   - unbounded vectors and strings are the final field
//   - plain enum discriminants fit a byte; flags are distinct powers of two
//   - records do not contain themselves
//
// All violations are collected into an errors.List.
package validate
