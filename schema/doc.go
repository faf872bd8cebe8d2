// Package schema turns record descriptions into IR.
//
// Three front ends produce the same ir.File:
//
//	Parse(src)         the .bb DSL
//	Build(desc)        (field-name, type-token, attribute-token-list) tuples
//	FromWIT(defs, e)   WIT records, enums and flags
//
// A .bb file declares records and enums:
//
//	be record Dynamic {
//		len: u16
//		data: Vec<u8> from_field(len)
//		checksum: u32
//	}
//
//	flags enum Perms { Read = 1, Write = 2, Execute = 4 }
//
// Attributes are bits(n), size(expr), from_field(path), until_marker(b) and
// after_marker(b). Size expressions accept integer literals, dotted field
// paths, parentheses and + - * / %. Type and attribute errors of every field
// are reported together.
package schema
