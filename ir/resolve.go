package ir

// Resolve follows p from record r. The first segment must name a field of r
// declared before position before; each later segment names a field of the
// sub-record reached so far. It returns the chain of fields visited, or a
// detail message when the path does not resolve.
func (f *File) Resolve(r *Record, before int, p Path) ([]*Field, string) {
	if len(p) == 0 {
		return nil, "is empty"
	}

	idx := r.FieldIndex(p[0])
	switch {
	case idx < 0:
		return nil, "does not name a field of " + r.Name
	case idx >= before:
		return nil, "is not declared before use"
	}

	chain := []*Field{r.Fields[idx]}
	cur := r.Fields[idx]
	for _, seg := range p[1:] {
		if cur.Type == nil || cur.Type.Kind != KindRecord {
			return nil, "steps into " + cur.Name + ", which is not a sub-record"
		}
		sub := f.Record(cur.Type.Name)
		if sub == nil {
			return nil, "steps into " + cur.Name + ", which is not a sub-record"
		}
		next := sub.Field(seg)
		if next == nil {
			return nil, "does not name a field of " + sub.Name
		}
		chain = append(chain, next)
		cur = next
	}
	return chain, ""
}

// IsLengthSource reports whether a field can supply a length: an unsigned
// integer of at most 64 bits.
func (fl *Field) IsLengthSource() bool {
	t := fl.Type
	return t != nil && t.Kind.IsUnsigned() && t.Kind != KindU128
}
