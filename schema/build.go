package schema

import (
	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

// FileDesc is a record description in host-neutral form: every type and
// attribute is still a token to be classified.
type FileDesc struct {
	Records []RecordDesc
	Enums   []EnumDesc
}

// RecordDesc describes one struct record.
type RecordDesc struct {
	Name   string
	Fields []FieldDesc
	Line   int
	Endian bebytes.Endian
}

// FieldDesc is a (field-name, type-token, attribute-token-list) tuple, e.g.
//
//	FieldDesc{Name: "data", Type: "Vec<u8>", Attrs: []string{"from_field(len)"}}
type FieldDesc struct {
	Name  string
	Type  string
	Attrs []string
	Line  int
}

// EnumDesc describes a plain or flags enum.
type EnumDesc struct {
	Name     string
	Variants []VariantDesc
	Line     int
	Flags    bool
}

type VariantDesc struct {
	Name  string
	Value uint64
	Line  int
}

// Build classifies every type and attribute token of desc. Parsing is
// fallible per attribute but total per field: all diagnostics of the
// description are collected and returned together as an errors.List.
func Build(desc FileDesc) (*ir.File, error) {
	var errs errors.List
	out := &ir.File{}
	seen := make(map[string]bool)

	declare := func(name string, line int) {
		switch {
		case !ir.IsIdent(name):
			errs.Add(errors.New(errors.PhaseParse, errors.KindSyntax).
				Path(name).Line(line).Detail("invalid declaration name %q", name).Build())
		case seen[name]:
			errs.Add(errors.New(errors.PhaseParse, errors.KindDuplicateName).
				Path(name).Line(line).Detail("%s is declared more than once", name).Build())
		}
		seen[name] = true
	}

	for _, rd := range desc.Records {
		declare(rd.Name, rd.Line)
		rec := &ir.Record{Name: rd.Name, Endian: rd.Endian, Line: rd.Line}
		fieldSeen := make(map[string]bool)
		for _, fd := range rd.Fields {
			path := []string{rd.Name, fd.Name}
			if !ir.IsIdent(fd.Name) {
				errs.Add(errors.New(errors.PhaseParse, errors.KindSyntax).
					Path(path...).Line(fd.Line).Detail("invalid field name %q", fd.Name).Build())
			} else if fieldSeen[fd.Name] {
				errs.Add(errors.New(errors.PhaseParse, errors.KindDuplicateName).
					Path(path...).Line(fd.Line).Detail("field %s is declared more than once", fd.Name).Build())
			}
			fieldSeen[fd.Name] = true

			f, ferrs := buildField(path, fd)
			errs = append(errs, ferrs...)
			if f != nil {
				rec.Fields = append(rec.Fields, f)
			}
		}
		out.Records = append(out.Records, rec)
	}

	for _, ed := range desc.Enums {
		declare(ed.Name, ed.Line)
		en := &ir.Enum{Name: ed.Name, Flags: ed.Flags, Line: ed.Line}
		names := make(map[string]bool)
		for _, vd := range ed.Variants {
			if !ir.IsIdent(vd.Name) || names[vd.Name] {
				errs.Add(errors.New(errors.PhaseParse, errors.KindDuplicateName).
					Path(ed.Name, vd.Name).Line(vd.Line).
					Detail("variant name %q is invalid or repeated", vd.Name).Build())
			}
			names[vd.Name] = true
			en.Variants = append(en.Variants, ir.Variant{Name: vd.Name, Value: vd.Value, Line: vd.Line})
		}
		out.Enums = append(out.Enums, en)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildField classifies one field. It returns a nil field only when the
// type token itself is unusable; attribute errors still yield the field.
func buildField(path []string, fd FieldDesc) (*ir.Field, errors.List) {
	var errs errors.List

	typ, err := ir.ParseType(fd.Type)
	if err != nil {
		e := err.(*errors.Error)
		e.Path = path
		e.Line = fd.Line
		errs.Add(e)
	}

	f := &ir.Field{Name: fd.Name, Type: typ, Line: fd.Line}
	given := make(map[string]bool)
	for _, tok := range fd.Attrs {
		a, err := parseAttr(tok)
		if err != nil {
			errs.Add(attrError(path, fd.Line, tok, err.Error()))
			continue
		}
		if given[a.name] {
			e := errors.DuplicateAttribute(path, a.name)
			e.Line = fd.Line
			errs.Add(e)
			continue
		}
		given[a.name] = true
		a.apply(f)
	}

	if typ == nil {
		return nil, errs
	}
	return f, errs
}

func attrError(path []string, line int, attr, detail string) *errors.Error {
	e := errors.MalformedAttribute(path, attr, detail)
	e.Line = line
	return e
}
