package schema

import (
	"fmt"
	"io"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

// FromWIT maps named WIT records, enums and flags onto IR records of the
// given byte order. Referenced named types must be part of defs.
//
//	u8..u64, s8..s64, f32, f64, bool, char  primitives
//	string                                  VarString32
//	list<T>                                 Vec<T> (valid only as the last field)
//	option<T>                               Option<T>
//	named record, enum or flags             reference by name
//
// Variants, results, tuples and resource handles are rejected with
// unsupported_type.
func FromWIT(defs []*wit.TypeDef, endian bebytes.Endian) (*ir.File, error) {
	var errs errors.List
	out := &ir.File{}

	for _, td := range defs {
		name := witName(td)
		if name == "" {
			errs.Add(errors.InvalidInput(errors.PhaseImport, "anonymous WIT type cannot be imported"))
			continue
		}

		switch kind := td.Kind.(type) {
		case *wit.Record:
			rec := &ir.Record{Name: name, Endian: endian}
			for _, wf := range kind.Fields {
				fname := identFromWIT(wf.Name)
				typ, detail := typeFromWIT(wf.Type)
				if typ == nil {
					errs.Add(errors.UnsupportedType(errors.PhaseImport, []string{name, fname}, witTypeName(wf.Type), detail))
					continue
				}
				rec.Fields = append(rec.Fields, &ir.Field{Name: fname, Type: typ})
			}
			out.Records = append(out.Records, rec)

		case *wit.Enum:
			en := &ir.Enum{Name: name}
			for i, c := range kind.Cases {
				en.Variants = append(en.Variants, ir.Variant{Name: identFromWIT(c.Name), Value: uint64(i)})
			}
			out.Enums = append(out.Enums, en)

		case *wit.Flags:
			en := &ir.Enum{Name: name, Flags: true}
			for i, fl := range kind.Flags {
				var v uint64
				if i < 64 {
					v = 1 << uint(i)
				}
				en.Variants = append(en.Variants, ir.Variant{Name: identFromWIT(fl.Name), Value: v})
			}
			out.Enums = append(out.Enums, en)

		default:
			errs.Add(errors.UnsupportedType(errors.PhaseImport, []string{name}, witTypeName(td), "only records, enums and flags can be imported"))
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeWIT decodes a WIT JSON document (wasm-tools component wit --json)
// and imports the named type definitions plus every named type they
// reference. With no names, every record, enum and flags definition is
// imported.
func DecodeWIT(r io.Reader, endian bebytes.Endian, names ...string) (*ir.File, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseImport, errors.KindInvalidInput, err, "decode WIT JSON")
	}
	defs, err := SelectWIT(res.TypeDefs, names...)
	if err != nil {
		return nil, err
	}
	return FromWIT(defs, endian)
}

// SelectWIT picks the definitions to import from all: the named ones and
// their transitive named dependencies, in dependency order.
func SelectWIT(all []*wit.TypeDef, names ...string) ([]*wit.TypeDef, error) {
	if len(names) == 0 {
		var out []*wit.TypeDef
		for _, td := range all {
			switch td.Kind.(type) {
			case *wit.Record, *wit.Enum, *wit.Flags:
				if witName(td) != "" {
					out = append(out, td)
				}
			}
		}
		return out, nil
	}

	byName := make(map[string]*wit.TypeDef)
	for _, td := range all {
		if td.Name != nil {
			byName[*td.Name] = td
		}
	}

	var out []*wit.TypeDef
	added := make(map[*wit.TypeDef]bool)
	var visit func(td *wit.TypeDef)
	visit = func(td *wit.TypeDef) {
		if added[td] {
			return
		}
		added[td] = true
		for _, dep := range namedDeps(td) {
			visit(dep)
		}
		out = append(out, td)
	}

	var errs errors.List
	for _, n := range names {
		td, ok := byName[n]
		if !ok {
			errs.Add(errors.InvalidInput(errors.PhaseImport, "WIT type "+n+" not found"))
			continue
		}
		visit(td)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func namedDeps(td *wit.TypeDef) []*wit.TypeDef {
	var out []*wit.TypeDef
	var walk func(t wit.Type, top bool)
	walk = func(t wit.Type, top bool) {
		d, ok := t.(*wit.TypeDef)
		if !ok {
			return
		}
		if d.Name != nil && !top {
			out = append(out, d)
			return
		}
		switch k := d.Kind.(type) {
		case *wit.Record:
			for _, f := range k.Fields {
				walk(f.Type, false)
			}
		case *wit.List:
			walk(k.Type, false)
		case *wit.Option:
			walk(k.Type, false)
		}
	}
	walk(td, true)
	return out
}

// typeFromWIT maps a field type. Anonymous list and option definitions are
// inlined; the result is re-checked by the IR type classifier.
func typeFromWIT(t wit.Type) (*ir.Type, string) {
	var typ *ir.Type
	switch v := t.(type) {
	case wit.Bool:
		typ = ir.Prim(ir.KindBool)
	case wit.U8:
		typ = ir.Prim(ir.KindU8)
	case wit.U16:
		typ = ir.Prim(ir.KindU16)
	case wit.U32:
		typ = ir.Prim(ir.KindU32)
	case wit.U64:
		typ = ir.Prim(ir.KindU64)
	case wit.S8:
		typ = ir.Prim(ir.KindI8)
	case wit.S16:
		typ = ir.Prim(ir.KindI16)
	case wit.S32:
		typ = ir.Prim(ir.KindI32)
	case wit.S64:
		typ = ir.Prim(ir.KindI64)
	case wit.F32:
		typ = ir.Prim(ir.KindF32)
	case wit.F64:
		typ = ir.Prim(ir.KindF64)
	case wit.Char:
		typ = ir.Prim(ir.KindChar)
	case wit.String:
		typ = ir.VarString(32)
	case *wit.TypeDef:
		if v.Name != nil {
			switch v.Kind.(type) {
			case *wit.Record, *wit.Enum, *wit.Flags:
				return ir.RecordRef(identFromWIT(*v.Name)), ""
			}
			return nil, "named WIT type " + *v.Name + " is not a record, enum or flags"
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			elem, detail := typeFromWIT(k.Type)
			if elem == nil {
				return nil, detail
			}
			typ = ir.VecOf(elem)
		case *wit.Option:
			elem, detail := typeFromWIT(k.Type)
			if elem == nil {
				return nil, detail
			}
			typ = ir.OptionOf(elem)
		default:
			return nil, "WIT type has no binary layout here"
		}
	default:
		return nil, "WIT type has no binary layout here"
	}

	checked, err := ir.ParseType(typ.String())
	if err != nil {
		return nil, err.(*errors.Error).Detail
	}
	return checked, ""
}

func witName(td *wit.TypeDef) string {
	if td.Name == nil {
		return ""
	}
	return identFromWIT(*td.Name)
}

func witTypeName(t wit.Type) string {
	if td, ok := t.(*wit.TypeDef); ok && td.Name != nil {
		return *td.Name
	}
	return strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(fmt.Sprintf("%T", t), "*"), "wit."))
}

// identFromWIT turns a kebab-case WIT name into an identifier.
func identFromWIT(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
