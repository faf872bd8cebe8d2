package schema

import (
	"os"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/schema/internal/parser"
	"github.com/wippyai/bebytes/schema/internal/token"
)

// Parse builds the IR of a .bb description.
func Parse(source string) (*ir.File, error) {
	desc, err := ParseDesc(source)
	if err != nil {
		return nil, err
	}
	return Build(desc)
}

// ParseFile reads and parses a .bb file.
func ParseFile(path string) (*ir.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "read "+path)
	}
	return Parse(string(src))
}

// ParseDesc runs only the syntactic part of Parse and returns the
// description with type and attribute tokens unclassified.
func ParseDesc(source string) (FileDesc, error) {
	f, err := parser.New(token.Tokenize(source)).Parse()
	if err != nil {
		return FileDesc{}, err
	}

	var desc FileDesc
	for _, r := range f.Records {
		rd := RecordDesc{Name: r.Name, Line: r.Line}
		if r.Endian == "le" {
			rd.Endian = bebytes.LittleEndian
		}
		for _, fl := range r.Fields {
			rd.Fields = append(rd.Fields, FieldDesc{Name: fl.Name, Type: fl.Type, Attrs: fl.Attrs, Line: fl.Line})
		}
		desc.Records = append(desc.Records, rd)
	}
	for _, e := range f.Enums {
		ed := EnumDesc{Name: e.Name, Flags: e.Flags, Line: e.Line}
		for _, v := range e.Variants {
			ed.Variants = append(ed.Variants, VariantDesc(v))
		}
		desc.Enums = append(desc.Enums, ed)
	}
	return desc, nil
}
