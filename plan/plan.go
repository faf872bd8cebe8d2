package plan

import (
	"go.uber.org/zap"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

// Dynamic marks a size that is not known until the value is seen.
const Dynamic = -1

// Plan is the layout of every record in a file.
type Plan struct {
	File    *ir.File
	Records []*Record
}

// Record returns the planned record named name, or nil.
func (p *Plan) Record(name string) *Record {
	for _, r := range p.Records {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Record is the layout of one record. Steps lists the fields in wire order
// with consecutive bit fields grouped into runs.
type Record struct {
	IR         *ir.Record
	Name       string
	GoName     string
	Fields     []*Field
	Steps      []Step
	Runs       []*BitRun
	Endian     bebytes.Endian
	StaticSize int
	MinSize    int
	Static     bool
	Raw        bool
}

// Method returns the serialization strategy hint for the record.
func (r *Record) Method() Method {
	switch {
	case r.Raw:
		return MethodRawPointer
	case r.Static:
		return MethodStaticBuffer
	default:
		return MethodDynamicBuffer
	}
}

// Step is either a bit run or a single byte-aligned field.
type Step struct {
	Run   *BitRun
	Field *Field
}

// BitRun is a maximal sequence of consecutive bits(n) fields. A run starts
// on a byte boundary and spans Bytes whole bytes.
type BitRun struct {
	Fields []*Field
	Index  int
	Bits   int
	Bytes  int
}

// Field is the layout of one record member.
type Field struct {
	IR *ir.Field

	// Type is the declared type. For vectors and options Elem is the element
	// type and Kind its kind; otherwise Kind is the kind of Type.
	Type *ir.Type
	Elem *ir.Type
	Kind ir.Kind

	// Enum is set when the value (or element) is an enum or flags reference,
	// Record when it is a sub-record.
	Enum   *ir.Enum
	Record *Record

	// Length is the deferred element count or byte length of governed
	// vectors and strings whose size is not a literal.
	Length ir.Expr

	Name     string
	GoName   string
	Policy   Policy
	Bits     int
	Run      int
	Offset   int
	Count    int
	Size     int
	MinSize  int
	ElemSize int
	// BitOffset is the position of the field from the start of the record,
	// or Dynamic when a variable-size field precedes it.
	BitOffset int
	Marker    byte
	Last      bool
	Aligned   bool
	Str       bool
}

// IsEnum reports whether the field value or element is an enum.
func (f *Field) IsEnum() bool { return f.Enum != nil }

// Static reports whether the field has a fixed wire size.
func (f *Field) Static() bool { return f.Size != Dynamic }

// Planner lays out the records of one file. Planned records are cached, so
// a record used as a sub-record is planned once.
type Planner struct {
	file     *ir.File
	cache    map[string]*Record
	visiting map[string]bool
}

// NewPlanner creates a planner for a validated file.
func NewPlanner(f *ir.File) *Planner {
	return &Planner{
		file:     f,
		cache:    make(map[string]*Record),
		visiting: make(map[string]bool),
	}
}

// Build plans every record of a validated file.
func Build(f *ir.File) (*Plan, error) {
	p := NewPlanner(f)
	out := &Plan{File: f}
	for _, r := range f.Records {
		rec, err := p.Record(r.Name)
		if err != nil {
			return nil, err
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// Record plans the record named name.
func (p *Planner) Record(name string) (*Record, error) {
	if rec, ok := p.cache[name]; ok {
		return rec, nil
	}
	r := p.file.Record(name)
	if r == nil {
		return nil, errors.New(errors.PhasePlan, errors.KindBadReference).
			Path(name).Detail("record %s is not declared", name).Build()
	}
	if p.visiting[name] {
		return nil, errors.New(errors.PhasePlan, errors.KindCircularRecord).
			Path(name).Detail("record %s contains itself", name).Build()
	}
	p.visiting[name] = true
	defer delete(p.visiting, name)

	rec, err := p.plan(r)
	if err != nil {
		return nil, err
	}
	p.cache[name] = rec
	return rec, nil
}

func (p *Planner) plan(r *ir.Record) (*Record, error) {
	rec := &Record{
		IR:     r,
		Name:   r.Name,
		GoName: ir.GoName(r.Name),
		Endian: r.Endian,
		Static: true,
		Raw:    true,
	}

	var run *BitRun
	offset := 0
	for i, f := range r.Fields {
		fp, err := p.field(r, f)
		if err != nil {
			return nil, err
		}
		fp.Last = i == len(r.Fields)-1
		fp.BitOffset = offset
		rec.Fields = append(rec.Fields, fp)

		if f.Bits > 0 {
			if run == nil {
				run = &BitRun{Index: len(rec.Runs)}
				rec.Runs = append(rec.Runs, run)
				rec.Steps = append(rec.Steps, Step{Run: run})
			}
			bitsPolicy(fp, run.Bits)
			fp.Run = run.Index
			run.Fields = append(run.Fields, fp)
			run.Bits += fp.Bits
			run.Bytes = (run.Bits + 7) / 8
			if offset != Dynamic {
				offset += fp.Bits
			}
			if fp.Last || r.Fields[i+1].Bits == 0 {
				rec.StaticSize += run.Bytes
				rec.MinSize += run.Bytes
				run = nil
			}
			rec.Raw = false
		} else {
			rec.Steps = append(rec.Steps, Step{Field: fp})
			rec.MinSize += fp.MinSize
			if fp.Static() {
				rec.StaticSize += fp.Size
				if offset != Dynamic {
					offset += fp.Size * 8
				}
			} else {
				rec.Static = false
				offset = Dynamic
			}
			if fp.Policy != BytePrimitive && fp.Policy != ByteArray {
				rec.Raw = false
			}
		}

		Logger().Debug("planned field",
			zap.String("record", r.Name),
			zap.String("field", f.Name),
			zap.Stringer("policy", fp.Policy),
			zap.Int("size", fp.Size))
	}

	if !rec.Static {
		rec.StaticSize = Dynamic
		rec.Raw = false
	} else if rec.StaticSize > RawLimit {
		rec.Raw = false
	}

	Logger().Debug("planned record",
		zap.String("record", r.Name),
		zap.Int("static_size", rec.StaticSize),
		zap.Int("min_size", rec.MinSize),
		zap.String("method", string(rec.Method())))
	return rec, nil
}

// bitsPolicy places a bits(n) field at runOffset bits into its run.
func bitsPolicy(fp *Field, runOffset int) {
	o := runOffset % 8
	n := fp.Bits
	fp.Offset = runOffset
	fp.Size = 0
	fp.MinSize = 0
	switch {
	case n <= 8 && o+n <= 8:
		fp.Policy = BitsSingle
	case n <= 8:
		fp.Policy = BitsCrossing
	default:
		fp.Policy = BitsMultibyte
		fp.Aligned = o == 0 && n%8 == 0 && n == fp.Kind.Bits()
	}
}

func (p *Planner) field(r *ir.Record, f *ir.Field) (*Field, error) {
	t := f.Type
	fp := &Field{
		IR:     f,
		Type:   t,
		Kind:   t.Kind,
		Name:   f.Name,
		GoName: ir.GoName(f.Name),
		Bits:   f.Bits,
		Run:    -1,
	}

	if f.Bits > 0 {
		if t.Kind == ir.KindRecord {
			fp.Enum = p.file.Enum(t.Name)
			if fp.Enum == nil {
				return nil, p.fail(r, f, "bits(%d) on non-enum %s", f.Bits, t.Name)
			}
			fp.Kind = ir.KindU8
		}
		return fp, nil
	}

	switch t.Kind {
	case ir.KindArray:
		fp.Policy = ByteArray
		fp.Count = t.N
		fp.setSize(t.N, t.N)

	case ir.KindOption:
		if err := p.elem(r, f, fp, t.Elem); err != nil {
			return nil, err
		}
		fp.Policy = OptPrimitive
		if t.Elem.Kind == ir.KindArray {
			fp.Policy = OptArray
		}
		fp.setSize(1+fp.ElemSize, 1+fp.ElemSize)

	case ir.KindVarString:
		fp.Policy = StringVar
		fp.setSize(Dynamic, t.N/8)

	case ir.KindCString:
		fp.Policy = StringCStr
		fp.setSize(Dynamic, 1)

	case ir.KindFixedString:
		fp.Policy = StringFixed
		fp.Count = t.N
		fp.setSize(t.N, t.N)

	case ir.KindString:
		fp.Str = true
		fp.Elem = ir.Prim(ir.KindU8)
		fp.Kind = ir.KindU8
		fp.ElemSize = 1
		p.vector(f, fp)

	case ir.KindVec:
		if err := p.elem(r, f, fp, t.Elem); err != nil {
			return nil, err
		}
		p.vector(f, fp)

	case ir.KindRecord:
		if en := p.file.Enum(t.Name); en != nil {
			fp.Enum = en
			fp.Kind = ir.KindU8
			fp.Policy = BytePrimitive
			fp.setSize(1, 1)
			break
		}
		sub, err := p.Record(t.Name)
		if err != nil {
			return nil, err
		}
		fp.Record = sub
		fp.Policy = SubRecord
		fp.setSize(sub.StaticSize, sub.MinSize)

	default:
		if !t.Kind.IsPrimitive() {
			return nil, p.fail(r, f, "no layout for %s", t)
		}
		fp.Policy = BytePrimitive
		fp.setSize(t.Kind.Size(), t.Kind.Size())
	}
	return fp, nil
}

// elem records the element type of a vector or option.
func (p *Planner) elem(r *ir.Record, f *ir.Field, fp *Field, e *ir.Type) error {
	fp.Elem = e
	fp.Kind = e.Kind
	switch e.Kind {
	case ir.KindArray:
		fp.ElemSize = e.N
	case ir.KindVec:
		fp.ElemSize = Dynamic
	case ir.KindRecord:
		if en := p.file.Enum(e.Name); en != nil {
			fp.Enum = en
			fp.Kind = ir.KindU8
			fp.ElemSize = 1
			return nil
		}
		sub, err := p.Record(e.Name)
		if err != nil {
			return err
		}
		fp.Record = sub
		fp.ElemSize = sub.StaticSize
	default:
		if !e.Kind.IsPrimitive() {
			return p.fail(r, f, "no layout for element %s", e)
		}
		fp.ElemSize = e.Kind.Size()
	}
	return nil
}

// vector picks the policy of a Vec or String field from its attributes.
func (p *Planner) vector(f *ir.Field, fp *Field) {
	count, literal := 0, false
	switch {
	case f.HasSize():
		if n, ok := ir.Fold(f.Size); ok {
			count, literal = int(n), true
		} else {
			fp.Length = f.Size
		}
	case f.HasFromField():
		fp.Length = ir.Ref{Path: f.FromField}
	}

	switch {
	case f.UntilMarker != nil:
		fp.Policy = VecUntilMarker
		fp.Marker = *f.UntilMarker
		fp.Count = count
		if literal {
			fp.Length = ir.Lit{Value: int64(count)}
		}
		fp.setSize(Dynamic, 0)
	case f.AfterMarker != nil:
		fp.Policy = VecAfterMarker
		fp.Marker = *f.AfterMarker
		fp.setSize(Dynamic, 0)
	case literal:
		fp.Policy = VecFixed
		fp.Count = count
		if fp.ElemSize == Dynamic {
			fp.setSize(Dynamic, 0)
		} else {
			fp.setSize(count*fp.ElemSize, count*fp.ElemSize)
		}
		if fp.Record != nil && fp.ElemSize == Dynamic {
			fp.MinSize = count * fp.Record.MinSize
		}
	case fp.Length != nil:
		fp.Policy = VecFromField
		fp.setSize(Dynamic, 0)
	default:
		fp.Policy = VecTail
		fp.setSize(Dynamic, 0)
	}
}

func (fp *Field) setSize(size, minSize int) {
	fp.Size = size
	fp.MinSize = minSize
}

func (p *Planner) fail(r *ir.Record, f *ir.Field, format string, args ...any) error {
	return errors.New(errors.PhasePlan, errors.KindInternal).
		Path(r.Name, f.Name).Line(f.Line).Detail(format, args...).Build()
}
