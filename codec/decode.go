package codec

import (
	"bytes"
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

// Decode reads a record from the front of b in the given order and returns
// the value keyed by field name with the number of bytes consumed.
//
// Values use the Go types of generated code: sized integers, float32/64,
// bool, rune, bebytes.Uint128/Int128, string for every string kind, []byte
// for byte vectors and arrays, [][]byte for nested byte vectors, []any for
// other vectors, map[string]any for sub-records, Enum for enums and flags,
// and nil for an absent option.
func Decode(r *plan.Record, b []byte, order bebytes.Endian) (map[string]any, int, error) {
	if r.MinSize > 0 && len(b) == 0 {
		return nil, 0, bebytes.EmptyBuffer()
	}
	d := &decoder{order: order}
	v, n, err := d.record(r, b)
	if err != nil {
		Logger().Debug("decode failed", zap.String("record", r.Name), zap.Error(err))
		return nil, 0, err
	}
	return v, n, nil
}

// Unmarshal decodes b in the record's declared order.
func Unmarshal(r *plan.Record, b []byte) (map[string]any, int, error) {
	return Decode(r, b, r.Endian)
}

type decoder struct {
	order bebytes.Endian
}

func (d *decoder) byteOrder() binary.ByteOrder {
	if d.order == bebytes.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func need(b []byte, i, n int) error {
	if len(b)-i < n {
		return bebytes.InsufficientData(n, len(b)-i)
	}
	return nil
}

func (d *decoder) record(r *plan.Record, b []byte) (map[string]any, int, error) {
	v := make(map[string]any, len(r.Fields))
	i := 0
	for _, s := range r.Steps {
		if s.Run != nil {
			if err := d.run(s.Run, b, i, v); err != nil {
				return nil, 0, err
			}
			i += s.Run.Bytes
			continue
		}
		x, n, err := d.field(s.Field, b, i, v)
		if err != nil {
			return nil, 0, err
		}
		v[s.Field.Name] = x
		i += n
	}
	return v, i, nil
}

func (d *decoder) run(run *plan.BitRun, b []byte, i int, v map[string]any) error {
	if err := need(b, i, run.Bytes); err != nil {
		return err
	}
	for _, f := range run.Fields {
		raw := bebytes.GetBits(b[i:], f.Offset, f.Bits, d.order)
		switch {
		case f.Enum != nil:
			e, err := enumFromWire(f.Enum, raw)
			if err != nil {
				return err
			}
			v[f.Name] = e
		case f.Kind == ir.KindChar:
			r, err := bebytes.DecodeRune(uint32(raw))
			if err != nil {
				return err
			}
			v[f.Name] = r
		default:
			v[f.Name] = fromBits(f.Kind, raw)
		}
	}
	return nil
}

// fromBits converts a raw pattern to the Go type of an integer kind,
// truncating as a Go conversion does.
func fromBits(k ir.Kind, raw uint64) any {
	switch k {
	case ir.KindU8:
		return uint8(raw)
	case ir.KindU16:
		return uint16(raw)
	case ir.KindU32:
		return uint32(raw)
	case ir.KindI8:
		return int8(raw)
	case ir.KindI16:
		return int16(raw)
	case ir.KindI32:
		return int32(raw)
	case ir.KindI64:
		return int64(raw)
	}
	return raw
}

// field decodes one byte-aligned field at b[i:] and returns its value and
// size. v holds the fields decoded so far, for size expressions.
func (d *decoder) field(f *plan.Field, b []byte, i int, v map[string]any) (any, int, error) {
	switch f.Policy {
	case plan.BytePrimitive:
		if err := need(b, i, f.Size); err != nil {
			return nil, 0, err
		}
		x, err := d.prim(f.Kind, f.Enum, b[i:])
		return x, f.Size, err

	case plan.ByteArray:
		if err := need(b, i, f.Count); err != nil {
			return nil, 0, err
		}
		return clone(b[i : i+f.Count]), f.Count, nil

	case plan.OptPrimitive, plan.OptArray:
		if err := need(b, i, f.Size); err != nil {
			return nil, 0, err
		}
		switch b[i] {
		case 0:
			return nil, f.Size, nil
		case 1:
			if f.Policy == plan.OptArray {
				return clone(b[i+1 : i+f.Size]), f.Size, nil
			}
			x, err := d.prim(f.Kind, f.Enum, b[i+1:])
			return x, f.Size, err
		}
		return nil, 0, bebytes.InvalidDiscriminant(uint64(b[i]), bebytes.TypeOption)

	case plan.StringVar:
		return bebytes.DecodeVarString(b[i:], f.Type.N/8, d.order)

	case plan.StringCStr:
		s, n, err := bebytes.DecodeCString(b[i:])
		return string(s), n, err

	case plan.StringFixed:
		s, n, err := bebytes.DecodeFixedString(b[i:], f.Count)
		return string(s), n, err

	case plan.SubRecord:
		return d.record(f.Record, b[i:])

	case plan.VecFixed:
		return d.counted(f, b, i, f.Count, true)

	case plan.VecFromField:
		n, err := length(f, v)
		if err != nil {
			return nil, 0, err
		}
		return d.counted(f, b, i, n, false)

	case plan.VecUntilMarker:
		return d.until(f, b, i, v)

	case plan.VecAfterMarker:
		rest := b[i:]
		if k := bytes.IndexByte(rest, f.Marker); k >= 0 {
			rest = rest[k+1:]
		} else {
			rest = nil
		}
		return clone(rest), len(b) - i, nil

	case plan.VecTail:
		return d.tail(f, b, i)
	}
	return nil, 0, errors.New(errors.PhaseCodec, errors.KindInternal).
		Path(f.Name).Detail("no decoder for policy %s", f.Policy).Build()
}

// length evaluates the deferred size expression of a governed field
// against the fields decoded so far.
func length(f *plan.Field, v map[string]any) (int, error) {
	n, ok := ir.Eval(f.Length, func(p ir.Path) int64 {
		var cur any = v
		for _, seg := range p {
			m, isMap := cur.(map[string]any)
			if !isMap {
				return 0
			}
			cur = m[seg]
		}
		if i, ok := toInt64(cur); ok {
			return i
		}
		u, _ := toUint64(cur)
		return int64(u)
	})
	if !ok || n < 0 {
		return 0, bebytes.InvalidDiscriminant(uint64(n), bebytes.TypeSizeExpressionRange)
	}
	return int(n), nil
}

// counted reads n elements, or n bytes of a string. fixed marks literal
// sizes, whose record elements are not pre-checked against the input.
func (d *decoder) counted(f *plan.Field, b []byte, i, n int, fixed bool) (any, int, error) {
	start := i
	switch {
	case f.Str:
		s, err := bebytes.DecodeString(b[i:], n)
		return s, n, err

	case f.Kind == ir.KindU8 && f.Enum == nil:
		if err := need(b, i, n); err != nil {
			return nil, 0, err
		}
		return clone(b[i : i+n]), n, nil

	case f.ElemSize != plan.Dynamic && !(fixed && f.Record != nil):
		if fixed {
			if err := need(b, i, n*f.ElemSize); err != nil {
				return nil, 0, err
			}
		} else if n > (len(b)-i)/f.ElemSize {
			return nil, 0, bebytes.InsufficientData(n*f.ElemSize, len(b)-i)
		}
	}

	out := make([]any, 0, min(n, len(b)-i+1))
	for range n {
		x, m, err := d.elem(f, b, i)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, x)
		i += m
	}
	return out, i - start, nil
}

// elem decodes one vector element at b[i:].
func (d *decoder) elem(f *plan.Field, b []byte, i int) (any, int, error) {
	switch {
	case f.Record != nil:
		return d.record(f.Record, b[i:])
	case f.Kind == ir.KindArray:
		if err := need(b, i, f.ElemSize); err != nil {
			return nil, 0, err
		}
		return clone(b[i : i+f.ElemSize]), f.ElemSize, nil
	}
	if err := need(b, i, f.ElemSize); err != nil {
		return nil, 0, err
	}
	x, err := d.prim(f.Kind, f.Enum, b[i:])
	return x, f.ElemSize, err
}

// until reads marker-terminated byte vectors. Only a final field may run
// to the end of the input without its marker.
func (d *decoder) until(f *plan.Field, b []byte, i int, v map[string]any) (any, int, error) {
	start := i
	one := func() ([]byte, error) {
		k := bytes.IndexByte(b[i:], f.Marker)
		if k < 0 {
			if !f.Last {
				return nil, bebytes.MarkerNotFound(f.Marker, f.Name)
			}
			k = len(b) - i
		}
		x := clone(b[i : i+k])
		i += k
		if i < len(b) {
			i++
		}
		return x, nil
	}

	if !f.Type.IsNestedByteVec() {
		x, err := one()
		if err != nil {
			return nil, 0, err
		}
		return x, i - start, nil
	}

	n, err := length(f, v)
	if err != nil {
		return nil, 0, err
	}
	out := make([][]byte, 0, min(n, len(b)-i+1))
	for range n {
		x, err := one()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, x)
	}
	return out, i - start, nil
}

// tail reads a final vector or string from the rest of the input.
func (d *decoder) tail(f *plan.Field, b []byte, i int) (any, int, error) {
	rest := len(b) - i
	switch {
	case f.Str:
		s, err := bebytes.DecodeString(b[i:], rest)
		return s, rest, err

	case f.Kind == ir.KindU8 && f.Enum == nil:
		return clone(b[i:]), rest, nil

	case f.ElemSize != plan.Dynamic:
		return d.counted(f, b, i, rest/f.ElemSize, true)
	}

	var out []any
	start := i
	for i < len(b) {
		x, m, err := d.record(f.Record, b[i:])
		if err != nil {
			return nil, 0, err
		}
		if m == 0 {
			break
		}
		out = append(out, x)
		i += m
	}
	return out, i - start, nil
}

// prim reads a whole-byte primitive from the front of b, which holds at
// least its size.
func (d *decoder) prim(k ir.Kind, en *ir.Enum, b []byte) (any, error) {
	if en != nil {
		return enumFromWire(en, uint64(b[0]))
	}
	o := d.byteOrder()
	switch k {
	case ir.KindU8:
		return b[0], nil
	case ir.KindI8:
		return int8(b[0]), nil
	case ir.KindBool:
		return bebytes.DecodeBool(b[0])
	case ir.KindU16:
		return o.Uint16(b), nil
	case ir.KindU32:
		return o.Uint32(b), nil
	case ir.KindU64:
		return o.Uint64(b), nil
	case ir.KindI16:
		return int16(o.Uint16(b)), nil
	case ir.KindI32:
		return int32(o.Uint32(b)), nil
	case ir.KindI64:
		return int64(o.Uint64(b)), nil
	case ir.KindF32:
		return math.Float32frombits(o.Uint32(b)), nil
	case ir.KindF64:
		return math.Float64frombits(o.Uint64(b)), nil
	case ir.KindChar:
		return bebytes.DecodeRune(o.Uint32(b))
	case ir.KindU128, ir.KindI128:
		u := bebytes.U128FromBE(b)
		if d.order == bebytes.LittleEndian {
			u = bebytes.U128FromLE(b)
		}
		if k == ir.KindI128 {
			return bebytes.I128FromBits(u), nil
		}
		return u, nil
	}
	return nil, errors.New(errors.PhaseCodec, errors.KindInternal).
		Detail("no decoder for kind %s", k).Build()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
