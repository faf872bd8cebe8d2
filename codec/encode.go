package codec

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

// Encode appends the encoding of v, a record value keyed by field name, to
// buf in the given order. Absent fields encode as their zero value.
// Values of until_marker fields must not contain their marker.
func Encode(r *plan.Record, v map[string]any, order bebytes.Endian, buf bebytes.BufMut) error {
	e := &encoder{order: order, buf: buf}
	err := e.record(r, v, nil)
	if err != nil {
		Logger().Debug("encode failed", zap.String("record", r.Name), zap.Error(err))
	}
	return err
}

// Marshal encodes v in the record's declared order.
func Marshal(r *plan.Record, v map[string]any) ([]byte, error) {
	var out bebytes.Vec
	if err := Encode(r, v, r.Endian, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type encoder struct {
	order bebytes.Endian
	buf   bebytes.BufMut
}

func (e *encoder) record(r *plan.Record, v map[string]any, path []string) error {
	for _, s := range r.Steps {
		if s.Run != nil {
			if err := e.run(s.Run, v, path); err != nil {
				return err
			}
			continue
		}
		f := s.Field
		if err := e.field(f, v[f.Name], append(path[:len(path):len(path)], f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// run range-checks every field of a bit run before packing any of them.
func (e *encoder) run(run *plan.BitRun, v map[string]any, path []string) error {
	raws := make([]uint64, len(run.Fields))
	for k, f := range run.Fields {
		raw, err := e.bitsValue(f, v[f.Name], append(path[:len(path):len(path)], f.Name))
		if err != nil {
			return err
		}
		if f.Enum == nil && f.Kind.IsSigned() {
			raw &= bebytes.Mask(f.Kind.Bits())
		}
		if limit := bebytes.Mask(f.Bits); raw > limit {
			return bebytes.InvalidBitField(f.Name, raw, limit)
		}
		raws[k] = raw
	}
	out := make([]byte, run.Bytes)
	for k, f := range run.Fields {
		bebytes.PutBits(out, f.Offset, f.Bits, raws[k], e.order)
	}
	e.buf.PutSlice(out)
	return nil
}

// bitsValue is the bit pattern of a bit-field value, as uint64(x) of the
// field's Go type.
func (e *encoder) bitsValue(f *plan.Field, value any, path []string) (uint64, error) {
	if value == nil {
		return 0, nil
	}
	if f.Enum != nil {
		b, ok := enumByte(f.Enum, value)
		if !ok {
			return 0, errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Enum.Name)
		}
		return uint64(b), nil
	}
	return e.integer(f.Kind, value, path)
}

// integer checks that value fits kind and returns its two's complement bits
// sign-extended to 64 bits.
func (e *encoder) integer(k ir.Kind, value any, path []string) (uint64, error) {
	width := k.Bits()
	if k.IsSigned() || k == ir.KindChar {
		if r, ok := value.(string); ok && k == ir.KindChar {
			runes := []rune(r)
			if len(runes) != 1 {
				return 0, errors.TypeMismatch(errors.PhaseCodec, path, "string", k.String())
			}
			return uint64(runes[0]), nil
		}
		i, ok := toInt64(value)
		lo, hi := -int64(1)<<(width-1), int64(1)<<(width-1)-1
		if !ok || (width < 64 && (i < lo || i > hi)) {
			return 0, errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), k.String())
		}
		return uint64(i), nil
	}
	u, ok := toUint64(value)
	if !ok || u > bebytes.Mask(width) {
		return 0, errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), k.String())
	}
	return u, nil
}

func (e *encoder) field(f *plan.Field, value any, path []string) error {
	switch f.Policy {
	case plan.BytePrimitive:
		return e.prim(f.Kind, f.Enum, value, path)

	case plan.ByteArray:
		return e.array(f.Count, value, path)

	case plan.OptPrimitive, plan.OptArray:
		if value == nil {
			e.buf.PutU8(0)
			e.buf.PutSlice(make([]byte, f.ElemSize))
			return nil
		}
		e.buf.PutU8(1)
		if f.Policy == plan.OptArray {
			return e.array(f.ElemSize, value, path)
		}
		return e.prim(f.Kind, f.Enum, value, path)

	case plan.StringVar, plan.StringCStr, plan.StringFixed:
		s, ok := value.(string)
		if !ok && value != nil {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
		}
		var err error
		switch {
		case f.Policy == plan.StringFixed:
			err = bebytes.EncodeFixedString(e.buf, s, f.Count)
		case f.Policy == plan.StringCStr:
			err = e.ordered(bebytes.CString(s))
		case f.Type.N == 8:
			err = e.ordered(bebytes.VarString8(s))
		case f.Type.N == 16:
			err = e.ordered(bebytes.VarString16(s))
		default:
			err = e.ordered(bebytes.VarString32(s))
		}
		if err != nil {
			return bebytes.FieldError(err, f.Name)
		}
		return nil

	case plan.SubRecord:
		sub, ok := value.(map[string]any)
		if !ok && value != nil {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Record.Name)
		}
		return e.record(f.Record, sub, path)

	case plan.VecFixed, plan.VecFromField, plan.VecTail:
		if f.Str {
			b, ok := byteSlice(value)
			if !ok {
				return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), "String")
			}
			if f.Policy == plan.VecFixed && len(b) != f.Count {
				return bebytes.InvalidBitField(f.Name, uint64(len(b)), uint64(f.Count))
			}
			e.buf.PutSlice(b)
			return nil
		}
		return e.elems(f, value, path)

	case plan.VecUntilMarker:
		if f.Type.IsNestedByteVec() {
			rv, ok := elems(value)
			if !ok && value != nil {
				return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
			}
			if n, literal := ir.Fold(f.Length); literal {
				got := 0
				if ok {
					got = rv.Len()
				}
				if int64(got) != n {
					return bebytes.InvalidBitField(f.Name, uint64(got), uint64(n))
				}
			}
			for k := 0; ok && k < rv.Len(); k++ {
				b, isBytes := byteSlice(rv.Index(k).Interface())
				if !isBytes {
					return errors.TypeMismatch(errors.PhaseCodec, path, rv.Index(k).Type().String(), "Vec<u8>")
				}
				e.buf.PutSlice(b)
				e.buf.PutU8(f.Marker)
			}
			return nil
		}
		b, ok := byteSlice(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
		}
		e.buf.PutSlice(b)
		e.buf.PutU8(f.Marker)
		return nil

	case plan.VecAfterMarker:
		b, ok := byteSlice(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
		}
		e.buf.PutU8(f.Marker)
		e.buf.PutSlice(b)
		return nil
	}
	return errors.New(errors.PhaseCodec, errors.KindInternal).
		Path(path...).Detail("no encoder for policy %s", f.Policy).Build()
}

func (e *encoder) ordered(v interface {
	EncodeBE(bebytes.BufMut) error
	EncodeLE(bebytes.BufMut) error
},
) error {
	if e.order == bebytes.LittleEndian {
		return v.EncodeLE(e.buf)
	}
	return v.EncodeBE(e.buf)
}

func (e *encoder) array(n int, value any, path []string) error {
	b, ok := byteSlice(value)
	if value == nil {
		b, ok = make([]byte, n), true
	}
	if !ok || len(b) != n {
		return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), "Array<"+strconv.Itoa(n)+">")
	}
	e.buf.PutSlice(b)
	return nil
}

// elems writes the elements of a non-string vector. A literal-size vector
// must hold exactly its declared count.
func (e *encoder) elems(f *plan.Field, value any, path []string) error {
	if f.Kind == ir.KindU8 && f.Enum == nil {
		b, ok := byteSlice(value)
		if !ok || (f.Policy == plan.VecFixed && len(b) != f.Count) {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
		}
		e.buf.PutSlice(b)
		return nil
	}
	if value == nil {
		if f.Policy == plan.VecFixed && f.Count > 0 {
			return errors.TypeMismatch(errors.PhaseCodec, path, "nil", f.Type.String())
		}
		return nil
	}
	rv, ok := elems(value)
	if !ok || (f.Policy == plan.VecFixed && rv.Len() != f.Count) {
		return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), f.Type.String())
	}
	for k := 0; k < rv.Len(); k++ {
		x := rv.Index(k).Interface()
		var err error
		switch {
		case f.Kind == ir.KindArray:
			err = e.array(f.Elem.N, x, path)
		case f.Record != nil:
			sub, isMap := x.(map[string]any)
			if !isMap {
				return errors.TypeMismatch(errors.PhaseCodec, path, typeName(x), f.Record.Name)
			}
			err = e.record(f.Record, sub, path)
		default:
			err = e.prim(f.Kind, f.Enum, x, path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// prim writes a whole-byte primitive.
func (e *encoder) prim(k ir.Kind, en *ir.Enum, value any, path []string) error {
	if en != nil {
		if value == nil {
			e.buf.PutU8(0)
			return nil
		}
		b, ok := enumByte(en, value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), en.Name)
		}
		e.buf.PutU8(b)
		return nil
	}

	switch k {
	case ir.KindBool:
		b, ok := value.(bool)
		if !ok && value != nil {
			return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), "bool")
		}
		e.buf.PutU8(bebytes.BoolByte(b))
		return nil

	case ir.KindF32, ir.KindF64:
		var x float64
		if value != nil {
			var ok bool
			if x, ok = toFloat64(value); !ok {
				return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), k.String())
			}
		}
		if k == ir.KindF32 {
			e.putUint(4, uint64(math.Float32bits(float32(x))))
		} else {
			e.putUint(8, math.Float64bits(x))
		}
		return nil

	case ir.KindU128, ir.KindI128:
		var u bebytes.Uint128
		switch v := value.(type) {
		case nil:
		case bebytes.Uint128:
			u = v
		case bebytes.Int128:
			u = v.Bits()
		default:
			if k == ir.KindI128 {
				i, ok := toInt64(value)
				if !ok {
					return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), k.String())
				}
				u = bebytes.I128(i).Bits()
			} else {
				x, ok := toUint64(value)
				if !ok {
					return errors.TypeMismatch(errors.PhaseCodec, path, typeName(value), k.String())
				}
				u = bebytes.U128(x)
			}
		}
		if e.order == bebytes.LittleEndian {
			e.buf.PutU128LE(u)
		} else {
			e.buf.PutU128(u)
		}
		return nil
	}

	var raw uint64
	if value != nil {
		var err error
		if raw, err = e.integer(k, value, path); err != nil {
			return err
		}
	}
	e.putUint(k.Size(), raw)
	return nil
}

// putUint writes the low n bytes of v in the encoder's order.
func (e *encoder) putUint(n int, v uint64) {
	le := e.order == bebytes.LittleEndian
	switch n {
	case 1:
		e.buf.PutU8(uint8(v))
	case 2:
		if le {
			e.buf.PutU16LE(uint16(v))
		} else {
			e.buf.PutU16(uint16(v))
		}
	case 4:
		if le {
			e.buf.PutU32LE(uint32(v))
		} else {
			e.buf.PutU32(uint32(v))
		}
	default:
		if le {
			e.buf.PutU64LE(v)
		} else {
			e.buf.PutU64(v)
		}
	}
}
