package codegen

import (
	"strconv"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
)

var primTypes = map[ir.Kind]string{
	ir.KindU8:   "uint8",
	ir.KindU16:  "uint16",
	ir.KindU32:  "uint32",
	ir.KindU64:  "uint64",
	ir.KindU128: "bebytes.Uint128",
	ir.KindI8:   "int8",
	ir.KindI16:  "int16",
	ir.KindI32:  "int32",
	ir.KindI64:  "int64",
	ir.KindI128: "bebytes.Int128",
	ir.KindF32:  "float32",
	ir.KindF64:  "float64",
	ir.KindBool: "bool",
	ir.KindChar: "rune",
}

// goType is the Go type of a struct field.
func (g *generator) goType(f *plan.Field) string {
	t := f.Type
	if f.Bits > 0 {
		return g.elemType(t, false)
	}
	switch t.Kind {
	case ir.KindOption:
		return "*" + g.elemType(t.Elem, true)
	case ir.KindVarString:
		return "bebytes.VarString" + strconv.Itoa(t.N)
	case ir.KindCString:
		return "bebytes.CString"
	case ir.KindFixedString:
		return "bebytes.FixedString"
	case ir.KindString:
		return "string"
	case ir.KindVec:
		if f.Policy == plan.VecFixed {
			return "[" + strconv.Itoa(f.Count) + "]" + g.elemType(t.Elem, true)
		}
		return "[]" + g.elemType(t.Elem, true)
	}
	return g.elemType(t, false)
}

// elemType is the Go type of a scalar, array, record or enum. Inside
// containers u8 is spelled byte.
func (g *generator) elemType(t *ir.Type, inner bool) string {
	switch t.Kind {
	case ir.KindU8:
		if inner {
			return "byte"
		}
		return "uint8"
	case ir.KindArray:
		return "[" + strconv.Itoa(t.N) + "]byte"
	case ir.KindVec:
		return "[]" + g.elemType(t.Elem, true)
	case ir.KindRecord:
		return ir.GoName(t.Name)
	}
	return primTypes[t.Kind]
}

func suffix(order bebytes.Endian) string {
	if order == bebytes.LittleEndian {
		return "LE"
	}
	return ""
}

func (g *generator) binaryOrder(order bebytes.Endian) string {
	g.use("encoding/binary")
	if order == bebytes.LittleEndian {
		return "binary.LittleEndian"
	}
	return "binary.BigEndian"
}

// put returns the statement writing val, a value of primitive kind k, to buf.
func (g *generator) put(k ir.Kind, en *ir.Enum, order bebytes.Endian, val string) string {
	s := suffix(order)
	switch k {
	case ir.KindU8:
		if en != nil {
			return "buf.PutU8(uint8(" + val + "))"
		}
		return "buf.PutU8(" + val + ")"
	case ir.KindI8:
		return "buf.PutU8(uint8(" + val + "))"
	case ir.KindBool:
		return "buf.PutU8(bebytes.BoolByte(" + val + "))"
	case ir.KindU16, ir.KindU32, ir.KindU64:
		return "buf.Put" + putName(k) + s + "(" + val + ")"
	case ir.KindI16, ir.KindI32, ir.KindI64:
		return "buf.Put" + putName(k) + s + "(" + unsignedType(k) + "(" + val + "))"
	case ir.KindF32:
		g.use("math")
		return "buf.PutU32" + s + "(math.Float32bits(" + val + "))"
	case ir.KindF64:
		g.use("math")
		return "buf.PutU64" + s + "(math.Float64bits(" + val + "))"
	case ir.KindChar:
		return "buf.PutU32" + s + "(uint32(" + val + "))"
	case ir.KindU128:
		return "buf.PutU128" + s + "(" + val + ")"
	case ir.KindI128:
		return "buf.PutU128" + s + "(" + val + ".Bits())"
	}
	return "panic(\"unsupported kind " + k.String() + "\")"
}

// get returns an expression reading a primitive of kind k at b[at:]. When
// fallible is true the expression yields (value, error).
func (g *generator) get(k ir.Kind, en *ir.Enum, order bebytes.Endian, at string) (expr string, fallible bool) {
	idx := "b[" + at + "]"
	from := "b[" + at + ":]"
	switch k {
	case ir.KindU8:
		if en != nil {
			return "decode" + ir.GoName(en.Name) + "(uint64(" + idx + "))", true
		}
		return idx, false
	case ir.KindI8:
		return "int8(" + idx + ")", false
	case ir.KindBool:
		return "bebytes.DecodeBool(" + idx + ")", true
	case ir.KindU16, ir.KindU32, ir.KindU64:
		return g.binaryOrder(order) + "." + uintName(k) + "(" + from + ")", false
	case ir.KindI16, ir.KindI32, ir.KindI64:
		return primTypes[k] + "(" + g.binaryOrder(order) + "." + uintName(k) + "(" + from + "))", false
	case ir.KindF32:
		g.use("math")
		return "math.Float32frombits(" + g.binaryOrder(order) + ".Uint32(" + from + "))", false
	case ir.KindF64:
		g.use("math")
		return "math.Float64frombits(" + g.binaryOrder(order) + ".Uint64(" + from + "))", false
	case ir.KindChar:
		return "bebytes.DecodeRune(" + g.binaryOrder(order) + ".Uint32(" + from + "))", true
	case ir.KindU128:
		return "bebytes.U128From" + shortEndian(order) + "(" + from + ")", false
	case ir.KindI128:
		return "bebytes.I128FromBits(bebytes.U128From" + shortEndian(order) + "(" + from + "))", false
	}
	return "panic(\"unsupported kind " + k.String() + "\")", false
}

// rawPut returns the statement storing val into out[off:].
func (g *generator) rawPut(k ir.Kind, en *ir.Enum, order bebytes.Endian, off int, val string) string {
	at := "out[" + strconv.Itoa(off) + "]"
	from := "out[" + strconv.Itoa(off) + ":]"
	switch k {
	case ir.KindU8:
		if en != nil {
			return at + " = uint8(" + val + ")"
		}
		return at + " = " + val
	case ir.KindI8:
		return at + " = uint8(" + val + ")"
	case ir.KindBool:
		return at + " = bebytes.BoolByte(" + val + ")"
	case ir.KindU16, ir.KindU32, ir.KindU64:
		return g.binaryOrder(order) + ".Put" + uintName(k) + "(" + from + ", " + val + ")"
	case ir.KindI16, ir.KindI32, ir.KindI64:
		return g.binaryOrder(order) + ".Put" + uintName(k) + "(" + from + ", " + unsignedType(k) + "(" + val + "))"
	case ir.KindF32:
		g.use("math")
		return g.binaryOrder(order) + ".PutUint32(" + from + ", math.Float32bits(" + val + "))"
	case ir.KindF64:
		g.use("math")
		return g.binaryOrder(order) + ".PutUint64(" + from + ", math.Float64bits(" + val + "))"
	case ir.KindChar:
		return g.binaryOrder(order) + ".PutUint32(" + from + ", uint32(" + val + "))"
	case ir.KindU128:
		return "copy(" + from + ", " + val + ".Append" + shortEndian(order) + "(nil))"
	case ir.KindI128:
		return "copy(" + from + ", " + val + ".Bits().Append" + shortEndian(order) + "(nil))"
	}
	return "panic(\"unsupported kind " + k.String() + "\")"
}

// putName is the BufMut method stem for a 16, 32 or 64-bit kind.
func putName(k ir.Kind) string {
	return "U" + strconv.Itoa(k.Bits())
}

// uintName is the encoding/binary method stem for a 16, 32 or 64-bit kind.
func uintName(k ir.Kind) string {
	return "Uint" + strconv.Itoa(k.Bits())
}

func unsignedType(k ir.Kind) string {
	return "uint" + strconv.Itoa(k.Bits())
}
