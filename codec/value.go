package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/ir"
)

// Enum is a decoded enum or flags value.
type Enum struct {
	Type  *ir.Enum
	Value uint8
}

// String names the variant, or the set flags joined by "|".
func (e Enum) String() string {
	if e.Type == nil {
		return strconv.Itoa(int(e.Value))
	}
	if !e.Type.Flags {
		if v, ok := e.Type.Variant(uint64(e.Value)); ok {
			return v.Name
		}
		return e.Type.Name + "(" + strconv.Itoa(int(e.Value)) + ")"
	}
	if e.Value == 0 {
		if v, ok := e.Type.Variant(0); ok {
			return v.Name
		}
		return "0"
	}
	var names []string
	for _, v := range e.Type.Variants {
		if uint64(e.Value)&v.Value != 0 {
			names = append(names, v.Name)
		}
	}
	if rest := uint64(e.Value) &^ e.Type.Mask(); rest != 0 {
		names = append(names, strconv.FormatUint(rest, 10))
	}
	return strings.Join(names, "|")
}

// enumFromWire validates a discriminant read from the wire.
func enumFromWire(en *ir.Enum, x uint64) (Enum, error) {
	if x <= 0xff {
		if en.Flags {
			if x&^en.Mask() == 0 {
				return Enum{Type: en, Value: uint8(x)}, nil
			}
		} else if _, ok := en.Variant(x); ok {
			return Enum{Type: en, Value: uint8(x)}, nil
		}
	}
	return Enum{}, bebytes.InvalidDiscriminant(x, en.Name)
}

// enumByte accepts an Enum, a variant name (flags as "A|B"), or an integer.
func enumByte(en *ir.Enum, value any) (uint8, bool) {
	switch v := value.(type) {
	case Enum:
		return v.Value, true
	case string:
		var out uint64
		for _, name := range strings.Split(v, "|") {
			found := false
			for _, vr := range en.Variants {
				if vr.Name == strings.TrimSpace(name) {
					out |= vr.Value
					found = true
					break
				}
			}
			if !found || (!en.Flags && strings.Contains(v, "|")) {
				return 0, false
			}
		}
		return uint8(out), out <= 0xff
	}
	u, ok := toUint64(value)
	if !ok || u > 0xff {
		return 0, false
	}
	return uint8(u), true
}

// toUint64 handles every Go integer type and integral float64 values, as
// produced by JSON and YAML decoders.
func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int8, int16, int32, int64, int:
		i, _ := toInt64(v)
		if i >= 0 {
			return uint64(i), true
		}
	case float64:
		if v >= 0 && v < math.MaxUint64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case Enum:
		return uint64(v.Value), true
	}
	return 0, false
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case Enum:
		return int64(v.Value), true
	}
	return 0, false
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := toInt64(value); ok {
		return float64(i), true
	}
	return 0, false
}

// elems iterates any slice or array value.
func elems(value any) (reflect.Value, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	return rv, true
}

// byteSlice accepts []byte, [N]byte and string values.
func byteSlice(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case nil:
		return nil, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, true
	}
	return nil, false
}

// typeName names the Go type of a value for type mismatch errors.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
