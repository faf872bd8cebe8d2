package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/plan"
)

// Format renders a decoded record one field per line in wire order, with
// sub-records indented below their field.
func Format(r *plan.Record, v map[string]any) string {
	var b strings.Builder
	format(&b, r, v, "")
	return b.String()
}

func format(b *strings.Builder, r *plan.Record, v map[string]any, indent string) {
	for _, f := range r.Fields {
		x := v[f.Name]
		if f.Record != nil {
			switch x := x.(type) {
			case map[string]any:
				fmt.Fprintf(b, "%s%s:\n", indent, f.Name)
				format(b, f.Record, x, indent+"  ")
				continue
			case []any:
				fmt.Fprintf(b, "%s%s: [%d]\n", indent, f.Name, len(x))
				for k, e := range x {
					if m, ok := e.(map[string]any); ok {
						fmt.Fprintf(b, "%s  [%d]:\n", indent, k)
						format(b, f.Record, m, indent+"    ")
					}
				}
				continue
			}
		}
		fmt.Fprintf(b, "%s%s: %s\n", indent, f.Name, formatValue(x))
	}
}

func formatValue(x any) string {
	switch x := x.(type) {
	case nil:
		return "none"
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case [][]byte:
		parts := make([]string, len(x))
		for k, e := range x {
			parts[k] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(x))
		for k, e := range x {
			parts[k] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(x)
}

// ParseHex reads bytes written as hex digits. Whitespace, commas, colons
// and 0x prefixes are ignored, so "0x01 0x02", "01:02" and "0102" agree.
func ParseHex(s string) ([]byte, error) {
	var digits strings.Builder
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == ':'
	}) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		if len(field)%2 == 1 {
			field = "0" + field
		}
		digits.WriteString(field)
	}
	out, err := hex.DecodeString(digits.String())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCodec, errors.KindInvalidInput, err, "parse hex input")
	}
	return out, nil
}
