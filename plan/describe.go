package plan

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Header names the columns of Rows.
var Header = []string{"FIELD", "TYPE", "POLICY", "BIT OFFSET", "BITS", "SIZE"}

// Rows returns one row per field: name, declared type, policy, bit offset
// from the record start, bit width and static size in bytes.
func (r *Record) Rows() [][]string {
	rows := make([][]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		typ := f.Type.String()
		if attrs := f.Attrs(); attrs != "" {
			typ += " " + attrs
		}
		bits := "-"
		size := sizeString(f.Size)
		if f.Policy.IsBits() {
			bits = strconv.Itoa(f.Bits)
			size = "-"
		}
		rows = append(rows, []string{
			f.Name,
			typ,
			f.Policy.String(),
			sizeString(f.BitOffset),
			bits,
			size,
		})
	}
	return rows
}

// Summary is the one-line footer of a plan table.
func (r *Record) Summary() string {
	return fmt.Sprintf("%s (%s): static size %s, min size %d, %s",
		r.Name, r.Endian, sizeString(r.StaticSize), r.MinSize, r.Method())
}

// Describe renders the plan as a plain-text table.
func (r *Record) Describe() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(Header, "\t"))
	for _, row := range r.Rows() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	b.WriteString(r.Summary())
	b.WriteByte('\n')
	return b.String()
}

// Attrs renders the layout attributes of the field in description syntax.
func (f *Field) Attrs() string {
	var parts []string
	if f.Bits > 0 {
		parts = append(parts, fmt.Sprintf("bits(%d)", f.Bits))
	}
	d := f.IR
	switch {
	case d.HasSize():
		parts = append(parts, "size("+d.Size.String()+")")
	case d.HasFromField():
		parts = append(parts, "from_field("+d.FromField.String()+")")
	}
	if d.UntilMarker != nil {
		parts = append(parts, fmt.Sprintf("until_marker(0x%02X)", *d.UntilMarker))
	}
	if d.AfterMarker != nil {
		parts = append(parts, fmt.Sprintf("after_marker(0x%02X)", *d.AfterMarker))
	}
	return strings.Join(parts, " ")
}

func sizeString(n int) string {
	if n == Dynamic {
		return "dynamic"
	}
	return strconv.Itoa(n)
}
