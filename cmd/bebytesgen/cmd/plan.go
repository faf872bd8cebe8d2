package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wippyai/bebytes/compiler"
	"github.com/wippyai/bebytes/plan"
)

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	bitCellStyle    = cellStyle.Foreground(lipgloss.Color("#87CEEB"))
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
)

func newPlanCmd(o *options) *cobra.Command {
	var (
		record string
		plain  bool
	)
	cmd := &cobra.Command{
		Use:   "plan <file.bb>",
		Short: "Print the layout plan of every record",
		Long: `Print the layout policy, bit offset and static size chosen for each
field of each record.

Examples:
  bebytesgen plan packet.bb
  bebytesgen plan -r Header --plain packet.bb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			records, err := pickRecords(p, record)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), records, plain)
			return nil
		},
	}
	cmd.Flags().StringVarP(&record, "record", "r", "", "Only show the named record")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain text table without borders")
	return cmd
}

// loadPlan parses, validates and plans the description at path.
func loadPlan(path string) (*plan.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := compiler.Check(string(data))
	if err != nil {
		return nil, err
	}
	return plan.Build(f)
}

func pickRecords(p *plan.Plan, name string) ([]*plan.Record, error) {
	if name == "" {
		return p.Records, nil
	}
	r := p.Record(name)
	if r == nil {
		return nil, fmt.Errorf("no record named %q", name)
	}
	return []*plan.Record{r}, nil
}

func printPlan(w io.Writer, records []*plan.Record, plain bool) {
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if plain {
			fmt.Fprint(w, r.Describe())
			continue
		}
		fmt.Fprintln(w, planTable(r))
		fmt.Fprintln(w, summaryStyle.Render(r.Summary()))
	}
}

// planTable renders the plan rows of r with bit-field rows highlighted.
func planTable(r *plan.Record) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(plan.Header...).
		Rows(r.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row >= 0 && row < len(r.Fields) && r.Fields[row].Policy.IsBits():
				return bitCellStyle
			}
			return cellStyle
		}).
		String()
}
