package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/bebytes/compiler"
	"github.com/wippyai/bebytes/errors"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.bb>",
		Short: "Parse and validate a record description",
		Long: `Run the parser and the static validator and print every diagnostic.
The exit status is non-zero when the description is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			f, err := compiler.Check(string(data))
			if err != nil {
				n := printDiagnostics(cmd.ErrOrStderr(), args[0], err)
				return fmt.Errorf("%s: %d problem(s)", args[0], n)
			}
			cmd.Printf("%s: ok, %d record(s), %d enum(s)\n", args[0], len(f.Records), len(f.Enums))
			return nil
		},
	}
}

// printDiagnostics writes one line per diagnostic carried by err and
// returns how many it wrote.
func printDiagnostics(w io.Writer, file string, err error) int {
	var diags []error
	switch e := err.(type) {
	case errors.List:
		for _, d := range e {
			diags = append(diags, d)
		}
	default:
		diags = append(diags, err)
	}
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %v\n", file, d)
	}
	return len(diags)
}
