package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bebytes/compiler"
	"github.com/wippyai/bebytes/config"
	"github.com/wippyai/bebytes/schema"
)

func newWITCmd(o *options) *cobra.Command {
	var (
		names  []string
		endian string
		pkg    string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "wit <file.json>",
		Short: "Generate Go codecs for WIT records, enums and flags",
		Long: `Import type definitions from a WIT JSON document, as printed by
"wasm-tools component wit --json", and generate Go codecs for them.

Examples:
  bebytesgen wit api.json -r point -r color
  bebytesgen wit --endian le -o api_gen.go api.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("endian") {
				o.cfg.Endian = endian
			}
			if cmd.Flags().Changed("package") {
				o.cfg.Package = pkg
			}
			if cmd.Flags().Changed("output") {
				o.cfg.Output = out
			}
			if err := o.cfg.Validate(); err != nil {
				return err
			}
			order, err := config.ParseEndian(o.cfg.Endian)
			if err != nil {
				return err
			}

			fh, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer fh.Close()

			f, err := schema.DecodeWIT(fh, order, names...)
			if err != nil {
				return err
			}
			res, err := compiler.CompileIR(f, o.cfg.Options(filepath.Base(args[0])))
			if err != nil {
				return err
			}
			o.log.Info("imported WIT",
				zap.String("input", args[0]),
				zap.Stringer("endian", order),
				zap.Int("records", len(f.Records)),
				zap.Int("enums", len(f.Enums)))
			return writeOutput(cmd.OutOrStdout(), o.cfg.Output, res.Source)
		},
	}
	cmd.Flags().StringSliceVarP(&names, "record", "r", nil, "Type definitions to import (default all)")
	cmd.Flags().StringVar(&endian, "endian", "", "Byte order of imported records (be or le)")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Package name of the generated file")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file, - for stdout")
	return cmd
}
