package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bebytes/compiler"
)

func newGenerateCmd(o *options) *cobra.Command {
	var (
		pkg   string
		out   string
		noRaw bool
	)
	cmd := &cobra.Command{
		Use:   "generate <file.bb>",
		Short: "Generate Go codecs for a record description",
		Long: `Parse, validate and plan a record description, then write the Go
types and their encode and decode routines.

Examples:
  bebytesgen generate packet.bb
  bebytesgen generate -p wire -o packet_gen.go packet.bb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("package") {
				o.cfg.Package = pkg
			}
			if cmd.Flags().Changed("output") {
				o.cfg.Output = out
			}
			if noRaw {
				o.cfg.RawEncode = false
			}
			if err := o.cfg.Validate(); err != nil {
				return err
			}

			res, err := compiler.CompileFile(args[0], o.cfg.Options(""))
			if err != nil {
				return err
			}
			o.log.Info("generated",
				zap.String("input", args[0]),
				zap.String("output", o.cfg.Output),
				zap.Int("records", len(res.Plan.Records)),
				zap.Int("bytes", len(res.Source)))
			return writeOutput(cmd.OutOrStdout(), o.cfg.Output, res.Source)
		},
	}
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Package name of the generated file")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&noRaw, "no-raw", false, "Do not emit raw-stack encoders")
	return cmd
}
