package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bebytes/codec"
	"github.com/wippyai/bebytes/codegen"
	"github.com/wippyai/bebytes/config"
	"github.com/wippyai/bebytes/plan"
)

// options is shared by every subcommand. cfg and log are set before any
// subcommand runs.
type options struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCmd builds the bebytesgen command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "bebytesgen",
		Short: "bebytes - binary codec generator",
		Long: `bebytesgen compiles record descriptions with bit-level layout
attributes into Go encoders and decoders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.log != nil {
				_ = o.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(o),
		newCheckCmd(o),
		newPlanCmd(o),
		newInspectCmd(o),
		newWITCmd(o),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (o *options) load() error {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = log
	plan.SetLogger(log.Named("plan"))
	codegen.SetLogger(log.Named("codegen"))
	codec.SetLogger(log.Named("codec"))
	return nil
}

// writeOutput writes generated source to path, or to w when path is "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
