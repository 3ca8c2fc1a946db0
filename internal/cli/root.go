// Package cli implements the docsearch command line.
package cli

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/kyle-williams-1/docsearch/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "bson" | "sphinx"
	ConfigPath string

	formatSet bool
	logger    log.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "bson", "sphinx"}

// NewRootCommand creates the root command for the docsearch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "docsearch",
		Short:         "Parse document search queries",
		Long:          "Turns search strings with kind:value fields, labels and free text into structured queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.formatSet = cmd.Flags().Changed("format")

			allow := level.AllowInfo()
			if opts.Verbose {
				allow = level.AllowDebug()
			}
			opts.logger = level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr())), allow)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|bson|sphinx), the config's formatter when --config is given")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewKindsCommand(opts))

	return cmd
}

// loadConfig reads the config file named by --config, or the defaults.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	level.Debug(o.logger).Log("msg", "loaded config", "path", o.ConfigPath, "kinds", len(cfg.Kinds))
	return cfg, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// outputFormat is --format when given, otherwise the formatter named by the
// config file, otherwise json.
func (o *RootOptions) outputFormat(cfg *config.Config) string {
	if o.formatSet || o.ConfigPath == "" {
		return o.Format
	}
	return string(cfg.Formatter)
}
