// Package commands implements CLI command handlers for codemod.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemod/pkg/config"
	"github.com/Sumatoshi-tech/codemod/pkg/observability"
	"github.com/Sumatoshi-tech/codemod/pkg/version"
)

// GlobalOptions holds the persistent root flags.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// NewRootCommand builds the codemod command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "codemod",
		Short: "Type-aware source-to-source rewrites",
		Long: `codemod applies recipes to resolved syntax trees stored as tree documents
(.json, .yaml, .msgpack, optionally .lz4 compressed).

Commands:
  run       Apply recipes to tree documents
  recipes   List available recipes
  print     Print the source or outline of a tree document
  validate  Check a tree document against the schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: .codemod.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(NewRunCommand(opts))
	rootCmd.AddCommand(NewRecipesCommand())
	rootCmd.AddCommand(NewPrintCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// observabilityConfig maps the loaded configuration and global flags onto
// the observability settings. --verbose wins over --quiet.
func observabilityConfig(cfg *config.Config, opts *GlobalOptions) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogJSON = cfg.Logging.Format == "json"

	if cfg.Observability.ServiceName != "" {
		obsCfg.ServiceName = cfg.Observability.ServiceName
	}

	obsCfg.Environment = cfg.Observability.Environment
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obsCfg.DebugTrace = cfg.Observability.DebugTrace
	obsCfg.SampleRatio = cfg.Observability.SampleRatio

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err == nil {
		obsCfg.LogLevel = level
	}

	switch {
	case opts.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case opts.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	return obsCfg
}

// summaryWriter returns io.Discard under --quiet.
func summaryWriter(cmd *cobra.Command, opts *GlobalOptions) io.Writer {
	if opts.Quiet {
		return io.Discard
	}

	return cmd.OutOrStdout()
}
