// Package cli holds the cobra commands of the babynames binary.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/babynames/internal/config"
	"github.com/okian/babynames/pkg/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// rootOptions is state shared by every subcommand.
type rootOptions struct {
	configPath string
	cfg        *config.Config
}

// setup loads configuration and initialises logging on out.
func (o *rootOptions) setup(ctx context.Context, out io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(ctx, o.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(out)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	o.cfg = cfg
	return nil
}

// NewRootCommand creates and returns the root cobra command for babynames
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "babynames",
		Short: "Explore the popularity of baby names over time",
		Long: `babynames downloads the SSA national baby names archive, computes each
name's share of the births of its year and sex, and lets you explore a name's
popularity as charts, a summary and a table.

Run "babynames serve" for the web explorer or "babynames trend NAME" for a
terminal summary. Configuration comes from defaults, an optional YAML file
(--config or BABYNAMES_CONFIG) and BABYNAMES_* environment variables.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (overrides BABYNAMES_CONFIG)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newTrendCommand(opts))
	cmd.AddCommand(newFixtureCommand())

	return cmd
}
