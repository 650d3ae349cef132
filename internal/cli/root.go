// Package cli implements the footprint command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the footprint CLI. It loads
// the configuration, wires up logging, and registers the calculate,
// interactive, serve, regions, factors and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "footprint",
		Short:         "Personal carbon footprint calculator",
		Long:          "footprint: estimate annual CO2 emissions from travel, electricity, diet and waste",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, skipped, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			if skipped != nil {
				logger.Warn().Err(skipped).
					Str("config_path", cfg.ConfigPath()).
					Msg("ignoring unreadable config file, using defaults")
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"configuration file (default $FOOTPRINT_HOME/config.yaml or ~/.footprint/config.yaml)")

	cmd.AddCommand(
		NewCalculateCmd(),
		NewInteractiveCmd(),
		NewServeCmd(),
		NewRegionsCmd(),
		newFactorsCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig reads an explicit --config path strictly. Without one the
// default location is used; a broken file falls back to the defaults and the
// reason is returned as skipped so it can be logged.
func loadConfig(path string) (cfg *config.Config, skipped error, err error) {
	if path == "" {
		cfg, skipped = config.LoadDefault()
		return cfg, skipped, nil
	}
	cfg, err = config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil, nil
}

const rootCmdExample = `  # Calculate a footprint with the default region and diet
  footprint calculate --distance 20 --electricity 300 --waste 10 --meals 3

  # Pick the region and diet explicitly and print JSON
  footprint calculate --region "United Arab Emirates" --diet plant --distance 5 --output json

  # Fill in the form interactively
  footprint interactive

  # Serve the web form and JSON API
  footprint serve --addr :8080

  # Check a custom emission factor table
  footprint factors validate ./factors.yaml

  # Initialize configuration
  footprint config init`

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Emission factor table commands"}
	cmd.AddCommand(NewFactorsValidateCmd(), NewFactorsShowCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
