package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/greenops"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the active configuration (file plus FOOTPRINT_ environment
overrides) for semantic correctness.

This includes:
- Output format, log level and log format
- Rounding mode and default diet
- The factor table file, when one is configured
- The configured region exists in the factor table
- Server address, rate limit, burst and shutdown timeout`,
		Example: `  # Validate current configuration
  footprint config validate

  # Validate and show detailed information
  footprint config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	table, err := loadFactorTable(cmd.Context(), cfg.Calculator.FactorsFile)
	if err != nil {
		return fmt.Errorf("configuration validation failed: calculator.factors_file: %w", err)
	}
	if _, ok := table.Region(cfg.Calculator.Region); !ok {
		return fmt.Errorf("configuration validation failed: calculator.region: %w: %q",
			greenops.ErrUnknownRegion, cfg.Calculator.Region)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Region: %s\n", cfg.Calculator.Region)
	cmd.Printf("  Diet: %s\n", cfg.Calculator.Diet)
	cmd.Printf("  Rounding: %s\n", cfg.Calculator.Rounding)
	if cfg.Calculator.FactorsFile != "" {
		cmd.Printf("  Factor table: %s\n", cfg.Calculator.FactorsFile)
	} else {
		cmd.Println("  Factor table: built-in")
	}
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
}
