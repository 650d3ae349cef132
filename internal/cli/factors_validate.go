package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/factors"
)

// NewFactorsValidateCmd creates the factors validate command.
func NewFactorsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate an emission factor table file",
		Long: `Checks that a .yaml or .json factor table parses, carries a supported
schema_version, and that every region defines positive, finite factors for
transportation, electricity, waste and each recognized diet label.`,
		Example: `  footprint factors validate ./factors.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := factors.Load(args[0])
			if err != nil {
				return fmt.Errorf("factor table validation failed: %w", err)
			}

			cmd.Printf("✅ Factor table is valid\n")
			cmd.Printf("  Schema version: %s\n", table.SchemaVersion())
			cmd.Printf("  Regions: %d\n", len(table.Regions()))
			for _, r := range table.Regions() {
				cmd.Printf("    - %s\n", r)
			}
			return nil
		},
	}
}

// NewFactorsShowCmd creates the factors show command, which prints the
// effective factor table in its file format.
func NewFactorsShowCmd() *cobra.Command {
	var factorsFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective emission factor table",
		Long: `Prints the factor table in use (the configured or --factors file, or the
built-in table) as YAML. The output is a valid factor table file and can be
used as a starting point for a custom one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadFactorTable(cmd.Context(), factorsFileOrConfigured(factorsFile))
			if err != nil {
				return err
			}
			data, err := table.Marshal()
			if err != nil {
				return fmt.Errorf("encoding factor table: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&factorsFile, "factors", "", "emission factor table file (.yaml or .json)")

	return cmd
}
