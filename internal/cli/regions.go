package cli

import (
	"github.com/spf13/cobra"
)

// NewRegionsCmd creates the regions command, which lists the regions of the
// factor table.
func NewRegionsCmd() *cobra.Command {
	var (
		factorsFile string
		output      OutputFlag
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions of the emission factor table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadFactorTable(cmd.Context(), factorsFileOrConfigured(factorsFile))
			if err != nil {
				return err
			}
			return renderRegions(cmd.OutOrStdout(), output.resolve(), table.Regions())
		},
	}

	cmd.Flags().StringVar(&factorsFile, "factors", "", "emission factor table file (.yaml or .json)")
	addOutputFlag(cmd.Flags(), &output)

	return cmd
}
