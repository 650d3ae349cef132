package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/logging"
)

// calculateParams holds the flag values of the calculate command.
type calculateParams struct {
	region      string
	diet        DietFlag
	distance    float64
	electricity float64
	waste       float64
	meals       int
	rounding    RoundingFlag
	factorsFile string
	output      OutputFlag
}

// NewCalculateCmd creates the calculate command, which computes one annual
// footprint from flags.
func NewCalculateCmd() *cobra.Command {
	var params calculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate an annual carbon footprint",
		Long: `Calculates the annual CO2 emissions, in tonnes, of daily travel, monthly
electricity use, weekly waste and daily meals for one region.

Region, diet, rounding mode and factor table default to the configuration
(calculator section) when the flags are omitted. Quantities default to zero.`,
		Example: `  # Reference scenario
  footprint calculate --distance 20 --electricity 300 --waste 10 --meals 3

  # Plant-based diet, banker's rounding, JSON output
  footprint calculate --diet plant --meals 3 --rounding half-even --output json

  # Use a custom factor table
  footprint calculate --factors ./factors.yaml --region "United Arab Emirates" --distance 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, &params)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&params.region, "region", "", "region name as listed by 'footprint regions' (default from config)")
	fs.Var(&params.diet, "diet", "diet: Plant-based, Mixed diet, Meat-heavy diet or plant, mixed, meat (default from config)")
	fs.Float64Var(&params.distance, "distance", 0, "daily distance traveled in km")
	fs.Float64Var(&params.electricity, "electricity", 0, "monthly electricity consumption in kWh")
	fs.Float64Var(&params.waste, "waste", 0, "weekly waste generated in kg")
	fs.IntVar(&params.meals, "meals", 0, "meals per day")
	fs.Var(&params.rounding, "rounding", "rounding mode: half-up or half-even (default from config)")
	fs.StringVar(&params.factorsFile, "factors", "", "emission factor table file (.yaml or .json)")
	addOutputFlag(fs, &params.output)

	return cmd
}

func executeCalculate(cmd *cobra.Command, params *calculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	calc, err := newCalculator(ctx, calculatorOptions{
		FactorsFile: params.factorsFile,
		Rounding:    params.rounding.Value,
	})
	if err != nil {
		return err
	}

	activity, err := configuredActivity()
	if err != nil {
		return err
	}
	if params.region != "" {
		activity.Region = params.region
	}
	if params.diet.Value != "" {
		activity.Diet = params.diet.Value
	}
	activity.DistanceKmPerDay = params.distance
	activity.ElectricityKWhPerMonth = params.electricity
	activity.WasteKgPerWeek = params.waste
	activity.MealsPerDay = params.meals

	fp, err := calc.CalculateContext(ctx, activity)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("calculation rejected")
		return err
	}

	return renderFootprint(cmd.OutOrStdout(), params.output.resolve(), fp)
}

