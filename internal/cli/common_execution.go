package cli

import (
	"context"
	"fmt"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

// calculatorOptions overrides the configured calculator settings. Empty
// fields keep the configured value.
type calculatorOptions struct {
	FactorsFile string
	Rounding    greenops.RoundingMode
}

// loadFactorTable loads path, or the built-in table when path is empty.
func loadFactorTable(ctx context.Context, path string) (*factors.Table, error) {
	log := logging.FromContext(ctx)

	if path == "" {
		log.Debug().Ctx(ctx).Msg("using built-in factor table")
		return factors.Default(), nil
	}

	table, err := factors.Load(path)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("factors_file", path).Msg("failed to load factor table")
		return nil, err
	}
	log.Debug().Ctx(ctx).
		Str("factors_file", path).
		Int("region_count", len(table.Regions())).
		Msg("factor table loaded")
	return table, nil
}

// factorsFileOrConfigured returns path, or the configured factor table file
// when path is empty.
func factorsFileOrConfigured(path string) string {
	if path != "" {
		return path
	}
	return config.GetCalculatorConfig().FactorsFile
}

// newCalculator builds a Calculator from the global configuration with opts
// applied on top.
func newCalculator(ctx context.Context, opts calculatorOptions) (*greenops.Calculator, error) {
	calcCfg := config.GetCalculatorConfig()

	table, err := loadFactorTable(ctx, factorsFileOrConfigured(opts.FactorsFile))
	if err != nil {
		return nil, err
	}

	rounding := opts.Rounding
	if rounding == "" {
		rounding, err = greenops.ParseRoundingMode(calcCfg.Rounding)
		if err != nil {
			return nil, fmt.Errorf("calculator.rounding: %w", err)
		}
	}

	return greenops.NewCalculator(table, greenops.WithRounding(rounding)), nil
}

// configuredActivity returns an Activity holding the configured region and
// diet with zero quantities.
func configuredActivity() (greenops.Activity, error) {
	calcCfg := config.GetCalculatorConfig()
	a := greenops.Activity{Region: calcCfg.Region, Diet: factors.DietMixed}
	if calcCfg.Diet != "" {
		diet, err := greenops.ParseDietType(calcCfg.Diet)
		if err != nil {
			return greenops.Activity{}, fmt.Errorf("calculator.diet: %w", err)
		}
		a.Diet = diet
	}
	return a, nil
}
