package greenops

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/logging"
)

// FactorTable is the read-only factor lookup a Calculator depends on.
// *factors.Table satisfies it.
type FactorTable interface {
	Region(name string) (factors.RegionFactors, bool)
	Regions() []string
}

// Calculator computes footprints against one factor table. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	table    FactorTable
	rounding RoundingMode
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithRounding sets the rounding mode. Unknown modes are ignored.
func WithRounding(mode RoundingMode) Option {
	return func(c *Calculator) {
		if mode == RoundHalfUp || mode == RoundHalfEven {
			c.rounding = mode
		}
	}
}

// NewCalculator returns a Calculator reading factors from table.
func NewCalculator(table FactorTable, opts ...Option) *Calculator {
	c := &Calculator{table: table, rounding: RoundHalfUp}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rounding returns the configured rounding mode.
func (c *Calculator) Rounding() RoundingMode {
	return c.rounding
}

// Regions returns the regions available in the factor table.
func (c *Calculator) Regions() []string {
	if c.table == nil {
		return nil
	}
	return c.table.Regions()
}

// Calculate computes the annual footprint for a. See CalculateContext.
func (c *Calculator) Calculate(a Activity) (Footprint, error) {
	return c.CalculateContext(context.Background(), a)
}

// CalculateContext computes the annual footprint for a.
//
// Each category is factor × annual quantity in kg, converted to tonnes and
// rounded; the total is the rounded sum of the rounded categories, and
// TreesRequired is the rounded total divided by
// TreeSequestrationTonnesPerYear.
//
// It returns an error wrapping ErrInvalidQuantity, ErrUnknownRegion or
// ErrUnknownDietType (checked in that order), or ErrCalculationOverflow if
// the meal count exceeds MaxMealsPerDay or a result cannot be represented
// as a float64.
func (c *Calculator) CalculateContext(ctx context.Context, a Activity) (Footprint, error) {
	log := logging.FromContext(ctx)

	if err := a.Validate(); err != nil {
		return Footprint{}, err
	}

	if c.table == nil {
		return Footprint{}, fmt.Errorf("%w: %q (no factor table loaded)", ErrUnknownRegion, a.Region)
	}
	region, ok := c.table.Region(a.Region)
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %q", ErrUnknownRegion, a.Region)
	}
	dietFactor, ok := region.Diet(a.Diet)
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %q", ErrUnknownDietType, a.Diet)
	}

	annual := Annualize(a)

	factorsKg := []float64{region.Transportation, region.Electricity, dietFactor, region.Waste}
	quantities := []decimal.Decimal{
		decimal.NewFromFloat(a.DistanceKmPerDay).Mul(decimal.NewFromInt(DaysPerYear)),
		decimal.NewFromFloat(a.ElectricityKWhPerMonth).Mul(decimal.NewFromInt(MonthsPerYear)),
		decimal.NewFromInt(int64(a.MealsPerDay)).Mul(decimal.NewFromInt(DaysPerYear)),
		decimal.NewFromFloat(a.WasteKgPerWeek).Mul(decimal.NewFromInt(WeeksPerYear)),
	}

	perTonne := decimal.NewFromInt(KgPerTonne)
	tonnes := make([]decimal.Decimal, len(factorsKg))
	total := decimal.Zero
	for i, f := range factorsKg {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Footprint{}, fmt.Errorf("%w: non-finite factor for region %q", ErrCalculationOverflow, a.Region)
		}
		tonnes[i] = c.rounding.round(decimal.NewFromFloat(f).Mul(quantities[i]).Div(perTonne))
		total = total.Add(tonnes[i])
	}
	total = c.rounding.round(total)
	trees := c.rounding.round(total.Div(decimal.NewFromFloat(TreeSequestrationTonnesPerYear)))

	fp := Footprint{
		Region:         a.Region,
		DietType:       a.Diet,
		Rounding:       c.rounding,
		Annual:         annual,
		Transportation: tonnes[0].InexactFloat64(),
		Electricity:    tonnes[1].InexactFloat64(),
		Diet:           tonnes[2].InexactFloat64(),
		Waste:          tonnes[3].InexactFloat64(),
		Total:          total.InexactFloat64(),
		TreesRequired:  trees.InexactFloat64(),
	}

	for _, v := range []float64{
		annual.DistanceKm, annual.ElectricityKWh, annual.WasteKg,
		fp.Transportation, fp.Electricity, fp.Diet, fp.Waste, fp.Total, fp.TreesRequired,
	} {
		if math.IsInf(v, 0) {
			return Footprint{}, ErrCalculationOverflow
		}
	}

	log.Debug().Ctx(ctx).
		Str("component", "greenops").
		Str("region", fp.Region).
		Str("diet", string(fp.DietType)).
		Float64("total_t", fp.Total).
		Float64("trees", fp.TreesRequired).
		Msg("footprint calculated")

	return fp, nil
}
