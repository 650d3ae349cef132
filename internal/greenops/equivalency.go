package greenops

import (
	"fmt"
	"math"
)

// TreesFor returns the raw (unrounded) number of trees needed to absorb
// totalTonnes of CO2 in one year.
func TreesFor(totalTonnes float64) float64 {
	return totalTonnes / TreeSequestrationTonnesPerYear
}

// Equivalencies converts an annual total in tonnes CO2 into relatable
// equivalencies: trees absorbing it over a year, miles driven, smartphones
// charged and days of home electricity.
//
// A negative total wraps ErrInvalidQuantity and a non-finite one returns
// ErrCalculationOverflow, both with an empty output. Totals below
// MinEquivalencyThresholdKg yield an empty output and no error.
func Equivalencies(totalTonnes float64) (EquivalencyOutput, error) {
	if math.IsInf(totalTonnes, 0) || math.IsNaN(totalTonnes) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if totalTonnes < 0 {
		return EquivalencyOutput{IsEmpty: true},
			fmt.Errorf("%w: total must be non-negative, got %g", ErrInvalidQuantity, totalTonnes)
	}

	kg := totalTonnes * KgPerTonne
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	trees := TreesFor(totalTonnes)
	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	homeDays := kg / EPAHomeDayFactor

	for _, v := range []float64{trees, miles, phones, homeDays} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	results := []EquivalencyResult{
		{
			Type:           EquivalencyTreesYear,
			Value:          trees,
			FormattedValue: formatEquivalencyValue(trees),
			Label:          "trees for a year",
		},
		{
			Type:           EquivalencyMilesDriven,
			Value:          miles,
			FormattedValue: milesFormatted,
			Label:          "miles driven",
		},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: phonesFormatted,
			Label:          "smartphones charged",
		},
		{
			Type:           EquivalencyHomeDays,
			Value:          homeDays,
			FormattedValue: formatEquivalencyValue(homeDays),
			Label:          "days of home electricity",
		},
	}

	displayText := fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		milesFormatted, phonesFormatted)
	compactText := fmt.Sprintf("(≈ %s mi, %s phones)", milesFormatted, phonesFormatted)

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: displayText,
		CompactText: compactText,
		IsEmpty:     false,
	}, nil
}

// FootprintEquivalencies returns the equivalencies for a footprint's total.
func FootprintEquivalencies(f Footprint) (EquivalencyOutput, error) {
	return Equivalencies(f.Total)
}

// formatEquivalencyValue formats an equivalency value for display: values at
// or above LargeNumberThreshold use million/billion scaling, smaller values
// are rounded to a comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
