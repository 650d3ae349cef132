// Package greenops computes annual carbon footprints from everyday activity
// quantities and converts the result into relatable equivalencies.
//
// A Calculator annualizes period-scoped inputs (per day, week or month),
// multiplies them by a region's emission factors, converts kg to tonnes and
// rounds every figure to two decimal places. The total is expressed as the
// number of trees needed to absorb it in a year, and optionally as EPA
// equivalencies such as miles driven or smartphones charged.
package greenops

import (
	"fmt"

	"github.com/rshade/footprint/internal/factors"
)

// Activity is one submission of raw, period-scoped activity quantities.
type Activity struct {
	Region                 string           `json:"region"`
	Diet                   factors.DietType `json:"diet"`
	DistanceKmPerDay       float64          `json:"distance_km_per_day"`
	ElectricityKWhPerMonth float64          `json:"electricity_kwh_per_month"`
	WasteKgPerWeek         float64          `json:"waste_kg_per_week"`
	MealsPerDay            int              `json:"meals_per_day"`
}

// AnnualActivity holds activity quantities normalized to one year.
type AnnualActivity struct {
	DistanceKm     float64 `json:"distance_km"`
	ElectricityKWh float64 `json:"electricity_kwh"`
	WasteKg        float64 `json:"waste_kg"`
	Meals          int     `json:"meals"`
}

// Footprint is the result of one calculation. Emission figures are tonnes
// CO2 per year rounded to ResultPrecision decimal places.
type Footprint struct {
	Region   string           `json:"region"`
	DietType factors.DietType `json:"diet_type"`
	Rounding RoundingMode     `json:"rounding"`
	Annual   AnnualActivity   `json:"annual"`

	Transportation float64 `json:"transportation"`
	Electricity    float64 `json:"electricity"`
	Diet           float64 `json:"diet"`
	Waste          float64 `json:"waste"`
	Total          float64 `json:"total"`

	TreesRequired float64 `json:"trees_required"`
}

// ByCategory returns the category emission figures in display order.
func (f Footprint) ByCategory() []CategoryEmission {
	return []CategoryEmission{
		{Category: factors.CategoryTransportation, Tonnes: f.Transportation},
		{Category: factors.CategoryElectricity, Tonnes: f.Electricity},
		{Category: factors.CategoryDiet, Tonnes: f.Diet},
		{Category: factors.CategoryWaste, Tonnes: f.Waste},
	}
}

// CategoryEmission pairs a category with its annual emissions in tonnes.
type CategoryEmission struct {
	Category factors.Category `json:"category"`
	Tonnes   float64          `json:"tonnes"`
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyTreesYear converts CO2e to trees absorbing it over one year.
	EquivalencyTreesYear EquivalencyType = iota

	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyHomeDays converts CO2e to days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTreesYear:
		return "TreesYear"
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the total converted to kilograms CO2.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Equivalent to driving ~30,573 miles or charging ~714,112 smartphones"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
