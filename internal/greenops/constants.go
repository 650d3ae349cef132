package greenops

import "math"

// Annualization multipliers for period-scoped activity quantities.
const (
	DaysPerYear   = 365
	WeeksPerYear  = 52
	MonthsPerYear = 12
)

// MaxMealsPerDay is the largest daily meal count whose annual total fits
// in an int.
const MaxMealsPerDay = math.MaxInt / DaysPerYear

// KgPerTonne converts the calculator's kg results to metric tonnes.
const KgPerTonne = 1000

// TreeSequestrationTonnesPerYear is the average CO2 absorbed by one tree in
// a year, in metric tonnes. Total emissions divided by this value give the
// tree-equivalent count.
const TreeSequestrationTonnesPerYear = 0.022

// ResultPrecision is the number of decimal places kept on every result.
const ResultPrecision = 2

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// These constants represent the kg CO2e equivalent for each activity.
// To calculate the equivalency, divide the carbon value by the factor:
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Display Threshold Constants control when equivalencies are shown.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	// Below this threshold the equivalencies become meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is the threshold for "~X.X million" display.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// Reference input ranges offered as field hints by the interactive
// surfaces. They are not limits: larger values are accepted.
const (
	HintMaxDistanceKmPerDay       = 100
	HintMaxElectricityKWhPerMonth = 1000
	HintMaxWasteKgPerWeek         = 100
)
