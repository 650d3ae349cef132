package greenops

import (
	"fmt"
	"math"
)

// Annualize converts period-scoped quantities to yearly ones: distance is
// per day, electricity per month, waste per week and meals per day.
func Annualize(a Activity) AnnualActivity {
	annual := AnnualActivity{
		DistanceKm:     a.DistanceKmPerDay * DaysPerYear,
		ElectricityKWh: a.ElectricityKWhPerMonth * MonthsPerYear,
		WasteKg:        a.WasteKgPerWeek * WeeksPerYear,
	}
	// A zero meal count is left as-is rather than scaled.
	if a.MealsPerDay > 0 {
		annual.Meals = a.MealsPerDay * DaysPerYear
	}
	return annual
}

// Validate checks that every raw quantity is finite and non-negative.
// The returned error wraps ErrInvalidQuantity and names the field, or
// ErrCalculationOverflow when the meal count cannot be annualized.
func (a Activity) Validate() error {
	quantities := []struct {
		field string
		value float64
	}{
		{FieldDistance, a.DistanceKmPerDay},
		{FieldElectricity, a.ElectricityKWhPerMonth},
		{FieldWaste, a.WasteKgPerWeek},
	}
	for _, q := range quantities {
		if err := checkQuantity(q.field, q.value); err != nil {
			return err
		}
	}
	return checkMeals(FieldMeals, a.MealsPerDay)
}

func checkMeals(field string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidQuantity, field, n)
	}
	if n > MaxMealsPerDay {
		return fmt.Errorf("%w: %s per day must be at most %d, got %d", ErrCalculationOverflow, field, MaxMealsPerDay, n)
	}
	return nil
}

func checkQuantity(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidQuantity, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidQuantity, field, v)
	}
	return nil
}
