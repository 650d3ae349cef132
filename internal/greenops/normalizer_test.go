package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualize(t *testing.T) {
	tests := []struct {
		name string
		in   Activity
		want AnnualActivity
	}{
		{
			name: "reference household",
			in:   Activity{DistanceKmPerDay: 20, ElectricityKWhPerMonth: 300, WasteKgPerWeek: 10, MealsPerDay: 3},
			want: AnnualActivity{DistanceKm: 7300, ElectricityKWh: 3600, WasteKg: 520, Meals: 1095},
		},
		{
			name: "zero meals stay zero",
			in:   Activity{DistanceKmPerDay: 1, ElectricityKWhPerMonth: 1, WasteKgPerWeek: 1},
			want: AnnualActivity{DistanceKm: 365, ElectricityKWh: 12, WasteKg: 52},
		},
		{
			name: "largest meal count",
			in:   Activity{MealsPerDay: MaxMealsPerDay},
			want: AnnualActivity{Meals: MaxMealsPerDay * DaysPerYear},
		},
		{
			name: "fractional quantities",
			in:   Activity{DistanceKmPerDay: 0.5, ElectricityKWhPerMonth: 12.5, WasteKgPerWeek: 2.5, MealsPerDay: 1},
			want: AnnualActivity{DistanceKm: 182.5, ElectricityKWh: 150, WasteKg: 130, Meals: 365},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annualize(tt.in)
			assert.InDelta(t, tt.want.DistanceKm, got.DistanceKm, 1e-9)
			assert.InDelta(t, tt.want.ElectricityKWh, got.ElectricityKWh, 1e-9)
			assert.InDelta(t, tt.want.WasteKg, got.WasteKg, 1e-9)
			assert.Equal(t, tt.want.Meals, got.Meals)
		})
	}
}

func TestActivity_Validate(t *testing.T) {
	require.NoError(t, Activity{}.Validate())
	require.NoError(t, referenceActivity().Validate())

	tests := []struct {
		name  string
		in    Activity
		field string
	}{
		{name: "negative distance", in: Activity{DistanceKmPerDay: -0.1}, field: FieldDistance},
		{name: "NaN electricity", in: Activity{ElectricityKWhPerMonth: math.NaN()}, field: FieldElectricity},
		{name: "negative infinity waste", in: Activity{WasteKgPerWeek: math.Inf(-1)}, field: FieldWaste},
		{name: "negative meals", in: Activity{MealsPerDay: -1}, field: FieldMeals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			require.ErrorIs(t, err, ErrInvalidQuantity)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestActivity_ValidateMealLimit(t *testing.T) {
	require.NoError(t, Activity{MealsPerDay: MaxMealsPerDay}.Validate())

	for _, meals := range []int{MaxMealsPerDay + 1, math.MaxInt64 / 100, math.MaxInt} {
		err := Activity{MealsPerDay: meals}.Validate()
		require.ErrorIs(t, err, ErrCalculationOverflow, "meals %d", meals)
		assert.Contains(t, err.Error(), FieldMeals)
	}
}
