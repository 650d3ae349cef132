package greenops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/footprint/internal/factors"
)

// Field names shared by every input surface (CLI flags, TUI rows, web form,
// JSON API). They also label validation errors.
const (
	FieldRegion      = "region"
	FieldDiet        = "diet"
	FieldDistance    = "distance"
	FieldElectricity = "electricity"
	FieldWaste       = "waste"
	FieldMeals       = "meals"
)

// dietAliases maps lower-cased short names to diet labels.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dietAliases = map[string]factors.DietType{
	"plant-based":     factors.DietPlantBased,
	"plant":           factors.DietPlantBased,
	"mixed diet":      factors.DietMixed,
	"mixed":           factors.DietMixed,
	"meat-heavy diet": factors.DietMeatHeavy,
	"meat-heavy":      factors.DietMeatHeavy,
	"meat":            factors.DietMeatHeavy,
}

// ParseDietType accepts a diet label ("Mixed diet") or a short alias
// ("mixed"), case-insensitively. Anything else wraps ErrUnknownDietType.
func ParseDietType(s string) (factors.DietType, error) {
	trimmed := strings.TrimSpace(s)
	if d := factors.DietType(trimmed); d.IsKnown() {
		return d, nil
	}
	if d, ok := dietAliases[strings.ToLower(trimmed)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDietType, s)
}

// ParseQuantity parses a non-negative, finite decimal quantity typed into a
// text field. Surrounding whitespace is ignored.
func ParseQuantity(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidQuantity, field)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidQuantity, field, raw)
	}
	if err = checkQuantity(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

// ParseMeals parses a non-negative whole meal count.
func ParseMeals(field, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidQuantity, field)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a whole number", ErrInvalidQuantity, field, raw)
	}
	if err = checkMeals(field, n); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseActivity builds an Activity from text fields keyed by the Field*
// constants. The region is taken as-is (trimmed); its existence is
// checked by the Calculator.
func ParseActivity(fields map[string]string) (Activity, error) {
	var (
		a   Activity
		err error
	)

	a.Region = strings.TrimSpace(fields[FieldRegion])

	if a.Diet, err = ParseDietType(fields[FieldDiet]); err != nil {
		return Activity{}, err
	}
	if a.DistanceKmPerDay, err = ParseQuantity(FieldDistance, fields[FieldDistance]); err != nil {
		return Activity{}, err
	}
	if a.ElectricityKWhPerMonth, err = ParseQuantity(FieldElectricity, fields[FieldElectricity]); err != nil {
		return Activity{}, err
	}
	if a.WasteKgPerWeek, err = ParseQuantity(FieldWaste, fields[FieldWaste]); err != nil {
		return Activity{}, err
	}
	if a.MealsPerDay, err = ParseMeals(FieldMeals, fields[FieldMeals]); err != nil {
		return Activity{}, err
	}

	return a, nil
}
