package greenops

import (
	"fmt"

	"github.com/rshade/footprint/internal/factors"
)

// CategoryLine renders one category result, naming the diet label on the
// diet line: "Diet (Mixed diet): 1.64 tonnes CO2 per year".
func CategoryLine(f Footprint, c factors.Category) string {
	label := string(c)
	if c == factors.CategoryDiet && f.DietType != "" {
		label = fmt.Sprintf("%s (%s)", c, f.DietType)
	}
	return fmt.Sprintf("%s: %s tonnes CO2 per year", label, FormatTonnes(categoryValue(f, c)))
}

// TotalLine renders the total footprint sentence.
func TotalLine(f Footprint) string {
	return fmt.Sprintf("Your total carbon footprint is: %s tonnes CO2 per year", FormatTonnes(f.Total))
}

// TreesLine renders the tree-equivalence sentence.
func TreesLine(f Footprint) string {
	return fmt.Sprintf("This is equivalent to the CO2 absorbed by approximately %s trees in a year",
		FormatTonnes(f.TreesRequired))
}

func categoryValue(f Footprint, c factors.Category) float64 {
	switch c {
	case factors.CategoryTransportation:
		return f.Transportation
	case factors.CategoryElectricity:
		return f.Electricity
	case factors.CategoryDiet:
		return f.Diet
	case factors.CategoryWaste:
		return f.Waste
	default:
		return 0
	}
}
