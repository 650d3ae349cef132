// Package factors holds the emission factor table: a static, read-only
// mapping from region to per-category emission factors.
//
// A Table is immutable once built and safe for concurrent reads.
package factors

import "fmt"

// Category is an emission category tracked per region.
type Category string

// Emission categories.
const (
	CategoryTransportation Category = "Transportation"
	CategoryElectricity    Category = "Electricity"
	CategoryDiet           Category = "Diet"
	CategoryWaste          Category = "Waste"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryTransportation, CategoryElectricity, CategoryDiet, CategoryWaste}
}

// Unit returns the activity unit a factor for this category is expressed per.
func (c Category) Unit() string {
	switch c {
	case CategoryTransportation:
		return "km"
	case CategoryElectricity:
		return "kWh"
	case CategoryDiet:
		return "meal"
	case CategoryWaste:
		return "kg"
	default:
		return fmt.Sprintf("Category(%s)", string(c))
	}
}

// DietType is one of the recognized diet labels.
type DietType string

// Recognized diet labels. A region's diet factors define exactly these.
const (
	DietPlantBased DietType = "Plant-based"
	DietMixed      DietType = "Mixed diet"
	DietMeatHeavy  DietType = "Meat-heavy diet"
)

// DietTypes lists the recognized diet labels in display order.
func DietTypes() []DietType {
	return []DietType{DietPlantBased, DietMixed, DietMeatHeavy}
}

// IsKnown reports whether d is one of the recognized labels.
func (d DietType) IsKnown() bool {
	switch d {
	case DietPlantBased, DietMixed, DietMeatHeavy:
		return true
	default:
		return false
	}
}

// RegionSpec is the mutable input used to build a Table.
// Factors are kg CO2 per activity unit (see Category.Unit).
type RegionSpec struct {
	Transportation float64
	Electricity    float64
	Waste          float64
	Diet           map[DietType]float64
}

// RegionFactors is the read-only view of one region's factors.
type RegionFactors struct {
	Name           string
	Transportation float64
	Electricity    float64
	Waste          float64

	diet map[DietType]float64
}

// Diet returns the kg CO2 per meal for the diet label.
func (r RegionFactors) Diet(d DietType) (float64, bool) {
	v, ok := r.diet[d]
	return v, ok
}

// Factor returns the non-diet factor for a category.
// CategoryDiet is not a single value and reports false.
func (r RegionFactors) Factor(c Category) (float64, bool) {
	switch c {
	case CategoryTransportation:
		return r.Transportation, true
	case CategoryElectricity:
		return r.Electricity, true
	case CategoryWaste:
		return r.Waste, true
	case CategoryDiet:
		return 0, false
	default:
		return 0, false
	}
}
