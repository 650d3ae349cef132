package factors

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedSchema is the semver constraint a factor file's schema_version
// must satisfy.
const SupportedSchema = "^1.0.0"

// CurrentSchemaVersion is written by tools that emit factor tables.
const CurrentSchemaVersion = "1.0.0"

// Table maps region names to their emission factors.
type Table struct {
	schemaVersion string
	regions       map[string]RegionFactors
}

// New builds a validated Table from region specs. The specs are copied, so
// later changes to the input maps do not affect the table.
func New(schemaVersion string, regions map[string]RegionSpec) (*Table, error) {
	if err := checkSchemaVersion(schemaVersion); err != nil {
		return nil, err
	}

	t := &Table{
		schemaVersion: schemaVersion,
		regions:       make(map[string]RegionFactors, len(regions)),
	}
	for name, spec := range regions {
		diet := make(map[DietType]float64, len(spec.Diet))
		for k, v := range spec.Diet {
			diet[k] = v
		}
		t.regions[name] = RegionFactors{
			Name:           name,
			Transportation: spec.Transportation,
			Electricity:    spec.Electricity,
			Waste:          spec.Waste,
			diet:           diet,
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Region returns the factors for the named region.
func (t *Table) Region(name string) (RegionFactors, bool) {
	if t == nil {
		return RegionFactors{}, false
	}
	r, ok := t.regions[name]
	return r, ok
}

// Regions returns the region names in sorted order.
func (t *Table) Regions() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.regions))
	for name := range t.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaVersion returns the schema version the table was built from.
func (t *Table) SchemaVersion() string {
	if t == nil {
		return ""
	}
	return t.schemaVersion
}

// Validate checks the table invariants: at least one region, every region
// has all four categories with finite positive factors, and the diet
// factors define exactly the recognized labels. All violations are
// reported together.
func (t *Table) Validate() error {
	if t == nil || len(t.regions) == 0 {
		return fmt.Errorf("%w: no regions defined", ErrInvalidTable)
	}

	var problems []error
	for _, name := range t.Regions() {
		r := t.regions[name]
		if strings.TrimSpace(name) == "" {
			problems = append(problems, errors.New("region name cannot be empty"))
			continue
		}
		for _, c := range []Category{CategoryTransportation, CategoryElectricity, CategoryWaste} {
			v, _ := r.Factor(c)
			if err := checkFactor(v); err != nil {
				problems = append(problems, fmt.Errorf("region %q %s: %w", name, c, err))
			}
		}
		problems = append(problems, validateDiet(name, r.diet)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTable, errors.Join(problems...))
	}
	return nil
}

func validateDiet(region string, diet map[DietType]float64) []error {
	var problems []error
	for _, d := range DietTypes() {
		v, ok := diet[d]
		if !ok {
			problems = append(problems, fmt.Errorf("region %q Diet: missing %q", region, d))
			continue
		}
		if err := checkFactor(v); err != nil {
			problems = append(problems, fmt.Errorf("region %q Diet %q: %w", region, d, err))
		}
	}

	extra := make([]string, 0)
	for d := range diet {
		if !d.IsKnown() {
			extra = append(extra, string(d))
		}
	}
	sort.Strings(extra)
	for _, d := range extra {
		problems = append(problems, fmt.Errorf("region %q Diet: unrecognized label %q", region, d))
	}
	return problems
}

func checkFactor(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("factor must be finite")
	}
	if v <= 0 {
		return fmt.Errorf("factor must be positive, got %g", v)
	}
	return nil
}

func checkSchemaVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}
