package factors

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTableYAML []byte

//nolint:gochecknoglobals // Parsed once, immutable afterwards.
var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// fileTable is the on-disk representation of a Table.
type fileTable struct {
	SchemaVersion string                `yaml:"schema_version"`
	Regions       map[string]fileRegion `yaml:"regions"`
}

// fileRegion uses pointers so that a missing category is distinguishable
// from an explicit zero.
type fileRegion struct {
	Transportation *float64           `yaml:"transportation"`
	Electricity    *float64           `yaml:"electricity"`
	Waste          *float64           `yaml:"waste"`
	Diet           map[string]float64 `yaml:"diet"`
}

// Default returns the built-in table. It panics only if the embedded data is
// corrupt, which the package tests guard against.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(defaultTableYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded factor table is invalid: %v", defaultErr))
	}
	return defaultTable
}

// Load reads a factor table from a .yaml, .yml or .json file.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor table %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading factor table %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a factor table from YAML (or JSON, which is valid YAML).
// Unknown keys are rejected.
func Parse(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ft fileTable
	if err := dec.Decode(&ft); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	specs := make(map[string]RegionSpec, len(ft.Regions))
	var missing []string
	for name, r := range ft.Regions {
		if r.Transportation == nil {
			missing = append(missing, fmt.Sprintf("region %q: missing %s", name, CategoryTransportation))
		}
		if r.Electricity == nil {
			missing = append(missing, fmt.Sprintf("region %q: missing %s", name, CategoryElectricity))
		}
		if r.Waste == nil {
			missing = append(missing, fmt.Sprintf("region %q: missing %s", name, CategoryWaste))
		}
		if r.Diet == nil {
			missing = append(missing, fmt.Sprintf("region %q: missing %s", name, CategoryDiet))
		}

		diet := make(map[DietType]float64, len(r.Diet))
		for label, v := range r.Diet {
			diet[DietType(label)] = v
		}
		specs[name] = RegionSpec{
			Transportation: deref(r.Transportation),
			Electricity:    deref(r.Electricity),
			Waste:          deref(r.Waste),
			Diet:           diet,
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(missing, "; "))
	}

	return New(ft.SchemaVersion, specs)
}

// Marshal encodes the table in the on-disk YAML format.
func (t *Table) Marshal() ([]byte, error) {
	ft := fileTable{
		SchemaVersion: t.SchemaVersion(),
		Regions:       make(map[string]fileRegion, len(t.regions)),
	}
	for name, r := range t.regions {
		diet := make(map[string]float64, len(r.diet))
		for d, v := range r.diet {
			diet[string(d)] = v
		}
		transport, electricity, waste := r.Transportation, r.Electricity, r.Waste
		ft.Regions[name] = fileRegion{
			Transportation: &transport,
			Electricity:    &electricity,
			Waste:          &waste,
			Diet:           diet,
		}
	}
	return yaml.Marshal(ft)
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
