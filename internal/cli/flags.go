package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

// DietFlag is a pflag.Value accepting a diet label or a short alias.
type DietFlag struct {
	Value factors.DietType
}

var _ pflag.Value = (*DietFlag)(nil)

func (f *DietFlag) String() string { return string(f.Value) }

// Set parses s with greenops.ParseDietType.
func (f *DietFlag) Set(s string) error {
	d, err := greenops.ParseDietType(s)
	if err != nil {
		return err
	}
	f.Value = d
	return nil
}

// Type names the flag value in help output.
func (f *DietFlag) Type() string { return "diet" }

// RoundingFlag is a pflag.Value accepting half-up or half-even.
type RoundingFlag struct {
	Value greenops.RoundingMode
}

var _ pflag.Value = (*RoundingFlag)(nil)

func (f *RoundingFlag) String() string { return string(f.Value) }

// Set parses s with greenops.ParseRoundingMode.
func (f *RoundingFlag) Set(s string) error {
	m, err := greenops.ParseRoundingMode(s)
	if err != nil {
		return err
	}
	f.Value = m
	return nil
}

// Type names the flag value in help output.
func (f *RoundingFlag) Type() string { return "mode" }

// OutputFlag is a pflag.Value accepting table, json or ndjson.
type OutputFlag struct {
	Value string
}

var _ pflag.Value = (*OutputFlag)(nil)

func (f *OutputFlag) String() string { return f.Value }

// Set accepts a supported output format, case-insensitively.
func (f *OutputFlag) Set(s string) error {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		f.Value = v
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or ndjson)", s)
	}
}

// Type names the flag value in help output.
func (f *OutputFlag) Type() string { return "format" }

// resolve returns the flag value, or the configured default when unset.
func (f *OutputFlag) resolve() string {
	if f.Value != "" {
		return f.Value
	}
	return config.GetDefaultOutputFormat()
}

// addOutputFlag registers --output/-o on fs.
func addOutputFlag(fs *pflag.FlagSet, f *OutputFlag) {
	fs.VarP(f, "output", "o", "output format: table, json or ndjson (default from config)")
}
