package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/greenops"
)

// setupCLITest isolates the config home and quiets logging.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(cli.EnvLogLevel, "error")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCmd runs the root command with args and returns combined output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

var referenceArgs = []string{
	"calculate",
	"--region", "United Arab Emirates",
	"--diet", "Mixed diet",
	"--distance", "20",
	"--electricity", "300",
	"--waste", "10",
	"--meals", "3",
}

func TestCalculate_Table(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, referenceArgs...)
	require.NoError(t, err)

	for _, want := range []string{
		"Region:    United Arab Emirates",
		"Rounding:  half-up",
		"CATEGORY",
		"7,300 km",
		"3,600 kWh",
		"1,095 meals",
		"520 kg",
		"1.83",
		"1.98",
		"1.64",
		"0.42",
		"Your total carbon footprint is: 5.87 tonnes CO2 per year",
		"approximately 266.82 trees in a year",
		"Equivalent to driving",
	} {
		assert.Contains(t, out, want)
	}
}

func TestCalculate_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, append(referenceArgs, "--output", "json")...)
	require.NoError(t, err)

	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 5.87, got.Total, 1e-9)
	assert.InDelta(t, 266.82, got.TreesRequired, 1e-9)
	assert.Equal(t, greenops.RoundHalfUp, got.Rounding)
	assert.Contains(t, out, `"equivalencies"`)
}

func TestCalculate_NDJSON(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, append(referenceArgs, "-o", "ndjson")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.InDelta(t, 5.87, got.Total, 1e-9)
}

func TestCalculate_HalfEven(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, append(referenceArgs, "--rounding", "half-even", "--output", "json")...)
	require.NoError(t, err)

	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 1.82, got.Transportation, 1e-9)
	assert.InDelta(t, 5.86, got.Total, 1e-9)
	assert.InDelta(t, 266.36, got.TreesRequired, 1e-9)
}

func TestCalculate_DefaultsFromConfig(t *testing.T) {
	setupCLITest(t)
	t.Setenv("FOOTPRINT_CALCULATOR__DIET", "plant")
	t.Setenv("FOOTPRINT_CALCULATOR__ROUNDING", "half-even")
	t.Setenv("FOOTPRINT_OUTPUT__DEFAULT_FORMAT", "json")

	out, err := executeCmd(t, "calculate", "--meals", "3")
	require.NoError(t, err)

	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "United Arab Emirates", got.Region)
	assert.Equal(t, "Plant-based", string(got.DietType))
	assert.Equal(t, greenops.RoundHalfEven, got.Rounding)
	assert.InDelta(t, 0.55, got.Diet, 1e-9)
}

func TestCalculate_ConfigFileFlag(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "footprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calculator:\n  diet: Meat-heavy diet\n"), 0o600))

	out, err := executeCmd(t, "--config", path, "calculate", "--meals", "3", "-o", "json")
	require.NoError(t, err)

	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 2.74, got.Diet, 1e-9)
}

func TestCalculate_BrokenConfigFileFlag(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "footprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calculator: [\n"), 0o600))

	_, err := executeCmd(t, "--config", path, "calculate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestCalculate_CustomFactors(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "factors.yaml")
	table := `schema_version: 1.0.0
regions:
  Testland:
    transportation: 1
    electricity: 1
    waste: 1
    diet:
      Plant-based: 1
      Mixed diet: 1
      Meat-heavy diet: 1
`
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	out, err := executeCmd(t, "calculate", "--factors", path, "--region", "Testland",
		"--distance", "10", "-o", "json")
	require.NoError(t, err)

	var got greenops.Footprint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 3.65, got.Total, 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"negative distance", []string{"--distance=-5"}, "invalid quantity: distance must be non-negative"},
		{"negative meals", []string{"--meals=-1"}, "invalid quantity: meals"},
		{"meals too large to annualize", []string{"--meals", "92233720368547758"}, "calculation overflow: meals"},
		{"unknown region", []string{"--region", "Atlantis"}, `unknown region: "Atlantis"`},
		{"region is case-sensitive", []string{"--region", "united arab emirates"}, "unknown region"},
		{"unknown diet", []string{"--diet", "keto"}, "unknown diet type"},
		{"unknown rounding", []string{"--rounding", "ceiling"}, "unknown rounding mode"},
		{"unknown output", []string{"--output", "xml"}, "unsupported output format"},
		{"non-numeric distance", []string{"--distance", "far"}, "invalid argument"},
		{"missing factors file", []string{"--factors", "/nonexistent/factors.yaml"}, "reading factor table"},
		{"unsupported factors format", []string{"--factors", "factors.txt"}, "unsupported factor table format"},
		{"positional args", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := executeCmd(t, append([]string{"calculate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"table", nil, "United Arab Emirates\n"},
		{"json", []string{"-o", "json"}, "{\n  \"regions\": [\n    \"United Arab Emirates\"\n  ]\n}\n"},
		{"ndjson", []string{"-o", "ndjson"}, "{\"region\":\"United Arab Emirates\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			out, err := executeCmd(t, append([]string{"regions"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRootCmd(t *testing.T) {
	setupCLITest(t)

	root := cli.NewRootCmd("v1.2.3")
	assert.Equal(t, "footprint", root.Use)
	assert.Equal(t, "v1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"calculate", "interactive", "serve", "regions", "factors", "config"} {
		assert.Contains(t, names, want)
	}

	out, err := executeCmd(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
