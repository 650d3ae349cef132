package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

func sampleFootprint() greenops.Footprint {
	return greenops.Footprint{
		Region:         uae,
		DietType:       factors.DietMixed,
		Transportation: 1.83,
		Electricity:    1.98,
		Diet:           1.64,
		Waste:          0.42,
		Total:          5.87,
		TreesRequired:  266.82,
	}
}

func TestRenderFootprintDelta(t *testing.T) {
	tests := []struct {
		name     string
		delta    float64
		wantSign string
		wantIcon string
	}{
		{name: "increase", delta: 0.42, wantSign: "+0.42", wantIcon: IconArrowUp},
		{name: "decrease", delta: -1.5, wantSign: "-1.50", wantIcon: IconArrowDown},
		{name: "no change", delta: 0, wantSign: "0.00", wantIcon: IconArrowRight},
		{name: "rounds to zero", delta: 0.001, wantSign: "0.00", wantIcon: IconArrowRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderFootprintDelta(tt.delta)
			assert.Contains(t, got, tt.wantSign)
			assert.Contains(t, got, tt.wantIcon)
		})
	}
}

func TestRenderFootprintHeader(t *testing.T) {
	got := RenderFootprintHeader()
	assert.Contains(t, got, "Carbon Footprint Calculator")
	assert.Contains(t, got, "tonnes of CO2")
}

func TestRenderInputTable(t *testing.T) {
	m := newTestModel(t)

	t.Run("focused choice shows cycling markers", func(t *testing.T) {
		got := RenderInputTable(m.rows, regionRow, false, "")
		assert.Contains(t, got, "Your Activities:")
		assert.Contains(t, got, "‹ United Arab Emirates ›")
		assert.Contains(t, got, "kWh/month")
		assert.Contains(t, got, "0-1000 typical")
		assert.Contains(t, got, "Calculate")
	})

	t.Run("editing shows the input view", func(t *testing.T) {
		got := RenderInputTable(m.rows, distanceRow, true, "EDITING")
		assert.Contains(t, got, "> ")
		assert.Contains(t, got, "EDITING")
	})
}

func TestRenderBreakdown(t *testing.T) {
	got := RenderBreakdown(sampleFootprint(), false)

	assert.Contains(t, got, "Results:")
	assert.Contains(t, got, "Transportation: 1.83 tonnes CO2 per year")
	assert.Contains(t, got, "Electricity: 1.98 tonnes CO2 per year")
	assert.Contains(t, got, "Diet (Mixed diet): 1.64 tonnes CO2 per year")
	assert.Contains(t, got, "Waste: 0.42 tonnes CO2 per year")
	assert.Contains(t, got, "Your total carbon footprint is: 5.87 tonnes CO2 per year")
	assert.Contains(t, got, "266.82 trees")
	assert.NotContains(t, got, "recalculate")

	assert.Contains(t, RenderBreakdown(sampleFootprint(), true), "press c to recalculate")
}

func TestRenderShareBar(t *testing.T) {
	assert.Equal(t, barWidth, strings.Count(renderShareBar(0, 0), "░"))
	assert.Equal(t, barWidth, strings.Count(renderShareBar(5, 5), "█"))
	assert.Equal(t, barWidth/2, strings.Count(renderShareBar(1, 2), "█"))
}

func TestRenderEquivalencies(t *testing.T) {
	out, err := greenops.FootprintEquivalencies(sampleFootprint())
	assert.NoError(t, err)

	got := RenderEquivalencies(out)
	assert.Contains(t, got, "Equivalent to driving")
	assert.Contains(t, got, "trees for a year")
	assert.Contains(t, got, "days of home electricity")

	assert.Empty(t, RenderEquivalencies(greenops.EquivalencyOutput{IsEmpty: true}))
}

func TestRenderComparison(t *testing.T) {
	got := RenderComparison(5.87, 6.29)
	assert.Contains(t, got, "Previous:")
	assert.Contains(t, got, "5.87 t")
	assert.Contains(t, got, "6.29 t")
	assert.Contains(t, got, "+0.42")
}

func TestRenderCalculatorHelp(t *testing.T) {
	assert.Contains(t, RenderCalculatorHelp(false), "c: Calculate")
	assert.Contains(t, RenderCalculatorHelp(true), "Esc: Cancel edit")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "United ...", truncate("United Arab Emirates", 10))
	assert.Equal(t, "Uni", truncate("United", 3))
}
