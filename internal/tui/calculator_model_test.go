package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

const uae = "United Arab Emirates"

// Row indexes in display order.
const (
	regionRow = iota
	dietRow
	distanceRow
	electricityRow
	wasteRow
	mealsRow
	calculateRow
)

func referenceActivity() greenops.Activity {
	return greenops.Activity{
		Region:                 uae,
		Diet:                   factors.DietMixed,
		DistanceKmPerDay:       20,
		ElectricityKWhPerMonth: 300,
		WasteKgPerWeek:         10,
		MealsPerDay:            3,
	}
}

func newTestModel(t *testing.T) *CalculatorModel {
	t.Helper()
	calc := greenops.NewCalculator(factors.Default())
	return NewCalculatorModel(context.Background(), calc.Regions(), referenceActivity(), calc.CalculateContext)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// press sends msg and, when the model returns a command, runs it and feeds
// the resulting message back, mimicking the Bubble Tea runtime for one hop.
func press(t *testing.T, m *CalculatorModel, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if _, ok := out.(footprintCalculatedMsg); ok {
		m.Update(out)
	}
	return out
}

func TestNewCalculatorModel(t *testing.T) {
	t.Run("rows mirror the initial activity", func(t *testing.T) {
		m := newTestModel(t)

		require.Len(t, m.rows, 7)
		assert.Equal(t, CalculatorStateEditing, m.State())
		assert.Equal(t, uae, m.rows[regionRow].Value)
		assert.Equal(t, "Mixed diet", m.rows[dietRow].Value)
		assert.Equal(t, "20", m.rows[distanceRow].Value)
		assert.Equal(t, "300", m.rows[electricityRow].Value)
		assert.Equal(t, "10", m.rows[wasteRow].Value)
		assert.Equal(t, "3", m.rows[mealsRow].Value)
		assert.Equal(t, RowAction, m.rows[calculateRow].Kind)
		assert.Equal(t, "0-100 typical", m.rows[distanceRow].Hint)

		activity, err := m.Activity()
		require.NoError(t, err)
		assert.Equal(t, referenceActivity(), activity)

		_, ok := m.GetFootprint()
		assert.False(t, ok)
		assert.Nil(t, m.Init())
	})

	t.Run("unknown initial region is kept", func(t *testing.T) {
		a := referenceActivity()
		a.Region = "Atlantis"
		m := NewCalculatorModel(context.Background(), []string{uae}, a, nil)

		assert.Equal(t, []string{"Atlantis", uae}, m.rows[regionRow].Options)
		assert.Equal(t, "Atlantis", m.rows[regionRow].Value)
	})

	t.Run("empty initial values get defaults", func(t *testing.T) {
		m := NewCalculatorModel(context.Background(), []string{uae}, greenops.Activity{}, nil)

		assert.Equal(t, uae, m.rows[regionRow].Value)
		assert.Equal(t, "Mixed diet", m.rows[dietRow].Value)
		assert.Equal(t, "0", m.rows[distanceRow].Value)
	})
}

func TestCalculatorModel_Calculate(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, CalculatorStateCalculating, m.State())
	assert.Contains(t, m.View(), "Calculating footprint")

	m.Update(cmd())

	fp, ok := m.GetFootprint()
	require.True(t, ok)
	assert.InDelta(t, 5.87, fp.Total, 1e-9)
	assert.InDelta(t, 266.82, fp.TreesRequired, 1e-9)
	assert.Equal(t, CalculatorStateEditing, m.State())
	require.NoError(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "Transportation: 1.83 tonnes CO2 per year")
	assert.Contains(t, view, "Diet (Mixed diet): 1.64 tonnes CO2 per year")
	assert.Contains(t, view, "Your total carbon footprint is: 5.87 tonnes CO2 per year")
	assert.Contains(t, view, "approximately 266.82 trees")
	assert.Contains(t, view, "miles")
}

func TestCalculatorModel_EnterOnCalculateRow(t *testing.T) {
	m := newTestModel(t)
	for range calculateRow {
		m.Update(key(tea.KeyDown))
	}
	assert.Equal(t, calculateRow, m.focusedRow)

	press(t, m, key(tea.KeyEnter))

	_, ok := m.GetFootprint()
	assert.True(t, ok)
}

func TestCalculatorModel_Navigation(t *testing.T) {
	m := newTestModel(t)

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focusedRow, "focus stops at the top")

	m.Update(key(tea.KeyDown))
	m.Update(keyRunes("j"))
	assert.Equal(t, distanceRow, m.focusedRow)

	m.Update(keyRunes("k"))
	assert.Equal(t, dietRow, m.focusedRow)

	for range 10 {
		m.Update(key(tea.KeyTab))
	}
	assert.Equal(t, calculateRow, m.focusedRow, "focus stops at the bottom")
}

func TestCalculatorModel_CycleChoices(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(tea.KeyDown))

	m.Update(key(tea.KeyRight))
	assert.Equal(t, "Meat-heavy diet", m.rows[dietRow].Value)

	m.Update(key(tea.KeyRight))
	assert.Equal(t, "Plant-based", m.rows[dietRow].Value, "cycling wraps around")

	m.Update(key(tea.KeyLeft))
	assert.Equal(t, "Meat-heavy diet", m.rows[dietRow].Value)

	m.Update(key(tea.KeyEnter))
	assert.Equal(t, "Plant-based", m.rows[dietRow].Value)

	// Left/right are ignored on numeric rows.
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyRight))
	assert.Equal(t, "20", m.rows[distanceRow].Value)

	press(t, m, keyRunes("c"))
	fp, ok := m.GetFootprint()
	require.True(t, ok)
	assert.Equal(t, factors.DietPlantBased, fp.DietType)
	assert.InDelta(t, 0.55, fp.Diet, 1e-9)
}

func TestCalculatorModel_EditNumber(t *testing.T) {
	m := newTestModel(t)
	press(t, m, keyRunes("c"))

	m.focusedRow = distanceRow
	m.Update(key(tea.KeyEnter))
	require.True(t, m.editMode)
	assert.Equal(t, "20", m.input.Value())
	assert.Contains(t, m.View(), "Save value")

	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyBackspace))
	m.Update(keyRunes("40"))
	assert.Equal(t, "40", m.input.Value())

	m.Update(key(tea.KeyEnter))
	assert.False(t, m.editMode)
	assert.Equal(t, "40", m.rows[distanceRow].Value)
	assert.True(t, m.stale)
	assert.Contains(t, m.View(), "press c to recalculate")

	press(t, m, keyRunes("c"))
	fp, ok := m.GetFootprint()
	require.True(t, ok)
	assert.InDelta(t, 3.65, fp.Transportation, 1e-9)
	assert.False(t, m.stale)
	assert.Contains(t, m.View(), "Change:")
}

func TestCalculatorModel_EditRejectsInvalidValue(t *testing.T) {
	m := newTestModel(t)
	m.focusedRow = wasteRow
	m.Update(key(tea.KeyEnter))

	m.input.SetValue("-3")
	m.Update(key(tea.KeyEnter))

	assert.True(t, m.editMode, "stays in edit mode")
	require.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)
	assert.Equal(t, "10", m.rows[wasteRow].Value)
	assert.Contains(t, m.View(), "Error: invalid quantity")

	m.Update(key(tea.KeyEsc))
	assert.False(t, m.editMode)
	require.NoError(t, m.Err())
	assert.Equal(t, "10", m.rows[wasteRow].Value)
}

func TestCalculatorModel_MealsMustBeWhole(t *testing.T) {
	m := newTestModel(t)
	m.focusedRow = mealsRow
	m.Update(key(tea.KeyEnter))

	m.input.SetValue("2.5")
	m.Update(key(tea.KeyEnter))
	require.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)

	m.input.SetValue("2")
	m.Update(key(tea.KeyEnter))
	require.NoError(t, m.Err())
	assert.Equal(t, "2", m.rows[mealsRow].Value)
}

func TestCalculatorModel_ErrorsStayInline(t *testing.T) {
	t.Run("calculation error", func(t *testing.T) {
		calcErr := fmt.Errorf("%w: %q", greenops.ErrUnknownRegion, uae)
		m := NewCalculatorModel(context.Background(), []string{uae}, referenceActivity(),
			func(context.Context, greenops.Activity) (greenops.Footprint, error) {
				return greenops.Footprint{}, calcErr
			})

		press(t, m, keyRunes("c"))

		assert.Equal(t, CalculatorStateError, m.State())
		require.ErrorIs(t, m.Err(), greenops.ErrUnknownRegion)
		view := m.View()
		assert.Contains(t, view, "Error: unknown region")
		assert.Contains(t, view, "Your Activities", "form stays visible")

		m.Update(key(tea.KeyDown))
		assert.Equal(t, dietRow, m.focusedRow, "session stays interactive")
	})

	t.Run("form error returns no command", func(t *testing.T) {
		m := newTestModel(t)
		m.rows[electricityRow].Value = "lots"

		_, cmd := m.Update(keyRunes("c"))
		assert.Nil(t, cmd)
		require.ErrorIs(t, m.Err(), greenops.ErrInvalidQuantity)
		assert.Contains(t, m.Err().Error(), "electricity")
	})

	t.Run("missing calculator", func(t *testing.T) {
		m := NewCalculatorModel(context.Background(), []string{uae}, referenceActivity(), nil)

		_, cmd := m.Update(keyRunes("c"))
		assert.Nil(t, cmd)
		require.Error(t, m.Err())
		assert.True(t, errors.Is(m.Err(), errNoCalculator))
	})

	t.Run("success clears a previous error", func(t *testing.T) {
		m := newTestModel(t)
		m.rows[electricityRow].Value = "lots"
		m.Update(keyRunes("c"))
		require.Error(t, m.Err())

		m.rows[electricityRow].Value = "300"
		press(t, m, keyRunes("c"))
		require.NoError(t, m.Err())
		assert.Equal(t, CalculatorStateEditing, m.State())
	})
}

func TestCalculatorModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyRunes("q")},
		{name: "ctrl+c", msg: key(tea.KeyCtrlC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, CalculatorStateQuitting, m.State())
			assert.Empty(t, m.View())
		})
	}

	t.Run("q while editing is text", func(t *testing.T) {
		m := newTestModel(t)
		m.focusedRow = distanceRow
		m.Update(key(tea.KeyEnter))
		m.Update(keyRunes("q"))
		assert.NotEqual(t, CalculatorStateQuitting, m.State())
	})
}

func TestCalculatorModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestCalculatorModel_IgnoresKeysWhileLoading(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 0, m.focusedRow)

	_, again := m.Update(keyRunes("c"))
	assert.Nil(t, again)
}

func TestCalculatorModel_EquivalencyErrorLeavesThemEmpty(t *testing.T) {
	m := newTestModel(t)
	press(t, m, keyRunes("c"))
	require.False(t, m.equivalencies.IsEmpty)
	require.Contains(t, m.View(), "Equivalent to driving")

	m.Update(footprintCalculatedMsg{footprint: greenops.Footprint{Region: uae, Total: math.Inf(1)}})

	assert.Equal(t, CalculatorStateEditing, m.State())
	require.NoError(t, m.Err())
	assert.True(t, m.equivalencies.IsEmpty)
	assert.Empty(t, m.equivalencies.Results)
	assert.NotContains(t, m.View(), "Equivalent to driving")
}
