package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

// CalculatorState represents the current state of the calculator TUI.
type CalculatorState int

const (
	// CalculatorStateEditing indicates the user is editing inputs.
	CalculatorStateEditing CalculatorState = iota
	// CalculatorStateCalculating indicates a calculation is in progress.
	CalculatorStateCalculating
	// CalculatorStateQuitting indicates the application is exiting.
	CalculatorStateQuitting
	// CalculatorStateError indicates the last calculation failed. The form
	// stays editable.
	CalculatorStateError
)

// RowKind selects how a row reacts to keys.
type RowKind int

const (
	// RowChoice cycles through Options with left/right.
	RowChoice RowKind = iota
	// RowNumber is edited as text with enter.
	RowNumber
	// RowAction runs the calculation with enter.
	RowAction
)

// InputRow is one line of the input form.
type InputRow struct {
	Key     string
	Label   string
	Unit    string
	Hint    string
	Value   string
	Kind    RowKind
	Options []string
}

// CalculateFunc computes a footprint for the form's activity.
type CalculateFunc func(context.Context, greenops.Activity) (greenops.Footprint, error)

// footprintCalculatedMsg is sent when a calculation completes.
type footprintCalculatedMsg struct {
	footprint greenops.Footprint
	err       error
}

// Default dimensions for the calculator model.
const (
	calculatorDefaultWidth  = 80
	calculatorDefaultHeight = 24
	inputCharLimit          = 16
	inputWidth              = 12
)

var errNoCalculator = errors.New("no calculator configured")

// CalculatorModel is the Bubble Tea model for the interactive calculator.
type CalculatorModel struct {
	ctx context.Context

	// Input form
	rows       []InputRow
	focusedRow int
	editMode   bool
	input      textinput.Model

	// Results
	footprint     *greenops.Footprint
	previousTotal *float64
	equivalencies greenops.EquivalencyOutput
	stale         bool

	// State management
	state   CalculatorState
	loading bool
	err     error

	// Display dimensions
	width  int
	height int

	calculateFn CalculateFunc
}

// NewCalculatorModel creates a CalculatorModel whose form starts at initial.
// regions populates the region selector; an initial region missing from
// regions is kept as the first option so the calculator can report it.
func NewCalculatorModel(
	ctx context.Context,
	regions []string,
	initial greenops.Activity,
	calculateFn CalculateFunc,
) *CalculatorModel {
	ti := textinput.New()
	ti.CharLimit = inputCharLimit
	ti.Width = inputWidth
	ti.Prompt = ""

	m := &CalculatorModel{
		ctx:         ctx,
		input:       ti,
		state:       CalculatorStateEditing,
		width:       calculatorDefaultWidth,
		height:      calculatorDefaultHeight,
		calculateFn: calculateFn,
	}
	m.initializeRows(regions, initial)
	return m
}

// initializeRows builds the form rows in display order.
func (m *CalculatorModel) initializeRows(regions []string, initial greenops.Activity) {
	regionOptions := append([]string(nil), regions...)
	if initial.Region != "" && indexOf(regionOptions, initial.Region) < 0 {
		regionOptions = append([]string{initial.Region}, regionOptions...)
	}
	region := initial.Region
	if region == "" && len(regionOptions) > 0 {
		region = regionOptions[0]
	}

	dietOptions := make([]string, 0, len(factors.DietTypes()))
	for _, d := range factors.DietTypes() {
		dietOptions = append(dietOptions, string(d))
	}
	diet := string(initial.Diet)
	if diet == "" {
		diet = string(factors.DietMixed)
	}

	m.rows = []InputRow{
		{Key: greenops.FieldRegion, Label: "Region", Value: region, Kind: RowChoice, Options: regionOptions},
		{Key: greenops.FieldDiet, Label: "Diet", Value: diet, Kind: RowChoice, Options: dietOptions},
		{
			Key: greenops.FieldDistance, Label: "Distance", Unit: "km/day", Kind: RowNumber,
			Value: formatQuantity(initial.DistanceKmPerDay),
			Hint:  fmt.Sprintf("0-%d typical", greenops.HintMaxDistanceKmPerDay),
		},
		{
			Key: greenops.FieldElectricity, Label: "Electricity", Unit: "kWh/month", Kind: RowNumber,
			Value: formatQuantity(initial.ElectricityKWhPerMonth),
			Hint:  fmt.Sprintf("0-%d typical", greenops.HintMaxElectricityKWhPerMonth),
		},
		{
			Key: greenops.FieldWaste, Label: "Waste", Unit: "kg/week", Kind: RowNumber,
			Value: formatQuantity(initial.WasteKgPerWeek),
			Hint:  fmt.Sprintf("0-%d typical", greenops.HintMaxWasteKgPerWeek),
		},
		{
			Key: greenops.FieldMeals, Label: "Meals", Unit: "per day", Kind: RowNumber,
			Value: strconv.Itoa(initial.MealsPerDay),
		},
		{Key: "calculate", Label: "Calculate", Kind: RowAction},
	}
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}

// Init initializes the model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case footprintCalculatedMsg:
		return m.handleCalculated(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.editMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *CalculatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		return m.handleEditModeKey(msg)
	}
	if m.loading {
		if msg.Type == tea.KeyCtrlC {
			m.state = CalculatorStateQuitting
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = CalculatorStateQuitting
			return m, tea.Quit
		case "c":
			return m, m.triggerCalculation()
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		}
		return m, nil

	case tea.KeyUp, tea.KeyShiftTab:
		m.moveFocus(-1)
		return m, nil

	case tea.KeyDown, tea.KeyTab:
		m.moveFocus(1)
		return m, nil

	case tea.KeyLeft:
		m.cycleChoice(-1)
		return m, nil

	case tea.KeyRight:
		m.cycleChoice(1)
		return m, nil

	case tea.KeyEnter:
		return m.handleEnter()
	}

	return m, nil
}

func (m *CalculatorModel) moveFocus(delta int) {
	next := m.focusedRow + delta
	if next >= 0 && next < len(m.rows) {
		m.focusedRow = next
	}
}

// cycleChoice moves the focused choice row to the neighbouring option,
// wrapping at either end.
func (m *CalculatorModel) cycleChoice(delta int) {
	row := &m.rows[m.focusedRow]
	if row.Kind != RowChoice || len(row.Options) == 0 {
		return
	}
	i := indexOf(row.Options, row.Value)
	if i < 0 {
		i = 0
	}
	n := len(row.Options)
	next := row.Options[((i+delta)%n+n)%n]
	if next != row.Value {
		row.Value = next
		m.stale = m.footprint != nil
	}
}

func (m *CalculatorModel) handleEnter() (tea.Model, tea.Cmd) {
	row := m.rows[m.focusedRow]
	switch row.Kind {
	case RowAction:
		return m, m.triggerCalculation()
	case RowChoice:
		m.cycleChoice(1)
		return m, nil
	case RowNumber:
		m.editMode = true
		m.input.SetValue(row.Value)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

// handleEditModeKey processes keyboard input while editing a numeric field.
//
//nolint:exhaustive // Only handling relevant key types for text editing.
func (m *CalculatorModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = CalculatorStateQuitting
		return m, tea.Quit

	case tea.KeyEnter:
		row := &m.rows[m.focusedRow]
		value := m.input.Value()
		if err := validateField(row.Key, value); err != nil {
			m.err = err
			return m, nil
		}
		if value != row.Value {
			row.Value = value
			m.stale = m.footprint != nil
		}
		m.err = nil
		m.editMode = false
		m.input.Blur()
		return m, nil

	case tea.KeyEsc:
		m.err = nil
		m.editMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func validateField(key, value string) error {
	if key == greenops.FieldMeals {
		_, err := greenops.ParseMeals(key, value)
		return err
	}
	_, err := greenops.ParseQuantity(key, value)
	return err
}

// fields returns the form values keyed by field name.
func (m *CalculatorModel) fields() map[string]string {
	out := make(map[string]string, len(m.rows))
	for _, row := range m.rows {
		if row.Kind != RowAction {
			out[row.Key] = row.Value
		}
	}
	return out
}

// Activity parses the current form values.
func (m *CalculatorModel) Activity() (greenops.Activity, error) {
	return greenops.ParseActivity(m.fields())
}

// triggerCalculation creates a command that runs the calculation. Form
// errors are shown inline and no command is returned.
func (m *CalculatorModel) triggerCalculation() tea.Cmd {
	activity, err := m.Activity()
	if err != nil {
		m.err = err
		m.state = CalculatorStateError
		return nil
	}
	if m.calculateFn == nil {
		m.err = errNoCalculator
		m.state = CalculatorStateError
		return nil
	}

	m.loading = true
	m.state = CalculatorStateCalculating

	// Capture references before the command runs off the update loop.
	ctx := m.ctx
	calculateFn := m.calculateFn

	return func() tea.Msg {
		fp, calcErr := calculateFn(ctx, activity)
		return footprintCalculatedMsg{footprint: fp, err: calcErr}
	}
}

// handleCalculated processes the result of a calculation.
func (m *CalculatorModel) handleCalculated(msg footprintCalculatedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		m.err = msg.err
		m.state = CalculatorStateError
		return m, nil
	}

	if m.footprint != nil {
		prev := m.footprint.Total
		m.previousTotal = &prev
	}
	fp := msg.footprint
	m.footprint = &fp
	eq, err := greenops.FootprintEquivalencies(fp)
	if err != nil {
		logging.FromContext(m.ctx).Warn().Err(err).
			Float64("total_t", fp.Total).
			Msg("equivalencies unavailable")
		eq = greenops.EquivalencyOutput{IsEmpty: true}
	}
	m.equivalencies = eq
	m.stale = false
	m.err = nil
	m.state = CalculatorStateEditing
	return m, nil
}

// View renders the current view.
func (m *CalculatorModel) View() string {
	if m.state == CalculatorStateQuitting {
		return ""
	}
	if m.loading {
		return RenderLoadingIndicator()
	}
	return m.renderFormView()
}

// renderFormView renders the input form and, once calculated, the results.
func (m *CalculatorModel) renderFormView() string {
	var output string

	output += RenderFootprintHeader()
	output += "\n\n"

	editView := ""
	if m.editMode {
		editView = m.input.View()
	}
	output += RenderInputTable(m.rows, m.focusedRow, m.editMode, editView)
	output += "\n"

	if m.err != nil {
		output += CriticalStyle.Render("Error: "+m.err.Error()) + "\n\n"
	}

	if m.footprint != nil {
		output += RenderBreakdown(*m.footprint, m.stale)
		output += "\n"
		if m.previousTotal != nil {
			output += RenderComparison(*m.previousTotal, m.footprint.Total)
			output += "\n\n"
		}
		if eq := RenderEquivalencies(m.equivalencies); eq != "" {
			output += eq
			output += "\n"
		}
		output += "\n"
	}

	output += RenderCalculatorHelp(m.editMode)

	if m.width > 0 {
		return BoxStyle.MaxWidth(m.width).Render(output)
	}
	return output
}

// State returns the current state.
func (m *CalculatorModel) State() CalculatorState {
	return m.state
}

// Err returns the error shown inline, if any.
func (m *CalculatorModel) Err() error {
	return m.err
}

// GetFootprint returns the last successful result.
func (m *CalculatorModel) GetFootprint() (greenops.Footprint, bool) {
	if m.footprint == nil {
		return greenops.Footprint{}, false
	}
	return *m.footprint, true
}
