package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/footprint/internal/greenops"
)

// Column width constants for the input form and breakdown.
const (
	inputLabelWidth = 14 // Width for the field label column
	inputValueWidth = 24 // Width for the value column
	inputUnitWidth  = 11 // Width for the unit column
	separatorWidth  = 60 // Width for horizontal separator lines
	barWidth        = 20 // Width of a full category share bar
	minTruncateLen  = 3  // Minimum length before truncation with ellipsis
)

// RenderFootprintDelta renders the change in total tonnes since the previous
// calculation with a sign and directional arrow.
//
// Returns a styled string with:
//   - "+" prefix and ↑ arrow for increases (warning color)
//   - ↓ arrow for decreases (OK color)
//   - → arrow for no change (muted color)
func RenderFootprintDelta(delta float64) string {
	rounded := greenops.RoundHalfUp.Round(delta)

	var icon, sign string
	var color lipgloss.Color

	switch {
	case rounded > 0:
		icon = IconArrowUp
		sign = "+"
		color = ColorWarning
	case rounded < 0:
		icon = IconArrowDown
		color = ColorOK
	default:
		icon = IconArrowRight
		color = ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s%s t %s", sign, greenops.FormatTonnes(rounded), icon))
}

// RenderFootprintHeader renders the title box.
func RenderFootprintHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(IconLeaf + " Carbon Footprint Calculator"))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render("Annual emissions in tonnes of CO2"))
	return sb.String()
}

// RenderInputTable renders the input form.
//
// Parameters:
//   - rows: form rows in display order
//   - focusedRow: index of the focused row
//   - editing: whether the focused row is being edited
//   - editView: rendered text input shown in place of the focused value
func RenderInputTable(rows []InputRow, focusedRow int, editing bool, editView string) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("Your Activities:"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	for i, row := range rows {
		focused := i == focusedRow
		if row.Kind == RowAction {
			sb.WriteString("\n")
			sb.WriteString(renderActionRow(row, focused))
		} else {
			value := row.Value
			if editing && focused {
				value = editView
			}
			sb.WriteString(renderInputRow(row, value, focused, editing && focused))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderInputRow renders a single form row.
func renderInputRow(row InputRow, value string, focused, editing bool) string {
	var sb strings.Builder

	switch {
	case editing:
		sb.WriteString("> ")
	case focused:
		sb.WriteString(IconArrowRight + " ")
	default:
		sb.WriteString("  ")
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	if focused {
		valueStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	}

	sb.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", inputLabelWidth, row.Label)))

	if row.Kind == RowChoice && focused && !editing {
		value = "‹ " + value + " ›"
	}
	if !editing {
		value = truncate(value, inputValueWidth)
	}
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", inputValueWidth, value)))

	if row.Unit != "" {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", inputUnitWidth, row.Unit)))
	}
	if row.Hint != "" {
		sb.WriteString(InfoStyle.Render(row.Hint))
	}

	return strings.TrimRight(sb.String(), " ")
}

// renderActionRow renders the Calculate button.
func renderActionRow(row InputRow, focused bool) string {
	style := lipgloss.NewStyle().
		Foreground(ColorValue).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)
	if focused {
		style = style.Foreground(ColorHighlight).Bold(true).BorderForeground(ColorHighlight)
	}
	return style.Render(row.Label)
}

// truncate truncates a string to the specified length with ellipsis.
// Uses rune-aware counting to properly handle multi-byte UTF-8 characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}

// RenderBreakdown renders the per-category lines with share bars, the total
// and the tree equivalence. stale marks results that no longer match the
// form.
func RenderBreakdown(fp greenops.Footprint, stale bool) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("Results:"))
	if stale {
		sb.WriteString(" ")
		sb.WriteString(WarningStyle.Render("(inputs changed, press c to recalculate)"))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	for _, ce := range fp.ByCategory() {
		sb.WriteString("  ")
		sb.WriteString(renderShareBar(ce.Tonnes, fp.Total))
		sb.WriteString(" ")
		sb.WriteString(LabelStyle.Render(greenops.CategoryLine(fp, ce.Category)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(ValueStyle.Render(greenops.TotalLine(fp)))
	sb.WriteString("\n")
	sb.WriteString(OKStyle.Render(greenops.TreesLine(fp)))
	sb.WriteString("\n")

	return sb.String()
}

// renderShareBar renders a fixed-width bar filled in proportion to part/total.
func renderShareBar(part, total float64) string {
	filled := 0
	if total > 0 {
		filled = int(part / total * barWidth)
	}
	filled = min(max(filled, 0), barWidth)

	bar := lipgloss.NewStyle().Foreground(ColorHighlight).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", barWidth-filled))
	return bar + rest
}

// RenderEquivalencies renders the relatable equivalencies, or nothing when
// the total is below the display threshold.
func RenderEquivalencies(out greenops.EquivalencyOutput) string {
	if out.IsEmpty || len(out.Results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(SubtleStyle.Render(out.DisplayText))
	sb.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	for _, r := range out.Results {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  ~%s %s", r.FormattedValue, r.Label)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderComparison renders the previous and current totals and the change
// between them.
func RenderComparison(previous, current float64) string {
	var sb strings.Builder

	sb.WriteString(LabelStyle.Render("Previous:  "))
	sb.WriteString(ValueStyle.Render(greenops.FormatTonnes(previous) + " t"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Current:   "))
	sb.WriteString(ValueStyle.Render(greenops.FormatTonnes(current) + " t"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Change:    "))
	sb.WriteString(RenderFootprintDelta(current - previous))

	return sb.String()
}

// RenderCalculatorHelp renders the keyboard shortcut help text.
func RenderCalculatorHelp(editing bool) string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if editing {
		return helpStyle.Render(strings.Join([]string{
			"Enter: Save value",
			"Esc: Cancel edit",
		}, " | "))
	}

	return helpStyle.Render(strings.Join([]string{
		"↑/↓: Navigate",
		"←/→: Change choice",
		"Enter: Edit",
		"c: Calculate",
		"q: Quit",
	}, " | "))
}

// RenderLoadingIndicator renders a loading indicator for a calculation.
func RenderLoadingIndicator() string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorSpinner).
		Bold(true)

	return loadingStyle.Render("Calculating footprint...")
}
