package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every footprint view.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("63")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("212")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorSpinner   = lipgloss.Color("205")
)

// Status icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconLeaf       = "🌿"
)

// Shared text styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	BoxStyle      = lipgloss.NewStyle()
)
