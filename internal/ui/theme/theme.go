package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette for a dark terminal background.
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#FACC15") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Accuracy bands. Below Weak a category counts as weak, from Strong up as
// solid.
const (
	Weak   = 0.5
	Strong = 0.8
)

// AccuracyColor maps an accuracy in [0, 1] to red, amber or green.
func AccuracyColor(acc float64) color.Color {
	switch {
	case acc < Weak:
		return Error
	case acc < Strong:
		return Accent
	}
	return Success
}

// Confirm buttons.
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 2)
)
