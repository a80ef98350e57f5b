package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/ui/theme"
)

// AccuracyBar draws a labelled bar for correct/attempts, colored by
// accuracy band. A row with no attempts shows an empty bar and a dash.
type AccuracyBar struct {
	Label    string
	Correct  int
	Attempts int
	Width    int
}

// NewAccuracyBar creates a bar that fills width cells including the label.
func NewAccuracyBar(label string, correct, attempts, width int) AccuracyBar {
	return AccuracyBar{Label: label, Correct: correct, Attempts: attempts, Width: width}
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (a AccuracyBar) Accuracy() float64 {
	if a.Attempts == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempts)
}

// View renders the bar.
func (a AccuracyBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(a.Label) + "  "

	pct := "   -"
	if a.Attempts > 0 {
		pct = fmt.Sprintf("%3.0f%%", a.Accuracy()*100)
	}
	pct = "  " + pct

	barWidth := max(a.Width-lipgloss.Width(label)-len(pct), 4)
	filled := min(int(float64(barWidth)*a.Accuracy()), barWidth)

	fill := theme.AccuracyColor(a.Accuracy())
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
