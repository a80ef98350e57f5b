package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/questionbank"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/components"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

// renderQuestionView renders the active question, plus feedback once
// answered in standard mode.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q := s.question
	pos := s.s.Position()
	verify := s.s.Options().Mode == sess.ModeVerify

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Category)

	right := fmt.Sprintf("Q %d/%d", pos.Number, pos.Total)
	if !verify {
		right += fmt.Sprintf("  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			pos.Score)
	}
	if pos.Skipped > 0 {
		right += fmt.Sprintf("  skipped %d", pos.Skipped)
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	cw := min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View(cw)))

	if s.outcome != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*s.outcome, width, cw))
	}

	return b.String()
}

// renderFeedback renders the standard-mode result for the last answer.
func renderFeedback(o sess.AnswerOutcome, width, cw int) string {
	var b strings.Builder

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if o.Correct {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
		b.WriteString("\n")
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Incorrect"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Correct answer: %s) %s", questionbank.OptionLetter(o.CorrectIndex), o.CorrectOption)))
		b.WriteString("\n")
		if o.Explanation != "" {
			b.WriteString("\n")
			exp := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(o.Explanation)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(c components.Confirm, width int) string {
	return "\n\n\n" + c.View(width)
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
