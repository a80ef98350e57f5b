package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screen"
	"github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/layout"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

// SummaryScreen displays the session summary. In verify mode it also lists
// every answer with the correct one.
type SummaryScreen struct {
	summary session.Summary
	saveErr error
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. saveErr, when set, is shown as a warning
// that history could not be written.
func New(summary session.Summary, saveErr error) *SummaryScreen {
	return &SummaryScreen{summary: summary, saveErr: saveErr}
}

// Summary returns the summary being shown.
func (s *SummaryScreen) Summary() session.Summary {
	return s.summary
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
	if len(s.summary.VerifyLog) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.summary.VerifyLog)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title := "Session complete!"
	if !sum.Completed {
		title = "Session ended early"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n")

	filter := session.Options{Category: sum.Category, ReviewOnly: sum.ReviewOnly}.FilterLabel()
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %s mode · %s", filter, sum.Mode, formatDuration(sum))))
	b.WriteString("\n\n")

	accuracy := "-"
	if sum.Answered > 0 {
		accuracy = fmt.Sprintf("%.0f%%", sum.Accuracy*100)
	}
	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %s        Skipped: %d",
		sum.Score, sum.Answered, accuracy, sum.Skipped)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(
			fmt.Sprintf("History could not be saved: %v", s.saveErr)))
		b.WriteString("\n")
	}

	if len(sum.VerifyLog) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderVerifyLog(width, height-lipgloss.Height(b.String())-1))
	}

	return b.String()
}

// renderVerifyLog lists answers from the scroll offset down, as many as
// fit in height.
func (s *SummaryScreen) renderVerifyLog(width, height int) string {
	cw := min(width-8, 76)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(cw, 0)))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answers")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	used := 2
	for i := s.offset; i < len(s.summary.VerifyLog); i++ {
		block := renderEntry(i+1, s.summary.VerifyLog[i], cw)
		h := lipgloss.Height(block) + 1
		if used+h > height && i > s.offset {
			more := fmt.Sprintf("… %d more", len(s.summary.VerifyLog)-i)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(more)))
			break
		}
		used += h
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderEntry(n int, e session.VerifyEntry, cw int) string {
	q := e.Question
	mark := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓")
	if !e.Correct {
		mark = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("✗")
	}

	lines := []string{
		lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(fmt.Sprintf("%s %d. %s", mark, n, q.Prompt)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("    You: %s) %s", questionbank.OptionLetter(e.Choice), q.Options[e.Choice])),
	}
	if !e.Correct {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("    Answer: %s) %s", questionbank.OptionLetter(q.CorrectIndex), q.CorrectOption())))
		if q.Explanation != "" {
			lines = append(lines, lipgloss.NewStyle().Width(cw).PaddingLeft(4).Foreground(theme.TextDim).Render(q.Explanation))
		}
	}
	return strings.Join(lines, "\n")
}

func formatDuration(sum session.Summary) string {
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
