// Package stats shows answer statistics and lets the user reset them.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/screen"
	"github.com/abhisek/linuxplus/internal/ui/components"
	"github.com/abhisek/linuxplus/internal/ui/layout"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

const (
	confirmClearID = "clear-stats"
	weakestShown   = 5
)

// StatsScreen shows totals, per-category accuracy and the weakest questions.
type StatsScreen struct {
	svc     engine.Service
	confirm *components.Confirm
	status  string
	isError bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)
var _ screen.EscapeHandler = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc engine.Service) *StatsScreen {
	return &StatsScreen{svc: svc}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

// HandlesEscape keeps Esc inside the screen while the clear prompt is open.
func (s *StatsScreen) HandlesEscape() bool {
	return s.confirm != nil
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "Y/N", Description: "Answer"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return []layout.KeyHint{
		{Key: "C", Description: "Clear"},
		{Key: "P", Description: "Prune review"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ConfirmMsg:
		if msg.ID != confirmClearID {
			return s, nil
		}
		s.confirm = nil
		if msg.Yes {
			s.clear()
		}
		return s, nil

	case tea.KeyMsg:
		if s.confirm != nil {
			c, cmd := s.confirm.Update(msg)
			s.confirm = &c
			return s, cmd
		}
		s.status = ""
		switch msg.String() {
		case "c", "C":
			c := components.NewConfirm(confirmClearID,
				"Clear all statistics?",
				"Attempts, accuracy and the review list are reset. This cannot be undone.",
				"Yes, clear", "No")
			s.confirm = &c
		case "p", "P":
			s.prune()
		}
	}
	return s, nil
}

func (s *StatsScreen) clear() {
	if err := s.svc.ClearStatistics(); err != nil {
		s.setError(err)
		return
	}
	s.status, s.isError = "Statistics cleared.", false
}

func (s *StatsScreen) prune() {
	removed, err := s.svc.PruneReview()
	if err != nil {
		s.setError(err)
		return
	}
	if len(removed) == 0 {
		s.status, s.isError = "Review list is already up to date.", false
		return
	}
	s.status, s.isError = fmt.Sprintf("Pruned %d review entries.", len(removed)), false
}

func (s *StatsScreen) setError(err error) {
	s.status, s.isError = err.Error(), true
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.confirm != nil {
		return components.Frame(s.confirm.View(cw), width, height)
	}

	st := s.svc.Statistics()
	var sections []string
	sections = append(sections, renderTotals(st))
	sections = append(sections, renderCategories(st, cw))
	if weak := s.svc.WeakestQuestions(weakestShown); len(weak) > 0 {
		sections = append(sections, renderWeakest(weak, cw))
	}
	if s.status != "" {
		color := theme.Success
		if s.isError {
			color = theme.Error
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(color).Render(s.status))
	}
	return components.Frame(components.Card(strings.Join(sections, "\n\n"), cw), width, height)
}

func renderTotals(st engine.Statistics) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	accuracy := "-"
	if st.TotalAttempts > 0 {
		accuracy = fmt.Sprintf("%.0f%%", st.Accuracy*100)
	}
	lines := []string{
		dim.Render("Answered  ") + val.Render(fmt.Sprintf("%d", st.TotalAttempts)) +
			dim.Render(fmt.Sprintf("  (%d correct, %s)", st.TotalCorrect, accuracy)),
		dim.Render("Seen      ") + val.Render(fmt.Sprintf("%d", st.QuestionsSeen)) +
			dim.Render(fmt.Sprintf(" of %d questions", st.BankSize)),
		dim.Render("Review    ") + val.Render(fmt.Sprintf("%d", st.ReviewCount)),
	}
	if st.StaleReview > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("%d review entries are no longer in the bank. Press P to prune.", st.StaleReview)))
	}
	return strings.Join(lines, "\n")
}

func renderCategories(st engine.Statistics, cw int) string {
	labelWidth := 0
	for _, row := range st.Categories {
		labelWidth = max(labelWidth, lipgloss.Width(row.Name))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("By category"))
	for _, row := range st.Categories {
		label := row.Name + strings.Repeat(" ", labelWidth-lipgloss.Width(row.Name))
		bar := components.NewAccuracyBar(label, row.Correct, row.Attempts, cw-12)
		counts := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  %d/%d", row.Correct, row.Attempts))
		lines = append(lines, bar.View()+counts)
	}
	return strings.Join(lines, "\n")
}

func renderWeakest(weak []engine.QuestionSummary, cw int) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Weakest questions"))
	for _, q := range weak {
		mark := " "
		if q.InReview {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("●")
		}
		pct := fmt.Sprintf("%3.0f%%", q.Accuracy*100)
		prompt := truncate(q.Prompt, cw-14)
		lines = append(lines, fmt.Sprintf("%s %s  %s", mark,
			lipgloss.NewStyle().Foreground(theme.AccuracyColor(q.Accuracy)).Render(pct),
			lipgloss.NewStyle().Foreground(theme.Text).Render(prompt)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
