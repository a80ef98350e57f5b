package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/screen"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/store"
	"github.com/abhisek/linuxplus/internal/ui/layout"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

// HistoryScreen displays recently finished sessions from the event log.
type HistoryScreen struct {
	svc      engine.Service
	sessions []store.SessionSummaryRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc engine.Service) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.svc.RecentSessions(sessionLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Recent Sessions"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions recorded yet. Finished quizzes show up here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+summaryLine(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detailLine(rec))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func summaryLine(rec store.SessionSummaryRecord) string {
	dateStr := rec.Timestamp.Local().Format("Jan 02, 2006 15:04")
	mins := rec.DurationSecs / 60
	secs := rec.DurationSecs % 60

	// QuestionsServed includes skips.
	answered := rec.QuestionsServed - rec.Skipped
	accuracy := "-"
	if answered > 0 {
		accuracy = fmt.Sprintf("%.0f%%", float64(rec.CorrectAnswers)/float64(answered)*100)
	}
	return fmt.Sprintf("%s  %d:%02d  %d/%d correct  %s",
		dateStr, mins, secs, rec.CorrectAnswers, answered, accuracy)
}

func detailLine(rec store.SessionSummaryRecord) string {
	filter := sess.Options{Category: rec.Category, ReviewOnly: rec.ReviewOnly}.FilterLabel()
	how := "finished"
	if rec.Action == store.ActionQuit {
		how = "ended early"
	}
	return fmt.Sprintf("    %s · %s mode · %d skipped · %s", filter, rec.Mode, rec.Skipped, how)
}
