package home

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screen"
	"github.com/abhisek/linuxplus/internal/screens/history"
	"github.com/abhisek/linuxplus/internal/screens/picker"
	sessionscreen "github.com/abhisek/linuxplus/internal/screens/session"
	"github.com/abhisek/linuxplus/internal/screens/stats"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/components"
)

// Menu positions.
const (
	itemQuiz = iota
	itemVerify
	itemReview
	itemStats
	itemSessions
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    engine.Service
	menu   components.Menu
	status string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc engine.Service) *HomeScreen {
	h := &HomeScreen{svc: svc}

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		itemQuiz: {Label: "START QUIZ", Action: func() tea.Cmd {
			return push(picker.New(svc, sess.ModeStandard))
		}},
		itemVerify: {Label: "VERIFY MODE", Action: func() tea.Cmd {
			return push(picker.New(svc, sess.ModeVerify))
		}},
		itemReview: {Label: "REVIEW MISSED", Action: h.startReview},
		itemStats: {Label: "STATISTICS", Action: func() tea.Cmd {
			return push(stats.New(svc))
		}},
		itemSessions: {Label: "RECENT SESSIONS", Action: func() tea.Cmd {
			return push(history.New(svc))
		}},
		itemQuit: {Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

// startReview starts a session over the questions last answered
// incorrectly.
func (h *HomeScreen) startReview() tea.Cmd {
	s, err := h.svc.StartSession(sess.Options{ReviewOnly: true})
	if err != nil {
		if errors.Is(err, sess.ErrNoQuestions) {
			h.status = "Nothing to review. Missed questions show up here."
		} else {
			h.status = err.Error()
		}
		return nil
	}
	q := sessionscreen.New(s)
	return func() tea.Msg { return router.PushScreenMsg{Screen: q} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		h.status = ""
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.svc.Statistics(), cw, compact))
	sections = append(sections, renderMenu(h.menu, cw, compact))
	if h.status != "" {
		sections = append(sections, renderStatus(h.status, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
