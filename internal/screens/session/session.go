package session

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screen"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/components"
	"github.com/abhisek/linuxplus/internal/ui/layout"
)

const quitConfirmID = "quit-session"

// SessionScreen implements screen.Screen for a quiz in progress.
type SessionScreen struct {
	s        *engine.Session
	question *sess.Question
	mc       components.MultiChoice

	// outcome is set while standard-mode feedback is showing.
	outcome *sess.AnswerOutcome
	confirm *components.Confirm
	errMsg  string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a screen for a session that has already been started.
func New(s *engine.Session) *SessionScreen {
	scr := &SessionScreen{s: s}
	if q := s.Current(); q != nil {
		scr.load(q)
	}
	return scr
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.question == nil {
		return s.finish()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	if s.s.Options().Mode == sess.ModeVerify {
		return "Verify Mode"
	}
	return "Quiz"
}

// HandlesEscape keeps Esc on this screen so it can confirm before quitting.
func (s *SessionScreen) HandlesEscape() bool {
	return s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirm != nil:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "1-6/A-F", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.confirm != nil {
		return renderQuitConfirm(*s.confirm, width)
	}
	if s.question == nil {
		return ""
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ConfirmMsg:
		if msg.ID != quitConfirmID {
			return s, nil
		}
		s.confirm = nil
		if msg.Yes {
			return s, s.quit()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirm != nil {
		c, cmd := s.confirm.Update(msg)
		s.confirm = &c
		return s, cmd
	}

	// Feedback: any key moves on.
	if s.outcome != nil {
		return s, s.advance()
	}

	switch msg.String() {
	case "esc":
		c := components.NewConfirm(quitConfirmID,
			"End session early?",
			"Answers given so far are kept.",
			"Yes, end session", "No, keep going")
		s.confirm = &c
		return s, nil
	case "s", "S":
		if err := s.s.Skip(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.advance()
	}

	s.mc, _ = s.mc.Update(msg)
	if s.mc.Submitted {
		return s, s.submit(s.mc.ChosenIndex)
	}
	return s, nil
}

// submit records the answer. Standard mode shows feedback; verify mode
// moves straight on.
func (s *SessionScreen) submit(choice int) tea.Cmd {
	out, err := s.s.Submit(choice)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if out.Revealed {
		s.outcome = &out
		return nil
	}
	return s.advance()
}

// advance serves the next question or finishes the session.
func (s *SessionScreen) advance() tea.Cmd {
	s.outcome = nil
	q, err := s.s.Next()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if q == nil {
		return s.finish()
	}
	s.load(q)
	return nil
}

func (s *SessionScreen) load(q *sess.Question) {
	s.question = q
	correct := q.CorrectIndex
	if s.s.Options().Mode == sess.ModeVerify {
		correct = components.HiddenAnswer
	}
	s.mc = components.NewMultiChoice(q.Prompt, q.Options, correct)
}

// quit abandons the session and shows what was answered. End reports any
// save error from Quit.
func (s *SessionScreen) quit() tea.Cmd {
	_ = s.s.Quit()
	return s.finish()
}

func (s *SessionScreen) finish() tea.Cmd {
	s.question = nil
	sum, err := s.s.End()
	return replaceWithSummary(sum, err)
}

func replaceWithSummary(sum sess.Summary, saveErr error) tea.Cmd {
	next := newSummaryScreenAdapter(sum, saveErr)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
