package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screens/picker"
	sessionscreen "github.com/abhisek/linuxplus/internal/screens/session"
	"github.com/abhisek/linuxplus/internal/screens/stats"
)

func newTestHome(t *testing.T) (*HomeScreen, *history.Store) {
	t.Helper()
	bank, issues := questionbank.New([]questionbank.QuestionRecord{
		{Prompt: "Which command lists open ports?", Options: []string{"ss -tuln", "ps aux"}, CorrectIndex: 0, Category: "Networking"},
	})
	if len(issues) != 0 {
		t.Fatalf("unexpected bank issues: %v", issues)
	}
	hist := history.New()
	return New(engine.New(bank, hist, engine.Options{Seed: 3})), hist
}

func moveTo(h *HomeScreen, item int) {
	for i := 0; i < item; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestHomeScreen_View(t *testing.T) {
	h, _ := newTestHome(t)
	view := h.View(120, 40)
	for _, want := range []string{"START QUIZ", "VERIFY MODE", "REVIEW MISSED", "0/1 SEEN", "NOTHING TO REVIEW"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_StartQuizOpensPicker(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*picker.PickerScreen); !ok {
		t.Error("expected the category picker")
	}
}

func TestHomeScreen_ReviewWithNothingMissed(t *testing.T) {
	h, _ := newTestHome(t)
	moveTo(h, itemReview)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when there is nothing to review")
	}
	if !strings.Contains(h.View(120, 40), "Nothing to review") {
		t.Error("expected a status message")
	}

	// any key clears the status
	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if h.status != "" {
		t.Errorf("status = %q, want empty", h.status)
	}
}

func TestHomeScreen_ReviewStartsSession(t *testing.T) {
	h, hist := newTestHome(t)
	hist.RecordOutcome("Which command lists open ports?", "Networking", false, time.Now())
	moveTo(h, itemReview)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*sessionscreen.SessionScreen); !ok {
		t.Error("expected a quiz screen")
	}
}

func TestHomeScreen_Quit(t *testing.T) {
	h, _ := newTestHome(t)
	moveTo(h, itemQuit)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHomeScreen_NumberKeyOpensStats(t *testing.T) {
	h, _ := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if _, ok := pushed(t, cmd).(*stats.StatsScreen); !ok {
		t.Error("expected the statistics screen")
	}
}
