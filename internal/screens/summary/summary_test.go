package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/session"
)

func testSummary() session.Summary {
	q1 := questionbank.QuestionRecord{
		Prompt:       "Which file lists local user accounts?",
		Options:      []string{"/etc/passwd", "/etc/group", "/etc/hosts"},
		CorrectIndex: 0,
		Category:     "Security",
	}
	q2 := questionbank.QuestionRecord{
		Prompt:       "Which signal does kill send by default?",
		Options:      []string{"SIGKILL", "SIGTERM", "SIGHUP"},
		CorrectIndex: 1,
		Category:     "System Management",
		Explanation:  "kill sends SIGTERM unless told otherwise.",
	}
	return session.Summary{
		Mode:      session.ModeVerify,
		Score:     1,
		Answered:  2,
		Skipped:   1,
		Total:     3,
		Accuracy:  0.5,
		Duration:  3*time.Minute + 5*time.Second,
		Completed: true,
		VerifyLog: []session.VerifyEntry{
			{Question: q1, Index: 0, Choice: 0, Correct: true},
			{Question: q2, Index: 1, Choice: 0, Correct: false},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(100, 40)
	for _, want := range []string{"Session complete!", "Correct: 1/2", "3:05", "Answer: B) SIGTERM", "kill sends SIGTERM"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EndedEarlyAndSaveError(t *testing.T) {
	sum := testSummary()
	sum.Completed = false
	sum.VerifyLog = nil
	s := New(sum, errors.New("disk full"))

	view := s.View(100, 30)
	if !strings.Contains(view, "Session ended early") {
		t.Error("expected early end title")
	}
	if !strings.Contains(view, "disk full") {
		t.Error("expected save error in view")
	}
}

func TestSummaryScreen_Scroll(t *testing.T) {
	s := New(testSummary(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset should stop at the last entry, got %d", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
