package stats

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/questionbank"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/components"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	bank, issues := questionbank.New([]questionbank.QuestionRecord{
		{Prompt: "Which runlevel is single-user mode?", Options: []string{"1", "3", "5"}, CorrectIndex: 0, Category: "System Management"},
		{Prompt: "Which command changes file ownership?", Options: []string{"chmod", "chown"}, CorrectIndex: 1, Category: "Security"},
	})
	require.Empty(t, issues)
	return engine.New(bank, history.New(), engine.Options{Seed: 5})
}

// answerAllWrong plays one session answering every question incorrectly.
func answerAllWrong(t *testing.T, eng *engine.Engine) {
	t.Helper()
	s, err := eng.StartSession(sess.Options{})
	require.NoError(t, err)
	for q := s.Current(); q != nil; {
		_, err := s.Submit((q.CorrectIndex + 1) % len(q.Options))
		require.NoError(t, err)
		q, err = s.Next()
		require.NoError(t, err)
	}
	_, err = s.End()
	require.NoError(t, err)
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestStatsScreen_View(t *testing.T) {
	eng := newTestEngine(t)
	answerAllWrong(t, eng)

	view := New(eng).View(110, 40)
	for _, want := range []string{"By category", "Security", "System Management", "Weakest questions", "file ownership", "single-user mode"} {
		assert.Contains(t, view, want)
	}
}

func TestStatsScreen_ClearConfirmed(t *testing.T) {
	eng := newTestEngine(t)
	answerAllWrong(t, eng)
	s := New(eng)

	s.Update(key('c'))
	require.NotNil(t, s.confirm)
	assert.True(t, s.HandlesEscape())
	assert.Contains(t, s.View(100, 30), "Clear all statistics?")

	_, cmd := s.Update(key('y'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Nil(t, s.confirm)
	assert.Equal(t, "Statistics cleared.", s.status)
	assert.Zero(t, eng.Statistics().TotalAttempts)
	assert.Zero(t, eng.ReviewCount())
}

func TestStatsScreen_ClearDeclined(t *testing.T) {
	eng := newTestEngine(t)
	answerAllWrong(t, eng)
	s := New(eng)

	s.Update(key('c'))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Nil(t, s.confirm)
	assert.False(t, s.HandlesEscape())
	assert.Equal(t, 2, eng.Statistics().TotalAttempts)
}

func TestStatsScreen_IgnoresOtherConfirm(t *testing.T) {
	eng := newTestEngine(t)
	answerAllWrong(t, eng)
	s := New(eng)

	s.Update(components.ConfirmMsg{ID: "something-else", Yes: true})
	assert.Equal(t, 2, eng.Statistics().TotalAttempts)
}

func TestStatsScreen_PruneNothing(t *testing.T) {
	s := New(newTestEngine(t))
	s.Update(key('p'))
	assert.True(t, strings.Contains(s.status, "up to date"))
}
