package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/session"
)

type testEnv struct {
	eng      *engine.Engine
	hist     *history.Store
	histPath string
}

// newTestEnv builds an engine over two questions whose first option is
// always the right one.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	bank, issues := questionbank.New([]questionbank.QuestionRecord{
		{
			Prompt:       "Which command prints the kernel release?",
			Options:      []string{"uname -r", "uptime"},
			CorrectIndex: 0,
			Category:     "System Management",
			Explanation:  "uname -r prints the running kernel release.",
		},
		{
			Prompt:       "Which file maps hostnames to addresses locally?",
			Options:      []string{"/etc/hosts", "/etc/hostname"},
			CorrectIndex: 0,
			Category:     "System Management",
		},
	})
	require.Empty(t, issues)

	hist := history.New()
	path := filepath.Join(t.TempDir(), "history.json")
	eng := engine.New(bank, hist, engine.Options{HistoryPath: path, Seed: 4})
	return &testEnv{eng: eng, hist: hist, histPath: path}
}

func runQuizInput(t *testing.T, env *testEnv, opts session.Options, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := runQuiz(context.Background(), env.eng, opts, strings.NewReader(input), &out)
	require.NoError(t, err)
	return out.String()
}

func TestRunQuizStandard(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{}, "1\na\n")

	assert.Contains(t, out, "All categories: 2 question(s), standard mode")
	assert.Contains(t, out, "── Question 1/2 ── System Management")
	assert.Contains(t, out, "  1) A. ")
	assert.Equal(t, 2, strings.Count(out, "✓ Correct!"))
	assert.Contains(t, out, "── Summary: 2/2 correct (100%) ──")

	loaded, err := history.Load(env.histPath)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalCorrect)
}

func TestRunQuizIncorrectShowsAnswer(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{}, "2\nB\n")

	assert.Equal(t, 2, strings.Count(out, "✗ Incorrect."))
	assert.Contains(t, out, "Answer: A. uname -r")
	assert.Contains(t, out, "Explanation: uname -r prints the running kernel release.")
	assert.Contains(t, out, "── Summary: 0/2 correct (0%) ──")
	assert.Equal(t, 2, env.eng.ReviewCount())
}

func TestRunQuizVerifyHoldsFeedback(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{Mode: session.ModeVerify}, "2\n1\n")

	assert.Contains(t, out, "verify mode")
	assert.Contains(t, out, "Recorded B.")
	assert.Contains(t, out, "Recorded A.")
	assert.NotContains(t, out, "Correct!")

	summary := out[strings.Index(out, "── Summary"):]
	assert.Contains(t, summary, "1/2 correct (50%)")
	assert.Contains(t, summary, "Incorrect answers:")
	assert.Contains(t, summary, "1. ")
	assert.Contains(t, summary, "Your answer: B.")
	assert.Contains(t, summary, "Correct:     A.")
}

func TestRunQuizSkipAndInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{}, "\n9\nx\ns\n1\n")

	assert.Equal(t, 2, strings.Count(out, `Enter 1-2 or A-B, "s" to skip, "q" to quit.`))
	assert.Contains(t, out, "(skipped)")
	assert.Contains(t, out, "── Summary: 1/1 correct (100%) ──")
	assert.Contains(t, out, "Skipped: 1")
	assert.Equal(t, 1, env.hist.TotalAttempts)
}

func TestRunQuizQuitKeepsAnswers(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{}, "1\nq\n")

	assert.Contains(t, out, "Session stopped.")
	assert.Contains(t, out, "── Summary: 1/1 correct (100%) ──")

	loaded, err := history.Load(env.histPath)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.TotalAttempts)

	_, err = env.eng.StartSession(session.Options{})
	assert.NoError(t, err, "quitting must release the session")
}

func TestRunQuizEndOfInputQuits(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{}, "")

	assert.Contains(t, out, "Session stopped.")
	assert.Contains(t, out, "── Summary: 0/0 correct ──")
}

func TestRunQuizCancelledContext(t *testing.T) {
	env := newTestEnv(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, runQuiz(ctx, env.eng, session.Options{}, pr, &out))
	assert.Contains(t, out.String(), "Session stopped.")
}

func TestRunQuizNoQuestions(t *testing.T) {
	env := newTestEnv(t)
	var out bytes.Buffer
	err := runQuiz(context.Background(), env.eng, session.Options{ReviewOnly: true}, strings.NewReader(""), &out)
	assert.ErrorIs(t, err, session.ErrNoQuestions)
}

func TestRunQuizLimit(t *testing.T) {
	env := newTestEnv(t)
	out := runQuizInput(t, env, session.Options{Limit: 1}, "1\n")

	assert.Contains(t, out, "1 question(s)")
	assert.Contains(t, out, "── Summary: 1/1 correct (100%) ──")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"5", 0, false},
		{"0", 0, false},
		{"a", 0, true},
		{"D", 3, true},
		{"e", 0, false},
		{"ab", 0, false},
		{"-1", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parseChoice(tc.input, 4)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestMatchCategory(t *testing.T) {
	cats := []string{"Security", "System Management"}

	got, err := matchCategory(cats, "system management")
	require.NoError(t, err)
	assert.Equal(t, "System Management", got)

	_, err = matchCategory(cats, "Networking")
	assert.ErrorContains(t, err, `unknown category "Networking"`)
}

func TestResolveMode(t *testing.T) {
	mode, err := resolveMode("standard", false)
	require.NoError(t, err)
	assert.Equal(t, session.ModeStandard, mode)

	mode, err = resolveMode(" Verify ", false)
	require.NoError(t, err)
	assert.Equal(t, session.ModeVerify, mode)

	mode, err = resolveMode("standard", true)
	require.NoError(t, err)
	assert.Equal(t, session.ModeVerify, mode)

	_, err = resolveMode("exam", false)
	assert.ErrorContains(t, err, `unknown mode "exam"`)
}
