package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	sum := 0
	for prompt, q := range s.Questions {
		assert.GreaterOrEqual(t, q.Correct, 0, prompt)
		assert.GreaterOrEqual(t, q.Attempts, q.Correct, prompt)
		sum += q.Attempts

		last, ok := q.LastAttempt()
		if ok {
			assert.Equal(t, !last.Correct, s.InReview(prompt), "review membership for %q", prompt)
		}
	}
	for name, c := range s.Categories {
		assert.GreaterOrEqual(t, c.Correct, 0, name)
		assert.GreaterOrEqual(t, c.Attempts, c.Correct, name)
	}
	assert.Equal(t, sum, s.TotalAttempts, "total_attempts")
	assert.GreaterOrEqual(t, s.TotalAttempts, s.TotalCorrect)
}

func TestRecordOutcome(t *testing.T) {
	s := New()
	s.RecordOutcome("p1", "A", true, t0)
	s.RecordOutcome("p2", "A", false, t0.Add(time.Minute))
	s.RecordOutcome("p3", "B", false, t0.Add(2*time.Minute))

	assert.Equal(t, 3, s.TotalAttempts)
	assert.Equal(t, 1, s.TotalCorrect)
	assert.Equal(t, CategoryStat{Correct: 1, Attempts: 2}, s.CategoryStat("A"))
	assert.Equal(t, []string{"p2", "p3"}, s.ReviewPrompts())

	q := s.QuestionStat("p2")
	require.Len(t, q.History, 1)
	assert.Equal(t, t0.Add(time.Minute), q.History[0].Timestamp)
	assert.False(t, q.History[0].Correct)

	checkInvariants(t, s)
}

func TestQuestionStatReturnsCopy(t *testing.T) {
	s := New()
	s.RecordOutcome("p", "A", true, t0)
	q := s.QuestionStat("p")
	q.History[0].Correct = false
	q.Attempts = 99

	assert.True(t, s.Questions["p"].History[0].Correct)
	assert.Equal(t, 1, s.Questions["p"].Attempts)
	assert.Equal(t, QuestionStat{}, s.QuestionStat("never"))
}

func TestIncorrectThenCorrectLeavesReview(t *testing.T) {
	s := New()
	s.RecordOutcome("p", "A", false, t0)
	assert.True(t, s.InReview("p"))

	s.RecordOutcome("p", "A", true, t0.Add(24*time.Hour))
	assert.False(t, s.InReview("p"))

	q := s.QuestionStat("p")
	assert.Equal(t, 2, q.Attempts)
	assert.Equal(t, 1, q.Correct)
}

func TestInvariantsHoldForRandomSequences(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	prompts := []string{"p1", "p2", "p3", "p4"}
	cats := []string{"A", "B"}

	s := New()
	for i := 0; i < 500; i++ {
		switch r.IntN(20) {
		case 0:
			s.Clear(cats)
		case 1:
			s.RemoveFromReview(prompts[r.IntN(len(prompts))])
			continue
		default:
			p := r.IntN(len(prompts))
			s.RecordOutcome(prompts[p], cats[p%2], r.IntN(2) == 0, t0.Add(time.Duration(i)*time.Second))
		}
		// RemoveFromReview is a user override and may break the "latest was
		// wrong" link, so only check after ordinary updates.
		sum := 0
		for _, q := range s.Questions {
			sum += q.Attempts
			assert.GreaterOrEqual(t, q.Attempts, q.Correct)
		}
		assert.Equal(t, sum, s.TotalAttempts)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	cats := []string{"A", "B"}
	s := New()
	s.RecordOutcome("p", "A", false, t0)
	s.RecordOutcome("q", "C", true, t0)

	s.Clear(cats)
	once := s.toFile()
	s.Clear(cats)
	twice := s.toFile()

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, s.TotalAttempts)
	assert.Empty(t, s.Questions)
	assert.Empty(t, s.IncorrectReview)
	assert.Len(t, s.Categories, 2)
	assert.Equal(t, CategoryStat{}, s.CategoryStat("A"))
}

func TestEnsureCategoriesKeepsExisting(t *testing.T) {
	s := New()
	s.RecordOutcome("p", "A", true, t0)
	s.EnsureCategories([]string{"A", "B"})

	assert.Equal(t, CategoryStat{Correct: 1, Attempts: 1}, s.CategoryStat("A"))
	assert.Equal(t, CategoryStat{}, s.CategoryStat("B"))
}

func TestRemoveFromReview(t *testing.T) {
	s := New()
	s.RecordOutcome("p", "A", false, t0)

	assert.True(t, s.RemoveFromReview("p"))
	assert.False(t, s.RemoveFromReview("p"))
	assert.False(t, s.RemoveFromReview("never seen"))
	assert.Empty(t, s.ReviewPrompts())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	s := New()
	s.EnsureCategories([]string{"Security", "Networking"})
	s.RecordOutcome("p1", "Security", true, t0)
	s.RecordOutcome("p1", "Security", false, t0.Add(time.Hour))
	s.RecordOutcome("p2", "Networking", true, t0.Add(2*time.Hour))
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")
	assert.Equal(t, "history.json", entries[0].Name())
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := New()
	s.RecordOutcome("p", "A", true, t0)
	require.NoError(t, s.Save(path))

	s.Clear(nil)
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.TotalAttempts)
	assert.Empty(t, loaded.Questions)
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := New()
	s.RecordOutcome("p", "A", true, t0)
	err := s.Save(filepath.Join(blocker, "history.json"))
	require.Error(t, err)
	assert.Equal(t, 1, s.TotalAttempts)
}

func TestWrittenShape(t *testing.T) {
	s := New()
	s.RecordOutcome("p", "A", false, t0)

	var buf bytes.Buffer
	require.NoError(t, s.WriteJSON(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.EqualValues(t, Version, doc["version"])
	assert.EqualValues(t, 1, doc["total_attempts"])
	assert.EqualValues(t, 0, doc["total_correct"])
	assert.Equal(t, []any{"p"}, doc["incorrect_review"])

	q := doc["questions"].(map[string]any)["p"].(map[string]any)
	hist := q["history"].([]any)
	require.Len(t, hist, 1)
	assert.Equal(t, "2026-03-14T09:30:00Z", hist[0].(map[string]any)["timestamp"])
	assert.Equal(t, map[string]any{"correct": float64(0), "attempts": float64(1)}, doc["categories"].(map[string]any)["A"])
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, New(), s)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPartialFile(t *testing.T) {
	s, err := Load(writeFile(t, `{"total_attempts": 5}`))
	require.NoError(t, err)

	assert.Equal(t, 5, s.TotalAttempts)
	assert.Equal(t, 0, s.TotalCorrect)
	assert.Empty(t, s.Questions)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.IncorrectReview)
	assert.NotNil(t, s.Questions)
}

func TestLoadMalformed(t *testing.T) {
	for _, content := range []string{`{"total_attempts": `, `[1, 2]`, `null`, ``} {
		s, err := Load(writeFile(t, content))
		var w *LoadWarning
		require.True(t, errors.As(err, &w), "content %q: %v", content, err)
		assert.Error(t, w.Err)
		assert.Equal(t, New(), s)
	}
}

func TestLoadWrongTypedKeys(t *testing.T) {
	content := `{
		"total_attempts": 2,
		"total_correct": 1,
		"questions": ["not", "a", "map"],
		"categories": "nope",
		"incorrect_review": {"p": true}
	}`
	s, err := Load(writeFile(t, content))

	var w *LoadWarning
	require.True(t, errors.As(err, &w))
	assert.Equal(t, []string{"categories", "incorrect_review", "questions"}, w.Reset)
	assert.Equal(t, 2, s.TotalAttempts)
	assert.Equal(t, 1, s.TotalCorrect)
	assert.NotNil(t, s.Questions)
	assert.NotNil(t, s.Categories)
	assert.NotNil(t, s.IncorrectReview)
	assert.Empty(t, s.Questions)
}

func TestLoadLegacyFile(t *testing.T) {
	content := `{
		"total_attempts": 3,
		"total_correct": 9,
		"questions": {
			"What does ls do?": {
				"correct": 1,
				"attempts": 2,
				"history": [
					{"timestamp": "2024-01-05T10:11:12.123456", "correct": false},
					{"timestamp": "2024-01-06T08:00:00", "correct": true},
					{"timestamp": "yesterday", "correct": true}
				]
			},
			"broken": 7,
			"negative": {"correct": -2, "attempts": 1}
		},
		"categories": {"Commands": {"correct": 4, "attempts": 2}},
		"incorrect_review": ["What does chmod do?", 42]
	}`
	s, err := Load(writeFile(t, content))
	var w *LoadWarning
	require.True(t, errors.As(err, &w))
	assert.NoError(t, w.Err)
	assert.Equal(t, []string{"questions[broken]"}, w.Reset)

	assert.Equal(t, 3, s.TotalAttempts)
	assert.Equal(t, 1, s.TotalCorrect, "totals come from the question entries")

	q := s.QuestionStat("What does ls do?")
	assert.Equal(t, 2, q.Attempts)
	require.Len(t, q.History, 2)
	want := time.Date(2024, 1, 5, 10, 11, 12, 123456000, time.Local)
	assert.True(t, q.History[0].Timestamp.Equal(want), "got %v", q.History[0].Timestamp)

	_, ok := s.Questions["broken"]
	assert.False(t, ok)
	assert.Equal(t, 0, s.QuestionStat("negative").Correct)

	assert.Equal(t, CategoryStat{Correct: 2, Attempts: 2}, s.CategoryStat("Commands"))
	assert.Equal(t, []string{"What does chmod do?"}, s.ReviewPrompts())
}

func TestLoadRecomputesTotalsFromQuestions(t *testing.T) {
	content := `{
		"total_attempts": 0,
		"total_correct": 4,
		"questions": {
			"p": {"correct": 1, "attempts": 2},
			"q": {"correct": 0, "attempts": 1}
		}
	}`
	s, err := Load(writeFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalAttempts)
	assert.Equal(t, 1, s.TotalCorrect)

	s.RecordOutcome("p", "A", true, t0)
	assert.Equal(t, 4, s.TotalAttempts)
	assert.Equal(t, 2, s.TotalCorrect)
	sum := 0
	for _, q := range s.Questions {
		sum += q.Attempts
	}
	assert.Equal(t, sum, s.TotalAttempts)
}

func TestLoadReportsDroppedEntries(t *testing.T) {
	content := `{
		"questions": {"good": {"correct": 1, "attempts": 1}, "bad": {"attempts": "x"}},
		"categories": {"A": {"correct": 1, "attempts": 1}, "B": [1]}
	}`
	s, err := Load(writeFile(t, content))

	var w *LoadWarning
	require.True(t, errors.As(err, &w))
	assert.Equal(t, []string{"categories[B]", "questions[bad]"}, w.Reset)
	assert.Len(t, s.Questions, 1)
	assert.Len(t, s.Categories, 1)
	assert.Equal(t, 1, s.TotalAttempts)
}

func TestStatistics(t *testing.T) {
	s := New()
	s.EnsureCategories([]string{"B", "A", "C"})
	s.RecordOutcome("p1", "A", true, t0)
	s.RecordOutcome("p2", "A", false, t0)
	s.RecordOutcome("p3", "B", true, t0)

	v := s.Statistics()
	assert.Equal(t, 3, v.TotalAttempts)
	assert.Equal(t, 2, v.TotalCorrect)
	assert.InDelta(t, 2.0/3.0, v.Accuracy, 1e-9)
	assert.Equal(t, 3, v.QuestionsSeen)
	assert.Equal(t, 1, v.ReviewCount)

	require.Len(t, v.Categories, 3)
	assert.Equal(t, CategoryRow{Name: "A", Correct: 1, Attempts: 2, Accuracy: 0.5}, v.Categories[0])
	assert.Equal(t, "B", v.Categories[1].Name)
	assert.Equal(t, CategoryRow{Name: "C"}, v.Categories[2])
}
