// Package history keeps per-question and per-category answer history and
// persists it as a single JSON file.
package history

import (
	"sort"
	"time"
)

// Attempt is one recorded answer to a question.
type Attempt struct {
	Timestamp time.Time
	Correct   bool
}

// QuestionStat aggregates every recorded answer to one prompt.
type QuestionStat struct {
	Correct  int
	Attempts int
	History  []Attempt
}

// Accuracy returns Correct/Attempts, or 0 when never attempted.
func (s QuestionStat) Accuracy() float64 {
	return Accuracy(s.Correct, s.Attempts)
}

// LastAttempt returns the most recent attempt, if any.
func (s QuestionStat) LastAttempt() (Attempt, bool) {
	if len(s.History) == 0 {
		return Attempt{}, false
	}
	return s.History[len(s.History)-1], true
}

// CategoryStat aggregates answers per category.
type CategoryStat struct {
	Correct  int
	Attempts int
}

// Accuracy returns Correct/Attempts, or 0 when never attempted.
func (s CategoryStat) Accuracy() float64 {
	return Accuracy(s.Correct, s.Attempts)
}

// Accuracy is correct/attempts with 0 for no attempts.
func Accuracy(correct, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(correct) / float64(attempts)
}

// Store is the in-memory history. It has a single owner and is not safe for
// concurrent use.
//
// Questions are keyed by prompt text so files written by earlier versions
// keep their statistics.
type Store struct {
	TotalAttempts int
	TotalCorrect  int

	Questions  map[string]*QuestionStat
	Categories map[string]*CategoryStat

	// IncorrectReview holds prompts whose latest recorded answer was wrong.
	IncorrectReview map[string]struct{}
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Questions:       make(map[string]*QuestionStat),
		Categories:      make(map[string]*CategoryStat),
		IncorrectReview: make(map[string]struct{}),
	}
}

// RecordOutcome records one answer. It is the only path that changes
// counters: the global totals, the question stat, the category stat and the
// review set are computed first and committed together.
func (s *Store) RecordOutcome(prompt, category string, correct bool, at time.Time) {
	q := QuestionStat{}
	if cur, ok := s.Questions[prompt]; ok {
		q = *cur
	}
	q.Attempts++
	if correct {
		q.Correct++
	}
	hist := make([]Attempt, len(q.History), len(q.History)+1)
	copy(hist, q.History)
	q.History = append(hist, Attempt{Timestamp: at, Correct: correct})

	c := CategoryStat{}
	if cur, ok := s.Categories[category]; ok {
		c = *cur
	}
	c.Attempts++
	if correct {
		c.Correct++
	}

	totalAttempts := s.TotalAttempts + 1
	totalCorrect := s.TotalCorrect
	if correct {
		totalCorrect++
	}

	s.Questions[prompt] = &q
	s.Categories[category] = &c
	s.TotalAttempts = totalAttempts
	s.TotalCorrect = totalCorrect
	if correct {
		delete(s.IncorrectReview, prompt)
	} else {
		s.IncorrectReview[prompt] = struct{}{}
	}
}

// EnsureCategories adds a zero stat for every name not already present.
func (s *Store) EnsureCategories(names []string) {
	for _, name := range names {
		if _, ok := s.Categories[name]; !ok {
			s.Categories[name] = &CategoryStat{}
		}
	}
}

// Clear resets the store to empty and re-seeds zero stats for categories.
func (s *Store) Clear(categories []string) {
	*s = *New()
	s.EnsureCategories(categories)
}

// QuestionStat returns a copy of the stat for prompt; the zero value when the
// prompt was never answered.
func (s *Store) QuestionStat(prompt string) QuestionStat {
	cur, ok := s.Questions[prompt]
	if !ok {
		return QuestionStat{}
	}
	out := *cur
	out.History = append([]Attempt(nil), cur.History...)
	return out
}

// CategoryStat returns a copy of the stat for a category.
func (s *Store) CategoryStat(name string) CategoryStat {
	if cur, ok := s.Categories[name]; ok {
		return *cur
	}
	return CategoryStat{}
}

// InReview reports whether prompt is awaiting a correct answer.
func (s *Store) InReview(prompt string) bool {
	_, ok := s.IncorrectReview[prompt]
	return ok
}

// ReviewPrompts returns the review set sorted.
func (s *Store) ReviewPrompts() []string {
	out := make([]string, 0, len(s.IncorrectReview))
	for p := range s.IncorrectReview {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// RemoveFromReview drops prompt from the review set. It reports whether the
// prompt was present; removing an absent prompt is not an error.
func (s *Store) RemoveFromReview(prompt string) bool {
	if _, ok := s.IncorrectReview[prompt]; !ok {
		return false
	}
	delete(s.IncorrectReview, prompt)
	return true
}
