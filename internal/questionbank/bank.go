package questionbank

import (
	"fmt"
	"sort"
)

// Filter selects a subset of the bank. The zero value matches everything.
type Filter struct {
	// Category limits matches to one category. Empty means all categories.
	Category string
}

// Matches reports whether q passes the filter.
func (f Filter) Matches(q QuestionRecord) bool {
	return f.Category == "" || q.Category == f.Category
}

// String returns a display label for the filter.
func (f Filter) String() string {
	if f.Category == "" {
		return "All categories"
	}
	return f.Category
}

// LoadIssue describes a bank record that was skipped during loading.
type LoadIssue struct {
	Index  int    // position in the source
	Prompt string // may be empty when the prompt itself was unreadable
	Reason string
}

func (i LoadIssue) String() string {
	if i.Prompt == "" {
		return fmt.Sprintf("record %d: %s", i.Index, i.Reason)
	}
	return fmt.Sprintf("record %d (%q): %s", i.Index, truncate(i.Prompt, 40), i.Reason)
}

// Bank is an immutable, ordered collection of questions. Indices are stable
// for the lifetime of the process.
type Bank struct {
	questions  []QuestionRecord
	byPrompt   map[string]int
	byCategory map[string][]int
	categories []string
}

// New builds a bank from records, skipping any that are malformed or whose
// prompt duplicates an earlier record.
func New(records []QuestionRecord) (*Bank, []LoadIssue) {
	b := &Bank{
		byPrompt:   make(map[string]int, len(records)),
		byCategory: make(map[string][]int),
	}

	var issues []LoadIssue
	for i, r := range records {
		if reason := checkRecord(r); reason != "" {
			issues = append(issues, LoadIssue{Index: i, Prompt: r.Prompt, Reason: reason})
			continue
		}
		if _, dup := b.byPrompt[r.Prompt]; dup {
			issues = append(issues, LoadIssue{Index: i, Prompt: r.Prompt, Reason: "duplicate prompt"})
			continue
		}

		opts := make([]string, len(r.Options))
		copy(opts, r.Options)
		r.Options = opts
		if r.ID == "" {
			r.ID = questionID(r.Category, r.Prompt)
		}

		idx := len(b.questions)
		b.questions = append(b.questions, r)
		b.byPrompt[r.Prompt] = idx
		if _, ok := b.byCategory[r.Category]; !ok {
			b.categories = append(b.categories, r.Category)
		}
		b.byCategory[r.Category] = append(b.byCategory[r.Category], idx)
	}
	sort.Strings(b.categories)

	return b, issues
}

// checkRecord returns a non-empty reason when r cannot be served.
func checkRecord(r QuestionRecord) string {
	switch {
	case r.Prompt == "":
		return "empty prompt"
	case r.Category == "":
		return "empty category"
	case len(r.Options) < MinOptions || len(r.Options) > MaxOptions:
		return fmt.Sprintf("has %d options, want %d-%d", len(r.Options), MinOptions, MaxOptions)
	case r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options):
		return fmt.Sprintf("correct_index %d out of range for %d options", r.CorrectIndex, len(r.Options))
	}
	return ""
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at original index i.
func (b *Bank) At(i int) (QuestionRecord, bool) {
	if i < 0 || i >= len(b.questions) {
		return QuestionRecord{}, false
	}
	return b.questions[i], true
}

// ByPrompt returns the index of the question with the given prompt text.
func (b *Bank) ByPrompt(prompt string) (int, bool) {
	i, ok := b.byPrompt[prompt]
	return i, ok
}

// Categories returns every category in the bank, sorted.
func (b *Bank) Categories() []string {
	out := make([]string, len(b.categories))
	copy(out, b.categories)
	return out
}

// HasCategory reports whether any question carries the category.
func (b *Bank) HasCategory(name string) bool {
	_, ok := b.byCategory[name]
	return ok
}

// Count returns the number of questions matching f.
func (b *Bank) Count(f Filter) int {
	if f.Category == "" {
		return len(b.questions)
	}
	return len(b.byCategory[f.Category])
}

// Indices returns the original indices of questions matching f, in bank order.
func (b *Bank) Indices(f Filter) []int {
	if f.Category == "" {
		out := make([]int, len(b.questions))
		for i := range out {
			out[i] = i
		}
		return out
	}
	src := b.byCategory[f.Category]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// All returns a copy of every question in bank order.
func (b *Bank) All() []QuestionRecord {
	out := make([]QuestionRecord, len(b.questions))
	copy(out, b.questions)
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
