package questionbank

import (
	"crypto/sha1"
	"encoding/hex"
)

// MinOptions and MaxOptions bound the number of answer options per question.
const (
	MinOptions = 2
	MaxOptions = 6
)

// QuestionRecord is a single multiple-choice question. Records are immutable
// once the bank is built.
type QuestionRecord struct {
	// ID is a stable synthetic identifier derived from category and prompt.
	// History is keyed by Prompt, not ID.
	ID string

	// Prompt is the question text and the join key into history.
	Prompt string

	// Options are the candidate answers in display order.
	Options []string

	// CorrectIndex is the zero-based index into Options.
	CorrectIndex int

	Category    string
	Explanation string
}

// CorrectOption returns the text of the correct answer.
func (q QuestionRecord) CorrectOption() string {
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether choice selects the correct option.
func (q QuestionRecord) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// ValidChoice reports whether choice indexes one of the options.
func (q QuestionRecord) ValidChoice(choice int) bool {
	return choice >= 0 && choice < len(q.Options)
}

// OptionLetter returns the display letter for an option index (0 -> "A").
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// LetterIndex parses a display letter back into an option index.
// Returns -1 for anything that is not a single letter.
func LetterIndex(s string) int {
	if len(s) != 1 {
		return -1
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	}
	return -1
}

func questionID(category, prompt string) string {
	h := sha1.Sum([]byte(category + "\x00" + prompt))
	return hex.EncodeToString(h[:])[:10]
}
