package session

import (
	"errors"
	"time"

	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/selection"
)

var (
	// ErrNoQuestions is returned by Start when the filter matches nothing.
	ErrNoQuestions = errors.New("no questions available for this filter")

	// ErrInvalidOperation marks a call the controller cannot honour in its
	// current state: answering with nothing pending, an out-of-range choice,
	// or using a session that was never started.
	ErrInvalidOperation = errors.New("invalid session operation")
)

// History is what a session reads from and writes to.
type History interface {
	selection.StatSource
	RecordOutcome(prompt, category string, correct bool, at time.Time)
	ReviewPrompts() []string
}

// State is the lifecycle of a session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in progress"
	case StateEnded:
		return "ended"
	default:
		return "not started"
	}
}

// Mode controls when correctness is revealed.
type Mode int

const (
	// ModeStandard reveals correctness after every answer.
	ModeStandard Mode = iota
	// ModeVerify withholds all feedback until the session ends.
	ModeVerify
)

func (m Mode) String() string {
	if m == ModeVerify {
		return "verify"
	}
	return "standard"
}

// ParseMode maps "standard" or "verify" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "standard", "":
		return ModeStandard, true
	case "verify":
		return ModeVerify, true
	}
	return ModeStandard, false
}

// Options configure a session at Start.
type Options struct {
	Mode Mode

	// Category limits questions to one category; empty means all.
	Category string

	// ReviewOnly limits questions to prompts last answered incorrectly.
	ReviewOnly bool

	// Limit caps the number of questions served. Zero means no cap.
	Limit int
}

// FilterLabel describes the question filter for display.
func (o Options) FilterLabel() string {
	label := questionbank.Filter{Category: o.Category}.String()
	if o.ReviewOnly {
		label += " (review)"
	}
	return label
}

// Question is a question being served in a session.
type Question struct {
	questionbank.QuestionRecord

	// Index is the bank index.
	Index int

	// Number is the 1-based position within the session.
	Number int
}

// AnswerOutcome is returned by Submit. In verify mode only Choice is set and
// Revealed is false.
type AnswerOutcome struct {
	Revealed      bool
	Choice        int
	Correct       bool
	CorrectIndex  int
	CorrectOption string
	Explanation   string
}

// VerifyEntry is one answer recorded in verify mode.
type VerifyEntry struct {
	Question questionbank.QuestionRecord
	Index    int
	Choice   int
	Correct  bool
}

// Progress is a snapshot of the session counters.
type Progress struct {
	// Number is how many questions have been served, including the current one.
	Number   int
	Total    int
	Score    int
	Answered int
	Skipped  int
}
