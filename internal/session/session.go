// Package session runs one quiz session: it draws questions, scores answers,
// records outcomes into history and saves at the end.
package session

import (
	"fmt"
	"time"

	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/selection"
)

// Controller drives a single session at a time. It is not safe for
// concurrent use, and only one controller should write to a History.
type Controller struct {
	bank *questionbank.Bank
	hist History
	sel  *selection.Selector
	save func() error
	now  func() time.Time

	state  State
	opts   Options
	filter selection.Filter

	total    int
	served   int
	score    int
	answered int
	skipped  int

	answeredIdx map[int]struct{}
	current     *Question
	verifyLog   []VerifyEntry

	startedAt time.Time
	endedAt   time.Time
	exhausted bool
	saveErr   error
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSaver sets the checkpoint hook called when a session ends.
func WithSaver(save func() error) Option {
	return func(c *Controller) { c.save = save }
}

// NewController creates a controller over bank and hist.
func NewController(bank *questionbank.Bank, hist History, sel *selection.Selector, opts ...Option) *Controller {
	c := &Controller{
		bank: bank,
		hist: hist,
		sel:  sel,
		now:  time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start begins a session. It fails with ErrNoQuestions when opts select no
// questions, and with ErrInvalidOperation while another session is running.
func (c *Controller) Start(opts Options) error {
	if c.state == StateInProgress {
		return fmt.Errorf("%w: session already in progress", ErrInvalidOperation)
	}

	filter := selection.Filter{Category: opts.Category}
	if opts.ReviewOnly {
		filter.Only = make(map[string]struct{})
		for _, p := range c.hist.ReviewPrompts() {
			filter.Only[p] = struct{}{}
		}
	}

	available := len(selection.Candidates(c.bank, nil, filter))
	if available == 0 {
		return fmt.Errorf("%w: %s", ErrNoQuestions, opts.FilterLabel())
	}
	total := available
	if opts.Limit > 0 && opts.Limit < total {
		total = opts.Limit
	}

	*c = Controller{
		bank:        c.bank,
		hist:        c.hist,
		sel:         c.sel,
		save:        c.save,
		now:         c.now,
		state:       StateInProgress,
		opts:        opts,
		filter:      filter,
		total:       total,
		answeredIdx: make(map[int]struct{}),
		startedAt:   c.now(),
	}
	return nil
}

// Next serves the next question. When the filter is exhausted or the limit
// is reached it ends the session, saves, and returns nil with no error.
// Calling Next while a question is still pending is an ErrInvalidOperation.
func (c *Controller) Next() (*Question, error) {
	if c.state != StateInProgress {
		return nil, fmt.Errorf("%w: next on %s session", ErrInvalidOperation, c.state)
	}
	if c.current != nil {
		return nil, fmt.Errorf("%w: question %d still pending", ErrInvalidOperation, c.current.Number)
	}
	if c.served >= c.total {
		c.exhausted = true
		c.finish()
		return nil, nil
	}

	rec, idx, ok := c.sel.SelectNext(c.bank, c.hist, c.answeredIdx, c.filter)
	if !ok {
		c.exhausted = true
		c.finish()
		return nil, nil
	}
	c.served++
	c.current = &Question{QuestionRecord: rec, Index: idx, Number: c.served}

	q := *c.current
	return &q, nil
}

// Current returns the pending question, or nil.
func (c *Controller) Current() *Question {
	if c.current == nil {
		return nil
	}
	q := *c.current
	return &q
}

// Submit scores choice against the pending question and records it in
// history. Out-of-range choices and calls with nothing pending fail with
// ErrInvalidOperation and change nothing.
func (c *Controller) Submit(choice int) (AnswerOutcome, error) {
	if c.state != StateInProgress || c.current == nil {
		return AnswerOutcome{}, fmt.Errorf("%w: no question pending", ErrInvalidOperation)
	}
	q := c.current
	if !q.ValidChoice(choice) {
		return AnswerOutcome{}, fmt.Errorf("%w: choice %d out of range 0-%d", ErrInvalidOperation, choice, len(q.Options)-1)
	}

	correct := q.IsCorrect(choice)
	c.hist.RecordOutcome(q.Prompt, q.Category, correct, c.now())
	c.answered++
	if correct {
		c.score++
	}
	c.current = nil

	if c.opts.Mode == ModeVerify {
		c.verifyLog = append(c.verifyLog, VerifyEntry{
			Question: q.QuestionRecord,
			Index:    q.Index,
			Choice:   choice,
			Correct:  correct,
		})
		return AnswerOutcome{Choice: choice}, nil
	}
	return AnswerOutcome{
		Revealed:      true,
		Choice:        choice,
		Correct:       correct,
		CorrectIndex:  q.CorrectIndex,
		CorrectOption: q.CorrectOption(),
		Explanation:   q.Explanation,
	}, nil
}

// Skip passes over the pending question. Nothing is recorded in history and
// the question is not served again this session.
func (c *Controller) Skip() error {
	if c.state != StateInProgress || c.current == nil {
		return fmt.Errorf("%w: nothing to skip", ErrInvalidOperation)
	}
	c.skipped++
	c.current = nil
	return nil
}

// End finishes the session and saves history. Ending an already ended
// session returns its summary again without saving twice. The returned
// error is the save error, if any; the summary is valid either way.
func (c *Controller) End() (Summary, error) {
	switch c.state {
	case StateNotStarted:
		return Summary{}, fmt.Errorf("%w: session not started", ErrInvalidOperation)
	case StateInProgress:
		c.finish()
	}
	return c.summary(), c.saveErr
}

// Quit abandons the session. Answers already recorded are kept and saved.
func (c *Controller) Quit() error {
	if c.state != StateInProgress {
		return nil
	}
	c.finish()
	return c.saveErr
}

func (c *Controller) finish() {
	c.state = StateEnded
	c.current = nil
	c.endedAt = c.now()
	if c.save != nil {
		c.saveErr = c.save()
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Options returns the options the session was started with.
func (c *Controller) Options() Options { return c.opts }

// Position reports progress, e.g. question Number of Total. In verify mode
// Score stays zero until the session has ended.
func (c *Controller) Position() Progress {
	score := c.score
	if c.opts.Mode == ModeVerify && c.state != StateEnded {
		score = 0
	}
	return Progress{
		Number:   c.served,
		Total:    c.total,
		Score:    score,
		Answered: c.answered,
		Skipped:  c.skipped,
	}
}
