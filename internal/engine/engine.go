// Package engine is the single entry point presentation code uses: it owns
// the question bank, the history store and the optional event log, and hands
// out sessions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/selection"
	"github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/store"
)

// Service is what the CLI and TUI depend on.
type Service interface {
	Categories() []string
	QuestionCount(category string) int
	ReviewCount() int
	StartSession(opts session.Options) (*Session, error)
	Statistics() Statistics
	WeakestQuestions(n int) []QuestionSummary
	ClearStatistics() error
	ExportHistory(dest string) error
	ExportQuestionBank(dest string) error
	StaleReviewPrompts() []string
	PruneReview() ([]string, error)
	RecentSessions(n int) ([]store.SessionSummaryRecord, error)
	Save() error
}

// Options configure an Engine.
type Options struct {
	// HistoryPath is where history is saved. Empty keeps history in memory.
	HistoryPath string

	// Events receives session and answer events. Nil disables the log.
	Events store.EventRepo

	Logger *zap.Logger

	// Seed fixes the selection order. Zero picks a random seed.
	Seed uint64

	Now func() time.Time
}

// Engine implements Service. It is not safe for concurrent use.
type Engine struct {
	bank   *questionbank.Bank
	hist   *history.Store
	sel    *selection.Selector
	events store.EventRepo
	logger *zap.Logger
	now    func() time.Time
	path   string

	active *Session
}

var _ Service = (*Engine)(nil)

// New builds an engine. Every bank category gets a zero entry in history.
func New(bank *questionbank.Bank, hist *history.Store, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	hist.EnsureCategories(bank.Categories())
	return &Engine{
		bank:   bank,
		hist:   hist,
		sel:    selection.NewSelector(opts.Seed),
		events: opts.Events,
		logger: opts.Logger,
		now:    opts.Now,
		path:   opts.HistoryPath,
	}
}

// Bank returns the question bank.
func (e *Engine) Bank() *questionbank.Bank { return e.bank }

// Categories returns every bank category, sorted.
func (e *Engine) Categories() []string {
	return e.bank.Categories()
}

// QuestionCount returns how many questions a category holds; empty means all.
func (e *Engine) QuestionCount(category string) int {
	return e.bank.Count(questionbank.Filter{Category: category})
}

// ReviewCount returns how many prompts await a correct answer.
func (e *Engine) ReviewCount() int {
	return len(e.hist.IncorrectReview)
}

// Save writes history to disk. Failures are logged and returned; the
// in-memory history is kept.
func (e *Engine) Save() error {
	if e.path == "" {
		return nil
	}
	if err := e.hist.Save(e.path); err != nil {
		e.logger.Warn("history save failed", zap.String("path", e.path), zap.Error(err))
		return err
	}
	e.logger.Debug("history saved", zap.String("path", e.path))
	return nil
}

// Shutdown quits a session still in progress, which saves its answers, and
// then saves history.
func (e *Engine) Shutdown() error {
	var quitErr error
	if e.active != nil {
		quitErr = e.active.Quit()
		e.active = nil
	}
	return errors.Join(quitErr, e.Save())
}

// ClearStatistics empties history, keeping zero entries for every category,
// and saves.
func (e *Engine) ClearStatistics() error {
	e.hist.Clear(e.bank.Categories())
	e.logger.Info("statistics cleared")
	return e.Save()
}

// ExportHistory writes history as JSON to dest.
func (e *Engine) ExportHistory(dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	if err := e.hist.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("export history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	return nil
}

// ExportQuestionBank writes the question and answer document to dest.
func (e *Engine) ExportQuestionBank(dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("export questions: %w", err)
	}
	if err := questionbank.WriteExport(f, e.bank); err != nil {
		f.Close()
		return fmt.Errorf("export questions: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export questions: %w", err)
	}
	return nil
}

// StaleReviewPrompts lists review prompts with no matching question in the
// current bank.
func (e *Engine) StaleReviewPrompts() []string {
	var stale []string
	for _, p := range e.hist.ReviewPrompts() {
		if _, ok := e.bank.ByPrompt(p); !ok {
			stale = append(stale, p)
		}
	}
	return stale
}

// PruneReview removes stale review prompts and saves when anything changed.
func (e *Engine) PruneReview() ([]string, error) {
	stale := e.StaleReviewPrompts()
	if len(stale) == 0 {
		return nil, nil
	}
	for _, p := range stale {
		e.hist.RemoveFromReview(p)
	}
	e.logger.Info("pruned review prompts", zap.Int("count", len(stale)))
	return stale, e.Save()
}

// RecentSessions returns up to n finished sessions from the event log,
// newest first. Without an event log it returns nil.
func (e *Engine) RecentSessions(n int) ([]store.SessionSummaryRecord, error) {
	if e.events == nil {
		return nil, nil
	}
	return e.events.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: n})
}

// Statistics is the statistics view plus bank coverage.
type Statistics struct {
	history.StatisticsView

	// BankSize is the number of questions in the bank.
	BankSize int

	// StaleReview counts review prompts missing from the bank.
	StaleReview int
}

// Statistics returns a read-only projection of history.
func (e *Engine) Statistics() Statistics {
	return Statistics{
		StatisticsView: e.hist.Statistics(),
		BankSize:       e.bank.Len(),
		StaleReview:    len(e.StaleReviewPrompts()),
	}
}

// QuestionSummary is one question's record joined with the bank.
type QuestionSummary struct {
	ID       string
	Prompt   string
	Category string
	Attempts int
	Correct  int
	Accuracy float64
	InReview bool

	// LastSeen is when the question was last answered; zero when the
	// history has no timestamped attempts.
	LastSeen time.Time
}

// WeakestQuestions returns up to n attempted bank questions with the lowest
// accuracy; ties go to the one with more attempts.
func (e *Engine) WeakestQuestions(n int) []QuestionSummary {
	var out []QuestionSummary
	for _, q := range e.bank.All() {
		st := e.hist.QuestionStat(q.Prompt)
		if st.Attempts == 0 {
			continue
		}
		var lastSeen time.Time
		if last, ok := st.LastAttempt(); ok {
			lastSeen = last.Timestamp
		}
		out = append(out, QuestionSummary{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Category: q.Category,
			Attempts: st.Attempts,
			Correct:  st.Correct,
			Accuracy: st.Accuracy(),
			InReview: e.hist.InReview(q.Prompt),
			LastSeen: lastSeen,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy < out[j].Accuracy
		}
		return out[i].Attempts > out[j].Attempts
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (e *Engine) appendEvent(fn func(ctx context.Context, repo store.EventRepo) error) {
	if e.events == nil {
		return
	}
	if err := fn(context.Background(), e.events); err != nil {
		e.logger.Warn("event log append failed", zap.Error(err))
	}
}
