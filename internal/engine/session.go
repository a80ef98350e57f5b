package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/store"
)

// Session is a running quiz session. The first question is already pending
// when StartSession returns.
type Session struct {
	ID string

	eng     *Engine
	ctrl    *session.Controller
	shownAt time.Time
	closed  bool
}

// StartSession starts a session and serves its first question. Only one
// session may be in progress at a time.
func (e *Engine) StartSession(opts session.Options) (*Session, error) {
	if e.active != nil && e.active.ctrl.State() == session.StateInProgress {
		return nil, fmt.Errorf("%w: another session is in progress", session.ErrInvalidOperation)
	}
	if opts.Category != "" && !e.bank.HasCategory(opts.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", session.ErrNoQuestions, opts.Category)
	}

	ctrl := session.NewController(e.bank, e.hist, e.sel,
		session.WithSaver(e.Save),
		session.WithClock(e.now),
	)
	if err := ctrl.Start(opts); err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.New().String(), eng: e, ctrl: ctrl}
	e.active = s
	e.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.Stringer("mode", opts.Mode),
		zap.String("filter", opts.FilterLabel()),
		zap.Int("total", ctrl.Position().Total),
	)
	e.appendEvent(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.ID,
			Action:     store.ActionStart,
			Mode:       opts.Mode.String(),
			Category:   opts.Category,
			ReviewOnly: opts.ReviewOnly,
			Timestamp:  e.now(),
		})
	})

	if _, err := s.Next(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the pending question, or nil once the session has ended.
func (s *Session) Current() *session.Question {
	return s.ctrl.Current()
}

// Next serves the next question. It returns nil once the session is over.
func (s *Session) Next() (*session.Question, error) {
	q, err := s.ctrl.Next()
	if err != nil {
		return nil, err
	}
	if q == nil {
		s.close(store.ActionEnd)
		return nil, nil
	}
	s.shownAt = s.eng.now()
	return q, nil
}

// Submit answers the pending question.
func (s *Session) Submit(choice int) (session.AnswerOutcome, error) {
	q := s.ctrl.Current()
	out, err := s.ctrl.Submit(choice)
	if err != nil {
		return out, err
	}

	correct := q.IsCorrect(choice)
	elapsed := s.eng.now().Sub(s.shownAt)
	s.eng.logger.Debug("answer recorded",
		zap.String("session_id", s.ID),
		zap.String("question_id", q.ID),
		zap.Bool("correct", correct),
	)
	s.eng.appendEvent(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:    s.ID,
			QuestionID:   q.ID,
			Category:     q.Category,
			Prompt:       q.Prompt,
			Chosen:       choice,
			CorrectIndex: q.CorrectIndex,
			Correct:      correct,
			TimeMs:       elapsed.Milliseconds(),
			Timestamp:    s.eng.now(),
		})
	})
	return out, nil
}

// Skip passes over the pending question without recording it.
func (s *Session) Skip() error {
	return s.ctrl.Skip()
}

// End finishes the session, saves history and returns the summary. A save
// failure is returned alongside a valid summary.
func (s *Session) End() (session.Summary, error) {
	sum, err := s.ctrl.End()
	if errors.Is(err, session.ErrInvalidOperation) {
		return sum, err
	}
	s.close(store.ActionEnd)
	return sum, err
}

// Quit abandons the session, keeping and saving answers recorded so far.
func (s *Session) Quit() error {
	if s.ctrl.State() != session.StateInProgress {
		return nil
	}
	err := s.ctrl.Quit()
	s.close(store.ActionQuit)
	return err
}

// Position reports progress through the session.
func (s *Session) Position() session.Progress {
	return s.ctrl.Position()
}

// Options returns the options the session was started with.
func (s *Session) Options() session.Options {
	return s.ctrl.Options()
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.ctrl.State() == session.StateEnded
}

// close logs the final session event once.
func (s *Session) close(action string) {
	if s.closed {
		return
	}
	s.closed = true

	sum, _ := s.ctrl.End()
	s.eng.logger.Info("session ended",
		zap.String("session_id", s.ID),
		zap.String("action", action),
		zap.Int("answered", sum.Answered),
		zap.Int("score", sum.Score),
		zap.Int("skipped", sum.Skipped),
	)
	s.eng.appendEvent(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       s.ID,
			Action:          action,
			Mode:            sum.Mode.String(),
			Category:        sum.Category,
			ReviewOnly:      sum.ReviewOnly,
			QuestionsServed: sum.Answered + sum.Skipped,
			CorrectAnswers:  sum.Score,
			Skipped:         sum.Skipped,
			DurationSecs:    int(sum.Duration.Seconds()),
			Timestamp:       s.eng.now(),
		})
	})
}
