package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
	ActionQuit  = "quit"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID       string
	Action          string
	Mode            string
	Category        string
	ReviewOnly      bool
	QuestionsServed int
	CorrectAnswers  int
	Skipped         int
	DurationSecs    int
	Timestamp       time.Time // zero means now
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuestionID   string
	Category     string
	Prompt       string
	Chosen       int
	CorrectIndex int
	Correct      bool
	TimeMs       int64
	Timestamp    time.Time // zero means now
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence int64
}

// SessionSummaryRecord is one finished session.
type SessionSummaryRecord struct {
	SessionID       string
	Action          string
	Mode            string
	Category        string
	ReviewOnly      bool
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	Skipped         int
	DurationSecs    int
	Sequence        int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendSessionEvent records a session start, end or quit.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryAnswerEvents returns answer events, newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
}
