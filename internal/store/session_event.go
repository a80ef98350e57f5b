package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp, session_id, action, mode, category, review_only,
		 questions_served, correct_answers, skipped, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, eventTime(data.Timestamp), data.SessionID, data.Action, data.Mode,
		data.Category, data.ReviewOnly, data.QuestionsServed, data.CorrectAnswers,
		data.Skipped, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, question_id, category, prompt,
		 chosen, correct_index, correct, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, eventTime(data.Timestamp), data.SessionID, data.QuestionID,
		data.Category, data.Prompt, data.Chosen, data.CorrectIndex, data.Correct,
		data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	where, args := whereClause(opts)
	rows, err := r.db.QueryContext(ctx, `SELECT sequence, timestamp, session_id,
		question_id, category, prompt, chosen, correct_index, correct, time_ms
		FROM answer_events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec AnswerEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.QuestionID,
			&rec.Category, &rec.Prompt, &rec.Chosen, &rec.CorrectIndex,
			&rec.Correct, &rec.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := whereClause(opts, "action IN ('end', 'quit')")
	rows, err := r.db.QueryContext(ctx, `SELECT sequence, timestamp, session_id,
		action, mode, category, review_only, questions_served, correct_answers,
		skipped, duration_secs
		FROM session_events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Action,
			&rec.Mode, &rec.Category, &rec.ReviewOnly, &rec.QuestionsServed,
			&rec.CorrectAnswers, &rec.Skipped, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}
