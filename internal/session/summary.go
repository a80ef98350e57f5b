package session

import "time"

// Summary is the end-of-session report.
type Summary struct {
	Mode       Mode
	Category   string
	ReviewOnly bool

	Score    int
	Answered int
	Skipped  int
	// Total is how many questions the session could serve.
	Total    int
	Accuracy float64
	Duration time.Duration

	// Completed is true when every available question was served, false
	// when the session was ended early.
	Completed bool

	// VerifyLog lists every answer in verify mode, in order.
	VerifyLog []VerifyEntry
}

// Missed returns the verify entries answered incorrectly.
func (s Summary) Missed() []VerifyEntry {
	var out []VerifyEntry
	for _, e := range s.VerifyLog {
		if !e.Correct {
			out = append(out, e)
		}
	}
	return out
}

func (c *Controller) summary() Summary {
	var accuracy float64
	if c.answered > 0 {
		accuracy = float64(c.score) / float64(c.answered)
	}
	var log []VerifyEntry
	if len(c.verifyLog) > 0 {
		log = make([]VerifyEntry, len(c.verifyLog))
		copy(log, c.verifyLog)
	}
	return Summary{
		Mode:       c.opts.Mode,
		Category:   c.opts.Category,
		ReviewOnly: c.opts.ReviewOnly,
		Score:      c.score,
		Answered:   c.answered,
		Skipped:    c.skipped,
		Total:      c.total,
		Accuracy:   accuracy,
		Duration:   c.endedAt.Sub(c.startedAt),
		Completed:  c.exhausted,
		VerifyLog:  log,
	}
}
