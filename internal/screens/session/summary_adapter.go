package session

import (
	"github.com/abhisek/linuxplus/internal/screen"
	"github.com/abhisek/linuxplus/internal/screens/summary"
	sess "github.com/abhisek/linuxplus/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from session data.
func newSummaryScreenAdapter(s sess.Summary, saveErr error) screen.Screen {
	return summary.New(s, saveErr)
}
