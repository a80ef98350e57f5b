package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent sessions from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		n, _ := cmd.Flags().GetInt("limit")
		return writeSessions(cmd.OutOrStdout(), rt.engine, n)
	},
}

func init() {
	sessionsCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show")
}

func writeSessions(out io.Writer, svc engine.Service, n int) error {
	sessions, err := svc.RecentSessions(n)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDED\tMODE\tFILTER\tSCORE\tSKIPPED\tDURATION\tHOW")
	for _, s := range sessions {
		filter := s.Category
		if filter == "" {
			filter = "All categories"
		}
		if s.ReviewOnly {
			filter += " (review)"
		}
		answered := s.QuestionsServed - s.Skipped
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\t%s\t%s\n",
			s.Timestamp.Local().Format("2006-01-02 15:04"),
			s.Mode,
			filter,
			s.CorrectAnswers, answered,
			s.Skipped,
			(time.Duration(s.DurationSecs) * time.Second).String(),
			s.Action,
		)
	}
	return tw.Flush()
}
