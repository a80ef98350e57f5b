package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		weak, _ := cmd.Flags().GetInt("weak")
		return writeStats(cmd.OutOrStdout(), rt.engine, weak)
	},
}

func init() {
	statsCmd.Flags().Int("weak", 5, "Also list this many weakest questions (0 hides them)")
}

func writeStats(out io.Writer, svc engine.Service, weak int) error {
	st := svc.Statistics()

	fmt.Fprintf(out, "Answered:  %d (%d correct, %s)\n", st.TotalAttempts, st.TotalCorrect, percent(st.Accuracy, st.TotalAttempts))
	fmt.Fprintf(out, "Seen:      %d of %d questions\n", st.QuestionsSeen, st.BankSize)
	fmt.Fprintf(out, "To review: %d\n", st.ReviewCount)
	if st.StaleReview > 0 {
		fmt.Fprintf(out, "           %d no longer in the bank (run \"linuxplus review prune\")\n", st.StaleReview)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCORRECT\tATTEMPTS\tACCURACY")
	for _, row := range st.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", row.Name, row.Correct, row.Attempts, percent(row.Accuracy, row.Attempts))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if weak <= 0 {
		return nil
	}
	weakest := svc.WeakestQuestions(weak)
	if len(weakest) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nWeakest questions:")
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACCURACY\tATTEMPTS\tLAST SEEN\tQUESTION")
	for _, q := range weakest {
		mark := ""
		if q.InReview {
			mark = " *"
		}
		lastSeen := "-"
		if !q.LastSeen.IsZero() {
			lastSeen = q.LastSeen.Local().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s%s\n", q.ID, percent(q.Accuracy, q.Attempts), q.Attempts, lastSeen, truncate(q.Prompt, 60), mark)
	}
	return tw.Flush()
}

// percent formats an accuracy, or "-" when nothing was attempted.
func percent(acc float64, attempts int) string {
	if attempts == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", acc*100)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
