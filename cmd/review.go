package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect or tidy the list of questions to review",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions last answered incorrectly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return writeReviewList(cmd.OutOrStdout(), rt.engine)
	},
}

var reviewPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop review entries whose question is no longer in the bank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		removed, err := rt.engine.PruneReview()
		for _, p := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", truncate(p, 70))
		}
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d review entries.\n", len(removed))
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewPruneCmd)
}

func writeReviewList(out io.Writer, svc engine.Service) error {
	weak := svc.WeakestQuestions(0)
	n := 0
	for _, q := range weak {
		if !q.InReview {
			continue
		}
		n++
		fmt.Fprintf(out, "%s  [%s] %s\n", q.ID, q.Category, q.Prompt)
	}
	if stale := svc.StaleReviewPrompts(); len(stale) > 0 {
		fmt.Fprintf(out, "%d more no longer in the bank (run \"linuxplus review prune\")\n", len(stale))
	}
	if n == 0 {
		fmt.Fprintln(out, "Nothing to review.")
	}
	return nil
}
