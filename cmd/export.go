package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank or answer history",
}

var exportQuestionsCmd = &cobra.Command{
	Use:   "questions <dest>",
	Short: "Write every question followed by an answer key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.engine.ExportQuestionBank(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", rt.engine.QuestionCount(""), args[0])
		return nil
	},
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history <dest>",
	Short: "Write answer history as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.engine.ExportHistory(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote history to %s\n", args[0])
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportQuestionsCmd)
	exportCmd.AddCommand(exportHistoryCmd)
}
