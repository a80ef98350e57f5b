package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase all answer statistics and the review list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Erase all statistics? [y/N] ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return nil
		}

		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.engine.ClearStatistics(); err != nil {
			return fmt.Errorf("clear statistics: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Statistics cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// confirm asks a yes/no question on out and reads the reply from in.
// Anything other than y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
