package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List question categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := commandRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return writeCategories(cmd.OutOrStdout(), rt.engine)
	},
}

func writeCategories(out io.Writer, svc engine.Service) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tQUESTIONS")
	for _, c := range svc.Categories() {
		fmt.Fprintf(tw, "%s\t%d\n", c, svc.QuestionCount(c))
	}
	fmt.Fprintf(tw, "All categories\t%d\n", svc.QuestionCount(""))
	return tw.Flush()
}
