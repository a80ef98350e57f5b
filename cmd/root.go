package cmd

import (
	"fmt"

	"github.com/abhisek/linuxplus/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linuxplus",
	Short: "CompTIA Linux+ flashcard quiz",
	Long: `linuxplus drills CompTIA Linux+ multiple-choice questions in the terminal.

Questions you miss or have never seen come up more often. Run without a
subcommand for the full-screen quiz, or use "linuxplus quiz" for a plain
line-by-line session.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("history", "", "Path to the history file (overrides LINUXPLUS_HISTORY)")
	pf.String("events", "", "Path to the SQLite event log (overrides LINUXPLUS_EVENTS)")
	pf.Bool("no-events", false, "Do not record session and answer events")
	pf.String("bank", "", "Question bank file, .json or .yaml (overrides LINUXPLUS_BANK)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Uint64("seed", 0, "Seed for question selection; 0 picks one at random")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig reads settings from the environment and applies command-line
// flags on top. Flags win over LINUXPLUS_* variables, which win over the XDG
// defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if p, _ := flags.GetString("history"); p != "" {
		cfg.HistoryPath = p
	}
	if p, _ := flags.GetString("events"); p != "" {
		cfg.EventsPath = p
	}
	if off, _ := flags.GetBool("no-events"); off {
		cfg.EventsPath = ""
	}
	if p, _ := flags.GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if l, _ := flags.GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	return cfg, nil
}
