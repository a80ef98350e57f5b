package cmd

import (
	"fmt"

	"github.com/abhisek/linuxplus/internal/app"
	"github.com/abhisek/linuxplus/internal/config"
	"github.com/abhisek/linuxplus/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp loads the bank and history, opens the event log, and launches the
// TUI. Logs go to a file so they do not draw over the alternate screen.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.EnsureDir(cfg.LogPath()); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logger, closeLog, err := logging.NewFile(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := openRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	runErr := app.Run(rt.engine, app.Options{Logger: logger})

	// Ctrl+C can leave a session open.
	if err := rt.engine.Shutdown(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: could not save history:", err)
	}
	if runErr != nil {
		logger.Error("tui exited with error", zap.Error(runErr))
	}
	return runErr
}
