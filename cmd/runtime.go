package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/linuxplus/internal/config"
	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/logging"
	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is everything a command needs: the engine plus the resources it
// holds open.
type runtime struct {
	cfg    *config.Config
	engine *engine.Engine
	logger *zap.Logger

	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// commandRuntime opens a runtime for a non-interactive command. Warnings are
// logged to the command's stderr.
func commandRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	rt, err := openRuntime(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	rt.closers = append([]func() error{func() error {
		_ = logger.Sync()
		return nil
	}}, rt.closers...)
	return rt, nil
}

// openRuntime loads the question bank and history and opens the event log.
// A corrupt history file or an unusable event log is a warning; a bank that
// cannot be read or holds no valid questions is an error.
func openRuntime(cfg *config.Config, logger *zap.Logger) (*runtime, error) {
	bank, issues, err := questionbank.Load(cfg.BankPath)
	if err != nil {
		return nil, err
	}
	for _, is := range issues {
		logger.Warn("skipped question bank record",
			zap.Int("record", is.Index),
			zap.String("prompt", is.Prompt),
			zap.String("reason", is.Reason),
		)
	}
	if bank.Len() == 0 {
		if cfg.BankPath == "" {
			return nil, errors.New("built-in question bank has no valid questions")
		}
		return nil, fmt.Errorf("question bank %s has no valid questions", cfg.BankPath)
	}

	hist, err := history.Load(cfg.HistoryPath)
	if err != nil {
		var lw *history.LoadWarning
		if !errors.As(err, &lw) {
			return nil, err
		}
		logger.Warn("history file could not be used as-is",
			zap.String("path", lw.Path),
			zap.Strings("reset", lw.Reset),
			zap.Error(lw.Err),
		)
	}

	rt := &runtime{cfg: cfg, logger: logger}

	var events store.EventRepo
	if cfg.EventsPath != "" {
		st, err := store.OpenFile(cfg.EventsPath)
		if err != nil {
			logger.Warn("event log disabled", zap.String("path", cfg.EventsPath), zap.Error(err))
		} else {
			events = st.EventRepo()
			rt.closers = append(rt.closers, st.Close)
		}
	}

	rt.engine = engine.New(bank, hist, engine.Options{
		HistoryPath: cfg.HistoryPath,
		Events:      events,
		Logger:      logger,
		Seed:        cfg.Seed,
	})
	logger.Debug("runtime ready",
		zap.Int("questions", bank.Len()),
		zap.String("history", cfg.HistoryPath),
		zap.String("events", cfg.EventsPath),
	)
	return rt, nil
}
