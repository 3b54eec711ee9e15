package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tarefas/internal/config"
	"github.com/nibzard/tarefas/internal/logging"
	"github.com/nibzard/tarefas/internal/todo"
)

// session bundles the store and logger shared by the tui and batch commands.
type session struct {
	store  *todo.Store
	logger *log.Logger
	runLog *logging.RunLogger
}

// openSession creates the session log (unless log_dir is empty), the store,
// and applies the seed file.
func openSession(cfg *config.Config) (*session, error) {
	s := &session{logger: logging.Discard()}

	if cfg.LogDir != "" {
		runLog, err := logging.NewRunLogger(cfg.LogDir)
		if err != nil {
			return nil, fmt.Errorf("creating session log: %w", err)
		}
		s.runLog = runLog
		s.logger = runLog.Logger(loggerOptions(cfg))
		s.logger.Info("session started", "run_id", runLog.RunID, "workdir", cfg.WorkDir)
	}

	s.store = todo.NewStore()
	s.store.OnChange(func(c todo.Change) {
		s.logger.Debug("task "+string(c.Action), "action", c.Action, "id", c.Task.ID, "remaining", c.Remaining)
	})

	if cfg.SeedFile != "" {
		seed, err := todo.LoadSeed(cfg.SeedFile)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("loading seed file: %w", err)
		}
		if err := seed.Apply(s.store); err != nil {
			s.Close()
			return nil, fmt.Errorf("applying seed file: %w", err)
		}
		s.logger.Info("seed applied", "file", cfg.SeedFile, "tasks", s.store.Len())
	}

	return s, nil
}

func loggerOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.Timestamps = cfg.LogTimestamps
	opts.Caller = cfg.LogCaller
	return opts
}

// Close flushes and closes the session log.
func (s *session) Close() error {
	return s.runLog.Close()
}
