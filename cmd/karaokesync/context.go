package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"karaokesync/internal/config"
	"karaokesync/internal/history"
	"karaokesync/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withHistory runs fn against the run ledger. It is a no-op when the ledger
// is disabled in configuration.
func (c *commandContext) withHistory(ctx context.Context, fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(ctx, cfg.Paths.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// recordRun stores run in the ledger. Failures are logged, not returned.
func (c *commandContext) recordRun(ctx context.Context, logger *slog.Logger, run *history.Run) {
	err := c.withHistory(ctx, func(store *history.Store) error {
		return store.Record(ctx, run)
	})
	if err != nil {
		logging.WarnWithContext(logger, "run not recorded in history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.history_db or delete the ledger"),
			logging.String(logging.FieldImpact, "run missing from `karaokesync history`"),
		)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
