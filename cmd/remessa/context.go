package main

import (
	"fmt"
	"log/slog"
	"sync"

	"remessa/internal/config"
	"remessa/internal/dialect"
	"remessa/internal/logging"
	"remessa/internal/store"
)

// commandContext shares lazily-loaded configuration and its derived handles
// across subcommands. Config loads at most once per invocation.
type commandContext struct {
	configFlag *string

	once       sync.Once
	config     *config.Config
	configPath string
	exists     bool
	configErr  error

	logger *slog.Logger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		cfg, path, exists, err := config.Load(c.configValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.configErr = fmt.Errorf("configure logging: %w", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.exists = exists
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() string {
	if c.configFlag == nil {
		return ""
	}
	return *c.configFlag
}

// dialects loads the built-in registry with the configured override directory
// applied on top.
func (c *commandContext) dialects() (*dialect.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return dialect.Load(cfg.Paths.DialectDir)
}

// openStore opens the title database. Callers own the returned handle and
// must close it.
func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Paths.Database, cfg.LockPath(), c.logger)
}
