package config

import (
	"fmt"
	"strings"
)

// normalize expands every path field and fills blank values with defaults.
func (c *Config) normalize() error {
	defaults := Default()
	if strings.TrimSpace(c.Paths.DialectDir) == "" {
		c.Paths.DialectDir = defaults.Paths.DialectDir
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaults.Paths.Database
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	for _, field := range []*string{
		&c.Paths.DialectDir, &c.Paths.OutputDir, &c.Paths.Database, &c.Paths.LogDir,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// Validate checks the loaded configuration for values the CLI cannot work
// with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
