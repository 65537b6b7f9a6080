// Package config loads and validates the application's TOML configuration:
// where bank dialect overrides live, where shipping files are written, the
// SQLite database path, and log output settings. A missing config file yields
// the defaults; an invalid one fails loudly.
package config
