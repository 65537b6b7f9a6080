package config

const (
	defaultDialectDir = "~/.config/remessa/dialects"
	defaultOutputDir  = "~/.local/share/remessa/out"
	defaultDatabase   = "~/.local/share/remessa/remessa.db"
	defaultLogDir     = "~/.local/share/remessa/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DialectDir: defaultDialectDir,
			OutputDir:  defaultOutputDir,
			Database:   defaultDatabase,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
