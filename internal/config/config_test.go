package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Fatal("exists = true for missing file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.Database) {
		t.Fatalf("database path not expanded: %q", cfg.Paths.Database)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
dialect_dir = "` + dir + `/dialects"
database = "` + dir + `/remessa.db"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg.Logging)
	}
	if cfg.Paths.DialectDir != filepath.Join(dir, "dialects") {
		t.Fatalf("DialectDir = %q", cfg.Paths.DialectDir)
	}
	// Unset fields keep their defaults.
	if !strings.HasSuffix(cfg.Paths.OutputDir, filepath.Join("remessa", "out")) {
		t.Fatalf("OutputDir = %q, want default", cfg.Paths.OutputDir)
	}
	if cfg.LockPath() != cfg.Paths.Database+".lock" {
		t.Fatalf("LockPath() = %q", cfg.LockPath())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("Load() accepted an unsupported log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.Database = filepath.Join(dir, "db", "remessa.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, d := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, filepath.Join(dir, "db")} {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created (err %v)", d, err)
		}
	}
}
