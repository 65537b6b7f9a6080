package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"remessa/internal/store"
	"remessa/internal/titles"
)

// writeTestConfig writes a config file whose paths all live inside a per-test
// temp directory and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "remessa.toml")
	content := fmt.Sprintf(`[paths]
dialect_dir = %q
output_dir = %q
database = %q
log_dir = %q

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "dialects"),
		filepath.Join(base, "out"),
		filepath.Join(base, "remessa.db"),
		filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "remessa dev") {
		t.Errorf("output = %q, want version line", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init without --force refuses to overwrite.
	if _, err := runCommand(t, "--config", path, "config", "init"); err == nil {
		t.Fatal("config init overwrote an existing file")
	}
	if _, err := runCommand(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestDialectsJSON(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", cfgPath, "dialects", "--json")
	if err != nil {
		t.Fatalf("dialects: %v", err)
	}

	var rows []dialectRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) < 5 {
		t.Fatalf("len(rows) = %d, want the built-in dialects", len(rows))
	}
	for _, row := range rows {
		if row.Source != "embedded" {
			t.Errorf("dialect %s/%d source = %q, want embedded", row.Bank, row.Layout, row.Source)
		}
	}
}

func TestEncodeEndToEnd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	base := filepath.Dir(cfgPath)

	s, err := store.Open(filepath.Join(base, "remessa.db"), filepath.Join(base, "remessa.db.lock"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	assignor := &titles.Assignor{Name: "Empresa Exemplo Ltda", Document: "12345678000195"}
	if err := s.CreateAssignor(ctx, assignor); err != nil {
		t.Fatal(err)
	}
	payer := &titles.Payer{Name: "José da Silva", Document: "12345678901", City: "São Paulo", State: "SP"}
	if err := s.CreatePayer(ctx, payer); err != nil {
		t.Fatal(err)
	}
	assignment := &titles.Assignment{
		AssignorID: assignor.ID, BankCode: "001", Layout: 240,
		Covenant: 123, Agency: "5", Account: "12", Wallet: "17", EDICode: "01",
	}
	if err := s.CreateAssignment(ctx, assignment); err != nil {
		t.Fatal(err)
	}
	title := &titles.Title{
		AssignorID: assignor.ID, AssignmentID: assignment.ID, PayerID: payer.ID,
		OurNumber: 12345, Value: 123.45,
		DueDate: time.Date(2026, time.September, 28, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateTitle(ctx, title); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfgPath, "encode",
		"--assignment", fmt.Sprint(assignment.ID), "--json")
	if err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}

	var result encodeOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if result.Titles != 1 || result.Counter != 1 {
		t.Errorf("result = %+v, want 1 title, counter 1", result)
	}

	content, err := os.ReadFile(result.File)
	if err != nil {
		t.Fatalf("shipping file not written: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want 6", len(lines))
	}
	for i, line := range lines {
		if len(line) != 240 {
			t.Errorf("line %d width = %d, want 240", i+1, len(line))
		}
	}

	// The titles are marked sent: a second encode finds nothing to ship.
	out, err = runCommand(t, "--config", cfgPath, "encode",
		"--assignment", fmt.Sprint(assignment.ID))
	if err != nil {
		t.Fatalf("second encode: %v", err)
	}
	if !strings.Contains(out, "No open titles") {
		t.Errorf("second encode output = %q, want no-open-titles message", out)
	}
}
