package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestConsoleLogger(w io.Writer, level string) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(w, levelVar))
}

func TestConsolePromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestConsoleLogger(&buf, "info").With("component", "shipping-encoder")
	logger.Info("file closed", "titles", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO shipping-encoder: file closed") {
		t.Fatalf("line = %q, want component prefix", line)
	}
	if !strings.Contains(line, "titles=3") {
		t.Fatalf("line = %q, want titles attr", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("line = %q, component must not repeat as an attr", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestConsoleLogger(&buf, "info")
	logger.Info("parsed", "bank_name", "BANCO DO BRASIL S.A.")
	if !strings.Contains(buf.String(), `bank_name="BANCO DO BRASIL S.A."`) {
		t.Fatalf("line = %q, want quoted value", buf.String())
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestConsoleLogger(&buf, "warn")
	logger.Info("ignored")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("output = %q, info should be filtered", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("output = %q, warn should pass", out)
	}
}

func TestConsoleGroupsFlatten(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestConsoleLogger(&buf, "info")
	logger.WithGroup("lot").Info("closed", "number", 2)
	if !strings.Contains(buf.String(), "lot.number=2") {
		t.Fatalf("line = %q, want flattened group key", buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, levelVar))
	logger.Info("encoded", "bank", "001")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if record["msg"] != "encoded" {
		t.Fatalf("msg = %v, want encoded", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v, want info", record["level"])
	}
	if record["bank"] != "001" {
		t.Fatalf("bank = %v, want 001", record["bank"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("New() accepted an unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled at every level")
	}
}
