package cnab

import (
	"testing"
	"time"
)

func TestDetectLayout(t *testing.T) {
	if got := DetectLayout(240); got != Layout240 {
		t.Fatalf("got %v, want Layout240", got)
	}
	if got := DetectLayout(100); got != Layout240 {
		t.Fatalf("got %v, want Layout240", got)
	}
	if got := DetectLayout(241); got != Layout400 {
		t.Fatalf("got %v, want Layout400", got)
	}
	if got := DetectLayout(400); got != Layout400 {
		t.Fatalf("got %v, want Layout400", got)
	}
}

func TestLineBreak(t *testing.T) {
	if Layout240.LineBreak() != "\n" {
		t.Fatal("CNAB240 uses bare newlines")
	}
	if Layout400.LineBreak() != "\r\n" {
		t.Fatal("CNAB400 uses CRLF")
	}
}

func TestShippingFileName(t *testing.T) {
	createdAt := time.Date(2026, time.July, 14, 10, 0, 0, 0, time.UTC)
	got := ShippingFileName(Layout240, "04", createdAt, 37, "0123456")
	want := "COB.240.04.20260714.000037.0123456.REM"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
