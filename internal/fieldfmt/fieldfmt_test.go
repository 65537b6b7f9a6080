package fieldfmt

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestPadNumber(t *testing.T) {
	got, err := PadNumber(123, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0000000123" {
		t.Fatalf("got %q, want %q", got, "0000000123")
	}
}

func TestPadNumberRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 7, 42, 999999, 123456789} {
		padded, err := PadNumber(v, 12)
		if err != nil {
			t.Fatal(err)
		}
		if len(padded) != 12 {
			t.Fatalf("PadNumber(%d, 12) length = %d", v, len(padded))
		}
		back, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		if back != v {
			t.Fatalf("round trip: got %d, want %d", back, v)
		}
	}
}

func TestPadNumberOverflow(t *testing.T) {
	_, err := PadNumber(12345, 4)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
}

func TestPadNumberTrimKeepsLowOrderDigits(t *testing.T) {
	if got := PadNumberTrim(987654321, 4); got != "4321" {
		t.Fatalf("got %q, want %q", got, "4321")
	}
	if got := PadNumberTrim(12, 4); got != "0012" {
		t.Fatalf("got %q, want %q", got, "0012")
	}
}

func TestPadDigits(t *testing.T) {
	got, err := PadDigits("00123", 8)
	if err != nil {
		t.Fatal(err)
	}
	if got != "00000123" {
		t.Fatalf("got %q, want %q", got, "00000123")
	}
	if _, err := PadDigits("12a4", 8); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestPadAlfa(t *testing.T) {
	tests := []struct {
		in     string
		length int
		want   string
	}{
		{"José da Silva", 20, "JOSE DA SILVA       "},
		{"Ação & Cobrança", 15, "ACAO & COBRANCA"},
		{"overflowing free text field", 8, "OVERFLOW"},
		{"", 4, "    "},
	}
	for _, tt := range tests {
		got := PadAlfa(tt.in, tt.length)
		if got != tt.want {
			t.Fatalf("PadAlfa(%q, %d) = %q, want %q", tt.in, tt.length, got, tt.want)
		}
		if len(got) != tt.length {
			t.Fatalf("PadAlfa(%q, %d) length = %d", tt.in, tt.length, len(got))
		}
	}
}

func TestPadAlfaAlwaysUpperASCII(t *testing.T) {
	got := PadAlfa("ítem çom acentuação e ñ", 30)
	for _, r := range got {
		if r > '~' || (r != ' ' && r < '!') {
			t.Fatalf("non-ASCII rune %q in %q", r, got)
		}
		if r >= 'a' && r <= 'z' {
			t.Fatalf("lowercase rune %q in %q", r, got)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	got, err := FormatMoney(123.45, 15, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "000000000012345" {
		t.Fatalf("got %q, want %q", got, "000000000012345")
	}

	// Rounding, not truncation.
	got, err = FormatMoney(0.555, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0000000056" {
		t.Fatalf("got %q, want %q", got, "0000000056")
	}
}

func TestFormatMoneyErrors(t *testing.T) {
	if _, err := FormatMoney(-1.0, 10, 2); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
	if _, err := FormatMoney(99999999999999.0, 10, 2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
}

func TestParseMoney(t *testing.T) {
	got, err := ParseMoney("000000000012345", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 123.45 {
		t.Fatalf("got %v, want 123.45", got)
	}
	if _, err := ParseMoney("12x45", 2); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestParseNumber(t *testing.T) {
	got, err := ParseNumber("0000000123")
	if err != nil {
		t.Fatal(err)
	}
	if got != 123 {
		t.Fatalf("got %d, want 123", got)
	}
	got, err = ParseNumber("   ")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("blank: got %d, want 0", got)
	}
	if _, err := ParseNumber("12x4"); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestFormatDate(t *testing.T) {
	due := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(due, DateDDMMYY); got != "090326" {
		t.Fatalf("got %q, want %q", got, "090326")
	}
	if got := FormatDate(due, DateDDMMYYYY); got != "09032026" {
		t.Fatalf("got %q, want %q", got, "09032026")
	}
	if got := FormatDate(time.Time{}, DateDDMMYYYY); got != strings.Repeat("0", 8) {
		t.Fatalf("zero time: got %q", got)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("09032026", DateDDMMYYYY)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got, err = ParseDate("00000000", DateDDMMYYYY)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatalf("all zeros should decode to zero time, got %v", got)
	}

	if _, err := ParseDate("99999999", DateDDMMYYYY); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}
