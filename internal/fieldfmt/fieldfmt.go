package fieldfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrOverflow reports a numeric value wider than its declared field.
	ErrOverflow = errors.New("field overflow")
	// ErrFormat reports a value that cannot be rendered or parsed as declared.
	ErrFormat = errors.New("field format")
)

// Date layouts used by bank record definitions.
const (
	DateDDMMYY   = "020106"
	DateDDMMYYYY = "02012006"
	TimeHHMMSS   = "150405"
)

// PadNumber left-pads the decimal rendering of value with zeros to length.
// Values wider than length fail with ErrOverflow.
func PadNumber(value int64, length int) (string, error) {
	return padDigits(strconv.FormatInt(value, 10), length, false)
}

// PadNumberTrim behaves like PadNumber but keeps the rightmost length digits
// when the value overflows. Banks truncate covenant codes this way.
func PadNumberTrim(value int64, length int) string {
	out, _ := padDigits(strconv.FormatInt(value, 10), length, true)
	return out
}

// PadDigits left-pads an already-numeric string with zeros to length. Non
// digit characters fail with ErrFormat; overflow follows PadNumber semantics.
func PadDigits(value string, length int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "0"
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q is not numeric", ErrFormat, value)
		}
	}
	return padDigits(value, length, false)
}

func padDigits(digits string, length int, allowTrim bool) (string, error) {
	if len(digits) > length {
		if !allowTrim {
			return "", fmt.Errorf("%w: %q does not fit in %d digits", ErrOverflow, digits, length)
		}
		return digits[len(digits)-length:], nil
	}
	return strings.Repeat("0", length-len(digits)) + digits, nil
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// PadAlfa strips diacritics, upper-cases, and right-pads value with spaces to
// exactly length characters. Overlong values are silently truncated; free-text
// fields are expected to overflow.
func PadAlfa(value string, length int) string {
	stripped, _, err := transform.String(diacriticStripper, value)
	if err != nil {
		stripped = value
	}
	var b strings.Builder
	b.Grow(length)
	for _, r := range stripped {
		if r < ' ' || r > '~' {
			// Anything outside printable ASCII after stripping becomes a space
			// so the record keeps its declared width in bytes.
			r = ' '
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() == length {
			return b.String()
		}
	}
	out := b.String()
	return out + strings.Repeat(" ", length-len(out))
}

// FormatMoney encodes value as a scaled unsigned integer: multiplied by
// 10^decimals, rounded to nearest, zero-padded to length. Negative values and
// overflow fail with ErrFormat and ErrOverflow respectively.
func FormatMoney(value float64, length, decimals int) (string, error) {
	if value < 0 {
		return "", fmt.Errorf("%w: negative monetary value %v", ErrFormat, value)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: monetary value %v", ErrFormat, value)
	}
	scaled := int64(math.Round(value * math.Pow10(decimals)))
	return padDigits(strconv.FormatInt(scaled, 10), length, false)
}

// ParseMoney is the inverse of FormatMoney: a scaled unsigned integer string
// back to a float with the given decimal shift.
func ParseMoney(value string, decimals int) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a scaled integer", ErrFormat, value)
	}
	return float64(n) / math.Pow10(decimals), nil
}

// ParseNumber decodes a zero-padded numeric field. Blank fields decode to
// zero; any non-digit fails with ErrFormat.
func ParseNumber(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrFormat, value)
	}
	return n, nil
}

// FormatDate renders value using one of the Date* layouts. The zero time
// renders as all zeros, which banks read as an open-ended date.
func FormatDate(value time.Time, layout string) string {
	if value.IsZero() {
		return strings.Repeat("0", len(layout))
	}
	return value.Format(layout)
}

// ParseDate parses a fixed-width date field. All-zero and blank fields decode
// to the zero time; anything else that does not match fails with ErrFormat.
func ParseDate(value, layout string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == strings.Repeat("0", len(trimmed)) {
		return time.Time{}, nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match date layout %q", ErrFormat, value, layout)
	}
	return t, nil
}
