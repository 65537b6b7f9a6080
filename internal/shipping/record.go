package shipping

import (
	"fmt"
	"strings"
	"time"

	"remessa/internal/fieldfmt"
)

// recordBuilder accumulates fixed-width fields left to right and keeps the
// first formatting error. build verifies the final width so a miscounted
// layout can never leak a corrupt record.
type recordBuilder struct {
	b   strings.Builder
	err error
}

func (r *recordBuilder) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *recordBuilder) num(v int64, width int) {
	out, err := fieldfmt.PadNumber(v, width)
	if err != nil {
		r.fail(err)
		return
	}
	r.b.WriteString(out)
}

// numTrim keeps the low-order digits on overflow, for bank-truncated fields.
func (r *recordBuilder) numTrim(v int64, width int) {
	r.b.WriteString(fieldfmt.PadNumberTrim(v, width))
}

func (r *recordBuilder) digits(s string, width int) {
	out, err := fieldfmt.PadDigits(s, width)
	if err != nil {
		r.fail(err)
		return
	}
	r.b.WriteString(out)
}

// digitsTrim keeps the rightmost digits of an already-numeric string, for
// fields narrower than the configured value (wallet and specie codes).
func (r *recordBuilder) digitsTrim(s string, width int) {
	s = strings.TrimSpace(s)
	if s == "" {
		r.zeros(width)
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			r.fail(fmt.Errorf("%w: %q is not numeric", fieldfmt.ErrFormat, s))
			return
		}
	}
	if len(s) > width {
		s = s[len(s)-width:]
	}
	r.b.WriteString(strings.Repeat("0", width-len(s)) + s)
}

func (r *recordBuilder) alfa(s string, width int) {
	r.b.WriteString(fieldfmt.PadAlfa(s, width))
}

func (r *recordBuilder) money(v float64, width int) {
	out, err := fieldfmt.FormatMoney(v, width, 2)
	if err != nil {
		r.fail(err)
		return
	}
	r.b.WriteString(out)
}

func (r *recordBuilder) date(t time.Time, layout string) {
	r.b.WriteString(fieldfmt.FormatDate(t, layout))
}

func (r *recordBuilder) lit(s string) {
	r.b.WriteString(s)
}

func (r *recordBuilder) blank(width int) {
	r.b.WriteString(strings.Repeat(" ", width))
}

func (r *recordBuilder) zeros(width int) {
	r.b.WriteString(strings.Repeat("0", width))
}

func (r *recordBuilder) build(width int) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	out := r.b.String()
	if len(out) != width {
		return "", fmt.Errorf("%w: record rendered %d characters, want %d", fieldfmt.ErrFormat, len(out), width)
	}
	return out, nil
}

// applyMask overlays a dialect mask on a rendered record: every non-'*'
// character of the mask overwrites the same position. Masks shorter than the
// record leave the tail untouched.
func applyMask(line, mask string) string {
	if mask == "" {
		return line
	}
	out := []byte(line)
	for i := 0; i < len(mask) && i < len(out); i++ {
		if mask[i] != '*' {
			out[i] = mask[i]
		}
	}
	return string(out)
}
