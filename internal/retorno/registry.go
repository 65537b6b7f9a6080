package retorno

import (
	"strings"
	"time"

	"remessa/internal/fieldfmt"
)

// Registry is one parsed fixed-width record: a type tag and the trimmed
// field values the dialect's record declaration captured. Immutable once
// built.
type Registry struct {
	Type   string
	Line   int
	Fields map[string]string
}

// Field returns the trimmed field value, empty when absent.
func (r *Registry) Field(name string) string {
	return r.Fields[name]
}

// Int decodes a numeric field, tolerating blanks as zero.
func (r *Registry) Int(name string) int64 {
	v := strings.TrimSpace(r.Fields[name])
	if v == "" {
		return 0
	}
	n, err := parseInt(v)
	if err != nil {
		return 0
	}
	return n
}

// Money decodes a scaled-integer monetary field with two decimals.
func (r *Registry) Money(name string) float64 {
	v, err := fieldfmt.ParseMoney(r.Fields[name], 2)
	if err != nil {
		return 0
	}
	return v
}

// Date decodes a date field with the given layout; blanks and zeros yield
// the zero time.
func (r *Registry) Date(name, layout string) time.Time {
	t, err := fieldfmt.ParseDate(r.Fields[name], layout)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseInt(v string) (int64, error) {
	var n int64
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, errNotNumeric
		}
		n = n*10 + int64(v[i]-'0')
	}
	return n, nil
}

// Lot groups the registries between one lot header and its trailer. CNAB400
// files, which have no lot structure, parse into a single lot with nil
// header and trailer.
type Lot struct {
	Header  *Registry
	Details []*Registry
	Trailer *Registry
}

// Records counts the physical registries in the lot, header and trailer
// included.
func (l *Lot) Records() int {
	n := len(l.Details)
	if l.Header != nil {
		n++
	}
	if l.Trailer != nil {
		n++
	}
	return n
}
