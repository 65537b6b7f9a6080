// Package cnab holds the layout constants shared by the shipping encoder and
// the return-file parser: record widths, line terminators, and the shipping
// filename convention.
package cnab

import (
	"fmt"
	"time"
)

// Layout identifies one of the two fixed-width CNAB record widths.
type Layout int

const (
	Layout240 Layout = 240
	Layout400 Layout = 400
)

// Width returns the record width in characters.
func (l Layout) Width() int { return int(l) }

func (l Layout) String() string {
	return fmt.Sprintf("CNAB%d", int(l))
}

// Valid reports whether the layout is one of the two supported widths.
func (l Layout) Valid() bool {
	return l == Layout240 || l == Layout400
}

// LineBreak returns the line terminator the layout's shipping files use.
// CNAB400 files additionally end with the EOFSentinel byte.
func (l Layout) LineBreak() string {
	if l == Layout400 {
		return "\r\n"
	}
	return "\n"
}

// EOFSentinel terminates CNAB400 shipping files.
const EOFSentinel = byte(0x1A)

// DetectLayout picks the layout from the longest observed line width: lines
// up to 240 columns read as CNAB240, anything longer as CNAB400.
func DetectLayout(longest int) Layout {
	if longest <= Layout240.Width() {
		return Layout240
	}
	return Layout400
}

// ShippingFileName renders the external naming convention for a shipping
// file: COB.<layout>.<edi>.<yyyymmdd>.<counter>.<covenant>.REM.
func ShippingFileName(layout Layout, edi string, createdAt time.Time, counter int, covenant string) string {
	return fmt.Sprintf("COB.%d.%s.%s.%06d.%s.REM",
		int(layout), edi, createdAt.Format("20060102"), counter, covenant)
}
