package dialect

import (
	"slices"
	"time"

	"remessa/internal/cnab"
)

// Dialect carries every per-bank table the encoder and parser consult.
type Dialect struct {
	BankCode string `toml:"bank_code"`
	BankName string `toml:"bank_name"`
	Layout   int    `toml:"layout"`

	Shipping Shipping `toml:"shipping"`
	Return   Return   `toml:"return"`

	// Source records where the dialect came from: "embedded" or a file path.
	Source string `toml:"-"`
}

// Shipping groups the encoder-side tables.
type Shipping struct {
	OurNumberBase   int               `toml:"our_number_base"`
	OurNumberAsbace bool              `toml:"our_number_asbace"`
	Wallets         []string          `toml:"wallets"`
	Species         map[string]string `toml:"species"`
	DueDateMin      string            `toml:"due_date_min"`
	DueDateMax      string            `toml:"due_date_max"`
	SegmentR        SegmentR          `toml:"segment_r"`
	Masks           []Mask            `toml:"masks"`
}

// SegmentR is the per-dialect predicate gating the optional R segment in
// CNAB240 shipping files.
type SegmentR struct {
	Movements          []string `toml:"movements"`
	OnSecondaryCharges bool     `toml:"on_secondary_charges"`
}

// Mask is a literal overlay applied to a generically formatted segment for a
// given movement: every non-'*' character overwrites the same position.
// Masks shorter than the record width leave the tail untouched.
type Mask struct {
	Segment  string `toml:"segment"`
	Movement string `toml:"movement"`
	Mask     string `toml:"mask"`
}

// Return groups the parser- and extractor-side tables.
type Return struct {
	Records        []Record                     `toml:"records"`
	Movements      map[string]string            `toml:"movements"`
	MovementGroups map[string]string            `toml:"movement_groups"`
	Occurrences    map[string]map[string]string `toml:"occurrences"`
	ErrorMovements []string                     `toml:"error_movements"`
	PaidMovements  []string                     `toml:"paid_movements"`
	InfoMovements  []string                     `toml:"info_movements"`
	ChargingTypes  []ChargingType               `toml:"charging_types"`
}

// ChargingType names a charging modality and the lot-trailer fields holding
// its count and monetary total.
type ChargingType struct {
	Name       string `toml:"name"`
	CountField string `toml:"count_field"`
	ValueField string `toml:"value_field"`
}

// Record declares one return-file record type: how to recognize a line, the
// named fields to extract, and which record types may legally follow it.
type Record struct {
	Name   string   `toml:"name"`
	Match  []Match  `toml:"match"`
	Fields []Field  `toml:"fields"`
	Next   []string `toml:"next"`
}

// Match is a positional literal test: the record matches only when the line
// carries Value at Offset.
type Match struct {
	Offset int    `toml:"offset"`
	Value  string `toml:"value"`
}

// Field is a positional capture: Width characters starting at Offset, trimmed.
type Field struct {
	Name   string `toml:"name"`
	Offset int    `toml:"offset"`
	Width  int    `toml:"width"`
}

// Matches reports whether the line satisfies every positional literal.
func (r *Record) Matches(line string) bool {
	for _, m := range r.Match {
		end := m.Offset + len(m.Value)
		if end > len(line) || line[m.Offset:end] != m.Value {
			return false
		}
	}
	return len(r.Match) > 0
}

// CNABLayout returns the dialect's layout as the shared type.
func (d *Dialect) CNABLayout() cnab.Layout { return cnab.Layout(d.Layout) }

// Record returns the named return-record declaration.
func (d *Dialect) Record(name string) (*Record, bool) {
	for i := range d.Return.Records {
		if d.Return.Records[i].Name == name {
			return &d.Return.Records[i], true
		}
	}
	return nil, false
}

// Mask returns the overlay registered for a segment and movement, if any.
func (d *Dialect) Mask(segment, movement string) (string, bool) {
	for _, m := range d.Shipping.Masks {
		if m.Segment == segment && m.Movement == movement {
			return m.Mask, true
		}
	}
	return "", false
}

// SegmentRRequired evaluates the per-dialect predicate for emitting an R
// segment: either the movement is listed, or the title carries secondary
// charges and the dialect opts in.
func (d *Dialect) SegmentRRequired(movement string, secondaryCharges bool) bool {
	if slices.Contains(d.Shipping.SegmentR.Movements, movement) {
		return true
	}
	return secondaryCharges && d.Shipping.SegmentR.OnSecondaryCharges
}

// MovementDescription resolves a movement code to its human-readable text.
func (d *Dialect) MovementDescription(code string) (string, bool) {
	desc, ok := d.Return.Movements[code]
	return desc, ok
}

// OccurrenceDescription resolves an occurrence code within the group the
// movement code selects. Movements with no declared group fall back to the
// "general" group.
func (d *Dialect) OccurrenceDescription(movement, code string) (string, bool) {
	group, ok := d.Return.MovementGroups[movement]
	if !ok {
		group = "general"
	}
	table, ok := d.Return.Occurrences[group]
	if !ok {
		return "", false
	}
	desc, ok := table[code]
	return desc, ok
}

// ErrorMovement reports whether the movement belongs to the dialect's error
// set (title should transition to the error status).
func (d *Dialect) ErrorMovement(code string) bool {
	return slices.Contains(d.Return.ErrorMovements, code)
}

// PaidMovement reports whether the movement carries a settlement value.
func (d *Dialect) PaidMovement(code string) bool {
	return slices.Contains(d.Return.PaidMovements, code)
}

// InfoMovement reports whether the movement is informational: the title stays
// open with no state change beyond an optional value paid.
func (d *Dialect) InfoMovement(code string) bool {
	return slices.Contains(d.Return.InfoMovements, code)
}

// DueDateWindow returns the bank's valid due-date window. Zero bounds mean
// the side is unbounded.
func (d *Dialect) DueDateWindow() (min, max time.Time) {
	min, _ = time.Parse("2006-01-02", d.Shipping.DueDateMin)
	max, _ = time.Parse("2006-01-02", d.Shipping.DueDateMax)
	return min, max
}
