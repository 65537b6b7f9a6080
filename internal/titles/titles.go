package titles

import (
	"fmt"
	"strings"
	"time"
)

// Status tracks a title through its collection lifecycle.
type Status string

const (
	StatusOpen    Status = "open"
	StatusSent    Status = "sent"
	StatusSettled Status = "settled"
	StatusError   Status = "error"
)

// Valid reports whether the status is one of the lifecycle values.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusSent, StatusSettled, StatusError:
		return true
	}
	return false
}

// ChargeKind describes how a fine or discount value is interpreted.
type ChargeKind int

const (
	ChargeNone ChargeKind = iota
	ChargePercent
	ChargeFixed
)

// ChargeRule is a tri-state fine or discount: none, a percentage, or a fixed
// amount, triggered on a date.
type ChargeRule struct {
	Kind  ChargeKind
	Date  time.Time
	Value float64
}

// Set reports whether the rule carries a charge at all.
func (c ChargeRule) Set() bool { return c.Kind != ChargeNone }

// Payer is the party a title is drawn against.
type Payer struct {
	ID           int64
	Name         string
	Document     string
	DocumentKind string
	Street       string
	District     string
	City         string
	State        string
	PostalCode   string
}

// Assignor issues titles and owns assignments with banks.
type Assignor struct {
	ID       int64
	Name     string
	Document string
}

// Assignment binds an assignor to one bank relationship: covenant, agency and
// account with check digits, wallet, and EDI identification. Immutable once a
// shipping file referencing it has been sent.
type Assignment struct {
	ID           int64
	AssignorID   int64
	BankCode     string
	Layout       int
	Covenant     int64
	Agency       string
	AgencyDigit  string
	Account      string
	AccountDigit string
	Wallet       string
	DocumentKind string
	EDICode      string
}

// AgencyAccount renders the agency/account pair for logs and lookups.
func (a Assignment) AgencyAccount() string {
	return fmt.Sprintf("%s-%s/%s-%s", a.Agency, a.AgencyDigit, a.Account, a.AccountDigit)
}

// Title is a billable instrument issued by an assignor against a payer.
// The (assignor, our number) pair is unique.
type Title struct {
	ID             int64
	AssignorID     int64
	AssignmentID   int64
	PayerID        int64
	GuarantorID    int64
	Payer          *Payer
	Specie         string
	DocumentNumber string
	OurNumber      int64
	Status         Status
	Value          float64
	IOF            float64
	Rebate         float64
	Fine           ChargeRule
	Discount       ChargeRule
	Discount2      ChargeRule
	Discount3      ChargeRule
	Description    string
	DueDate        time.Time
	ValuePaid      float64
	IssuedAt       time.Time
}

// DueDateWithin clamps the due date to the bank's valid window: dates outside
// [min, max] are treated as open-ended and render as zeros.
func (t *Title) DueDateWithin(min, max time.Time) time.Time {
	if t.DueDate.IsZero() {
		return time.Time{}
	}
	if !min.IsZero() && t.DueDate.Before(min) {
		return time.Time{}
	}
	if !max.IsZero() && t.DueDate.After(max) {
		return time.Time{}
	}
	return t.DueDate
}

// Validate checks the fields the encoder depends on.
func (t *Title) Validate() error {
	if t.OurNumber <= 0 {
		return fmt.Errorf("title %d: our number must be positive", t.ID)
	}
	if t.Value <= 0 {
		return fmt.Errorf("title %d: value must be positive", t.ID)
	}
	if t.Payer == nil {
		return fmt.Errorf("title %d: payer is required", t.ID)
	}
	if strings.TrimSpace(t.Payer.Name) == "" {
		return fmt.Errorf("title %d: payer name is required", t.ID)
	}
	return nil
}

// HasSecondaryCharges reports whether the title carries the discount or fine
// data that dialects use to gate the optional R segment.
func (t *Title) HasSecondaryCharges() bool {
	return t.Discount2.Set() || t.Discount3.Set() || t.Fine.Set()
}

// PayerCache memoizes payers by identifier during a batch load, so repeated
// titles against the same payer share one record. Owned by the call scope
// that performs the load; not safe for concurrent use.
type PayerCache struct {
	byID map[int64]*Payer
}

// NewPayerCache returns an empty cache.
func NewPayerCache() *PayerCache {
	return &PayerCache{byID: make(map[int64]*Payer)}
}

// Get returns the cached payer or loads and caches it.
func (c *PayerCache) Get(id int64, load func(int64) (*Payer, error)) (*Payer, error) {
	if p, ok := c.byID[id]; ok {
		return p, nil
	}
	p, err := load(id)
	if err != nil {
		return nil, err
	}
	c.byID[id] = p
	return p, nil
}

// Len reports how many payers are cached.
func (c *PayerCache) Len() int { return len(c.byID) }
