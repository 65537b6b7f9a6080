package extract

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"remessa/internal/cnab"
	"remessa/internal/dialect"
	"remessa/internal/fieldfmt"
	"remessa/internal/retorno"
	"remessa/internal/titles"
)

// Resolver looks up domain references from return-file data. Both methods are
// best-effort: (nil, nil) means not found, and the extractor downgrades any
// error to a warning.
type Resolver interface {
	// Assignment resolves by bank code, agency, and account for the layout.
	Assignment(bank, agency, account string, layout cnab.Layout) (*titles.Assignment, error)

	// Title resolves by our number. assignmentID scopes the lookup and is
	// zero when the assignment itself could not be resolved.
	Title(assignmentID, ourNumber int64) (*titles.Title, error)
}

// Occurrence is one resolved occurrence code from a detail registry.
type Occurrence struct {
	Code        string
	Description string
}

// ProposedChange is the state transition the movement code implies for a
// title. TitleID is zero when the title reference did not resolve; the
// persistence layer decides whether to skip or match by our number.
type ProposedChange struct {
	TitleID   int64
	OurNumber int64
	Status    titles.Status
	ValuePaid float64
}

// TitleResult is everything extracted for one title occurrence in the file.
// Assignment and Title stay nil on a reference miss.
type TitleResult struct {
	Line                int
	OurNumber           int64
	Movement            string
	MovementDescription string
	Occurrences         []Occurrence
	OccurrenceDate      time.Time
	CreditDate          time.Time
	ValuePaid           float64
	Assignment          *titles.Assignment
	Title               *titles.Title
	Change              *ProposedChange
}

// ChargingTotal is one charging modality's count and monetary total summed
// across the file's trailers.
type ChargingTotal struct {
	Name  string
	Count int64
	Value float64
}

// Report is the extractor's output contract to the persistence layer.
type Report struct {
	Titles []*TitleResult
	Totals []ChargingTotal
	Issues []retorno.Issue
}

// Changes returns the proposed state changes in file order.
func (r *Report) Changes() []*ProposedChange {
	var out []*ProposedChange
	for _, t := range r.Titles {
		if t.Change != nil {
			out = append(out, t.Change)
		}
	}
	return out
}

// Extractor derives domain findings from parse results. Stateless between
// calls; reference lookups are memoized per extraction only.
type Extractor struct {
	resolver Resolver
	logger   *slog.Logger
}

// New builds an extractor. resolver may be nil, in which case every reference
// stays unresolved and is warned about.
func New(resolver Resolver, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Extractor{resolver: resolver, logger: logger.With("component", "extractor")}
}

// Extract walks a completed parse result and produces the report. Never
// fails; every problem lands on the report's issue list.
func (x *Extractor) Extract(result *retorno.Result) *Report {
	run := &extraction{
		Extractor:   x,
		d:           result.Dialect,
		layout:      result.Layout,
		bank:        result.Bank,
		report:      &Report{},
		assignments: make(map[string]*titles.Assignment),
	}
	if result.Layout == cnab.Layout240 {
		run.walk240(result)
	} else {
		run.walk400(result)
	}
	run.totals(result)
	x.logger.Debug("extraction complete",
		"titles", len(run.report.Titles), "issues", len(run.report.Issues))
	return run.report
}

// extraction holds the per-call state of one Extract run.
type extraction struct {
	*Extractor
	d           *dialect.Dialect
	layout      cnab.Layout
	bank        string
	report      *Report
	assignments map[string]*titles.Assignment
}

// walk240 pairs each T segment with the U segment that follows it. A T with
// no U still yields a result; its settlement fields stay zero.
func (e *extraction) walk240(result *retorno.Result) {
	for _, lot := range result.Lots {
		var current *TitleResult
		for _, reg := range lot.Details {
			switch reg.Type {
			case dialect.RecordDetailT:
				current = e.titleResult(reg)
				e.report.Titles = append(e.report.Titles, current)
			case dialect.RecordDetailU:
				if current == nil {
					e.warnf(reg.Line, "settlement segment with no preceding title segment")
					continue
				}
				current.ValuePaid = reg.Money("value_paid")
				current.OccurrenceDate = reg.Date("occurrence_date", fieldfmt.DateDDMMYYYY)
				current.CreditDate = reg.Date("credit_date", fieldfmt.DateDDMMYYYY)
				e.propose(current)
				current = nil
			}
		}
		if current != nil {
			e.propose(current)
		}
	}
}

func (e *extraction) walk400(result *retorno.Result) {
	for _, reg := range result.Details() {
		tr := e.titleResult(reg)
		tr.ValuePaid = reg.Money("value_paid")
		tr.OccurrenceDate = reg.Date("occurrence_date", fieldfmt.DateDDMMYY)
		tr.CreditDate = reg.Date("credit_date", fieldfmt.DateDDMMYY)
		e.propose(tr)
		e.report.Titles = append(e.report.Titles, tr)
	}
}

// titleResult builds the movement, occurrence, and reference portion of one
// result from a title-bearing registry.
func (e *extraction) titleResult(reg *retorno.Registry) *TitleResult {
	tr := &TitleResult{Line: reg.Line, Movement: reg.Field("movement")}
	tr.MovementDescription, _ = e.d.MovementDescription(tr.Movement)
	tr.Occurrences = e.occurrences(tr.Movement, reg.Field("occurrence_codes"))

	tr.OurNumber = e.ourNumber(reg)
	tr.Assignment = e.resolveAssignment(reg)
	tr.Title = e.resolveTitle(reg.Line, tr)
	return tr
}

// occurrences splits the ten-column occurrence field into two-character codes
// and resolves each against the movement's occurrence group.
func (e *extraction) occurrences(movement, raw string) []Occurrence {
	var out []Occurrence
	for i := 0; i+2 <= len(raw); i += 2 {
		code := raw[i : i+2]
		if code == "00" || strings.TrimSpace(code) == "" {
			continue
		}
		desc, _ := e.d.OccurrenceDescription(movement, code)
		out = append(out, Occurrence{Code: code, Description: desc})
	}
	return out
}

// ourNumber recovers the numeric our number from the registry's identification
// field, dropping embedded check digits per layout and dialect.
func (e *extraction) ourNumber(reg *retorno.Registry) int64 {
	raw := reg.Field("our_number")
	switch {
	case e.layout == cnab.Layout240:
		// Nineteen digits plus a trailing check digit.
		if len(raw) > 1 {
			raw = raw[:len(raw)-1]
		}
	case e.d.Shipping.OurNumberAsbace:
		// Asbace field: two-zero prefix, seven digits, two check digits.
		if len(raw) >= 9 {
			raw = raw[2:9]
		}
	}
	n, err := fieldfmt.ParseNumber(raw)
	if err != nil {
		e.warnf(reg.Line, "unreadable our number %q", reg.Field("our_number"))
		return 0
	}
	return n
}

func (e *extraction) resolveAssignment(reg *retorno.Registry) *titles.Assignment {
	if e.resolver == nil {
		return nil
	}
	agency := strings.TrimLeft(reg.Field("agency"), "0")
	account := strings.TrimLeft(reg.Field("account"), "0")
	key := agency + "/" + account
	if a, ok := e.assignments[key]; ok {
		return a
	}
	a, err := e.resolver.Assignment(e.bank, agency, account, e.layout)
	if err != nil || a == nil {
		e.warnf(reg.Line, "no assignment for bank %s agency %s account %s", e.bank, agency, account)
		a = nil
	}
	e.assignments[key] = a
	return a
}

func (e *extraction) resolveTitle(line int, tr *TitleResult) *titles.Title {
	if e.resolver == nil || tr.OurNumber == 0 {
		return nil
	}
	var assignmentID int64
	if tr.Assignment != nil {
		assignmentID = tr.Assignment.ID
	}
	t, err := e.resolver.Title(assignmentID, tr.OurNumber)
	if err != nil || t == nil {
		e.warnf(line, "no title for our number %d", tr.OurNumber)
		return nil
	}
	return t
}

// propose derives the state change the movement implies. Unrecognized
// movements warn and propose nothing.
func (e *extraction) propose(tr *TitleResult) {
	change := &ProposedChange{OurNumber: tr.OurNumber}
	if tr.Title != nil {
		change.TitleID = tr.Title.ID
	}
	switch {
	case e.d.ErrorMovement(tr.Movement):
		change.Status = titles.StatusError
	case e.d.PaidMovement(tr.Movement):
		change.Status = titles.StatusSettled
		change.ValuePaid = tr.ValuePaid
	case e.d.InfoMovement(tr.Movement):
		change.Status = titles.StatusOpen
		change.ValuePaid = tr.ValuePaid
	default:
		e.warnf(tr.Line, "unrecognized movement code %q", tr.Movement)
		return
	}
	tr.Change = change
}

// totals sums the charging-type counts and values the dialect declares: from
// every lot trailer on CNAB240, from the file trailer on CNAB400.
func (e *extraction) totals(result *retorno.Result) {
	types := e.d.Return.ChargingTypes
	if len(types) == 0 {
		return
	}
	sums := make([]ChargingTotal, len(types))
	for i, ct := range types {
		sums[i].Name = ct.Name
	}
	add := func(reg *retorno.Registry) {
		for i, ct := range types {
			sums[i].Count += reg.Int(ct.CountField)
			sums[i].Value += reg.Money(ct.ValueField)
		}
	}
	if e.layout == cnab.Layout240 {
		for _, lot := range result.Lots {
			if lot.Trailer != nil {
				add(lot.Trailer)
			}
		}
	} else if result.Trailer != nil {
		add(result.Trailer)
	}
	e.report.Totals = sums
}

func (e *extraction) warnf(line int, format string, args ...any) {
	e.report.Issues = append(e.report.Issues, retorno.Issue{
		Severity: retorno.SeverityWarning,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}
