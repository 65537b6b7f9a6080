package retorno

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"remessa/internal/cnab"
	"remessa/internal/dialect"
)

// ErrInvalidInput reports a return file with no parseable content.
var ErrInvalidInput = errors.New("invalid return file")

var errNotNumeric = errors.New("not numeric")

// excessivePadding flags lines that arrive more than this many columns short
// of the detected layout width; usually a sign of a mangled transfer.
const excessivePadding = 10

// Parser turns raw return-file bytes into a registry tree. Dialects come in
// as an explicit registry; the parser holds no other state and is safe for
// concurrent use.
type Parser struct {
	registry *dialect.Registry
	logger   *slog.Logger
}

// NewParser builds a parser over the given dialect registry.
func NewParser(registry *dialect.Registry, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Parser{registry: registry, logger: logger.With("component", "retorno-parser")}
}

// Result is the hierarchical, best-effort outcome of one parse.
type Result struct {
	Layout  cnab.Layout
	Bank    string
	Dialect *dialect.Dialect
	Header  *Registry
	Lots    []*Lot
	Trailer *Registry
	Issues  []Issue
}

// Registries counts every parsed record, header and trailers included.
func (r *Result) Registries() int {
	n := 0
	if r.Header != nil {
		n++
	}
	if r.Trailer != nil {
		n++
	}
	for _, lot := range r.Lots {
		n += lot.Records()
	}
	return n
}

// Details returns every detail registry in lot order.
func (r *Result) Details() []*Registry {
	var out []*Registry
	for _, lot := range r.Lots {
		out = append(out, lot.Details...)
	}
	return out
}

// Errors filters the issue list down to hard per-line failures.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings filters the issue list down to advisory findings.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

// Parse decodes a complete return file. Fatal errors are limited to empty
// input and a missing dialect registration; everything else is reported on
// the result's issue list while parsing continues.
func (p *Parser) Parse(input []byte) (*Result, error) {
	lines, issues, layout, err := preprocess(input)
	if err != nil {
		return nil, err
	}

	bank := bankCode(lines[0], layout)
	d, err := p.registry.Lookup(bank, layout)
	if err != nil {
		return nil, err
	}

	result := &Result{Layout: layout, Bank: bank, Dialect: d, Issues: issues}
	p.logger.Debug("parsing return file", "bank", bank, "layout", layout.String(), "lines", len(lines))

	legal := append([]string(nil), dialect.StartRecords...)
	var lot *Lot
	for i, line := range lines {
		lineNo := i + 1
		rec := matchRecord(d, legal, line)
		if rec == nil {
			result.Issues = append(result.Issues,
				errorf(lineNo, "no record pattern matched; expected one of %s", strings.Join(legal, ", ")))
			continue
		}
		reg := extract(rec, line, lineNo)

		switch rec.Name {
		case dialect.RecordFileHeader:
			result.Header = reg
		case dialect.RecordLotHeader:
			lot = &Lot{Header: reg}
			result.Lots = append(result.Lots, lot)
		case dialect.RecordLotTrailer:
			if lot == nil {
				lot = &Lot{}
				result.Lots = append(result.Lots, lot)
			}
			lot.Trailer = reg
			checkLot(result, lot)
			lot = nil
		case dialect.RecordFileTrailer:
			result.Trailer = reg
		default:
			if lot == nil {
				lot = &Lot{}
				result.Lots = append(result.Lots, lot)
			}
			lot.Details = append(lot.Details, reg)
		}
		legal = rec.Next
	}

	checkFile(result)
	return result, nil
}

// preprocess strips carriage returns and the CNAB400 EOF sentinel, drops
// blank lines, detects the layout from the longest line, and pads every
// shorter line with trailing spaces to the layout width.
func preprocess(input []byte) ([]string, []Issue, cnab.Layout, error) {
	text := strings.ReplaceAll(string(input), "\r", "")
	text = strings.ReplaceAll(text, string(cnab.EOFSentinel), "")

	var lines []string
	longest := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(line) > longest {
			longest = len(line)
		}
	}
	if len(lines) == 0 {
		return nil, nil, 0, fmt.Errorf("%w: no content lines", ErrInvalidInput)
	}

	layout := cnab.DetectLayout(longest)
	width := layout.Width()
	var issues []Issue
	for i, line := range lines {
		if len(line) >= width {
			lines[i] = line[:width]
			continue
		}
		if width-len(line) > excessivePadding {
			issues = append(issues, warningf(i+1, "line is %d columns short of the %s width", width-len(line), layout))
		}
		lines[i] = line + strings.Repeat(" ", width-len(line))
	}
	return lines, issues, layout, nil
}

// bankCode reads the bank-code field at the layout's fixed offset in the
// first line.
func bankCode(first string, layout cnab.Layout) string {
	if layout == cnab.Layout240 {
		return first[0:3]
	}
	return first[76:79]
}

// matchRecord tries every currently-legal record pattern in declared order;
// first match wins.
func matchRecord(d *dialect.Dialect, legal []string, line string) *dialect.Record {
	for i := range d.Return.Records {
		rec := &d.Return.Records[i]
		if !contains(legal, rec.Name) {
			continue
		}
		if rec.Matches(line) {
			return rec
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func extract(rec *dialect.Record, line string, lineNo int) *Registry {
	fields := make(map[string]string, len(rec.Fields))
	for _, f := range rec.Fields {
		fields[f.Name] = strings.TrimSpace(line[f.Offset : f.Offset+f.Width])
	}
	return &Registry{Type: rec.Name, Line: lineNo, Fields: fields}
}

// checkLot verifies the lot trailer's stated registry count against the
// records actually parsed for the lot. Mismatches warn and parsing goes on.
func checkLot(result *Result, lot *Lot) {
	stated := lot.Trailer.Int("lot_registry_count")
	if stated == 0 {
		return
	}
	actual := int64(lot.Records())
	if stated != actual {
		result.Issues = append(result.Issues,
			warningf(lot.Trailer.Line, "lot trailer states %d registries, parsed %d", stated, actual))
	}
}

// checkFile verifies the file trailer's lot and registry totals.
func checkFile(result *Result) {
	if result.Header == nil {
		result.Issues = append(result.Issues, warningf(0, "no file header parsed"))
	}
	if result.Trailer == nil {
		result.Issues = append(result.Issues, warningf(0, "no file trailer parsed"))
		return
	}
	if stated := result.Trailer.Int("lot_count"); stated > 0 {
		if actual := int64(len(result.Lots)); stated != actual {
			result.Issues = append(result.Issues,
				warningf(result.Trailer.Line, "file trailer states %d lots, parsed %d", stated, actual))
		}
	}
	if stated := result.Trailer.Int("registry_count"); stated > 0 {
		if actual := int64(result.Registries()); stated != actual {
			result.Issues = append(result.Issues,
				warningf(result.Trailer.Line, "file trailer states %d registries, parsed %d", stated, actual))
		}
	}
	if stated := result.Trailer.Int("title_count"); stated > 0 {
		if actual := int64(len(result.Details())); stated != actual {
			result.Issues = append(result.Issues,
				warningf(result.Trailer.Line, "file trailer states %d titles, parsed %d", stated, actual))
		}
	}
}
