package shipping

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
	"remessa/internal/titles"
)

const (
	// maxLots is the ceiling on lot sequence numbers; 9999 is the file
	// trailer sentinel and never identifies a real lot.
	maxLots = 9998
	// maxLotDetails keeps a lot at the 999998 registry near-limit once its
	// header and trailer are counted.
	maxLotDetails = 999996
	// lotSentinel marks the file trailer's lot field.
	lotSentinel = 9999
	// maxFileCounter bounds the assignor-scoped shipping file sequence.
	maxFileCounter = 999999
)

// MovementEntry is the shipping movement registering a new title.
const MovementEntry = "01"

type lotState struct {
	number  int
	details int // logical title entries
	records int // physical records, header included
	value   float64
}

// Encoder builds one shipping file for a single assignment. Not safe for
// concurrent use; encode a file start to finish within one call scope.
type Encoder struct {
	d          *dialect.Dialect
	assignor   titles.Assignor
	assignment titles.Assignment
	counter    int
	createdAt  time.Time
	logger     *slog.Logger

	lines  []string
	lot    *lotState
	lots   int
	titles int
	value  float64
	seq    int // CNAB400 per-record sequence
	closed bool
	output string
}

// NewEncoder opens a shipping file: the file header is emitted immediately
// and, on CNAB240, lot 1 is opened. counter is the assignor-scoped file
// sequence (at most six digits).
func NewEncoder(d *dialect.Dialect, assignor titles.Assignor, assignment titles.Assignment, counter int, createdAt time.Time, logger *slog.Logger) (*Encoder, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: encoder requires a dialect", dialect.ErrConfiguration)
	}
	if counter < 1 || counter > maxFileCounter {
		return nil, fmt.Errorf("%w: file counter %d exceeds six digits", fieldfmt.ErrOverflow, counter)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	e := &Encoder{
		d:          d,
		assignor:   assignor,
		assignment: assignment,
		counter:    counter,
		createdAt:  createdAt,
		logger:     logger.With("component", "shipping-encoder", "bank", d.BankCode, "layout", d.Layout),
	}

	var header string
	var err error
	if e.layout() == cnab.Layout240 {
		header, err = e.fileHeader240()
	} else {
		header, err = e.fileHeader400()
	}
	if err != nil {
		return nil, err
	}
	e.lines = append(e.lines, header)
	e.seq = 1

	if e.layout() == cnab.Layout240 {
		if err := e.openLot(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Encoder) layout() cnab.Layout { return e.d.CNABLayout() }

// AddLot closes the current lot and opens the next one. Exceeding the lot
// ceiling fails with an overflow error. CNAB400 files have no lots.
func (e *Encoder) AddLot() error {
	if e.layout() != cnab.Layout240 {
		return fmt.Errorf("%w: %s files carry no lots", fieldfmt.ErrFormat, e.layout())
	}
	if e.closed {
		return fmt.Errorf("%w: file is closed", fieldfmt.ErrFormat)
	}
	if e.lots >= maxLots {
		return fmt.Errorf("%w: too many lots (%d)", fieldfmt.ErrOverflow, e.lots)
	}
	if e.lot != nil {
		if err := e.closeLot(); err != nil {
			return err
		}
	}
	return e.openLot()
}

func (e *Encoder) openLot() error {
	if e.lots >= maxLots {
		return fmt.Errorf("%w: too many lots (%d)", fieldfmt.ErrOverflow, e.lots)
	}
	e.lots++
	e.lot = &lotState{number: e.lots, records: 1}
	header, err := e.lotHeader240(e.lots)
	if err != nil {
		return err
	}
	e.lines = append(e.lines, header)
	return nil
}

func (e *Encoder) closeLot() error {
	lot := e.lot
	lot.records++ // the trailer itself
	trailer, err := e.lotTrailer240(lot)
	if err != nil {
		return err
	}
	e.lines = append(e.lines, trailer)
	e.lot = nil
	return nil
}

// AddEntry encodes one title under the given movement code. A closed file
// silently refuses the entry (returns false, nil). On CNAB240 a full lot
// auto-opens its successor before the segments are emitted.
func (e *Encoder) AddEntry(movement string, t *titles.Title) (bool, error) {
	if e.closed {
		return false, nil
	}
	if err := t.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", fieldfmt.ErrFormat, err)
	}

	if e.layout() == cnab.Layout240 {
		if e.lot.details >= maxLotDetails {
			e.logger.Debug("lot full, opening next lot", "lot", e.lot.number, "details", e.lot.details)
			if err := e.AddLot(); err != nil {
				return false, err
			}
		}
		return e.addEntry240(movement, t)
	}
	return e.addEntry400(movement, t)
}

func (e *Encoder) addEntry240(movement string, t *titles.Title) (bool, error) {
	lot := e.lot
	segments := make([]string, 0, 3)

	p, err := e.segmentP(lot.number, lot.records, movement, t)
	if err != nil {
		return false, err
	}
	segments = append(segments, e.masked("P", movement, p))

	q, err := e.segmentQ(lot.number, lot.records+1, movement, t)
	if err != nil {
		return false, err
	}
	segments = append(segments, e.masked("Q", movement, q))

	if e.d.SegmentRRequired(movement, t.HasSecondaryCharges()) {
		r, err := e.segmentR(lot.number, lot.records+2, movement, t)
		if err != nil {
			return false, err
		}
		segments = append(segments, e.masked("R", movement, r))
	}

	e.lines = append(e.lines, segments...)
	lot.records += len(segments)
	lot.details++
	lot.value += t.Value
	e.titles++
	e.value += t.Value
	return true, nil
}

func (e *Encoder) addEntry400(movement string, t *titles.Title) (bool, error) {
	e.seq++
	line, err := e.detail400(movement, t, e.seq)
	if err != nil {
		e.seq--
		return false, err
	}
	line = e.masked("detail", movement, line)
	e.lines = append(e.lines, line)
	e.titles++
	e.value += t.Value
	return true, nil
}

func (e *Encoder) masked(segment, movement, line string) string {
	mask, ok := e.d.Mask(segment, movement)
	if !ok {
		return line
	}
	return applyMask(line, mask)
}

// close ends the file: the open lot is closed and the file trailer emitted
// with the 9999 lot sentinel. Invoked lazily by the first Output call.
func (e *Encoder) close() error {
	if e.closed {
		return nil
	}
	if e.layout() == cnab.Layout240 {
		if e.lot != nil {
			if err := e.closeLot(); err != nil {
				return err
			}
		}
		trailer, err := e.fileTrailer240()
		if err != nil {
			return err
		}
		e.lines = append(e.lines, trailer)
	} else {
		e.seq++
		trailer, err := e.fileTrailer400(e.seq)
		if err != nil {
			e.seq--
			return err
		}
		e.lines = append(e.lines, trailer)
	}
	e.closed = true
	e.logger.Debug("shipping file closed",
		"titles", e.titles, "lots", e.lots, "records", len(e.lines))
	return nil
}

// Output closes the file on first call and returns the serialized bytes.
// Idempotent: repeated calls yield identical output with no duplicated
// trailers.
func (e *Encoder) Output() (string, error) {
	if !e.closed {
		if err := e.close(); err != nil {
			return "", err
		}
		br := e.layout().LineBreak()
		out := strings.Join(e.lines, br) + br
		if e.layout() == cnab.Layout400 {
			out += string(cnab.EOFSentinel)
		}
		e.output = out
	}
	return e.output, nil
}

// FileName renders the external shipping filename convention for this file.
func (e *Encoder) FileName() string {
	covenant := fieldfmt.PadNumberTrim(e.assignment.Covenant, 7)
	edi := e.assignment.EDICode
	if edi == "" {
		edi = "01"
	}
	return cnab.ShippingFileName(e.layout(), edi, e.createdAt, e.counter, covenant)
}

// Titles reports how many entries the file carries so far.
func (e *Encoder) Titles() int { return e.titles }

// Value reports the running monetary total.
func (e *Encoder) Value() float64 { return e.value }

// Lots reports how many lots have been opened (zero for CNAB400).
func (e *Encoder) Lots() int { return e.lots }

// Closed reports whether Output has sealed the file.
func (e *Encoder) Closed() bool { return e.closed }

// ourNumber240 renders the 20-column bank title identification: nineteen
// digits plus the dialect's mod-11 check digit.
func (e *Encoder) ourNumber240(t *titles.Title) (string, error) {
	digits, err := fieldfmt.PadNumber(t.OurNumber, 19)
	if err != nil {
		return "", err
	}
	dv, err := checkDigitFor(e.d, digits)
	if err != nil {
		return "", err
	}
	return digits + dv, nil
}

// ourNumber400 renders the eleven-column our number plus its separate check
// digit column. Asbace dialects compose the agency/account/our-number key and
// embed both check digits in the field itself.
func (e *Encoder) ourNumber400(t *titles.Title) (field, digit string, err error) {
	if e.d.Shipping.OurNumberAsbace {
		return e.ourNumberAsbace(t)
	}
	digits, err := fieldfmt.PadNumber(t.OurNumber, 11)
	if err != nil {
		return "", "", err
	}
	dv, err := checkDigitFor(e.d, digits)
	if err != nil {
		return "", "", err
	}
	return digits, dv, nil
}

func (e *Encoder) ourNumberAsbace(t *titles.Title) (field, digit string, err error) {
	agency, err := fieldfmt.PadDigits(e.assignment.Agency, 4)
	if err != nil {
		return "", "", err
	}
	account, err := fieldfmt.PadDigits(e.assignment.Account, 7)
	if err != nil {
		return "", "", err
	}
	our, err := fieldfmt.PadNumber(t.OurNumber, 7)
	if err != nil {
		return "", "", err
	}
	cd1, cd2, err := checkdigitAsbace(agency + account + our)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", fieldfmt.ErrFormat, err)
	}
	return "00" + our + cd1 + cd2, "0", nil
}
