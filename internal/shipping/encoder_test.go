package shipping

import (
	"errors"
	"strings"
	"testing"
	"time"

	"remessa/internal/cnab"
	"remessa/internal/dialect"
	"remessa/internal/fieldfmt"
	"remessa/internal/titles"
)

var testCreatedAt = time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC)

func testAssignor() titles.Assignor {
	return titles.Assignor{ID: 1, Name: "Empresa Exemplo Ltda", Document: "12345678000195"}
}

func testAssignment() titles.Assignment {
	return titles.Assignment{
		ID:           1,
		AssignorID:   1,
		Covenant:     123,
		Agency:       "5",
		AgencyDigit:  "0",
		Account:      "12",
		AccountDigit: "0",
		Wallet:       "17",
		DocumentKind: "2",
		EDICode:      "01",
	}
}

func testTitle() *titles.Title {
	return &titles.Title{
		ID:             1,
		OurNumber:      12345,
		Value:          123.45,
		Specie:         "01",
		DocumentNumber: "NF-1001",
		DueDate:        testCreatedAt.AddDate(0, 0, 30),
		IssuedAt:       testCreatedAt,
		Payer: &titles.Payer{
			ID:         1,
			Name:       "José da Silva",
			Document:   "12345678901",
			Street:     "Rua das Flores 100",
			District:   "Centro",
			City:       "São Paulo",
			State:      "SP",
			PostalCode: "01001000",
		},
	}
}

func testEncoder(t *testing.T, bank string, layout cnab.Layout) *Encoder {
	t.Helper()
	reg, err := dialect.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	d, err := reg.Lookup(bank, layout)
	if err != nil {
		t.Fatalf("Lookup(%s, %s) error = %v", bank, layout, err)
	}
	e, err := NewEncoder(d, testAssignor(), testAssignment(), 1, testCreatedAt, nil)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	return e
}

func outputLines(t *testing.T, e *Encoder) []string {
	t.Helper()
	out, err := e.Output()
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	out = strings.TrimSuffix(out, string(cnab.EOFSentinel))
	br := e.layout().LineBreak()
	return strings.Split(strings.TrimSuffix(out, br), br)
}

func TestEncode240SingleTitle(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	ok, err := e.AddEntry(MovementEntry, testTitle())
	if err != nil || !ok {
		t.Fatalf("AddEntry() = %v, %v; want true, nil", ok, err)
	}

	lines := outputLines(t, e)
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want 6", len(lines))
	}
	for i, line := range lines {
		if len(line) != 240 {
			t.Fatalf("line %d width = %d, want 240", i+1, len(line))
		}
	}

	header := lines[0]
	if got := header[0:3]; got != "001" {
		t.Errorf("bank code = %q, want %q", got, "001")
	}
	if got := header[32:52]; got != "00000000000000000123" {
		t.Errorf("covenant field = %q, want %q", got, "00000000000000000123")
	}

	p := lines[2]
	if p[13] != 'P' {
		t.Fatalf("line 3 segment = %q, want P", p[13])
	}
	if got := p[85:100]; got != "000000000012345" {
		t.Errorf("value field = %q, want %q", got, "000000000012345")
	}
	if got := p[37:57]; got != "00000000000000123455" {
		t.Errorf("our number field = %q, want %q", got, "00000000000000123455")
	}
	if lines[3][13] != 'Q' {
		t.Fatalf("line 4 segment = %q, want Q", lines[3][13])
	}

	lotTrailer := lines[4]
	if lotTrailer[7] != '5' {
		t.Fatalf("line 5 record type = %q, want 5", lotTrailer[7])
	}
	if got := lotTrailer[17:23]; got != "000004" {
		t.Errorf("lot registry count = %q, want %q", got, "000004")
	}
	if got := lotTrailer[23:29]; got != "000001" {
		t.Errorf("lot title count = %q, want %q", got, "000001")
	}
	if got := lotTrailer[29:46]; got != "00000000000012345" {
		t.Errorf("lot value total = %q, want %q", got, "00000000000012345")
	}

	fileTrailer := lines[5]
	if got := fileTrailer[3:7]; got != "9999" {
		t.Errorf("trailer lot field = %q, want sentinel 9999", got)
	}
	if got := fileTrailer[17:23]; got != "000001" {
		t.Errorf("trailer lot count = %q, want %q", got, "000001")
	}
	if got := fileTrailer[23:29]; got != "000006" {
		t.Errorf("trailer registry count = %q, want %q", got, "000006")
	}
}

func TestOutputIdempotent(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	if _, err := e.AddEntry(MovementEntry, testTitle()); err != nil {
		t.Fatal(err)
	}
	first, err := e.Output()
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Output()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("repeated Output() produced different bytes")
	}
}

func TestAddEntryAfterOutput(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	if _, err := e.AddEntry(MovementEntry, testTitle()); err != nil {
		t.Fatal(err)
	}
	before, err := e.Output()
	if err != nil {
		t.Fatal(err)
	}
	ok, err := e.AddEntry(MovementEntry, testTitle())
	if ok || err != nil {
		t.Fatalf("AddEntry after Output = %v, %v; want false, nil", ok, err)
	}
	after, err := e.Output()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Fatal("closed file changed after refused entry")
	}
}

func TestLotSplitOnFullLot(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	if _, err := e.AddEntry(MovementEntry, testTitle()); err != nil {
		t.Fatal(err)
	}
	// Fill the open lot to its logical ceiling; the next entry must land in
	// a fresh lot.
	e.lot.details = maxLotDetails
	if _, err := e.AddEntry(MovementEntry, testTitle()); err != nil {
		t.Fatal(err)
	}
	if got := e.Lots(); got != 2 {
		t.Fatalf("Lots() = %d, want 2", got)
	}
	lines := outputLines(t, e)
	fileTrailer := lines[len(lines)-1]
	if got := fileTrailer[17:23]; got != "000002" {
		t.Errorf("trailer lot count = %q, want %q", got, "000002")
	}
}

func TestLotCeiling(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	e.lots = maxLots
	if err := e.AddLot(); !errors.Is(err, fieldfmt.ErrOverflow) {
		t.Fatalf("AddLot() error = %v, want ErrOverflow", err)
	}
}

func TestSegmentROnSecondaryCharges(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	title := testTitle()
	title.Fine = titles.ChargeRule{Kind: titles.ChargeFixed, Date: title.DueDate, Value: 2.50}
	if _, err := e.AddEntry(MovementEntry, title); err != nil {
		t.Fatal(err)
	}
	lines := outputLines(t, e)
	if len(lines) != 7 {
		t.Fatalf("len(lines) = %d, want 7 with R segment", len(lines))
	}
	if lines[4][13] != 'R' {
		t.Fatalf("line 5 segment = %q, want R", lines[4][13])
	}
	if got := lines[4][74:89]; got != "000000000000250" {
		t.Errorf("fine value field = %q, want %q", got, "000000000000250")
	}
}

func TestMaskOverlay(t *testing.T) {
	e := testEncoder(t, "104", cnab.Layout240)
	ok, err := e.AddEntry("02", testTitle())
	if err != nil || !ok {
		t.Fatalf("AddEntry() = %v, %v; want true, nil", ok, err)
	}
	lines := outputLines(t, e)
	p := lines[2]
	if got := p[117:141]; got != strings.Repeat("0", 24) {
		t.Errorf("masked region = %q, want all zeros", got)
	}
	// Beyond the mask's reach the generic rendering survives.
	if len(p) != 240 {
		t.Fatalf("masked line width = %d, want 240", len(p))
	}
}

func TestEncode400(t *testing.T) {
	e := testEncoder(t, "237", cnab.Layout400)
	ok, err := e.AddEntry(MovementEntry, testTitle())
	if err != nil || !ok {
		t.Fatalf("AddEntry() = %v, %v; want true, nil", ok, err)
	}
	out, err := e.Output()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "\r\n"+string(cnab.EOFSentinel)) {
		t.Fatal("CNAB400 output must end with CRLF and the EOF sentinel")
	}

	lines := outputLines(t, e)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for i, line := range lines {
		if len(line) != 400 {
			t.Fatalf("line %d width = %d, want 400", i+1, len(line))
		}
	}
	for i, want := range []string{"000001", "000002", "000003"} {
		if got := lines[i][394:400]; got != want {
			t.Errorf("line %d sequence = %q, want %q", i+1, got, want)
		}
	}
	detail := lines[1]
	if detail[0] != '1' {
		t.Fatalf("detail record type = %q, want 1", detail[0])
	}
	if got := detail[45:56]; got != "00000012345" {
		t.Errorf("our number = %q, want %q", got, "00000012345")
	}
	if got := detail[56:57]; got != "5" {
		t.Errorf("our number digit = %q, want %q", got, "5")
	}
	if got := detail[71:73]; got != "01" {
		t.Errorf("movement = %q, want %q", got, "01")
	}
	if got := detail[89:102]; got != "0000000012345" {
		t.Errorf("value = %q, want %q", got, "0000000012345")
	}
	if lines[2][0] != '9' {
		t.Fatalf("trailer record type = %q, want 9", lines[2][0])
	}
}

func TestEncode400AsbaceOurNumber(t *testing.T) {
	reg, err := dialect.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	d, err := reg.Lookup("004", cnab.Layout400)
	if err != nil {
		t.Fatal(err)
	}
	assignment := testAssignment()
	assignment.Agency = "21"
	assignment.Account = "1234567"
	e, err := NewEncoder(d, testAssignor(), assignment, 1, testCreatedAt, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddEntry(MovementEntry, testTitle()); err != nil {
		t.Fatal(err)
	}
	lines := outputLines(t, e)
	detail := lines[1]
	if got := detail[45:56]; got != "00001234506" {
		t.Errorf("asbace our number = %q, want %q", got, "00001234506")
	}
	if got := detail[56:57]; got != "0" {
		t.Errorf("asbace digit column = %q, want %q", got, "0")
	}
}

func TestAddLotOn400(t *testing.T) {
	e := testEncoder(t, "237", cnab.Layout400)
	if err := e.AddLot(); !errors.Is(err, fieldfmt.ErrFormat) {
		t.Fatalf("AddLot() error = %v, want ErrFormat", err)
	}
}

func TestCounterBounds(t *testing.T) {
	reg, err := dialect.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	d, err := reg.Lookup("001", cnab.Layout240)
	if err != nil {
		t.Fatal(err)
	}
	for _, counter := range []int{0, -1, maxFileCounter + 1} {
		_, err := NewEncoder(d, testAssignor(), testAssignment(), counter, testCreatedAt, nil)
		if !errors.Is(err, fieldfmt.ErrOverflow) {
			t.Errorf("NewEncoder(counter=%d) error = %v, want ErrOverflow", counter, err)
		}
	}
}

func TestAddEntryInvalidTitle(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	title := testTitle()
	title.Value = 0
	if _, err := e.AddEntry(MovementEntry, title); !errors.Is(err, fieldfmt.ErrFormat) {
		t.Fatalf("AddEntry() error = %v, want ErrFormat", err)
	}
}

func TestFileName(t *testing.T) {
	e := testEncoder(t, "001", cnab.Layout240)
	want := "COB.240.01.20260829.000001.0000123.REM"
	if got := e.FileName(); got != want {
		t.Fatalf("FileName() = %q, want %q", got, want)
	}
}
