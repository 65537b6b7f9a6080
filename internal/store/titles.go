package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"remessa/internal/cnab"
	"remessa/internal/titles"
)

const dateLayout = "2006-01-02"

// CreateAssignor inserts an assignor and fills its ID.
func (s *Store) CreateAssignor(ctx context.Context, a *titles.Assignor) error {
	ctx = ensureContext(ctx)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO assignors (name, document) VALUES (?, ?)", a.Name, a.Document)
	if err != nil {
		return fmt.Errorf("insert assignor: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

// CreatePayer inserts a payer and fills its ID.
func (s *Store) CreatePayer(ctx context.Context, p *titles.Payer) error {
	ctx = ensureContext(ctx)
	res, err := s.db.ExecContext(ctx, `
INSERT INTO payers (name, document, document_kind, street, district, city, state, postal_code)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Document, p.DocumentKind, p.Street, p.District, p.City, p.State, p.PostalCode)
	if err != nil {
		return fmt.Errorf("insert payer: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

// CreateAssignment inserts an assignment and fills its ID.
func (s *Store) CreateAssignment(ctx context.Context, a *titles.Assignment) error {
	ctx = ensureContext(ctx)
	res, err := s.db.ExecContext(ctx, `
INSERT INTO assignments (assignor_id, bank_code, layout, covenant, agency, agency_digit,
                         account, account_digit, wallet, document_kind, edi_code)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AssignorID, a.BankCode, a.Layout, a.Covenant, a.Agency, a.AgencyDigit,
		a.Account, a.AccountDigit, a.Wallet, a.DocumentKind, a.EDICode)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

// CreateTitle inserts a title and fills its ID. The (assignor, our number)
// pair is unique; duplicates fail.
func (s *Store) CreateTitle(ctx context.Context, t *titles.Title) error {
	ctx = ensureContext(ctx)
	status := t.Status
	if status == "" {
		status = titles.StatusOpen
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO titles (assignor_id, assignment_id, payer_id, our_number, status, specie,
                    document_number, description, value, iof, rebate, value_paid, due_date, issued_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.AssignorID, t.AssignmentID, t.PayerID, t.OurNumber, string(status), t.Specie,
		t.DocumentNumber, t.Description, t.Value, t.IOF, t.Rebate, t.ValuePaid,
		formatDate(t.DueDate), formatDate(t.IssuedAt))
	if err != nil {
		return fmt.Errorf("insert title: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

// OpenTitles returns the assignment's open titles in our-number order, with
// payers attached.
func (s *Store) OpenTitles(ctx context.Context, assignmentID int64) ([]*titles.Title, error) {
	return s.TitlesByStatus(ctx, assignmentID, titles.StatusOpen)
}

// TitlesByStatus returns the assignment's titles in the given status in
// our-number order. Titles in StatusSent are the ones awaiting a return
// occurrence. Repeated payers share one record via the call-scoped cache.
func (s *Store) TitlesByStatus(ctx context.Context, assignmentID int64, status titles.Status) ([]*titles.Title, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, assignor_id, assignment_id, payer_id, our_number, status, specie,
       document_number, description, value, iof, rebate, value_paid, due_date, issued_at
FROM titles WHERE assignment_id = ? AND status = ? ORDER BY our_number`,
		assignmentID, string(status))
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	cache := titles.NewPayerCache()
	var out []*titles.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		t.Payer, err = cache.Get(t.PayerID, func(id int64) (*titles.Payer, error) {
			return s.payer(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) payer(ctx context.Context, id int64) (*titles.Payer, error) {
	p := &titles.Payer{}
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, document, document_kind, street, district, city, state, postal_code
FROM payers WHERE id = ?`, id).Scan(
		&p.ID, &p.Name, &p.Document, &p.DocumentKind,
		&p.Street, &p.District, &p.City, &p.State, &p.PostalCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payer %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query payer: %w", err)
	}
	return p, nil
}

// GetAssignment loads one assignment by ID.
func (s *Store) GetAssignment(ctx context.Context, id int64) (*titles.Assignment, error) {
	ctx = ensureContext(ctx)
	return s.assignmentWhere(ctx, "id = ?", id)
}

// ListAssignments returns every assignment ordered by ID.
func (s *Store) ListAssignments(ctx context.Context) ([]*titles.Assignment, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, assignmentSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()
	var out []*titles.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAssignor loads one assignor by ID.
func (s *Store) GetAssignor(ctx context.Context, id int64) (*titles.Assignor, error) {
	ctx = ensureContext(ctx)
	a := &titles.Assignor{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, document FROM assignors WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.Document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: assignor %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query assignor: %w", err)
	}
	return a, nil
}

// Assignment resolves by bank, agency, account, and layout. Implements the
// extractor's resolver contract: a miss returns (nil, nil).
func (s *Store) Assignment(bank, agency, account string, layout cnab.Layout) (*titles.Assignment, error) {
	a, err := s.assignmentWhere(context.Background(),
		"bank_code = ? AND ltrim(agency, '0') = ? AND ltrim(account, '0') = ? AND layout = ?",
		bank, agency, account, int(layout))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// Title resolves by our number, scoped to the assignment when one resolved.
// A miss returns (nil, nil) per the resolver contract.
func (s *Store) Title(assignmentID, ourNumber int64) (*titles.Title, error) {
	query := `
SELECT id, assignor_id, assignment_id, payer_id, our_number, status, specie,
       document_number, description, value, iof, rebate, value_paid, due_date, issued_at
FROM titles WHERE our_number = ?`
	args := []any{ourNumber}
	if assignmentID != 0 {
		query += " AND assignment_id = ?"
		args = append(args, assignmentID)
	}
	rows, err := s.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query title: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanTitle(rows)
	if err != nil {
		return nil, err
	}
	return t, rows.Err()
}

const assignmentSelect = `
SELECT id, assignor_id, bank_code, layout, covenant, agency, agency_digit,
       account, account_digit, wallet, document_kind, edi_code
FROM assignments`

func (s *Store) assignmentWhere(ctx context.Context, where string, args ...any) (*titles.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, assignmentSelect+" WHERE "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignment: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: assignment", ErrNotFound)
	}
	return scanAssignment(rows)
}

func scanAssignment(rows *sql.Rows) (*titles.Assignment, error) {
	a := &titles.Assignment{}
	err := rows.Scan(&a.ID, &a.AssignorID, &a.BankCode, &a.Layout, &a.Covenant,
		&a.Agency, &a.AgencyDigit, &a.Account, &a.AccountDigit,
		&a.Wallet, &a.DocumentKind, &a.EDICode)
	if err != nil {
		return nil, fmt.Errorf("scan assignment: %w", err)
	}
	return a, nil
}

func scanTitle(rows *sql.Rows) (*titles.Title, error) {
	t := &titles.Title{}
	var status, dueDate, issuedAt string
	err := rows.Scan(&t.ID, &t.AssignorID, &t.AssignmentID, &t.PayerID, &t.OurNumber,
		&status, &t.Specie, &t.DocumentNumber, &t.Description,
		&t.Value, &t.IOF, &t.Rebate, &t.ValuePaid, &dueDate, &issuedAt)
	if err != nil {
		return nil, fmt.Errorf("scan title: %w", err)
	}
	t.Status = titles.Status(status)
	t.DueDate = parseDate(dueDate)
	t.IssuedAt = parseDate(issuedAt)
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
