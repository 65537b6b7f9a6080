package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"remessa/internal/cnab"
	"remessa/internal/extract"
	"remessa/internal/titles"
)

// maxFileCounter is the six-digit ceiling on the assignor-scoped shipping
// file sequence.
const maxFileCounter = 999999

var _ extract.Resolver = (*Store)(nil)

// ErrCounterExhausted reports that an assignor has used every shipping file
// counter value.
var ErrCounterExhausted = errors.New("file counter exhausted")

// Batch records one emitted shipping file.
type Batch struct {
	ID           string
	AssignmentID int64
	FileName     string
	Counter      int
	TitleCount   int
	TotalValue   float64
	CreatedAt    time.Time
}

// NextFileCounter allocates the assignor's next shipping file counter. A
// process-wide flock serializes allocation across concurrent invocations.
func (s *Store) NextFileCounter(ctx context.Context, assignorID int64) (int, error) {
	ctx = ensureContext(ctx)
	lock := flock.New(s.lockPath)
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("acquire counter lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	var counter int
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			"SELECT counter FROM file_counters WHERE assignor_id = ?", assignorID)
		var current int
		switch err := row.Scan(&current); {
		case errors.Is(err, sql.ErrNoRows):
			current = 0
		case err != nil:
			return fmt.Errorf("read counter: %w", err)
		}
		if current >= maxFileCounter {
			return fmt.Errorf("%w: assignor %d reached %d", ErrCounterExhausted, assignorID, maxFileCounter)
		}
		counter = current + 1
		_, err := tx.ExecContext(ctx, `
INSERT INTO file_counters (assignor_id, counter) VALUES (?, ?)
ON CONFLICT (assignor_id) DO UPDATE SET counter = excluded.counter`,
			assignorID, counter)
		if err != nil {
			return fmt.Errorf("write counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return counter, nil
}

// RecordBatch marks the shipped titles sent and records the batch, in one
// transaction.
func (s *Store) RecordBatch(ctx context.Context, batch *Batch, titleIDs []int64) error {
	ctx = ensureContext(ctx)
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now()
	}
	batch.TitleCount = len(titleIDs)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range titleIDs {
			res, err := tx.ExecContext(ctx,
				"UPDATE titles SET status = ? WHERE id = ? AND status = ?",
				string(titles.StatusSent), id, string(titles.StatusOpen))
			if err != nil {
				return fmt.Errorf("mark title %d sent: %w", id, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: open title %d", ErrNotFound, id)
			}
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO shipping_batches (id, assignment_id, file_name, counter, title_count, total_value, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			batch.ID, batch.AssignmentID, batch.FileName, batch.Counter,
			batch.TitleCount, batch.TotalValue, timestamp(batch.CreatedAt))
		if err != nil {
			return fmt.Errorf("record batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("shipping batch recorded",
		"batch", batch.ID, "file", batch.FileName, "titles", batch.TitleCount)
	return nil
}

// ApplyResult summarizes one transactional application of extractor
// proposals.
type ApplyResult struct {
	ID      string
	Applied int
	Skipped int
}

// ApplyChanges applies the extractor's proposed changes in one transaction.
// Proposals with no resolved title are skipped and counted; the session is
// recorded either way.
func (s *Store) ApplyChanges(ctx context.Context, bank string, layout cnab.Layout, changes []*extract.ProposedChange) (*ApplyResult, error) {
	ctx = ensureContext(ctx)
	result := &ApplyResult{ID: uuid.NewString()}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, change := range changes {
			if change.TitleID == 0 {
				result.Skipped++
				continue
			}
			_, err := tx.ExecContext(ctx,
				"UPDATE titles SET status = ?, value_paid = ? WHERE id = ?",
				string(change.Status), change.ValuePaid, change.TitleID)
			if err != nil {
				return fmt.Errorf("apply change to title %d: %w", change.TitleID, err)
			}
			result.Applied++
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO return_applications (id, bank_code, layout, applied_count, skipped_count, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			result.ID, bank, int(layout), result.Applied, result.Skipped, timestamp(time.Now()))
		if err != nil {
			return fmt.Errorf("record application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("return applied",
		"session", result.ID, "applied", result.Applied, "skipped", result.Skipped)
	return result, nil
}
