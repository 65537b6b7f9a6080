// Package testsupport provides shared fixtures for tests: a temp-dir config,
// an open store, and seeded domain objects.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"remessa/internal/config"
	"remessa/internal/store"
	"remessa/internal/titles"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DialectDir = filepath.Join(base, "dialects")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.Database = filepath.Join(base, "remessa.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// OpenStore opens a store on a per-test temp database and closes it with the
// test.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	cfg := NewConfig(t)
	s, err := store.Open(cfg.Paths.Database, cfg.LockPath(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Seed holds the identifiers of one seeded assignor/assignment/payer set.
type Seed struct {
	Assignor   *titles.Assignor
	Assignment *titles.Assignment
	Payer      *titles.Payer
}

// SeedStore inserts a standard assignor, payer, and assignment.
func SeedStore(t testing.TB, s *store.Store) *Seed {
	t.Helper()
	ctx := context.Background()

	assignor := &titles.Assignor{Name: "Empresa Exemplo Ltda", Document: "12345678000195"}
	if err := s.CreateAssignor(ctx, assignor); err != nil {
		t.Fatalf("seed assignor: %v", err)
	}
	payer := &titles.Payer{
		Name:       "José da Silva",
		Document:   "12345678901",
		Street:     "Rua das Flores 100",
		District:   "Centro",
		City:       "São Paulo",
		State:      "SP",
		PostalCode: "01001000",
	}
	if err := s.CreatePayer(ctx, payer); err != nil {
		t.Fatalf("seed payer: %v", err)
	}
	assignment := &titles.Assignment{
		AssignorID:   assignor.ID,
		BankCode:     "001",
		Layout:       240,
		Covenant:     123,
		Agency:       "5",
		AgencyDigit:  "0",
		Account:      "12",
		AccountDigit: "0",
		Wallet:       "17",
		DocumentKind: "2",
		EDICode:      "01",
	}
	if err := s.CreateAssignment(ctx, assignment); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return &Seed{Assignor: assignor, Assignment: assignment, Payer: payer}
}

// SeedTitle inserts one open title against the seed's assignment.
func SeedTitle(t testing.TB, s *store.Store, seed *Seed, ourNumber int64, value float64) *titles.Title {
	t.Helper()
	title := &titles.Title{
		AssignorID:     seed.Assignor.ID,
		AssignmentID:   seed.Assignment.ID,
		PayerID:        seed.Payer.ID,
		OurNumber:      ourNumber,
		Status:         titles.StatusOpen,
		Specie:         "01",
		DocumentNumber: "NF-1001",
		Value:          value,
		DueDate:        time.Date(2026, time.September, 28, 0, 0, 0, 0, time.UTC),
		IssuedAt:       time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateTitle(context.Background(), title); err != nil {
		t.Fatalf("seed title: %v", err)
	}
	return title
}
