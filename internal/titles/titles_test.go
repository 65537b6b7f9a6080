package titles

import (
	"errors"
	"testing"
	"time"
)

func TestDueDateWithin(t *testing.T) {
	min := time.Date(2000, 7, 3, 0, 0, 0, 0, time.UTC)
	max := time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC)

	title := &Title{DueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	if got := title.DueDateWithin(min, max); !got.Equal(title.DueDate) {
		t.Fatalf("in-window due date changed: %v", got)
	}

	title.DueDate = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := title.DueDateWithin(min, max); !got.IsZero() {
		t.Fatalf("pre-window due date should be open-ended, got %v", got)
	}

	title.DueDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := title.DueDateWithin(min, max); !got.IsZero() {
		t.Fatalf("post-window due date should be open-ended, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	title := &Title{ID: 1, OurNumber: 12, Value: 10.5, Payer: &Payer{Name: "FULANO"}}
	if err := title.Validate(); err != nil {
		t.Fatal(err)
	}

	bad := &Title{ID: 2, OurNumber: 0, Value: 10.5, Payer: &Payer{Name: "FULANO"}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero our number")
	}

	bad = &Title{ID: 3, OurNumber: 9, Value: 10.5}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for missing payer")
	}
}

func TestPayerCache(t *testing.T) {
	cache := NewPayerCache()
	loads := 0
	load := func(id int64) (*Payer, error) {
		loads++
		return &Payer{ID: id, Name: "PAYER"}, nil
	}

	first, err := cache.Get(7, load)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Get(7, load)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("cache returned distinct pointers for the same payer")
	}
	if loads != 1 {
		t.Fatalf("payer loaded %d times, want 1", loads)
	}
	if cache.Len() != 1 {
		t.Fatalf("cache length %d, want 1", cache.Len())
	}
}

func TestPayerCachePropagatesLoadError(t *testing.T) {
	cache := NewPayerCache()
	sentinel := errors.New("missing payer")
	if _, err := cache.Get(1, func(int64) (*Payer, error) { return nil, sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want load error", err)
	}
	if cache.Len() != 0 {
		t.Fatal("failed load must not be cached")
	}
}
