package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"DCSentinel/internal/model"
)

func testBars(n int) []model.OHLCV {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := 0; i < n; i++ {
		p := 100 + float64(i)
		bars[i] = model.OHLCV{
			Time: base.AddDate(0, 0, i), Open: p - 0.5, High: p + 1, Low: p - 1, Close: p, Volume: 1000,
		}
	}
	return bars
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := s.LoadBars("SPY", start, end); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss on empty store, got %v", err)
	}

	want := testBars(5)
	if err := s.SaveBars("SPY", start, end, want); err != nil {
		t.Fatalf("save bars: %v", err)
	}

	got, err := s.LoadBars("SPY", start, end)
	if err != nil {
		t.Fatalf("load bars: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d bars, got %d", len(want), len(got))
	}
	for i := range got {
		if !got[i].Time.Equal(want[i].Time) || got[i].Close != want[i].Close {
			t.Errorf("bar %d mismatch: got %+v, want %+v", i, got[i], want[i])
		}
	}

	// A different range is a different key.
	if _, err := s.LoadBars("SPY", start, end.AddDate(0, 1, 0)); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected cache miss for a different range, got %v", err)
	}
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := s.SaveBars("SPY", start, end, testBars(5)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveBars("SPY", start, end, testBars(3)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.LoadBars("SPY", start, end)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected replacement to leave 3 bars, got %d", len(got))
	}
}
