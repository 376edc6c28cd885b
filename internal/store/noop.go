package store

import (
	"time"

	"DCSentinel/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
// Every load is a miss; saves are discarded.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadBars(_ string, _, _ time.Time) ([]model.OHLCV, error) {
	return nil, ErrCacheMiss
}
func (n *NoopStore) SaveBars(_ string, _, _ time.Time, _ []model.OHLCV) error { return nil }
func (n *NoopStore) Close() error                                             { return nil }
