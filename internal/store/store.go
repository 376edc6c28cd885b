package store

import (
	"time"

	"github.com/pkg/errors"

	"DCSentinel/internal/model"
)

// ErrCacheMiss is returned when no bars are cached for the requested key.
var ErrCacheMiss = errors.New("store: cache miss")

// Store caches historical bars keyed by (symbol, start, end). A cached
// entry is an exact-range snapshot; overlapping ranges are separate keys,
// mirroring the per-range file cache of the data collector.
type Store interface {
	LoadBars(symbol string, start, end time.Time) ([]model.OHLCV, error)
	SaveBars(symbol string, start, end time.Time, bars []model.OHLCV) error
	Close() error
}
