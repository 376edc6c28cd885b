// Package collector acquires historical price data for analysis: a Fetcher
// pulls bars from a market-data provider, the Store caches them per
// (symbol, start, end) range, and Collect hands the core an ordered price
// series plus a freshness flag based on a minimum-row-count policy.
package collector

import (
	"time"

	"github.com/pkg/errors"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
	"DCSentinel/internal/store"
)

// Collector orchestrates cached price-series acquisition.
type Collector struct {
	Fetcher      Fetcher
	Store        store.Store
	MinValidRows int
	Log          logging.Logger
}

// New creates a Collector. minValidRows is the minimum bar count for the
// data to be considered valid for analysis.
func New(fetcher Fetcher, st store.Store, minValidRows int, log logging.Logger) *Collector {
	if st == nil {
		st = store.NewNoopStore()
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Collector{Fetcher: fetcher, Store: st, MinValidRows: minValidRows, Log: log}
}

// Collect returns the price series for symbol over [start, end] along with
// a validity flag. Cached bars are preferred; a cache read failure falls
// back to a fresh fetch rather than aborting.
func (c *Collector) Collect(symbol string, start, end time.Time, priceColumn string) (model.PriceSeries, bool, error) {
	bars, err := c.Store.LoadBars(symbol, start, end)
	switch {
	case err == nil:
		c.Log.Infof("cache hit for %s [%s, %s] - %d bars",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), len(bars))
	case errors.Is(err, store.ErrCacheMiss):
		bars, err = c.fetchAndCache(symbol, start, end)
		if err != nil {
			return model.PriceSeries{}, false, err
		}
	default:
		c.Log.Warnf("cache read failed for %s: %v, recollecting", symbol, err)
		bars, err = c.fetchAndCache(symbol, start, end)
		if err != nil {
			return model.PriceSeries{}, false, err
		}
	}

	valid := len(bars) >= c.MinValidRows
	if !valid {
		c.Log.Warnf("insufficient data for %s: %d bars (minimum: %d)", symbol, len(bars), c.MinValidRows)
	}

	series, err := model.SeriesFromBars(symbol, bars, priceColumn)
	if err != nil {
		return model.PriceSeries{}, false, err
	}
	return series, valid, nil
}

func (c *Collector) fetchAndCache(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	c.Log.Infof("collecting data for %s from %s to %s via %s",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), c.Fetcher.Name())

	bars, err := c.Fetcher.FetchBars(symbol, start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch bars for %s", symbol)
	}
	if err := c.Store.SaveBars(symbol, start, end, bars); err != nil {
		c.Log.Warnf("cache write failed for %s: %v", symbol, err)
	}
	return bars, nil
}
