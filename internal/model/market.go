package model

import (
	"fmt"
	"math"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PricePoint is one observation of the series handed to the DC detector.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceSeries is an ordered sequence of price observations, timestamps
// strictly increasing. Immutable once handed to the detector.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Len returns the number of observations in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// Price columns selectable from OHLCV bars.
const (
	ColumnOpen  = "open"
	ColumnHigh  = "high"
	ColumnLow   = "low"
	ColumnClose = "close"
)

// SeriesFromBars builds a PriceSeries from bars using the given price column.
// Bars with a NaN price are dropped, matching the detector's missing-value
// policy; everything else is left for Validate to judge.
func SeriesFromBars(symbol string, bars []OHLCV, column string) (PriceSeries, error) {
	pick, err := columnSelector(column)
	if err != nil {
		return PriceSeries{}, err
	}
	points := make([]PricePoint, 0, len(bars))
	for _, b := range bars {
		p := pick(b)
		if math.IsNaN(p) {
			continue
		}
		points = append(points, PricePoint{Time: b.Time, Price: p})
	}
	return PriceSeries{Symbol: symbol, Points: points}, nil
}

func columnSelector(column string) (func(OHLCV) float64, error) {
	switch column {
	case ColumnOpen:
		return func(b OHLCV) float64 { return b.Open }, nil
	case ColumnHigh:
		return func(b OHLCV) float64 { return b.High }, nil
	case ColumnLow:
		return func(b OHLCV) float64 { return b.Low }, nil
	case ColumnClose:
		return func(b OHLCV) float64 { return b.Close }, nil
	default:
		return nil, fmt.Errorf("unknown price column %q", column)
	}
}

// Validate rejects malformed series before detection: timestamps must be
// strictly increasing (no duplicates) and every price must be a positive,
// finite number.
func (s PriceSeries) Validate() error {
	for i, p := range s.Points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
			return fmt.Errorf("row %d (%s): price %v is not a positive finite number",
				i, p.Time.Format("2006-01-02"), p.Price)
		}
		if i > 0 && !s.Points[i-1].Time.Before(p.Time) {
			return fmt.Errorf("row %d (%s): timestamp not strictly increasing",
				i, p.Time.Format("2006-01-02"))
		}
	}
	return nil
}
