package collector

import (
	"time"

	"DCSentinel/internal/model"
)

// Fetcher retrieves historical daily bars for a symbol over a closed date
// range.
type Fetcher interface {
	FetchBars(symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ string, start, _ time.Time) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(100, start, 300), nil
}

// GenerateMockBars builds a deterministic saw-tooth price path starting at
// basePrice.
func GenerateMockBars(basePrice float64, start time.Time, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i%20-10)*0.005)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
