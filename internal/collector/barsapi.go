package collector

import (
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"DCSentinel/internal/model"
)

// BarsAPIFetcher implements Fetcher against a self-hosted bars REST API.
// It is the drop-in alternative when a Yahoo round trip is unwanted.
type BarsAPIFetcher struct {
	client *resty.Client
}

// NewBarsAPIFetcher creates a new fetcher with optional proxy support.
func NewBarsAPIFetcher(baseURL, apiKey, proxyURL string) *BarsAPIFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BarsAPIFetcher{client: client}
}

func (f *BarsAPIFetcher) Name() string { return "barsapi" }

// apiBar is the expected JSON shape from the bars API.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchBars fetches daily bars for the closed date range [start, end].
func (f *BarsAPIFetcher) FetchBars(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	var raw []apiBar
	resp, err := f.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   start.Format("2006-01-02"),
			"to":     end.Format("2006-01-02"),
		}).
		SetResult(&raw).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, errors.Wrap(err, "bars api fetch")
	}
	if resp.IsError() {
		return nil, errors.Errorf("bars api: status %d", resp.StatusCode())
	}
	if len(raw) == 0 {
		return nil, errors.Errorf("bars api: no data for %s", symbol)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(b.Timestamp, 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
