package collector

import (
	"context"
	"fmt"
	"time"

	"StockStats/internal/calculator"
	"StockStats/internal/model"
)

// MockFetcher returns canned payloads per ticker for development and testing.
// Tickers listed in Errors fail with that error; unknown tickers fail too.
type MockFetcher struct {
	Payloads map[string]map[string]any
	Errors   map[string]error
	Calls    []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistorical(_ context.Context, ticker string, _ time.Time) (map[string]any, error) {
	m.Calls = append(m.Calls, ticker)
	if err, ok := m.Errors[ticker]; ok {
		return nil, err
	}
	if p, ok := m.Payloads[ticker]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("mock: no payload for %s", ticker)
}

// MockPayload builds a response in the Nasdaq historical shape from close strings.
func MockPayload(closes ...string) map[string]any {
	rows := make([]any, len(closes))
	for i, c := range closes {
		rows[i] = map[string]any{"close": c}
	}
	return map[string]any{
		"data": map[string]any{
			"tradesTable": map[string]any{"rows": rows},
		},
	}
}

// Collector chains fetching, close extraction and statistics for one ticker.
type Collector struct {
	Fetcher       Fetcher
	LookbackYears int
	Now           func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookbackYears int) *Collector {
	return &Collector{Fetcher: fetcher, LookbackYears: lookbackYears, Now: time.Now}
}

// Collect fetches the ticker's history and computes its statistics.
// Errors wrap ErrUnexpectedShape or ErrNoPrices when the payload is unusable.
func (c *Collector) Collect(ctx context.Context, ticker string) (*model.StatsRecord, error) {
	from := calculator.YearsAgo(c.Now(), c.LookbackYears)

	raw, err := c.Fetcher.FetchHistorical(ctx, ticker, from)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	closes, err := ExtractCloses(raw)
	if err != nil {
		return nil, err
	}

	stats, err := calculator.Summarize(closes)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return &model.StatsRecord{Ticker: ticker, Stats: stats}, nil
}
