package collector

import (
	"context"
	"time"
)

// Fetcher defines the interface for fetching historical quotes.
// Implementations return the decoded JSON body without interpreting it.
type Fetcher interface {
	FetchHistorical(ctx context.Context, ticker string, from time.Time) (map[string]any, error)
	Name() string
}
