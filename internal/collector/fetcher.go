package collector

import (
	"context"

	"MarketLens/internal/model"
)

// Fetcher defines the interface for fetching quote tables.
// The returned table has one column per requested symbol; cells the source
// had no value for are missing.
type Fetcher interface {
	FetchQuotes(ctx context.Context, symbols []string, period, interval string) (*model.QuoteTable, error)
	Name() string
}
