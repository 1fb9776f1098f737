package collector

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
//
// Tables are looked up by the comma-joined symbol list. When no table is
// registered and Price is positive, a synthetic daily series of Days rows is
// generated; otherwise an empty table is returned.
type MockFetcher struct {
	Tables map[string]*model.QuoteTable
	Errs   map[string]error
	Price  float64
	Days   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuotes(_ context.Context, symbols []string, period, interval string) (*model.QuoteTable, error) {
	key := strings.Join(symbols, ",")
	if err, ok := m.Errs[key]; ok {
		return nil, err
	}
	if t, ok := m.Tables[key]; ok {
		return t, nil
	}
	table := &model.QuoteTable{Symbols: slices.Clone(symbols), Period: period, Interval: interval}
	if m.Price > 0 {
		table.Rows = generateMockRows(m.Price, m.Days, len(symbols))
	}
	return table, nil
}

func generateMockRows(basePrice float64, count, width int) []model.QuoteRow {
	if count <= 0 {
		count = 30
	}
	today := model.Day(time.Now())
	rows := make([]model.QuoteRow, count)
	for i := 0; i < count; i++ {
		values := make([]float64, width)
		for c := range values {
			values[c] = basePrice * float64(c+1) * (1 + float64(i-count/2)*0.001)
		}
		rows[i] = model.QuoteRow{Date: today.AddDate(0, 0, -(count - i)), Values: values}
	}
	return rows
}

// Register adds a canned table for symbols.
func (m *MockFetcher) Register(table *model.QuoteTable) *MockFetcher {
	if m.Tables == nil {
		m.Tables = make(map[string]*model.QuoteTable)
	}
	m.Tables[strings.Join(table.Symbols, ",")] = table
	return m
}

// Fail makes every fetch of symbols return err.
func (m *MockFetcher) Fail(err error, symbols ...string) *MockFetcher {
	if m.Errs == nil {
		m.Errs = make(map[string]error)
	}
	m.Errs[strings.Join(symbols, ",")] = err
	return m
}

// NewFetcher picks the data source by name.
func NewFetcher(source, baseURL, proxyURL string, timeout time.Duration) (Fetcher, error) {
	switch source {
	case "", "yahoo":
		return NewYahooFetcher(baseURL, proxyURL, timeout), nil
	case "mock":
		return &MockFetcher{Price: 100, Days: 250}, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", source)
	}
}
