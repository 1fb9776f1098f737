// Package pipeline runs the fetch, validate, normalize, align and summarize
// stages in order, each stage consuming the complete output of the last.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/calculator"
	"MarketLens/internal/collector"
	"MarketLens/internal/model"
	"MarketLens/internal/series"
)

var errNoSymbols = errors.New("pipeline: no symbols")

// Pipeline holds the inputs of an analysis run.
type Pipeline struct {
	Fetcher    collector.Fetcher
	Symbols    []string
	RateSymbol string // empty disables the rate overlay
	RateName   string
	Period     string
	Interval   string
}

// Result is the output of a run.
type Result struct {
	Symbols  []string
	Period   string
	Interval string
	Prices   *model.PriceTable
	Rate     model.RateSeries
	Dataset  *model.AlignedDataset
	Summary  *calculator.Summary
	RanAt    time.Time
}

// Run executes the pipeline. Price fetch and validation errors abort the
// run; a missing or failed rate download only drops the rate overlay.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if len(p.Symbols) == 0 {
		return nil, errNoSymbols
	}
	ranAt := time.Now()

	raw, err := p.Fetcher.FetchQuotes(ctx, p.Symbols, p.Period, p.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	prices, err := series.Validate(raw)
	if err != nil {
		return nil, err
	}
	log.Info().Strs("symbols", p.Symbols).Int("rows", prices.Len()).Msg("prices validated")

	var rawRate *model.QuoteTable
	if p.RateSymbol != "" {
		rawRate, err = p.Fetcher.FetchQuotes(ctx, []string{p.RateSymbol}, p.Period, p.Interval)
		if err != nil {
			log.Warn().Err(err).Str("symbol", p.RateSymbol).Msg("rate fetch failed")
			rawRate = nil
		}
	}
	rate := series.NormalizeRate(rawRate)

	ds := series.Align(prices, rate, p.RateName)
	summary := calculator.Summarize(ds, p.Symbols)
	if len(summary.Failures) > 0 {
		log.Warn().Int("skipped", len(summary.Failures)).Msg("summary is partial")
	}

	return &Result{
		Symbols:  slices.Clone(p.Symbols),
		Period:   p.Period,
		Interval: p.Interval,
		Prices:   prices,
		Rate:     rate,
		Dataset:  ds,
		Summary:  summary,
		RanAt:    ranAt,
	}, nil
}
