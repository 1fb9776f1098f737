package model

import (
	"slices"
	"time"
)

// DefaultRateName is the column name used for the 10-year rate overlay.
const DefaultRateName = "US10Y"

// RateColumn is the rate overlay of an AlignedDataset, in percent.
type RateColumn struct {
	Name   string
	Values Column
}

// AlignedDataset is the price table with the rate overlay joined on and
// every column forward-filled. It is frozen once built.
type AlignedDataset struct {
	dates   []time.Time
	symbols []string
	prices  map[string]Column
	rate    *RateColumn
}

// NewAlignedDataset takes ownership of the given slices. Callers must not
// modify them afterwards. rate may be nil when no overlay is available.
func NewAlignedDataset(dates []time.Time, symbols []string, prices map[string]Column, rate *RateColumn) *AlignedDataset {
	return &AlignedDataset{dates: dates, symbols: symbols, prices: prices, rate: rate}
}

// Len returns the number of rows.
func (d *AlignedDataset) Len() int { return len(d.dates) }

// Dates returns a copy of the date index.
func (d *AlignedDataset) Dates() []time.Time { return slices.Clone(d.dates) }

// Symbols returns the instrument symbols in column order.
func (d *AlignedDataset) Symbols() []string { return slices.Clone(d.symbols) }

// Column returns a copy of the instrument column for symbol.
func (d *AlignedDataset) Column(symbol string) (Column, bool) {
	c, ok := d.prices[symbol]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}

// Rate returns the rate overlay, if the dataset has one.
func (d *AlignedDataset) Rate() (RateColumn, bool) {
	if d.rate == nil {
		return RateColumn{}, false
	}
	return RateColumn{Name: d.rate.Name, Values: slices.Clone(d.rate.Values)}, true
}

// SummaryRecord holds the statistics of one instrument column.
type SummaryRecord struct {
	Symbol    string
	MaxPrice  float64
	MaxDate   time.Time
	MeanPrice float64
}
