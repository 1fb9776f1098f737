package model

import (
	"fmt"
	"slices"
	"time"
)

// Column is a sequence of values aligned with a date index. Missing cells hold NaN.
type Column []float64

// NonMissing returns the number of cells that hold an observation.
func (c Column) NonMissing() int {
	n := 0
	for _, v := range c {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// PriceTable is a validated, date-indexed table of instrument prices.
// Dates are strictly increasing and no row is entirely missing.
type PriceTable struct {
	dates   []time.Time
	symbols []string
	columns map[string]Column
}

// NewPriceTable builds a table from a date index and one column per symbol.
// It checks the shape and ordering invariants but does not repair them.
func NewPriceTable(dates []time.Time, symbols []string, columns []Column) (*PriceTable, error) {
	if len(symbols) != len(columns) {
		return nil, fmt.Errorf("price table: %d symbols but %d columns", len(symbols), len(columns))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			return nil, fmt.Errorf("price table: date %s not after %s", dates[i].Format(time.DateOnly), dates[i-1].Format(time.DateOnly))
		}
	}
	t := &PriceTable{
		dates:   slices.Clone(dates),
		symbols: slices.Clone(symbols),
		columns: make(map[string]Column, len(symbols)),
	}
	for i, sym := range symbols {
		if len(columns[i]) != len(dates) {
			return nil, fmt.Errorf("price table: column %s has %d cells, want %d", sym, len(columns[i]), len(dates))
		}
		if _, dup := t.columns[sym]; dup {
			return nil, fmt.Errorf("price table: duplicate symbol %s", sym)
		}
		t.columns[sym] = slices.Clone(columns[i])
	}
	return t, nil
}

// Len returns the number of rows.
func (t *PriceTable) Len() int { return len(t.dates) }

// Dates returns a copy of the date index.
func (t *PriceTable) Dates() []time.Time { return slices.Clone(t.dates) }

// Symbols returns the column symbols in table order.
func (t *PriceTable) Symbols() []string { return slices.Clone(t.symbols) }

// Column returns a copy of the column for symbol.
func (t *PriceTable) Column(symbol string) (Column, bool) {
	c, ok := t.columns[symbol]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}
