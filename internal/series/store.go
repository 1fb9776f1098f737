// Package series turns raw quote tables into the validated, aligned
// date-indexed data the calculators work on.
package series

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"MarketLens/internal/model"
)

// Validate drops fully-missing rows from raw, merges rows that fall on the
// same day and sorts the result by date. It returns an *model.EmptyDataError
// when nothing usable remains.
func Validate(raw *model.QuoteTable) (*model.PriceTable, error) {
	if raw == nil {
		return nil, &model.EmptyDataError{}
	}
	if len(raw.Symbols) == 0 {
		return nil, &model.EmptyDataError{Period: raw.Period}
	}

	width := len(raw.Symbols)
	byDay := make(map[time.Time][]float64, len(raw.Rows))
	for _, row := range raw.Rows {
		if len(row.Values) != width {
			return nil, fmt.Errorf("quote row %s: %d values for %d symbols",
				row.Date.Format(time.DateOnly), len(row.Values), width)
		}
		if allMissing(row.Values) {
			continue
		}
		day := model.Day(row.Date)
		cur, ok := byDay[day]
		if !ok {
			byDay[day] = slices.Clone(row.Values)
			continue
		}
		// Later rows win for the cells they carry.
		for i, v := range row.Values {
			if !model.IsMissing(v) {
				cur[i] = v
			}
		}
	}
	if len(byDay) == 0 {
		return nil, &model.EmptyDataError{Symbols: slices.Clone(raw.Symbols), Period: raw.Period}
	}

	dates := slices.SortedFunc(maps.Keys(byDay), func(a, b time.Time) int { return a.Compare(b) })
	columns := make([]model.Column, width)
	for i := range columns {
		columns[i] = make(model.Column, len(dates))
	}
	for r, day := range dates {
		for i, v := range byDay[day] {
			columns[i][r] = v
		}
	}
	return model.NewPriceTable(dates, raw.Symbols, columns)
}

func allMissing(values []float64) bool {
	for _, v := range values {
		if !model.IsMissing(v) {
			return false
		}
	}
	return true
}
