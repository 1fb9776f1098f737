package model

import (
	"math"
	"time"
)

// RateScale converts ^TNX-style quotes (tenths of a percent) to percent.
const RateScale = 10.0

// Missing returns the marker stored in cells that hold no observation.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// QuoteRow is one raw row returned by a data source: a date and one
// value per symbol of the owning QuoteTable.
type QuoteRow struct {
	Date   time.Time
	Values []float64
}

// QuoteTable is the raw, unvalidated output of a data source.
type QuoteTable struct {
	Symbols  []string
	Period   string
	Interval string
	Rows     []QuoteRow
}

// Empty reports whether the table has no rows.
func (q *QuoteTable) Empty() bool { return q == nil || len(q.Rows) == 0 }

// RatePoint is a single rate observation in percent.
type RatePoint struct {
	Date    time.Time
	Percent float64
}

// RateSeries is an ordered, missing-free series of rate observations.
// An empty series means no rate overlay is available.
type RateSeries []RatePoint

// Empty reports whether the series holds no observations.
func (r RateSeries) Empty() bool { return len(r) == 0 }
