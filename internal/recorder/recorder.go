package recorder

import (
	"slices"
	"time"

	"MarketLens/internal/model"
	"MarketLens/internal/pipeline"
)

// RunRecord holds everything persisted about one analysis run.
type RunRecord struct {
	RanAt      time.Time
	Symbols    []string
	Period     string
	Interval   string
	Rows       int
	FirstDate  time.Time
	LastDate   time.Time
	LatestRate *float64 // nil when the run had no rate overlay
	Records    []model.SummaryRecord
	Failures   []*model.MissingDataError
}

// NewRunRecord extracts the persisted view of a pipeline result.
func NewRunRecord(res *pipeline.Result) *RunRecord {
	run := &RunRecord{
		RanAt:    res.RanAt,
		Symbols:  slices.Clone(res.Symbols),
		Period:   res.Period,
		Interval: res.Interval,
		Rows:     res.Dataset.Len(),
		Records:  slices.Clone(res.Summary.Records),
		Failures: slices.Clone(res.Summary.Failures),
	}
	if dates := res.Dataset.Dates(); len(dates) > 0 {
		run.FirstDate, run.LastDate = dates[0], dates[len(dates)-1]
	}
	if rc, ok := res.Dataset.Rate(); ok && len(rc.Values) > 0 {
		if v := rc.Values[len(rc.Values)-1]; !model.IsMissing(v) {
			run.LatestRate = &v
		}
	}
	return run
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) (int64, error)
	SymbolHistory(symbol string, limit int) ([]model.SummaryRecord, error)
	Close() error
}
