package calculator

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/model"
)

// Summary holds the per-symbol statistics of an aligned dataset.
// Maxima, MaxDates, Means and Records are index-aligned and follow the
// requested symbol order; symbols that could not be summarized are left
// out of them and reported in Failures instead.
type Summary struct {
	Maxima   []float64
	MaxDates []time.Time
	Means    []float64
	Records  []model.SummaryRecord
	Failures []*model.MissingDataError
}

// Err joins all per-symbol failures, or returns nil.
func (s *Summary) Err() error {
	errs := make([]error, len(s.Failures))
	for i, f := range s.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Record returns the record for symbol.
func (s *Summary) Record(symbol string) (model.SummaryRecord, bool) {
	for _, r := range s.Records {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return model.SummaryRecord{}, false
}

// Summarize computes max, max date and mean for each symbol in ds.
// A symbol that is absent from ds or whose column is entirely missing is
// skipped and recorded as a *model.MissingDataError.
func Summarize(ds *model.AlignedDataset, symbols []string) *Summary {
	s := &Summary{}
	dates := ds.Dates()
	for _, sym := range symbols {
		col, ok := ds.Column(sym)
		if !ok {
			s.fail(sym, "symbol not in dataset")
			continue
		}
		high, on, err := ArgMaxDate(dates, col)
		if err != nil {
			s.fail(sym, err.Error())
			continue
		}
		mean, err := Mean(col)
		if err != nil {
			s.fail(sym, err.Error())
			continue
		}
		s.Maxima = append(s.Maxima, high)
		s.MaxDates = append(s.MaxDates, on)
		s.Means = append(s.Means, mean)
		s.Records = append(s.Records, model.SummaryRecord{
			Symbol:    sym,
			MaxPrice:  high,
			MaxDate:   on,
			MeanPrice: mean,
		})
	}
	return s
}

func (s *Summary) fail(symbol, reason string) {
	log.Warn().Str("symbol", symbol).Str("reason", reason).Msg("skipping symbol in summary")
	s.Failures = append(s.Failures, &model.MissingDataError{Symbol: symbol, Reason: reason})
}
