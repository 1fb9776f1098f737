package series

import (
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/model"
)

// NormalizeRate reduces a raw rate quote table to its first column, drops
// missing entries, sorts by date and converts tenths of a percent to
// percent. An empty input yields an empty series.
func NormalizeRate(raw *model.QuoteTable) model.RateSeries {
	if raw.Empty() || len(raw.Symbols) == 0 {
		log.Warn().Msg("no rate quotes received, continuing without rate overlay")
		return nil
	}

	byDay := make(map[time.Time]float64, len(raw.Rows))
	for _, row := range raw.Rows {
		if len(row.Values) == 0 || model.IsMissing(row.Values[0]) {
			continue
		}
		byDay[model.Day(row.Date)] = row.Values[0] / model.RateScale
	}
	if len(byDay) == 0 {
		log.Warn().Str("symbol", raw.Symbols[0]).Msg("rate quotes are all missing, continuing without rate overlay")
		return nil
	}

	days := slices.SortedFunc(maps.Keys(byDay), func(a, b time.Time) int { return a.Compare(b) })
	rate := make(model.RateSeries, len(days))
	for i, day := range days {
		rate[i] = model.RatePoint{Date: day, Percent: byDay[day]}
	}
	log.Info().Str("symbol", raw.Symbols[0]).Int("points", len(rate)).Msg("rate series normalized")
	return rate
}
