package series

import (
	"time"

	"MarketLens/internal/model"
)

// Align left-joins rate onto prices by calendar day and forward-fills every
// column.
//
// Every price date is kept, rate-only dates are dropped and price dates
// without a rate observation get a missing rate cell before filling.
// Leading missing cells stay missing. When rate is empty the dataset has
// no rate column. rateName defaults to model.DefaultRateName.
func Align(prices *model.PriceTable, rate model.RateSeries, rateName string) *model.AlignedDataset {
	dates := prices.Dates()
	symbols := prices.Symbols()

	columns := make(map[string]model.Column, len(symbols))
	for _, sym := range symbols {
		c, _ := prices.Column(sym)
		forwardFill(c)
		columns[sym] = c
	}

	var overlay *model.RateColumn
	if !rate.Empty() {
		if rateName == "" {
			rateName = model.DefaultRateName
		}
		overlay = &model.RateColumn{Name: rateName, Values: joinRate(dates, rate)}
		forwardFill(overlay.Values)
	}

	return model.NewAlignedDataset(dates, symbols, columns, overlay)
}

func joinRate(dates []time.Time, rate model.RateSeries) model.Column {
	byDay := make(map[time.Time]float64, len(rate))
	for _, p := range rate {
		byDay[model.Day(p.Date)] = p.Percent
	}
	out := make(model.Column, len(dates))
	for i, d := range dates {
		v, ok := byDay[model.Day(d)]
		if !ok {
			v = model.Missing()
		}
		out[i] = v
	}
	return out
}

// forwardFill replaces each missing cell with the closest earlier observation.
func forwardFill(c model.Column) {
	last, seen := 0.0, false
	for i, v := range c {
		switch {
		case !model.IsMissing(v):
			last, seen = v, true
		case seen:
			c[i] = last
		}
	}
}
