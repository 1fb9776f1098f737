// Package renderer defines what the analysis hands to a presentation layer
// and ships a markdown implementation of it.
package renderer

import (
	"io"
	"maps"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// Report is everything a renderer receives.
type Report struct {
	Title   string
	Dataset *model.AlignedDataset
	Summary *calculator.Summary
	Names   DisplayNames
}

// Renderer turns a report into a visual representation.
type Renderer interface {
	Render(w io.Writer, r Report) error
}

// DisplayNames maps symbols to human-readable names.
type DisplayNames map[string]string

// DefaultDisplayNames covers the default symbol list.
var DefaultDisplayNames = DisplayNames{
	"AAPL": "Apple",
	"AMZN": "Amazon",
	"MSFT": "Microsoft",
	"NVDA": "NVIDIA",
	"TSLA": "Tesla",
}

// Name returns the display name for symbol, or the symbol itself.
func (n DisplayNames) Name(symbol string) string {
	if name, ok := n[symbol]; ok && name != "" {
		return name
	}
	return symbol
}

// WithOverrides returns a copy of n updated with overrides.
func (n DisplayNames) WithOverrides(overrides map[string]string) DisplayNames {
	out := maps.Clone(n)
	if out == nil {
		out = DisplayNames{}
	}
	maps.Copy(out, overrides)
	return out
}
