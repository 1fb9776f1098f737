package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"MarketLens/internal/model"
)

// Markdown renders a report as a markdown document. With Styled set the
// document is rendered for the terminal using Style ("dark" by default).
type Markdown struct {
	Styled bool
	Style  string
}

func (m Markdown) Render(w io.Writer, r Report) error {
	md := Document(r)
	if m.Styled {
		style := m.Style
		if style == "" {
			style = "dark"
		}
		out, err := glamour.Render(md, style)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		md = out
	}
	_, err := io.WriteString(w, md)
	return err
}

// Document builds the markdown text of r.
func Document(r Report) string {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = "Market summary"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if r.Summary != nil && len(r.Summary.Records) > 0 {
		b.WriteString("| Instrument | Max | Max date | Mean |\n")
		b.WriteString("|---|---:|---|---:|\n")
		for _, rec := range r.Summary.Records {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				label(r.Names, rec.Symbol), Price(rec.MaxPrice), rec.MaxDate.Format(time.DateOnly), Price(rec.MeanPrice))
		}
		b.WriteString("\n")
	}

	if ds := r.Dataset; ds != nil && ds.Len() > 0 {
		dates := ds.Dates()
		last := ds.Len() - 1
		fmt.Fprintf(&b, "## Latest values (%s)\n\n", dates[last].Format(time.DateOnly))
		b.WriteString("| Series | Value |\n")
		b.WriteString("|---|---:|\n")
		for _, sym := range ds.Symbols() {
			col, _ := ds.Column(sym)
			fmt.Fprintf(&b, "| %s | %s |\n", r.Names.Name(sym), Price(col[last]))
		}
		if rc, ok := ds.Rate(); ok {
			fmt.Fprintf(&b, "| %s (%%) | %s |\n", rc.Name, Price(rc.Values[last]))
		}
		fmt.Fprintf(&b, "\n%d trading days", ds.Len())
		if _, ok := ds.Rate(); !ok {
			b.WriteString(", no rate overlay")
		}
		b.WriteString("\n")
	}

	if r.Summary != nil && len(r.Summary.Failures) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, f := range r.Summary.Failures {
			fmt.Fprintf(&b, "- %s: %s\n", label(r.Names, f.Symbol), f.Reason)
		}
	}
	return b.String()
}

func label(names DisplayNames, symbol string) string {
	if name := names.Name(symbol); name != symbol {
		return fmt.Sprintf("%s (%s)", name, symbol)
	}
	return symbol
}

// Price formats v with two decimals, or "n/a" for a missing cell.
func Price(v float64) string {
	if model.IsMissing(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
