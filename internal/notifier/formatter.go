package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"MarketLens/internal/model"
	"MarketLens/internal/renderer"
)

// FormatSummaryReport formats a report as a Telegram HTML message.
func FormatSummaryReport(r renderer.Report) string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "MarketLens"
	}
	b.WriteString(fmt.Sprintf("📊 <b>%s</b>", html.EscapeString(title)))
	if r.Dataset != nil && r.Dataset.Len() > 0 {
		dates := r.Dataset.Dates()
		b.WriteString(fmt.Sprintf(" | %s", dates[len(dates)-1].Format(time.DateOnly)))
	}
	b.WriteString("\n\n")

	if r.Summary != nil {
		for _, rec := range r.Summary.Records {
			b.WriteString(fmt.Sprintf("<b>%s</b>: max %s (%s), mean %s\n",
				html.EscapeString(r.Names.Name(rec.Symbol)),
				renderer.Price(rec.MaxPrice), rec.MaxDate.Format(time.DateOnly), renderer.Price(rec.MeanPrice)))
		}
	}

	if r.Dataset != nil {
		if rc, ok := r.Dataset.Rate(); ok && len(rc.Values) > 0 {
			b.WriteString(fmt.Sprintf("\n%s: %s%%\n", html.EscapeString(rc.Name), renderer.Price(rc.Values[len(rc.Values)-1])))
		} else {
			b.WriteString("\nno rate overlay\n")
		}
	}

	if r.Summary != nil && len(r.Summary.Failures) > 0 {
		b.WriteString("\n⚠️ skipped: ")
		names := make([]string, len(r.Summary.Failures))
		for i, f := range r.Summary.Failures {
			names[i] = html.EscapeString(f.Symbol)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHistory formats stored summaries of one symbol, newest first.
func FormatHistory(symbol string, records []model.SummaryRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("no history for %s", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s</b> history\n\n", html.EscapeString(symbol)))
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("max %s (%s), mean %s\n",
			renderer.Price(rec.MaxPrice), rec.MaxDate.Format(time.DateOnly), renderer.Price(rec.MeanPrice)))
	}
	return b.String()
}
