package collector

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Ranges accepted by the Yahoo chart API.
var yahooRanges = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

var spelledRange = regexp.MustCompile(`^(\d+)\s*(days?|d|months?|mo|years?|y)$`)

// ParseRange converts a period such as "1y", "6mo" or "1 year" into a Yahoo range.
func ParseRange(period string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	if slices.Contains(yahooRanges, p) {
		return p, nil
	}
	m := spelledRange.FindStringSubmatch(p)
	if m == nil {
		return "", fmt.Errorf("unknown period %q", period)
	}
	var unit string
	switch {
	case strings.HasPrefix(m[2], "d"):
		unit = "d"
	case strings.HasPrefix(m[2], "m"):
		unit = "mo"
	default:
		unit = "y"
	}
	r := m[1] + unit
	if !slices.Contains(yahooRanges, r) {
		return "", fmt.Errorf("unsupported period %q", period)
	}
	return r, nil
}

// ParseInterval converts an interval such as "1d" or "daily" into a Yahoo interval.
func ParseInterval(interval string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(interval)) {
	case "1d", "daily", "day":
		return "1d", nil
	case "1wk", "weekly", "week":
		return "1wk", nil
	case "1mo", "monthly", "month":
		return "1mo", nil
	default:
		return "", fmt.Errorf("unknown interval %q", interval)
	}
}
