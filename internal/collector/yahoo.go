package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/model"
)

// DefaultYahooURL is the public Yahoo Finance query host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// closePoint is a single close; a nil close becomes a missing cell.
type closePoint struct {
	day   time.Time
	close float64
}

// FetchQuotes downloads the close series of every symbol and merges them on
// the union of their dates. A symbol that fails to download is logged and
// left as an all-missing column; the call fails only when every symbol fails.
func (f *YahooFetcher) FetchQuotes(ctx context.Context, symbols []string, period, interval string) (*model.QuoteTable, error) {
	rng, err := ParseRange(period)
	if err != nil {
		return nil, err
	}
	iv, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	table := &model.QuoteTable{Symbols: slices.Clone(symbols), Period: rng, Interval: iv}
	rows := make(map[time.Time][]float64)
	var errs []error
	for col, sym := range symbols {
		points, err := f.fetchChart(ctx, sym, iv, rng)
		if err != nil {
			log.Warn().Err(err).Str("symbol", sym).Msg("yahoo fetch failed")
			errs = append(errs, fmt.Errorf("%s: %w", sym, err))
			continue
		}
		for _, p := range points {
			r, ok := rows[p.day]
			if !ok {
				r = make([]float64, len(symbols))
				for i := range r {
					r[i] = model.Missing()
				}
				rows[p.day] = r
			}
			if !model.IsMissing(p.close) {
				r[col] = p.close
			}
		}
	}
	if len(symbols) > 0 && len(errs) == len(symbols) {
		return nil, fmt.Errorf("yahoo: %w", errors.Join(errs...))
	}

	for _, day := range slices.SortedFunc(maps.Keys(rows), func(a, b time.Time) int { return a.Compare(b) }) {
		table.Rows = append(table.Rows, model.QuoteRow{Date: day, Values: rows[day]})
	}
	log.Info().Strs("symbols", symbols).Int("rows", len(table.Rows)).Str("range", rng).Msg("quotes downloaded")
	return table, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]closePoint, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]closePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		v := model.Missing()
		if i < len(closes) && closes[i] != nil {
			v = *closes[i]
		}
		points = append(points, closePoint{day: model.Day(time.Unix(ts, 0)), close: v})
	}
	return points, nil
}
