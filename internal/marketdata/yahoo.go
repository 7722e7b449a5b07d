package marketdata

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// Provider supplies daily OHLCV bars, either for an exact date range or
// for a provider-chosen trailing window ("1y", "6mo"). It is the only
// capability the pipeline consumes from the upstream market-data source.
type Provider interface {
	FetchRange(symbol string, start, end time.Time) ([]Bar, error)
	FetchWindow(symbol string, window string) ([]Bar, error)
}

const yahooChartBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider fetches bars from Yahoo Finance. Exact-range queries go
// through the finance-go chart API; trailing-window queries hit the raw
// v8 chart endpoint, which accepts range aliases directly.
type YahooProvider struct {
	client *resty.Client
}

// NewYahooProvider creates a Yahoo Finance provider.
func NewYahooProvider() *YahooProvider {
	client := resty.New()
	client.SetBaseURL(yahooChartBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0")

	return &YahooProvider{client: client}
}

// FetchRange fetches daily bars between start and end inclusive.
func (p *YahooProvider) FetchRange(symbol string, start, end time.Time) ([]Bar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo range fetch for %s: %w", symbol, err)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// yahooChart is the raw response shape of the v8 chart endpoint. Column
// entries are nullable: holidays and halted sessions come back as null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchWindow fetches daily bars for a trailing window such as "1y" or "6mo".
func (p *YahooProvider) FetchWindow(symbol string, window string) ([]Bar, error) {
	var out yahooChart
	resp, err := p.client.R().
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    window,
		}).
		SetResult(&out).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo window fetch for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("yahoo window fetch for %s: status %d", symbol, resp.StatusCode())
	}
	if out.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := out.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: response for %s is missing quote columns", symbol)
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) < n || len(quote.High) < n || len(quote.Low) < n ||
		len(quote.Close) < n || len(quote.Volume) < n {
		return nil, fmt.Errorf("yahoo: incomplete OHLCV columns for %s", symbol)
	}

	bars := make([]Bar, 0, n)
	for i, ts := range result.Timestamp {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue // null bar (holiday, halted session)
		}
		var vol int64
		if quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		bars = append(bars, Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
