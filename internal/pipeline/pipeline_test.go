package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/strategy"
)

// fixedProvider serves a canned bar slice for any request.
type fixedProvider struct {
	bars []marketdata.Bar
	err  error
}

func (p *fixedProvider) FetchRange(symbol string, start, end time.Time) ([]marketdata.Bar, error) {
	return p.bars, p.err
}

func (p *fixedProvider) FetchWindow(symbol, window string) ([]marketdata.Bar, error) {
	return p.bars, p.err
}

func risingBars(n int) []marketdata.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]marketdata.Bar, n)
	for i := range bars {
		price := 100.0 + float64(i)
		bars[i] = marketdata.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 2_000_000,
		}
	}
	return bars
}

func risingRequest() marketdata.Request {
	return marketdata.Request{
		Symbol:    "AAPL",
		StartDate: "2024-01-01",
		EndDate:   "2024-06-30",
	}
}

func newTestRunner(p marketdata.Provider) *Runner {
	return NewRunner(marketdata.NewFetcher(p), nil)
}

func TestRunAppliesDefaultWindows(t *testing.T) {
	runner := newTestRunner(&fixedProvider{bars: risingBars(80)})

	analysis, err := runner.Run(risingRequest())
	require.NoError(t, err)

	// Short SMA defined from bar 19, long from bar 49 under the 20/50
	// defaults.
	assert.False(t, analysis.Frame.SMAShort[18].Valid)
	assert.True(t, analysis.Frame.SMAShort[19].Valid)
	assert.False(t, analysis.Frame.SMALong[48].Valid)
	assert.True(t, analysis.Frame.SMALong[49].Valid)
}

func TestRunSteadyRise(t *testing.T) {
	runner := newTestRunner(&fixedProvider{bars: risingBars(80)})

	analysis, err := runner.Run(risingRequest())
	require.NoError(t, err)
	assert.Empty(t, analysis.Degraded)

	// A monotone rise keeps the short SMA above the long one, so the
	// position goes Long once both windows fill and never flips.
	for i, pos := range analysis.Signals.Positions {
		if i <= DefaultSMALong-1 {
			assert.Equal(t, strategy.Flat, pos, "bar %d", i)
		} else {
			assert.Equal(t, strategy.Long, pos, "bar %d", i)
		}
	}

	assert.Zero(t, analysis.Performance.TotalTrades)
	assert.Empty(t, analysis.Trades)
	assert.Greater(t, analysis.Performance.StrategyReturn, 0.0)
	assert.Greater(t, analysis.Performance.BuyHoldReturn, analysis.Performance.StrategyReturn,
		"waiting for the long window to fill forfeits the early rise")
}

func TestRunPropagatesFetchErrors(t *testing.T) {
	// 30 bars clear the usability floor but not the 50+10 window
	// minimum, so the fetcher fails without entering its retry backoff.
	runner := newTestRunner(&fixedProvider{bars: risingBars(30)})

	_, err := runner.Run(risingRequest())
	var insufficient *marketdata.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 30, insufficient.Bars)
	assert.Equal(t, 60, insufficient.MinRequired)
}

func TestRunInvalidRequest(t *testing.T) {
	runner := newTestRunner(&fixedProvider{bars: risingBars(80)})

	req := risingRequest()
	req.StartDate = "not-a-date"
	_, err := runner.Run(req)
	assert.ErrorIs(t, err, marketdata.ErrInvalidRequest)
}

func TestRunIsDeterministic(t *testing.T) {
	// Two runs over the same upstream snapshot must agree on every
	// view; nothing in the pipeline may depend on wall time or
	// iteration order.
	runner := newTestRunner(&fixedProvider{bars: risingBars(80)})

	first, err := runner.Run(risingRequest())
	require.NoError(t, err)
	second, err := runner.Run(risingRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Performance, second.Performance)
	assert.Equal(t, first.PerformanceMetrics(), second.PerformanceMetrics())
	assert.Equal(t, first.TradeLog(), second.TradeLog())
	assert.Equal(t, first.PricePoints(), second.PricePoints())
	assert.Equal(t, first.RSISeries(), second.RSISeries())
	assert.Equal(t, first.MACDSeries(), second.MACDSeries())
	assert.Equal(t, first.BollingerSeries(), second.BollingerSeries())
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "ok", outcomeLabel(nil))
	assert.Equal(t, "invalid_request", outcomeLabel(marketdata.ErrInvalidRequest))
	assert.Equal(t, "data_unavailable", outcomeLabel(&marketdata.DataUnavailableError{}))
	assert.Equal(t, "insufficient_data", outcomeLabel(&marketdata.InsufficientDataError{}))
	assert.Equal(t, "internal", outcomeLabel(errors.New("boom")))
}
