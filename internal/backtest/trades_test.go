package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/strategy"
)

func ledgerFixture(closes []float64, positions []int) (*marketdata.Series, *strategy.Result) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]marketdata.Bar, len(closes))
	for i, c := range closes {
		bars[i] = marketdata.Bar{Date: start.AddDate(0, 0, i), Close: c}
	}
	pos := make([]strategy.Signal, len(positions))
	for i, p := range positions {
		pos[i] = strategy.Signal(p)
	}
	return &marketdata.Series{Symbol: "TEST", Bars: bars},
		&strategy.Result{Positions: pos}
}

func TestBuildLedgerEmptyWithoutFlips(t *testing.T) {
	series, res := ledgerFixture(
		[]float64{100, 101, 102, 103},
		[]int{0, 1, 1, 1},
	)
	assert.Empty(t, BuildLedger(series, res))
}

func TestBuildLedgerFlipsOnly(t *testing.T) {
	// Position path: flat, long, short, long. Only the direct
	// Long<->Short transitions become trades; the initial move out of
	// flat does not.
	series, res := ledgerFixture(
		[]float64{100, 105, 95, 110},
		[]int{0, 1, -1, 1},
	)

	trades := BuildLedger(series, res)
	require.Len(t, trades, 2)

	sell := trades[0]
	assert.Equal(t, 1, sell.ID)
	assert.Equal(t, ActionSell, sell.Action)
	assert.Equal(t, 95.0, sell.Price)
	assert.Equal(t, SharesPerTrade, sell.Shares)
	assert.Equal(t, 9500.0, sell.Value)
	assert.Nil(t, sell.PnL, "a sell with no prior buy has no P&L")

	buy := trades[1]
	assert.Equal(t, 2, buy.ID)
	assert.Equal(t, ActionBuy, buy.Action)
	assert.Equal(t, 110.0, buy.Price)
	assert.Equal(t, 11000.0, buy.Value)
	assert.Nil(t, buy.PnL)
}

func TestBuildLedgerSellSettlesAgainstPriorBuy(t *testing.T) {
	series, res := ledgerFixture(
		[]float64{100, 105, 110, 120, 115},
		[]int{0, -1, 1, 1, -1},
	)

	trades := BuildLedger(series, res)
	require.Len(t, trades, 2)

	buy := trades[0]
	require.Equal(t, ActionBuy, buy.Action)
	assert.Equal(t, 110.0, buy.Price)

	sell := trades[1]
	require.Equal(t, ActionSell, sell.Action)
	require.NotNil(t, sell.PnL)
	// (115 - 110) * 100 shares
	assert.InDelta(t, 500.0, *sell.PnL, 1e-9)
}

func TestBuildLedgerTradeCountMatchesPerformance(t *testing.T) {
	series, res := ledgerFixture(
		[]float64{100, 101, 99, 103, 98, 104, 102},
		[]int{0, 1, -1, 1, -1, 1, 0},
	)

	trades := BuildLedger(series, res)
	assert.Equal(t, countFlips(res.Positions), len(trades))
	for i, tr := range trades {
		assert.Equal(t, i+1, tr.ID)
	}
}

func TestBuildLedgerDecimalPrecision(t *testing.T) {
	// 0.1*3 style floats must not leak binary noise into trade values.
	series, res := ledgerFixture(
		[]float64{100, 123.45, 123.46, 124.56},
		[]int{0, -1, 1, -1},
	)

	trades := BuildLedger(series, res)
	require.Len(t, trades, 2)
	assert.Equal(t, 12346.0, trades[0].Value)

	require.NotNil(t, trades[1].PnL)
	// (124.56 - 123.46) * 100 is exactly 110 in decimal arithmetic.
	assert.Equal(t, 110.0, *trades[1].PnL)
}
