// Package strategy converts indicator state into trading signals, a
// lagged position series, and per-bar returns.
package strategy

import (
	"github.com/dyike/findash/internal/indicator"
	"github.com/dyike/findash/internal/marketdata"
)

// Signal is the discrete per-bar stance derived from SMA ordering.
type Signal int

const (
	Long  Signal = 1
	Flat  Signal = 0
	Short Signal = -1
)

// Result holds the per-bar signal, position, and return series, all
// aligned 1:1 with the input price series.
type Result struct {
	// Signals holds the raw SMA-ordering signal per bar: Long when the
	// short SMA is above the long SMA, Short when below, Flat when equal
	// or when either SMA is still undefined.
	Signals []Signal

	// Positions is Signals shifted forward by one bar: yesterday's signal
	// governs today's exposure. The first bar has no prior signal and is
	// held flat.
	Positions []Signal

	// DailyReturns is the close-to-close percent change. The first bar
	// has no prior close and contributes 0.
	DailyReturns []float64

	// StrategyReturns is Positions times DailyReturns.
	StrategyReturns []float64
}

// Evaluate derives signals, lagged positions, and return series from a
// price series and its indicator frame.
func Evaluate(series *marketdata.Series, frame *indicator.Frame) *Result {
	n := series.Len()
	res := &Result{
		Signals:         make([]Signal, n),
		Positions:       make([]Signal, n),
		DailyReturns:    make([]float64, n),
		StrategyReturns: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		short := frame.SMAShort[i]
		long := frame.SMALong[i]
		if !short.Valid || !long.Valid {
			continue // no position on insufficient history
		}
		switch {
		case short.Float64 > long.Float64:
			res.Signals[i] = Long
		case short.Float64 < long.Float64:
			res.Signals[i] = Short
		}
	}

	for i := 1; i < n; i++ {
		res.Positions[i] = res.Signals[i-1]

		prev := series.Bars[i-1].Close
		if prev != 0 {
			res.DailyReturns[i] = (series.Bars[i].Close - prev) / prev
		}
		res.StrategyReturns[i] = float64(res.Positions[i]) * res.DailyReturns[i]
	}

	return res
}
