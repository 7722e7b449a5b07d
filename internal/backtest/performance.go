// Package backtest reduces position and return series into performance
// statistics and a reconstructed trade ledger.
package backtest

import (
	"math"

	"github.com/dyike/findash/internal/strategy"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// Performance summarizes the strategy against a buy-and-hold benchmark.
// Values are unrounded; rounding happens at the presentation boundary.
type Performance struct {
	StrategyReturn float64 // final cumulative strategy return, as a fraction
	BuyHoldReturn  float64 // final cumulative benchmark return, as a fraction
	TotalTrades    int     // direct Long<->Short flips
	MaxDrawdown    float64 // worst peak-to-trough decline, as a fraction (<= 0)
	SharpeRatio    float64 // annualized, 0 when volatility is degenerate
	WinRate        float64 // percent of non-zero strategy returns that were positive
	Volatility     float64 // annualized standard deviation, percent
	Alpha          float64 // excess return over benchmark, percentage points
}

// Analyze computes the full performance summary from a signal-engine
// result. Undefined inputs have already been folded to 0 upstream, so
// every aggregation here is total: no NaN or Inf can escape.
func Analyze(res *strategy.Result) Performance {
	perf := Performance{
		StrategyReturn: finalCumulative(res.StrategyReturns),
		BuyHoldReturn:  finalCumulative(res.DailyReturns),
		TotalTrades:    countFlips(res.Positions),
		MaxDrawdown:    maxDrawdown(res.StrategyReturns),
	}

	mean, std := populationStats(res.StrategyReturns)
	if std != 0 {
		perf.SharpeRatio = (mean / std) * math.Sqrt(tradingDaysPerYear)
		perf.Volatility = std * math.Sqrt(tradingDaysPerYear) * 100
	}

	perf.WinRate = winRate(res.StrategyReturns)
	perf.Alpha = perf.StrategyReturn*100 - perf.BuyHoldReturn*100
	return perf
}

// finalCumulative compounds the return series and returns the final
// cumulative return as a fraction, 0 for an empty series.
func finalCumulative(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	cum := 1.0
	for _, r := range returns {
		cum *= 1 + r
	}
	return cum - 1
}

// countFlips counts bars where the position moved directly between Long
// and Short. Transitions through Flat are not trades, matching the trade
// ledger definition.
func countFlips(positions []strategy.Signal) int {
	count := 0
	for i := 1; i < len(positions); i++ {
		diff := int(positions[i]) - int(positions[i-1])
		if diff == 2 || diff == -2 {
			count++
		}
	}
	return count
}

// maxDrawdown tracks the compounded equity curve against its running
// maximum and returns the deepest relative decline as a fraction.
func maxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	cum := 1.0
	peak := 0.0
	worst := 0.0
	for _, r := range returns {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		dd := (cum - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// populationStats returns the mean and population standard deviation of
// the full series, (0, 0) for an empty one.
func populationStats(returns []float64) (mean, std float64) {
	n := len(returns)
	if n == 0 {
		return 0, 0
	}
	for _, r := range returns {
		mean += r
	}
	mean /= float64(n)

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(n)
	return mean, math.Sqrt(variance)
}

// winRate returns the percentage of non-zero strategy returns that were
// positive, 0 when no bar produced a non-zero return.
func winRate(returns []float64) float64 {
	wins, active := 0, 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
		if r != 0 {
			active++
		}
	}
	if active == 0 {
		return 0
	}
	return float64(wins) / float64(active) * 100
}
