package indicator

import (
	"fmt"
	"log"
	"math"

	"github.com/dyike/findash/internal/marketdata"
)

// Fixed windows for the non-SMA indicators.
const (
	BollingerWindow  = 20
	BollingerDev     = 2.0
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9

	// NeutralRSI is substituted when the RSI derivation fails. Callers
	// must read it as "no signal", not as real market neutrality.
	NeutralRSI = 50.0
)

// Params carries the caller-selected SMA windows.
type Params struct {
	SMAShort int
	SMALong  int
}

// derivation pairs a fallible primary computation with a fallback that
// cannot fail. The executor never propagates a primary error.
type derivation struct {
	name     string
	primary  func(f *Frame, closes []float64) error
	fallback func(f *Frame, closes []float64)
}

// Compute derives the full indicator frame for a series. The SMA columns
// are structural to the strategy and their failure is fatal; every other
// indicator degrades to its fallback independently. The returned slice
// names the indicators that degraded, for observability.
func Compute(series *marketdata.Series, p Params) (*Frame, []string, error) {
	closes := series.Closes()
	frame := &Frame{Dates: series.Dates()}

	var err error
	if frame.SMAShort, err = RollingMean(closes, p.SMAShort); err != nil {
		return nil, nil, fmt.Errorf("short SMA(%d): %w", p.SMAShort, err)
	}
	if frame.SMALong, err = RollingMean(closes, p.SMALong); err != nil {
		return nil, nil, fmt.Errorf("long SMA(%d): %w", p.SMALong, err)
	}

	derivations := []derivation{
		{name: "bollinger", primary: deriveBollinger, fallback: fallbackBollinger},
		{name: "rsi", primary: deriveRSI, fallback: fallbackRSI},
		{name: "macd", primary: deriveMACD, fallback: fallbackMACD},
	}

	var degraded []string
	for _, d := range derivations {
		if err := d.primary(frame, closes); err != nil {
			log.Printf("[indicator] WARN: %s derivation failed (%v), using fallback", d.name, err)
			d.fallback(frame, closes)
			degraded = append(degraded, d.name)
		}
	}
	return frame, degraded, nil
}

// deriveBollinger computes the 20-bar bands from the shared rolling
// routines.
func deriveBollinger(f *Frame, closes []float64) error {
	mid, err := RollingMean(closes, BollingerWindow)
	if err != nil {
		return err
	}
	std, err := RollingStdDev(closes, BollingerWindow)
	if err != nil {
		return err
	}

	high := make([]Value, len(closes))
	low := make([]Value, len(closes))
	for i := range closes {
		if !mid[i].Valid || !std[i].Valid {
			continue
		}
		high[i] = Defined(mid[i].Float64 + BollingerDev*std[i].Float64)
		low[i] = Defined(mid[i].Float64 - BollingerDev*std[i].Float64)
	}
	f.BollingerMid, f.BollingerHigh, f.BollingerLow = mid, high, low
	return nil
}

// fallbackBollinger recomputes the bands by hand: rolling mean plus and
// minus twice the rolling standard deviation. Mathematically identical to
// the primary.
func fallbackBollinger(f *Frame, closes []float64) {
	n := len(closes)
	mid := make([]Value, n)
	high := make([]Value, n)
	low := make([]Value, n)

	for i := BollingerWindow - 1; i < n; i++ {
		sum := 0.0
		for j := i - BollingerWindow + 1; j <= i; j++ {
			sum += closes[j]
		}
		mean := sum / float64(BollingerWindow)

		variance := 0.0
		for j := i - BollingerWindow + 1; j <= i; j++ {
			diff := closes[j] - mean
			variance += diff * diff
		}
		std := math.Sqrt(variance / float64(BollingerWindow))

		mid[i] = Defined(mean)
		high[i] = Defined(mean + BollingerDev*std)
		low[i] = Defined(mean - BollingerDev*std)
	}
	f.BollingerMid, f.BollingerHigh, f.BollingerLow = mid, high, low
}

func deriveRSI(f *Frame, closes []float64) error {
	rsi, err := RelativeStrength(closes, RSIPeriod)
	if err != nil {
		return err
	}
	f.RSI = rsi
	return nil
}

// fallbackRSI substitutes the neutral constant for every bar.
func fallbackRSI(f *Frame, closes []float64) {
	rsi := make([]Value, len(closes))
	for i := range rsi {
		rsi[i] = Defined(NeutralRSI)
	}
	f.RSI = rsi
}

// deriveMACD computes EMA(12)-EMA(26), the 9-period EMA signal line, and
// their difference as the histogram.
func deriveMACD(f *Frame, closes []float64) error {
	fast, err := EMA(closes, MACDFastPeriod)
	if err != nil {
		return err
	}
	slow, err := EMA(closes, MACDSlowPeriod)
	if err != nil {
		return err
	}

	line := make([]Value, len(closes))
	for i := range closes {
		if fast[i].Valid && slow[i].Valid {
			line[i] = Defined(fast[i].Float64 - slow[i].Float64)
		}
	}

	signal, err := emaOverValues(line, MACDSignalPeriod)
	if err != nil {
		return err
	}

	hist := make([]Value, len(closes))
	for i := range closes {
		if line[i].Valid && signal[i].Valid {
			hist[i] = Defined(line[i].Float64 - signal[i].Float64)
		}
	}

	f.MACD, f.MACDSignal, f.MACDHistogram = line, signal, hist
	return nil
}

// fallbackMACD recomputes the identical exponential-moving-average
// recurrence by hand.
func fallbackMACD(f *Frame, closes []float64) {
	n := len(closes)
	line := make([]Value, n)
	signal := make([]Value, n)
	hist := make([]Value, n)

	fast := manualEMA(closes, MACDFastPeriod)
	slow := manualEMA(closes, MACDSlowPeriod)
	for i := 0; i < n; i++ {
		if !math.IsNaN(fast[i]) && !math.IsNaN(slow[i]) {
			line[i] = Defined(fast[i] - slow[i])
		}
	}

	// Signal line: 9-period EMA over the defined stretch of the MACD line.
	first := -1
	for i, v := range line {
		if v.Valid {
			first = i
			break
		}
	}
	if first >= 0 {
		macdVals := make([]float64, 0, n-first)
		for _, v := range line[first:] {
			macdVals = append(macdVals, v.Float64)
		}
		sig := manualEMA(macdVals, MACDSignalPeriod)
		for i, v := range sig {
			if !math.IsNaN(v) {
				signal[first+i] = Defined(v)
			}
		}
	}

	for i := 0; i < n; i++ {
		if line[i].Valid && signal[i].Valid {
			hist[i] = Defined(line[i].Float64 - signal[i].Float64)
		}
	}
	f.MACD, f.MACDSignal, f.MACDHistogram = line, signal, hist
}

// manualEMA mirrors the EMA recurrence with NaN marking undefined slots.
func manualEMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(values) < period || period < 1 {
		return out
	}

	multiplier := 2.0 / (float64(period) + 1.0)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema
	for i := period; i < len(values); i++ {
		ema = (values[i] * multiplier) + (ema * (1 - multiplier))
		out[i] = ema
	}
	return out
}
