package indicator

import (
	"fmt"
	"math"
)

// RollingMean computes the simple moving average over a trailing window.
// The result has the same length as closes; entries before the window is
// full are undefined.
func RollingMean(closes []float64, window int) ([]Value, error) {
	if window < 1 {
		return nil, fmt.Errorf("rolling mean: window must be >= 1, got %d", window)
	}

	out := make([]Value, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = Defined(sum / float64(window))
		}
	}
	return out, nil
}

// RollingStdDev computes the rolling population standard deviation over a
// trailing window, aligned and undefined like RollingMean.
func RollingStdDev(closes []float64, window int) ([]Value, error) {
	if window < 1 {
		return nil, fmt.Errorf("rolling stddev: window must be >= 1, got %d", window)
	}

	out := make([]Value, len(closes))
	for i := window - 1; i < len(closes); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += closes[j]
		}
		mean /= float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			diff := closes[j] - mean
			variance += diff * diff
		}
		variance /= float64(window)
		out[i] = Defined(math.Sqrt(variance))
	}
	return out, nil
}

// EMA computes an exponential moving average seeded with the simple mean
// of the first period values, then smoothed with multiplier 2/(period+1).
// Entries before the seed window is full are undefined.
func EMA(closes []float64, period int) ([]Value, error) {
	if period < 1 {
		return nil, fmt.Errorf("ema: period must be >= 1, got %d", period)
	}

	out := make([]Value, len(closes))
	if len(closes) < period {
		return out, nil
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	ema := sum / float64(period)
	out[period-1] = Defined(ema)

	for i := period; i < len(closes); i++ {
		ema = (closes[i] * multiplier) + (ema * (1 - multiplier))
		out[i] = Defined(ema)
	}
	return out, nil
}

// emaOverValues runs EMA on an already partially-undefined input, keeping
// alignment: the seed window starts at the input's first defined entry.
func emaOverValues(values []Value, period int) ([]Value, error) {
	first := -1
	for i, v := range values {
		if v.Valid {
			first = i
			break
		}
	}
	out := make([]Value, len(values))
	if first < 0 {
		return out, nil
	}

	defined := make([]float64, 0, len(values)-first)
	for _, v := range values[first:] {
		defined = append(defined, v.Float64)
	}
	inner, err := EMA(defined, period)
	if err != nil {
		return nil, err
	}
	for i, v := range inner {
		out[first+i] = v
	}
	return out, nil
}
