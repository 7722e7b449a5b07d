package indicator

import "fmt"

// RelativeStrength computes the Wilder-smoothed RSI over the given period.
// The result aligns with closes; the first period entries are undefined
// (the oscillator needs period+1 closes for its first reading).
func RelativeStrength(closes []float64, period int) ([]Value, error) {
	if period < 1 {
		return nil, fmt.Errorf("rsi: period must be >= 1, got %d", period)
	}

	out := make([]Value, len(closes))
	if len(closes) < period+1 {
		return out, nil
	}

	// Initial averages from the first period deltas.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = Defined(rsiFrom(avgGain, avgLoss))

	// Wilder's smoothing for the rest.
	p := float64(period)
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = Defined(rsiFrom(avgGain, avgLoss))
	}
	return out, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
