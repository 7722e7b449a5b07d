package indicator

import "time"

// Frame holds all derived indicator values for one price series, aligned
// 1:1 with the series bars by date.
type Frame struct {
	Dates []time.Time

	SMAShort []Value
	SMALong  []Value

	BollingerHigh []Value
	BollingerMid  []Value
	BollingerLow  []Value

	RSI []Value

	MACD          []Value
	MACDSignal    []Value
	MACDHistogram []Value
}

// Len returns the number of bars covered by the frame.
func (f *Frame) Len() int { return len(f.Dates) }
