// Package marketdata acquires daily OHLCV price series from Yahoo Finance
// with layered retrieval strategies and bounded retries.
package marketdata

import (
	"fmt"
	"strings"
	"time"
)

// Bar is a single daily OHLCV price bar. Bars are immutable once fetched.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is an ordered daily price series, one bar per trading day,
// strictly increasing by date. Non-trading days are simply absent.
type Series struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Closes extracts the close prices in bar order.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Dates extracts the bar dates in order.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Date
	}
	return out
}

// Validate checks the structural invariants: non-empty and strictly
// increasing dates.
func (s *Series) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("series %s: no bars", s.Symbol)
	}
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("series %s: dates not strictly increasing at index %d (%s -> %s)",
				s.Symbol, i,
				s.Bars[i-1].Date.Format("2006-01-02"),
				s.Bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Slice returns the bars whose dates fall inside [start, end] inclusive.
func (s *Series) Slice(start, end time.Time) []Bar {
	var out []Bar
	for _, b := range s.Bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// NormalizeSymbol converts a ticker symbol to standard format.
func NormalizeSymbol(symbol string) string {
	return strings.TrimSpace(strings.ToUpper(symbol))
}

// ValidateSymbol checks that a ticker symbol has a usable format.
func ValidateSymbol(symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if len(symbol) == 0 {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	return nil
}
