// Package indicator derives technical indicators from daily price series.
//
// Every derivation is aligned 1:1 with the input series; bars where a
// rolling or exponential window has not yet filled hold an explicitly
// undefined Value rather than a fabricated number.
package indicator

// Value is a per-bar indicator value that may be undefined while the
// lookback window is still filling.
type Value struct {
	Float64 float64
	Valid   bool
}

// Defined wraps a concrete value.
func Defined(v float64) Value { return Value{Float64: v, Valid: true} }

// Undefined is the marker for bars without enough history.
var Undefined = Value{}

// Or returns the value, or def when undefined.
func (v Value) Or(def float64) float64 {
	if v.Valid {
		return v.Float64
	}
	return def
}
