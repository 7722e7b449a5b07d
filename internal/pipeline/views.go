package pipeline

import (
	"time"

	"github.com/shopspring/decimal"
)

// The view builders flatten an Analysis into the per-endpoint response
// records. Numeric rounding happens here and only here: 2 decimal places
// everywhere except raw MACD values, which keep 4.

const dateLayout = "2006-01-02"

// PricePoint is one bar of the price+indicator view. Only bars where
// both SMAs are defined appear.
type PricePoint struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	SMAShort float64 `json:"smaShort"`
	SMALong  float64 `json:"smaLong"`
	Volume   int64   `json:"volume"`
	Signal   int     `json:"signal"`
}

// PerformanceView is the performance-metrics response record.
type PerformanceView struct {
	StrategyReturn float64 `json:"strategyReturn"`
	BuyHoldReturn  float64 `json:"buyHoldReturn"`
	TotalTrades    int     `json:"totalTrades"`
	MaxDrawdown    float64 `json:"maxDrawdown"`
	SharpeRatio    float64 `json:"sharpeRatio"`
	WinRate        float64 `json:"winRate"`
	Volatility     float64 `json:"volatility"`
	Alpha          float64 `json:"alpha"`
}

// TradeView is one trade-ledger entry. PnL is present only on Sell
// events that settled against a prior Buy.
type TradeView struct {
	ID     int      `json:"id"`
	Date   string   `json:"date"`
	Action string   `json:"action"`
	Price  float64  `json:"price"`
	Shares int      `json:"shares"`
	Value  float64  `json:"value"`
	PnL    *float64 `json:"pnl,omitempty"`
}

// IndicatorPoint is a single dated indicator reading (RSI view).
type IndicatorPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MACDPoint is one bar of the MACD view.
type MACDPoint struct {
	Date      string  `json:"date"`
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerPoint is one bar of the Bollinger-band view.
type BollingerPoint struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// PricePoints builds the price+indicator view.
func (a *Analysis) PricePoints() []PricePoint {
	var out []PricePoint
	for i, bar := range a.Series.Bars {
		short := a.Frame.SMAShort[i]
		long := a.Frame.SMALong[i]
		if !short.Valid || !long.Valid {
			continue
		}
		volume := bar.Volume
		if volume < 0 {
			volume = 0
		}
		out = append(out, PricePoint{
			Date:     bar.Date.Format(dateLayout),
			Price:    round2(bar.Close),
			SMAShort: round2(short.Float64),
			SMALong:  round2(long.Float64),
			Volume:   volume,
			Signal:   int(a.Signals.Signals[i]),
		})
	}
	return out
}

// PerformanceMetrics builds the performance view, converting fractional
// returns to percentages.
func (a *Analysis) PerformanceMetrics() PerformanceView {
	p := a.Performance
	return PerformanceView{
		StrategyReturn: round2(p.StrategyReturn * 100),
		BuyHoldReturn:  round2(p.BuyHoldReturn * 100),
		TotalTrades:    p.TotalTrades,
		MaxDrawdown:    round2(p.MaxDrawdown * 100),
		SharpeRatio:    round2(p.SharpeRatio),
		WinRate:        round2(p.WinRate),
		Volatility:     round2(p.Volatility),
		Alpha:          round2(p.Alpha),
	}
}

// TradeLog builds the trade-ledger view. An empty ledger yields an empty
// (non-nil) slice.
func (a *Analysis) TradeLog() []TradeView {
	out := make([]TradeView, 0, len(a.Trades))
	for _, t := range a.Trades {
		view := TradeView{
			ID:     t.ID,
			Date:   t.Date.Format(dateLayout),
			Action: t.Action,
			Price:  round2(t.Price),
			Shares: t.Shares,
			Value:  round2(t.Value),
		}
		if t.PnL != nil {
			pnl := round2(*t.PnL)
			view.PnL = &pnl
		}
		out = append(out, view)
	}
	return out
}

// RSISeries builds the RSI view over the bars where RSI is defined.
func (a *Analysis) RSISeries() []IndicatorPoint {
	var out []IndicatorPoint
	for i, date := range a.Frame.Dates {
		v := a.Frame.RSI[i]
		if !v.Valid {
			continue
		}
		out = append(out, IndicatorPoint{
			Date:  date.Format(dateLayout),
			Value: round2(v.Float64),
		})
	}
	return out
}

// MACDSeries builds the MACD view over the bars where both the line and
// the signal are defined. A still-undefined histogram reads as 0.
func (a *Analysis) MACDSeries() []MACDPoint {
	var out []MACDPoint
	for i, date := range a.Frame.Dates {
		line := a.Frame.MACD[i]
		signal := a.Frame.MACDSignal[i]
		if !line.Valid || !signal.Valid {
			continue
		}
		out = append(out, MACDPoint{
			Date:      date.Format(dateLayout),
			MACD:      round4(line.Float64),
			Signal:    round4(signal.Float64),
			Histogram: round4(a.Frame.MACDHistogram[i].Or(0)),
		})
	}
	return out
}

// BollingerSeries builds the Bollinger view over the bars where the
// bands are defined.
func (a *Analysis) BollingerSeries() []BollingerPoint {
	var out []BollingerPoint
	for i, bar := range a.Series.Bars {
		high := a.Frame.BollingerHigh[i]
		low := a.Frame.BollingerLow[i]
		if !high.Valid || !low.Valid {
			continue
		}
		out = append(out, BollingerPoint{
			Date:   bar.Date.Format(dateLayout),
			Price:  round2(bar.Close),
			Upper:  round2(high.Float64),
			Middle: round2(a.Frame.BollingerMid[i].Or(0)),
			Lower:  round2(low.Float64),
		})
	}
	return out
}

func round2(v float64) float64 { return roundTo(v, 2) }
func round4(v float64) float64 { return roundTo(v, 4) }

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// FormatDate renders a bar date the way every view does.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }
