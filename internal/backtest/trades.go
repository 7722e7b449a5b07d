package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/strategy"
)

// SharesPerTrade is the fixed quantity per trade; there is no position
// sizing.
const SharesPerTrade = 100

// Trade actions.
const (
	ActionBuy  = "Buy"
	ActionSell = "Sell"
)

// Trade is one reconstructed entry or exit event. PnL is set only on
// Sell events that have a prior Buy to settle against.
type Trade struct {
	ID     int
	Date   time.Time
	Action string
	Price  float64
	Shares int
	Value  float64
	PnL    *float64
}

// BuildLedger reconstructs discrete trade events from position
// transitions. A trade exists only where the position flips directly
// between Long and Short; moves into or out of Flat are deliberately not
// trades, consistent with the performance trade count. An empty ledger is
// a valid result.
func BuildLedger(series *marketdata.Series, res *strategy.Result) []Trade {
	shares := decimal.NewFromInt(SharesPerTrade)

	var trades []Trade
	for i := 1; i < len(res.Positions); i++ {
		diff := int(res.Positions[i]) - int(res.Positions[i-1])
		if diff != 2 && diff != -2 {
			continue
		}

		action := ActionSell
		if res.Positions[i] == strategy.Long {
			action = ActionBuy
		}

		price := decimal.NewFromFloat(series.Bars[i].Close)
		trade := Trade{
			ID:     len(trades) + 1,
			Date:   series.Bars[i].Date,
			Action: action,
			Price:  series.Bars[i].Close,
			Shares: SharesPerTrade,
			Value:  price.Mul(shares).InexactFloat64(),
		}

		if action == ActionSell {
			// Settle against the most recent prior Buy, if any.
			for j := len(trades) - 1; j >= 0; j-- {
				if trades[j].Action != ActionBuy {
					continue
				}
				buyPrice := decimal.NewFromFloat(trades[j].Price)
				pnl := price.Sub(buyPrice).Mul(shares).InexactFloat64()
				trade.PnL = &pnl
				break
			}
		}

		trades = append(trades, trade)
	}
	return trades
}
