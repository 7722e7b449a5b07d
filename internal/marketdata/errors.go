package marketdata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest reports a request that fails validation before any
// fetch is attempted: empty symbol, unparseable dates, or start >= end.
var ErrInvalidRequest = errors.New("invalid request")

// popularSymbols is offered as a suggestion list when a symbol cannot be
// resolved through any retrieval strategy.
var popularSymbols = []string{
	"MSFT", "GOOGL", "TSLA", "AMZN", "NVDA", "META", "BRK-B", "JNJ", "V", "PG",
}

// DataUnavailableError reports that every retrieval strategy across every
// attempt failed. No partial result accompanies it.
type DataUnavailableError struct {
	Symbol      string
	Attempts    int
	Suggestions []string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("unable to fetch data for %q after %d attempts. "+
		"This could be due to an invalid symbol, a market holiday, a recently "+
		"delisted stock, or temporary upstream issues. Try these popular symbols: %s",
		e.Symbol, e.Attempts, strings.Join(e.Suggestions, ", "))
}

// InsufficientDataError reports that data was retrieved but holds fewer
// bars than the window-derived minimum.
type InsufficientDataError struct {
	Symbol      string
	Bars        int
	MinRequired int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: got %d trading days, need at least %d for analysis. "+
		"Try different dates or check if the symbol is correct",
		e.Symbol, e.Bars, e.MinRequired)
}
