package marketdata

import (
	"fmt"
	"log"
	"time"
)

const (
	// maxAttempts bounds the outer retry loop.
	maxAttempts = 3
	// minUsableBars is the floor a retrieval strategy result must clear
	// before it is considered usable at all.
	minUsableBars = 10
	// backoffStep scales the linear inter-attempt backoff (3s, 6s).
	backoffStep = 3 * time.Second
)

// Request identifies one series acquisition: a symbol, an inclusive date
// range, and the SMA windows that determine the minimum bar count.
type Request struct {
	Symbol    string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	SMAShort  int
	SMALong   int
}

// MinRequiredBars returns the minimum series length the request needs
// before indicator computation can proceed.
func (r Request) MinRequiredBars() int {
	longest := r.SMAShort
	if r.SMALong > longest {
		longest = r.SMALong
	}
	return longest + 10
}

// Fetcher acquires a validated daily price series through layered
// retrieval strategies with bounded retries.
type Fetcher struct {
	provider Provider
	sleep    func(time.Duration) // swapped out in tests
}

// NewFetcher creates a Fetcher backed by the given provider.
func NewFetcher(provider Provider) *Fetcher {
	return &Fetcher{
		provider: provider,
		sleep:    time.Sleep,
	}
}

// retrievalStrategy is one way of obtaining bars, in decreasing order of
// specificity. Fixed-window strategies return more than was asked for and
// are sliced down afterwards.
type retrievalStrategy struct {
	name  string
	fetch func(symbol string, start, end time.Time) ([]Bar, error)
}

func (f *Fetcher) strategies() []retrievalStrategy {
	return []retrievalStrategy{
		{
			name: "exact-range",
			fetch: func(symbol string, start, end time.Time) ([]Bar, error) {
				return f.provider.FetchRange(symbol, start, end)
			},
		},
		{
			name: "window-1y",
			fetch: func(symbol string, _, _ time.Time) ([]Bar, error) {
				return f.provider.FetchWindow(symbol, "1y")
			},
		},
		{
			name: "window-6mo",
			fetch: func(symbol string, _, _ time.Time) ([]Bar, error) {
				return f.provider.FetchWindow(symbol, "6mo")
			},
		},
	}
}

// Fetch validates the request, acquires bars, and enforces the minimum
// bar-count invariant. On success the returned series has strictly
// increasing dates and at least req.MinRequiredBars() bars.
func (f *Fetcher) Fetch(req Request) (*Series, error) {
	symbol := NormalizeSymbol(req.Symbol)
	if err := ValidateSymbol(symbol); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q, use YYYY-MM-DD", ErrInvalidRequest, req.StartDate)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q, use YYYY-MM-DD", ErrInvalidRequest, req.EndDate)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrInvalidRequest)
	}

	bars := f.acquire(symbol, start, end)
	if bars == nil {
		return nil, &DataUnavailableError{
			Symbol:      symbol,
			Attempts:    maxAttempts,
			Suggestions: popularSymbols,
		}
	}

	series := &Series{Symbol: symbol, Bars: bars}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if min := req.MinRequiredBars(); series.Len() < min {
		return nil, &InsufficientDataError{Symbol: symbol, Bars: series.Len(), MinRequired: min}
	}
	return series, nil
}

// acquire runs the outer attempt loop over the retrieval strategies,
// returning nil when everything failed.
func (f *Fetcher) acquire(symbol string, start, end time.Time) []Bar {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.Printf("[marketdata] fetching %s (attempt %d/%d)", symbol, attempt, maxAttempts)

		for _, strat := range f.strategies() {
			raw, err := strat.fetch(symbol, start, end)
			if err != nil {
				log.Printf("[marketdata] strategy %s failed for %s: %v", strat.name, symbol, err)
				continue
			}
			if len(raw) <= minUsableBars {
				log.Printf("[marketdata] strategy %s returned only %d bars for %s", strat.name, len(raw), symbol)
				continue
			}

			// Best-effort slice to the requested range. A slice that
			// empties the result counts as a slicing failure and falls
			// back to the unsliced bars.
			series := &Series{Symbol: symbol, Bars: raw}
			bars := series.Slice(start, end)
			if len(bars) == 0 {
				log.Printf("[marketdata] date filtering emptied %s result, keeping all %d bars", symbol, len(raw))
				bars = raw
			}
			if len(bars) <= minUsableBars {
				log.Printf("[marketdata] strategy %s has insufficient bars (%d) for %s after slicing", strat.name, len(bars), symbol)
				continue
			}

			log.Printf("[marketdata] fetched %d bars for %s via %s", len(bars), symbol, strat.name)
			return bars
		}

		// Linear backoff between attempts, not after the last.
		if attempt < maxAttempts {
			wait := time.Duration(attempt) * backoffStep
			log.Printf("[marketdata] all strategies failed for %s, waiting %s before retry", symbol, wait)
			f.sleep(wait)
		}
	}
	return nil
}
