// Package pipeline runs the full analysis for one request: fetch,
// indicator derivation, signal evaluation, and backtest reduction. Every
// run is independent and stateless; nothing survives past the result.
package pipeline

import (
	"errors"
	"time"

	"github.com/dyike/findash/internal/backtest"
	"github.com/dyike/findash/internal/indicator"
	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/observability"
	"github.com/dyike/findash/internal/strategy"
)

// Default SMA windows applied when a request leaves them unset.
const (
	DefaultSMAShort = 20
	DefaultSMALong  = 50
)

// Analysis is the result of one pipeline run. All views are derived from
// it, so the API and the dashboard produce identical numbers.
type Analysis struct {
	Series      *marketdata.Series
	Frame       *indicator.Frame
	Signals     *strategy.Result
	Performance backtest.Performance
	Trades      []backtest.Trade

	// Degraded names the indicators whose primary derivation failed and
	// was replaced by a fallback value during this run.
	Degraded []string
}

// Runner executes pipeline runs against a fetcher. Concurrent Run calls
// are independent; the Runner holds no per-run state.
type Runner struct {
	fetcher *marketdata.Fetcher
	metrics *observability.Metrics
}

// NewRunner creates a pipeline runner. metrics may be nil.
func NewRunner(fetcher *marketdata.Fetcher, metrics *observability.Metrics) *Runner {
	return &Runner{fetcher: fetcher, metrics: metrics}
}

// Run executes the full pipeline for one request.
func (r *Runner) Run(req marketdata.Request) (*Analysis, error) {
	started := time.Now()
	if req.SMAShort == 0 {
		req.SMAShort = DefaultSMAShort
	}
	if req.SMALong == 0 {
		req.SMALong = DefaultSMALong
	}

	analysis, err := r.run(req)
	r.observe(analysis, err, time.Since(started))
	return analysis, err
}

func (r *Runner) run(req marketdata.Request) (*Analysis, error) {
	series, err := r.fetcher.Fetch(req)
	if err != nil {
		return nil, err
	}

	frame, degraded, err := indicator.Compute(series, indicator.Params{
		SMAShort: req.SMAShort,
		SMALong:  req.SMALong,
	})
	if err != nil {
		return nil, err
	}

	signals := strategy.Evaluate(series, frame)

	return &Analysis{
		Series:      series,
		Frame:       frame,
		Signals:     signals,
		Performance: backtest.Analyze(signals),
		Trades:      backtest.BuildLedger(series, signals),
		Degraded:    degraded,
	}, nil
}

func (r *Runner) observe(analysis *Analysis, err error, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.PipelineDuration.Observe(elapsed.Seconds())
	r.metrics.PipelineRunsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if analysis != nil {
		for _, name := range analysis.Degraded {
			r.metrics.IndicatorFallbacks.WithLabelValues(name).Inc()
		}
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, marketdata.ErrInvalidRequest):
		return "invalid_request"
	case isDataUnavailable(err):
		return "data_unavailable"
	case isInsufficientData(err):
		return "insufficient_data"
	default:
		return "internal"
	}
}

func isDataUnavailable(err error) bool {
	var e *marketdata.DataUnavailableError
	return errors.As(err, &e)
}

func isInsufficientData(err error) bool {
	var e *marketdata.InsufficientDataError
	return errors.As(err, &e)
}
