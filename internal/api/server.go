// Package api exposes the analysis pipeline over HTTP. It is replaceable
// plumbing: every endpoint decodes one request record, runs the pipeline
// once, and serializes one view. Swapping this layer changes nothing
// about the pipeline's contract.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/dyike/findash/internal/config"
	"github.com/dyike/findash/internal/observability"
	"github.com/dyike/findash/internal/pipeline"
)

const version = "2.0.0"

// Server serves the FinDash HTTP API.
type Server struct {
	runner  *pipeline.Runner
	cfg     *config.Config
	metrics *observability.Metrics
}

// NewServer creates the API server. metrics may be nil.
func NewServer(runner *pipeline.Runner, cfg *config.Config, metrics *observability.Metrics) *Server {
	return &Server{runner: runner, cfg: cfg, metrics: metrics}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", observability.Handler())

	mux.HandleFunc("/api/stock/price-data", s.instrument("price-data", s.handlePriceData))
	mux.HandleFunc("/api/stock/performance", s.instrument("performance", s.handlePerformance))
	mux.HandleFunc("/api/stock/trades", s.instrument("trades", s.handleTrades))
	mux.HandleFunc("/api/stock/rsi", s.instrument("rsi", s.handleRSI))
	mux.HandleFunc("/api/stock/macd", s.instrument("macd", s.handleMACD))
	mux.HandleFunc("/api/stock/bollinger", s.instrument("bollinger", s.handleBollinger))

	return s.cors(mux)
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	log.Printf("[api] listening on %s (allowed origin %s)", s.cfg.HTTPAddr, s.cfg.AllowedOrigin)
	return http.ListenAndServe(s.cfg.HTTPAddr, s.Handler())
}

// cors allows the configured frontend origin and answers preflight
// requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records the request duration per endpoint.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next(w, r)
		if s.metrics != nil {
			s.metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
		}
	}
}
