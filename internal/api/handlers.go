package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/pipeline"
)

// analysisRequest is the body shared by every /api/stock endpoint.
type analysisRequest struct {
	Ticker    string `json:"ticker"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	SMAShort  int    `json:"sma_short"`
	SMALong   int    `json:"sma_long"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "FinDash API is running",
		"status":  "healthy",
		"version": version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handlePriceData(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	points := analysis.PricePoints()
	if len(points) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Detail: "No valid price data found after processing",
		})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.PerformanceMetrics())
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.TradeLog())
}

func (s *Server) handleRSI(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.RSISeries())
}

func (s *Server) handleMACD(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.MACDSeries())
}

func (s *Server) handleBollinger(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.runAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.BollingerSeries())
}

// runAnalysis decodes the request body, runs the pipeline once, and
// handles the error cases. A false return means the response has
// already been written.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request) (*pipeline.Analysis, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "method not allowed"})
		return nil, false
	}
	var body analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return nil, false
	}
	analysis, err := s.runner.Run(marketdata.Request{
		Symbol:    body.Ticker,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		SMAShort:  body.SMAShort,
		SMALong:   body.SMALong,
	})
	if err != nil {
		writeAnalysisError(w, err)
		return nil, false
	}
	return analysis, true
}

// writeAnalysisError maps pipeline failures onto HTTP statuses. Fetch
// failures carry their full detail to the client; anything unexpected
// is logged server-side and reported generically.
func writeAnalysisError(w http.ResponseWriter, err error) {
	var unavailable *marketdata.DataUnavailableError
	var insufficient *marketdata.InsufficientDataError
	switch {
	case errors.Is(err, marketdata.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: unavailable.Error()})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: insufficient.Error()})
	default:
		log.Printf("[api] analysis failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}
