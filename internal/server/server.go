// Package server exposes the prediction engine over HTTP. Three endpoints:
// POST /api/v1/predict, POST /api/v1/forecast, GET /api/v1/health.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/store"
	"news-impact-engine/internal/trace"
	"news-impact-engine/internal/types"
)

// Server wraps the engine behind an http.Server.
type Server struct {
	cfg    *store.Config
	engine interfaces.Engine
	httpd  *http.Server
}

// New creates a server listening on the configured address.
func New(cfg *store.Config, eng interfaces.Engine) *Server {
	s := &Server{
		cfg:    cfg,
		engine: eng,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/predict", s.handlePredict)
	mux.HandleFunc("/api/v1/forecast", s.handleForecast)
	mux.HandleFunc("/api/v1/health", s.handleHealth)

	s.httpd = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	return s
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	return s.httpd.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpd.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpd.Handler
}

type predictRequest struct {
	Symbol string                `json:"symbol"`
	Items  []types.SentimentItem `json:"items"`
}

type forecastRequest struct {
	Symbol       string                `json:"symbol"`
	Items        []types.SentimentItem `json:"items"`
	CurrentPrice float64               `json:"current_price,omitempty"`
	HorizonDays  int                   `json:"horizon_days,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, span := trace.StartSpan(r.Context(), "server.handlePredict")
	defer span.End()

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := validateRequest(req.Symbol, req.Items); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.Predict(ctx, req.Symbol, req.Items)
	if err != nil {
		logger.ErrorWithErr(ctx, "Predict request failed", err, "symbol", req.Symbol)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, span := trace.StartSpan(r.Context(), "server.handleForecast")
	defer span.End()

	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := validateRequest(req.Symbol, req.Items); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CurrentPrice < 0 {
		writeError(w, http.StatusBadRequest, "current_price must be positive when supplied")
		return
	}
	if req.HorizonDays < 0 {
		writeError(w, http.StatusBadRequest, "horizon_days must be positive when supplied")
		return
	}

	result, err := s.engine.PredictWithForecast(ctx, req.Symbol, req.Items, req.CurrentPrice, req.HorizonDays)
	if err != nil {
		logger.ErrorWithErr(ctx, "Forecast request failed", err, "symbol", req.Symbol)
		writeError(w, http.StatusInternalServerError, "forecast failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validateRequest rejects requests the engine would treat as contract
// violations. An empty items list is valid: it yields the default verdict.
func validateRequest(symbol string, items []types.SentimentItem) error {
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	for i, item := range items {
		if item.Score < 0 || item.Score > 1 {
			return fmt.Errorf("items[%d]: score must be in [0,1], got %v", i, item.Score)
		}
		if item.Sentiment == "" {
			return fmt.Errorf("items[%d]: sentiment label is required", i)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
