// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/babynames/internal/app"
	"github.com/okian/babynames/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Trend renders the explorer view for a filter set.
	Trend(ctx context.Context, f view.Filters) (view.View, error)
	// Span returns the first and last year of the dataset.
	Span(ctx context.Context) (service.Span, error)
	// DefaultFilters is the filter set applied to omitted query parameters.
	DefaultFilters() view.Filters
}

// Server wires HTTP routes for the explorer API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	trendHandler     *TrendHandler
	chartHandler     *ChartHandler
	spanHandler      *SpanHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ChartOption) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		trendHandler:     NewTrendHandler(deps),
		chartHandler:     NewChartHandler(deps, opts...),
		spanHandler:      NewSpanHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/trend", MetricsMiddleware(s.trendHandler.HandleTrend, "trend"))
	mux.HandleFunc("/span", MetricsMiddleware(s.spanHandler.HandleSpan, "span"))
	mux.HandleFunc("/charts/proportion.png", MetricsMiddleware(s.chartHandler.HandleProportion, "chart_proportion"))
	mux.HandleFunc("/charts/counts.png", MetricsMiddleware(s.chartHandler.HandleCounts, "chart_counts"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a domain error onto its status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
