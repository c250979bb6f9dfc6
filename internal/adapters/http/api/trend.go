package api

import (
	"net/http"
)

// TrendHandler serves the explorer view as JSON.
type TrendHandler struct {
	deps Dependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps Dependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

// HandleTrend handles GET /trend?name=&from=&to=&sex= requests.
func (h *TrendHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	f, err := parseFilters(r.URL.Query(), h.deps.DefaultFilters())
	if err != nil {
		writeFailure(w, err)
		return
	}
	v, err := h.deps.Trend(r.Context(), f)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
