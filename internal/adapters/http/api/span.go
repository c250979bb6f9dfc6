package api

import (
	"net/http"
)

// SpanHandler serves the dataset year span.
type SpanHandler struct {
	deps Dependencies
}

// NewSpanHandler creates a new span handler.
func NewSpanHandler(deps Dependencies) *SpanHandler {
	return &SpanHandler{deps: deps}
}

// HandleSpan handles GET /span requests.
func (h *SpanHandler) HandleSpan(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	span, err := h.deps.Span(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, span)
}
