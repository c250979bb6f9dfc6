package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/babynames/internal/domain/view"
	"github.com/okian/babynames/internal/render/chart"
	"github.com/okian/babynames/pkg/metrics"
)

// Upper bound on requested chart dimensions.
const maxChartSide = 4000

// ChartOption configures the ChartHandler.
type ChartOption func(*ChartHandler)

// WithChartSize sets the default PNG size.
func WithChartSize(width, height int) ChartOption {
	return func(h *ChartHandler) {
		if width > 0 && height > 0 {
			h.width, h.height = width, height
		}
	}
}

// ChartHandler serves view charts as PNG images.
type ChartHandler struct {
	deps   Dependencies
	width  int
	height int
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, opts ...ChartOption) *ChartHandler {
	h := &ChartHandler{deps: deps, width: 1200, height: 640}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleProportion handles GET /charts/proportion.png.
func (h *ChartHandler) HandleProportion(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "proportion", chart.LinePNG)
}

// HandleCounts handles GET /charts/counts.png.
func (h *ChartHandler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "counts", chart.BarPNG)
}

func (h *ChartHandler) serve(w http.ResponseWriter, r *http.Request, kind string, draw func(view.View, int, int) ([]byte, error)) {
	if !allowRead(w, r) {
		return
	}
	q := r.URL.Query()
	f, err := parseFilters(q, h.deps.DefaultFilters())
	if err != nil {
		writeFailure(w, err)
		return
	}
	width, err := intParam(q, "w", h.width)
	if err != nil {
		writeFailure(w, err)
		return
	}
	height, err := intParam(q, "h", h.height)
	if err != nil {
		writeFailure(w, err)
		return
	}
	width, height = min(width, maxChartSide), min(height, maxChartSide)

	v, err := h.deps.Trend(r.Context(), f)
	if err != nil {
		writeFailure(w, err)
		return
	}

	start := time.Now()
	png, err := draw(v, width, height)
	metrics.RecordRenderLatency("png_"+kind, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
