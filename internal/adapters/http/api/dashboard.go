package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// dashboardHandler serves the single-page explorer. The page is static; all
// data comes from /trend, /span and the chart endpoints.
type dashboardHandler struct {
	pages fs.FS
}

func newDashboardHandler() *dashboardHandler {
	pages, err := fs.Sub(staticFS, "static")
	if err != nil {
		pages = staticFS
	}
	return &dashboardHandler{pages: pages}
}

// HandleDashboard handles GET /dashboard.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, h.pages, "dashboard.html")
}
