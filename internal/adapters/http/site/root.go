// Package site serves the explorer's About/How-to page and the root redirect.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Error constants
var (
	ErrGenerate = errors.New("about page generation failed")
	ErrServe    = errors.New("about page serve failed")
)

// Register attaches the site routes to mux.
//
//	GET /       -> redirect to /dashboard
//	GET /about  -> About/How-to page rendered from embedded markdown
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler()
	mux.HandleFunc("/", h.HandleRoot)
	mux.HandleFunc("/about", h.HandleAbout)
}

// RootHandler handles the root and about pages.
type RootHandler struct {
	once sync.Once
	page []byte
	err  error
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot redirects GET / to the dashboard. Other unmatched paths are 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleAbout serves the rendered About/How-to page.
func (h *RootHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.once.Do(func() {
		h.page, h.err = RenderPage("About This App", aboutMarkdown)
	})
	if h.err != nil {
		http.Error(w, fmt.Errorf("%w: %w", ErrServe, h.err).Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}

// RenderPage converts markdown into a standalone HTML page.
func RenderPage(title string, md []byte) ([]byte, error) {
	var body bytes.Buffer
	markdown := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := markdown.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	var page bytes.Buffer
	page.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(title)
	page.WriteString("</title>\n<style>body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}" +
		"table{border-collapse:collapse}th,td{border:1px solid #ddd;padding:.3rem .6rem}code{background:#f4f4f6}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("<p><a href=\"/dashboard\">Back to the explorer</a></p>\n</body>\n</html>\n")
	return page.Bytes(), nil
}
