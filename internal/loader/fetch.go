package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Fetcher retrieves archive bytes for a URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, uri string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, uri string) ([]byte, error) { return f(ctx, uri) }

// HTTPFetcher downloads http(s) URIs and reads file:// URIs or bare paths from disk.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher whose client gives up after timeout.
// A zero timeout leaves the transfer unbounded.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// NewHTTPFetcherWithClient uses the given client as is.
func NewHTTPFetcherWithClient(c *http.Client) *HTTPFetcher {
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTPFetcher{client: c}
}

// Fetch returns the full body of uri. Every failure is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &FetchError{URI: uri, Err: err}
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, uri)
	case "file":
		return readFile(uri, u.Path)
	case "":
		return readFile(uri, uri)
	}
	return nil, &FetchError{URI: uri, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, &FetchError{URI: uri, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URI: uri, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URI: uri, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URI: uri, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func readFile(uri, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{URI: uri, Err: err}
	}
	return b, nil
}
