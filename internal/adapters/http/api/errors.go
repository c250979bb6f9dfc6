package api

import (
	"errors"
	"net/http"

	"github.com/okian/babynames/internal/domain/view"
	"github.com/okian/babynames/internal/loader"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// statusFor translates an error kind to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, view.ErrInvalidFilters):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, loader.ErrFetch):
		return http.StatusBadGateway, "fetch_failed"
	case errors.Is(err, loader.ErrParse):
		return http.StatusInternalServerError, "parse_failed"
	}
	return http.StatusInternalServerError, "internal_error"
}
