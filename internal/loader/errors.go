package loader

import (
	"errors"
	"fmt"
)

// Sentinel kinds for loader errors. Typed errors below match them via errors.Is.
var (
	ErrFetch = errors.New("fetch failed")
	ErrParse = errors.New("parse failed")
)

// FetchError reports that the archive could not be retrieved.
type FetchError struct {
	URI        string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URI, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URI, e.Err)
	}
	return "fetch " + e.URI + ": failed"
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports a malformed archive, entry name or row.
// Line is 1-based; zero when the problem is not tied to a row.
type ParseError struct {
	Entry  string
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse"
	if e.Entry != "" {
		msg += " " + e.Entry
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
