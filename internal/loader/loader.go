// Package loader retrieves the names archive and turns it into the unified table.
package loader

import (
	"context"
	"errors"
	"time"

	"github.com/okian/babynames/internal/domain/model"
	"github.com/okian/babynames/pkg/logger"
	"github.com/okian/babynames/pkg/metrics"
)

const defaultFetchTimeout = 2 * time.Minute

// Loader fetches an archive and parses it into year-tagged records.
type Loader struct {
	fetcher Fetcher
	logger  logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithFetcher replaces the default HTTP/file fetcher.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithLogger sets the logger used for load progress.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New constructs a Loader. Without WithFetcher it downloads with a two minute timeout.
func New(opts ...Option) *Loader {
	l := &Loader{
		fetcher: NewHTTPFetcher(defaultFetchTimeout),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named("loader")
	}
	return l
}

// Load fetches uri and returns the unified table without proportions.
// Errors are *FetchError or *ParseError; nothing partial is returned.
func (l *Loader) Load(ctx context.Context, uri string) ([]model.Record, error) {
	start := time.Now()
	l.logger.Info(ctx, "fetching archive", logger.String("uri", uri))

	data, err := l.fetcher.Fetch(ctx, uri)
	if err != nil {
		metrics.RecordErrorByComponent("loader", metrics.OutcomeFetchError)
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{URI: uri, Err: err}
		}
		return nil, err
	}
	metrics.UpdateArchiveBytes(len(data))
	l.logger.Debug(ctx, "archive fetched",
		logger.String("uri", uri),
		logger.Int("bytes", len(data)),
		logger.Duration("took", time.Since(start)),
	)

	records, err := ParseArchive(data)
	if err != nil {
		metrics.RecordErrorByComponent("loader", metrics.OutcomeParseError)
		return nil, err
	}

	l.logger.Info(ctx, "archive parsed",
		logger.String("uri", uri),
		logger.Int("records", len(records)),
		logger.Duration("took", time.Since(start)),
	)
	return records, nil
}
