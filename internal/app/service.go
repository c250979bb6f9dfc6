// Package service wires the loader, cache, aggregator and view into the
// operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/babynames/internal/adapters/repository"
	"github.com/okian/babynames/internal/config"
	"github.com/okian/babynames/internal/domain/aggregate"
	"github.com/okian/babynames/internal/domain/dedupe"
	"github.com/okian/babynames/internal/domain/model"
	"github.com/okian/babynames/internal/domain/view"
	"github.com/okian/babynames/internal/loader"
	"github.com/okian/babynames/pkg/logger"
	"github.com/okian/babynames/pkg/metrics"
)

// RecordLoader produces the unified table for a source URI.
type RecordLoader interface {
	Load(ctx context.Context, uri string) ([]model.Record, error)
}

// Span is the year range covered by the dataset.
type Span struct {
	Min   int  `json:"min"`
	Max   int  `json:"max"`
	Empty bool `json:"empty,omitempty"`
}

// Service implements the explorer operations over one source archive.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader  RecordLoader
	cache   repository.Cache
	deduper dedupe.Deduper

	// Configuration
	sourceURL       string
	mergeDuplicates bool
	maxTableRows    int
	yearMin         int
	yearMax         int
	warm            bool

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithLoader replaces the archive loader.
func WithLoader(l RecordLoader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithCache replaces the dataset cache.
func WithCache(c repository.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithSourceURL sets the archive location.
func WithSourceURL(uri string) Option {
	return func(s *Service) {
		if uri != "" {
			s.sourceURL = uri
		}
	}
}

// WithMergeDuplicates folds repeated (name, sex, year) rows before aggregation.
func WithMergeDuplicates(merge bool) Option {
	return func(s *Service) {
		s.mergeDuplicates = merge
	}
}

// WithMaxTableRows caps view tables; zero means unlimited.
func WithMaxTableRows(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxTableRows = n
		}
	}
}

// WithDefaultYears sets the year range preselected in DefaultFilters.
func WithDefaultYears(minYear, maxYear int) Option {
	return func(s *Service) {
		if minYear <= maxYear {
			s.yearMin, s.yearMax = minYear, maxYear
		}
	}
}

// WithWarmStart makes Start load the dataset instead of waiting for the first request.
func WithWarmStart(warm bool) Option {
	return func(s *Service) {
		s.warm = warm
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourceURL: config.DefaultSourceURL,
		yearMin:   view.DefaultYearMin,
		yearMax:   view.DefaultYearMax,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.loader == nil {
		s.loader = loader.New(loader.WithLogger(s.logger.Named("loader")))
	}
	if s.cache == nil {
		s.cache = repository.NewMemoryCache()
	}
	s.deduper = dedupe.New(s.mergeDuplicates)
	return s
}

// Start marks the service ready and, when warm start is on, loads the dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info(ctx, "explorer service started",
		logger.String("source", s.sourceURL),
		logger.Bool("mergeDuplicates", s.mergeDuplicates),
		logger.Bool("warm", s.warm),
	)

	if !s.warm {
		return nil
	}
	if _, err := s.Dataset(ctx); err != nil {
		return err
	}
	return nil
}

// Stop marks the service stopped. The cached table stays valid.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "explorer service stopped")
}

// SourceURL returns the archive location the service reads.
func (s *Service) SourceURL() string {
	return s.sourceURL
}

// DefaultFilters returns the initial filter set: both sexes over the default years.
func (s *Service) DefaultFilters() view.Filters {
	f := view.DefaultFilters()
	f.YearMin, f.YearMax = s.yearMin, s.yearMax
	return f
}

// Dataset returns the enriched table, loading it on first use.
func (s *Service) Dataset(ctx context.Context) (*repository.Entry, error) {
	return s.cache.GetOrLoad(ctx, s.sourceURL, s.build)
}

// build runs fetch, parse, optional merge and aggregation for one URI.
func (s *Service) build(ctx context.Context, uri string) ([]model.Row, error) {
	start := time.Now()
	records, err := s.loader.Load(ctx, uri)
	if err != nil {
		outcome := metrics.OutcomeFetchError
		if errors.Is(err, loader.ErrParse) {
			outcome = metrics.OutcomeParseError
		}
		metrics.RecordDatasetLoad(outcome, time.Since(start))
		s.logger.Error(ctx, "dataset load failed",
			logger.String("uri", uri),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return nil, err
	}

	records, merged := s.deduper.Merge(ctx, records)
	if merged > 0 {
		metrics.RecordDuplicatesMerged(merged)
	}
	rows := aggregate.Proportions(records)
	shape := aggregate.Describe(rows)

	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(metrics.OutcomeSuccess, elapsed)
	metrics.UpdateDatasetShape(shape.Records, shape.Years, shape.Groups)
	s.logger.Info(ctx, "dataset ready",
		logger.String("uri", uri),
		logger.Int("records", shape.Records),
		logger.Int("years", shape.Years),
		logger.Int("groups", shape.Groups),
		logger.Int("merged", merged),
		logger.Duration("elapsed", elapsed),
	)
	return rows, nil
}

// Trend renders the view for f over the cached table.
func (s *Service) Trend(ctx context.Context, f view.Filters) (view.View, error) {
	if err := f.Validate(); err != nil {
		return view.View{}, err
	}
	entry, err := s.Dataset(ctx)
	if err != nil {
		return view.View{}, err
	}

	start := time.Now()
	v := view.Render(entry.Rows, f, view.WithMaxTableRows(s.maxTableRows))
	metrics.RecordRenderLatency("view", float64(time.Since(start).Microseconds())/1000)
	if v.Empty {
		metrics.RecordEmptyResult()
	}
	s.logger.Debug(ctx, "trend rendered",
		logger.String("name", f.Name),
		logger.Int("rows", len(v.Rows)),
		logger.Bool("empty", v.Empty),
	)
	return v, nil
}

// Span returns the first and last year of the dataset.
func (s *Service) Span(ctx context.Context) (Span, error) {
	entry, err := s.Dataset(ctx)
	if err != nil {
		return Span{}, err
	}
	lo, hi, ok := aggregate.Span(entry.Rows)
	return Span{Min: lo, Max: hi, Empty: !ok}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"source":          s.sourceURL,
		"mergeDuplicates": s.mergeDuplicates,
		"cachedDatasets":  s.cache.Len(ctx),
	}
	if s.started {
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
	}

	entry, err := s.cache.Get(ctx, s.sourceURL)
	stats["loaded"] = err == nil
	if err == nil {
		stats["loadId"] = entry.LoadID
		stats["loadedAt"] = entry.LoadedAt.UTC().Format(time.RFC3339)
		stats["loadDurationMs"] = entry.Duration.Milliseconds()
		stats["records"] = entry.Shape.Records
		stats["years"] = entry.Shape.Years
		stats["groups"] = entry.Shape.Groups
	}
	return stats
}
