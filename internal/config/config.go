// Package config defines process configuration and its loading hooks.
//
// Conventions:
//   - New() returns a Config populated with defaults.
//   - Load(ctx) layers defaults, an optional YAML file and BABYNAMES_ env vars.
//   - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
)

// DefaultSourceURL is the public SSA national baby names archive.
const DefaultSourceURL = "https://www.ssa.gov/oact/babynames/names.zip"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SourceURL is the archive location; http(s):// or file://.
	SourceURL string `koanf:"source_url"`

	// FetchTimeoutMS bounds the archive download. Zero means no client timeout.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// DefaultYearMin and DefaultYearMax preset the year range filter.
	DefaultYearMin int `koanf:"default_year_min"`
	DefaultYearMax int `koanf:"default_year_max"`

	// MergeDuplicates folds repeated (name, sex, year) rows into one.
	MergeDuplicates bool `koanf:"merge_duplicates"`

	// ChartWidth and ChartHeight size rendered PNG charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// MaxTableRows caps the rows returned in a view table; 0 = unlimited.
	MaxTableRows int `koanf:"max_table_rows"`

	// WarmOnStart loads the dataset when the service starts instead of on first request.
	WarmOnStart bool `koanf:"warm_on_start"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		SourceURL:      DefaultSourceURL,
		FetchTimeoutMS: 120_000,
		DefaultYearMin: 1900,
		DefaultYearMax: 2000,
		ChartWidth:     1200,
		ChartHeight:    640,
		MaxTableRows:   0,
		WarmOnStart:    false,
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SourceURL == "":
		return fmt.Errorf("%w: source_url must not be empty", ErrInvalidConfig)
	case c.DefaultYearMin > c.DefaultYearMax:
		return fmt.Errorf("%w: default_year_min %d is after default_year_max %d", ErrInvalidConfig, c.DefaultYearMin, c.DefaultYearMax)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart dimensions must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS < 0:
		return fmt.Errorf("%w: fetch_timeout_ms must not be negative", ErrInvalidConfig)
	case c.MaxTableRows < 0:
		return fmt.Errorf("%w: max_table_rows must not be negative", ErrInvalidConfig)
	}
	return nil
}
