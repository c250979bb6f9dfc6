package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds; match them with errors.Is.
var (
	// ErrInvalidConfig reports a value that failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig reports a file or environment layer that could not be read.
	ErrLoadConfig = errors.New("load config failed")
	// ErrDecodeConfig reports layered values that do not fit Config, e.g. a
	// non-numeric BABYNAMES_CHART_WIDTH. It also matches ErrLoadConfig.
	ErrDecodeConfig = fmt.Errorf("%w: decode", ErrLoadConfig)
)
