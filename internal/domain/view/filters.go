package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/babynames/internal/domain/model"
)

// ErrInvalidFilters marks a filter set that cannot be applied.
var ErrInvalidFilters = errors.New("invalid filters")

// Default year range preselected by the explorer.
const (
	DefaultYearMin = 1900
	DefaultYearMax = 2000
)

// Filters selects the subset of the table a view is built from.
type Filters struct {
	// Name is matched case-insensitively and exactly against the record name.
	Name string `json:"name"`
	// YearMin and YearMax bound the year range, both inclusive.
	YearMin int  `json:"year_min"`
	YearMax int  `json:"year_max"`
	Female  bool `json:"female"`
	Male    bool `json:"male"`
}

// DefaultFilters returns both sexes over the default year range with no name.
func DefaultFilters() Filters {
	return Filters{YearMin: DefaultYearMin, YearMax: DefaultYearMax, Female: true, Male: true}
}

// Validate rejects an inverted year range.
func (f Filters) Validate() error {
	if f.YearMin > f.YearMax {
		return fmt.Errorf("%w: year range %d-%d is inverted", ErrInvalidFilters, f.YearMin, f.YearMax)
	}
	return nil
}

// Includes reports whether rows of sex s pass the sex toggles.
func (f Filters) Includes(s model.Sex) bool {
	switch s {
	case model.Female:
		return f.Female
	case model.Male:
		return f.Male
	}
	return false
}

// Match reports whether r passes every filter.
func (f Filters) Match(r model.Row) bool {
	return r.Year >= f.YearMin && r.Year <= f.YearMax &&
		f.Includes(r.Sex) &&
		strings.EqualFold(r.Name, strings.TrimSpace(f.Name))
}

// Filter returns the rows matching f in table order. The input is not modified.
func Filter(rows []model.Row, f Filters) []model.Row {
	out := make([]model.Row, 0)
	if strings.TrimSpace(f.Name) == "" {
		return out
	}
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
