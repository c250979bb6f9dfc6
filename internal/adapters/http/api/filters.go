package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/babynames/internal/domain/model"
	"github.com/okian/babynames/internal/domain/view"
)

// parseFilters reads name, from, to and sex from q on top of defaults.
// sex is a comma separated list of F/M; "none" disables both.
func parseFilters(q url.Values, defaults view.Filters) (view.Filters, error) {
	f := defaults
	f.Name = strings.TrimSpace(q.Get("name"))

	var err error
	if f.YearMin, err = intParam(q, "from", f.YearMin); err != nil {
		return f, err
	}
	if f.YearMax, err = intParam(q, "to", f.YearMax); err != nil {
		return f, err
	}

	if raw, ok := q["sex"]; ok {
		f.Female, f.Male = false, false
		for _, part := range strings.Split(strings.Join(raw, ","), ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.EqualFold(part, "none") {
				continue
			}
			sex, err := model.ParseSex(part)
			if err != nil {
				return f, fmt.Errorf("%w: sex: %w", ErrBadRequest, err)
			}
			switch sex {
			case model.Female:
				f.Female = true
			case model.Male:
				f.Male = true
			}
		}
	}

	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return f, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer year", ErrBadRequest, key)
	}
	return n, nil
}
