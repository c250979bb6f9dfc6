// Package aggregate derives per-(year, sex) proportions from the unified table.
package aggregate

import (
	"sort"

	"github.com/okian/babynames/internal/domain/model"
)

// GroupTotals sums count per (year, sex) group.
func GroupTotals(records []model.Record) map[model.GroupKey]int {
	totals := make(map[model.GroupKey]int)
	for _, r := range records {
		totals[r.Key()] += r.Count
	}
	return totals
}

// Proportions appends a proportion column to every record. Input order is kept.
// Rows of a group whose total is zero get proportion 0.
func Proportions(records []model.Record) []model.Row {
	totals := GroupTotals(records)
	rows := make([]model.Row, len(records))
	for i, r := range records {
		rows[i] = model.Row{Record: r}
		if total := totals[r.Key()]; total > 0 {
			rows[i].Proportion = float64(r.Count) / float64(total)
		}
	}
	return rows
}

// Span returns the smallest and largest year in rows. ok is false for an empty table.
func Span(rows []model.Row) (minYear, maxYear int, ok bool) {
	for i, r := range rows {
		if i == 0 {
			minYear, maxYear = r.Year, r.Year
			continue
		}
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return minYear, maxYear, len(rows) > 0
}

// Shape summarises a table for stats and metrics.
type Shape struct {
	Records int `json:"records"`
	Years   int `json:"years"`
	Groups  int `json:"groups"`
}

// Describe counts records, distinct years and distinct groups.
func Describe(rows []model.Row) Shape {
	years := make(map[int]struct{})
	groups := make(map[model.GroupKey]struct{})
	for _, r := range rows {
		years[r.Year] = struct{}{}
		groups[r.Key()] = struct{}{}
	}
	return Shape{Records: len(rows), Years: len(years), Groups: len(groups)}
}

// Years returns the distinct years in ascending order.
func Years(rows []model.Row) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, r := range rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Ints(out)
	return out
}
