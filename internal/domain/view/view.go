// Package view turns the enriched table and a filter set into render-ready output.
//
// Render is pure: it never fails and never touches I/O. A filter that matches
// nothing yields an empty View carrying an informational message.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/babynames/internal/domain/model"
)

// Chart kinds.
const (
	KindLine = "line"
	KindBar  = "bar"
)

// Series colours per sex, as hex.
var sexColors = map[model.Sex]string{
	model.Female: "#d62728",
	model.Male:   "#1f77b4",
}

// Point is one value of a series on the year axis.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is the data of one sex on a chart.
type Series struct {
	Sex    model.Sex `json:"sex"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Points []Point   `json:"data"`
}

// Chart describes a chart independently of how it is drawn.
type Chart struct {
	Kind   string   `json:"chartType"`
	Title  string   `json:"title"`
	XAxis  string   `json:"xAxis"`
	YAxis  string   `json:"yAxis"`
	XMin   int      `json:"xMin"`
	XMax   int      `json:"xMax"`
	Series []Series `json:"series"`
}

// Empty reports whether no series has a point.
func (c Chart) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// TableRow is one line of the summary table.
type TableRow struct {
	Year  int       `json:"year"`
	Sex   model.Sex `json:"sex"`
	Count int       `json:"count"`
	Prop  float64   `json:"prop"`
}

// Table is the tabular listing of the filtered rows.
type Table struct {
	Columns   []string   `json:"columns"`
	Rows      []TableRow `json:"rows"`
	Total     int        `json:"total"`
	Truncated bool       `json:"truncated"`
}

// View is everything the presentation layer shows for one filter set.
type View struct {
	Filters         Filters     `json:"filters"`
	Rows            []model.Row `json:"-"`
	MostPopularYear int         `json:"most_popular_year,omitempty"`
	Summary         string      `json:"summary"`
	Proportion      Chart       `json:"proportion"`
	Counts          Chart       `json:"counts"`
	Table           Table       `json:"table"`
	Empty           bool        `json:"empty"`
	Message         string      `json:"message,omitempty"`
}

// Messages shown for empty results.
const (
	MessageNoName = "Enter a name to explore its popularity over time."
	MessageNoData = "No data available for the selected filters."
)

// Option tunes Render.
type Option func(*options)

type options struct {
	maxTableRows int
}

// WithMaxTableRows caps the table listing; zero or less means unlimited.
func WithMaxTableRows(n int) Option {
	return func(o *options) {
		o.maxTableRows = n
	}
}

// Render filters rows and builds every output surface.
func Render(rows []model.Row, f Filters, opts ...Option) View {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	subset := Filter(rows, f)
	label := strings.TrimSpace(f.Name)
	v := View{
		Filters:    f,
		Rows:       subset,
		Proportion: proportionChart(label, f, subset),
		Counts:     countChart(label, f, subset),
		Table:      buildTable(subset, o.maxTableRows),
	}

	if len(subset) == 0 {
		v.Empty = true
		v.Message = MessageNoData
		if label == "" {
			v.Message = MessageNoName
		}
		return v
	}

	v.MostPopularYear = MostPopularYear(subset)
	v.Summary = fmt.Sprintf("The name '%s' was most popular in %d.", label, v.MostPopularYear)
	return v
}

// MostPopularYear returns the year of the row with the largest count.
// The earliest row wins a tie. Zero for no rows.
func MostPopularYear(rows []model.Row) int {
	best := -1
	for i, r := range rows {
		if best < 0 || r.Count > rows[best].Count {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return rows[best].Year
}

func proportionChart(name string, f Filters, rows []model.Row) Chart {
	return Chart{
		Kind:   KindLine,
		Title:  fmt.Sprintf("Popularity of %q Over Time", name),
		XAxis:  "Year",
		YAxis:  "Proportion",
		XMin:   f.YearMin,
		XMax:   f.YearMax,
		Series: seriesBySex(f, rows, func(r model.Row) float64 { return r.Proportion }),
	}
}

func countChart(name string, f Filters, rows []model.Row) Chart {
	return Chart{
		Kind:   KindBar,
		Title:  fmt.Sprintf("Gender Distribution for %q", name),
		XAxis:  "Year",
		YAxis:  "Count",
		XMin:   f.YearMin,
		XMax:   f.YearMax,
		Series: seriesBySex(f, rows, func(r model.Row) float64 { return float64(r.Count) }),
	}
}

// seriesBySex sums value per year for each enabled sex that has rows.
// Summing folds additive duplicates into one point per year.
func seriesBySex(f Filters, rows []model.Row, value func(model.Row) float64) []Series {
	out := make([]Series, 0, len(model.Sexes))
	for _, sex := range model.Sexes {
		if !f.Includes(sex) {
			continue
		}
		byYear := make(map[int]float64)
		for _, r := range rows {
			if r.Sex == sex {
				byYear[r.Year] += value(r)
			}
		}
		if len(byYear) == 0 {
			continue
		}
		points := make([]Point, 0, len(byYear))
		for year, v := range byYear {
			points = append(points, Point{Year: year, Value: v})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		out = append(out, Series{Sex: sex, Name: sex.Label(), Color: sexColors[sex], Points: points})
	}
	return out
}

func buildTable(rows []model.Row, limit int) Table {
	t := Table{
		Columns: []string{"year", "sex", "count", "prop"},
		Rows:    make([]TableRow, 0, len(rows)),
		Total:   len(rows),
	}
	for _, r := range rows {
		if limit > 0 && len(t.Rows) >= limit {
			t.Truncated = true
			break
		}
		t.Rows = append(t.Rows, TableRow{Year: r.Year, Sex: r.Sex, Count: r.Count, Prop: r.Proportion})
	}
	return t
}
