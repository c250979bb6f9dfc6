// Package chart draws view charts as PNG images with go-chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/babynames/internal/domain/view"
)

// ErrUnknownKind is returned for a chart kind this package cannot draw.
var ErrUnknownKind = errors.New("unknown chart kind")

// Minimum canvas size accepted by the renderers.
const (
	MinWidth  = 200
	MinHeight = 150
)

// maxYearLabels bounds how many year labels the bar chart prints.
const maxYearLabels = 20

var padding = gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}}

// LinePNG draws the proportion chart of v.
func LinePNG(v view.View, width, height int) ([]byte, error) {
	return PNG(v.Proportion, width, height)
}

// BarPNG draws the count chart of v.
func BarPNG(v view.View, width, height int) ([]byte, error) {
	return PNG(v.Counts, width, height)
}

// PNG draws c according to its kind.
func PNG(c view.Chart, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, c, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders c as PNG into w. A chart without points renders a titled
// placeholder instead of failing.
func Write(w io.Writer, c view.Chart, width, height int) error {
	width, height = clampSize(width, height)
	if c.Empty() {
		return placeholder(c, width, height).Render(gochart.PNG, w)
	}
	switch c.Kind {
	case view.KindLine:
		return line(c, width, height).Render(gochart.PNG, w)
	case view.KindBar:
		return bar(c, width, height).Render(gochart.PNG, w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
}

func clampSize(width, height int) (int, int) {
	return max(width, MinWidth), max(height, MinHeight)
}

func line(c view.Chart, width, height int) gochart.Chart {
	series := make([]gochart.Series, 0, len(c.Series))
	maxY := 0.0
	for _, s := range c.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = float64(p.Year)
			ys[i] = p.Value
			maxY = max(maxY, p.Value)
		}
		col := drawing.ColorFromHex(trimHash(s.Color))
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}

	ch := gochart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: padding,
		XAxis:      yearAxis(c),
		YAxis: gochart.YAxis{
			Name:  c.YAxis,
			Range: &gochart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

// bar places one bar per year and sex, sexes side by side within a year.
func bar(c view.Chart, width, height int) gochart.BarChart {
	type cell struct {
		value float64
		color drawing.Color
	}
	years := make([]int, 0)
	byYear := make(map[int][]cell)
	maxY := 0.0
	for _, s := range c.Series {
		col := drawing.ColorFromHex(trimHash(s.Color))
		for _, p := range s.Points {
			if _, ok := byYear[p.Year]; !ok {
				years = append(years, p.Year)
			}
			byYear[p.Year] = append(byYear[p.Year], cell{value: p.Value, color: col})
			maxY = max(maxY, p.Value)
		}
	}
	sort.Ints(years)

	step := (len(years) + maxYearLabels - 1) / maxYearLabels
	bars := make([]gochart.Value, 0, 2*len(years))
	for i, y := range years {
		for j, cl := range byYear[y] {
			label := ""
			if j == 0 && i%step == 0 {
				label = strconv.Itoa(y)
			}
			bars = append(bars, gochart.Value{
				Label: label,
				Value: cl.value,
				Style: gochart.Style{FillColor: cl.color, StrokeColor: cl.color},
			})
		}
	}

	return gochart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: padding,
		BarWidth:   max(2, (width-80)/max(1, len(bars))-1),
		BarSpacing: 1,
		YAxis: gochart.YAxis{
			Name:  c.YAxis,
			Range: &gochart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Bars: bars,
	}
}

// placeholder is an axis-only chart titled with the view message.
func placeholder(c view.Chart, width, height int) gochart.Chart {
	lo, hi := yearBounds(c)
	return gochart.Chart{
		Title:      "No data to display",
		Width:      width,
		Height:     height,
		Background: padding,
		XAxis:      yearAxis(c),
		YAxis:      gochart.YAxis{Name: c.YAxis, Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		Series: []gochart.Series{gochart.ContinuousSeries{
			XValues: []float64{lo, hi},
			YValues: []float64{0, 0},
			Style:   gochart.Style{StrokeColor: drawing.ColorTransparent},
		}},
	}
}

// yearBounds is the filter range, widened when it is a single year.
func yearBounds(c view.Chart) (lo, hi float64) {
	lo, hi = float64(c.XMin), float64(c.XMax)
	if hi <= lo {
		lo, hi = lo-1, lo+1
	}
	return lo, hi
}

func yearAxis(c view.Chart) gochart.XAxis {
	lo, hi := yearBounds(c)
	return gochart.XAxis{
		Name:  c.XAxis,
		Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: func(v any) string {
			if f, ok := v.(float64); ok {
				return strconv.Itoa(int(f))
			}
			return ""
		},
	}
}

func headroom(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
