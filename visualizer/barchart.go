// Package visualizer draws grouped aggregations as bar charts.
package visualizer

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tedit/datatable"
	"tedit/store"
)

// BarColor is the fill used for every bar.
const BarColor = "4CAF50"

// Options sizes the rendered chart in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns an 800x500 chart.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 500}
}

func barStyle(col drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 1,
	}
}

// RenderBarChart writes a PNG bar chart of groups to w. Category labels are
// the string form of each key; bar heights are the sums, drawn from zero.
func RenderBarChart(w io.Writer, groups []store.Group, xCol, yCol string, opts Options) error {
	if len(groups) == 0 {
		return fmt.Errorf("%w: nothing to plot for %s by %s", datatable.ErrEmptyData, yCol, xCol)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	st := barStyle(drawing.ColorFromHex(BarColor))
	bars := make([]chart.Value, len(groups))
	lo, hi := 0.0, 0.0
	for i, g := range groups {
		v, _ := g.Sum.Number()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		bars[i] = chart.Value{Label: g.Key.String(), Value: v, Style: st}
	}
	// go-chart refuses a zero-height range.
	if hi == lo {
		hi = lo + 1
	}

	barWidth := (opts.Width - 120) / (2 * len(groups))
	barWidth = max(4, min(barWidth, 60))

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s by %s", yCol, xCol),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  yCol,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering %s by %s: %w", yCol, xCol, err)
	}
	return nil
}

// RenderPNG renders the chart into memory.
func RenderPNG(groups []store.Group, xCol, yCol string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderBarChart(&buf, groups, xCol, yCol, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
