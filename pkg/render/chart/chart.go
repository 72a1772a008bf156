// Package chart draws download rows as a terminal line chart.
//
// Each label becomes one line. Dates run along the x-axis in ascending
// order; the caption names the first and last date.
package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/matzehuels/pepystats/pkg/downloads"
)

const (
	// MinWidth and MinHeight bound the plot area.
	MinWidth  = 10
	MinHeight = 5

	// axisWidth is the room asciigraph takes for y-axis labels.
	axisWidth = 12
)

var palette = []asciigraph.AnsiColor{
	asciigraph.DodgerBlue,
	asciigraph.Orange,
	asciigraph.LimeGreen,
	asciigraph.Red,
	asciigraph.MediumPurple,
	asciigraph.Gold,
	asciigraph.Turquoise,
	asciigraph.HotPink,
}

// Options configures a chart.
type Options struct {
	Title  string // prefixed to the caption
	Width  int    // total columns available; 0 lets the data decide
	Height int    // plot rows; MinHeight when smaller
	Color  bool   // color each series
}

// Render draws rows. It returns "" when rows is empty.
func Render(rows downloads.Rows, opts Options) string {
	m := downloads.Pivot(rows)
	if m.Empty() {
		return ""
	}

	series := make([][]float64, len(m.Labels))
	for j, label := range m.Labels {
		col := m.Series(label)
		s := make([]float64, len(col))
		for i, v := range col {
			s[i] = float64(v)
		}
		if len(s) == 1 {
			s = append(s, s[0])
		}
		series[j] = s
	}

	height := opts.Height
	if height < MinHeight {
		height = MinHeight
	}
	graphOpts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(Caption(opts.Title, m)),
		asciigraph.SeriesLegends(m.Labels...),
		asciigraph.SeriesColors(colors(len(m.Labels), opts.Color)...),
	}
	if opts.Width > 0 {
		w := opts.Width - axisWidth
		if w < MinWidth {
			w = MinWidth
		}
		graphOpts = append(graphOpts, asciigraph.Width(w))
	}
	return asciigraph.PlotMany(series, graphOpts...)
}

// Caption describes the date span of m.
func Caption(title string, m *downloads.Matrix) string {
	if len(m.Dates) == 0 {
		return title
	}
	span := fmt.Sprintf("%s to %s", downloads.FormatDate(m.Dates[0]), downloads.FormatDate(m.Dates[len(m.Dates)-1]))
	if title == "" {
		return span
	}
	return fmt.Sprintf("%s downloads, %s", title, span)
}

// colors returns one color per series. Legends index into it, so it is
// filled with asciigraph.Default when color is off.
func colors(n int, color bool) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	if !color {
		for i := range out {
			out[i] = asciigraph.Default
		}
		return out
	}
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
