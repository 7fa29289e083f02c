// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart geometry in pixels and points.
const (
	chartWidth      = 560
	chartHeight     = 300
	facetChartWidth = 420
	scatterDotWidth = 2.5
	seriesLineWidth = 2
	axisFontSize    = 8
	titleFontSize   = 11
)

// Palette shared with the page stylesheet.
var (
	colorPanel   = drawing.ColorFromHex("111723")
	colorText    = drawing.ColorFromHex("e6eef9")
	colorMuted   = drawing.ColorFromHex("9db1c9")
	colorGrid    = drawing.ColorFromHex("1f2a3a")
	colorAccent  = drawing.ColorFromHex("FF7A00")
	colorPrimary = drawing.ColorFromHex("0A84FF")
)

// yearColors fixes the color encoding of each reference year across panels.
var yearColors = map[int]drawing.Color{
	2019: colorAccent,
	2023: colorPrimary,
}

// stationPalette colors the per-station series of the ranking chart.
var stationPalette = []drawing.Color{
	drawing.ColorFromHex("0A84FF"), drawing.ColorFromHex("FF7A00"), drawing.ColorFromHex("17B26A"),
	drawing.ColorFromHex("EF476F"), drawing.ColorFromHex("FFD166"), drawing.ColorFromHex("8E7CC3"),
	drawing.ColorFromHex("06D6A0"), drawing.ColorFromHex("F78C6B"), drawing.ColorFromHex("4CC9F0"),
	drawing.ColorFromHex("B5179E"), drawing.ColorFromHex("90BE6D"), drawing.ColorFromHex("F94144"),
	drawing.ColorFromHex("577590"), drawing.ColorFromHex("F3722C"), drawing.ColorFromHex("43AA8B"),
	drawing.ColorFromHex("F9C74F"), drawing.ColorFromHex("277DA1"), drawing.ColorFromHex("C77DFF"),
	drawing.ColorFromHex("80ED99"), drawing.ColorFromHex("E5989B"),
}

// YearColor returns the series color for year.
func YearColor(year int) drawing.Color {
	if c, ok := yearColors[year]; ok {
		return c
	}
	return colorMuted
}

func stationColor(i int) drawing.Color {
	return stationPalette[i%len(stationPalette)]
}

// ChartSVG is one rendered chart. Label names the facet, if any.
type ChartSVG struct {
	Label string
	SVG   template.HTML
}

// lineSeries is one named line of a line chart.
type lineSeries struct {
	Name  string
	Color drawing.Color
	X     []float64
	Y     []float64
}

// timeLine is one named line over timestamps.
type timeLine struct {
	Name  string
	Color drawing.Color
	X     []time.Time
	Y     []float64
}

// bar is one labelled bar of a bar chart.
type bar struct {
	Label string
	Value float64
}

// scatterSeries is one colored group of points.
type scatterSeries struct {
	Name  string
	Color drawing.Color
	X     []float64
	Y     []float64
}

func axisStyle() chart.Style {
	return chart.Style{
		FontColor:   colorMuted,
		StrokeColor: colorMuted,
		FontSize:    axisFontSize,
	}
}

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: colorGrid, StrokeWidth: 1}
}

func backgroundStyle() chart.Style {
	return chart.Style{
		FillColor: colorPanel,
		Padding:   chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12},
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: seriesLineWidth,
		DotColor:    col,
		DotWidth:    2,
	}
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    scatterDotWidth,
		DotColor:    col,
	}
}

func legendStyle() chart.Style {
	return chart.Style{
		FillColor:   colorPanel,
		FontColor:   colorText,
		StrokeColor: colorGrid,
		FontSize:    axisFontSize,
	}
}

// renderSVG renders r into an SVG fragment safe for direct embedding.
func renderSVG(r interface {
	Render(chart.RendererProvider, io.Writer) error
}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	// go-chart emits text nodes verbatim; labels are sanitized before render.
	return template.HTML(buf.String()), nil //nolint:gosec // generated SVG with sanitized labels
}

// chartLabel removes markup-significant characters from a label that ends up
// inside an SVG text node.
func chartLabel(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&', '"', '\'':
			return -1
		}
		return r
	}, s)
}

// valueRange returns a 0-based range covering values with headroom.
func valueRange(values ...[]float64) *chart.ContinuousRange {
	maxV := 0.0
	for _, vs := range values {
		for _, v := range vs {
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: maxV * 1.1}
}

// spanRange returns a range covering values, widened by pad when all values
// are equal so the axis never collapses to a point.
func spanRange(pad float64, values ...[]float64) *chart.ContinuousRange {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}
	if math.IsInf(minV, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if minV == maxV {
		minV -= pad
		maxV += pad
	}
	return &chart.ContinuousRange{Min: minV, Max: maxV}
}

// compactNumber formats axis values as 950, 12.5K or 3.1M.
func compactNumber(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	abs := math.Abs(f)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(f/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(f/1e3, 'f', 1, 64) + "K"
	case abs == math.Trunc(abs):
		return strconv.FormatFloat(f, 'f', 0, 64)
	default:
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
}

// timeFormatFor picks a tick layout matching the bucket width.
func timeFormatFor(step time.Duration) string {
	switch {
	case step < 24*time.Hour:
		return "Jan 2 15h"
	case step < 28*24*time.Hour:
		return "Jan 2 2006"
	default:
		return "Jan 2006"
	}
}

// renderTimeLines draws one line per series over a shared time axis. A series
// with a single point is padded to a flat two-point line.
func renderTimeLines(lines []timeLine, yName string, step time.Duration) (template.HTML, error) {
	series := make([]chart.Series, 0, len(lines))
	var xs, ys [][]float64
	for _, l := range lines {
		if len(l.X) == 0 {
			continue
		}
		x, y := l.X, l.Y
		if len(x) == 1 {
			x = []time.Time{x[0], x[0].Add(step)}
			y = []float64{y[0], y[0]}
		}
		fx := make([]float64, len(x))
		for i, t := range x {
			fx[i] = chart.TimeToFloat64(t)
		}
		xs = append(xs, fx)
		ys = append(ys, y)
		series = append(series, chart.TimeSeries{
			Name:    chartLabel(l.Name),
			XValues: x,
			YValues: y,
			Style:   lineStyle(l.Color),
		})
	}
	if len(series) == 0 {
		return "", errNoSeries
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: backgroundStyle(),
		Canvas:     chart.Style{FillColor: colorPanel},
		XAxis: chart.XAxis{
			Style:          axisStyle(),
			Range:          spanRange(float64(step), xs...),
			ValueFormatter: chart.TimeValueFormatterWithFormat(timeFormatFor(step)),
		},
		YAxis: chart.YAxis{
			Name:           yName,
			NameStyle:      axisStyle(),
			Style:          axisStyle(),
			Range:          valueRange(ys...),
			ValueFormatter: compactNumber,
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, legendStyle())}
	return renderSVG(ch)
}

// renderLines draws one line per series over a continuous x axis with the
// given ticks.
func renderLines(lines []lineSeries, yName string, ticks []chart.Tick, yRange *chart.ContinuousRange) (template.HTML, error) {
	series := make([]chart.Series, 0, len(lines))
	var xs [][]float64
	for _, l := range lines {
		if len(l.X) == 0 {
			continue
		}
		x, y := l.X, l.Y
		if len(x) == 1 {
			x = []float64{x[0], x[0] + 1}
			y = []float64{y[0], y[0]}
		}
		xs = append(xs, x)
		series = append(series, chart.ContinuousSeries{
			Name:    chartLabel(l.Name),
			XValues: x,
			YValues: y,
			Style:   lineStyle(l.Color),
		})
	}
	if len(series) == 0 {
		return "", errNoSeries
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: backgroundStyle(),
		Canvas:     chart.Style{FillColor: colorPanel},
		XAxis: chart.XAxis{
			Style: axisStyle(),
			Range: spanRange(1, xs...),
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           yName,
			NameStyle:      axisStyle(),
			Style:          axisStyle(),
			Range:          yRange,
			ValueFormatter: compactNumber,
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, legendStyle())}
	return renderSVG(ch)
}

// renderBars draws a single-series bar chart in one color.
func renderBars(title string, bars []bar, col drawing.Color, yRange *chart.ContinuousRange) (template.HTML, error) {
	if len(bars) == 0 {
		return "", errNoSeries
	}
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		values[i] = chart.Value{
			Label: chartLabel(b.Label),
			Value: b.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}

	barWidth := (facetChartWidth-80)/len(bars) - 4
	if barWidth < 4 {
		barWidth = 4
	}
	if barWidth > 48 {
		barWidth = 48
	}

	bc := chart.BarChart{
		Title:      chartLabel(title),
		TitleStyle: chart.Style{FontColor: colorText, FontSize: titleFontSize},
		Width:      facetChartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: 4,
		Background: backgroundStyle(),
		Canvas:     chart.Style{FillColor: colorPanel},
		XAxis:      axisStyle(),
		YAxis: chart.YAxis{
			Style:          axisStyle(),
			Range:          yRange,
			ValueFormatter: compactNumber,
		},
		Bars: values,
	}
	return renderSVG(bc)
}

// renderScatter draws points only, one color per group.
func renderScatter(groups []scatterSeries, xName, yName string) (template.HTML, error) {
	series := make([]chart.Series, 0, len(groups))
	var xs, ys [][]float64
	for _, g := range groups {
		if len(g.X) == 0 {
			continue
		}
		xs = append(xs, g.X)
		ys = append(ys, g.Y)
		series = append(series, chart.ContinuousSeries{
			Name:    chartLabel(g.Name),
			XValues: g.X,
			YValues: g.Y,
			Style:   pointStyle(g.Color),
		})
	}
	if len(series) == 0 {
		return "", errNoSeries
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: backgroundStyle(),
		Canvas:     chart.Style{FillColor: colorPanel},
		XAxis: chart.XAxis{
			Name:           xName,
			NameStyle:      axisStyle(),
			Style:          axisStyle(),
			Range:          spanRange(0.01, xs...),
			ValueFormatter: compactNumber,
		},
		YAxis: chart.YAxis{
			Name:           yName,
			NameStyle:      axisStyle(),
			Style:          axisStyle(),
			Range:          spanRange(0.01, ys...),
			ValueFormatter: compactNumber,
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch, legendStyle())}
	}
	return renderSVG(ch)
}

// hourTicks labels every third hour of the day.
func hourTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 8)
	for h := 0; h < 24; h += 3 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%02d", h)})
	}
	return ticks
}
