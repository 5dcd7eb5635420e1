package main

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/PriceChartViewer/cmd/pricechart/uihelpers"
	"github.com/iafilius/PriceChartViewer/src/logging"
	"github.com/iafilius/PriceChartViewer/src/view"
)

const (
	timeLabelFormat   = "2006-01-02 15:04"
	defaultChartWidth = 1500
	maxTimeTicks      = 24
	priceTickTarget   = 8
	// single-timestamp windows are drawn this far either side of the point
	singlePointPad = 30 * time.Second
)

// 70% opacity series colors, 30% opacity grid.
var (
	realColor      = drawing.Color{R: 0, G: 0, B: 255, A: 179}
	generatedColor = drawing.Color{R: 255, G: 0, B: 0, A: 179}
	gridColor      = drawing.Color{R: 128, G: 128, B: 128, A: 77}
)

// lineStyle returns a style that renders a connected line; lone points also get a dot.
func lineStyle(col drawing.Color, n int) chart.Style {
	st := chart.Style{StrokeColor: col, StrokeWidth: 1.5}
	if n == 1 {
		st.DotColor = col
		st.DotWidth = 4
	}
	return st
}

// chartSize computes the chart size from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(defaultChartWidth)
	}
	sz := state.window.Canvas().Size()
	if sz.Width < 1 {
		return uihelpers.ComputeChartDimensions(defaultChartWidth)
	}
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.98) - 8)
}

// renderChart draws the current window of state.data with the statistics box on top.
func renderChart(state *uiState) image.Image {
	cw, chh := chartSize(state)
	if state == nil || state.data.Len() == 0 {
		var lines []string
		if state != nil {
			lines = state.statsLines
		}
		return drawStatsBox(blank(cw, chh), lines)
	}
	win, err := state.view.For(state.data)
	if err != nil {
		logging.Warnf("[viewer] window for n=%d: %v; showing blank fallback", state.view.NPoints, err)
		return drawStatsBox(blank(cw, chh), state.statsLines)
	}
	ch := buildChart(win, cw, chh)

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		logging.Warnf("[viewer] chart render error: %v; showing blank fallback", err)
		return drawStatsBox(blank(cw, chh), state.statsLines)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("[viewer] chart decode error: %v; showing blank fallback", err)
		return drawStatsBox(blank(cw, chh), state.statsLines)
	}
	return drawStatsBox(img, state.statsLines)
}

// buildChart lays out the two price series over the window limits.
func buildChart(win view.Window, width, height int) chart.Chart {
	n := win.Len()
	series := []chart.Series{
		chart.TimeSeries{Name: "Real Price", XValues: win.Timestamps, YValues: win.Real, Style: lineStyle(realColor, n)},
		chart.TimeSeries{Name: "Generated Price", XValues: win.Timestamps, YValues: win.Generated, Style: lineStyle(generatedColor, n)},
	}
	gridStyle := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	ch := chart.Chart{
		Title:      "BTC Price Comparison",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 24, Right: 24, Bottom: 190}},
		XAxis:      buildTimeAxis(win.XMin, win.XMax),
		YAxis: chart.YAxis{
			Name:           "Price (USDT)",
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: series,
	}
	ch.XAxis.GridMajorStyle = gridStyle
	ch.XAxis.GridMinorStyle = gridStyle
	ymin, ymax := renderYBounds(win.YMin, win.YMax)
	ch.YAxis.Range = &chart.ContinuousRange{Min: ymin, Max: ymax}
	ch.YAxis.Ticks = priceTicks(ymin, ymax)
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// renderXBounds orders the window's time limits and widens a zero-length span.
func renderXBounds(minT, maxT time.Time) (time.Time, time.Time) {
	if maxT.Before(minT) {
		minT, maxT = maxT, minT
	}
	if !maxT.After(minT) {
		minT = minT.Add(-singlePointPad)
		maxT = maxT.Add(singlePointPad)
	}
	return minT, maxT
}

// renderYBounds orders the price limits and widens a zero-height span.
func renderYBounds(ymin, ymax float64) (float64, float64) {
	if ymax < ymin {
		ymin, ymax = ymax, ymin
	}
	if ymax <= ymin {
		pad := ymin * 0.001
		if pad < 0 {
			pad = -pad
		}
		if pad == 0 {
			pad = 1
		}
		ymin -= pad
		ymax += pad
	}
	return ymin, ymax
}

// buildTimeAxis builds the x axis with step-aligned, rotated date labels.
func buildTimeAxis(minT, maxT time.Time) chart.XAxis {
	minT, maxT = renderXBounds(minT, maxT)
	step := uihelpers.PickTimeStep(maxT.Sub(minT))
	at := uihelpers.TimeTicks(minT, maxT, step, maxTimeTicks)
	if len(at) < 2 {
		at = []time.Time{minT, maxT}
	}
	ticks := make([]chart.Tick, 0, len(at))
	for _, t := range at {
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(t), Label: t.Local().Format(timeLabelFormat)})
	}
	return chart.XAxis{
		Name:           "Time",
		Style:          chart.Style{TextRotationDegrees: 45},
		ValueFormatter: chart.TimeValueFormatterWithFormat(timeLabelFormat),
		Ticks:          ticks,
		Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(minT), Max: chart.TimeToFloat64(maxT)},
	}
}

// priceTicks returns labelled ticks inside [ymin, ymax].
func priceTicks(ymin, ymax float64) []chart.Tick {
	vals := uihelpers.TicksWithin(uihelpers.BuildNumericTicks(ymin, ymax, priceTickTarget), ymin, ymax)
	if len(vals) < 2 {
		vals = []float64{ymin, ymax}
	}
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
	}
	return ticks
}

// drawStatsBox draws the statistics block near the bottom-left over a translucent white box.
func drawStatsBox(img image.Image, lines []string) image.Image {
	if img == nil || len(lines) == 0 {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil() + 2
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.Black), Face: face}
	tw := 0
	for _, l := range lines {
		if w := dr.MeasureString(l).Ceil(); w > tw {
			tw = w
		}
	}
	pad := 6
	boxW := tw + 2*pad
	boxH := len(lines)*lineH + 2*pad
	x0 := b.Min.X + b.Dx()*2/100
	y1 := b.Max.Y - b.Dy()*2/100
	rect := image.Rect(x0, y1-boxH, x0+boxW, y1)
	draw.Draw(rgba, rect, image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 204}), image.Point{}, draw.Over)
	strokeRect(rgba, rect, color.NRGBA{R: 0, G: 0, B: 0, A: 160})

	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		y := rect.Min.Y + pad + ascent + i*lineH
		dr.Dot = fixed.Point26_6{X: fixed.I(x0 + pad), Y: fixed.I(y)}
		dr.DrawString(l)
	}
	return rgba
}

func strokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
