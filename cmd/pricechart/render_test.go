package main

import (
	"image"
	"math"
	"strings"
	"testing"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/PriceChartViewer/src/series"
	"github.com/iafilius/PriceChartViewer/src/view"
)

const threeSamples = "100,101,1000\n200,202,2000\n300,303,3000\n"

// headlessState builds a uiState without any window or widgets.
func headlessState(t *testing.T, content string) *uiState {
	t.Helper()
	data, err := series.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return newUIState(nil, nil, defaultViewerConfig(), data)
}

func TestBuildChart_SinglePointWindow(t *testing.T) {
	st := headlessState(t, threeSamples)
	win, err := view.Compute(st.data, 1)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	ch := buildChart(win, 1500, 800)

	xr, ok := ch.XAxis.Range.(*chart.ContinuousRange)
	if !ok {
		t.Fatalf("expected ContinuousRange x range, got %T", ch.XAxis.Range)
	}
	at := chart.TimeToFloat64(time.Unix(3000, 0))
	if !(xr.Min < at && at < xr.Max) {
		t.Fatalf("x range [%v,%v] should surround the single sample %v", xr.Min, xr.Max, at)
	}
	if math.Abs((at-xr.Min)-(xr.Max-at)) > 1 {
		t.Fatalf("single sample should be centered: [%v,%v] around %v", xr.Min, xr.Max, at)
	}
	yr, ok := ch.YAxis.Range.(*chart.ContinuousRange)
	if !ok {
		t.Fatalf("expected ContinuousRange y range, got %T", ch.YAxis.Range)
	}
	if math.Abs(yr.Min-300*0.999) > 1e-9 || math.Abs(yr.Max-303*1.001) > 1e-9 {
		t.Fatalf("y range [%v,%v] want [%v,%v]", yr.Min, yr.Max, 300*0.999, 303*1.001)
	}
	for _, tk := range ch.YAxis.Ticks {
		if tk.Value < yr.Min || tk.Value > yr.Max {
			t.Fatalf("y tick %v outside range [%v,%v]", tk.Value, yr.Min, yr.Max)
		}
	}
}

func TestBuildChart_SeriesAndLabels(t *testing.T) {
	st := headlessState(t, threeSamples)
	win, err := st.view.For(st.data)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	ch := buildChart(win, 1500, 800)
	if len(ch.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(ch.Series))
	}
	names := []string{"Real Price", "Generated Price"}
	for i, s := range ch.Series {
		ts, ok := s.(chart.TimeSeries)
		if !ok {
			t.Fatalf("series %d is %T, want TimeSeries", i, s)
		}
		if ts.Name != names[i] {
			t.Fatalf("series %d name %q want %q", i, ts.Name, names[i])
		}
		if len(ts.XValues) != 3 || len(ts.YValues) != 3 {
			t.Fatalf("series %d lengths x=%d y=%d", i, len(ts.XValues), len(ts.YValues))
		}
		if ts.Style.StrokeColor.A != 179 {
			t.Fatalf("series %d alpha %d want 179", i, ts.Style.StrokeColor.A)
		}
	}
	if ch.XAxis.Style.TextRotationDegrees != 45 {
		t.Fatalf("x labels should be rotated 45 degrees")
	}
	for _, tk := range ch.XAxis.Ticks {
		if _, err := time.ParseInLocation(timeLabelFormat, tk.Label, time.Local); err != nil {
			t.Fatalf("tick label %q not in %s format: %v", tk.Label, timeLabelFormat, err)
		}
	}
}

func TestRenderXBounds(t *testing.T) {
	a, b := time.Unix(1000, 0), time.Unix(3000, 0)
	lo, hi := renderXBounds(b, a)
	if !lo.Equal(a) || !hi.Equal(b) {
		t.Fatalf("inverted bounds not ordered: %v %v", lo, hi)
	}
	lo, hi = renderXBounds(a, a)
	if !lo.Equal(a.Add(-singlePointPad)) || !hi.Equal(a.Add(singlePointPad)) {
		t.Fatalf("zero span not padded: %v %v", lo, hi)
	}
}

func TestRenderYBounds(t *testing.T) {
	lo, hi := renderYBounds(0, 0)
	if lo != -1 || hi != 1 {
		t.Fatalf("zero span => [%v,%v] want [-1,1]", lo, hi)
	}
	// all-negative prices invert under the 0.999/1.001 factors
	lo, hi = renderYBounds(-99.9, -100.1)
	if lo != -100.1 || hi != -99.9 {
		t.Fatalf("inverted y bounds not ordered: [%v,%v]", lo, hi)
	}
}

func TestRenderChart_HeadlessSize(t *testing.T) {
	st := headlessState(t, threeSamples)
	img := renderChart(st)
	if img == nil {
		t.Fatalf("nil image")
	}
	wantW, wantH := chartSize(nil)
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("image %dx%d want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
	if countDark(img, image.Rect(0, wantH*3/4, wantW/3, wantH)) == 0 {
		t.Fatalf("statistics text not found in the bottom-left corner")
	}
}

func TestRenderChart_EmptySeries(t *testing.T) {
	st := headlessState(t, "")
	img := renderChart(st)
	if img == nil {
		t.Fatalf("nil image")
	}
	if st.statsLines[1] != "Real Price - Mean: NaN, Std: NaN" {
		t.Fatalf("unexpected stats line %q", st.statsLines[1])
	}
}

func TestDrawStatsBox(t *testing.T) {
	img := drawStatsBox(blank(400, 200), []string{"Statistics:", "x"})
	if countDark(img, img.Bounds()) == 0 {
		t.Fatalf("expected dark text pixels")
	}
	if got := drawStatsBox(nil, []string{"x"}); got != nil {
		t.Fatalf("nil image should stay nil")
	}
}

// Statistics use the full file and do not follow the zoom.
func TestApply_StatsConstantAcrossZoom(t *testing.T) {
	st := headlessState(t, threeSamples)
	before := append([]string(nil), st.statsLines...)

	st.apply(view.SliderChanged{Value: 1})
	if st.view.NPoints != 1 {
		t.Fatalf("NPoints=%d want 1", st.view.NPoints)
	}
	st.apply(view.SliderChanged{Value: 0})
	if st.view.NPoints != 1 {
		t.Fatalf("zero slider changed NPoints to %d", st.view.NPoints)
	}
	st.apply(view.ResetClicked{})
	if st.view != view.New(3) {
		t.Fatalf("reset state %+v want %+v", st.view, view.New(3))
	}
	for i := range before {
		if st.statsLines[i] != before[i] {
			t.Fatalf("stats line %d changed: %q -> %q", i, before[i], st.statsLines[i])
		}
	}
	if st.stats.MeanDiffPct < 0.999 || st.stats.MeanDiffPct > 1.001 {
		t.Fatalf("mean diff %.4f want ~1.0", st.stats.MeanDiffPct)
	}
}

func countDark(img image.Image, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x3000 && cg < 0x3000 && cb < 0x3000 {
				n++
			}
		}
	}
	return n
}
