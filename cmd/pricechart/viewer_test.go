package main

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/iafilius/PriceChartViewer/src/series"
	"github.com/iafilius/PriceChartViewer/src/view"
)

func newTestViewer(t *testing.T, content string) *uiState {
	t.Helper()
	data, err := series.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := a.NewWindow("test")
	state := newUIState(a, w, defaultViewerConfig(), data)
	w.SetContent(buildContent(state))
	redrawChart(state)
	return state
}

func TestViewer_InitialControls(t *testing.T) {
	state := newTestViewer(t, threeSamples)
	if state.slider.Min != 0 || state.slider.Max != 3 || state.slider.Step != 1 {
		t.Fatalf("slider range [%v,%v] step %v", state.slider.Min, state.slider.Max, state.slider.Step)
	}
	if state.slider.Value != 3 {
		t.Fatalf("slider should start at full range, got %v", state.slider.Value)
	}
	if state.countLabel.Text != "3 / 3" {
		t.Fatalf("count label %q", state.countLabel.Text)
	}
	if state.chartCanvas.Image == nil {
		t.Fatalf("chart not rendered")
	}
}

func TestViewer_SliderThenReset(t *testing.T) {
	state := newTestViewer(t, threeSamples)
	initial := state.chartCanvas.Image

	state.slider.OnChanged(1)
	if state.view.NPoints != 1 || state.countLabel.Text != "1 / 3" {
		t.Fatalf("after slider: %+v label %q", state.view, state.countLabel.Text)
	}
	if state.chartCanvas.Image == initial {
		t.Fatalf("chart not redrawn after zoom")
	}

	test.Tap(state.resetButton)
	if state.view != view.New(3) {
		t.Fatalf("after reset: %+v", state.view)
	}
	if state.slider.Value != 3 {
		t.Fatalf("slider not restored: %v", state.slider.Value)
	}
	if state.countLabel.Text != "3 / 3" {
		t.Fatalf("count label %q", state.countLabel.Text)
	}
}

func TestViewer_ZeroSliderKeepsChart(t *testing.T) {
	state := newTestViewer(t, threeSamples)
	state.slider.OnChanged(2)
	img := state.chartCanvas.Image
	state.slider.OnChanged(0)
	if state.chartCanvas.Image != img {
		t.Fatalf("zero slider must not redraw")
	}
	if state.view.NPoints != 2 || state.view.Slider != 0 {
		t.Fatalf("unexpected state %+v", state.view)
	}
}

func TestViewer_EmptyDataDisablesSlider(t *testing.T) {
	state := newTestViewer(t, "")
	if !state.slider.Disabled() {
		t.Fatalf("slider should be disabled without data")
	}
	test.Tap(state.resetButton)
	if state.view != view.New(0) {
		t.Fatalf("reset on empty data changed state: %+v", state.view)
	}
}
