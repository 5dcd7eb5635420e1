// Price comparison viewer.
//
// Reads data.txt from the working directory (real price, generated price, unix timestamp per
// line) and shows both series in one chart. The slider selects how many of the most recent
// samples are visible; Reset View returns to the full history. The statistics box always
// describes the full file.
//
// There are no flags: a malformed or missing data file is logged and the process exits 1
// before any window is created.
package main

import (
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"math"
	"os"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/PriceChartViewer/src/logging"
	"github.com/iafilius/PriceChartViewer/src/series"
	"github.com/iafilius/PriceChartViewer/src/view"
)

// viewerConfig holds the compiled-in settings of the viewer.
type viewerConfig struct {
	DataPath     string
	Title        string
	WindowWidth  float32
	WindowHeight float32
	LogLevel     string
	ExportName   string
}

func defaultViewerConfig() viewerConfig {
	return viewerConfig{
		DataPath:     series.DefaultFile,
		Title:        "Price Comparison Viewer",
		WindowWidth:  1500,
		WindowHeight: 900,
		LogLevel:     "info",
		ExportName:   "price_comparison.png",
	}
}

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    viewerConfig

	// loaded once, never modified
	data       *series.Series
	stats      series.Stats
	statsLines []string

	view view.State

	// widgets
	chartCanvas *canvas.Image
	slider      *widget.Slider
	countLabel  *widget.Label
	resetButton *widget.Button

	// set while the slider is moved programmatically so OnChanged does not re-dispatch
	syncingSlider bool
}

func newUIState(a fyne.App, w fyne.Window, cfg viewerConfig, data *series.Series) *uiState {
	st := series.ComputeStats(data)
	return &uiState{
		app:        a,
		window:     w,
		cfg:        cfg,
		data:       data,
		stats:      st,
		statsLines: st.Lines(),
		view:       view.New(data.Len()),
	}
}

// light theme wrapper so the widgets match the white chart background
type lightTheme struct{}

func (l *lightTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}
func (l *lightTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (l *lightTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (l *lightTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	cfg := defaultViewerConfig()
	logging.SetLogLevel(cfg.LogLevel)

	data, err := series.Load(cfg.DataPath)
	if err != nil {
		logging.Errorf("[viewer] %v", err)
		os.Exit(1)
	}
	logging.Infof("[viewer] loaded %d samples from %s", data.Len(), cfg.DataPath)

	a := app.NewWithID("com.pricechart.viewer")
	a.Settings().SetTheme(&lightTheme{})
	w := a.NewWindow(cfg.Title)
	w.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	state := newUIState(a, w, cfg, data)
	for _, l := range state.statsLines {
		logging.Debugf("[viewer] %s", l)
	}
	w.SetContent(buildContent(state))
	buildMenus(state)
	redrawChart(state)

	w.ShowAndRun()
}

// buildContent creates the chart image and the zoom controls below it.
func buildContent(state *uiState) fyne.CanvasObject {
	state.chartCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.chartCanvas.FillMode = canvas.ImageFillContain
	state.chartCanvas.SetMinSize(fyne.NewSize(900, 480))

	total := state.view.Total
	if total > 0 {
		state.slider = widget.NewSlider(0, float64(total))
	} else {
		// a zero-width range cannot be dragged; show an inert control instead
		state.slider = widget.NewSlider(0, 1)
	}
	state.slider.Step = 1
	state.slider.Value = float64(state.view.Slider)
	state.slider.OnChanged = func(v float64) {
		if state.syncingSlider {
			return
		}
		state.apply(view.SliderChanged{Value: int(math.Round(v))})
	}
	if total == 0 {
		state.slider.Disable()
	}

	state.countLabel = widget.NewLabel("")
	state.resetButton = widget.NewButton("Reset View", func() { state.apply(view.ResetClicked{}) })
	updateCountLabel(state)

	controls := container.NewBorder(nil, nil,
		widget.NewLabel("Zoom"),
		container.NewHBox(state.countLabel, state.resetButton),
		state.slider,
	)
	return container.NewBorder(nil, controls, nil, nil, state.chartCanvas)
}

// apply feeds ev through the view state machine and renders the result.
func (s *uiState) apply(ev view.Event) {
	next, redraw := view.Dispatch(s.view, ev)
	s.view = next
	syncSlider(s)
	updateCountLabel(s)
	if redraw {
		logging.Debugf("[viewer] %T -> showing last %d of %d samples", ev, s.view.NPoints, s.view.Total)
		redrawChart(s)
	}
}

func syncSlider(state *uiState) {
	if state.slider == nil || state.view.Total == 0 {
		return
	}
	want := float64(state.view.Slider)
	if state.slider.Value == want {
		return
	}
	state.syncingSlider = true
	state.slider.SetValue(want)
	state.syncingSlider = false
}

func updateCountLabel(state *uiState) {
	if state.countLabel == nil {
		return
	}
	state.countLabel.SetText(fmt.Sprintf("%d / %d", state.view.NPoints, state.view.Total))
}

func redrawChart(state *uiState) {
	img := renderChart(state)
	if img == nil || state.chartCanvas == nil {
		return
	}
	state.chartCanvas.Image = img
	state.chartCanvas.Refresh()
}

// menus and shortcuts
func buildMenus(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset View", func() { state.apply(view.ResetClicked{}) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))

	canv := state.window.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { state.apply(view.ResetClicked{}) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { exportChartPNG(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	if state.chartCanvas == nil || state.chartCanvas.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	img := state.chartCanvas.Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			logging.Errorf("[viewer] export %s: %v", wc.URI().Path(), err)
			dialog.ShowError(err, state.window)
			return
		}
		logging.Infof("[viewer] exported chart to %s", wc.URI().Path())
	}, state.window)
	fs.SetFileName(state.cfg.ExportName)
	fs.Show()
}
