package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"StickerCut/internal/config"
	"StickerCut/internal/logging"
	"StickerCut/internal/state"
	"StickerCut/internal/studio"
)

// --- Colour swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.RGB
	OnTapped func(state.RGB)
}

func newColorSwatch(c state.RGB, tapped func(state.RGB)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(nrgba(s.Color, 1))
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var palette = []state.RGB{
	{R: 255},
	{R: 255, G: 0, B: 255},
	{B: 255},
	{G: 160},
	{},
}

func swatches(tapped func(state.RGB)) *fyne.Container {
	box := container.NewHBox()
	for _, c := range palette {
		box.Add(newColorSwatch(c, tapped))
	}
	return box
}

// labelledSlider returns a slider with a value label. Generation sliders
// report on release only.
func labelledSlider(name string, min, max, step, value float64, format string, onEnd func(float64)) fyne.CanvasObject {
	label := widget.NewLabel(fmt.Sprintf("%s "+format, name, value))
	s := widget.NewSlider(min, max)
	s.Step = step
	s.SetValue(value)
	s.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%s "+format, name, v))
	}
	s.OnChangeEnded = onEnd
	return container.NewVBox(label, container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), s))
}

func reportErr(win fyne.Window, err error) {
	if err != nil {
		logging.Logger().Error("action failed", "err", err)
		dialogError(win, err)
	}
}

// NewToolbar builds the action bar and the parameter panel.
func NewToolbar(win fyne.Window, st *studio.Studio) (fyne.CanvasObject, fyne.CanvasObject) {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { openImage(win, st) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { st.Undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { st.Redo() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveSVG(win, st, false) }),
		widget.NewToolbarAction(theme.ContentCutIcon(), func() { saveSVG(win, st, true) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { savePDF(win, st) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { savePreview(win, st) }),
	)

	p := st.Document().Params()
	params := container.NewVBox(
		labelledSlider("Blur", 0, config.MaxBlurRadius, 1, float64(p.BlurRadius), "%.0f", func(v float64) {
			reportErr(win, st.SetBlurRadius(int(v)))
		}),
		labelledSlider("Threshold", config.MinThreshold, config.MaxThreshold, 1, float64(p.Threshold), "%.0f", func(v float64) {
			reportErr(win, st.SetThreshold(int(v)))
		}),
		labelledSlider("Simplify", 0, config.MaxSimplification, config.SimplificationStep, p.Simplification, "%.1f", func(v float64) {
			reportErr(win, st.SetSimplification(v))
		}),
		widget.NewSeparator(),
	)

	style := st.Document().Style()
	strokeWidth := labelledSlider("Stroke", 0.5, 20, 0.5, style.StrokeWidth, "%.1f", func(v float64) {
		s := st.Document().Style()
		s.StrokeWidth = v
		st.SetStyle(s)
	})
	fillOpacity := labelledSlider("Fill", 0, 1, 0.05, style.FillOpacity, "%.2f", func(v float64) {
		s := st.Document().Style()
		s.FillOpacity = v
		st.SetStyle(s)
	})
	rasterOpacity := labelledSlider("Image", 0, 1, 0.05, st.RasterOpacity(), "%.2f", func(v float64) {
		st.SetRasterOpacity(v)
	})

	showOriginal := widget.NewCheck("Show original", st.SetShowOriginal)
	showOriginal.SetChecked(st.ShowOriginal())
	showNodes := widget.NewCheck("Show nodes", st.SetShowNodes)
	showNodes.SetChecked(style.ShowNodes)

	params.Add(widget.NewLabel("Stroke colour"))
	params.Add(swatches(func(c state.RGB) {
		s := st.Document().Style()
		s.StrokeColor = c
		st.SetStyle(s)
	}))
	params.Add(widget.NewLabel("Fill colour"))
	params.Add(swatches(func(c state.RGB) {
		s := st.Document().Style()
		s.FillColor = c
		st.SetStyle(s)
	}))
	params.Add(strokeWidth)
	params.Add(fillOpacity)
	params.Add(rasterOpacity)
	params.Add(showOriginal)
	params.Add(showNodes)

	return container.NewHBox(tb, layout.NewSpacer()), params
}
