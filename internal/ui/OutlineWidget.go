package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"StickerCut/internal/geom"
	"StickerCut/internal/state"
	"StickerCut/internal/studio"
)

const (
	nodeRadius = 3.5
	// line samples per cubic segment on screen
	flattenSteps = 12
)

var (
	canvasColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	nodeColor   = color.NRGBA{R: 20, G: 110, B: 240, A: 255}
)

// OutlineWidget draws the raster and the outline, and forwards pointer
// events in image coordinates to the studio. Dragging empty space pans.
type OutlineWidget struct {
	widget.BaseWidget
	studio     *studio.Studio
	panX, panY float32
	panning    bool
	lastDrag   fyne.Position
}

var _ fyne.Widget = (*OutlineWidget)(nil)
var _ fyne.Draggable = (*OutlineWidget)(nil)
var _ fyne.Scrollable = (*OutlineWidget)(nil)
var _ desktop.Mouseable = (*OutlineWidget)(nil)

func NewOutlineWidget(st *studio.Studio) *OutlineWidget {
	w := &OutlineWidget{studio: st, panX: 16, panY: 16}
	w.ExtendBaseWidget(w)
	return w
}

func (w *OutlineWidget) toImage(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X-w.panX), float64(p.Y-w.panY))
}

func (w *OutlineWidget) toScreen(p geom.Point) fyne.Position {
	return fyne.NewPos(float32(p.X)+w.panX, float32(p.Y)+w.panY)
}

func button(b desktop.MouseButton) state.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return state.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return state.ButtonTertiary
	}
	return state.ButtonPrimary
}

func (w *OutlineWidget) MouseDown(e *desktop.MouseEvent) {
	act := w.studio.PointerDown(w.toImage(e.Position), button(e.Button), time.Now())
	w.panning = act == state.ActionNone
}

func (w *OutlineWidget) MouseUp(e *desktop.MouseEvent) {
	w.panning = false
	w.studio.PointerUp(w.toImage(e.Position))
}

func (w *OutlineWidget) Dragged(e *fyne.DragEvent) {
	w.lastDrag = e.Position
	if w.studio.Session().State() == state.Dragging {
		w.studio.PointerMove(w.toImage(e.Position))
		return
	}
	if w.panning {
		w.panX += e.Dragged.DX
		w.panY += e.Dragged.DY
		w.Refresh()
	}
}

// DragEnd finishes a node drag when the button is released outside the
// widget and no MouseUp arrives.
func (w *OutlineWidget) DragEnd() {
	w.panning = false
	if w.studio.Session().State() == state.Dragging {
		w.studio.PointerUp(w.toImage(w.lastDrag))
	}
}

func (w *OutlineWidget) Scrolled(e *fyne.ScrollEvent) {
	w.panX += e.Scrolled.DX
	w.panY += e.Scrolled.DY
	w.Refresh()
}

func (w *OutlineWidget) CreateRenderer() fyne.WidgetRenderer {
	return &outlineRenderer{
		w:          w,
		background: canvas.NewRectangle(canvasColor),
	}
}

type outlineRenderer struct {
	w          *OutlineWidget
	background *canvas.Rectangle
	raster     *canvas.Image
	rasterSrc  *state.Raster
	objects    []fyne.CanvasObject
}

func (r *outlineRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		r.build()
	}
	return r.objects
}

func (r *outlineRenderer) build() {
	doc := r.w.studio.Document()
	objects := []fyne.CanvasObject{r.background}

	if ras := doc.Raster(); ras != nil {
		if r.rasterSrc != ras {
			r.raster = canvas.NewImageFromImage(ras.Image)
			r.raster.FillMode = canvas.ImageFillStretch
			r.rasterSrc = ras
		}
		r.raster.Resize(fyne.NewSize(float32(ras.Width), float32(ras.Height)))
		r.raster.Move(r.w.toScreen(geom.Pt(0, 0)))
		r.raster.Translucency = 1 - ras.Opacity
		if ras.Visible {
			objects = append(objects, r.raster)
		}
	}

	st := doc.Style()
	stroke := nrgba(st.StrokeColor, st.StrokeOpacity)
	for _, p := range doc.Paths() {
		for _, seg := range p.Segments() {
			pts := seg.Flatten(flattenSteps)
			if seg.IsLine() {
				pts = []geom.Point{seg.P0, seg.P3}
			}
			for i := 1; i < len(pts); i++ {
				l := canvas.NewLine(stroke)
				l.StrokeWidth = float32(st.StrokeWidth)
				l.Position1 = r.w.toScreen(pts[i-1])
				l.Position2 = r.w.toScreen(pts[i])
				objects = append(objects, l)
			}
		}
	}

	if st.ShowNodes {
		for _, p := range doc.Paths() {
			for _, n := range p.Nodes {
				c := canvas.NewCircle(color.White)
				c.StrokeColor = nodeColor
				c.StrokeWidth = 1.5
				at := r.w.toScreen(n.Anchor)
				c.Position1 = at.SubtractXY(nodeRadius, nodeRadius)
				c.Position2 = at.AddXY(nodeRadius, nodeRadius)
				objects = append(objects, c)
			}
		}
	}
	r.objects = objects
}

func nrgba(c state.RGB, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

func (r *outlineRenderer) Refresh() {
	r.build()
	canvas.Refresh(r.w)
}

func (w *OutlineWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *OutlineWidget) MouseOut()                      {}
func (w *OutlineWidget) MouseMoved(*desktop.MouseEvent) {}
func (r *outlineRenderer) Destroy()                     {}
func (r *outlineRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}
func (r *outlineRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
