package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"StickerCut/internal/geom"
	"StickerCut/internal/logging"
	"StickerCut/internal/state"
)

// Pen is the fixed stroke used for the page export, independent of the
// on-screen style.
type Pen struct {
	Color state.RGB
	Width float64
}

// DefaultPen is a 1pt red cut line.
func DefaultPen() Pen {
	return Pen{Color: state.RGB{R: 255}, Width: 1}
}

const rasterImageName = "raster"

// Page renders a single page the size of the image, one point per pixel:
// the raster at full scale, then every path stroked with pen. ok is false
// without a raster or without paths. A raster that cannot be embedded is
// logged and skipped.
func Page(doc *state.Document, pen Pen) ([]byte, bool, error) {
	r := doc.Raster()
	paths := doc.ExportablePaths()
	if r == nil || len(paths) == 0 {
		return nil, false, nil
	}

	w, h := float64(r.Width), float64(r.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawRaster(pdf, r)

	pdf.SetDrawColor(int(pen.Color.R), int(pen.Color.G), int(pen.Color.B))
	pdf.SetLineWidth(pen.Width)
	pdf.SetLineJoinStyle("round")
	for _, p := range paths {
		drawPath(pdf, p.Nodes, p.Closed)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, false, fmt.Errorf("write pdf: %w", err)
	}
	logging.Logger().Debug("pdf export", "paths", len(paths), "bytes", buf.Len())
	return buf.Bytes(), true, nil
}

func drawRaster(pdf *gofpdf.Fpdf, r *state.Raster) {
	data, err := encodePNG(r)
	if err != nil {
		logging.Logger().Warn("pdf: raster not embedded", "err", err)
		return
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(rasterImageName, opt, bytes.NewReader(data))
	if pdf.Ok() {
		pdf.SetAlpha(r.Opacity, "Normal")
		pdf.ImageOptions(rasterImageName, 0, 0, float64(r.Width), float64(r.Height), false, opt, 0, "")
		pdf.SetAlpha(1, "Normal")
	}
	if err := pdf.Error(); err != nil {
		logging.Logger().Warn("pdf: raster not embedded", "err", err)
		pdf.ClearError()
	}
}

func drawPath(pdf *gofpdf.Fpdf, nodes []geom.Node, closed bool) {
	first := nodes[0].Anchor
	pdf.MoveTo(first.X, first.Y)
	for _, c := range geom.Segments(nodes, closed) {
		pdf.CurveBezierCubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	}
	if closed {
		pdf.ClosePath()
	}
	pdf.DrawPath("D")
}
