// Package export serialises an outline document to SVG, a fixed-size PDF
// page and a PNG preview of the cut line.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"StickerCut/internal/geom"
	"StickerCut/internal/logging"
	"StickerCut/internal/state"
)

// Frame is the user-space rectangle an SVG document shows.
type Frame struct {
	X, Y, W, H float64
}

func frameOf(r geom.Rect) Frame {
	return Frame{X: r.Min.X, Y: r.Min.Y, W: r.Width(), H: r.Height()}
}

// Aligned serialises the paths in the image's coordinate frame, whatever
// their extent. ok is false without a raster or without paths.
func Aligned(doc *state.Document) (string, bool) {
	r := doc.Raster()
	if r == nil || len(doc.ExportablePaths()) == 0 {
		return "", false
	}
	var sb strings.Builder
	withRasterHidden(doc, func() {
		writeSVG(&sb, doc, Frame{W: float64(r.Width), H: float64(r.Height)})
	})
	return sb.String(), true
}

// Trimmed serialises the paths framed by their stroke bounds padded by
// ceil(strokeWidth/2). ok is false without paths.
func Trimmed(doc *state.Document) (string, bool) {
	box, ok := doc.TrimBox()
	if !ok {
		return "", false
	}
	var sb strings.Builder
	withRasterHidden(doc, func() {
		writeSVG(&sb, doc, frameOf(box))
	})
	return sb.String(), true
}

// Scene serialises what the canvas shows: the raster when it is visible,
// then the paths, in the image frame.
func Scene(doc *state.Document) (string, bool) {
	r := doc.Raster()
	if r == nil {
		return "", false
	}
	var sb strings.Builder
	writeSVG(&sb, doc, Frame{W: float64(r.Width), H: float64(r.Height)})
	return sb.String(), true
}

// withRasterHidden runs fn with the raster hidden and restores the
// previous visibility afterwards.
func withRasterHidden(doc *state.Document, fn func()) {
	r := doc.Raster()
	if r == nil {
		fn()
		return
	}
	visible := r.Visible
	doc.SetShowOriginal(false)
	defer doc.SetShowOriginal(visible)
	fn()
}

func writeSVG(w io.Writer, doc *state.Document, f Frame) {
	st := doc.Style()
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(f.W), num(f.H), num(f.X), num(f.Y), num(f.W), num(f.H))

	if r := doc.Raster(); r != nil && r.Visible {
		if uri, err := dataURI(r); err != nil {
			logging.Logger().Warn("svg: raster not embedded", "err", err)
		} else {
			fmt.Fprintf(w, `<image x="0" y="0" width="%d" height="%d" opacity="%s" href="%s"/>`+"\n",
				r.Width, r.Height, num(r.Opacity), uri)
		}
	}

	for _, p := range doc.ExportablePaths() {
		fmt.Fprintf(w, `<path d="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s" stroke-linejoin="round"/>`+"\n",
			PathData(p.Nodes, p.Closed),
			st.FillColor.Hex(), num(st.FillOpacity),
			st.StrokeColor.Hex(), num(st.StrokeOpacity), num(st.StrokeWidth))
	}
	fmt.Fprintln(w, `</svg>`)
}

// PathData returns the SVG path data of the curve through nodes.
func PathData(nodes []geom.Node, closed bool) string {
	if len(nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	first := nodes[0].Anchor
	sb.WriteString("M" + num(first.X) + " " + num(first.Y))
	for _, c := range geom.Segments(nodes, closed) {
		fmt.Fprintf(&sb, "C%s %s %s %s %s %s",
			num(c.P1.X), num(c.P1.Y), num(c.P2.X), num(c.P2.Y), num(c.P3.X), num(c.P3.Y))
	}
	if closed {
		sb.WriteString("Z")
	}
	return sb.String()
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dataURI(r *state.Raster) (string, error) {
	buf, err := encodePNG(r)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf), nil
}

func encodePNG(r *state.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}
	return buf.Bytes(), nil
}
