package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"StickerCut/internal/state"
)

// Preview rasterises the trimmed SVG export into a PNG of the cut line at
// one pixel per unit. ok is false without paths.
func Preview(doc *state.Document) ([]byte, bool, error) {
	svg, ok := Trimmed(doc)
	if !ok {
		return nil, false, nil
	}
	img, err := Rasterize(svg)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), true, nil
}

// Rasterize draws an SVG document onto a transparent image the size of
// its viewBox.
func Rasterize(svg string) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("parse svg: empty viewBox %vx%v", icon.ViewBox.W, icon.ViewBox.H)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
