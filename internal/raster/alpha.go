package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// AlphaField is a row-major grid of transparency values in [0,255].
// Values are float32 so smoothing never rounds between passes.
type AlphaField struct {
	Width  int
	Height int
	Values []float32
}

// NewAlphaField allocates a zeroed field.
func NewAlphaField(w, h int) *AlphaField {
	return &AlphaField{Width: w, Height: h, Values: make([]float32, w*h)}
}

// At returns the value at (x,y). Coordinates must be in range.
func (f *AlphaField) At(x, y int) float32 {
	return f.Values[y*f.Width+x]
}

// Set stores v at (x,y). Coordinates must be in range.
func (f *AlphaField) Set(x, y int, v float32) {
	f.Values[y*f.Width+x] = v
}

// Clone returns a deep copy.
func (f *AlphaField) Clone() *AlphaField {
	c := NewAlphaField(f.Width, f.Height)
	copy(c.Values, f.Values)
	return c
}

// BuildAlphaField extracts the alpha channel of img. Colour channels are
// ignored. The field origin is the top-left corner of img.Bounds().
func BuildAlphaField(img image.Image) *AlphaField {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var alpha *image.Alpha
	if a, ok := img.(*image.Alpha); ok && a.Rect.Min == (image.Point{}) && a.Stride == w {
		alpha = a
	} else {
		alpha = image.NewAlpha(image.Rect(0, 0, w, h))
		xdraw.Draw(alpha, alpha.Bounds(), img, b.Min, xdraw.Src)
	}

	f := NewAlphaField(w, h)
	for i, v := range alpha.Pix[:w*h] {
		f.Values[i] = float32(v)
	}
	return f
}
