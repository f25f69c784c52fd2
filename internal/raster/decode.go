// Package raster turns a decoded image into the smoothed transparency
// field that the contour tracer runs on.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode is returned when the input bytes are not a supported image.
	ErrDecode = errors.New("raster: cannot decode image")
	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("raster: image has no pixels")
)

// Decode reads an image in any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (image.Image, string, error) {
	return Decode(bytes.NewReader(data))
}
