package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, A: 200})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, format, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, _, err = DecodeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestBuildAlphaFieldIgnoresColour(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 7, 9, 10))
	img.SetNRGBA(5, 7, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	img.SetNRGBA(8, 9, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(6, 8, color.NRGBA{R: 12, G: 200, B: 7, A: 128})

	f := BuildAlphaField(img)
	require.Equal(t, 4, f.Width)
	require.Equal(t, 3, f.Height)
	assert.Equal(t, float32(0), f.At(0, 0))
	assert.Equal(t, float32(255), f.At(3, 2))
	assert.Equal(t, float32(128), f.At(1, 1))
}

func TestBuildAlphaFieldFromAlphaImage(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 2, 2))
	img.SetAlpha(1, 0, color.Alpha{A: 77})
	f := BuildAlphaField(img)
	assert.Equal(t, []float32{0, 77, 0, 0}, f.Values)
}

func TestEffectiveRadius(t *testing.T) {
	for r, want := range map[int]int{-3: 1, 0: 1, 1: 1, 7: 7} {
		assert.Equal(t, want, EffectiveRadius(r), "radius %d", r)
	}
}

func TestBlurZeroRadiusIsNotNoop(t *testing.T) {
	f := NewAlphaField(5, 5)
	f.Set(2, 2, 255)

	zero := Blur(f, 0)
	one := Blur(f, 1)
	assert.Equal(t, one.Values, zero.Values)
	assert.NotEqual(t, f.Values, zero.Values)
	assert.Equal(t, float32(255), f.At(2, 2), "input must not be mutated")
}

func TestBlurCornerIsEdgeClamped(t *testing.T) {
	tests := []struct {
		name   string
		radius int
		want   float64
	}{
		// Clamping repeats the corner sample r+1 times in each direction.
		{"radius 1", 1, 255 * 2.0 / 3 * 2.0 / 3},
		{"radius 2", 2, 255 * 3.0 / 5 * 3.0 / 5},
		{"radius 3", 3, 255 * 4.0 / 7 * 4.0 / 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAlphaField(10, 10)
			f.Set(0, 0, 255)
			out := Blur(f, tt.radius)
			assert.InDelta(t, tt.want, float64(out.At(0, 0)), 1e-3)
			// Wrapping would leak mass into the opposite corner.
			assert.Zero(t, out.At(9, 9))
		})
	}
}

func TestBlurStaysInRange(t *testing.T) {
	f := NewAlphaField(16, 9)
	for i := range f.Values {
		if i%3 == 0 {
			f.Values[i] = 255
		}
	}
	out := Blur(f, 4)
	require.Equal(t, f.Width, out.Width)
	require.Equal(t, f.Height, out.Height)
	for _, v := range out.Values {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(255))
	}
}

func TestBlurUniformFieldUnchanged(t *testing.T) {
	f := NewAlphaField(6, 4)
	for i := range f.Values {
		f.Values[i] = 200
	}
	out := Blur(f, 3)
	for _, v := range out.Values {
		assert.InDelta(t, 200, float64(v), 1e-3)
	}
}
