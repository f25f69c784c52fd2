package raster

// EffectiveRadius is the radius Blur actually applies. A radius below one
// still gets a one-pixel pass so the raw alpha edge is never traced as is.
func EffectiveRadius(r int) int {
	if r < 1 {
		return 1
	}
	return r
}

// Blur smooths f with a horizontal then a vertical box filter of
// half-width EffectiveRadius(r). Samples outside the field are clamped to
// the nearest edge sample. f is not modified.
func Blur(f *AlphaField, r int) *AlphaField {
	r = EffectiveRadius(r)
	tmp := NewAlphaField(f.Width, f.Height)
	out := NewAlphaField(f.Width, f.Height)

	line := make([]float32, max(f.Width, f.Height))
	res := make([]float32, len(line))

	for y := 0; y < f.Height; y++ {
		row := f.Values[y*f.Width : (y+1)*f.Width]
		boxLine(row, res[:f.Width], r)
		copy(tmp.Values[y*f.Width:], res[:f.Width])
	}
	for x := 0; x < f.Width; x++ {
		col := line[:f.Height]
		for y := range col {
			col[y] = tmp.Values[y*f.Width+x]
		}
		boxLine(col, res[:f.Height], r)
		for y := 0; y < f.Height; y++ {
			out.Values[y*f.Width+x] = clamp255(res[y])
		}
	}
	return out
}

// boxLine writes the edge-clamped moving average of src into dst using a
// running sum over the window [i-r, i+r].
func boxLine(src, dst []float32, r int) {
	n := len(src)
	if n == 0 {
		return
	}
	at := func(i int) float64 {
		return float64(src[clampInt(i, 0, n-1)])
	}
	var sum float64
	for i := -r; i <= r; i++ {
		sum += at(i)
	}
	size := float64(2*r + 1)
	for i := 0; i < n; i++ {
		dst[i] = float32(sum / size)
		sum += at(i+r+1) - at(i-r)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
