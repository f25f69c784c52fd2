package geom

import (
	"math"
	"sort"
)

// CubicBez is a cubic Bezier segment. P0 and P3 are the endpoints,
// P1 and P2 the control points.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t in [0,1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// IsLine reports whether both control points sit on the endpoints.
func (c CubicBez) IsLine() bool {
	return c.P1 == c.P0 && c.P2 == c.P3
}

// Extrema returns the parameters in (0,1) where dx/dt or dy/dt vanish.
func (c CubicBez) Extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	res := make([]float64, 0, 4)
	res = append(res, solveQuadraticUnit(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	res = append(res, solveQuadraticUnit(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(res)
	return res
}

// BoundingBox returns the tight axis-aligned bounds of the curve.
func (c CubicBez) BoundingBox() Rect {
	bb := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bb = bb.Extend(c.Eval(t))
	}
	return bb
}

// Flatten returns n+1 evenly parameterised samples, endpoints included.
func (c CubicBez) Flatten(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.Eval(float64(i) / float64(n))
	}
	return pts
}

// Nearest returns the parameter and distance of the point on c closest to p.
// A coarse scan is refined by ternary search around the best sample.
func (c CubicBez) Nearest(p Point) (t, dist float64) {
	const coarse = 32
	best, bestD := 0.0, math.Inf(1)
	for i := 0; i <= coarse; i++ {
		u := float64(i) / coarse
		if d := c.Eval(u).Dist(p); d < bestD {
			best, bestD = u, d
		}
	}
	lo := math.Max(0, best-1.0/coarse)
	hi := math.Min(1, best+1.0/coarse)
	for i := 0; i < 40; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if c.Eval(m1).Dist(p) < c.Eval(m2).Dist(p) {
			hi = m2
		} else {
			lo = m1
		}
	}
	t = (lo + hi) / 2
	if d := c.Eval(t).Dist(p); d < bestD {
		return t, d
	}
	return best, bestD
}

// solveQuadraticUnit returns the roots of a*t^2 + b*t + c strictly inside (0,1).
func solveQuadraticUnit(a, b, c float64) []float64 {
	const eps = 1e-12
	var roots []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			add(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	if disc > 0 {
		add((-b - sq) / (2 * a))
	}
	return roots
}
