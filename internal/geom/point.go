// Package geom holds the 2-D primitives shared by the tracing, fitting,
// editing and export stages. All coordinates are in image pixel space.
package geom

import "math"

// Point is a point (or a vector) on the image plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64  { return p.Sub(q).Len() }
func (p Point) IsZero() bool          { return p.X == 0 && p.Y == 0 }
func (p Point) Eq(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Normalize returns the unit vector of p, or the zero vector if p is zero.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// DistToSegment returns the distance from p to the closed segment [a,b].
func DistToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Lerp(b, t))
}

// DistToPolyline returns the distance from p to the open polyline pts.
func DistToPolyline(p Point, pts []Point) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Dist(pts[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		if d := DistToSegment(p, pts[i-1], pts[i]); d < best {
			best = d
		}
	}
	return best
}

// PolygonArea returns the signed shoelace area of the implicitly closed
// polygon pts. The sign depends on winding and must not be relied upon.
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].Cross(pts[j])
	}
	return sum / 2
}
