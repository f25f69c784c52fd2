package geom

import "math"

// Rect is an axis-aligned rectangle. The zero Rect is not empty: use
// EmptyRect as the identity for Union.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle spanning p1 and p2 in any order.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)},
		Max: Point{math.Max(p1.X, p2.X), math.Max(p1.Y, p2.Y)},
	}
}

// EmptyRect returns a rectangle that any Union replaces.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{inf, inf}, Max: Point{-inf, -inf}}
}

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Extend grows r to include p.
func (r Rect) Extend(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Outset grows r by d on every side.
func (r Rect) Outset(d float64) Rect {
	return Rect{
		Min: Point{r.Min.X - d, r.Min.Y - d},
		Max: Point{r.Max.X + d, r.Max.Y + d},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
