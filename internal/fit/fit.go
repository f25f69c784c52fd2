// Package fit converts traced contour rings into editable bezier nodes.
//
// With a positive tolerance a ring is first reduced with a closed
// Douglas-Peucker pass, then neighbouring spans are greedily merged while a
// single tangent-continuous cubic still stays within tolerance of the
// original polyline. Every emitted segment is verified by sampling, and
// falls back to a straight chord (always within tolerance after the
// Douglas-Peucker pass) when no curved handles fit.
package fit

import (
	"StickerCut/internal/contour"
	"StickerCut/internal/geom"
)

// samplesPerSegment is the number of parameter steps used to verify a
// fitted segment against the source polyline.
const samplesPerSegment = 40

// handleScales are the handle lengths tried per segment, as multiples of
// a third of the chord length. Zero is the straight-chord fallback.
var handleScales = []float64{1, 0.75, 0.5, 0.25, 0}

// Fit converts ring into closed-path nodes. A zero (or negative)
// tolerance yields one corner node per ring vertex.
func Fit(ring contour.Ring, tolerance float64) []geom.Node {
	if tolerance <= 0 || len(ring) < 3 {
		return polyline(ring)
	}

	f := &fitter{ring: ring, tol: tolerance}
	f.tangents()

	idx := simplifyClosed(ring, tolerance)
	if len(idx) < 2 {
		return polyline(ring)
	}
	idx = f.merge(idx)

	nodes := make([]geom.Node, len(idx))
	for k, i := range idx {
		nodes[k] = geom.Corner(ring[i])
	}
	for k := range idx {
		a, b := idx[k], idx[(k+1)%len(idx)]
		s := f.bestScale(a, b)
		out, in := f.handles(a, b, s)
		nodes[k].Out = out
		nodes[(k+1)%len(idx)].In = in
	}
	return nodes
}

func polyline(ring contour.Ring) []geom.Node {
	nodes := make([]geom.Node, len(ring))
	for i, p := range ring {
		nodes[i] = geom.Corner(p)
	}
	return nodes
}

type fitter struct {
	ring contour.Ring
	tol  float64
	tan  []geom.Point
}

// tangents estimates a unit tangent per ring vertex from its two
// neighbours on each side.
func (f *fitter) tangents() {
	n := len(f.ring)
	f.tan = make([]geom.Point, n)
	for i := range f.ring {
		d := f.ring[(i+1)%n].Sub(f.ring[(i-1+n)%n])
		d = d.Add(f.ring[(i+2)%n].Sub(f.ring[(i-2+2*n)%n]).Mul(0.5))
		f.tan[i] = d.Normalize()
	}
}

// span returns the source points from vertex a to vertex b, walking forward
// around the ring. a == b yields the whole ring closed on itself.
func (f *fitter) span(a, b int) []geom.Point {
	n := len(f.ring)
	count := (b-a+n)%n + 1
	if a == b {
		count = n + 1
	}
	pts := make([]geom.Point, count)
	for i := range pts {
		pts[i] = f.ring[(a+i)%n]
	}
	return pts
}

// handles returns the outgoing offset at a and the incoming offset at b
// for handle scale s.
func (f *fitter) handles(a, b int, s float64) (out, in geom.Point) {
	if s == 0 {
		return geom.Point{}, geom.Point{}
	}
	l := f.ring[a].Dist(f.ring[b]) / 3 * s
	return f.tan[a].Mul(l), f.tan[b].Mul(-l)
}

func (f *fitter) curve(a, b int, s float64) geom.CubicBez {
	out, in := f.handles(a, b, s)
	return geom.CubicBez{
		P0: f.ring[a],
		P1: f.ring[a].Add(out),
		P2: f.ring[b].Add(in),
		P3: f.ring[b],
	}
}

// fits reports whether the cubic from a to b with scale s deviates from the
// source span by at most the tolerance, in both directions.
func (f *fitter) fits(a, b int, s float64) bool {
	src := f.span(a, b)
	c := f.curve(a, b, s)
	flat := c.Flatten(samplesPerSegment)
	for _, p := range flat {
		if geom.DistToPolyline(p, src) > f.tol {
			return false
		}
	}
	for _, p := range src {
		if geom.DistToPolyline(p, flat) > f.tol {
			return false
		}
	}
	return true
}

// bestScale returns the longest handle scale that fits, or zero.
func (f *fitter) bestScale(a, b int) float64 {
	for _, s := range handleScales {
		if s == 0 || f.fits(a, b, s) {
			return s
		}
	}
	return 0
}

// mergeable reports whether some handle scale fits the span a..b.
func (f *fitter) mergeable(a, b int) bool {
	for _, s := range handleScales {
		if f.fits(a, b, s) {
			return true
		}
	}
	return false
}

// merge removes nodes whose neighbours can be joined by one fitting cubic.
// A closed path keeps at least three nodes.
func (f *fitter) merge(idx []int) []int {
	for changed := true; changed && len(idx) > 3; {
		changed = false
		for k := 0; k < len(idx) && len(idx) > 3; k++ {
			prev := idx[(k-1+len(idx))%len(idx)]
			next := idx[(k+1)%len(idx)]
			if f.mergeable(prev, next) {
				idx = append(idx[:k], idx[k+1:]...)
				changed = true
			}
		}
	}
	return idx
}
