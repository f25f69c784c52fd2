// Package contour traces isolines of an alpha field with marching squares.
//
// Samples sit at pixel centres, so field value (x,y) lives at image
// coordinate (x+0.5, y+0.5). The grid is padded with a one-sample border
// below every threshold, which closes every isoline, including those of
// blobs touching the image edge.
package contour

import (
	"StickerCut/internal/geom"
	"StickerCut/internal/raster"
)

// Ring is a closed polygon in image pixel space. The edge from the last
// point back to the first is implicit.
type Ring []geom.Point

// Area returns the absolute enclosed area of the ring.
func (r Ring) Area() float64 {
	a := geom.PolygonArea(r)
	if a < 0 {
		return -a
	}
	return a
}

// Bounds returns the bounding rectangle of the ring's points.
func (r Ring) Bounds() geom.Rect {
	bb := geom.EmptyRect()
	for _, p := range r {
		bb = bb.Extend(p)
	}
	return bb
}

const outside = -1

// grid is the padded sample lattice.
type grid struct {
	w, h   int // padded dimensions
	values []float64
	level  float64
}

func newGrid(f *raster.AlphaField, level float64) *grid {
	g := &grid{w: f.Width + 2, h: f.Height + 2, level: level}
	g.values = make([]float64, g.w*g.h)
	for i := range g.values {
		g.values[i] = outside
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g.values[(y+1)*g.w+x+1] = float64(f.At(x, y))
		}
	}
	return g
}

func (g *grid) at(x, y int) float64 { return g.values[y*g.w+x] }

func (g *grid) inside(x, y int) bool { return g.at(x, y) >= g.level }

// pos maps a padded sample index to image coordinates.
func pos(x, y int) geom.Point {
	return geom.Pt(float64(x)-0.5, float64(y)-0.5)
}

// Edge ids: the horizontal edge (x,y)-(x+1,y) is 2*(y*w+x), the vertical
// edge (x,y)-(x,y+1) is 2*(y*w+x)+1.
func (g *grid) hEdge(x, y int) int { return 2 * (y*g.w + x) }
func (g *grid) vEdge(x, y int) int { return 2*(y*g.w+x) + 1 }

// crossing interpolates the level crossing along an edge id.
func (g *grid) crossing(id int) geom.Point {
	cell := id / 2
	x, y := cell%g.w, cell/g.w
	x2, y2 := x+1, y
	if id%2 == 1 {
		x2, y2 = x, y+1
	}
	a, b := g.at(x, y), g.at(x2, y2)
	t := (g.level - a) / (b - a)
	return pos(x, y).Lerp(pos(x2, y2), t)
}

// Extract returns every closed isoline of f at the given level. A sample
// counts as inside when its value is >= level. Rings come out in scan
// order of their first crossing; winding is not normalised.
func Extract(f *raster.AlphaField, level int) []Ring {
	if f == nil || f.Width == 0 || f.Height == 0 {
		return nil
	}
	g := newGrid(f, float64(level))
	next := make([]int, 2*g.w*g.h)
	for i := range next {
		next[i] = -1
	}

	for y := 0; y < g.h-1; y++ {
		for x := 0; x < g.w-1; x++ {
			g.cellSegments(x, y, func(from, to int) {
				next[from] = to
			})
		}
	}

	var rings []Ring
	for start := range next {
		if next[start] < 0 {
			continue
		}
		var ring Ring
		for id := start; next[id] >= 0; {
			ring = append(ring, g.crossing(id))
			nid := next[id]
			next[id] = -1
			id = nid
		}
		if ring = cleanRing(ring); len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// cellSegments emits the directed isoline segments of the cell whose
// top-left sample is (x,y).
//
// Walking the cell boundary clockwise (top, right, bottom, left), a
// crossing is an exit when the walk leaves the inside region and an entry
// when it enters it. Segments always run exit -> entry, so the shared
// crossing of two neighbouring cells is an exit in one and an entry in
// the other and every crossing has exactly one successor.
func (g *grid) cellSegments(x, y int, emit func(from, to int)) {
	corners := [4]bool{
		g.inside(x, y),
		g.inside(x+1, y),
		g.inside(x+1, y+1),
		g.inside(x, y+1),
	}
	edges := [4]int{
		g.hEdge(x, y),   // top: tl -> tr
		g.vEdge(x+1, y), // right: tr -> br
		g.hEdge(x, y+1), // bottom: br -> bl
		g.vEdge(x, y),   // left: bl -> tl
	}

	var entries, exits []int // indices into edges, in clockwise order
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		switch {
		case a && !b:
			exits = append(exits, i)
		case !a && b:
			entries = append(entries, i)
		}
	}

	switch len(exits) {
	case 0:
		return
	case 1:
		emit(edges[exits[0]], edges[entries[0]])
		return
	}

	// Saddle. Order the crossings clockwise starting from an entry so
	// they read E1 X1 E2 X2.
	e1, x1, e2, x2 := entries[0], exits[0], entries[1], exits[1]
	if x1 < e1 {
		x1, x2 = x2, x1
	}
	center := (g.at(x, y) + g.at(x+1, y) + g.at(x+1, y+1) + g.at(x, y+1)) / 4
	if center >= g.level {
		// Inside corners joined through the centre.
		emit(edges[x1], edges[e2])
		emit(edges[x2], edges[e1])
	} else {
		emit(edges[x1], edges[e1])
		emit(edges[x2], edges[e2])
	}
}

// cleanRing drops consecutive duplicate points, including a duplicate
// closing point.
func cleanRing(r Ring) Ring {
	const eps = 1e-9
	out := r[:0]
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1].Eq(p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Eq(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}
