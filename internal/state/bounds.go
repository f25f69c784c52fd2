package state

import (
	"math"

	"StickerCut/internal/geom"
)

// GeometryBounds returns the union of the bounds of every exportable path
// (paths with at least two nodes). ok is false when there is none.
func (d *Document) GeometryBounds() (r geom.Rect, ok bool) {
	r = geom.EmptyRect()
	for _, p := range d.ExportablePaths() {
		r = r.Union(geom.Bounds(p.Nodes, p.Closed))
		ok = true
	}
	return r, ok
}

// StrokeBounds extends GeometryBounds by half the stroke width.
func (d *Document) StrokeBounds() (geom.Rect, bool) {
	r, ok := d.GeometryBounds()
	if !ok {
		return r, false
	}
	return r.Outset(d.style.StrokeWidth / 2), true
}

// TrimBox is StrokeBounds padded by ceil(strokeWidth/2) on every side.
func (d *Document) TrimBox() (geom.Rect, bool) {
	r, ok := d.StrokeBounds()
	if !ok {
		return r, false
	}
	return r.Outset(math.Ceil(d.style.StrokeWidth / 2)), true
}

// ExportablePaths returns the paths that have enough nodes to draw a line.
func (d *Document) ExportablePaths() []*Path {
	out := make([]*Path, 0, len(d.paths))
	for _, p := range d.paths {
		if len(p.Nodes) >= 2 {
			out = append(out, p)
		}
	}
	return out
}
