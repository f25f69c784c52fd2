package state

import (
	"math"

	"StickerCut/internal/geom"
)

// HitKind classifies what lies under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitStroke
)

// Hit is the result of a hit test. For HitNode, Index is the node index;
// for HitStroke it is the index of the segment's starting node and Point
// is the closest location on the curve.
type Hit struct {
	Kind  HitKind
	Path  *Path
	Index int
	Point geom.Point
}

// NodeRef returns the node addressed by a HitNode result.
func (h Hit) NodeRef() NodeRef {
	return NodeRef{Path: h.Path, Index: h.Index}
}

// HitTest classifies p against node anchors first and path strokes second,
// within tolerance. Topmost paths win ties of equal distance. A document
// without paths never reports a hit.
func (d *Document) HitTest(p geom.Point, tolerance float64) Hit {
	best := Hit{Kind: HitNone}
	bestD := math.Inf(1)
	for i := len(d.paths) - 1; i >= 0; i-- {
		path := d.paths[i]
		for j, n := range path.Nodes {
			if dist := n.Anchor.Dist(p); dist <= tolerance && dist < bestD {
				best = Hit{Kind: HitNode, Path: path, Index: j, Point: n.Anchor}
				bestD = dist
			}
		}
	}
	if best.Kind == HitNode {
		return best
	}

	for i := len(d.paths) - 1; i >= 0; i-- {
		path := d.paths[i]
		for j, seg := range path.Segments() {
			if !seg.BoundingBox().Outset(tolerance).Contains(p) {
				continue
			}
			t, dist := seg.Nearest(p)
			if dist <= tolerance && dist < bestD {
				best = Hit{Kind: HitStroke, Path: path, Index: j, Point: seg.Eval(t)}
				bestD = dist
			}
		}
	}
	return best
}
