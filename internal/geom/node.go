package geom

// Node is an editable path vertex. In and Out are offsets from Anchor to
// the incoming and outgoing control points; zero offsets make a corner.
type Node struct {
	Anchor Point
	In     Point
	Out    Point
}

// Corner returns a node with zero-length handles at p.
func Corner(p Point) Node {
	return Node{Anchor: p}
}

// HandleIn returns the absolute position of the incoming control point.
func (n Node) HandleIn() Point { return n.Anchor.Add(n.In) }

// HandleOut returns the absolute position of the outgoing control point.
func (n Node) HandleOut() Point { return n.Anchor.Add(n.Out) }

// Segment builds the cubic curve running from a to b.
func Segment(a, b Node) CubicBez {
	return CubicBez{P0: a.Anchor, P1: a.HandleOut(), P2: b.HandleIn(), P3: b.Anchor}
}

// Segments returns the cubic sequence of a node list. A closed list also
// yields the segment from the last node back to the first.
func Segments(nodes []Node, closed bool) []CubicBez {
	n := len(nodes)
	if n < 2 {
		return nil
	}
	count := n - 1
	if closed {
		count = n
	}
	out := make([]CubicBez, count)
	for i := 0; i < count; i++ {
		out[i] = Segment(nodes[i], nodes[(i+1)%n])
	}
	return out
}

// Bounds returns the tight bounds of the curve through nodes. A single
// node yields a degenerate rectangle at its anchor; no nodes yields EmptyRect.
func Bounds(nodes []Node, closed bool) Rect {
	bb := EmptyRect()
	for _, n := range nodes {
		bb = bb.Extend(n.Anchor)
	}
	for _, s := range Segments(nodes, closed) {
		bb = bb.Union(s.BoundingBox())
	}
	return bb
}
