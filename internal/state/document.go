// Package state owns the editable outline: the document with its paths,
// backing raster and style, the snapshot history, and the pointer-driven
// edit session. Everything here runs on a single goroutine; callers that
// receive work from other goroutines hand it over before touching state.
package state

import (
	"image"

	"StickerCut/internal/geom"
)

// Document is the outline being edited. Paths are kept in z-order.
type Document struct {
	paths  []*Path
	raster *Raster
	style  Style
	params GenerationParams
}

// NewDocument creates an empty document.
func NewDocument(style Style, params GenerationParams) *Document {
	return &Document{style: style, params: params}
}

// SetRaster installs a newly loaded image. The previous raster and all
// paths are dropped.
func (d *Document) SetRaster(img image.Image, visible bool, opacity float64) {
	b := img.Bounds()
	d.raster = &Raster{
		Image:   img,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Visible: visible,
		Opacity: opacity,
	}
	d.paths = nil
}

// Raster returns the backing raster, or nil before any image is loaded.
func (d *Document) Raster() *Raster { return d.raster }

// SetShowOriginal toggles raster visibility.
func (d *Document) SetShowOriginal(v bool) {
	if d.raster != nil {
		d.raster.Visible = v
	}
}

// SetRasterOpacity sets the display opacity of the raster.
func (d *Document) SetRasterOpacity(o float64) {
	if d.raster != nil {
		d.raster.Opacity = o
	}
}

func (d *Document) Style() Style        { return d.style }
func (d *Document) SetStyle(s Style)    { d.style = s }
func (d *Document) SetShowNodes(v bool) { d.style.ShowNodes = v }

func (d *Document) Params() GenerationParams     { return d.params }
func (d *Document) SetParams(p GenerationParams) { d.params = p }

// Paths returns the live path list. Callers must not retain it across edits.
func (d *Document) Paths() []*Path { return d.paths }

// ReplacePaths swaps in a freshly generated path set.
func (d *Document) ReplacePaths(paths []*Path) {
	d.paths = paths
}

// NodeCount returns the number of nodes over all paths.
func (d *Document) NodeCount() int {
	n := 0
	for _, p := range d.paths {
		n += len(p.Nodes)
	}
	return n
}

// Snapshot captures a deep copy of the current geometry.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{paths: make([]Path, len(d.paths))}
	for i, p := range d.paths {
		s.paths[i] = *p.Clone()
	}
	return s
}

// Restore replaces the geometry with a copy of s. Style and display
// toggles are live document state and are left as they are.
func (d *Document) Restore(s Snapshot) {
	d.paths = s.Paths()
}

// NodeRef addresses one node of a path held by the document.
type NodeRef struct {
	Path  *Path
	Index int
}

// Valid reports whether the reference still points at a node.
func (r NodeRef) Valid() bool {
	return r.Path != nil && r.Index >= 0 && r.Index < len(r.Path.Nodes)
}

// Node returns the referenced node. The reference must be valid.
func (r NodeRef) Node() geom.Node {
	return r.Path.Nodes[r.Index]
}

// owns reports whether p is one of the document's paths.
func (d *Document) owns(p *Path) bool {
	for _, q := range d.paths {
		if q == p {
			return true
		}
	}
	return false
}

// MoveNode translates the referenced anchor by delta; handles move with it.
func (d *Document) MoveNode(ref NodeRef, delta geom.Point) bool {
	if !ref.Valid() || !d.owns(ref.Path) {
		return false
	}
	n := &ref.Path.Nodes[ref.Index]
	n.Anchor = n.Anchor.Add(delta)
	return true
}

// InsertNode inserts a corner node at index at of p.
func (d *Document) InsertNode(p *Path, at int, pt geom.Point) (NodeRef, bool) {
	if p == nil || at < 0 || at > len(p.Nodes) || !d.owns(p) {
		return NodeRef{}, false
	}
	p.Nodes = append(p.Nodes, geom.Node{})
	copy(p.Nodes[at+1:], p.Nodes[at:])
	p.Nodes[at] = geom.Corner(pt)
	return NodeRef{Path: p, Index: at}, true
}

// RemoveNode deletes the referenced node. The path itself is kept even
// when it runs out of nodes.
func (d *Document) RemoveNode(ref NodeRef) bool {
	if !ref.Valid() || !d.owns(ref.Path) {
		return false
	}
	p := ref.Path
	p.Nodes = append(p.Nodes[:ref.Index], p.Nodes[ref.Index+1:]...)
	return true
}
