package state

import (
	"fmt"
	"image"
	"strings"

	"StickerCut/internal/geom"
)

// Path is one closed outline. Style is document-wide, so a path carries
// only geometry and its identity.
type Path struct {
	ID     string
	Nodes  []geom.Node
	Closed bool
}

// NewPath creates a closed path with a fresh identity.
func NewPath(nodes []geom.Node) *Path {
	return &Path{ID: newPathID(), Nodes: nodes, Closed: true}
}

// Clone returns a deep copy that keeps the same identity.
func (p *Path) Clone() *Path {
	c := *p
	c.Nodes = append([]geom.Node(nil), p.Nodes...)
	return &c
}

// Segments returns the path's cubic segments.
func (p *Path) Segments() []geom.CubicBez {
	return geom.Segments(p.Nodes, p.Closed)
}

// Raster is the backing image. Pixels are never modified after load;
// Visible and Opacity are display toggles only.
type Raster struct {
	Image   image.Image
	Width   int
	Height  int
	Visible bool
	Opacity float64
}

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB parses #rrggbb (the leading # is optional).
func ParseRGB(s string) (RGB, error) {
	var c RGB
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c, fmt.Errorf("colour %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}

// Style holds the document-wide drawing attributes.
type Style struct {
	StrokeColor   RGB
	StrokeOpacity float64
	StrokeWidth   float64
	FillColor     RGB
	FillOpacity   float64
	ShowNodes     bool
}

// GenerationParams are the inputs of the outline pipeline.
type GenerationParams struct {
	BlurRadius     int
	Threshold      int
	Simplification float64
}

// NeedsExtraction reports whether moving from p to next requires
// re-tracing the field rather than just refitting the cached rings.
func (p GenerationParams) NeedsExtraction(next GenerationParams) bool {
	return p.BlurRadius != next.BlurRadius || p.Threshold != next.Threshold
}
