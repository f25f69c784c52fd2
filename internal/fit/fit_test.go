package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StickerCut/internal/contour"
	"StickerCut/internal/geom"
)

func circleRing(n int, r float64, wobble float64) contour.Ring {
	ring := make(contour.Ring, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		rr := r + wobble*math.Sin(7*a)
		ring[i] = geom.Pt(50+rr*math.Cos(a), 50+rr*math.Sin(a))
	}
	return ring
}

func squareRing(side, step float64) contour.Ring {
	var ring contour.Ring
	corners := []geom.Point{geom.Pt(0, 0), geom.Pt(side, 0), geom.Pt(side, side), geom.Pt(0, side)}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		for d := 0.0; d < side; d += step {
			ring = append(ring, c.Lerp(next, d/side))
		}
	}
	return ring
}

// maxDeviation samples every fitted segment and returns the largest
// distance to the closed source polyline.
func maxDeviation(nodes []geom.Node, ring contour.Ring) float64 {
	closed := append(append([]geom.Point{}, ring...), ring[0])
	worst := 0.0
	for _, seg := range geom.Segments(nodes, true) {
		for _, p := range seg.Flatten(20) {
			worst = math.Max(worst, geom.DistToPolyline(p, closed))
		}
	}
	return worst
}

func TestFitZeroToleranceIsPolyline(t *testing.T) {
	ring := circleRing(90, 20, 1.5)
	nodes := Fit(ring, 0)
	require.Len(t, nodes, len(ring))
	for i, n := range nodes {
		assert.Equal(t, ring[i], n.Anchor)
		assert.True(t, n.In.IsZero())
		assert.True(t, n.Out.IsZero())
	}
}

func TestFitNeverIncreasesNodeCount(t *testing.T) {
	rings := map[string]contour.Ring{
		"circle":   circleRing(200, 30, 0),
		"wobbly":   circleRing(240, 30, 4),
		"square":   squareRing(40, 1),
		"triangle": {geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 8)},
	}
	for name, ring := range rings {
		for _, tol := range []float64{0.5, 1, 2.5, 8} {
			nodes := Fit(ring, tol)
			assert.LessOrEqual(t, len(nodes), len(ring), "%s tol=%v", name, tol)
			assert.GreaterOrEqual(t, len(nodes), 2, "%s tol=%v", name, tol)
		}
	}
}

func TestFitStaysWithinTolerance(t *testing.T) {
	tests := []struct {
		name string
		ring contour.Ring
		tol  float64
	}{
		{"circle tight", circleRing(200, 30, 0), 0.5},
		{"circle loose", circleRing(200, 30, 0), 3},
		{"wobbly", circleRing(240, 30, 4), 1},
		{"square", squareRing(40, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Fit(tt.ring, tt.tol)
			assert.LessOrEqual(t, maxDeviation(nodes, tt.ring), tt.tol+1e-9)
		})
	}
}

func TestFitReducesSmoothRing(t *testing.T) {
	ring := circleRing(200, 30, 0)
	nodes := Fit(ring, 1)
	assert.Less(t, len(nodes), 40)

	curved := 0
	for _, n := range nodes {
		if !n.Out.IsZero() {
			curved++
		}
	}
	assert.Positive(t, curved, "a circle should be fitted with curved handles")
}

func TestFitSquareKeepsCorners(t *testing.T) {
	nodes := Fit(squareRing(40, 1), 1)
	require.Len(t, nodes, 4)
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(40, 40), geom.Pt(0, 40)}
	for i, n := range nodes {
		assert.True(t, n.Anchor.Eq(want[i], 1e-9), "node %d at %v", i, n.Anchor)
	}
}

func TestSimplifyClosedKeepsEndpoints(t *testing.T) {
	idx := simplifyClosed(squareRing(10, 1), 0.1)
	assert.Equal(t, []int{0, 10, 20, 30}, idx)
}
