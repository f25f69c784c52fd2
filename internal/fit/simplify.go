package fit

import (
	"sort"

	"StickerCut/internal/contour"
	"StickerCut/internal/geom"
)

// simplifyClosed runs Douglas-Peucker on a closed ring and returns the
// kept vertex indices in ring order. The ring is split at vertex 0 and the
// vertex farthest from it, and each half is simplified independently.
func simplifyClosed(ring contour.Ring, tol float64) []int {
	n := len(ring)
	far, farD := 0, -1.0
	for i := 1; i < n; i++ {
		if d := ring[i].Dist(ring[0]); d > farD {
			far, farD = i, d
		}
	}
	if far == 0 {
		return []int{0}
	}

	keep := make([]bool, n)
	keep[0], keep[far] = true, true
	dp(ring, 0, far, tol, keep)
	dp(ring, far, n, tol, keep)

	idx := make([]int, 0, n)
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}

// dp marks the vertices strictly between a and b (b may equal len(ring),
// meaning vertex 0) that are needed to stay within tol.
func dp(ring contour.Ring, a, b int, tol float64, keep []bool) {
	if b-a < 2 {
		return
	}
	pa, pb := ring[a], ring[b%len(ring)]
	split, maxD := -1, tol
	for i := a + 1; i < b; i++ {
		if d := geom.DistToSegment(ring[i], pa, pb); d > maxD {
			split, maxD = i, d
		}
	}
	if split < 0 {
		return
	}
	keep[split] = true
	dp(ring, a, split, tol, keep)
	dp(ring, split, b, tol, keep)
}
