package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StickerCut/internal/contour"
	"StickerCut/internal/geom"
	"StickerCut/internal/state"
)

func squareImage(w, h int, r image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, r, image.NewUniform(color.NRGBA{G: 200, A: 255}), image.Point{}, draw.Src)
	return img
}

func TestRunOpaqueSquare(t *testing.T) {
	img := squareImage(100, 100, image.Rect(30, 30, 70, 70))
	out, err := Run(context.Background(), img, state.GenerationParams{BlurRadius: 5, Threshold: 128, Simplification: 1})
	require.NoError(t, err)
	require.Len(t, out.Rings, 1)
	require.Len(t, out.Paths, 1)

	p := out.Paths[0]
	assert.True(t, p.Closed)
	assert.GreaterOrEqual(t, len(p.Nodes), 4)
	assert.Less(t, len(p.Nodes), len(out.Rings[0]))

	b := geom.Bounds(p.Nodes, true)
	assert.InDelta(t, 30, b.Min.X, 2)
	assert.InDelta(t, 30, b.Min.Y, 2)
	assert.InDelta(t, 70, b.Max.X, 2)
	assert.InDelta(t, 70, b.Max.Y, 2)
}

func TestRunTransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	out, err := Run(context.Background(), img, state.GenerationParams{BlurRadius: 2, Threshold: 10, Simplification: 1})
	require.NoError(t, err)
	assert.Empty(t, out.Rings)
	assert.Empty(t, out.Paths)
}

func TestRunFullyOpaqueImage(t *testing.T) {
	img := squareImage(20, 20, image.Rect(0, 0, 20, 20))
	out, err := Run(context.Background(), img, state.GenerationParams{BlurRadius: 3, Threshold: 128})
	require.NoError(t, err)
	require.Len(t, out.Paths, 1, "the padded border closes the outline")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := squareImage(50, 50, image.Rect(10, 10, 40, 40))
	_, err := Run(ctx, img, state.GenerationParams{BlurRadius: 1, Threshold: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitRingsKeepsOrder(t *testing.T) {
	var rings []contour.Ring
	for i := 0; i < 12; i++ {
		x := float64(i * 20)
		rings = append(rings, contour.Ring{
			geom.Pt(x, 0), geom.Pt(x+10, 0), geom.Pt(x+10, 10), geom.Pt(x, 10),
		})
	}
	paths, err := FitRings(context.Background(), rings, 0)
	require.NoError(t, err)
	require.Len(t, paths, len(rings))

	seen := map[string]bool{}
	for i, p := range paths {
		require.Len(t, p.Nodes, 4)
		assert.Equal(t, rings[i][0], p.Nodes[0].Anchor)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestGeneratorDeliversNewest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := NewGenerator(ctx)

	img := squareImage(60, 60, image.Rect(10, 10, 50, 50))
	first := g.Submit(img, state.GenerationParams{BlurRadius: 2, Threshold: 128, Simplification: 1})
	second := g.Submit(img, state.GenerationParams{BlurRadius: 4, Threshold: 128, Simplification: 1})
	require.Greater(t, second, first)

	timeout := time.After(10 * time.Second)
	for {
		select {
		case res := <-g.Results():
			if res.Seq != second {
				continue
			}
			require.NoError(t, res.Err)
			assert.True(t, g.Accept(res))
			assert.Equal(t, 4, res.Params.BlurRadius)
			assert.Len(t, res.Paths, 1)

			assert.False(t, g.Accept(Result{Seq: first}), "older results are stale")
			return
		case <-timeout:
			t.Fatal("no result for the newest submission")
		}
	}
}

func TestGeneratorFailedResultIsObserved(t *testing.T) {
	g := NewGenerator(context.Background())
	assert.True(t, g.Accept(Result{Seq: 3, Err: assert.AnError}))
	assert.False(t, g.Accept(Result{Seq: 2}))
	assert.True(t, g.Accept(Result{Seq: 4}))
}
