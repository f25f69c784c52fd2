// Package pipeline turns a raster into outline paths: alpha field, box
// blur, isoline extraction and curve fitting.
package pipeline

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"StickerCut/internal/contour"
	"StickerCut/internal/fit"
	"StickerCut/internal/raster"
	"StickerCut/internal/state"
)

// Output is the product of one generation run. Rings are kept so a
// simplification-only change can refit without re-tracing.
type Output struct {
	Rings []contour.Ring
	Paths []*state.Path
}

// Run executes the full pipeline for img with params.
func Run(ctx context.Context, img image.Image, params state.GenerationParams) (Output, error) {
	rings, err := Trace(ctx, img, params)
	if err != nil {
		return Output{}, err
	}
	paths, err := FitRings(ctx, rings, params.Simplification)
	if err != nil {
		return Output{}, err
	}
	return Output{Rings: rings, Paths: paths}, nil
}

// Trace builds the alpha field of img, blurs it and extracts the rings at
// params.Threshold.
func Trace(ctx context.Context, img image.Image, params state.GenerationParams) ([]contour.Ring, error) {
	field := raster.BuildAlphaField(img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	field = raster.Blur(field, params.BlurRadius)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return contour.Extract(field, params.Threshold), nil
}

// FitRings fits every ring with the given tolerance. Rings are fitted
// concurrently; the result keeps ring order and gives every path a fresh
// identity.
func FitRings(ctx context.Context, rings []contour.Ring, tolerance float64) ([]*state.Path, error) {
	paths := make([]*state.Path, len(rings))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ring := range rings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			paths[i] = state.NewPath(fit.Fit(ring, tolerance))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
