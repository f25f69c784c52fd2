package pipeline

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"StickerCut/internal/contour"
	"StickerCut/internal/logging"
	"StickerCut/internal/state"
)

// Result is a finished generation run tagged with its sequence number.
type Result struct {
	Seq    uint64
	Params state.GenerationParams
	Rings  []contour.Ring
	Paths  []*state.Path
	Err    error
}

// Generator runs the pipeline off the caller's goroutine. Every Submit
// gets a new sequence number; a run that is superseded before it finishes
// is cancelled and never reported. Results may still arrive out of order,
// so the receiver filters them through Accept.
type Generator struct {
	ctx     context.Context
	clock   state.Clock
	results chan Result

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewGenerator creates a generator whose runs stop when ctx is done.
func NewGenerator(ctx context.Context) *Generator {
	return &Generator{ctx: ctx, results: make(chan Result, 4)}
}

// Submit starts a run for img with params and returns its sequence number.
func (g *Generator) Submit(img image.Image, params state.GenerationParams) uint64 {
	seq := g.clock.Tick()

	g.mu.Lock()
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(g.ctx)
	g.cancel = cancel
	g.mu.Unlock()

	go func() {
		defer cancel()
		start := time.Now()
		out, err := Run(ctx, img, params)
		if errors.Is(err, context.Canceled) {
			logging.Logger().Debug("generation superseded", "seq", seq)
			return
		}
		res := Result{Seq: seq, Params: params, Rings: out.Rings, Paths: out.Paths, Err: err}
		if err != nil {
			logging.Logger().Warn("generation failed", "seq", seq, "err", err)
		} else {
			logging.Logger().Debug("generation finished",
				"seq", seq, "rings", len(out.Rings), "elapsed", time.Since(start))
		}
		select {
		case g.results <- res:
		case <-g.ctx.Done():
		}
	}()
	return seq
}

// Results delivers finished runs.
func (g *Generator) Results() <-chan Result { return g.results }

// Accept reports whether res is newer than every result accepted so far.
// Failed results are accepted too, so an older success cannot overwrite
// the document after a newer run failed; callers apply only successful
// accepted results.
func (g *Generator) Accept(res Result) bool {
	return g.clock.Observe(res.Seq)
}
