package studio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StickerCut/internal/config"
	"StickerCut/internal/geom"
	"StickerCut/internal/pipeline"
	"StickerCut/internal/raster"
	"StickerCut/internal/state"
)

func sticker() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(img, image.Rect(30, 30, 70, 70), image.NewUniform(color.NRGBA{R: 90, A: 255}), image.Point{}, draw.Src)
	return img
}

func newStudio(t *testing.T) *Studio {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cfg := config.Default()
	cfg.Generation = config.Generation{BlurRadius: 2, Threshold: 50, Simplification: 1}
	return New(ctx, cfg)
}

// await applies results until no run is pending.
func await(t *testing.T, s *Studio) {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for s.Pending() != 0 {
		select {
		case res := <-s.Results():
			s.Apply(res)
		case <-timeout:
			t.Fatal("generation did not finish")
		}
	}
}

func loaded(t *testing.T) *Studio {
	t.Helper()
	s := newStudio(t)
	require.NotZero(t, s.SetImage(sticker()))
	await(t, s)
	require.Len(t, s.Document().Paths(), 1)
	return s
}

func TestLoadImageDecodeFailure(t *testing.T) {
	s := newStudio(t)
	err := s.LoadImage(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, raster.ErrDecode)
	assert.Nil(t, s.Document().Raster())
	assert.Zero(t, s.Pending())
}

func TestGenerationInstallsBaseline(t *testing.T) {
	s := loaded(t)
	assert.Equal(t, 1, s.History().Len())
	assert.Equal(t, 0, s.History().Cursor())
	assert.False(t, s.Undo())
	assert.Equal(t, 100, s.Document().Raster().Width)
}

func TestApplyOnlyNewestPendingRun(t *testing.T) {
	s := loaded(t)
	before := s.Document().Snapshot()

	s.pending = 10
	stale := pipeline.Result{Seq: 9, Paths: []*state.Path{state.NewPath(nil)}}
	assert.False(t, s.Apply(stale))
	assert.Equal(t, before, s.Document().Snapshot())

	failed := pipeline.Result{Seq: 10, Err: assert.AnError}
	assert.False(t, s.Apply(failed))
	assert.Equal(t, before, s.Document().Snapshot())
	assert.Zero(t, s.Pending())

	s.pending = 12
	assert.False(t, s.Apply(pipeline.Result{Seq: 11}), "not the run being waited for")
	assert.False(t, s.Apply(pipeline.Result{Seq: 10}), "already observed")
	assert.True(t, s.Apply(pipeline.Result{Seq: 12}))
	assert.Empty(t, s.Document().Paths())
	assert.Equal(t, 1, s.History().Len())
}

func TestSimplificationRefitsWithoutTracing(t *testing.T) {
	s := loaded(t)
	changes := 0
	s.OnChange = func() { changes++ }

	require.NoError(t, s.SetSimplification(0))
	assert.Zero(t, s.Pending(), "no new run")
	assert.Equal(t, 1, changes)
	require.Len(t, s.Document().Paths(), 1)
	assert.Equal(t, len(s.rings[0]), s.Document().NodeCount())
	assert.Equal(t, 1, s.History().Len())
}

func TestRefitDropsRunInFlight(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetThreshold(60))
	seq := s.Pending()
	require.NotZero(t, seq)

	require.NoError(t, s.SetThreshold(50))
	assert.Zero(t, s.Pending())
	refitted := s.Document().Snapshot()

	select {
	case res := <-s.Results():
		assert.Equal(t, seq, res.Seq)
		assert.False(t, s.Apply(res))
	case <-time.After(10 * time.Second):
		t.Fatal("no result")
	}
	assert.Equal(t, refitted, s.Document().Snapshot())
}

func TestNewGenerationResetsHistory(t *testing.T) {
	s := loaded(t)
	n := s.Document().Paths()[0].Nodes[0].Anchor
	at := time.Unix(10, 0)
	require.Equal(t, state.ActionStartDrag, s.PointerDown(n, state.ButtonPrimary, at))
	s.PointerMove(n.Add(geom.Pt(4, 4)))
	s.PointerUp(n.Add(geom.Pt(4, 4)))
	require.Equal(t, 2, s.History().Len())

	require.NoError(t, s.SetBlurRadius(3))
	await(t, s)
	assert.Equal(t, 1, s.History().Len())
	assert.Equal(t, 3, s.Document().Params().BlurRadius)
}

func TestEditUndoRedo(t *testing.T) {
	s := loaded(t)
	baseline := s.Document().Snapshot()
	n := s.Document().Paths()[0].Nodes[0].Anchor

	changes := 0
	s.OnChange = func() { changes++ }
	s.PointerDown(n, state.ButtonPrimary, time.Unix(10, 0))
	s.PointerMove(n.Add(geom.Pt(0, -6)))
	s.PointerUp(n.Add(geom.Pt(0, -6)))
	assert.Equal(t, 3, changes)
	moved := s.Document().Snapshot()

	require.True(t, s.Undo())
	assert.Equal(t, baseline, s.Document().Snapshot())
	require.True(t, s.Redo())
	assert.Equal(t, moved, s.Document().Snapshot())
	assert.False(t, s.Redo())
}

func TestUndoAbandonsDrag(t *testing.T) {
	s := loaded(t)
	n := s.Document().Paths()[0].Nodes[0].Anchor
	s.PointerDown(n, state.ButtonPrimary, time.Unix(10, 0))
	s.PointerMove(n.Add(geom.Pt(9, 0)))
	assert.False(t, s.Undo())
	assert.Equal(t, state.Idle, s.Session().State())
}

func TestDisplayToggles(t *testing.T) {
	s := loaded(t)
	s.SetShowOriginal(false)
	s.SetRasterOpacity(0.25)
	s.SetShowNodes(false)
	r := s.Document().Raster()
	assert.False(t, r.Visible)
	assert.Equal(t, 0.25, r.Opacity)
	assert.False(t, s.Document().Style().ShowNodes)

	// Toggles carry over to the next image.
	s.SetImage(sticker())
	assert.False(t, s.Document().Raster().Visible)
	assert.Equal(t, 0.25, s.Document().Raster().Opacity)
	await(t, s)
}

func TestExports(t *testing.T) {
	s := newStudio(t)
	_, ok := s.ExportTrimmed()
	assert.False(t, ok)
	_, ok, err := s.ExportPage()
	assert.NoError(t, err)
	assert.False(t, ok)

	s = loaded(t)
	svg, ok := s.ExportAligned()
	require.True(t, ok)
	assert.Contains(t, svg, `viewBox="0 0 100 100"`)
	_, ok = s.ExportTrimmed()
	assert.True(t, ok)
	pdf, ok, err := s.ExportPage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, pdf)
	png, ok, err := s.ExportPreview()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, png)
}
