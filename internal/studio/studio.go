// Package studio ties the outline document to its generator, history,
// edit session and exporters. A Studio is driven from one goroutine; the
// generator's results are handed back to that goroutine through Apply.
package studio

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"StickerCut/internal/config"
	"StickerCut/internal/contour"
	"StickerCut/internal/export"
	"StickerCut/internal/geom"
	"StickerCut/internal/logging"
	"StickerCut/internal/pipeline"
	"StickerCut/internal/raster"
	"StickerCut/internal/state"
)

type Studio struct {
	ctx     context.Context
	doc     *state.Document
	hist    *state.History
	session *state.Session
	gen     *pipeline.Generator
	pen     export.Pen

	showOriginal  bool
	rasterOpacity float64

	// pending is the sequence number of the newest submitted run, or zero
	// when no run may be applied.
	pending uint64
	// rings of the applied generation and the params they were traced with
	rings       []contour.Ring
	ringsParams state.GenerationParams
	traced      bool

	// OnChange is called after every change to the document.
	OnChange func()
}

// New creates a studio configured by cfg. Generation runs stop when ctx
// is done.
func New(ctx context.Context, cfg config.Config) *Studio {
	doc := state.NewDocument(cfg.DocumentStyle(), cfg.Params())
	hist := state.NewHistory(doc)
	return &Studio{
		ctx:           ctx,
		doc:           doc,
		hist:          hist,
		session:       state.NewSession(doc, hist, cfg.Edit.HitTolerance, cfg.DoubleClick()),
		gen:           pipeline.NewGenerator(ctx),
		pen:           cfg.ExportPen(),
		showOriginal:  cfg.Style.ShowOriginal,
		rasterOpacity: cfg.Style.RasterOpacity,
	}
}

func (s *Studio) Document() *state.Document { return s.doc }
func (s *Studio) History() *state.History   { return s.hist }
func (s *Studio) Session() *state.Session   { return s.session }

// Results delivers finished generation runs for Apply.
func (s *Studio) Results() <-chan pipeline.Result { return s.gen.Results() }

func (s *Studio) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// LoadFile decodes the image at path and starts generating its outline.
func (s *Studio) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return s.LoadImage(f)
}

// LoadImage decodes r and starts generating its outline. A decode failure
// leaves the document untouched.
func (s *Studio) LoadImage(r io.Reader) error {
	img, format, err := raster.Decode(r)
	if err != nil {
		logging.Logger().Warn("image decode failed", "err", err)
		return err
	}
	b := img.Bounds()
	logging.Logger().Info("image loaded", "format", format, "width", b.Dx(), "height", b.Dy())
	s.SetImage(img)
	return nil
}

// SetImage replaces the raster, drops every path and the history, and
// submits a generation run. It returns the run's sequence number.
func (s *Studio) SetImage(img image.Image) uint64 {
	s.session.Reset()
	s.hist.Reset()
	s.doc.SetRaster(img, s.showOriginal, s.rasterOpacity)
	s.rings, s.traced = nil, false
	seq := s.submit()
	s.changed()
	return seq
}

func (s *Studio) submit() uint64 {
	r := s.doc.Raster()
	if r == nil {
		return 0
	}
	params := s.doc.Params()
	s.pending = s.gen.Submit(r.Image, params)
	logging.Logger().Debug("generation submitted", "seq", s.pending,
		"blur", params.BlurRadius, "threshold", params.Threshold, "simplification", params.Simplification)
	return s.pending
}

// Pending returns the sequence number of the run Apply waits for.
func (s *Studio) Pending() uint64 { return s.pending }

// Apply installs res if it is the newest result and the run Studio is
// waiting for. The paths are replaced, the history starts over from them
// and any drag in progress is abandoned.
func (s *Studio) Apply(res pipeline.Result) bool {
	fresh := s.gen.Accept(res)
	if !fresh || res.Seq != s.pending {
		logging.Logger().Debug("generation discarded", "seq", res.Seq, "pending", s.pending)
		return false
	}
	s.pending = 0
	if res.Err != nil {
		return false
	}
	s.rings, s.ringsParams, s.traced = res.Rings, res.Params, true
	s.install(res.Paths)
	logging.Logger().Info("outline applied", "seq", res.Seq, "paths", len(res.Paths), "nodes", s.doc.NodeCount())
	return true
}

func (s *Studio) install(paths []*state.Path) {
	s.session.Reset()
	s.hist.Reset()
	s.doc.ReplacePaths(paths)
	s.hist.Commit()
	s.changed()
}

// SetParams changes the generation parameters. A change to the
// simplification alone refits the rings already traced; anything else
// submits a new run.
func (s *Studio) SetParams(p state.GenerationParams) error {
	s.doc.SetParams(p)
	if s.doc.Raster() == nil {
		return nil
	}
	if s.traced && !s.ringsParams.NeedsExtraction(p) {
		return s.refit(p.Simplification)
	}
	s.submit()
	return nil
}

func (s *Studio) SetBlurRadius(r int) error {
	p := s.doc.Params()
	p.BlurRadius = r
	return s.SetParams(p)
}

func (s *Studio) SetThreshold(t int) error {
	p := s.doc.Params()
	p.Threshold = t
	return s.SetParams(p)
}

func (s *Studio) SetSimplification(tol float64) error {
	p := s.doc.Params()
	p.Simplification = tol
	return s.SetParams(p)
}

func (s *Studio) refit(tol float64) error {
	// A run still in flight was traced with other params.
	s.pending = 0
	start := time.Now()
	paths, err := pipeline.FitRings(s.ctx, s.rings, tol)
	if err != nil {
		return fmt.Errorf("refit: %w", err)
	}
	s.ringsParams.Simplification = tol
	s.install(paths)
	logging.Logger().Debug("outline refitted", "tolerance", tol, "nodes", s.doc.NodeCount(), "elapsed", time.Since(start))
	return nil
}

func (s *Studio) SetStyle(st state.Style) {
	s.doc.SetStyle(st)
	s.changed()
}

func (s *Studio) SetShowNodes(v bool) {
	s.doc.SetShowNodes(v)
	s.changed()
}

func (s *Studio) ShowOriginal() bool     { return s.showOriginal }
func (s *Studio) RasterOpacity() float64 { return s.rasterOpacity }

func (s *Studio) SetShowOriginal(v bool) {
	s.showOriginal = v
	s.doc.SetShowOriginal(v)
	s.changed()
}

func (s *Studio) SetRasterOpacity(o float64) {
	s.rasterOpacity = o
	s.doc.SetRasterOpacity(o)
	s.changed()
}

// PointerDown forwards a press in image coordinates to the edit session.
func (s *Studio) PointerDown(p geom.Point, b state.Button, at time.Time) state.Action {
	act := s.session.PointerDown(p, b, at)
	if act != state.ActionNone {
		s.changed()
	}
	return act
}

func (s *Studio) PointerMove(p geom.Point) {
	if s.session.PointerMove(p) {
		s.changed()
	}
}

func (s *Studio) PointerUp(p geom.Point) {
	if s.session.PointerUp(p) {
		s.changed()
	}
}

func (s *Studio) Undo() bool {
	s.session.Reset()
	if !s.hist.Undo() {
		return false
	}
	s.changed()
	return true
}

func (s *Studio) Redo() bool {
	s.session.Reset()
	if !s.hist.Redo() {
		return false
	}
	s.changed()
	return true
}

func (s *Studio) ExportAligned() (string, bool) { return export.Aligned(s.doc) }
func (s *Studio) ExportTrimmed() (string, bool) { return export.Trimmed(s.doc) }

func (s *Studio) ExportPage() ([]byte, bool, error)    { return export.Page(s.doc, s.pen) }
func (s *Studio) ExportPreview() ([]byte, bool, error) { return export.Preview(s.doc) }
