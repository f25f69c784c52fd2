package state

import (
	"time"

	"StickerCut/internal/geom"
)

// SessionState is the edit session's interaction mode.
type SessionState int

const (
	Idle SessionState = iota
	Dragging
)

func (s SessionState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Action reports what a pointer press did to the document.
type Action int

const (
	ActionNone Action = iota
	ActionDeleteNode
	ActionStartDrag
	ActionInsertNode
)

// Default interaction constants.
const (
	DefaultHitTolerance = 5.0
	DefaultDoubleClick  = 300 * time.Millisecond
)

// Session turns pointer events into document edits and history commits.
type Session struct {
	doc  *Document
	hist *History

	tolerance   float64
	doubleClick time.Duration

	state    SessionState
	drag     NodeRef
	origin   geom.Point // anchor of the dragged node at the last commit
	last     geom.Point // last pointer position
	lastDown time.Time
}

// NewSession creates an idle session. Non-positive tolerance or window
// values fall back to the defaults.
func NewSession(doc *Document, hist *History, tolerance float64, doubleClick time.Duration) *Session {
	if tolerance <= 0 {
		tolerance = DefaultHitTolerance
	}
	if doubleClick <= 0 {
		doubleClick = DefaultDoubleClick
	}
	return &Session{doc: doc, hist: hist, tolerance: tolerance, doubleClick: doubleClick}
}

// State returns the current mode.
func (s *Session) State() SessionState { return s.state }

// Dragged returns the node being dragged, if any.
func (s *Session) Dragged() (NodeRef, bool) {
	return s.drag, s.state == Dragging
}

// PointerDown handles a button press at p occurring at time at.
func (s *Session) PointerDown(p geom.Point, button Button, at time.Time) Action {
	if button != ButtonPrimary {
		return ActionNone
	}
	if s.state == Dragging {
		s.PointerUp(s.last)
	}
	double := !s.lastDown.IsZero() && at.Sub(s.lastDown) < s.doubleClick
	s.lastDown = at
	s.last = p

	hit := s.doc.HitTest(p, s.tolerance)
	switch hit.Kind {
	case HitNode:
		if double {
			if s.doc.RemoveNode(hit.NodeRef()) {
				s.hist.Commit()
				return ActionDeleteNode
			}
			return ActionNone
		}
		s.startDrag(hit.NodeRef())
		return ActionStartDrag
	case HitStroke:
		ref, ok := s.doc.InsertNode(hit.Path, hit.Index+1, hit.Point)
		if !ok {
			return ActionNone
		}
		s.hist.Commit()
		s.startDrag(ref)
		return ActionInsertNode
	}
	return ActionNone
}

func (s *Session) startDrag(ref NodeRef) {
	s.state = Dragging
	s.drag = ref
	s.origin = ref.Node().Anchor
}

// PointerMove drags the active node by the pointer delta. It reports
// whether the document changed.
func (s *Session) PointerMove(p geom.Point) bool {
	delta := p.Sub(s.last)
	s.last = p
	if s.state != Dragging || delta.IsZero() {
		return false
	}
	return s.doc.MoveNode(s.drag, delta)
}

// PointerUp ends a drag at p. It reports whether a history entry was
// committed, which happens only when the node ended up somewhere new.
func (s *Session) PointerUp(p geom.Point) bool {
	if s.state != Dragging {
		s.last = p
		return false
	}
	s.PointerMove(p)
	ref := s.drag
	s.state, s.drag = Idle, NodeRef{}
	if !ref.Valid() || ref.Node().Anchor == s.origin {
		return false
	}
	s.hist.Commit()
	return true
}

// Reset abandons any drag without committing. Used before the document
// geometry is replaced from outside the session.
func (s *Session) Reset() {
	s.state, s.drag = Idle, NodeRef{}
}
