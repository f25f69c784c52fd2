package state

import "StickerCut/internal/logging"

// Snapshot is an immutable copy of the document geometry at a commit.
type Snapshot struct {
	paths []Path
}

// Paths returns a fresh deep copy of the captured paths.
func (s Snapshot) Paths() []*Path {
	out := make([]*Path, len(s.paths))
	for i := range s.paths {
		out[i] = s.paths[i].Clone()
	}
	return out
}

// Len returns the number of captured paths.
func (s Snapshot) Len() int { return len(s.paths) }

// History is a linear undo log of snapshots with a cursor at the state
// the document currently shows. Committing while the cursor is behind the
// tail discards the redo branch.
type History struct {
	doc     *Document
	entries []Snapshot
	cursor  int
}

// NewHistory creates an empty history restoring into doc.
func NewHistory(doc *Document) *History {
	return &History{doc: doc, cursor: -1}
}

// Push appends s after the cursor, dropping any entries beyond it.
func (h *History) Push(s Snapshot) {
	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, s)
	h.cursor = len(h.entries) - 1
	logging.Logger().Debug("history commit", "cursor", h.cursor, "paths", s.Len())
}

// Commit pushes a snapshot of the document's current geometry.
func (h *History) Commit() {
	h.Push(h.doc.Snapshot())
}

// Undo steps back one entry and restores it. It reports false at the
// baseline or on an empty history.
func (h *History) Undo() bool {
	if h.cursor <= 0 {
		return false
	}
	h.cursor--
	h.doc.Restore(h.entries[h.cursor])
	return true
}

// Redo steps forward one entry and restores it. It reports false when
// the cursor is already at the tail.
func (h *History) Redo() bool {
	if h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	h.doc.Restore(h.entries[h.cursor])
	return true
}

// Reset forgets every entry.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *History) Cursor() int   { return h.cursor }
func (h *History) Len() int      { return len(h.entries) }

// At returns entry i.
func (h *History) At(i int) Snapshot { return h.entries[i] }
