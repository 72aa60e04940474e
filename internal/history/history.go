// Package history keeps a bounded linear undo/redo ledger of scene snapshots.
package history

import "github.com/litescript/ls-orrery/internal/scene"

// DefaultDepth is the number of snapshots retained when none is configured.
const DefaultDepth = 50

// Stack is a linear undo/redo ledger. Entries are deep copies, so later edits
// to the live scene never reach into history.
type Stack struct {
	entries []*scene.Scene
	cursor  int
	depth   int
}

// New creates a stack retaining at most depth snapshots.
func New(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{cursor: -1, depth: depth}
}

// Push drops any redo entries, appends a copy of s and moves the cursor to
// it. The oldest entry is evicted beyond the depth limit.
func (h *Stack) Push(s *scene.Scene) {
	h.entries = append(h.entries[:h.cursor+1], s.Clone())
	if over := len(h.entries) - h.depth; over > 0 {
		clear(h.entries[:over])
		h.entries = h.entries[over:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps back and returns a copy of the snapshot there.
func (h *Stack) Undo() (*scene.Scene, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps forward and returns a copy of the snapshot there.
func (h *Stack) Redo() (*scene.Scene, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// Current returns a copy of the snapshot at the cursor.
func (h *Stack) Current() (*scene.Scene, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.entries[h.cursor].Clone(), true
}

func (h *Stack) CanUndo() bool { return h.cursor > 0 }
func (h *Stack) CanRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *Stack) Len() int      { return len(h.entries) }
func (h *Stack) Cursor() int   { return h.cursor }

// Reset discards every entry.
func (h *Stack) Reset() {
	h.entries = nil
	h.cursor = -1
}
