package history

import (
	"fmt"
	"testing"

	"github.com/litescript/ls-orrery/internal/scene"
)

func snap(name string) *scene.Scene {
	return scene.New([]scene.Object{{ID: "o", Name: name}}, nil)
}

func nameOf(t *testing.T, s *scene.Scene) string {
	t.Helper()
	o, ok := s.Object("o")
	if !ok {
		t.Fatal("snapshot lost object")
	}
	return o.Name
}

func TestPushCap(t *testing.T) {
	h := New(50)
	for i := range 60 {
		h.Push(snap(fmt.Sprint(i)))
	}
	if h.Len() != 50 {
		t.Fatalf("Len = %d, want 50", h.Len())
	}
	if h.Cursor() != 49 {
		t.Errorf("Cursor = %d, want 49", h.Cursor())
	}
	cur, _ := h.Current()
	if got := nameOf(t, cur); got != "59" {
		t.Errorf("current = %s, want 59", got)
	}
	for h.CanUndo() {
		h.Undo()
	}
	oldest, _ := h.Current()
	if got := nameOf(t, oldest); got != "10" {
		t.Errorf("oldest = %s, want 10", got)
	}
}

func TestUndoRedo(t *testing.T) {
	h := New(0)
	if _, ok := h.Undo(); ok {
		t.Error("undo on empty stack should fail")
	}
	h.Push(snap("a"))
	if h.CanUndo() {
		t.Error("single entry should not be undoable")
	}
	h.Push(snap("b"))
	h.Push(snap("c"))

	s, ok := h.Undo()
	if !ok || nameOf(t, s) != "b" {
		t.Fatalf("undo -> %v", ok)
	}
	s, ok = h.Redo()
	if !ok || nameOf(t, s) != "c" {
		t.Fatalf("redo -> %v", ok)
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo past the end should fail")
	}
}

func TestPushTruncatesFuture(t *testing.T) {
	h := New(10)
	h.Push(snap("a"))
	h.Push(snap("b"))
	h.Push(snap("c"))
	h.Undo()
	h.Undo()
	h.Push(snap("d"))

	if h.Len() != 2 || h.CanRedo() {
		t.Fatalf("Len = %d, CanRedo = %v", h.Len(), h.CanRedo())
	}
	s, _ := h.Undo()
	if nameOf(t, s) != "a" {
		t.Errorf("undo -> %s, want a", nameOf(t, s))
	}
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	h := New(10)
	live := snap("before")
	h.Push(live)
	live.UpdateObject("o", func(o *scene.Object) { o.Name = "after" })

	cur, _ := h.Current()
	if nameOf(t, cur) != "before" {
		t.Error("pushed snapshot followed live edits")
	}
	cur.UpdateObject("o", func(o *scene.Object) { o.Name = "mutated" })
	again, _ := h.Current()
	if nameOf(t, again) != "before" {
		t.Error("returned snapshot aliases stored entry")
	}
}
