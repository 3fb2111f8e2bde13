package history

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dshills/richedit/internal/richtext"
)

func snap(s string, start, end int) Snapshot {
	return Snapshot{Doc: richtext.New(s, richtext.Attributes{}), Selection: richtext.NewRange(start, end)}
}

func change(name, before, after string) Change {
	return Change{Description: name, Before: snap(before, 0, 0), After: snap(after, 0, len(after))}
}

func TestUndoRedo(t *testing.T) {
	h := New(0)
	if h.MaxEntries() != DefaultMaxEntries {
		t.Fatalf("MaxEntries() = %d, want %d", h.MaxEntries(), DefaultMaxEntries)
	}

	h.Push(change("one", "", "a"))
	h.Push(change("two", "a", "ab"))

	s, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if s.Doc.String() != "a" {
		t.Errorf("Undo returned %q, want %q", s.Doc.String(), "a")
	}
	if !h.CanRedo() || h.RedoCount() != 1 {
		t.Error("redo should be available")
	}

	s, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if s.Doc.String() != "ab" || s.Selection != richtext.NewRange(0, 2) {
		t.Errorf("Redo returned %q %v", s.Doc.String(), s.Selection)
	}
	if h.CanRedo() {
		t.Error("redo stack should be empty")
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New(10)
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty history: %v", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty history: %v", err)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history should have nothing to undo or redo")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New(10)
	h.Push(change("one", "", "a"))
	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	h.Push(change("other", "", "b"))
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(3)
	for i := 0; i < 5; i++ {
		h.Push(change(fmt.Sprintf("edit %d", i), "", "x"))
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount() = %d, want 3", h.UndoCount())
	}
	info, ok := h.PeekUndo()
	if !ok || info.Description != "edit 4" {
		t.Errorf("PeekUndo() = %v, %v", info, ok)
	}
	if got := h.UndoInfo()[0].Description; got != "edit 2" {
		t.Errorf("oldest entry = %q, want edit 2", got)
	}

	h.SetMaxEntries(1)
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() after shrink = %d, want 1", h.UndoCount())
	}
}

func TestGroup(t *testing.T) {
	h := New(10)
	h.BeginGroup("format")
	h.BeginGroup("ignored")
	h.Push(change("bold", "a", "b"))
	h.Push(change("italic", "b", "c"))
	if !h.IsGrouping() {
		t.Error("should be grouping")
	}
	if h.UndoCount() != 0 {
		t.Error("grouped changes should not be visible before EndGroup")
	}
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	info, _ := h.PeekUndo()
	if info.Description != "format" {
		t.Errorf("group description = %q", info.Description)
	}
	s, _ := h.Undo()
	if s.Doc.String() != "a" {
		t.Errorf("undo of group returned %q, want a", s.Doc.String())
	}
	s, _ = h.Redo()
	if s.Doc.String() != "c" {
		t.Errorf("redo of group returned %q, want c", s.Doc.String())
	}
}

func TestUndoInsideGroup(t *testing.T) {
	h := New(10)
	h.Push(change("before", "", "a"))

	h.BeginGroup("script")
	h.Push(change("bold", "a", "b"))
	h.Push(change("italic", "b", "c"))
	s, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if s.Doc.String() != "a" {
		t.Errorf("undo inside group returned %q, want a", s.Doc.String())
	}
	if !h.IsGrouping() {
		t.Error("group should stay open after undo")
	}

	h.Push(change("underline", "a", "d"))
	h.EndGroup()
	if h.CanRedo() {
		t.Error("edit after undo should clear redo")
	}
	got := h.UndoInfo()
	if len(got) != 2 || got[0].Description != "before" || got[1].Description != "script" {
		t.Errorf("UndoInfo() = %+v", got)
	}
	s, _ = h.Undo()
	if s.Doc.String() != "a" {
		t.Errorf("undo of second unit returned %q, want a", s.Doc.String())
	}
}

func TestEmptyAndCancelledGroups(t *testing.T) {
	h := New(10)
	h.BeginGroup("nothing")
	h.EndGroup()
	if h.CanUndo() {
		t.Error("empty group should not be recorded")
	}

	h.BeginGroup("dropped")
	h.Push(change("bold", "a", "b"))
	h.CancelGroup()
	if h.CanUndo() || h.IsGrouping() {
		t.Error("cancelled group should not be recorded")
	}

	h.Push(change("x", "a", "b"))
	h.Clear()
	if h.CanUndo() {
		t.Error("Clear should empty the stacks")
	}
}

func TestConcurrentPush(t *testing.T) {
	h := New(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				h.Push(change("edit", "", "x"))
			}
		}()
	}
	wg.Wait()
	if h.UndoCount() != 100 {
		t.Errorf("UndoCount() = %d, want 100", h.UndoCount())
	}
}
