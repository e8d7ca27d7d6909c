package runtime

import (
	"testing"

	"github.com/odvcencio/furry-hints/backend"
)

func TestBuffer_SetTracksDirtyCells(t *testing.T) {
	buf := NewBuffer(10, 3)
	buf.ClearDirty()
	style := backend.DefaultStyle()

	buf.Set(2, 1, 'x', style)
	buf.Set(5, 1, 'y', style)
	buf.Set(2, 1, 'x', style)
	if buf.DirtyCount() != 2 {
		t.Fatalf("expected 2 dirty cells, got %d", buf.DirtyCount())
	}
	if got := buf.DirtyRect(); got != (Rect{X: 2, Y: 1, Width: 4, Height: 1}) {
		t.Fatalf("unexpected dirty rect %+v", got)
	}

	var spans [][2]int
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		spans = append(spans, [2]int{startX, endX})
	})
	if len(spans) != 2 || spans[0] != [2]int{2, 3} || spans[1] != [2]int{5, 6} {
		t.Fatalf("unexpected spans %v", spans)
	}

	buf.ClearDirty()
	if buf.IsDirty() {
		t.Fatalf("expected clean buffer")
	}
}

func TestBuffer_SetStringHandlesWideRunes(t *testing.T) {
	buf := NewBuffer(10, 1)
	n := buf.SetString(0, 0, "a世b", backend.DefaultStyle())
	if n != 4 {
		t.Fatalf("expected 4 columns, got %d", n)
	}
	if got := buf.Row(0); got != "a世b" {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestBuffer_SetStringClips(t *testing.T) {
	buf := NewBuffer(4, 1)
	buf.SetString(2, 0, "hello", backend.DefaultStyle())
	if got := buf.Row(0); got != "  he" {
		t.Fatalf("unexpected row %q", got)
	}
	buf.SetString(0, 5, "nope", backend.DefaultStyle())
}

func TestBuffer_ResizeKeepsContent(t *testing.T) {
	buf := NewBuffer(4, 2)
	buf.SetString(0, 0, "abcd", backend.DefaultStyle())
	buf.ClearDirty()
	buf.Resize(2, 3)
	if got := buf.Row(0); got != "ab" {
		t.Fatalf("unexpected row %q", got)
	}
	if buf.DirtyCount() != 6 {
		t.Fatalf("expected all cells dirty after resize, got %d", buf.DirtyCount())
	}
}
