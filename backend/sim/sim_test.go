package sim

import (
	"testing"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/terminal"
)

func TestBackend_CaptureAndRows(t *testing.T) {
	b := New(6, 2)
	b.SetContent(0, 0, 'h', nil, backend.DefaultStyle())
	b.SetContent(1, 0, 'i', nil, backend.DefaultStyle())
	b.SetRow(1, 2, []backend.Cell{{Rune: 'o'}, {Rune: 'k'}})
	b.SetContent(99, 99, 'x', nil, backend.DefaultStyle())

	if got := b.Capture(); got != "hi\n  ok" {
		t.Fatalf("unexpected capture %q", got)
	}
	if !b.ContainsText("ok") || b.ContainsText("x") {
		t.Fatalf("unexpected ContainsText results")
	}
}

func TestBackend_EventsAndFini(t *testing.T) {
	b := New(2, 2)
	b.InjectRunes("ab")
	ev, ok := b.PollEvent().(terminal.KeyEvent)
	if !ok || ev.Rune != 'a' {
		t.Fatalf("unexpected first event %#v", ev)
	}
	b.PollEvent()
	b.Fini()
	b.Fini()
	if ev := b.PollEvent(); ev != nil {
		t.Fatalf("expected nil after Fini, got %#v", ev)
	}
}

func TestBackend_Resize(t *testing.T) {
	b := New(2, 2)
	b.InjectResize(4, 1)
	if w, h := b.Size(); w != 4 || h != 1 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if ev, ok := b.PollEvent().(terminal.ResizeEvent); !ok || ev.Width != 4 {
		t.Fatalf("expected resize event, got %#v", ev)
	}
}
