package tcell

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/terminal"
)

func newSim(t *testing.T) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	if err := b.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(b.Fini)
	screen.SetSize(20, 4)
	return b, screen
}

func TestBackend_TranslatesKeys(t *testing.T) {
	b, screen := newSim(t)

	cases := []struct {
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want terminal.KeyEvent
	}{
		{tcell.KeyRune, 'a', tcell.ModNone, terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'}},
		{tcell.KeyRune, 'A', tcell.ModNone, terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'A', Shift: true}},
		{tcell.KeyEnter, 0, tcell.ModShift, terminal.KeyEvent{Key: terminal.KeyEnter, Shift: true}},
		{tcell.KeyEscape, 0, tcell.ModNone, terminal.KeyEvent{Key: terminal.KeyEscape}},
		{tcell.KeyCtrlF, 0, tcell.ModCtrl, terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'f', Ctrl: true}},
	}
	for i, tc := range cases {
		screen.InjectKey(tc.key, tc.r, tc.mod)
		got := b.PollEvent()
		if got != tc.want {
			t.Fatalf("case %d: got %#v want %#v", i, got, tc.want)
		}
	}
}

func TestBackend_DrawsContent(t *testing.T) {
	b, screen := newSim(t)
	b.SetContent(1, 0, 'x', nil, backend.DefaultStyle())
	b.Show()
	cells, w, _ := screen.GetContents()
	if got := cells[1].Runes; len(got) == 0 || got[0] != 'x' {
		t.Fatalf("expected x at column 1, got %v (width %d)", got, w)
	}
}
