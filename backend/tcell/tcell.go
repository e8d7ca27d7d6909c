// Package tcell implements backend.Backend on a tcell screen.
package tcell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/terminal"
)

// Backend draws to a tcell screen.
type Backend struct {
	screen tcell.Screen
}

var _ backend.Backend = (*Backend)(nil)

// New creates a backend on the process terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Screen returns the underlying screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init implements backend.Backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	b.screen.SetStyle(backend.DefaultStyle())
	b.screen.Clear()
	return nil
}

// Fini implements backend.Backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size implements backend.Backend.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// SetContent implements backend.Backend.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// Show implements backend.Backend.
func (b *Backend) Show() {
	b.screen.Show()
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// Interrupt wakes PollEvent with an InterruptEvent.
func (b *Backend) Interrupt(data any) {
	_ = b.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// PollEvent implements backend.Backend. Events the runtime has no use for,
// such as mouse and focus events, are skipped.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			return translateKey(e)
		case *tcell.EventResize:
			w, h := e.Size()
			return terminal.ResizeEvent{Width: w, Height: h}
		case *tcell.EventInterrupt:
			return terminal.InterruptEvent{Data: e.Data()}
		}
	}
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyF1:         terminal.KeyF1,
	tcell.KeyF2:         terminal.KeyF2,
	tcell.KeyF3:         terminal.KeyF3,
	tcell.KeyF4:         terminal.KeyF4,
	tcell.KeyF5:         terminal.KeyF5,
	tcell.KeyF6:         terminal.KeyF6,
	tcell.KeyF7:         terminal.KeyF7,
	tcell.KeyF8:         terminal.KeyF8,
	tcell.KeyF9:         terminal.KeyF9,
	tcell.KeyF10:        terminal.KeyF10,
	tcell.KeyF11:        terminal.KeyF11,
	tcell.KeyF12:        terminal.KeyF12,
}

// translateKey maps a tcell key event. Control letters arrive as dedicated
// tcell keys and are returned as the letter with Ctrl set.
func translateKey(e *tcell.EventKey) terminal.Event {
	mods := e.Modifiers()
	out := terminal.KeyEvent{
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	k := e.Key()
	if k == tcell.KeyRune {
		out.Key = terminal.KeyRune
		out.Rune = e.Rune()
		if out.Rune >= 'A' && out.Rune <= 'Z' {
			out.Shift = true
		}
		return out
	}
	if mapped, ok := keyMap[k]; ok {
		out.Key = mapped
		return out
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		out.Key = terminal.KeyRune
		out.Rune = 'a' + rune(k-tcell.KeyCtrlA)
		out.Ctrl = true
		return out
	}
	out.Key = terminal.KeyNone
	return out
}
