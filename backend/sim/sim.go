// Package sim provides an in-memory backend for tests and headless runs.
package sim

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/terminal"
)

// Backend records drawn cells and replays injected events.
type Backend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []backend.Cell
	events chan terminal.Event
	done   chan struct{}
	once   sync.Once
	shows  int
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)

// New creates a w by h backend.
func New(w, h int) *Backend {
	b := &Backend{
		width:  w,
		height: h,
		cells:  make([]backend.Cell, w*h),
		events: make(chan terminal.Event, 64),
		done:   make(chan struct{}),
	}
	b.blank()
	return b
}

func (b *Backend) blank() {
	for i := range b.cells {
		b.cells[i] = backend.Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
}

// Init implements backend.Backend.
func (b *Backend) Init() error { return nil }

// Fini unblocks PollEvent. It is safe to call more than once.
func (b *Backend) Fini() {
	b.once.Do(func() { close(b.done) })
}

// Size implements backend.Backend.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// PollEvent implements backend.Backend.
func (b *Backend) PollEvent() terminal.Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return nil
	}
}

// SetContent implements backend.Backend.
func (b *Backend) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(x, y, backend.Cell{Rune: mainc, Style: style})
}

// SetRow implements backend.RowWriter.
func (b *Backend) SetRow(y, startX int, cells []backend.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range cells {
		b.setLocked(startX+i, y, c)
	}
}

func (b *Backend) setLocked(x, y int, c backend.Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = c
}

// Show implements backend.Backend.
func (b *Backend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() {}

// Shows returns how many frames were presented.
func (b *Backend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// InjectKey queues a key event.
func (b *Backend) InjectKey(key terminal.Key, r rune, ctrl, shift bool) {
	b.Inject(terminal.KeyEvent{Key: key, Rune: r, Ctrl: ctrl, Shift: shift})
}

// InjectRunes queues one plain key event per rune.
func (b *Backend) InjectRunes(s string) {
	for _, r := range s {
		b.InjectKey(terminal.KeyRune, r, false, false)
	}
}

// InjectResize resizes the backend and queues a resize event.
func (b *Backend) InjectResize(w, h int) {
	b.mu.Lock()
	b.width, b.height = w, h
	b.cells = make([]backend.Cell, w*h)
	b.blank()
	b.mu.Unlock()
	b.Inject(terminal.ResizeEvent{Width: w, Height: h})
}

// Inject queues any event.
func (b *Backend) Inject(ev terminal.Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// CellAt returns the cell at (x, y).
func (b *Backend) CellAt(x, y int) backend.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return backend.Cell{}
	}
	return b.cells[y*b.width+x]
}

// Capture returns the screen as text, one line per row with trailing spaces
// trimmed.
func (b *Backend) Capture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				x++
				continue
			}
			sb.WriteRune(r)
			x += max(runewidth.RuneWidth(r), 1)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// ContainsText reports whether any row contains s.
func (b *Backend) ContainsText(s string) bool {
	return strings.Contains(b.Capture(), s)
}
