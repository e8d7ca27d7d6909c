// Package overlay paints hint badges for a session.
package overlay

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/geom"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/widgets"
)

// ErrNoScreen is returned by Show when the overlay has no screen to draw on.
var ErrNoScreen = errors.New("overlay: no screen")

// CellMapper converts logical coordinates to terminal cells.
type CellMapper interface {
	Cell(p geom.Point) (x, y int)
}

// Terminal draws badges as a non-modal layer above a runtime screen.
type Terminal struct {
	widgets.Component

	screen     *runtime.Screen
	cells      CellMapper
	badges     []session.Badge
	visible    bool
	style      backend.Style
	typedStyle backend.Style
	logger     *slog.Logger
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithStyles sets the badge style and the style of already typed characters.
func WithStyles(label, typed backend.Style) Option {
	return func(t *Terminal) {
		t.style = label
		t.typedStyle = typed
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Terminal) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTerminal creates a badge layer for screen. cells maps badge anchors to
// cells; nil treats anchors as cell coordinates.
func NewTerminal(screen *runtime.Screen, cells CellMapper, opts ...Option) *Terminal {
	t := &Terminal{
		screen:     screen,
		cells:      cells,
		style:      backend.DefaultStyle().Foreground(backend.ColorBlack).Background(backend.ColorYellow).Bold(true),
		typedStyle: backend.DefaultStyle().Foreground(backend.ColorGray).Background(backend.ColorYellow),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Show replaces the visible badges, pushing the layer if needed.
func (t *Terminal) Show(badges []session.Badge) error {
	if t == nil || t.screen == nil {
		return ErrNoScreen
	}
	t.badges = append(t.badges[:0], badges...)
	if !t.visible {
		t.screen.PushLayer(t, false)
		t.visible = true
	}
	t.logger.Debug("overlay show", "count", len(badges))
	t.Invalidate()
	return nil
}

// Hide removes the layer.
func (t *Terminal) Hide() {
	if t == nil || !t.visible {
		return
	}
	t.badges = t.badges[:0]
	t.visible = false
	services := t.Services
	if t.screen != nil {
		t.screen.RemoveLayer(t)
	}
	services.Invalidate()
}

// IsVisible reports whether the layer is on screen.
func (t *Terminal) IsVisible() bool {
	return t != nil && t.visible
}

// Badges returns the badges currently shown.
func (t *Terminal) Badges() []session.Badge {
	if t == nil {
		return nil
	}
	return t.badges
}

// Measure fills the screen.
func (t *Terminal) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.MaxSize()
}

// Render paints each badge at its anchor cell, clipped to the layer.
func (t *Terminal) Render(ctx runtime.RenderContext) {
	if t == nil || !t.visible || ctx.Buffer == nil {
		return
	}
	bounds := t.Bounds()
	for _, b := range t.badges {
		x, y, w := t.place(b, bounds)
		if w == 0 {
			continue
		}
		col := x
		for i, r := range []rune(b.Label) {
			style := t.style
			if i < b.Typed {
				style = t.typedStyle
			}
			col += ctx.Buffer.SetString(col, y, string(r), style)
		}
	}
}

// place returns the top-left cell and width of a badge.
func (t *Terminal) place(b session.Badge, bounds runtime.Rect) (x, y, w int) {
	w = runewidth.StringWidth(b.Label)
	if w == 0 || bounds.Width < w || bounds.Height <= 0 {
		return 0, 0, 0
	}
	x, y = t.cell(b.Anchor)
	if !b.Below && b.Anchor.Y == b.Target.Y {
		// Anchored on the target's top edge: sit on the row above it.
		y--
	}
	x -= w / 2
	x = min(max(x, bounds.X), bounds.X+bounds.Width-w)
	y = min(max(y, bounds.Y), bounds.Y+bounds.Height-1)
	return x, y, w
}

func (t *Terminal) cell(p geom.Point) (int, int) {
	if t.cells == nil {
		return int(p.X), int(p.Y)
	}
	return t.cells.Cell(p)
}

var _ session.Overlay = (*Terminal)(nil)
