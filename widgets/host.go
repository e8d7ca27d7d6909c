package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
	"github.com/odvcencio/furry-hints/runtime"
)

// Host exposes a runtime screen as an accessibility host. The foreground root
// is the screen's base layer; overlay layers are never scanned.
type Host struct {
	screen     *runtime.Screen
	chrome     runtime.Widget
	foreground runtime.Widget
	tree       *tree
}

// NewHost creates a host over screen. chrome, usually a menu bar, is the root
// for chrome scans and may be nil.
func NewHost(screen *runtime.Screen, chrome runtime.Widget, cellW, cellH float64) *Host {
	h := &Host{screen: screen, chrome: chrome}
	h.tree = newTree(cellW, cellH, func() *runtime.FocusScope {
		return h.screen.FocusScope()
	})
	return h
}

// SetChrome replaces the chrome root.
func (h *Host) SetChrome(chrome runtime.Widget) {
	if h == nil {
		return
	}
	h.chrome = chrome
}

// SetForeground scopes window scans to w, such as the content area below a
// menu bar. nil restores the whole base layer.
func (h *Host) SetForeground(w runtime.Widget) {
	if h == nil {
		return
	}
	h.foreground = w
}

// ForegroundRoot implements accessibility.Host.
func (h *Host) ForegroundRoot() (accessibility.Node, error) {
	if h == nil || h.screen == nil || h.screen.Root() == nil {
		return nil, accessibility.ErrUnavailable
	}
	if h.foreground != nil {
		return h.tree.widget(h.foreground), nil
	}
	return h.tree.widget(h.screen.Root()), nil
}

// ChromeRoot implements accessibility.Host.
func (h *Host) ChromeRoot() (accessibility.Node, error) {
	if h == nil || h.chrome == nil {
		return nil, accessibility.ErrUnavailable
	}
	return h.tree.widget(h.chrome), nil
}

// ScreenRect implements accessibility.Host.
func (h *Host) ScreenRect() geom.Rect {
	if h == nil || h.screen == nil {
		return geom.Rect{}
	}
	return h.tree.frame(h.screen.Bounds())
}

// CellSize returns the logical size of one terminal cell.
func (h *Host) CellSize() (width, height float64) {
	if h == nil {
		return 1, 1
	}
	return h.tree.cellW, h.tree.cellH
}

// Cell converts a logical point back to a terminal cell.
func (h *Host) Cell(p geom.Point) (x, y int) {
	if h == nil {
		return int(p.X), int(p.Y)
	}
	return int(p.X / h.tree.cellW), int(p.Y / h.tree.cellH)
}

var _ accessibility.Host = (*Host)(nil)
