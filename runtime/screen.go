package runtime

import "github.com/odvcencio/furry-hints/backend"

// Layer is one entry in the screen's layer stack.
type Layer struct {
	Root       Widget
	FocusScope *FocusScope
	// Modal stops input from reaching lower layers.
	Modal bool
}

// Screen owns the layer stack and the render buffer. Layer 0 is the base
// widget tree; overlays such as hint badges are pushed above it.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
}

// NewScreen creates a screen of w by h cells.
func NewScreen(w, h int) *Screen {
	return &Screen{width: w, height: h, buffer: NewBuffer(w, h)}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	if s == nil {
		return
	}
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Bounds returns the full screen rectangle.
func (s *Screen) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Resize changes the dimensions and re-lays out every layer.
func (s *Screen) Resize(w, h int) {
	s.width, s.height = w, h
	s.buffer.Resize(w, h)
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(s.Bounds())
		}
	}
}

// Buffer returns the render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the base layer's widget tree.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{FocusScope: NewFocusScope()})
	}
	base := s.layers[0]
	detachTree(base.Root)
	base.Root = root
	attachTree(root, s.services, s.Bounds())
	s.refreshFocus(base)
	s.buffer.MarkAllDirty()
}

// Root returns the base layer's widget tree.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a layer on top of the stack.
func (s *Screen) PushLayer(root Widget, modal bool) {
	layer := &Layer{Root: root, FocusScope: NewFocusScope(), Modal: modal}
	s.layers = append(s.layers, layer)
	attachTree(root, s.services, s.Bounds())
	s.refreshFocus(layer)
}

// PopLayer removes the top layer. The base layer cannot be popped.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	top.FocusScope.ClearFocus()
	detachTree(top.Root)
	s.layers = s.layers[:len(s.layers)-1]
	s.buffer.MarkAllDirty()
	return true
}

// RemoveLayer removes the layer whose root is w, wherever it sits above the
// base layer.
func (s *Screen) RemoveLayer(w Widget) bool {
	for i := len(s.layers) - 1; i >= 1; i-- {
		if s.layers[i].Root != w {
			continue
		}
		layer := s.layers[i]
		layer.FocusScope.ClearFocus()
		detachTree(layer.Root)
		s.layers = append(s.layers[:i], s.layers[i+1:]...)
		s.buffer.MarkAllDirty()
		return true
	}
	return false
}

// HasLayer reports whether w is the root of a layer.
func (s *Screen) HasLayer(w Widget) bool {
	for _, layer := range s.layers {
		if layer.Root == w {
			return true
		}
	}
	return false
}

// TopLayer returns the topmost layer.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// FocusScope returns the base layer's focus scope. Overlay layers do not
// take focus away from the application tree.
func (s *Screen) FocusScope() *FocusScope {
	if s == nil || len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].FocusScope
}

// Render clears the buffer and draws layers bottom to top.
func (s *Screen) Render() {
	s.buffer.Clear()
	ctx := RenderContext{Buffer: s.buffer, Bounds: s.Bounds()}
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		ctx.Focused = i == 0
		layer.Root.Render(ctx)
	}
}

// HandleMessage offers msg to layers top to bottom until one handles it or a
// modal layer stops it.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			if layer.Modal {
				break
			}
			continue
		}
		result := layer.Root.HandleMessage(msg)
		for _, cmd := range result.Commands {
			s.handleCommand(cmd)
		}
		if result.Handled || layer.Modal {
			return result
		}
	}
	return Unhandled()
}

func (s *Screen) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case FocusNext:
		s.FocusScope().FocusNext()
	case FocusPrev:
		s.FocusScope().FocusPrev()
	case PopOverlay:
		s.PopLayer()
	case PushOverlay:
		s.PushLayer(c.Widget, c.Modal)
	}
}

func (s *Screen) refreshFocus(layer *Layer) {
	layer.FocusScope.Reset()
	RegisterFocusables(layer.FocusScope, layer.Root)
	if layer.FocusScope.Current() == nil {
		layer.FocusScope.FocusNext()
	}
}

// RenderContext carries the target buffer and bounds into Render.
type RenderContext struct {
	Buffer *Buffer
	// Focused is true for the layer that owns keyboard focus.
	Focused bool
	Bounds  Rect
}

// Sub returns a context for a child with its own bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{Buffer: ctx.Buffer, Focused: ctx.Focused, Bounds: bounds}
}

// Clear fills the context bounds with spaces.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
