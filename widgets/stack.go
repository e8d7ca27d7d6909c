package widgets

import "github.com/odvcencio/furry-hints/runtime"

// Stack lays its children out top to bottom.
type Stack struct {
	Base
	children []runtime.Widget
	gap      int
}

// NewStack creates a vertical stack.
func NewStack(children ...runtime.Widget) *Stack {
	return &Stack{children: children}
}

// SetGap sets the number of blank rows between children.
func (s *Stack) SetGap(gap int) {
	if s == nil {
		return
	}
	s.gap = max(gap, 0)
}

// Add appends a child.
func (s *Stack) Add(child runtime.Widget) {
	if s == nil || child == nil {
		return
	}
	s.children = append(s.children, child)
}

// Measure returns the summed child heights and the widest child.
func (s *Stack) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	for i, child := range s.children {
		cs := child.Measure(runtime.Loose(constraints.MaxWidth, constraints.MaxHeight))
		size.Width = max(size.Width, cs.Width)
		size.Height += cs.Height
		if i > 0 {
			size.Height += s.gap
		}
	}
	return constraints.Constrain(size)
}

// Layout assigns each child a full-width row band.
func (s *Stack) Layout(bounds runtime.Rect) {
	s.Base.Layout(bounds)
	y := bounds.Y
	bottom := bounds.Y + bounds.Height
	for _, child := range s.children {
		remaining := max(bottom-y, 0)
		cs := child.Measure(runtime.Loose(bounds.Width, remaining))
		h := min(cs.Height, remaining)
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h + s.gap
	}
}

// Render draws every child.
func (s *Stack) Render(ctx runtime.RenderContext) {
	for _, child := range s.children {
		child.Render(ctx)
	}
}

// HandleMessage offers msg to each child until one handles it.
func (s *Stack) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range s.children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

// ChildWidgets returns the children.
func (s *Stack) ChildWidgets() []runtime.Widget {
	return s.children
}
