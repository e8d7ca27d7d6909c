package runtime

// Rect is a rectangle in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Intersect returns the overlap of r and o, or an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound a widget's measured size.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Loose returns constraints with no minimum.
func Loose(w, h int) Constraints {
	return Constraints{MaxWidth: w, MaxHeight: h}
}

// MaxSize returns the largest size c allows.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Constrain clamps s into c.
func (c Constraints) Constrain(s Size) Size {
	if c.MaxWidth > 0 && s.Width > c.MaxWidth {
		s.Width = c.MaxWidth
	}
	if c.MaxHeight > 0 && s.Height > c.MaxHeight {
		s.Height = c.MaxHeight
	}
	s.Width = max(s.Width, c.MinWidth)
	s.Height = max(s.Height, c.MinHeight)
	return s
}

// Widget is a node in the terminal widget tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider exposes child widgets for traversal.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes a widget's laid out bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// HandleResult reports whether a message was handled and which commands it
// produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a handled result.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns an unhandled result.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a handled result carrying cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// Walk visits root and its descendants depth-first. Returning false from fn
// skips the widget's children.
func Walk(root Widget, fn func(Widget) bool) {
	if root == nil || fn == nil {
		return
	}
	if !fn(root) {
		return
	}
	if parent, ok := root.(ChildProvider); ok {
		for _, child := range parent.ChildWidgets() {
			Walk(child, fn)
		}
	}
}
