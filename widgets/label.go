package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
)

// Alignment controls horizontal text placement.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label is static text. It is described as static text, so scans skip it.
type Label struct {
	Base
	text      string
	style     backend.Style
	alignment Alignment
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	return &Label{text: text, style: backend.DefaultStyle()}
}

// Text returns the label text.
func (l *Label) Text() string {
	if l == nil {
		return ""
	}
	return l.text
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	if l == nil {
		return
	}
	l.text = text
	l.Invalidate()
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) {
	if l == nil {
		return
	}
	l.style = style
}

// SetAlignment sets text alignment.
func (l *Label) SetAlignment(align Alignment) {
	if l == nil {
		return
	}
	l.alignment = align
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: textWidth(l.text), Height: 1})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	if l == nil {
		return
	}
	drawAligned(ctx.Buffer, l.bounds, l.text, l.alignment, l.style)
}

// AccessibleRole implements accessibility.Accessible.
func (l *Label) AccessibleRole() accessibility.Role { return accessibility.RoleStaticText }

// AccessibleLabel implements accessibility.Accessible.
func (l *Label) AccessibleLabel() string { return l.Text() }

// AccessibleDescription implements accessibility.Accessible.
func (l *Label) AccessibleDescription() string { return "" }

// AccessibleState implements accessibility.Accessible.
func (l *Label) AccessibleState() accessibility.StateSet { return accessibility.StateSet{} }

// AccessibleValue implements accessibility.Accessible.
func (l *Label) AccessibleValue() *accessibility.ValueInfo { return nil }

func drawAligned(buf *runtime.Buffer, bounds runtime.Rect, text string, align Alignment, style backend.Style) {
	if buf == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	text = truncateString(text, bounds.Width)
	x := bounds.X
	switch align {
	case AlignCenter:
		x += (bounds.Width - textWidth(text)) / 2
	case AlignRight:
		x += bounds.Width - textWidth(text)
	}
	buf.SetString(x, bounds.Y, text, style)
}
