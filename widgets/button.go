package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/terminal"
)

// Button is a single-line push button.
type Button struct {
	FocusableBase
	accessibility.Base

	ID         string
	onPress    func()
	presses    int
	style      backend.Style
	focusStyle backend.Style
}

// NewButton creates a button. onPress may be nil.
func NewButton(label string, onPress func()) *Button {
	b := &Button{
		ID:         label,
		onPress:    onPress,
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Reverse(true),
	}
	b.Base.Role = accessibility.RoleButton
	b.Base.Label = label
	return b
}

// SetOnPress replaces the press callback.
func (b *Button) SetOnPress(fn func()) {
	if b == nil {
		return
	}
	b.onPress = fn
}

// SetDisabled updates disabled state.
func (b *Button) SetDisabled(disabled bool) {
	if b == nil {
		return
	}
	b.Base.State.Disabled = disabled
	b.Invalidate()
}

// Presses returns how many times the button fired.
func (b *Button) Presses() int {
	if b == nil {
		return 0
	}
	return b.presses
}

// Press fires the button unless it is disabled.
func (b *Button) Press() bool {
	if b == nil || b.Base.State.Disabled {
		return false
	}
	b.presses++
	if b.onPress != nil {
		b.onPress()
	}
	b.Invalidate()
	return true
}

// Measure returns the desired size.
func (b *Button) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: textWidth(b.Base.Label) + 4, Height: 1})
}

// Render draws the button.
func (b *Button) Render(ctx runtime.RenderContext) {
	if b == nil {
		return
	}
	bounds := b.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	style := b.style
	if b.focused {
		style = b.focusStyle
	}
	if b.Base.State.Disabled {
		style = style.Dim(true)
	}
	text := "[ " + truncateString(b.Base.Label, bounds.Width-4) + " ]"
	writePadded(ctx.Buffer, bounds.X, bounds.Y, bounds.Width, text, style)
}

// HandleMessage presses the focused button on Enter or space.
func (b *Button) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if b == nil || !b.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	if key.Key == terminal.KeyEnter || (key.Key == terminal.KeyRune && key.Rune == ' ') {
		if b.Press() {
			return runtime.WithCommand(runtime.Activated{ID: b.ID, Action: string(accessibility.ActionPress)})
		}
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// AccessibleActions implements Actionable.
func (b *Button) AccessibleActions() []accessibility.Action {
	return []accessibility.Action{accessibility.ActionPress}
}

// PerformAction implements Actionable.
func (b *Button) PerformAction(action accessibility.Action) error {
	if b == nil {
		return accessibility.ErrUnavailable
	}
	switch action {
	case accessibility.ActionPress, accessibility.ActionActivate:
		if !b.Press() {
			return accessibility.ErrDisabled
		}
		return nil
	}
	return accessibility.ErrUnsupported
}
