package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/terminal"
)

// RadioGroup manages a set of mutually exclusive options.
type RadioGroup struct {
	selected *state.Signal[int]
	options  []*Radio
	onChange func(index int)
}

// NewRadioGroup creates an empty group with nothing selected.
func NewRadioGroup() *RadioGroup {
	selected := state.NewComparable(-1)
	return &RadioGroup{selected: selected}
}

// Selected returns the selected index, or -1.
func (g *RadioGroup) Selected() int {
	if g == nil || g.selected == nil {
		return -1
	}
	return g.selected.Get()
}

// SelectedSignal exposes the selection for subscribers.
func (g *RadioGroup) SelectedSignal() state.Readable[int] {
	if g == nil {
		return nil
	}
	return g.selected
}

// SetSelected updates the selected index.
func (g *RadioGroup) SetSelected(index int) {
	if g == nil || g.selected == nil {
		return
	}
	if !g.selected.Set(index) {
		return
	}
	for _, opt := range g.options {
		opt.syncState()
	}
	if g.onChange != nil {
		g.onChange(index)
	}
}

// OnChange registers a selection callback.
func (g *RadioGroup) OnChange(fn func(index int)) {
	if g == nil {
		return
	}
	g.onChange = fn
}

// Radio is a single option in a RadioGroup.
type Radio struct {
	FocusableBase
	accessibility.Base

	group      *RadioGroup
	index      int
	style      backend.Style
	focusStyle backend.Style
}

// NewRadio creates a radio option and registers it with the group.
func NewRadio(label string, group *RadioGroup) *Radio {
	r := &Radio{
		group:      group,
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Reverse(true),
	}
	r.Base.Role = accessibility.RoleRadio
	r.Base.Label = label
	if group != nil {
		r.index = len(group.options)
		group.options = append(group.options, r)
	}
	r.syncState()
	return r
}

// SetDisabled updates disabled state.
func (r *Radio) SetDisabled(disabled bool) {
	if r == nil {
		return
	}
	r.Base.State.Disabled = disabled
}

// Selected reports whether this option is the group's selection.
func (r *Radio) Selected() bool {
	if r == nil || r.group == nil {
		return false
	}
	return r.group.Selected() == r.index
}

// Measure returns the desired size.
func (r *Radio) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: 4 + textWidth(r.Base.Label), Height: 1})
}

// Render draws the radio.
func (r *Radio) Render(ctx runtime.RenderContext) {
	if r == nil {
		return
	}
	bounds := r.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	marker := "( )"
	if r.Selected() {
		marker = "(*)"
	}
	text := marker + " " + truncateString(r.Base.Label, bounds.Width-4)
	style := r.style
	if r.focused {
		style = r.focusStyle
	}
	if r.Base.State.Disabled {
		style = style.Dim(true)
	}
	writePadded(ctx.Buffer, bounds.X, bounds.Y, bounds.Width, text, style)
}

// HandleMessage selects the focused option on Enter or space.
func (r *Radio) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if r == nil || !r.focused || r.Base.State.Disabled {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	if key.Key == terminal.KeyEnter || (key.Key == terminal.KeyRune && key.Rune == ' ') {
		if r.selectSelf() {
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// AccessibleActions implements Actionable.
func (r *Radio) AccessibleActions() []accessibility.Action {
	return []accessibility.Action{accessibility.ActionPress}
}

// PerformAction implements Actionable.
func (r *Radio) PerformAction(action accessibility.Action) error {
	if r == nil {
		return accessibility.ErrUnavailable
	}
	if action != accessibility.ActionPress && action != accessibility.ActionActivate {
		return accessibility.ErrUnsupported
	}
	if r.Base.State.Disabled {
		return accessibility.ErrDisabled
	}
	if !r.selectSelf() {
		return accessibility.ErrUnsupported
	}
	return nil
}

func (r *Radio) selectSelf() bool {
	if r.group == nil {
		return false
	}
	r.group.SetSelected(r.index)
	r.Invalidate()
	return true
}

func (r *Radio) syncState() {
	if r == nil {
		return
	}
	r.Base.State.Selected = r.Selected()
}
