package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/terminal"
)

// SelectOption represents a selectable option.
type SelectOption struct {
	Label    string
	Value    any
	Disabled bool
}

// Select is a popup button. Pressing it steps to the next option; its
// secondary action opens the option list in the rows reserved below it.
type Select struct {
	FocusableBase
	accessibility.Base

	options    []SelectOption
	selected   int
	open       bool
	onChange   func(option SelectOption)
	style      backend.Style
	focusStyle backend.Style
}

// NewSelect creates a select widget titled title.
func NewSelect(title string, options ...SelectOption) *Select {
	s := &Select{
		options:    options,
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Reverse(true),
	}
	s.Base.Role = accessibility.RoleGroup
	s.Base.Label = title
	return s
}

// SetOnChange sets the change handler.
func (s *Select) SetOnChange(fn func(option SelectOption)) {
	if s == nil {
		return
	}
	s.onChange = fn
}

// Selected returns the current selection index.
func (s *Select) Selected() int {
	if s == nil {
		return 0
	}
	return s.selected
}

// IsOpen reports whether the option list is showing.
func (s *Select) IsOpen() bool {
	return s != nil && s.open
}

// SelectedOption returns the current option.
func (s *Select) SelectedOption() (SelectOption, bool) {
	if s == nil || s.selected < 0 || s.selected >= len(s.options) {
		return SelectOption{}, false
	}
	return s.options[s.selected], true
}

// SetSelected updates the selected index and closes the list. Disabled
// options are ignored.
func (s *Select) SetSelected(index int) {
	if s == nil || index < 0 || index >= len(s.options) {
		return
	}
	if s.options[index].Disabled {
		return
	}
	s.selected = index
	s.open = false
	s.Invalidate()
	if s.onChange != nil {
		s.onChange(s.options[index])
	}
}

// SetOpen shows or hides the option list.
func (s *Select) SetOpen(open bool) {
	if s == nil || s.open == open {
		return
	}
	s.open = open
	s.Invalidate()
}

// Measure reserves one row for the button and one per option.
func (s *Select) Measure(constraints runtime.Constraints) runtime.Size {
	width := textWidth(s.buttonText()) + 2
	for _, opt := range s.options {
		width = max(width, textWidth(opt.Label)+4)
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: 1 + len(s.options)})
}

// Render draws the button and, when open, the options below it.
func (s *Select) Render(ctx runtime.RenderContext) {
	if s == nil {
		return
	}
	bounds := s.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', s.style)
	style := s.style
	if s.focused {
		style = s.focusStyle
	}
	writePadded(ctx.Buffer, bounds.X, bounds.Y, bounds.Width, s.buttonText(), style)
	if !s.open {
		return
	}
	for i, opt := range s.options {
		if i+1 >= bounds.Height {
			break
		}
		marker := "  "
		if i == s.selected {
			marker = "> "
		}
		writePadded(ctx.Buffer, bounds.X, bounds.Y+1+i, bounds.Width, marker+opt.Label, s.style)
	}
}

func (s *Select) buttonText() string {
	return "[" + s.Base.Label + ": " + s.currentLabel() + " v]"
}

// HandleMessage changes selection.
func (s *Select) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if s == nil || !s.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyUp, terminal.KeyLeft:
		if s.moveSelection(-1) {
			return runtime.Handled()
		}
	case terminal.KeyDown, terminal.KeyRight:
		if s.moveSelection(1) {
			return runtime.Handled()
		}
	case terminal.KeyEnter:
		s.SetOpen(!s.open)
		return runtime.Handled()
	case terminal.KeyEscape:
		if s.open {
			s.SetOpen(false)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

func (s *Select) moveSelection(delta int) bool {
	if s == nil || len(s.options) == 0 {
		return false
	}
	index := s.selected
	for i := 0; i < len(s.options); i++ {
		index += delta
		if index < 0 {
			index = len(s.options) - 1
		} else if index >= len(s.options) {
			index = 0
		}
		if !s.options[index].Disabled {
			s.SetSelected(index)
			return true
		}
	}
	return false
}

func (s *Select) currentLabel() string {
	if opt, ok := s.SelectedOption(); ok {
		return opt.Label
	}
	return ""
}

// AccessibleParts exposes the button as a popup button whose show-menu
// action opens the option list as a submenu.
func (s *Select) AccessibleParts() []Part {
	if s == nil || s.bounds.Height <= 0 {
		return nil
	}
	return []Part{{
		Role:     accessibility.RolePopUpButton,
		Title:    s.Base.Label,
		Bounds:   runtime.Rect{X: s.bounds.X, Y: s.bounds.Y, Width: s.bounds.Width, Height: 1},
		Disabled: s.Base.State.Disabled,
		Actions:  []accessibility.Action{accessibility.ActionPress, accessibility.ActionShowMenu},
		Perform: func(action accessibility.Action) error {
			if action == accessibility.ActionShowMenu {
				s.SetOpen(true)
				return nil
			}
			s.moveSelection(1)
			return nil
		},
		Submenu: s.optionParts,
	}}
}

func (s *Select) optionParts() []Part {
	if !s.open {
		return nil
	}
	parts := make([]Part, 0, len(s.options))
	for i, opt := range s.options {
		if i+1 >= s.bounds.Height {
			break
		}
		if opt.Disabled {
			continue
		}
		parts = append(parts, Part{
			Role:    accessibility.RoleMenuItem,
			Title:   opt.Label,
			Bounds:  runtime.Rect{X: s.bounds.X, Y: s.bounds.Y + 1 + i, Width: s.bounds.Width, Height: 1},
			Actions: []accessibility.Action{accessibility.ActionPress},
			Perform: func(accessibility.Action) error {
				s.SetSelected(i)
				return nil
			},
		})
	}
	return parts
}
