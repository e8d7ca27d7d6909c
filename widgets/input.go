package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/terminal"
)

// Input is a single-line text field. Pressing it through the accessibility
// tree focuses it.
type Input struct {
	FocusableBase
	accessibility.Base

	text        []rune
	cursorPos   int
	placeholder string
	style       backend.Style
	focusStyle  backend.Style

	onSubmit func(text string)
	onChange func(text string)
}

// NewInput creates an input titled title.
func NewInput(title string) *Input {
	i := &Input{
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Bold(true),
	}
	i.Base.Role = accessibility.RoleTextbox
	i.Base.Label = title
	return i
}

// SetPlaceholder sets the text shown while the field is empty.
func (i *Input) SetPlaceholder(text string) {
	if i == nil {
		return
	}
	i.placeholder = text
}

// OnSubmit sets the callback for Enter.
func (i *Input) OnSubmit(fn func(text string)) {
	if i == nil {
		return
	}
	i.onSubmit = fn
}

// OnChange sets the callback for edits.
func (i *Input) OnChange(fn func(text string)) {
	if i == nil {
		return
	}
	i.onChange = fn
}

// Text returns the current text.
func (i *Input) Text() string {
	if i == nil {
		return ""
	}
	return string(i.text)
}

// SetText replaces the text and moves the cursor to the end.
func (i *Input) SetText(text string) {
	if i == nil {
		return
	}
	i.text = []rune(text)
	i.cursorPos = len(i.text)
	i.Base.Value = &accessibility.ValueInfo{Text: text}
	i.Invalidate()
}

// CursorPos returns the cursor position in runes.
func (i *Input) CursorPos() int {
	if i == nil {
		return 0
	}
	return i.cursorPos
}

// Measure fills the available width on one row.
func (i *Input) Measure(constraints runtime.Constraints) runtime.Size {
	width := max(constraints.MaxWidth, textWidth(i.placeholder))
	return constraints.Constrain(runtime.Size{Width: width, Height: 1})
}

// Render draws the field and, when focused, the cursor.
func (i *Input) Render(ctx runtime.RenderContext) {
	if i == nil {
		return
	}
	bounds := i.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	style := i.style
	if i.focused {
		style = i.focusStyle
	}
	ctx.Buffer.Fill(bounds, ' ', style)

	if len(i.text) == 0 && !i.focused && i.placeholder != "" {
		writePadded(ctx.Buffer, bounds.X, bounds.Y, bounds.Width, i.placeholder, style.Dim(true))
		return
	}

	start := 0
	if i.cursorPos >= bounds.Width {
		start = i.cursorPos - bounds.Width + 1
	}
	x := bounds.X
	for idx := start; idx < len(i.text) && x < bounds.X+bounds.Width; idx++ {
		x += ctx.Buffer.SetString(x, bounds.Y, string(i.text[idx]), style)
	}
	if !i.focused {
		return
	}
	cursorX := bounds.X + runewidth.StringWidth(string(i.text[start:i.cursorPos]))
	if cursorX < bounds.X+bounds.Width {
		r := ' '
		if i.cursorPos < len(i.text) {
			r = i.text[i.cursorPos]
		}
		ctx.Buffer.Set(cursorX, bounds.Y, r, style.Reverse(true))
	}
}

// HandleMessage edits the text.
func (i *Input) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if i == nil || !i.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}

	switch key.Key {
	case terminal.KeyEnter:
		if i.onSubmit != nil {
			i.onSubmit(string(i.text))
		}
		return runtime.Handled()
	case terminal.KeyBackspace:
		if i.cursorPos > 0 {
			i.text = append(i.text[:i.cursorPos-1], i.text[i.cursorPos:]...)
			i.cursorPos--
			i.changed()
		}
		return runtime.Handled()
	case terminal.KeyDelete:
		if i.cursorPos < len(i.text) {
			i.text = append(i.text[:i.cursorPos], i.text[i.cursorPos+1:]...)
			i.changed()
		}
		return runtime.Handled()
	case terminal.KeyLeft:
		if i.cursorPos > 0 {
			i.cursorPos--
			i.Invalidate()
		}
		return runtime.Handled()
	case terminal.KeyRight:
		if i.cursorPos < len(i.text) {
			i.cursorPos++
			i.Invalidate()
		}
		return runtime.Handled()
	case terminal.KeyHome:
		i.cursorPos = 0
		i.Invalidate()
		return runtime.Handled()
	case terminal.KeyEnd:
		i.cursorPos = len(i.text)
		i.Invalidate()
		return runtime.Handled()
	case terminal.KeyRune:
		if key.Ctrl || key.Alt {
			return runtime.Unhandled()
		}
		i.text = append(i.text[:i.cursorPos], append([]rune{key.Rune}, i.text[i.cursorPos:]...)...)
		i.cursorPos++
		i.changed()
		return runtime.Handled()
	case terminal.KeyTab:
		if key.Shift {
			return runtime.WithCommand(runtime.FocusPrev{})
		}
		return runtime.WithCommand(runtime.FocusNext{})
	}
	return runtime.Unhandled()
}

func (i *Input) changed() {
	text := string(i.text)
	i.Base.Value = &accessibility.ValueInfo{Text: text}
	i.Invalidate()
	if i.onChange != nil {
		i.onChange(text)
	}
}
