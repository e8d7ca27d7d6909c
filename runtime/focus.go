package runtime

// Focusable widgets can hold keyboard focus.
type Focusable interface {
	CanFocus() bool
	Focus()
	Blur()
	IsFocused() bool
}

// FocusScope tracks focus order within one layer.
type FocusScope struct {
	items    []Focusable
	current  int
	onChange func(prev, next Focusable)
}

// NewFocusScope creates an empty scope.
func NewFocusScope() *FocusScope {
	return &FocusScope{current: -1}
}

// SetOnChange registers a focus change callback.
func (f *FocusScope) SetOnChange(fn func(prev, next Focusable)) {
	if f == nil {
		return
	}
	f.onChange = fn
}

// Register appends w to the focus order.
func (f *FocusScope) Register(w Focusable) {
	if f == nil || w == nil {
		return
	}
	f.items = append(f.items, w)
	if f.current < 0 && w.IsFocused() {
		f.current = len(f.items) - 1
	}
}

// Reset clears the focus order without blurring.
func (f *FocusScope) Reset() {
	if f == nil {
		return
	}
	f.items = nil
	f.current = -1
}

// Len returns the number of registered widgets.
func (f *FocusScope) Len() int {
	if f == nil {
		return 0
	}
	return len(f.items)
}

// Current returns the focused widget, if any.
func (f *FocusScope) Current() Focusable {
	if f == nil || f.current < 0 || f.current >= len(f.items) {
		return nil
	}
	return f.items[f.current]
}

// SetFocus focuses w if it is registered.
func (f *FocusScope) SetFocus(w Focusable) bool {
	if f == nil {
		return false
	}
	for i, item := range f.items {
		if item == w {
			f.move(i)
			return true
		}
	}
	return false
}

// FocusNext moves focus forward, wrapping.
func (f *FocusScope) FocusNext() {
	f.step(1)
}

// FocusPrev moves focus backward, wrapping.
func (f *FocusScope) FocusPrev() {
	f.step(-1)
}

// ClearFocus blurs the focused widget.
func (f *FocusScope) ClearFocus() {
	if f == nil {
		return
	}
	f.move(-1)
}

func (f *FocusScope) step(dir int) {
	if f == nil || len(f.items) == 0 {
		return
	}
	n := len(f.items)
	start := f.current
	if start < 0 && dir < 0 {
		start = 0
	}
	for i := 1; i <= n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if f.items[idx].CanFocus() {
			f.move(idx)
			return
		}
	}
}

func (f *FocusScope) move(idx int) {
	prev := f.Current()
	var next Focusable
	if idx >= 0 && idx < len(f.items) {
		next = f.items[idx]
	}
	if prev == next {
		f.current = idx
		return
	}
	if prev != nil {
		prev.Blur()
	}
	f.current = idx
	if next != nil {
		next.Focus()
	}
	if f.onChange != nil {
		f.onChange(prev, next)
	}
}

// RegisterFocusables registers every focusable widget under root in tree order.
func RegisterFocusables(scope *FocusScope, root Widget) {
	if scope == nil {
		return
	}
	Walk(root, func(w Widget) bool {
		if f, ok := w.(Focusable); ok && f.CanFocus() {
			scope.Register(f)
		}
		return true
	})
}
