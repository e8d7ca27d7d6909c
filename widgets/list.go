package widgets

import (
	"fmt"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/scroll"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/terminal"
)

// ListAdapter provides data for list widgets.
type ListAdapter[T any] interface {
	Count() int
	Item(index int) T
}

// SliceAdapter adapts a slice to a ListAdapter.
type SliceAdapter[T any] struct {
	items []T
}

// NewSliceAdapter creates a slice adapter.
func NewSliceAdapter[T any](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SliceAdapter[T]) Count() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Item returns the item at index.
func (s *SliceAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || index < 0 || index >= len(s.items) {
		return zero
	}
	return s.items[index]
}

// SignalAdapter adapts a signal slice to a ListAdapter.
type SignalAdapter[T any] struct {
	items state.Readable[[]T]
}

// NewSignalAdapter creates a signal adapter.
func NewSignalAdapter[T any](items state.Readable[[]T]) *SignalAdapter[T] {
	return &SignalAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SignalAdapter[T]) Count() int {
	if s == nil || s.items == nil {
		return 0
	}
	return len(s.items.Get())
}

// Item returns an item.
func (s *SignalAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || s.items == nil {
		return zero
	}
	items := s.items.Get()
	if index < 0 || index >= len(items) {
		return zero
	}
	return items[index]
}

// List renders one item per row and scrolls to keep the selection visible.
// Each visible row is an option element; pressing one selects it and fires
// OnSelect.
type List[T any] struct {
	FocusableBase
	accessibility.Base

	adapter       ListAdapter[T]
	title         func(item T) string
	selected      int
	offset        int
	onSelect      func(index int, item T)
	style         backend.Style
	selectedStyle backend.Style
}

// NewList creates a list widget. Items are titled with fmt.Sprint unless
// SetTitleFunc says otherwise.
func NewList[T any](adapter ListAdapter[T]) *List[T] {
	l := &List[T]{
		adapter:       adapter,
		title:         func(item T) string { return fmt.Sprint(item) },
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
	l.Base.Role = accessibility.RoleList
	return l
}

// SetTitleFunc sets how items are drawn and named.
func (l *List[T]) SetTitleFunc(fn func(item T) string) {
	if l == nil || fn == nil {
		return
	}
	l.title = fn
	l.Invalidate()
}

// OnSelect registers the handler for Enter and pressed rows.
func (l *List[T]) OnSelect(fn func(index int, item T)) {
	if l == nil {
		return
	}
	l.onSelect = fn
}

func (l *List[T]) count() int {
	if l == nil || l.adapter == nil {
		return 0
	}
	return l.adapter.Count()
}

// Measure asks for one row per item.
func (l *List[T]) Measure(constraints runtime.Constraints) runtime.Size {
	height := min(l.count(), constraints.MaxHeight)
	if height <= 0 {
		height = constraints.MinHeight
	}
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

// Render draws the visible rows.
func (l *List[T]) Render(ctx runtime.RenderContext) {
	if l == nil || l.adapter == nil {
		return
	}
	bounds := l.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', l.style)
	count := l.count()
	l.follow(count)
	for i := 0; i < bounds.Height; i++ {
		index := l.offset + i
		if index >= count {
			break
		}
		style := l.style
		if index == l.selected && l.focused {
			style = l.selectedStyle
		}
		writePadded(ctx.Buffer, bounds.X, bounds.Y+i, bounds.Width, l.title(l.adapter.Item(index)), style)
	}
}

// HandleMessage handles navigation.
func (l *List[T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if l == nil || !l.focused || l.adapter == nil {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	count := l.count()
	if count == 0 {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyUp:
		l.ScrollBy(0, -1)
	case terminal.KeyDown:
		l.ScrollBy(0, 1)
	case terminal.KeyPageUp:
		l.PageBy(-1)
	case terminal.KeyPageDown:
		l.PageBy(1)
	case terminal.KeyHome:
		l.ScrollToStart()
	case terminal.KeyEnd:
		l.ScrollToEnd()
	case terminal.KeyEnter:
		l.activate(l.selected)
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func (l *List[T]) follow(count int) {
	l.selected = scroll.Clamp(l.selected, count)
	l.offset = scroll.Follow(l.offset, l.selected, l.bounds.Height, count)
}

func (l *List[T]) activate(index int) {
	l.SetSelected(index)
	if l.onSelect != nil && l.count() > 0 {
		l.onSelect(l.selected, l.adapter.Item(l.selected))
	}
}

// SetSelected moves the selection without firing OnSelect.
func (l *List[T]) SetSelected(index int) {
	if l == nil {
		return
	}
	l.selected = index
	l.follow(l.count())
	l.Invalidate()
}

// SelectedIndex returns the current selection index.
func (l *List[T]) SelectedIndex() int {
	if l == nil {
		return 0
	}
	return l.selected
}

// SelectedItem returns the selected item.
func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	if l == nil || l.adapter == nil {
		return zero, false
	}
	if l.selected < 0 || l.selected >= l.adapter.Count() {
		return zero, false
	}
	return l.adapter.Item(l.selected), true
}

// AccessibleParts exposes the visible rows as options.
func (l *List[T]) AccessibleParts() []Part {
	if l == nil || l.adapter == nil {
		return nil
	}
	count := l.count()
	l.follow(count)
	var parts []Part
	for i := 0; i < l.bounds.Height; i++ {
		index := l.offset + i
		if index >= count {
			break
		}
		parts = append(parts, Part{
			Role:    accessibility.RoleOption,
			Title:   l.title(l.adapter.Item(index)),
			Bounds:  runtime.Rect{X: l.bounds.X, Y: l.bounds.Y + i, Width: l.bounds.Width, Height: 1},
			Actions: []accessibility.Action{accessibility.ActionPress},
			Perform: func(accessibility.Action) error {
				l.activate(index)
				return nil
			},
		})
	}
	return parts
}

// ScrollBy moves the selection by dy rows.
func (l *List[T]) ScrollBy(dx, dy int) {
	if l == nil || dy == 0 {
		return
	}
	l.SetSelected(l.selected + dy)
}

// ScrollTo selects row y.
func (l *List[T]) ScrollTo(x, y int) {
	l.SetSelected(y)
}

// PageBy moves the selection by whole views.
func (l *List[T]) PageBy(pages int) {
	if l == nil {
		return
	}
	l.SetSelected(l.selected + pages*max(l.bounds.Height, 1))
}

// ScrollToStart selects the first item.
func (l *List[T]) ScrollToStart() {
	l.SetSelected(0)
}

// ScrollToEnd selects the last item.
func (l *List[T]) ScrollToEnd() {
	if l == nil {
		return
	}
	l.SetSelected(l.count() - 1)
}

var _ scroll.Controller = (*List[any])(nil)
