package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/terminal"
)

// Tab represents a single tab.
type Tab struct {
	Title   string
	Content runtime.Widget
}

// Tabs is a tabbed container. The header row exposes one tab element per
// title; only the selected tab's content is laid out and scanned.
type Tabs struct {
	FocusableBase
	accessibility.Base

	Tabs          []Tab
	selected      int
	onChange      func(index int)
	style         backend.Style
	selectedStyle backend.Style
}

// NewTabs creates a tab container.
func NewTabs(tabs ...Tab) *Tabs {
	t := &Tabs{
		Tabs:          tabs,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
	}
	t.Base.Role = accessibility.RoleTabList
	return t
}

// OnChange registers a selection callback.
func (t *Tabs) OnChange(fn func(index int)) {
	if t == nil {
		return
	}
	t.onChange = fn
}

// Selected returns the selected tab index.
func (t *Tabs) Selected() int {
	if t == nil {
		return 0
	}
	return t.selected
}

// Measure returns the size of the selected tab plus the header row.
func (t *Tabs) Measure(constraints runtime.Constraints) runtime.Size {
	size := runtime.Size{Height: 1}
	for _, tab := range t.Tabs {
		size.Width += textWidth(tab.Title) + 2
	}
	if selected := t.selectedTab(); selected != nil && selected.Content != nil {
		content := selected.Content.Measure(runtime.Loose(constraints.MaxWidth, max(constraints.MaxHeight-1, 0)))
		size.Width = max(size.Width, content.Width)
		size.Height += content.Height
	}
	return constraints.Constrain(size)
}

// Layout positions the selected tab content below the header row.
func (t *Tabs) Layout(bounds runtime.Rect) {
	t.FocusableBase.Layout(bounds)
	selected := t.selectedTab()
	if selected == nil || selected.Content == nil {
		return
	}
	selected.Content.Layout(runtime.Rect{
		X:      bounds.X,
		Y:      bounds.Y + 1,
		Width:  bounds.Width,
		Height: max(0, bounds.Height-1),
	})
}

// Render draws tab titles and content.
func (t *Tabs) Render(ctx runtime.RenderContext) {
	if t == nil {
		return
	}
	if t.bounds.Width <= 0 || t.bounds.Height <= 0 {
		return
	}
	for i, span := range t.headerSpans() {
		style := t.style
		if i == t.selected {
			style = t.selectedStyle
		}
		ctx.Buffer.SetString(span.X, span.Y, truncateString(" "+t.Tabs[i].Title+" ", span.Width), style)
	}
	if selected := t.selectedTab(); selected != nil && selected.Content != nil {
		selected.Content.Render(ctx)
	}
}

// headerSpans returns the header cell range of each visible title.
func (t *Tabs) headerSpans() []runtime.Rect {
	bounds := t.bounds
	right := bounds.X + bounds.Width
	x := bounds.X
	var spans []runtime.Rect
	for _, tab := range t.Tabs {
		if x >= right {
			break
		}
		w := min(textWidth(tab.Title)+2, right-x)
		spans = append(spans, runtime.Rect{X: x, Y: bounds.Y, Width: w, Height: 1})
		x += w
	}
	return spans
}

// HandleMessage switches tabs, or forwards to the selected content.
func (t *Tabs) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if t == nil {
		return runtime.Unhandled()
	}
	if key, ok := msg.(runtime.KeyMsg); ok && t.focused {
		switch key.Key {
		case terminal.KeyLeft:
			t.SetSelected(t.selected - 1)
			return runtime.Handled()
		case terminal.KeyRight:
			t.SetSelected(t.selected + 1)
			return runtime.Handled()
		}
	}
	if selected := t.selectedTab(); selected != nil && selected.Content != nil {
		return selected.Content.HandleMessage(msg)
	}
	return runtime.Unhandled()
}

// ChildWidgets returns the selected tab content.
func (t *Tabs) ChildWidgets() []runtime.Widget {
	selected := t.selectedTab()
	if selected == nil || selected.Content == nil {
		return nil
	}
	return []runtime.Widget{selected.Content}
}

// AccessibleParts exposes each header as a tab element.
func (t *Tabs) AccessibleParts() []Part {
	if t == nil {
		return nil
	}
	spans := t.headerSpans()
	parts := make([]Part, 0, len(spans))
	for i, span := range spans {
		index := i
		parts = append(parts, Part{
			Role:    accessibility.RoleTab,
			Title:   t.Tabs[i].Title,
			Bounds:  span,
			Actions: []accessibility.Action{accessibility.ActionPress},
			Perform: func(accessibility.Action) error {
				t.SetSelected(index)
				return nil
			},
		})
	}
	return parts
}

func (t *Tabs) selectedTab() *Tab {
	if t == nil || len(t.Tabs) == 0 {
		return nil
	}
	t.selected = min(max(t.selected, 0), len(t.Tabs)-1)
	return &t.Tabs[t.selected]
}

// SetSelected selects a tab, clamped to the valid range, and lays out its
// content in the tab body.
func (t *Tabs) SetSelected(index int) {
	if t == nil || len(t.Tabs) == 0 {
		return
	}
	index = min(max(index, 0), len(t.Tabs)-1)
	if index == t.selected {
		return
	}
	t.selected = index
	t.Layout(t.bounds)
	t.Invalidate()
	if t.onChange != nil {
		t.onChange(index)
	}
}
