package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/scroll"
	"github.com/odvcencio/furry-hints/terminal"
)

// MenuItem describes a menu entry. Items with children open a submenu when
// activated.
type MenuItem struct {
	ID       string
	Title    string
	Shortcut string
	Children []*MenuItem
	Expanded bool
	Disabled bool
	OnSelect func()
}

// Menu renders a vertical, expandable menu.
type Menu struct {
	FocusableBase
	accessibility.Base

	Items         []*MenuItem
	itemRole      accessibility.Role
	selectedIndex int
	offset        int
	style         backend.Style
	selectedStyle backend.Style
	indentCache   []string
	flatCache     []menuRow
	flatDirty     bool
	itemsLen      int
	itemsFirst    *MenuItem
}

// NewMenu creates a new menu.
func NewMenu(items ...*MenuItem) *Menu {
	m := &Menu{
		Items:         items,
		itemRole:      accessibility.RoleMenuItem,
		style:         backend.DefaultStyle(),
		selectedStyle: backend.DefaultStyle().Reverse(true),
		flatDirty:     true,
		itemsLen:      len(items),
		itemsFirst:    firstItem(items),
	}
	m.Base.Role = accessibility.RoleMenu
	return m
}

// NewMenuBar creates a menu described as the application's menu bar.
func NewMenuBar(items ...*MenuItem) *Menu {
	m := NewMenu(items...)
	m.Base.Role = accessibility.RoleMenuBar
	m.itemRole = accessibility.RoleMenuBarItem
	return m
}

// SetItems replaces the menu items and clears cached rows.
func (m *Menu) SetItems(items ...*MenuItem) {
	if m == nil {
		return
	}
	m.Items = items
	m.itemsLen = len(items)
	m.itemsFirst = firstItem(items)
	m.flatDirty = true
}

// Selected returns the selected item, or nil.
func (m *Menu) Selected() *MenuItem {
	if m == nil {
		return nil
	}
	if row := m.selectedRow(m.flatten()); row != nil {
		return row.item
	}
	return nil
}

// Measure returns the size of the fully expanded menu, so opening a submenu
// never needs a new layout.
func (m *Menu) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	var walk func(items []*MenuItem, depth int)
	walk = func(items []*MenuItem, depth int) {
		for _, item := range items {
			if item == nil {
				continue
			}
			size.Width = max(size.Width, textWidth(m.rowText(menuRow{item: item, depth: depth})))
			size.Height++
			walk(item.Children, depth+1)
		}
	}
	walk(m.Items, 0)
	return constraints.Constrain(size)
}

// Render draws the menu.
func (m *Menu) Render(ctx runtime.RenderContext) {
	if m == nil {
		return
	}
	bounds := m.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', m.style)
	rows := m.flatten()
	m.clampSelection(len(rows))
	for i := 0; i < bounds.Height; i++ {
		rowIndex := m.offset + i
		if rowIndex >= len(rows) {
			break
		}
		row := rows[rowIndex]
		style := m.style
		if rowIndex == m.selectedIndex && m.focused {
			style = m.selectedStyle
		}
		if row.item.Disabled {
			style = style.Dim(true)
		}
		writePadded(ctx.Buffer, bounds.X, bounds.Y+i, bounds.Width, truncateString(m.rowText(row), bounds.Width), style)
	}
}

func (m *Menu) rowText(row menuRow) string {
	prefix := "  "
	if len(row.item.Children) > 0 {
		if row.item.Expanded {
			prefix = "- "
		} else {
			prefix = "+ "
		}
	}
	line := m.indent(row.depth) + prefix + row.item.Title
	if row.item.Shortcut != "" {
		line += " (" + row.item.Shortcut + ")"
	}
	return line
}

// HandleMessage handles navigation and selection.
func (m *Menu) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if m == nil || !m.focused {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	rows := m.flatten()
	switch key.Key {
	case terminal.KeyUp:
		m.setSelected(m.selectedIndex-1, len(rows))
		return runtime.Handled()
	case terminal.KeyDown:
		m.setSelected(m.selectedIndex+1, len(rows))
		return runtime.Handled()
	case terminal.KeyLeft:
		if row := m.selectedRow(rows); row != nil && row.item.Expanded {
			row.item.Expanded = false
			m.flatDirty = true
		}
		return runtime.Handled()
	case terminal.KeyRight:
		if row := m.selectedRow(rows); row != nil && len(row.item.Children) > 0 {
			row.item.Expanded = true
			m.flatDirty = true
		}
		return runtime.Handled()
	case terminal.KeyEnter:
		if row := m.selectedRow(rows); row != nil {
			m.activate(row.item, true)
		}
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// activate opens or toggles an item's submenu and runs its callback.
func (m *Menu) activate(item *MenuItem, toggle bool) bool {
	if item == nil || item.Disabled {
		return false
	}
	if len(item.Children) > 0 {
		if toggle {
			item.Expanded = !item.Expanded
		} else {
			item.Expanded = true
		}
		m.flatDirty = true
	}
	if item.OnSelect != nil {
		item.OnSelect()
	}
	m.Invalidate()
	return true
}

// AccessibleParts exposes the visible rows as menu items.
func (m *Menu) AccessibleParts() []Part {
	if m == nil {
		return nil
	}
	return m.rowParts(func(menuRow) bool { return true })
}

func (m *Menu) rowParts(keep func(menuRow) bool) []Part {
	rows := m.flatten()
	m.clampSelection(len(rows))
	var parts []Part
	for i := 0; i < m.bounds.Height; i++ {
		rowIndex := m.offset + i
		if rowIndex >= len(rows) {
			break
		}
		row := rows[rowIndex]
		if !keep(row) {
			continue
		}
		parts = append(parts, m.rowPart(row, rowIndex, m.bounds.Y+i))
	}
	return parts
}

func (m *Menu) rowPart(row menuRow, rowIndex, y int) Part {
	item := row.item
	part := Part{
		Role:     m.itemRole,
		Title:    item.Title,
		Bounds:   runtime.Rect{X: m.bounds.X, Y: y, Width: m.bounds.Width, Height: 1},
		Disabled: item.Disabled,
		Actions:  []accessibility.Action{accessibility.ActionPress},
		Perform: func(accessibility.Action) error {
			m.selectedIndex = rowIndex
			if !m.activate(item, false) {
				return accessibility.ErrDisabled
			}
			return nil
		},
	}
	if len(item.Children) > 0 {
		part.Submenu = func() []Part { return m.childParts(item) }
	}
	return part
}

// childParts returns the visible rows directly under parent.
func (m *Menu) childParts(parent *MenuItem) []Part {
	children := make(map[*MenuItem]struct{}, len(parent.Children))
	for _, child := range parent.Children {
		children[child] = struct{}{}
	}
	return m.rowParts(func(row menuRow) bool {
		_, ok := children[row.item]
		return ok
	})
}

type menuRow struct {
	item  *MenuItem
	depth int
}

func (m *Menu) flatten() []menuRow {
	currentFirst := firstItem(m.Items)
	if m.itemsLen != len(m.Items) || m.itemsFirst != currentFirst {
		m.itemsLen = len(m.Items)
		m.itemsFirst = currentFirst
		m.flatDirty = true
	}
	if !m.flatDirty {
		return m.flatCache
	}
	rows := m.flatCache[:0]
	var walk func(items []*MenuItem, depth int)
	walk = func(items []*MenuItem, depth int) {
		for _, item := range items {
			if item == nil {
				continue
			}
			rows = append(rows, menuRow{item: item, depth: depth})
			if item.Expanded {
				walk(item.Children, depth+1)
			}
		}
	}
	walk(m.Items, 0)
	m.flatCache = rows
	m.flatDirty = false
	return m.flatCache
}

func (m *Menu) clampSelection(count int) {
	m.setSelected(m.selectedIndex, count)
	m.offset = scroll.Follow(m.offset, m.selectedIndex, m.bounds.Height, count)
}

func (m *Menu) setSelected(index int, count int) {
	m.selectedIndex = scroll.Clamp(index, count)
}

func (m *Menu) selectedRow(rows []menuRow) *menuRow {
	if m.selectedIndex < 0 || m.selectedIndex >= len(rows) {
		return nil
	}
	return &rows[m.selectedIndex]
}

func (m *Menu) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	if len(m.indentCache) == 0 {
		m.indentCache = []string{""}
	}
	for len(m.indentCache) <= depth {
		m.indentCache = append(m.indentCache, m.indentCache[len(m.indentCache)-1]+"  ")
	}
	return m.indentCache[depth]
}

func firstItem(items []*MenuItem) *MenuItem {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}
