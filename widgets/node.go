package widgets

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
	"github.com/odvcencio/furry-hints/runtime"
)

// Actionable is implemented by widgets that can be driven by accessibility
// actions.
type Actionable interface {
	AccessibleActions() []accessibility.Action
	PerformAction(action accessibility.Action) error
}

// Part is a virtual accessible element inside a widget, such as a menu row or
// a tab header.
type Part struct {
	Role     accessibility.Role
	Title    string
	Bounds   runtime.Rect
	Disabled bool
	Actions  []accessibility.Action
	Perform  func(action accessibility.Action) error
	Children []Part
	// Submenu returns the parts revealed by a successful Perform.
	Submenu func() []Part
}

// PartProvider exposes virtual parts ahead of any child widgets.
type PartProvider interface {
	AccessibleParts() []Part
}

type tree struct {
	cellW, cellH float64
	scope        func() *runtime.FocusScope
}

// Tree adapts a widget tree into accessibility nodes. Cell coordinates are
// scaled by cellW and cellH so frames read in the same units as the
// collector's size thresholds.
func Tree(root runtime.Widget, cellW, cellH float64) accessibility.Node {
	t := newTree(cellW, cellH, nil)
	return t.widget(root)
}

func newTree(cellW, cellH float64, scope func() *runtime.FocusScope) *tree {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &tree{cellW: cellW, cellH: cellH, scope: scope}
}

func (t *tree) widget(w runtime.Widget) accessibility.Node {
	if w == nil {
		return nil
	}
	return &widgetNode{tree: t, w: w}
}

func (t *tree) part(p Part) accessibility.Node {
	return &partNode{tree: t, p: p}
}

func (t *tree) frame(r runtime.Rect) geom.Rect {
	return geom.Rect{
		X:      float64(r.X) * t.cellW,
		Y:      float64(r.Y) * t.cellH,
		Width:  float64(r.Width) * t.cellW,
		Height: float64(r.Height) * t.cellH,
	}
}

func (t *tree) focusScope() *runtime.FocusScope {
	if t.scope == nil {
		return nil
	}
	return t.scope()
}

type widgetNode struct {
	tree     *tree
	w        runtime.Widget
	released bool
}

func (n *widgetNode) Role() (accessibility.Role, error) {
	if n.released {
		return "", accessibility.ErrUnavailable
	}
	if a, ok := n.w.(accessibility.Accessible); ok {
		return a.AccessibleRole(), nil
	}
	if _, ok := n.w.(runtime.ChildProvider); ok {
		return accessibility.RoleGroup, nil
	}
	return "", accessibility.ErrUnsupported
}

func (n *widgetNode) Title() (string, error) {
	if n.released {
		return "", accessibility.ErrUnavailable
	}
	a, ok := n.w.(accessibility.Accessible)
	if !ok {
		return "", accessibility.ErrUnsupported
	}
	if label := a.AccessibleLabel(); label != "" {
		return label, nil
	}
	return "", accessibility.ErrNoValue
}

func (n *widgetNode) bounds() (geom.Rect, error) {
	if n.released {
		return geom.Rect{}, accessibility.ErrUnavailable
	}
	bp, ok := n.w.(runtime.BoundsProvider)
	if !ok {
		return geom.Rect{}, accessibility.ErrUnsupported
	}
	return n.tree.frame(bp.Bounds()), nil
}

func (n *widgetNode) Position() (geom.Point, error) {
	r, err := n.bounds()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: r.X, Y: r.Y}, nil
}

func (n *widgetNode) Size() (geom.Size, error) {
	r, err := n.bounds()
	if err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: r.Width, Height: r.Height}, nil
}

func (n *widgetNode) Children() ([]accessibility.Node, error) {
	if n.released {
		return nil, accessibility.ErrUnavailable
	}
	var out []accessibility.Node
	if pp, ok := n.w.(PartProvider); ok {
		for _, p := range pp.AccessibleParts() {
			out = append(out, n.tree.part(p))
		}
	}
	if cp, ok := n.w.(runtime.ChildProvider); ok {
		for _, child := range cp.ChildWidgets() {
			if child != nil {
				out = append(out, n.tree.widget(child))
			}
		}
	}
	return out, nil
}

func (n *widgetNode) focusable() (runtime.Focusable, *runtime.FocusScope) {
	f, ok := n.w.(runtime.Focusable)
	if !ok || !f.CanFocus() {
		return nil, nil
	}
	scope := n.tree.focusScope()
	if scope == nil {
		return nil, nil
	}
	return f, scope
}

// editable reports whether a press on the widget means focusing it.
func (n *widgetNode) editable() bool {
	a, ok := n.w.(accessibility.Accessible)
	if !ok {
		return false
	}
	switch a.AccessibleRole() {
	case accessibility.RoleTextbox, accessibility.RoleSearchField:
		return true
	}
	return false
}

func (n *widgetNode) Actions() ([]accessibility.Action, error) {
	if n.released {
		return nil, accessibility.ErrUnavailable
	}
	var actions []accessibility.Action
	if a, ok := n.w.(Actionable); ok {
		actions = append(actions, a.AccessibleActions()...)
	}
	if f, _ := n.focusable(); f != nil {
		if n.editable() {
			actions = append(actions, accessibility.ActionPress)
		}
		actions = append(actions, accessibility.ActionFocus)
	}
	if len(actions) == 0 {
		return nil, accessibility.ErrUnsupported
	}
	return actions, nil
}

func (n *widgetNode) Perform(action accessibility.Action) error {
	if n.released {
		return accessibility.ErrUnavailable
	}
	if a, ok := n.w.(accessibility.Accessible); ok && a.AccessibleState().Disabled {
		return accessibility.ErrDisabled
	}
	if action == accessibility.ActionFocus || (action == accessibility.ActionPress && n.editable()) {
		if f, scope := n.focusable(); f != nil {
			if scope.SetFocus(f) {
				return nil
			}
			return accessibility.ErrUnsupported
		}
	}
	if a, ok := n.w.(Actionable); ok {
		return a.PerformAction(action)
	}
	return accessibility.ErrUnsupported
}

func (n *widgetNode) Release() {
	n.released = true
}

type partNode struct {
	tree     *tree
	p        Part
	menu     []Part
	released bool
}

func (n *partNode) Role() (accessibility.Role, error) {
	if n.released {
		return "", accessibility.ErrUnavailable
	}
	if n.p.Role == "" {
		return accessibility.RoleUnknown, nil
	}
	return n.p.Role, nil
}

func (n *partNode) Title() (string, error) {
	if n.released {
		return "", accessibility.ErrUnavailable
	}
	if n.p.Title == "" {
		return "", accessibility.ErrNoValue
	}
	return n.p.Title, nil
}

func (n *partNode) Position() (geom.Point, error) {
	if n.released {
		return geom.Point{}, accessibility.ErrUnavailable
	}
	r := n.tree.frame(n.p.Bounds)
	return geom.Point{X: r.X, Y: r.Y}, nil
}

func (n *partNode) Size() (geom.Size, error) {
	if n.released {
		return geom.Size{}, accessibility.ErrUnavailable
	}
	r := n.tree.frame(n.p.Bounds)
	return geom.Size{Width: r.Width, Height: r.Height}, nil
}

func (n *partNode) Children() ([]accessibility.Node, error) {
	if n.released {
		return nil, accessibility.ErrUnavailable
	}
	out := make([]accessibility.Node, 0, len(n.p.Children))
	for _, child := range n.p.Children {
		out = append(out, n.tree.part(child))
	}
	return out, nil
}

func (n *partNode) Actions() ([]accessibility.Action, error) {
	if n.released {
		return nil, accessibility.ErrUnavailable
	}
	if len(n.p.Actions) == 0 {
		return nil, accessibility.ErrUnsupported
	}
	return n.p.Actions, nil
}

func (n *partNode) Perform(action accessibility.Action) error {
	if n.released {
		return accessibility.ErrUnavailable
	}
	if n.p.Disabled {
		return accessibility.ErrDisabled
	}
	if n.p.Perform == nil || !listsAction(n.p.Actions, action) {
		return accessibility.ErrUnsupported
	}
	if err := n.p.Perform(action); err != nil {
		return err
	}
	if n.p.Submenu != nil {
		n.menu = n.p.Submenu()
	}
	return nil
}

func (n *partNode) Release() {
	n.released = true
}

// Submenu returns the parts a Perform revealed, grouped under a menu node.
func (n *partNode) Submenu() (accessibility.Node, bool) {
	if n.released || len(n.menu) == 0 {
		return nil, false
	}
	bounds := n.menu[0].Bounds
	for _, p := range n.menu[1:] {
		bounds = unionRect(bounds, p.Bounds)
	}
	group := Part{Role: accessibility.RoleMenu, Title: n.p.Title, Bounds: bounds, Children: n.menu}
	return n.tree.part(group), true
}

func listsAction(actions []accessibility.Action, action accessibility.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func unionRect(a, b runtime.Rect) runtime.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1 := max(a.X+a.Width, b.X+b.Width)
	y1 := max(a.Y+a.Height, b.Y+b.Height)
	return runtime.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

var (
	_ accessibility.Node        = (*widgetNode)(nil)
	_ accessibility.Node        = (*partNode)(nil)
	_ accessibility.SubmenuNode = (*partNode)(nil)
)
