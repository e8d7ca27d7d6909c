// Package fake provides an in-memory control tree for tests and demos.
package fake

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

// Node is an in-memory accessibility.Node. Zero values read as unsupported.
type Node struct {
	Name      string
	NodeRole  accessibility.Role
	NodeTitle string
	Frame     geom.Rect
	Kids      []*Node
	Acts      []accessibility.Action

	// NoFrame makes Position fail.
	NoFrame bool
	// ChildErr is returned by Children when set.
	ChildErr error
	// PerformErr is returned by Perform when set.
	PerformErr error
	// Menu is returned by Submenu after a successful press.
	Menu *Node

	Performed []accessibility.Action
	Released  int
	opened    bool
}

// Button returns a button node with the given frame.
func Button(name string, frame geom.Rect) *Node {
	return &Node{Name: name, NodeRole: accessibility.RoleButton, NodeTitle: name, Frame: frame}
}

// Group returns a non-interactive container.
func Group(name string, kids ...*Node) *Node {
	return &Node{Name: name, NodeRole: accessibility.RoleGroup, Frame: geom.Rect{Width: 1000, Height: 1000}, Kids: kids}
}

// Role implements accessibility.Node.
func (n *Node) Role() (accessibility.Role, error) {
	if n.NodeRole == "" {
		return "", accessibility.ErrUnsupported
	}
	return n.NodeRole, nil
}

// Title implements accessibility.Node.
func (n *Node) Title() (string, error) {
	if n.NodeTitle == "" {
		return "", accessibility.ErrNoValue
	}
	return n.NodeTitle, nil
}

// Position implements accessibility.Node.
func (n *Node) Position() (geom.Point, error) {
	if n.NoFrame {
		return geom.Point{}, accessibility.ErrUnsupported
	}
	return geom.Point{X: n.Frame.X, Y: n.Frame.Y}, nil
}

// Size implements accessibility.Node.
func (n *Node) Size() (geom.Size, error) {
	if n.NoFrame {
		return geom.Size{}, accessibility.ErrUnsupported
	}
	return geom.Size{Width: n.Frame.Width, Height: n.Frame.Height}, nil
}

// Children implements accessibility.Node.
func (n *Node) Children() ([]accessibility.Node, error) {
	if n.ChildErr != nil {
		return nil, n.ChildErr
	}
	out := make([]accessibility.Node, 0, len(n.Kids))
	for _, kid := range n.Kids {
		out = append(out, kid)
	}
	return out, nil
}

// Actions implements accessibility.Node.
func (n *Node) Actions() ([]accessibility.Action, error) {
	if len(n.Acts) == 0 {
		return nil, accessibility.ErrUnsupported
	}
	return n.Acts, nil
}

// Perform records the action.
func (n *Node) Perform(action accessibility.Action) error {
	if n.PerformErr != nil {
		return n.PerformErr
	}
	if len(n.Acts) > 0 && !n.lists(action) {
		return accessibility.ErrUnsupported
	}
	n.Performed = append(n.Performed, action)
	if (action == accessibility.ActionPress || action == accessibility.ActionActivate) && n.Menu != nil {
		n.opened = true
	}
	return nil
}

func (n *Node) lists(action accessibility.Action) bool {
	for _, a := range n.Acts {
		if a == action {
			return true
		}
	}
	return false
}

// Release counts releases.
func (n *Node) Release() {
	n.Released++
}

// Submenu implements accessibility.SubmenuNode.
func (n *Node) Submenu() (accessibility.Node, bool) {
	if !n.opened || n.Menu == nil {
		return nil, false
	}
	return n.Menu, true
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, kid := range n.Kids {
		kid.Walk(fn)
	}
}

// Host is an accessibility.Host over fake roots.
type Host struct {
	Root   *Node
	Chrome *Node
	Screen geom.Rect
	// RootErr makes ForegroundRoot fail.
	RootErr error
}

// ForegroundRoot implements accessibility.Host.
func (h *Host) ForegroundRoot() (accessibility.Node, error) {
	if h.RootErr != nil {
		return nil, h.RootErr
	}
	if h.Root == nil {
		return nil, accessibility.ErrUnavailable
	}
	return h.Root, nil
}

// ChromeRoot implements accessibility.Host.
func (h *Host) ChromeRoot() (accessibility.Node, error) {
	if h.Chrome == nil {
		return nil, accessibility.ErrUnavailable
	}
	return h.Chrome, nil
}

// ScreenRect implements accessibility.Host.
func (h *Host) ScreenRect() geom.Rect {
	return h.Screen
}
