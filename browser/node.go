package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

// DefaultActionTimeout bounds clicks on elements that never become
// interactable.
const DefaultActionTimeout = 3 * time.Second

// Node is an accessibility.Node over a DOM element. Every read is a round
// trip to the page.
type Node struct {
	el       *rod.Element
	timeout  time.Duration
	released bool
}

func newNode(el *rod.Element, timeout time.Duration) *Node {
	return &Node{el: el, timeout: timeout}
}

func (n *Node) describe() (elementInfo, error) {
	if n == nil || n.el == nil || n.released {
		return elementInfo{}, accessibility.ErrUnavailable
	}
	obj, err := n.el.Eval(describeJS)
	if err != nil {
		return elementInfo{}, fmt.Errorf("describe: %w", accessibility.ErrUnavailable)
	}
	v := obj.Value
	info := elementInfo{
		Tag:       v.Get("tag").Str(),
		Type:      v.Get("type").Str(),
		Role:      v.Get("role").Str(),
		Title:     v.Get("title").Str(),
		Href:      v.Get("href").Bool(),
		Disabled:  v.Get("disabled").Bool(),
		Clickable: v.Get("clickable").Bool(),
	}
	return info, nil
}

// Role implements accessibility.Node.
func (n *Node) Role() (accessibility.Role, error) {
	info, err := n.describe()
	if err != nil {
		return "", err
	}
	role := info.role()
	if role == accessibility.RoleUnknown {
		return "", accessibility.ErrUnsupported
	}
	return role, nil
}

// Title implements accessibility.Node.
func (n *Node) Title() (string, error) {
	info, err := n.describe()
	if err != nil {
		return "", err
	}
	if info.Title == "" {
		return "", accessibility.ErrNoValue
	}
	return info.Title, nil
}

func (n *Node) box() (geom.Rect, error) {
	if n == nil || n.el == nil || n.released {
		return geom.Rect{}, accessibility.ErrUnavailable
	}
	// Elements without layout, such as display:none, have no content quads.
	shape, err := n.el.Shape()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("shape: %w", accessibility.ErrUnsupported)
	}
	box := shape.Box()
	if box == nil {
		return geom.Rect{}, accessibility.ErrUnsupported
	}
	return geom.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

// Position implements accessibility.Node. Coordinates are CSS pixels
// relative to the viewport.
func (n *Node) Position() (geom.Point, error) {
	r, err := n.box()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: r.X, Y: r.Y}, nil
}

// Size implements accessibility.Node.
func (n *Node) Size() (geom.Size, error) {
	r, err := n.box()
	if err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: r.Width, Height: r.Height}, nil
}

// Children implements accessibility.Node. Children are the element's child
// elements in DOM order.
func (n *Node) Children() ([]accessibility.Node, error) {
	if n == nil || n.el == nil || n.released {
		return nil, accessibility.ErrUnavailable
	}
	els, err := n.el.Elements(":scope > *")
	if err != nil {
		return nil, fmt.Errorf("children: %w", accessibility.ErrUnsupported)
	}
	out := make([]accessibility.Node, 0, len(els))
	for _, el := range els {
		out = append(out, newNode(el, n.timeout))
	}
	return out, nil
}

// Actions implements accessibility.Node.
func (n *Node) Actions() ([]accessibility.Action, error) {
	info, err := n.describe()
	if err != nil {
		return nil, err
	}
	return info.actions(), nil
}

// Perform implements accessibility.Node. press is a left click, show-menu a
// right click.
func (n *Node) Perform(action accessibility.Action) error {
	info, err := n.describe()
	if err != nil {
		return err
	}
	if info.Disabled {
		return accessibility.ErrDisabled
	}
	if !listed(info.actions(), action) {
		return accessibility.ErrUnsupported
	}
	el := n.el.Timeout(n.timeout)
	defer el.CancelTimeout()
	switch action {
	case accessibility.ActionPress:
		err = el.Click(proto.InputMouseButtonLeft, 1)
	case accessibility.ActionShowMenu:
		err = el.Click(proto.InputMouseButtonRight, 1)
	case accessibility.ActionFocus:
		err = el.Focus()
	case accessibility.ActionActivate:
		_, err = el.Eval(`function () { this.click() }`)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", action, info.Tag, err)
	}
	return nil
}

// Release implements accessibility.Node.
func (n *Node) Release() {
	if n == nil || n.el == nil || n.released {
		return
	}
	n.released = true
	_ = n.el.Release()
}

func listed(actions []accessibility.Action, action accessibility.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

var _ accessibility.Node = (*Node)(nil)
