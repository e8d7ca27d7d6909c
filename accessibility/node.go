package accessibility

import (
	"fmt"

	"github.com/odvcencio/furry-hints/geom"
)

// Node is a live handle into a host's control tree.
// Every read is a round trip to the host and may fail independently.
// Node identity is interface equality.
type Node interface {
	Role() (Role, error)
	Title() (string, error)
	Position() (geom.Point, error)
	Size() (geom.Size, error)
	// Children returns handles owned by the caller.
	Children() ([]Node, error)
	Actions() ([]Action, error)
	Perform(action Action) error
	// Release drops the host-side reference. Release is idempotent.
	Release()
}

// SubmenuNode is implemented by nodes that may open a submenu when activated.
type SubmenuNode interface {
	Submenu() (Node, bool)
}

// Host exposes the roots a scan starts from.
type Host interface {
	// ForegroundRoot returns the focused window of the foreground application.
	ForegroundRoot() (Node, error)
	// ChromeRoot returns a best-effort root for system chrome such as menu bars.
	ChromeRoot() (Node, error)
	// ScreenRect returns the reference screen rectangle.
	ScreenRect() geom.Rect
}

// Frame reads position and size and composes them.
func Frame(n Node) (geom.Rect, error) {
	if n == nil {
		return geom.Rect{}, ErrUnavailable
	}
	pos, err := n.Position()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("position: %w", err)
	}
	size, err := n.Size()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("size: %w", err)
	}
	return geom.FromPointSize(pos, size), nil
}

// Supports reports whether n lists action. Read failures count as unsupported.
func Supports(n Node, action Action) bool {
	if n == nil {
		return false
	}
	actions, err := n.Actions()
	if err != nil {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// Perform runs action on n, falling back from press to activate for nodes
// that only expose the toolkit-neutral name.
func Perform(n Node, action Action) error {
	if n == nil {
		return ErrUnavailable
	}
	err := n.Perform(action)
	if err == nil || action != ActionPress {
		return err
	}
	if Supports(n, ActionActivate) {
		return n.Perform(ActionActivate)
	}
	return err
}
