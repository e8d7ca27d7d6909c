package runtime

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when detached.
type Unbindable interface {
	Unbind()
}

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// BindTree calls Bind on every Bindable widget, parents first.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	Walk(root, func(w Widget) bool {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
		return true
	})
}

// MountTree calls Mount on every Lifecycle widget, parents first.
func MountTree(root Widget) {
	Walk(root, func(w Widget) bool {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
		return true
	})
}

// UnbindTree calls Unbind on every Unbindable widget, children first.
func UnbindTree(root Widget) {
	walkPost(root, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

// UnmountTree calls Unmount on every Lifecycle widget, children first.
func UnmountTree(root Widget) {
	walkPost(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

func attachTree(root Widget, services Services, bounds Rect) {
	if root == nil {
		return
	}
	BindTree(root, services)
	root.Layout(bounds)
	MountTree(root)
}

func detachTree(root Widget) {
	if root == nil {
		return
	}
	UnmountTree(root)
	UnbindTree(root)
}

func walkPost(w Widget, fn func(Widget)) {
	if w == nil {
		return
	}
	if parent, ok := w.(ChildProvider); ok {
		for _, child := range parent.ChildWidgets() {
			walkPost(child, fn)
		}
	}
	fn(w)
}
