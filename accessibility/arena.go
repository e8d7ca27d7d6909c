package accessibility

// Arena owns node handles for one scan episode and releases them together.
type Arena struct {
	nodes []Node
}

// Retain takes ownership of n.
func (a *Arena) Retain(n Node) {
	if a == nil || n == nil {
		return
	}
	a.nodes = append(a.nodes, n)
}

// Len returns the number of retained handles.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.nodes)
}

// Release drops every retained handle, newest first.
func (a *Arena) Release() {
	if a == nil {
		return
	}
	for i := len(a.nodes) - 1; i >= 0; i-- {
		a.nodes[i].Release()
		a.nodes[i] = nil
	}
	a.nodes = a.nodes[:0]
}

// ReleaseAll releases every node in nodes.
func ReleaseAll(nodes []Node) {
	for _, n := range nodes {
		if n != nil {
			n.Release()
		}
	}
}
