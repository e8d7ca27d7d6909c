package runtime

import "sync/atomic"

// Invalidator requests render passes. Requests made before the loop handles
// the pending InvalidateMsg share one message; take reports how many there
// were.
type Invalidator struct {
	post     func(Message) bool
	requests atomic.Int64
}

// NewInvalidator creates an invalidator wired to a post function.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{post: post}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i == nil || i.post == nil {
		return
	}
	if i.requests.Add(1) == 1 && !i.post(InvalidateMsg{}) {
		i.requests.Store(0)
	}
}

// Schedule implements state.Scheduler: it runs fn inline and requests a
// render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

// take clears the pending request count and returns it.
func (i *Invalidator) take() int {
	if i == nil {
		return 0
	}
	return int(i.requests.Swap(0))
}
