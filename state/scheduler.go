package state

import "sync"

// Scheduler dispatches subscription callbacks.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using the wrapped function.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// DirectScheduler runs callbacks immediately in the caller goroutine.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// Queue batches callbacks until the owning loop flushes them. Schedule may be
// called from any goroutine; Flush belongs to the loop.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    func() bool
	woken   bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// SetWake installs the func that asks the loop for a flush. It runs once
// when the first callback lands in an empty queue and again only after a
// Flush. If it reports false the next Schedule retries.
func (q *Queue) SetWake(wake func() bool) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.wake = wake
	q.woken = false
	q.mu.Unlock()
}

// Schedule enqueues fn.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	wake := q.wake
	if wake == nil || q.woken {
		q.mu.Unlock()
		return
	}
	q.woken = true
	q.mu.Unlock()

	if !wake() {
		q.mu.Lock()
		q.woken = false
		q.mu.Unlock()
	}
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the queued callbacks in order and returns how many ran.
// Callbacks scheduled while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.woken = false
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}
