package state

import (
	"sort"
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. It returns true if the call
// prevented the callback from running.
type CancelFunc func() bool

// Timers schedules one-shot callbacks.
type Timers interface {
	ScheduleOnce(delay time.Duration, fn func()) CancelFunc
}

// TimersFunc adapts a function into Timers.
type TimersFunc func(time.Duration, func()) CancelFunc

// ScheduleOnce dispatches to the wrapped function.
func (f TimersFunc) ScheduleOnce(delay time.Duration, fn func()) CancelFunc {
	if f == nil || fn == nil {
		return func() bool { return false }
	}
	return f(delay, fn)
}

type manualTimer struct {
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
	fired     bool
}

// ManualTimers is a deterministic Timers advanced explicitly.
// Callbacks run in the goroutine calling Advance.
type ManualTimers struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

// NewManualTimers creates a manual clock at zero.
func NewManualTimers() *ManualTimers {
	return &ManualTimers{}
}

// ScheduleOnce registers fn to run once the clock passes delay.
func (m *ManualTimers) ScheduleOnce(delay time.Duration, fn func()) CancelFunc {
	if m == nil || fn == nil {
		return func() bool { return false }
	}
	m.mu.Lock()
	m.seq++
	t := &manualTimer{due: m.now + delay, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	m.mu.Unlock()
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t.fired || t.cancelled {
			return false
		}
		t.cancelled = true
		m.removeLocked(t)
		return true
	}
}

// Advance moves the clock forward and runs every due callback in due order.
// It returns the number of callbacks run.
func (m *ManualTimers) Advance(d time.Duration) int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	m.now += d
	due := make([]*manualTimer, 0, len(m.pending))
	for _, t := range m.pending {
		if t.due <= m.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	m.mu.Unlock()

	fired := 0
	for _, t := range due {
		m.mu.Lock()
		if t.cancelled || t.fired {
			m.mu.Unlock()
			continue
		}
		t.fired = true
		m.removeLocked(t)
		m.mu.Unlock()
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of scheduled, unfired callbacks.
func (m *ManualTimers) Pending() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ManualTimers) removeLocked(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
