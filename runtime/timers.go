package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/odvcencio/furry-hints/state"
)

type loopTimer struct {
	fn     func()
	cancel context.CancelFunc
}

// LoopTimers implements state.Timers on top of the app loop. Each timer waits
// in an effect goroutine and posts a TimerMsg; the callback itself runs on
// the loop, so it never overlaps a key handler. Cancelling on the loop
// before the message is processed guarantees the callback does not run.
type LoopTimers struct {
	app     *App
	mu      sync.Mutex
	next    uint64
	pending map[uint64]*loopTimer
}

// NewLoopTimers creates loop timers for app.
func NewLoopTimers(app *App) *LoopTimers {
	return &LoopTimers{app: app, pending: make(map[uint64]*loopTimer)}
}

// ScheduleOnce implements state.Timers.
func (t *LoopTimers) ScheduleOnce(delay time.Duration, fn func()) state.CancelFunc {
	if t == nil || t.app == nil || fn == nil {
		return func() bool { return false }
	}
	ctx, cancel := context.WithCancel(t.app.taskContext())
	t.mu.Lock()
	t.next++
	id := t.next
	t.pending[id] = &loopTimer{fn: fn, cancel: cancel}
	t.mu.Unlock()

	t.app.runEffect(Effect{Run: func(context.Context, PostFunc) {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			t.app.postWait(ctx, TimerMsg{ID: id})
		}
	}})

	return func() bool {
		return t.take(id) != nil
	}
}

// Pending returns the number of timers that have neither fired nor been
// cancelled.
func (t *LoopTimers) Pending() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// fire runs the callback for id, if still pending. It must be called on the
// loop goroutine.
func (t *LoopTimers) fire(id uint64) bool {
	timer := t.take(id)
	if timer == nil {
		return false
	}
	timer.fn()
	return true
}

func (t *LoopTimers) take(id uint64) *loopTimer {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	timer, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	t.mu.Unlock()
	if !ok {
		return nil
	}
	timer.cancel()
	return timer
}

func (t *LoopTimers) stopAll() {
	if t == nil {
		return
	}
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[uint64]*loopTimer)
	t.mu.Unlock()
	for _, timer := range pending {
		timer.cancel()
	}
}
