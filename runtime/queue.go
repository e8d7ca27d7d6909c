package runtime

import "github.com/odvcencio/furry-hints/state"

// QueueFlushPolicy configures when the app flushes its state queue.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes on any message or tick.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes on messages except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only on TickMsg.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

// WithQueue wraps update to flush queue on TickMsg or QueueFlushMsg.
// If update is nil, DefaultUpdate is used.
func WithQueue(queue *state.Queue, update UpdateFunc) UpdateFunc {
	if update == nil {
		update = DefaultUpdate
	}
	return func(app *App, msg Message) bool {
		dirty := update(app, msg)
		if queue != nil && shouldFlushQueue(FlushOnTick, msg) && queue.Flush() > 0 {
			dirty = true
		}
		return dirty
	}
}

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, isTick := msg.(TickMsg)
	switch policy {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !isTick
	case FlushOnTick:
		return isTick
	default:
		return true
	}
}

// QueueScheduler enqueues callbacks on a state queue and wakes the loop to
// flush it. Concurrent schedules coalesce into one QueueFlushMsg per flush.
type QueueScheduler struct {
	queue *state.Queue
}

// NewQueueScheduler wires queue to post. The queue's wake hook is replaced.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	if post != nil {
		queue.SetWake(func() bool {
			return post(QueueFlushMsg{})
		})
	}
	return &QueueScheduler{queue: queue}
}

// Schedule implements state.Scheduler.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil {
		return
	}
	s.queue.Schedule(fn)
}
