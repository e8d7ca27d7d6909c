package state

// Readable is a value others can watch, such as a session's state or typed
// prefix.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable is a Readable its owner can also set.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
}
