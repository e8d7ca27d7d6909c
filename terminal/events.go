package terminal

// Event is an input event from a backend.
type Event interface {
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports new terminal dimensions.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// InterruptEvent wakes a blocked PollEvent without carrying input.
type InterruptEvent struct {
	Data any
}

func (InterruptEvent) isEvent() {}
