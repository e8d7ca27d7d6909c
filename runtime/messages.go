package runtime

import (
	"time"

	"github.com/odvcencio/furry-hints/terminal"
)

// Message is an event flowing into the loop from input, timers or
// background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg is a key press.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// Event returns the key as a terminal event.
func (m KeyMsg) Event() terminal.KeyEvent {
	return terminal.KeyEvent{Key: m.Key, Rune: m.Rune, Alt: m.Alt, Ctrl: m.Ctrl, Shift: m.Shift}
}

// ResizeMsg reports a new terminal size.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// HotkeyMsg is a key press the keymap bound to a named hotkey.
type HotkeyMsg struct {
	Name string
	Key  KeyMsg
}

func (HotkeyMsg) isMessage() {}

// TickMsg is sent on each frame tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// TimerMsg delivers a loop timer expiry.
type TimerMsg struct {
	ID uint64
}

func (TimerMsg) isMessage() {}

// QueueFlushMsg triggers a state queue flush.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}
