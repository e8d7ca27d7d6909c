package runtime

import "context"

// Command is an intent emitted by widgets. Commands bubble up from widgets to
// the screen and then to the app.
type Command interface {
	Command()
}

// PostFunc sends a message into the app.
// It returns false when the message queue is full.
type PostFunc func(Message) bool

// Quit signals the application should exit.
type Quit struct{}

func (Quit) Command() {}

// Refresh requests a full redraw.
type Refresh struct{}

func (Refresh) Command() {}

// SendMsg posts a message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps a message in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// Activated reports that a widget performed its primary action.
type Activated struct {
	ID     string
	Action string
}

func (Activated) Command() {}

// Effect runs work in a background goroutine.
// Use the provided context for cancellation and PostFunc to emit messages.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// FocusNext requests focus move to the next focusable widget.
type FocusNext struct{}

func (FocusNext) Command() {}

// FocusPrev requests focus move to the previous focusable widget.
type FocusPrev struct{}

func (FocusPrev) Command() {}

// PushOverlay requests a layer be pushed.
type PushOverlay struct {
	Widget Widget
	Modal  bool
}

func (PushOverlay) Command() {}

// PopOverlay requests the top layer be dismissed.
type PopOverlay struct{}

func (PopOverlay) Command() {}
