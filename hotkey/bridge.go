// Package hotkey connects a hint session to an app loop. Hotkeys start and
// toggle scans; while labels are showing, keystrokes reach the session
// before the widget tree.
package hotkey

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/odvcencio/furry-hints/match"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
)

// Hotkey names bound in the keymap.
const (
	NameWindow = "hints.window"
	NameChrome = "hints.chrome"
)

// Keymap binds the window and chrome chords. An empty chord leaves that mode
// unbound.
func Keymap(window, chrome string) (*runtime.Keymap, error) {
	km := runtime.NewKeymap()
	if window != "" {
		if err := km.Bind(NameWindow, window); err != nil {
			return nil, fmt.Errorf("window hotkey: %w", err)
		}
	}
	if chrome != "" {
		if err := km.Bind(NameChrome, chrome); err != nil {
			return nil, fmt.Errorf("chrome hotkey: %w", err)
		}
	}
	return km, nil
}

// Bridge routes app input into a session controller.
type Bridge struct {
	controller *session.Controller
	onError    func(error)
	logger     *slog.Logger
	extra      []binding
}

type binding struct {
	name  string
	chord string
	fn    func(app *runtime.App) bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithErrorHandler receives activation failures, such as an empty scan.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bridge) {
		b.onError = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a bridge for controller.
func New(controller *session.Controller, opts ...Option) *Bridge {
	b := &Bridge{
		controller: controller,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Bind adds an application hotkey installed alongside the hint chords. fn
// runs on the app loop and reports whether the screen needs a redraw.
func (b *Bridge) Bind(name, chord string, fn func(app *runtime.App) bool) {
	if b == nil || fn == nil {
		return
	}
	b.extra = append(b.extra, binding{name: name, chord: chord, fn: fn})
}

// Install binds the window and chrome chords on app and routes its input
// through the bridge. Call it before app.Run.
func (b *Bridge) Install(app *runtime.App, window, chrome string) error {
	km, err := Keymap(window, chrome)
	if err != nil {
		return err
	}
	for _, extra := range b.extra {
		if err := km.Bind(extra.name, extra.chord); err != nil {
			return fmt.Errorf("%s hotkey: %w", extra.name, err)
		}
	}
	app.SetKeymap(km)
	app.SetKeyHandler(b)
	app.SetHotkeyHandler(b.HandleHotkey)
	return nil
}

// HandleKey implements runtime.KeyHandler. Keys pass through untouched unless
// labels are showing.
func (b *Bridge) HandleKey(app *runtime.App, msg runtime.KeyMsg, focused runtime.Widget) bool {
	if b == nil || b.controller == nil {
		return false
	}
	if b.controller.State() != session.ShowingLabels {
		return false
	}
	return b.controller.HandleKey(match.FromEvent(msg.Event()))
}

// HandleHotkey starts or toggles a scan for the named mode.
func (b *Bridge) HandleHotkey(app *runtime.App, msg runtime.HotkeyMsg) bool {
	if b == nil || b.controller == nil {
		return false
	}
	var mode session.Mode
	switch msg.Name {
	case NameWindow:
		mode = session.ModeWindow
	case NameChrome:
		mode = session.ModeChrome
	default:
		for _, extra := range b.extra {
			if extra.name == msg.Name {
				return extra.fn(app)
			}
		}
		return false
	}
	if err := b.controller.Activate(mode); err != nil {
		b.logger.Info("activation failed", "mode", mode.String(), "err", err)
		if b.onError != nil {
			b.onError(err)
		}
	}
	return true
}

var _ runtime.KeyHandler = (*Bridge)(nil)
