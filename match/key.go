package match

import (
	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/terminal"
)

// Key is one classified key-down event.
type Key struct {
	Code terminal.Key
	Rune rune
	// Shift requests the secondary action.
	Shift bool
	// Primary is the platform's primary modifier (Ctrl here) and requests
	// the tertiary action.
	Primary bool
}

// Letter builds a plain letter key.
func Letter(r rune) Key {
	return Key{Code: terminal.KeyRune, Rune: r}
}

// FromEvent classifies a backend key event.
func FromEvent(ev terminal.KeyEvent) Key {
	return Key{Code: ev.Key, Rune: ev.Rune, Shift: ev.Shift, Primary: ev.Ctrl}
}

// Action returns the action variant selected by the key's modifiers.
func (k Key) Action() accessibility.Action {
	switch {
	case k.Primary:
		return accessibility.ActionFocus
	case k.Shift:
		return accessibility.ActionShowMenu
	default:
		return accessibility.ActionPress
	}
}

// letter returns the lowercase a-z letter for k, if any. Uppercase runes
// imply Shift.
func (k Key) letter() (rune, bool) {
	if k.Code != terminal.KeyRune {
		return 0, false
	}
	r := k.Rune
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return r, true
}
