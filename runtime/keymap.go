package runtime

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/odvcencio/furry-hints/terminal"
)

// Chord is a key plus modifiers, written like "ctrl+f" or "alt+shift+f2".
type Chord struct {
	Key   terminal.Key
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// ParseChord parses a chord string. Modifier names are ctrl, alt and shift.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Chord{}, fmt.Errorf("empty chord %q", s)
	}
	var c Chord
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "meta":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", mod, s)
		}
	}
	name := parts[len(parts)-1]
	if key, ok := terminal.ParseKey(name); ok && key != terminal.KeyRune && key != terminal.KeyNone {
		c.Key = key
		return c, nil
	}
	if name == "space" {
		name = " "
	}
	if utf8.RuneCountInString(name) != 1 {
		return Chord{}, fmt.Errorf("unknown key %q in chord %q", name, s)
	}
	c.Key = terminal.KeyRune
	c.Rune, _ = utf8.DecodeRuneInString(name)
	return c, nil
}

// String formats the chord in ParseChord syntax.
func (c Chord) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("ctrl+")
	}
	if c.Alt {
		b.WriteString("alt+")
	}
	if c.Shift {
		b.WriteString("shift+")
	}
	if c.Key == terminal.KeyRune {
		if c.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(c.Rune)
		}
	} else {
		b.WriteString(c.Key.String())
	}
	return b.String()
}

func chordOf(msg KeyMsg) Chord {
	c := Chord{Key: msg.Key, Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}
	if msg.Key == terminal.KeyRune {
		r := msg.Rune
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
			c.Shift = true
		}
		c.Rune = r
	}
	return c
}

// Keymap binds chords to hotkey names.
type Keymap struct {
	bindings map[Chord]string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[Chord]string)}
}

// Bind maps chord to name, replacing any earlier binding of the chord.
func (k *Keymap) Bind(name, chord string) error {
	if k == nil {
		return fmt.Errorf("nil keymap")
	}
	c, err := ParseChord(chord)
	if err != nil {
		return err
	}
	if k.bindings == nil {
		k.bindings = make(map[Chord]string)
	}
	k.bindings[c] = name
	return nil
}

// Resolve returns the hotkey bound to msg.
func (k *Keymap) Resolve(msg KeyMsg) (string, bool) {
	if k == nil || len(k.bindings) == 0 {
		return "", false
	}
	name, ok := k.bindings[chordOf(msg)]
	return name, ok
}

// Bindings returns a copy of the chord to name map.
func (k *Keymap) Bindings() map[string]string {
	out := make(map[string]string)
	if k == nil {
		return out
	}
	for c, name := range k.bindings {
		out[c.String()] = name
	}
	return out
}
