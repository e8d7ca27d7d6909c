package runtime

import (
	"testing"

	"github.com/odvcencio/furry-hints/terminal"
)

func TestParseChord(t *testing.T) {
	cases := []struct {
		in   string
		want Chord
	}{
		{"ctrl+f", Chord{Key: terminal.KeyRune, Rune: 'f', Ctrl: true}},
		{"Alt+Shift+F2", Chord{Key: terminal.KeyF2, Alt: true, Shift: true}},
		{"f5", Chord{Key: terminal.KeyF5}},
		{"ctrl+space", Chord{Key: terminal.KeyRune, Rune: ' ', Ctrl: true}},
	}
	for _, tc := range cases {
		got, err := ParseChord(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseChord_Errors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "hyper+f", "ctrl+nope"} {
		if _, err := ParseChord(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestChord_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"ctrl+f", "alt+shift+f2", "ctrl+space"} {
		c, err := ParseChord(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if c.String() != in {
			t.Fatalf("expected %q, got %q", in, c.String())
		}
	}
}

func TestKeymap_Resolve(t *testing.T) {
	km := NewKeymap()
	if err := km.Bind("window", "ctrl+f"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := km.Bind("chrome", "ctrl+shift+f"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if name, ok := km.Resolve(KeyMsg{Key: terminal.KeyRune, Rune: 'f', Ctrl: true}); !ok || name != "window" {
		t.Fatalf("expected window, got %q %v", name, ok)
	}
	if name, ok := km.Resolve(KeyMsg{Key: terminal.KeyRune, Rune: 'F', Ctrl: true}); !ok || name != "chrome" {
		t.Fatalf("expected uppercase rune to imply shift, got %q %v", name, ok)
	}
	if _, ok := km.Resolve(KeyMsg{Key: terminal.KeyRune, Rune: 'f'}); ok {
		t.Fatalf("expected plain f unbound")
	}
	var nilMap *Keymap
	if _, ok := nilMap.Resolve(KeyMsg{}); ok {
		t.Fatalf("expected nil keymap to resolve nothing")
	}
}
