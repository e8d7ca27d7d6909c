package widgets

import (
	"testing"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/terminal"
)

func TestInput_PressFocusesThroughHost(t *testing.T) {
	save := NewButton("save", nil)
	name := NewInput("Name")
	screen := runtime.NewScreen(40, 10)
	screen.SetRoot(NewStack(save, name))
	host := NewHost(screen, nil, 10, 20)

	root, err := host.ForegroundRoot()
	if err != nil {
		t.Fatalf("foreground root: %v", err)
	}
	el := find(t, collectTree(t, root), "Name")
	if role, _ := el.Node.Role(); role != accessibility.RoleTextbox {
		t.Fatalf("expected textbox role, got %q", role)
	}
	if err := accessibility.Perform(el.Node, accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	if !name.IsFocused() || save.IsFocused() {
		t.Fatalf("expected press to focus the input")
	}
}

func TestInput_PressWithoutScopeUnsupported(t *testing.T) {
	name := NewInput("Name")
	stack := NewStack(name)
	stack.Layout(runtime.Rect{Width: 20, Height: 1})
	elements := collectTree(t, Tree(stack, 10, 20))
	if len(elements) != 1 {
		t.Fatalf("expected the textbox collected by role, got %d", len(elements))
	}
	if err := elements[0].Node.Perform(accessibility.ActionPress); err == nil {
		t.Fatalf("expected an error without a focus scope")
	}
}

func TestInput_Editing(t *testing.T) {
	in := NewInput("Name")
	in.Focus()
	var changes []string
	in.OnChange(func(text string) { changes = append(changes, text) })
	submitted := ""
	in.OnSubmit(func(text string) { submitted = text })

	for _, r := range "héllo" {
		in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: r})
	}
	in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyLeft})
	in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyBackspace})
	if in.Text() != "hélo" || in.CursorPos() != 3 {
		t.Fatalf("unexpected text %q cursor %d", in.Text(), in.CursorPos())
	}
	in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyHome})
	in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyDelete})
	if in.Text() != "élo" {
		t.Fatalf("unexpected text after delete %q", in.Text())
	}
	if res := in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'f', Ctrl: true}); res.Handled {
		t.Fatalf("ctrl chords must pass through")
	}
	in.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})
	if submitted != "élo" {
		t.Fatalf("expected submit, got %q", submitted)
	}
	if len(changes) != 7 {
		t.Fatalf("expected 7 change events, got %d", len(changes))
	}
	if v := in.AccessibleValue(); v == nil || v.Text != "élo" {
		t.Fatalf("expected accessible value to follow text, got %v", v)
	}
}
