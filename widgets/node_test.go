package widgets

import (
	"errors"
	"testing"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/collect"
	"github.com/odvcencio/furry-hints/runtime"
)

type demo struct {
	stack *Stack
	save  *Button
	one   *Radio
	two   *Radio
	menu  *Menu
	tabs  *Tabs
	inner *Button
}

func newDemo() *demo {
	d := &demo{}
	group := NewRadioGroup()
	d.save = NewButton("save", nil)
	d.one = NewRadio("one", group)
	d.two = NewRadio("two", group)
	d.menu = NewMenu(
		&MenuItem{Title: "File", Children: []*MenuItem{{Title: "Open"}, {Title: "Close"}}},
		&MenuItem{Title: "Quit"},
	)
	d.inner = NewButton("inner", nil)
	d.tabs = NewTabs(Tab{Title: "A", Content: d.inner}, Tab{Title: "B", Content: NewLabel("empty")})
	d.stack = NewStack(NewLabel("title"), d.save, d.one, d.two, d.menu, d.tabs)
	d.stack.Layout(runtime.Rect{Width: 40, Height: 20})
	return d
}

func titles(t *testing.T, elements []collect.Element) []string {
	t.Helper()
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		title, err := el.Node.Title()
		if err != nil {
			t.Fatalf("title: %v", err)
		}
		out = append(out, title)
	}
	return out
}

func find(t *testing.T, elements []collect.Element, title string) collect.Element {
	t.Helper()
	for _, el := range elements {
		if got, _ := el.Node.Title(); got == title {
			return el
		}
	}
	t.Fatalf("no element titled %q", title)
	return collect.Element{}
}

func collectTree(t *testing.T, root accessibility.Node) []collect.Element {
	t.Helper()
	elements, err := collect.New().Collect(root, collect.DefaultMaxDepth)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return elements
}

func TestTree_CollectsInteractiveWidgets(t *testing.T) {
	d := newDemo()
	elements := collectTree(t, Tree(d.stack, 10, 20))
	got := titles(t, elements)
	want := []string{"save", "one", "two", "File", "Quit", "A", "B", "inner"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	save := find(t, elements, "save")
	if save.Frame.Y != 20 || save.Frame.Height != 20 || save.Frame.Width != 400 {
		t.Fatalf("expected scaled frame, got %+v", save.Frame)
	}
	tab := find(t, elements, "B")
	if tab.Frame.X != 30 || tab.Frame.Width != 30 {
		t.Fatalf("expected second tab header at x=30 w=30, got %+v", tab.Frame)
	}
}

func TestTree_PressButton(t *testing.T) {
	d := newDemo()
	elements := collectTree(t, Tree(d.stack, 10, 20))
	if err := accessibility.Perform(find(t, elements, "save").Node, accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	if d.save.Presses() != 1 {
		t.Fatalf("expected one press, got %d", d.save.Presses())
	}
	if err := find(t, elements, "save").Node.Perform(accessibility.ActionShowMenu); !errors.Is(err, accessibility.ErrUnsupported) {
		t.Fatalf("expected unsupported show-menu, got %v", err)
	}
}

func TestTree_DisabledButton(t *testing.T) {
	d := newDemo()
	d.save.SetDisabled(true)
	elements := collectTree(t, Tree(d.stack, 10, 20))
	err := find(t, elements, "save").Node.Perform(accessibility.ActionPress)
	if !errors.Is(err, accessibility.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if d.save.Presses() != 0 {
		t.Fatalf("disabled button fired")
	}
}

func TestTree_RadioSelects(t *testing.T) {
	d := newDemo()
	elements := collectTree(t, Tree(d.stack, 10, 20))
	if err := find(t, elements, "two").Node.Perform(accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	if !d.two.Selected() || d.one.Selected() {
		t.Fatalf("expected two selected")
	}
	if !d.two.AccessibleState().Selected {
		t.Fatalf("expected accessible state to follow selection")
	}
}

func TestTree_MenuOpensSubmenu(t *testing.T) {
	d := newDemo()
	elements := collectTree(t, Tree(d.stack, 10, 20))
	file := find(t, elements, "File").Node
	if err := accessibility.Perform(file, accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	sub, ok := file.(accessibility.SubmenuNode).Submenu()
	if !ok {
		t.Fatalf("expected a submenu after opening File")
	}
	if role, _ := sub.Role(); role != accessibility.RoleMenu {
		t.Fatalf("expected menu role, got %q", role)
	}
	children := collectTree(t, sub)
	got := titles(t, children)
	if len(got) != 2 || got[0] != "Open" || got[1] != "Close" {
		t.Fatalf("expected Open and Close, got %v", got)
	}
	// Menu rows start at y=4; the submenu rows follow File.
	if children[0].Frame.Y != 100 {
		t.Fatalf("expected Open at y=100, got %v", children[0].Frame.Y)
	}
}

func TestTree_LeafMenuItemHasNoSubmenu(t *testing.T) {
	d := newDemo()
	fired := 0
	d.menu.Items[1].OnSelect = func() { fired++ }
	elements := collectTree(t, Tree(d.stack, 10, 20))
	quit := find(t, elements, "Quit").Node
	if err := quit.Perform(accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected OnSelect once, got %d", fired)
	}
	if _, ok := quit.(accessibility.SubmenuNode).Submenu(); ok {
		t.Fatalf("leaf item reported a submenu")
	}
}

func TestTree_TabHeaderSwitchesContent(t *testing.T) {
	d := newDemo()
	elements := collectTree(t, Tree(d.stack, 10, 20))
	if err := find(t, elements, "B").Node.Perform(accessibility.ActionPress); err != nil {
		t.Fatalf("press: %v", err)
	}
	if d.tabs.Selected() != 1 {
		t.Fatalf("expected tab B selected")
	}
	for _, title := range titles(t, collectTree(t, Tree(d.stack, 10, 20))) {
		if title == "inner" {
			t.Fatalf("content of the hidden tab was scanned")
		}
	}
}

func TestTree_ReleasedNodeIsUnavailable(t *testing.T) {
	d := newDemo()
	root := Tree(d.save, 1, 1)
	root.Release()
	if _, err := root.Role(); !errors.Is(err, accessibility.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable after release, got %v", err)
	}
}

func TestHost_FocusAction(t *testing.T) {
	d := newDemo()
	screen := runtime.NewScreen(40, 20)
	screen.SetRoot(d.stack)
	host := NewHost(screen, d.menu, 10, 20)

	if rect := host.ScreenRect(); rect.Width != 400 || rect.Height != 400 {
		t.Fatalf("expected 400x400 screen rect, got %+v", rect)
	}
	root, err := host.ForegroundRoot()
	if err != nil {
		t.Fatalf("foreground root: %v", err)
	}
	two := find(t, collectTree(t, root), "two").Node
	if !accessibility.Supports(two, accessibility.ActionFocus) {
		t.Fatalf("expected focus action through the host")
	}
	if err := two.Perform(accessibility.ActionFocus); err != nil {
		t.Fatalf("focus: %v", err)
	}
	if !d.two.IsFocused() || d.save.IsFocused() {
		t.Fatalf("expected focus on two")
	}
	if d.two.Selected() {
		t.Fatalf("focus must not select")
	}
}

func TestHost_ChromeRoot(t *testing.T) {
	d := newDemo()
	screen := runtime.NewScreen(40, 20)
	screen.SetRoot(d.stack)

	host := NewHost(screen, nil, 10, 20)
	if _, err := host.ChromeRoot(); !errors.Is(err, accessibility.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without chrome, got %v", err)
	}
	host.SetChrome(d.menu)
	chrome, err := host.ChromeRoot()
	if err != nil {
		t.Fatalf("chrome root: %v", err)
	}
	got := titles(t, collectTree(t, chrome))
	if len(got) != 2 || got[0] != "File" {
		t.Fatalf("expected menu rows, got %v", got)
	}
}

func TestHost_ForegroundScope(t *testing.T) {
	d := newDemo()
	screen := runtime.NewScreen(40, 20)
	screen.SetRoot(d.stack)
	host := NewHost(screen, d.menu, 10, 20)
	host.SetForeground(d.tabs)
	root, err := host.ForegroundRoot()
	if err != nil {
		t.Fatalf("foreground root: %v", err)
	}
	got := titles(t, collectTree(t, root))
	if len(got) != 3 || got[0] != "A" || got[2] != "inner" {
		t.Fatalf("expected only the tabs subtree, got %v", got)
	}
}

func TestHost_EmptyScreen(t *testing.T) {
	host := NewHost(runtime.NewScreen(10, 10), nil, 1, 1)
	if _, err := host.ForegroundRoot(); !errors.Is(err, accessibility.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestMenuBar_Roles(t *testing.T) {
	bar := NewMenuBar(&MenuItem{Title: "File"})
	bar.Layout(runtime.Rect{Width: 10, Height: 1})
	if bar.AccessibleRole() != accessibility.RoleMenuBar {
		t.Fatalf("expected menubar role")
	}
	parts := bar.AccessibleParts()
	if len(parts) != 1 || parts[0].Role != accessibility.RoleMenuBarItem {
		t.Fatalf("expected one menubar item, got %+v", parts)
	}
}
