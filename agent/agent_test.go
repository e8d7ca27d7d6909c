package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/accessibility/fake"
	"github.com/odvcencio/furry-hints/geom"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/state"
)

func newAgent(t *testing.T, titles ...string) (*Agent, []*fake.Node, *state.ManualTimers) {
	t.Helper()
	buttons := make([]*fake.Node, len(titles))
	for i, title := range titles {
		frame := geom.Rect{X: float64(i%30) * 30, Y: float64(i/30) * 30, Width: 20, Height: 20}
		buttons[i] = fake.Button(title, frame)
	}
	host := &fake.Host{
		Root:   fake.Group("window", buttons...),
		Screen: geom.Rect{Width: 1000, Height: 1000},
	}
	timers := state.NewManualTimers()
	c := session.New(host, nil, timers)
	return New(c, WithClock(timers)), buttons, timers
}

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %02d", i)
	}
	return out
}

func TestAgent_ScanReportsLabels(t *testing.T) {
	a, _, _ := newAgent(t, "Save", "Open", "Quit")
	snap, err := a.Scan(session.ModeWindow)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if snap.State != "showing-labels" || snap.Mode != "window" {
		t.Fatalf("unexpected snapshot state %q mode %q", snap.State, snap.Mode)
	}
	if snap.ID == "" || snap.Episode == "" {
		t.Fatalf("expected snapshot and episode ids")
	}
	if len(snap.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(snap.Elements))
	}
	want := []string{"a", "s", "d"}
	for i, el := range snap.Elements {
		if el.Label != want[i] {
			t.Fatalf("element %d: expected label %q, got %q", i, want[i], el.Label)
		}
		if el.Role != accessibility.RoleButton || !el.Matched {
			t.Fatalf("element %d: unexpected %+v", i, el)
		}
	}
	if snap.Elements[1].Title != "Open" {
		t.Fatalf("expected Open second, got %q", snap.Elements[1].Title)
	}
}

func TestAgent_SelectPresses(t *testing.T) {
	a, buttons, _ := newAgent(t, "Save", "Open", "Quit")
	if _, err := a.Scan(session.ModeWindow); err != nil {
		t.Fatalf("scan: %v", err)
	}
	snap, err := a.Select("open", accessibility.ActionPress)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if snap.State != "idle" {
		t.Fatalf("expected idle after select, got %q", snap.State)
	}
	if len(buttons[1].Performed) != 1 || buttons[1].Performed[0] != accessibility.ActionPress {
		t.Fatalf("expected press on Open, got %v", buttons[1].Performed)
	}
	if len(buttons[0].Performed) != 0 || len(buttons[2].Performed) != 0 {
		t.Fatalf("only Open should be pressed")
	}
}

func TestAgent_SelectModifiers(t *testing.T) {
	cases := []struct {
		action accessibility.Action
	}{
		{accessibility.ActionFocus},
		{accessibility.ActionShowMenu},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			a, buttons, _ := newAgent(t, "Save", "Open")
			if _, err := a.Scan(session.ModeWindow); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if _, err := a.Select("save", tc.action); err != nil {
				t.Fatalf("select: %v", err)
			}
			got := buttons[0].Performed
			if len(got) != 1 || got[0] != tc.action {
				t.Fatalf("expected %s, got %v", tc.action, got)
			}
		})
	}
}

func TestAgent_CollisionWaitsForSettle(t *testing.T) {
	a, buttons, timers := newAgent(t, numbered(27)...)
	if _, err := a.Scan(session.ModeWindow); err != nil {
		t.Fatalf("scan: %v", err)
	}
	snap, err := a.Type("a")
	if err != nil {
		t.Fatalf("type: %v", err)
	}
	if snap.State != "showing-labels" || snap.Prefix != "a" {
		t.Fatalf("expected pinned prefix, got state %q prefix %q", snap.State, snap.Prefix)
	}
	if timers.Pending() != 1 {
		t.Fatalf("expected an armed timer, got %d", timers.Pending())
	}
	matched := 0
	for _, el := range snap.Elements {
		if el.Matched {
			matched++
		}
	}
	if matched != 2 {
		t.Fatalf("expected a and aa to match, got %d", matched)
	}

	snap = a.Settle()
	if snap.State != "idle" {
		t.Fatalf("expected idle after settle, got %q", snap.State)
	}
	if len(buttons[0].Performed) != 1 || len(buttons[26].Performed) != 0 {
		t.Fatalf("expected only the first element to fire")
	}
}

func TestAgent_PressEscapeDismisses(t *testing.T) {
	a, buttons, _ := newAgent(t, "Save", "Open")
	if _, err := a.Scan(session.ModeWindow); err != nil {
		t.Fatalf("scan: %v", err)
	}
	snap, err := a.Press("esc")
	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if snap.State != "idle" || len(snap.Elements) != 0 {
		t.Fatalf("expected dismissed session, got %+v", snap)
	}
	for _, b := range buttons {
		if len(b.Performed) != 0 {
			t.Fatalf("escape must not perform actions")
		}
	}
	if _, err := a.Press("esc"); !errors.Is(err, ErrNotShowing) {
		t.Fatalf("expected ErrNotShowing, got %v", err)
	}
	if _, err := a.Type("a"); !errors.Is(err, ErrNotShowing) {
		t.Fatalf("expected ErrNotShowing from type, got %v", err)
	}
}

func TestAgent_PressRejectsBadChord(t *testing.T) {
	a, _, _ := newAgent(t, "Save")
	if _, err := a.Press("ctrl+"); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestAgent_SelectUnknownTitle(t *testing.T) {
	a, _, _ := newAgent(t, "Save")
	if _, err := a.Scan(session.ModeWindow); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := a.Select("missing", accessibility.ActionPress); !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
}

func TestAgent_ScanErrorIsReported(t *testing.T) {
	a, _, _ := newAgent(t)
	snap, err := a.Scan(session.ModeWindow)
	if err == nil {
		t.Fatalf("expected an error for an empty window")
	}
	if snap.State != "idle" || snap.Error == "" {
		t.Fatalf("expected idle snapshot with error, got %+v", snap)
	}
}

func TestAgent_SnapshotJSON(t *testing.T) {
	a, _, _ := newAgent(t, "Save", "Open")
	if _, err := a.Scan(session.ModeWindow); err != nil {
		t.Fatalf("scan: %v", err)
	}
	data, err := a.SnapshotJSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	elements, ok := decoded["elements"].([]any)
	if !ok || len(elements) != 2 {
		t.Fatalf("expected two elements in %s", data)
	}
	first := elements[0].(map[string]any)
	if first["label"] != "a" || first["title"] != "Save" {
		t.Fatalf("unexpected first element %v", first)
	}
}

func TestAgent_NilController(t *testing.T) {
	a := New(nil)
	if _, err := a.Scan(session.ModeWindow); !errors.Is(err, ErrNoController) {
		t.Fatalf("expected ErrNoController, got %v", err)
	}
	if snap := a.Snapshot(); snap.ID == "" {
		t.Fatalf("expected a snapshot id even without a controller")
	}
}

func TestDescribe_WalksAndReleases(t *testing.T) {
	inner := fake.Button("inner", geom.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	group := fake.Group("panel", inner)
	root := fake.Group("window", fake.Button("ok", geom.Rect{Width: 10, Height: 10}), group)

	info := Describe(root, 8)
	if got := info.Count(); got != 4 {
		t.Fatalf("expected 4 nodes, got %d", got)
	}
	if info.Children[1].Children[0].Title != "inner" {
		t.Fatalf("expected nested inner button")
	}
	if f := info.Children[1].Children[0].Frame; f == nil || f.Width != 3 {
		t.Fatalf("expected inner frame, got %v", f)
	}
	if inner.Released != 1 || group.Released != 1 || root.Released != 0 {
		t.Fatalf("expected child handles released once and root kept")
	}

	shallow := Describe(root, 1)
	if shallow.Count() != 3 {
		t.Fatalf("expected depth limit to stop at 3 nodes, got %d", shallow.Count())
	}
}
