package match

import (
	"errors"
	"testing"
	"time"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/accessibility/fake"
	"github.com/odvcencio/furry-hints/labels"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/terminal"
)

type call struct {
	index  int
	action accessibility.Action
}

type recorder struct {
	calls   []call
	submenu accessibility.Node
	err     error
}

func (r *recorder) Execute(index int, action accessibility.Action) (accessibility.Node, error) {
	r.calls = append(r.calls, call{index: index, action: action})
	return r.submenu, r.err
}

func newMatcher(labelSet []string) (*Matcher, *recorder, *state.ManualTimers) {
	rec := &recorder{}
	timers := state.NewManualTimers()
	m := New(timers, rec)
	m.Init(labelSet)
	return m, rec, timers
}

func TestMatcher_UniqueExactExecutesImmediately(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "s", "d"})
	if n := m.CountMatches("a"); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}
	out := m.HandleKey(Letter('a'))
	if out.Kind != Execute || out.Index != 0 || !out.Fired {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if timers.Pending() != 0 || m.Armed() {
		t.Fatalf("expected no timer armed")
	}
	if len(rec.calls) != 1 || rec.calls[0] != (call{0, accessibility.ActionPress}) {
		t.Fatalf("unexpected calls %v", rec.calls)
	}
}

func TestMatcher_CollisionArmsTimer(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "aa", "ab"})
	if n := m.CountMatches("a"); n != 3 {
		t.Fatalf("expected 3 matches, got %d", n)
	}
	out := m.HandleKey(Letter('a'))
	if out.Kind != Consumed {
		t.Fatalf("expected consumed, got %v", out.Kind)
	}
	if !m.Armed() || timers.Pending() != 1 {
		t.Fatalf("expected timer armed")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no action before the window closes")
	}
}

func TestMatcher_TimerFiresPinnedSelection(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "aa", "ab"})
	var timed []Outcome
	m.OnTimeout(func(out Outcome) { timed = append(timed, out) })

	m.HandleKey(Key{Code: terminal.KeyRune, Rune: 'A', Shift: true})
	timers.Advance(DefaultDelay - time.Millisecond)
	if len(rec.calls) != 0 {
		t.Fatalf("expected no action before delay elapses")
	}
	timers.Advance(time.Millisecond)
	if len(rec.calls) != 1 || rec.calls[0] != (call{0, accessibility.ActionShowMenu}) {
		t.Fatalf("expected show-menu on index 0, got %v", rec.calls)
	}
	if len(timed) != 1 || timed[0].Kind != Dismiss || !timed[0].Fired {
		t.Fatalf("expected one dismiss outcome, got %+v", timed)
	}
	timers.Advance(time.Second)
	if len(rec.calls) != 1 {
		t.Fatalf("expected timer to fire exactly once")
	}
}

func TestMatcher_FurtherInputCancelsTimer(t *testing.T) {
	m, rec, timers := newMatcher(labels.Allocate(28))
	fired := 0
	m.OnTimeout(func(Outcome) { fired++ })

	if out := m.HandleKey(Letter('a')); out.Kind != Consumed {
		t.Fatalf("expected first a consumed, got %v", out.Kind)
	}
	out := m.HandleKey(Letter('a'))
	if out.Kind != Execute || out.Index != 26 {
		t.Fatalf("expected aa to execute index 26, got %+v", out)
	}
	timers.Advance(time.Second)
	if fired != 0 {
		t.Fatalf("expected cancelled timer not to fire")
	}
	if len(rec.calls) != 1 || rec.calls[0].index != 26 {
		t.Fatalf("unexpected calls %v", rec.calls)
	}
}

func TestMatcher_NoMatchRevertsPrefix(t *testing.T) {
	m, rec, _ := newMatcher([]string{"a", "s", "d"})
	out := m.HandleKey(Letter('x'))
	if out.Kind != Consumed {
		t.Fatalf("expected consumed, got %v", out.Kind)
	}
	if m.Prefix() != "" {
		t.Fatalf("expected prefix reverted, got %q", m.Prefix())
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no action")
	}
}

func TestMatcher_NonLetterPassesThrough(t *testing.T) {
	m, _, _ := newMatcher([]string{"a"})
	for _, k := range []Key{
		{Code: terminal.KeyRune, Rune: '1'},
		{Code: terminal.KeyTab},
		{Code: terminal.KeyUp},
	} {
		if out := m.HandleKey(k); out.Kind != Passthrough {
			t.Fatalf("expected passthrough for %+v, got %v", k, out.Kind)
		}
	}
}

func TestMatcher_SharedPrefixArmsAndFilters(t *testing.T) {
	m, _, _ := newMatcher(labels.Allocate(30))
	if out := m.HandleKey(Letter('s')); out.Kind != Execute {
		t.Fatalf("expected s to execute, got %+v", out)
	}
	m.Reset()
	out := m.HandleKey(Letter('a'))
	if out.Kind != Consumed || !m.Armed() {
		t.Fatalf("expected a to arm, got %+v", out)
	}
	if got := m.Matches(); len(got) != 5 {
		t.Fatalf("expected a, aa, as, ad, af to match, got %v", got)
	}
}

func TestMatcher_BackspaceCancelsAndTrims(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "aa", "ab"})
	m.HandleKey(Letter('a'))
	out := m.HandleKey(Key{Code: terminal.KeyBackspace})
	if out.Kind != Consumed || m.Prefix() != "" || m.Armed() {
		t.Fatalf("unexpected state after backspace: %+v prefix=%q", out, m.Prefix())
	}
	timers.Advance(time.Second)
	if len(rec.calls) != 0 {
		t.Fatalf("expected cancelled selection not to fire")
	}
	if out := m.HandleKey(Key{Code: terminal.KeyBackspace}); out.Kind != Consumed {
		t.Fatalf("expected backspace on empty prefix consumed")
	}
}

func TestMatcher_EscapeDismisses(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "aa", "ab"})
	m.HandleKey(Letter('a'))
	out := m.HandleKey(Key{Code: terminal.KeyEscape})
	if out.Kind != Dismiss || out.Fired {
		t.Fatalf("expected plain dismiss, got %+v", out)
	}
	timers.Advance(time.Second)
	if len(rec.calls) != 0 {
		t.Fatalf("expected escape to cancel the pending selection")
	}
	m.Reset()
	if m.Prefix() != "" {
		t.Fatalf("expected reset to clear prefix")
	}
}

func TestMatcher_EnterFiresPinnedSelection(t *testing.T) {
	m, rec, timers := newMatcher([]string{"a", "aa", "ab"})
	m.HandleKey(Letter('a'))
	out := m.HandleKey(Key{Code: terminal.KeyEnter, Primary: true})
	if out.Kind != Dismiss || !out.Fired || out.Index != 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if rec.calls[0] != (call{0, accessibility.ActionFocus}) {
		t.Fatalf("expected focus action, got %v", rec.calls)
	}
	timers.Advance(time.Second)
	if len(rec.calls) != 1 {
		t.Fatalf("expected timer cancelled by enter")
	}
}

func TestMatcher_EnterFiresUniquePrefix(t *testing.T) {
	m, rec, _ := newMatcher([]string{"aa", "as", "sd"})
	m.HandleKey(Letter('s'))
	out := m.HandleKey(Key{Code: terminal.KeyEnter, Shift: true})
	if out.Kind != Dismiss || out.Index != 2 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if rec.calls[0] != (call{2, accessibility.ActionShowMenu}) {
		t.Fatalf("expected show-menu on index 2, got %v", rec.calls)
	}
}

func TestMatcher_EnterAmbiguousIsNoop(t *testing.T) {
	m, rec, _ := newMatcher([]string{"aa", "as"})
	m.HandleKey(Letter('a'))
	if out := m.HandleKey(Key{Code: terminal.KeyEnter}); out.Kind != Consumed {
		t.Fatalf("expected consumed, got %v", out.Kind)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no action")
	}
}

func TestMatcher_MenuNavigationContinues(t *testing.T) {
	m, rec, _ := newMatcher([]string{"a", "s"})
	rec.submenu = fake.Group("submenu")
	out := m.HandleKey(Letter('s'))
	if out.Kind != Execute {
		t.Fatalf("expected execute without menu navigation, got %v", out.Kind)
	}
	if m.Prefix() != "" {
		t.Fatalf("expected the prefix cleared after firing, got %q", m.Prefix())
	}
	m.SetMenuNavigation(true)
	out = m.HandleKey(Letter('s'))
	if out.Kind != Continue || out.Submenu == nil {
		t.Fatalf("expected continue with submenu, got %+v", out)
	}
}

func TestMatcher_ActionErrorReported(t *testing.T) {
	m, rec, _ := newMatcher([]string{"a"})
	rec.err = accessibility.ErrDisabled
	out := m.HandleKey(Letter('a'))
	if out.Kind != Execute || !errors.Is(out.Err, accessibility.ErrDisabled) {
		t.Fatalf("expected execute carrying error, got %+v", out)
	}
}

func TestMatcher_PrefixIsBounded(t *testing.T) {
	long := make([]rune, MaxPrefix+4)
	for i := range long {
		long[i] = 'a'
	}
	m, _, _ := newMatcher([]string{string(long)})
	for range long {
		m.HandleKey(Letter('a'))
	}
	if len(m.Prefix()) != MaxPrefix {
		t.Fatalf("expected prefix capped at %d, got %d", MaxPrefix, len(m.Prefix()))
	}
}
