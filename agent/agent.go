// Package agent drives a hint session programmatically. It enables scripted
// interaction, end-to-end tests and one-shot scans by exposing the session's
// labels as structured snapshots instead of painted badges.
package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/match"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/terminal"
)

// Common errors returned by Agent methods.
var (
	ErrNoController    = errors.New("no controller configured")
	ErrNotShowing      = errors.New("labels are not showing")
	ErrElementNotFound = errors.New("element not found")
	ErrNotConsumed     = errors.New("key was not consumed")
)

// Clock advances the timers a controller was built with.
// state.ManualTimers satisfies it.
type Clock interface {
	Advance(d time.Duration) int
}

// Agent drives a session controller from the calling goroutine. The
// controller must not be used from any other goroutine at the same time.
type Agent struct {
	mu         sync.Mutex
	controller *session.Controller
	clock      Clock
	delay      time.Duration
	now        func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithClock lets Settle fire pending disambiguation timers.
func WithClock(clock Clock) Option {
	return func(a *Agent) {
		a.clock = clock
	}
}

// WithDelay sets how far Settle advances the clock. It should match the
// controller's disambiguation delay.
func WithDelay(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.delay = d
		}
	}
}

// New creates an agent for controller.
func New(controller *session.Controller, opts ...Option) *Agent {
	a := &Agent{
		controller: controller,
		delay:      match.DefaultDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Controller returns the driven controller.
func (a *Agent) Controller() *session.Controller {
	if a == nil {
		return nil
	}
	return a.controller
}

// Scan starts a fresh episode in mode, closing any visible one first.
func (a *Agent) Scan(mode session.Mode) (Snapshot, error) {
	if a == nil || a.controller == nil {
		return Snapshot{}, ErrNoController
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.Close()
	err := a.controller.Activate(mode)
	return a.snapshotLocked(), err
}

// Type sends each rune of text as a key. Uppercase letters carry Shift.
// Typing stops early when the session leaves the showing state.
func (a *Agent) Type(text string) (Snapshot, error) {
	if a == nil || a.controller == nil {
		return Snapshot{}, ErrNoController
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range text {
		if a.controller.State() != session.ShowingLabels {
			return a.snapshotLocked(), ErrNotShowing
		}
		a.controller.HandleKey(match.Key{Code: terminal.KeyRune, Rune: r, Shift: r >= 'A' && r <= 'Z'})
	}
	return a.snapshotLocked(), nil
}

// Press sends one key written in chord syntax, such as "enter", "esc",
// "backspace" or "ctrl+a".
func (a *Agent) Press(chord string) (Snapshot, error) {
	if a == nil || a.controller == nil {
		return Snapshot{}, ErrNoController
	}
	c, err := runtime.ParseChord(chord)
	if err != nil {
		return Snapshot{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.controller.State() != session.ShowingLabels {
		return a.snapshotLocked(), ErrNotShowing
	}
	key := match.Key{Code: c.Key, Rune: c.Rune, Shift: c.Shift, Primary: c.Ctrl}
	if !a.controller.HandleKey(key) {
		return a.snapshotLocked(), fmt.Errorf("%s: %w", chord, ErrNotConsumed)
	}
	return a.snapshotLocked(), nil
}

// Select types the label of the first element whose title contains title,
// case-insensitively, then settles any pending timer. action picks the
// modifier: press, show-menu or focus.
func (a *Agent) Select(title string, action accessibility.Action) (Snapshot, error) {
	el, ok := a.Find(title)
	if !ok {
		return a.Snapshot(), fmt.Errorf("%q: %w", title, ErrElementNotFound)
	}
	head, last := el.Label[:len(el.Label)-1], el.Label[len(el.Label)-1:]
	if _, err := a.Type(head); err != nil {
		return a.Snapshot(), err
	}
	var (
		snap Snapshot
		err  error
	)
	switch action {
	case accessibility.ActionFocus:
		snap, err = a.Press("ctrl+" + last)
	case accessibility.ActionShowMenu:
		snap, err = a.Type(strings.ToUpper(last))
	default:
		snap, err = a.Type(last)
	}
	if err != nil {
		return snap, err
	}
	return a.Settle(), nil
}

// Settle advances the clock past the disambiguation delay so a pinned
// selection fires. Without a clock it only returns a snapshot.
func (a *Agent) Settle() Snapshot {
	if a == nil {
		return Snapshot{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.clock != nil {
		a.clock.Advance(a.delay)
	}
	return a.snapshotLocked()
}

// Close dismisses any visible labels.
func (a *Agent) Close() {
	if a == nil || a.controller == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller.Close()
}

// Find returns the first labeled element whose title contains title,
// case-insensitively.
func (a *Agent) Find(title string) (ElementInfo, bool) {
	snap := a.Snapshot()
	title = strings.ToLower(title)
	for _, el := range snap.Elements {
		if strings.Contains(strings.ToLower(el.Title), title) {
			return el, true
		}
	}
	return ElementInfo{}, false
}

// Snapshot returns the current session state.
func (a *Agent) Snapshot() Snapshot {
	if a == nil {
		return Snapshot{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// SnapshotJSON returns the current snapshot as indented JSON.
func (a *Agent) SnapshotJSON() ([]byte, error) {
	return json.MarshalIndent(a.Snapshot(), "", "  ")
}

func (a *Agent) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        ulid.Make().String(),
		Timestamp: a.now(),
	}
	c := a.controller
	if c == nil {
		return snap
	}
	snap.Mode = c.Mode().String()
	snap.State = c.State().String()
	snap.Screen = c.Screen()
	snap.Prefix = c.Prefix().Get()
	if err := c.LastError(); err != nil {
		snap.Error = err.Error()
	}
	if episode := c.Episode(); episode != (ulid.ULID{}) {
		snap.Episode = episode.String()
	}

	matched := make(map[int]bool)
	for _, idx := range c.Matches() {
		matched[idx] = true
	}
	elements := c.Elements()
	for _, b := range c.Badges() {
		info := ElementInfo{
			Label:   b.Label,
			Frame:   b.Target,
			Anchor:  b.Anchor,
			Below:   b.Below,
			Matched: matched[b.Index],
		}
		if b.Index < len(elements) {
			node := elements[b.Index].Node
			if role, err := node.Role(); err == nil {
				info.Role = role
			}
			if title, err := node.Title(); err == nil {
				info.Title = title
			}
		}
		snap.Elements = append(snap.Elements, info)
	}
	return snap
}

// Describe walks root up to maxDepth levels and reports every node it can
// read. Handles obtained during the walk are released; root is not.
func Describe(root accessibility.Node, maxDepth int) NodeInfo {
	return describe(root, 0, maxDepth)
}

func describe(n accessibility.Node, depth, maxDepth int) NodeInfo {
	var info NodeInfo
	if n == nil {
		return info
	}
	if role, err := n.Role(); err == nil {
		info.Role = role
	}
	if title, err := n.Title(); err == nil {
		info.Title = title
	}
	if frame, err := accessibility.Frame(n); err == nil {
		info.Frame = &frame
	}
	if actions, err := n.Actions(); err == nil {
		info.Actions = actions
	}
	if depth >= maxDepth {
		return info
	}
	children, err := n.Children()
	if err != nil {
		return info
	}
	for _, child := range children {
		info.Children = append(info.Children, describe(child, depth+1, maxDepth))
		child.Release()
	}
	return info
}

// Count returns the number of nodes in info, including itself.
func (info NodeInfo) Count() int {
	n := 1
	for _, child := range info.Children {
		n += child.Count()
	}
	return n
}
