// Package session runs one hint episode at a time: scan, label, match and
// act, with full cleanup on every exit path.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/collect"
	"github.com/odvcencio/furry-hints/geom"
	"github.com/odvcencio/furry-hints/labels"
	"github.com/odvcencio/furry-hints/match"
	"github.com/odvcencio/furry-hints/state"
)

// ErrNoElements reports a scan that found nothing to label.
var ErrNoElements = errors.New("session: no elements")

// State is the controller's lifecycle state.
type State int

const (
	Idle State = iota
	Scanning
	ShowingLabels
	Executing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case ShowingLabels:
		return "showing-labels"
	case Executing:
		return "executing"
	default:
		return "unknown"
	}
}

// Mode selects the scan root and badge placement.
type Mode int

const (
	// ModeWindow scans the focused window of the foreground application.
	ModeWindow Mode = iota
	// ModeChrome scans system chrome such as menu bars.
	ModeChrome
)

func (m Mode) String() string {
	if m == ModeChrome {
		return "chrome"
	}
	return "window"
}

// ParseMode parses "window" or "chrome".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "window", "":
		return ModeWindow, nil
	case "chrome":
		return ModeChrome, nil
	}
	return ModeWindow, fmt.Errorf("session: unknown mode %q", s)
}

// Overlay renders badges.
type Overlay interface {
	// Show replaces whatever is visible with badges.
	Show(badges []Badge) error
	Hide()
	IsVisible() bool
}

// Controller owns the episode state machine. All methods, and the timers it
// is given, must run on a single goroutine.
type Controller struct {
	host    accessibility.Host
	overlay Overlay
	opts    options

	alloc   *labels.Allocator
	matcher *match.Matcher

	state   *state.Signal[State]
	prefix  *state.Signal[string]
	menuNav *state.Signal[bool]
	unsub   func()

	mode     Mode
	screen   geom.Rect
	episode  ulid.ULID
	arena    accessibility.Arena
	elements []collect.Element
	labels   []string
	badges   []Badge
	stats    collect.Stats
	lastErr  error
	logger   *slog.Logger
}

// New creates an idle controller.
func New(host accessibility.Host, overlay Overlay, timers state.Timers, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	c := &Controller{
		host:    host,
		overlay: overlay,
		opts:    o,
		alloc:   o.allocator,
		state:   state.NewComparable(Idle),
		prefix:  state.NewComparable(""),
		menuNav: state.NewComparable(o.menuNav),
		logger:  o.logger,
	}
	if c.alloc == nil {
		c.alloc = labels.NewAllocator()
	}
	c.matcher = match.New(timers, match.ExecutorFunc(c.execute),
		match.WithDelay(o.delay),
		match.WithLogger(o.logger),
	)
	c.matcher.OnTimeout(func(out match.Outcome) {
		c.apply(out)
	})
	c.matcher.SetMenuNavigation(o.menuNav)
	c.unsub = c.menuNav.Subscribe(func() {
		c.matcher.SetMenuNavigation(c.menuNav.Get())
	})
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	if c == nil {
		return Idle
	}
	return c.state.Get()
}

// StateSignal exposes the state for binding.
func (c *Controller) StateSignal() state.Readable[State] {
	if c == nil {
		return nil
	}
	return c.state
}

// Prefix exposes the typed prefix for binding.
func (c *Controller) Prefix() state.Readable[string] {
	if c == nil {
		return nil
	}
	return c.prefix
}

// MenuNavigation exposes the menu-navigation flag.
func (c *Controller) MenuNavigation() state.Writable[bool] {
	if c == nil {
		return nil
	}
	return c.menuNav
}

// SetMenuNavigation toggles submenu continuation.
func (c *Controller) SetMenuNavigation(enabled bool) {
	if c == nil {
		return
	}
	c.menuNav.Set(enabled)
}

// Mode returns the mode of the current or last episode.
func (c *Controller) Mode() Mode {
	if c == nil {
		return ModeWindow
	}
	return c.mode
}

// Episode returns the current episode ID, or the zero ULID when idle.
func (c *Controller) Episode() ulid.ULID {
	if c == nil {
		return ulid.ULID{}
	}
	return c.episode
}

// Elements returns the elements of the visible episode.
func (c *Controller) Elements() []collect.Element {
	if c == nil {
		return nil
	}
	return c.elements
}

// Labels returns the labels of the visible episode.
func (c *Controller) Labels() []string {
	if c == nil {
		return nil
	}
	return c.labels
}

// Badges returns every badge of the visible episode, unfiltered.
func (c *Controller) Badges() []Badge {
	if c == nil {
		return nil
	}
	return c.badges
}

// Matches returns indices whose labels extend the typed prefix.
func (c *Controller) Matches() []int {
	if c == nil || c.State() != ShowingLabels {
		return nil
	}
	return c.matcher.Matches()
}

// Screen returns the screen rectangle of the visible episode.
func (c *Controller) Screen() geom.Rect {
	if c == nil {
		return geom.Rect{}
	}
	return c.screen
}

// Stats returns the collector statistics of the last scan.
func (c *Controller) Stats() collect.Stats {
	if c == nil {
		return collect.Stats{}
	}
	return c.stats
}

// LastError returns the error that ended the last episode, if any.
func (c *Controller) LastError() error {
	if c == nil {
		return nil
	}
	return c.lastErr
}

// Activate starts an episode in mode. While labels are showing it dismisses
// them instead. It is ignored while scanning or executing.
func (c *Controller) Activate(mode Mode) error {
	if c == nil {
		return errors.New("session: nil controller")
	}
	switch c.State() {
	case ShowingLabels:
		c.log().Debug("toggle dismiss")
		c.teardown()
		return nil
	case Scanning, Executing:
		c.logger.Debug("activate ignored", "state", c.State().String())
		return nil
	}

	c.mode = mode
	c.episode = ulid.Make()
	c.lastErr = nil
	c.state.Set(Scanning)

	root, err := c.root(mode)
	if err != nil {
		return c.abort(fmt.Errorf("resolve %s root: %w", mode, err))
	}
	return c.enter(root)
}

// Close ends any visible episode.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	if c.State() == ShowingLabels {
		c.teardown()
	}
}

// Dispose closes the controller and drops its subscriptions.
func (c *Controller) Dispose() {
	if c == nil {
		return
	}
	c.Close()
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// HandleKey routes k to the matcher while labels are showing and reports
// whether the key was consumed. Unconsumed keys belong to the application.
func (c *Controller) HandleKey(k match.Key) bool {
	if c == nil || c.State() != ShowingLabels {
		return false
	}
	out := c.matcher.HandleKey(k)
	return c.apply(out)
}

func (c *Controller) root(mode Mode) (accessibility.Node, error) {
	if c.host == nil {
		return nil, accessibility.ErrUnavailable
	}
	var (
		root accessibility.Node
		err  error
	)
	if mode == ModeChrome {
		root, err = c.host.ChromeRoot()
	} else {
		root, err = c.host.ForegroundRoot()
	}
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, accessibility.ErrUnavailable
	}
	return root, nil
}

// enter scans root, which it owns, and shows labels. Any failure rolls back
// to Idle.
func (c *Controller) enter(root accessibility.Node) error {
	c.screen = c.host.ScreenRect()
	opts := append([]collect.Option{}, c.opts.collect...)
	opts = append(opts, collect.WithLogger(c.log()))
	if !c.screen.Empty() {
		opts = append(opts, collect.WithScreen(c.screen))
	}
	collector := collect.New(opts...)
	elements, err := collector.Collect(root, c.opts.maxDepth)
	root.Release()
	c.stats = collector.Stats()
	if err != nil {
		return c.abort(err)
	}
	for _, el := range elements {
		c.arena.Retain(el.Node)
	}
	if len(elements) == 0 {
		return c.abort(ErrNoElements)
	}

	labelSet := c.alloc.Allocate(len(elements))
	if unlabeled := c.alloc.Unlabeled(); unlabeled > 0 {
		c.log().Warn("label capacity exceeded", "count", len(elements), "unlabeled", unlabeled)
		elements = elements[:len(labelSet)]
	}

	frames := make([]geom.Rect, len(elements))
	for i, el := range elements {
		frames[i] = el.Frame
	}
	badges := buildBadges(c.mode, labelSet, frames, c.screen, c.opts.edgeThreshold)

	c.elements = elements
	c.labels = labelSet
	c.badges = badges
	c.matcher.Init(labelSet)

	if c.overlay != nil {
		if err := c.overlay.Show(badges); err != nil {
			if c.overlay.IsVisible() {
				c.overlay.Hide()
			}
			return c.abort(fmt.Errorf("show overlay: %w", err))
		}
	}
	c.prefix.Set("")
	c.state.Set(ShowingLabels)
	c.log().Info("labels shown", "count", len(labelSet))
	return nil
}

// abort rolls back a failed scan.
func (c *Controller) abort(err error) error {
	c.lastErr = err
	if errors.Is(err, ErrNoElements) {
		c.log().Debug("scan found nothing")
	} else {
		c.log().Warn("scan failed", "err", err)
	}
	c.release()
	return err
}

// teardown leaves ShowingLabels or Executing in reverse order of entry.
func (c *Controller) teardown() {
	c.matcher.Reset()
	if c.overlay != nil {
		c.overlay.Hide()
	}
	c.release()
}

func (c *Controller) release() {
	c.matcher.Deinit()
	c.badges = nil
	c.elements = nil
	c.arena.Release()
	c.labels = nil
	c.alloc.Reset()
	c.prefix.Set("")
	c.state.Set(Idle)
	c.episode = ulid.ULID{}
}

// execute performs an action for the matcher.
func (c *Controller) execute(index int, action accessibility.Action) (accessibility.Node, error) {
	if index < 0 || index >= len(c.elements) {
		return nil, fmt.Errorf("session: index %d out of range", index)
	}
	c.state.Set(Executing)
	el := c.elements[index]
	c.log().Info("perform", "label", c.labels[index], "action", string(action))
	if err := accessibility.Perform(el.Node, action); err != nil {
		return nil, err
	}
	if !c.menuNav.Get() {
		return nil, nil
	}
	if sm, ok := el.Node.(accessibility.SubmenuNode); ok {
		if sub, ok := sm.Submenu(); ok && sub != nil {
			return sub, nil
		}
	}
	return nil, nil
}

// apply reacts to a matcher outcome and reports whether the key was consumed.
func (c *Controller) apply(out match.Outcome) bool {
	switch out.Kind {
	case match.Passthrough:
		return false
	case match.Consumed:
		c.refresh()
		return true
	case match.Execute, match.Dismiss:
		if out.Err != nil {
			c.lastErr = out.Err
		}
		c.teardown()
		return true
	case match.Continue:
		mode := c.mode
		c.teardown()
		c.mode = mode
		c.episode = ulid.Make()
		c.state.Set(Scanning)
		if err := c.enter(out.Submenu); err != nil {
			c.log().Debug("submenu scan ended", "err", err)
		}
		return true
	}
	return false
}

// refresh re-renders the badges still reachable from the typed prefix.
func (c *Controller) refresh() {
	prefix := c.matcher.Prefix()
	if !c.prefix.Set(prefix) {
		return
	}
	if c.overlay == nil {
		return
	}
	visible := filterBadges(c.badges, c.matcher.Matches(), len(prefix))
	if err := c.overlay.Show(visible); err != nil {
		c.log().Warn("overlay refresh failed", "err", err)
	}
}

func (c *Controller) log() *slog.Logger {
	if c.episode == (ulid.ULID{}) {
		return c.logger
	}
	return c.logger.With("episode", c.episode.String(), "mode", c.mode.String())
}
