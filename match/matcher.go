// Package match implements the incremental keystroke matcher that turns typed
// characters into label selections.
package match

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/terminal"
)

const (
	// DefaultDelay is the disambiguation window for prefix collisions.
	DefaultDelay = 200 * time.Millisecond
	// MaxPrefix bounds the typed prefix buffer.
	MaxPrefix = 32
)

// Kind classifies what the caller should do after a key.
type Kind int

const (
	// Passthrough means the key was not consumed.
	Passthrough Kind = iota
	// Consumed means the key was swallowed and the session continues.
	Consumed
	// Execute means an action fired for a unique exact match.
	Execute
	// Dismiss means the session should end.
	Dismiss
	// Continue means an action opened a submenu that should be scanned next.
	Continue
)

func (k Kind) String() string {
	switch k {
	case Passthrough:
		return "passthrough"
	case Consumed:
		return "consumed"
	case Execute:
		return "execute"
	case Dismiss:
		return "dismiss"
	case Continue:
		return "continue"
	default:
		return "unknown"
	}
}

// Outcome is the result of one key or timer expiry.
type Outcome struct {
	Kind Kind
	// Index is the selected label index, or -1.
	Index int
	// Fired reports whether an action was performed.
	Fired  bool
	Action accessibility.Action
	// Submenu is set with Continue.
	Submenu accessibility.Node
	// Err carries an action failure; the session still ends.
	Err error
}

func none(kind Kind) Outcome {
	return Outcome{Kind: kind, Index: -1}
}

// Executor performs the action for a label index and returns the submenu the
// action opened, if any.
type Executor interface {
	Execute(index int, action accessibility.Action) (accessibility.Node, error)
}

// ExecutorFunc adapts a function into an Executor.
type ExecutorFunc func(index int, action accessibility.Action) (accessibility.Node, error)

// Execute calls f.
func (f ExecutorFunc) Execute(index int, action accessibility.Action) (accessibility.Node, error) {
	return f(index, action)
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDelay sets the disambiguation window.
func WithDelay(delay time.Duration) Option {
	return func(m *Matcher) {
		if delay > 0 {
			m.delay = delay
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

type selection struct {
	index  int
	action accessibility.Action
}

// Matcher tracks the typed prefix against a fixed label set. It is not safe
// for concurrent use; keys and timer expiries must arrive on one goroutine.
type Matcher struct {
	labels    []string
	prefix    []rune
	exec      Executor
	timers    state.Timers
	delay     time.Duration
	pending   *selection
	cancel    state.CancelFunc
	gen       uint64
	menuNav   bool
	onTimeout func(Outcome)
	logger    *slog.Logger
}

// New creates a matcher. timers must deliver callbacks on the goroutine that
// calls HandleKey.
func New(timers state.Timers, exec Executor, opts ...Option) *Matcher {
	m := &Matcher{
		exec:   exec,
		timers: timers,
		delay:  DefaultDelay,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Init starts matching against labels with an empty prefix.
func (m *Matcher) Init(labels []string) {
	if m == nil {
		return
	}
	m.Reset()
	m.labels = labels
}

// OnTimeout registers the callback receiving outcomes of expired
// disambiguation windows.
func (m *Matcher) OnTimeout(fn func(Outcome)) {
	if m == nil {
		return
	}
	m.onTimeout = fn
}

// SetMenuNavigation toggles submenu continuation.
func (m *Matcher) SetMenuNavigation(enabled bool) {
	if m == nil {
		return
	}
	m.menuNav = enabled
}

// Prefix returns the typed prefix.
func (m *Matcher) Prefix() string {
	if m == nil {
		return ""
	}
	return string(m.prefix)
}

// Armed reports whether a disambiguation window is open.
func (m *Matcher) Armed() bool {
	return m != nil && m.pending != nil
}

// CountMatches returns how many labels start with prefix.
func (m *Matcher) CountMatches(prefix string) int {
	if m == nil {
		return 0
	}
	count := 0
	for _, label := range m.labels {
		if strings.HasPrefix(label, prefix) {
			count++
		}
	}
	return count
}

// Matches returns the indices of labels starting with the typed prefix.
func (m *Matcher) Matches() []int {
	if m == nil {
		return nil
	}
	prefix := string(m.prefix)
	out := make([]int, 0, len(m.labels))
	for i, label := range m.labels {
		if strings.HasPrefix(label, prefix) {
			out = append(out, i)
		}
	}
	return out
}

func (m *Matcher) exact(prefix string) int {
	for i, label := range m.labels {
		if label == prefix {
			return i
		}
	}
	return -1
}

// HandleKey processes one key.
func (m *Matcher) HandleKey(k Key) Outcome {
	if m == nil {
		return none(Passthrough)
	}
	switch k.Code {
	case terminal.KeyEscape:
		m.cancelPending()
		return none(Dismiss)
	case terminal.KeyBackspace, terminal.KeyDelete:
		m.cancelPending()
		if len(m.prefix) > 0 {
			m.prefix = m.prefix[:len(m.prefix)-1]
		}
		return none(Consumed)
	case terminal.KeyEnter:
		return m.handleEnter(k)
	}
	r, ok := k.letter()
	if !ok {
		return none(Passthrough)
	}
	return m.handleLetter(r, k)
}

func (m *Matcher) handleLetter(r rune, k Key) Outcome {
	m.cancelPending()
	if len(m.prefix) >= MaxPrefix {
		return none(Consumed)
	}
	m.prefix = append(m.prefix, r)
	prefix := string(m.prefix)
	matches := m.CountMatches(prefix)
	if matches == 0 {
		m.prefix = m.prefix[:len(m.prefix)-1]
		return none(Consumed)
	}
	idx := m.exact(prefix)
	if idx < 0 {
		return none(Consumed)
	}
	sel := selection{index: idx, action: k.Action()}
	if matches == 1 {
		return m.fire(sel, Execute)
	}
	m.arm(sel)
	return Outcome{Kind: Consumed, Index: idx}
}

func (m *Matcher) handleEnter(k Key) Outcome {
	var sel *selection
	if m.pending != nil {
		sel = &selection{index: m.pending.index}
	} else if matches := m.Matches(); len(matches) == 1 {
		sel = &selection{index: matches[0]}
	}
	m.cancelPending()
	if sel == nil {
		return none(Consumed)
	}
	sel.action = k.Action()
	return m.fire(*sel, Dismiss)
}

func (m *Matcher) arm(sel selection) {
	m.gen++
	gen := m.gen
	m.pending = &sel
	if m.timers == nil {
		return
	}
	m.cancel = m.timers.ScheduleOnce(m.delay, func() {
		m.expire(gen)
	})
	m.logger.Debug("disambiguation armed", "index", sel.index, "prefix", string(m.prefix), "delay", m.delay)
}

func (m *Matcher) expire(gen uint64) {
	if m.pending == nil || gen != m.gen {
		return
	}
	sel := *m.pending
	m.pending = nil
	m.cancel = nil
	out := m.fire(sel, Dismiss)
	if m.onTimeout != nil {
		m.onTimeout(out)
	}
}

func (m *Matcher) cancelPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.pending != nil {
		m.gen++
	}
	m.pending = nil
}

// fire performs sel and reports kind, or Continue when menu navigation is on
// and the action opened a submenu.
// fire runs the selection. The prefix is cleared first so a matcher kept
// for a submenu starts empty.
func (m *Matcher) fire(sel selection, kind Kind) Outcome {
	out := Outcome{Kind: kind, Index: sel.index, Action: sel.action, Fired: true}
	m.prefix = m.prefix[:0]
	if m.exec == nil {
		return out
	}
	submenu, err := m.exec.Execute(sel.index, sel.action)
	if err != nil {
		m.logger.Warn("action failed", "index", sel.index, "action", sel.action, "err", err)
		out.Err = err
		return out
	}
	if m.menuNav && submenu != nil {
		out.Kind = Continue
		out.Submenu = submenu
	}
	return out
}

// Reset cancels any pending window and clears the prefix.
func (m *Matcher) Reset() {
	if m == nil {
		return
	}
	m.cancelPending()
	m.prefix = m.prefix[:0]
}

// Deinit resets the matcher and drops the label set.
func (m *Matcher) Deinit() {
	if m == nil {
		return
	}
	m.Reset()
	m.labels = nil
}
