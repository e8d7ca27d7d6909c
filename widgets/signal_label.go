package widgets

import (
	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/state"
)

// SignalLabel is a status line bound to a signal. It subscribes while
// mounted and renders the latest value.
type SignalLabel struct {
	Component
	source    state.Readable[string]
	scheduler state.Scheduler
	text      string
	style     backend.Style
	alignment Alignment
	mounted   bool
}

// NewSignalLabel creates a signal-backed label. A nil scheduler uses the
// app scheduler once the label is bound.
func NewSignalLabel(source state.Readable[string], scheduler state.Scheduler) *SignalLabel {
	label := &SignalLabel{
		source:    source,
		scheduler: scheduler,
		style:     backend.DefaultStyle(),
		alignment: AlignLeft,
	}
	label.Subs.SetScheduler(scheduler)
	if source != nil {
		label.text = source.Get()
	}
	return label
}

// Bind attaches services, keeping an explicit scheduler if one was given.
func (s *SignalLabel) Bind(services runtime.Services) {
	s.Component.Bind(services)
	if s.scheduler != nil {
		s.Subs.SetScheduler(s.scheduler)
	}
}

// Text returns the current label text.
func (s *SignalLabel) Text() string {
	return s.text
}

// SetStyle sets the label style.
func (s *SignalLabel) SetStyle(style backend.Style) {
	s.style = style
}

// SetAlignment sets text alignment.
func (s *SignalLabel) SetAlignment(align Alignment) {
	s.alignment = align
}

// Measure returns the size needed for the label.
func (s *SignalLabel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: textWidth(s.text), Height: 1})
}

// Render draws the label.
func (s *SignalLabel) Render(ctx runtime.RenderContext) {
	drawAligned(ctx.Buffer, s.bounds, s.text, s.alignment, s.style)
}

// Mount subscribes to signal changes.
func (s *SignalLabel) Mount() {
	s.mounted = true
	s.Subs.Clear()
	if s.source == nil {
		s.text = ""
		return
	}
	s.text = s.source.Get()
	s.Observe(s.source, s.onSignal)
}

// Unmount unsubscribes from signal changes.
func (s *SignalLabel) Unmount() {
	s.mounted = false
	s.Subs.Clear()
}

func (s *SignalLabel) onSignal() {
	if !s.mounted || s.source == nil {
		return
	}
	s.text = s.source.Get()
	s.Invalidate()
}
