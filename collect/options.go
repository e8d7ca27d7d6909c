package collect

import (
	"io"
	"log/slog"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

const (
	// DefaultMinSize is the smallest width and height kept, in logical units.
	DefaultMinSize = 5
	// DefaultMargin is how far outside the screen an element may start.
	DefaultMargin = 20
	// DefaultTolerance is the per-field pixel tolerance used for deduplication.
	DefaultTolerance = 5
	// DefaultMaxDepth bounds the traversal when callers have no preference.
	DefaultMaxDepth = 40
)

type options struct {
	roles     accessibility.RoleSet
	minSize   float64
	screen    *geom.Rect
	margin    float64
	tolerance float64
	logger    *slog.Logger
}

// Option configures a Collector.
type Option func(*options)

// WithRoles replaces the interactive role allow-list.
func WithRoles(roles ...accessibility.Role) Option {
	return func(o *options) {
		o.roles = accessibility.NewRoleSet(roles...)
	}
}

// WithMinSize sets the minimum width and height an element must have.
func WithMinSize(size float64) Option {
	return func(o *options) {
		o.minSize = size
	}
}

// WithScreen restricts results to elements intersecting rect within the margin.
func WithScreen(rect geom.Rect) Option {
	return func(o *options) {
		if rect.Empty() {
			o.screen = nil
			return
		}
		r := rect
		o.screen = &r
	}
}

// WithMargin sets the outward screen margin.
func WithMargin(margin float64) Option {
	return func(o *options) {
		o.margin = margin
	}
}

// WithTolerance sets the deduplication tolerance.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithLogger sets the logger used for traversal statistics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func defaultOptions() options {
	return options{
		roles:     accessibility.NewRoleSet(accessibility.InteractiveRoles...),
		minSize:   DefaultMinSize,
		margin:    DefaultMargin,
		tolerance: DefaultTolerance,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
