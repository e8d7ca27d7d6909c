package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/odvcencio/furry-hints/collect"
	"github.com/odvcencio/furry-hints/labels"
	"github.com/odvcencio/furry-hints/match"
)

type options struct {
	maxDepth      int
	delay         time.Duration
	edgeThreshold float64
	menuNav       bool
	allocator     *labels.Allocator
	collect       []collect.Option
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		maxDepth:      collect.DefaultMaxDepth,
		delay:         match.DefaultDelay,
		edgeThreshold: DefaultEdgeThreshold,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Controller.
type Option func(*options)

// WithMaxDepth sets the traversal depth limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithDelay sets the disambiguation window.
func WithDelay(delay time.Duration) Option {
	return func(o *options) {
		if delay > 0 {
			o.delay = delay
		}
	}
}

// WithEdgeThreshold sets the bottom-edge flip distance for chrome badges.
func WithEdgeThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold >= 0 {
			o.edgeThreshold = threshold
		}
	}
}

// WithMenuNavigation sets the initial menu-navigation flag.
func WithMenuNavigation(enabled bool) Option {
	return func(o *options) {
		o.menuNav = enabled
	}
}

// WithAllocator replaces the label allocator.
func WithAllocator(a *labels.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.allocator = a
		}
	}
}

// WithCollectOptions passes options to the collector built for every scan.
// The screen rectangle always comes from the host.
func WithCollectOptions(opts ...collect.Option) Option {
	return func(o *options) {
		o.collect = append(o.collect, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
