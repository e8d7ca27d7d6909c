package browser

import (
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

// ChromeSelector finds the page's navigation chrome.
const ChromeSelector = "header, nav, [role=navigation]"

// Host implements accessibility.Host for one page. The foreground root is
// the document body; the chrome root is the first header or navigation
// landmark; the screen is the viewport.
type Host struct {
	page    *rod.Page
	timeout time.Duration
	logger  *slog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithActionTimeout bounds each click or focus.
func WithActionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithHostLogger sets the logger.
func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHost creates a host over page.
func NewHost(page *rod.Page, opts ...HostOption) *Host {
	h := &Host{
		page:    page,
		timeout: DefaultActionTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// ForegroundRoot implements accessibility.Host.
func (h *Host) ForegroundRoot() (accessibility.Node, error) {
	return h.query("body")
}

// ChromeRoot implements accessibility.Host.
func (h *Host) ChromeRoot() (accessibility.Node, error) {
	return h.query(ChromeSelector)
}

func (h *Host) query(selector string) (accessibility.Node, error) {
	if h == nil || h.page == nil {
		return nil, accessibility.ErrUnavailable
	}
	has, el, err := h.page.Has(selector)
	if err != nil {
		h.logger.Warn("query failed", "selector", selector, "err", err)
		return nil, accessibility.ErrUnavailable
	}
	if !has {
		return nil, accessibility.ErrUnavailable
	}
	return newNode(el, h.timeout), nil
}

// ScreenRect implements accessibility.Host. It returns the empty rect when
// the viewport cannot be read, which disables the on-screen filter.
func (h *Host) ScreenRect() geom.Rect {
	if h == nil || h.page == nil {
		return geom.Rect{}
	}
	obj, err := h.page.Eval(`() => ({width: window.innerWidth, height: window.innerHeight})`)
	if err != nil {
		h.logger.Warn("viewport read failed", "err", err)
		return geom.Rect{}
	}
	return geom.Rect{
		Width:  obj.Value.Get("width").Num(),
		Height: obj.Value.Get("height").Num(),
	}
}

var _ accessibility.Host = (*Host)(nil)
