// Package browser exposes a live web page as a hint host. Elements become
// accessibility nodes and badges are injected into the page itself.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found
// and rod cannot download one.
var ErrNoBrowser = errors.New("browser: no chromium binary")

// Options configures Launch.
type Options struct {
	URL        string
	Width      int
	Height     int
	Headless   bool
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
	Timeout    time.Duration
}

// Browser wraps the rod browser and its page.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
}

// Launch starts a browser, opens opts.URL and waits for it to settle.
func Launch(opts Options) (*Browser, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}

	l := launcher.New().Headless(opts.Headless)
	if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBrowser, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: opts.URL})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open %s: %w", opts.URL, err)
	}
	b := &Browser{browser: browser, page: page}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := page.Timeout(opts.Timeout).WaitLoad(); err != nil {
		b.Close()
		return nil, fmt.Errorf("wait load: %w", err)
	}
	// Don't hang on persistent connections such as websockets.
	page.Timeout(5*time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	return b, nil
}

// Page returns the underlying rod page.
func (b *Browser) Page() *rod.Page {
	if b == nil {
		return nil
	}
	return b.page
}

// Navigate loads url in the page and waits for it.
func (b *Browser) Navigate(url string) error {
	if b == nil || b.page == nil {
		return ErrNoBrowser
	}
	if err := b.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return b.page.WaitLoad()
}

// Close cleans up browser resources.
func (b *Browser) Close() {
	if b == nil {
		return
	}
	if b.page != nil {
		_ = b.page.Close()
	}
	if b.browser != nil {
		_ = b.browser.Close()
	}
}
