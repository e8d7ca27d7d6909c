package browser

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/odvcencio/furry-hints/session"
)

// OverlayID is the id of the injected badge container. It is attached to the
// document element, outside body, so scans never see it.
const OverlayID = "furry-hints-overlay"

// ErrNoPage is returned by Show without a page.
var ErrNoPage = errors.New("browser: no page")

// badgeView is the JSON handed to the page for one badge.
type badgeView struct {
	Label     string  `json:"label"`
	Typed     int     `json:"typed"`
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Transform string  `json:"transform"`
}

// Overlay paints badges as absolutely positioned elements in a page.
type Overlay struct {
	page    *rod.Page
	visible bool
}

// NewOverlay creates an overlay for page.
func NewOverlay(page *rod.Page) *Overlay {
	return &Overlay{page: page}
}

// Show replaces the badge container.
func (o *Overlay) Show(badges []session.Badge) error {
	if o == nil || o.page == nil {
		return ErrNoPage
	}
	if _, err := o.page.Eval(showJS, OverlayID, views(badges)); err != nil {
		return fmt.Errorf("inject badges: %w", err)
	}
	o.visible = true
	return nil
}

// Hide removes the badge container.
func (o *Overlay) Hide() {
	if o == nil || o.page == nil || !o.visible {
		return
	}
	o.visible = false
	_, _ = o.page.Eval(hideJS, OverlayID)
}

// IsVisible reports whether badges are injected.
func (o *Overlay) IsVisible() bool {
	return o != nil && o.visible
}

func views(badges []session.Badge) []badgeView {
	out := make([]badgeView, 0, len(badges))
	for _, b := range badges {
		out = append(out, badgeView{
			Label:     b.Label,
			Typed:     b.Typed,
			Left:      b.Anchor.X,
			Top:       b.Anchor.Y,
			Transform: transform(b),
		})
	}
	return out
}

// transform positions a badge relative to its anchor: hanging below it,
// sitting on a top-edge anchor, or centred.
func transform(b session.Badge) string {
	switch {
	case b.Below:
		return "translate(-50%, 0)"
	case b.Anchor.Y == b.Target.Y:
		return "translate(-50%, -100%)"
	default:
		return "translate(-50%, -50%)"
	}
}

const showJS = `(id, badges) => {
	let root = document.getElementById(id);
	if (root) root.remove();
	root = document.createElement('div');
	root.id = id;
	root.style.cssText = 'position:fixed;left:0;top:0;width:0;height:0;z-index:2147483647;pointer-events:none;';
	for (const b of badges) {
		const el = document.createElement('span');
		el.style.cssText = 'position:fixed;padding:0 3px;border-radius:3px;background:#fde047;color:#111;' +
			'font:bold 12px/16px monospace;box-shadow:0 1px 2px rgba(0,0,0,.4);white-space:nowrap;';
		el.style.left = b.left + 'px';
		el.style.top = b.top + 'px';
		el.style.transform = b.transform;
		const typed = document.createElement('span');
		typed.style.opacity = '0.45';
		typed.textContent = b.label.slice(0, b.typed);
		el.appendChild(typed);
		el.appendChild(document.createTextNode(b.label.slice(b.typed)));
		root.appendChild(el);
	}
	document.documentElement.appendChild(root);
}`

const hideJS = `(id) => {
	const root = document.getElementById(id);
	if (root) root.remove();
}`

var _ session.Overlay = (*Overlay)(nil)
