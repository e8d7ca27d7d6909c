package session

import (
	"testing"

	"github.com/odvcencio/furry-hints/geom"
)

func TestAnchor_WindowCentres(t *testing.T) {
	target := geom.Rect{X: 10, Y: 20, Width: 40, Height: 10}
	p, below := Anchor(ModeWindow, target, geom.Rect{Width: 100, Height: 100}, DefaultEdgeThreshold)
	if p != (geom.Point{X: 30, Y: 25}) || below {
		t.Fatalf("expected centred anchor, got %+v below=%v", p, below)
	}
}

func TestAnchor_ChromeFlipsNearBottomEdge(t *testing.T) {
	screen := geom.Rect{Width: 1000, Height: 1000}
	top := geom.Rect{X: 100, Y: 10, Width: 40, Height: 20}
	p, below := Anchor(ModeChrome, top, screen, 40)
	if !below || p != (geom.Point{X: 120, Y: 30}) {
		t.Fatalf("expected badge below top target, got %+v below=%v", p, below)
	}

	bottom := geom.Rect{X: 100, Y: 970, Width: 40, Height: 20}
	p, below = Anchor(ModeChrome, bottom, screen, 40)
	if below || p != (geom.Point{X: 120, Y: 970}) {
		t.Fatalf("expected badge above bottom target, got %+v below=%v", p, below)
	}
}

func TestAnchor_ChromeWithoutScreenHangsBelow(t *testing.T) {
	target := geom.Rect{X: 0, Y: 970, Width: 10, Height: 20}
	if _, below := Anchor(ModeChrome, target, geom.Rect{}, 40); !below {
		t.Fatalf("expected below without a screen rect")
	}
}

func TestFilterBadges_MarksTyped(t *testing.T) {
	badges := []Badge{{Label: "a", Index: 0}, {Label: "s", Index: 1}, {Label: "aa", Index: 2}}
	got := filterBadges(badges, []int{0, 2, 9}, 1)
	if len(got) != 2 || got[0].Label != "a" || got[1].Label != "aa" {
		t.Fatalf("unexpected badges %+v", got)
	}
	if got[1].Typed != 1 || badges[2].Typed != 0 {
		t.Fatalf("expected typed count on copies only")
	}
}
