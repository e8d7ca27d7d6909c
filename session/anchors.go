package session

import "github.com/odvcencio/furry-hints/geom"

// DefaultEdgeThreshold is the distance from the bottom screen edge inside
// which chrome badges flip above their target.
const DefaultEdgeThreshold = 40.0

// Badge is one label positioned for the overlay.
type Badge struct {
	Label string
	// Typed is how many leading characters of Label are already typed.
	Typed int
	// Index is the element index the label names.
	Index  int
	Anchor geom.Point
	Target geom.Rect
	// Below reports that the badge hangs below Anchor rather than centred
	// on or above it.
	Below bool
}

// Anchor places a badge for target. Window mode centres it on the target.
// Chrome mode hangs it below the target unless the target lies within
// threshold of the screen's bottom edge, where it sits above instead.
func Anchor(mode Mode, target, screen geom.Rect, threshold float64) (geom.Point, bool) {
	center := target.Center()
	if mode != ModeChrome {
		return center, false
	}
	if !screen.Empty() && screen.MaxY()-target.MaxY() < threshold {
		return geom.Point{X: center.X, Y: target.Y}, false
	}
	return geom.Point{X: center.X, Y: target.MaxY()}, true
}

func buildBadges(mode Mode, labels []string, frames []geom.Rect, screen geom.Rect, threshold float64) []Badge {
	badges := make([]Badge, 0, len(labels))
	for i, label := range labels {
		anchor, below := Anchor(mode, frames[i], screen, threshold)
		badges = append(badges, Badge{
			Label:  label,
			Index:  i,
			Anchor: anchor,
			Target: frames[i],
			Below:  below,
		})
	}
	return badges
}

// filterBadges returns the badges whose labels extend prefix.
func filterBadges(badges []Badge, matches []int, typed int) []Badge {
	out := make([]Badge, 0, len(matches))
	for _, idx := range matches {
		if idx < 0 || idx >= len(badges) {
			continue
		}
		b := badges[idx]
		b.Typed = typed
		out = append(out, b)
	}
	return out
}
