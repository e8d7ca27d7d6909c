// Package scroll keeps a selection visible inside a fixed-height view.
package scroll

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dx, dy int)
	ScrollTo(x, y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// Clamp bounds index to [0, count). It returns 0 when count is zero.
func Clamp(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

// Follow returns the first visible row after moving the view the least
// distance that keeps selected on screen. view is the visible row count.
func Follow(offset, selected, view, count int) int {
	if view <= 0 || count <= 0 {
		return 0
	}
	if selected < offset {
		offset = selected
	}
	if selected >= offset+view {
		offset = selected - view + 1
	}
	maxOffset := count - view
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
