// Package backend abstracts the terminal the runtime draws to.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-hints/terminal"
)

// Style is a cell style.
type Style = tcell.Style

// Color is a terminal color.
type Color = tcell.Color

const (
	ColorDefault = tcell.ColorDefault
	ColorBlack   = tcell.ColorBlack
	ColorRed     = tcell.ColorRed
	ColorGreen   = tcell.ColorGreen
	ColorYellow  = tcell.ColorYellow
	ColorBlue    = tcell.ColorBlue
	ColorWhite   = tcell.ColorWhite
	ColorGray    = tcell.ColorGray
)

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the app renders to and reads input from.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	// PollEvent blocks for the next event and returns nil once the backend
	// is finalized.
	PollEvent() terminal.Event
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
}
