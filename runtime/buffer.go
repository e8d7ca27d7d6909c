package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-hints/backend"
)

// Cell is one character cell.
type Cell = backend.Cell

// Buffer is a grid of cells widgets render into. It tracks which cells
// changed since the last flush so the app can write only those.
type Buffer struct {
	cells  []Cell
	dirty  []bool
	width  int
	height int

	dirtyAll   bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions, keeping the overlapping content, and marks
// everything dirty.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == b.width && h == b.height {
		return
	}
	next := NewBuffer(w, h)
	for y := 0; y < min(h, b.height); y++ {
		copy(next.cells[y*w:y*w+min(w, b.width)], b.cells[y*b.width:])
	}
	b.cells = next.cells
	b.dirty = next.dirty
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces in the default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{Width: b.width, Height: b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at (x, y), or a blank cell outside the buffer.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune at (x, y). Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if !b.inside(x, y) {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markDirty(x, y, idx)
}

// SetString writes s starting at (x, y) and returns the number of columns
// it advanced. Wide runes take two columns; the second holds a zero rune.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= b.width {
			break
		}
		b.Set(col, y, r, style)
		if w == 2 {
			b.Set(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// Fill fills r, clipped to the buffer, with ch.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clip := r.Intersect(Rect{Width: b.width, Height: b.height})
	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		for x := clip.X; x < clip.X+clip.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// DrawBox draws a rounded border around r.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, bottom, '─', s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(right, y, '│', s)
	}
	b.Set(r.X, r.Y, '╭', s)
	b.Set(right, r.Y, '╮', s)
	b.Set(r.X, bottom, '╰', s)
	b.Set(right, bottom, '╯', s)
}

// Row returns row y as text, with wide-rune continuation cells skipped and
// trailing spaces trimmed.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Cells returns the underlying row-major cell slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

func (b *Buffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Buffer) markDirty(x, y, idx int) {
	if b.dirtyAll || b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	x0, y0 := min(b.dirtyRect.X, x), min(b.dirtyRect.Y, y)
	x1 := max(b.dirtyRect.X+b.dirtyRect.Width, x+1)
	y1 := max(b.dirtyRect.Y+b.dirtyRect.Height, y+1)
	b.dirtyRect = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkAllDirty forces the next flush to write every cell.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{Width: b.width, Height: b.height}
}

// ClearDirty resets dirty tracking after a flush.
func (b *Buffer) ClearDirty() {
	if b.dirtyCount > 0 && !b.dirtyAll {
		clear(b.dirty)
	}
	b.dirtyAll = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty reports whether any cell changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyAll || b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of changed cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtyCell calls fn for each changed cell in row-major order.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	b.ForEachDirtySpan(func(y, startX, endX int) {
		for x := startX; x < endX; x++ {
			fn(x, y, b.cells[y*b.width+x])
		}
	})
}

// ForEachDirtySpan calls fn for each run of changed cells within a row.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	if !b.IsDirty() {
		return
	}
	rect := b.dirtyRect
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		if b.dirtyAll {
			fn(y, 0, b.width)
			continue
		}
		row := y * b.width
		x := rect.X
		for x < rect.X+rect.Width {
			if !b.dirty[row+x] {
				x++
				continue
			}
			start := x
			for x < rect.X+rect.Width && b.dirty[row+x] {
				x++
			}
			fn(y, start, x)
		}
	}
}
