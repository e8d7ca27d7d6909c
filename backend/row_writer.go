package backend

// RowWriter is implemented by backends that can write a row span at once.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}

// RectWriter is implemented by backends that can write a whole rectangle.
// cells is row-major with width*height entries.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}
