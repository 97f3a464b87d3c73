// Package camera maps between canvas pixels and a grid of terminal cells.
package camera

import "math"

// Viewport projects a virtual pixel canvas onto a Cols x Rows cell grid.
// Each cell covers CellW x CellH canvas pixels; terminal cells are about
// twice as tall as wide, so the default cell is 8 x 16.
type Viewport struct {
	Cols, Rows   int
	CellW, CellH float64
}

// New creates a viewport for a cols x rows terminal.
func New(cols, rows int, cellW, cellH float64) *Viewport {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	return &Viewport{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}
}

// CanvasSize returns the canvas dimensions in pixels.
func (v *Viewport) CanvasSize() (w, h float64) {
	return float64(v.Cols) * v.CellW, float64(v.Rows) * v.CellH
}

// CanvasToCell returns the cell containing canvas point (x, y) and whether
// it lies on the grid.
func (v *Viewport) CanvasToCell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / v.CellW))
	row = int(math.Floor(y / v.CellH))
	ok = col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
	return col, row, ok
}

// CellToCanvas returns the canvas position of a cell's center.
func (v *Viewport) CellToCanvas(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * v.CellW, (float64(row) + 0.5) * v.CellH
}

// CellSpan returns the range of cells [c0, c1) x [r0, r1) touched by the
// canvas rectangle (x, y, w, h), clipped to the grid. The range is empty
// when the rectangle is off screen.
func (v *Viewport) CellSpan(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0 = clampInt(int(math.Floor(x/v.CellW)), 0, v.Cols)
	r0 = clampInt(int(math.Floor(y/v.CellH)), 0, v.Rows)
	c1 = clampInt(int(math.Ceil((x+w)/v.CellW)), 0, v.Cols)
	r1 = clampInt(int(math.Ceil((y+h)/v.CellH)), 0, v.Rows)
	return c0, r0, c1, r1
}

// Resize updates the grid dimensions.
func (v *Viewport) Resize(cols, rows int) bool {
	if cols == v.Cols && rows == v.Rows {
		return false
	}
	v.Cols, v.Rows = cols, rows
	return true
}

// clampInt restricts a value to a range.
func clampInt(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
