// Package terminal renders the glow field into a tcell screen. Every cell
// holds one composited color; the canvas is a virtual pixel surface mapped
// onto the cell grid by a camera.Viewport.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/renderer"
)

// CellCanvas is a renderer.Canvas backed by one opaque color per cell.
// Contents persist between frames like a browser canvas.
type CellCanvas struct {
	view  *camera.Viewport
	cells []renderer.Color

	// stamp marks cells already touched by the current stroke so a line
	// crossing a cell twice blends once.
	stamp []uint32
	gen   uint32
}

// NewCellCanvas creates a canvas for the viewport filled with clear.
func NewCellCanvas(view *camera.Viewport, clear renderer.Color) *CellCanvas {
	c := &CellCanvas{view: view}
	c.Resize(clear)
	return c
}

// Resize reallocates the buffer after the viewport changed and fills it
// with clear.
func (c *CellCanvas) Resize(clear renderer.Color) {
	n := c.view.Cols * c.view.Rows
	c.cells = make([]renderer.Color, n)
	c.stamp = make([]uint32, n)
	c.gen = 0
	clear.A = 1
	for i := range c.cells {
		c.cells[i] = clear
	}
}

// Viewport returns the cell mapping.
func (c *CellCanvas) Viewport() *camera.Viewport {
	return c.view
}

// At returns the color of a cell.
func (c *CellCanvas) At(col, row int) renderer.Color {
	return c.cells[row*c.view.Cols+col]
}

func (c *CellCanvas) Size() (w, h float64) {
	return c.view.CanvasSize()
}

func (c *CellCanvas) blend(col, row int, clr renderer.Color) {
	if clr.A <= 0 {
		return
	}
	i := row*c.view.Cols + col
	c.cells[i] = clr.Over(c.cells[i])
}

func (c *CellCanvas) FillRect(x, y, w, h float64, clr renderer.Color) {
	c0, r0, c1, r1 := c.view.CellSpan(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			c.blend(col, row, clr)
		}
	}
}

// cellDistance returns the distance from (cx, cy) to the nearest point of
// the cell rectangle, zero when the point is inside.
func (c *CellCanvas) cellDistance(col, row int, cx, cy float64) float64 {
	x0 := float64(col) * c.view.CellW
	y0 := float64(row) * c.view.CellH
	dx := math.Max(math.Max(x0-cx, 0), cx-(x0+c.view.CellW))
	dy := math.Max(math.Max(y0-cy, 0), cy-(y0+c.view.CellH))
	return math.Hypot(dx, dy)
}

func (c *CellCanvas) FillCircle(cx, cy, r float64, clr renderer.Color) {
	c0, r0, c1, r1 := c.view.CellSpan(cx-r, cy-r, 2*r, 2*r)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if c.cellDistance(col, row, cx, cy) <= r {
				c.blend(col, row, clr)
			}
		}
	}
}

func (c *CellCanvas) StrokeCircle(cx, cy, r, width float64, clr renderer.Color) {
	outer := r + width/2
	c0, r0, c1, r1 := c.view.CellSpan(cx-outer, cy-outer, 2*outer, 2*outer)
	halfCell := math.Max(c.view.CellW, c.view.CellH) / 2
	band := math.Max(width/2, halfCell)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			x, y := c.view.CellToCanvas(col, row)
			if math.Abs(math.Hypot(x-cx, y-cy)-r) <= band {
				c.blend(col, row, clr)
			}
		}
	}
}

func (c *CellCanvas) StrokePolygon(points []renderer.Point, width float64, clr renderer.Color) {
	if len(points) < 2 {
		return
	}
	c.nextStamp()
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		c.walk(a.X, a.Y, b.X, b.Y, func(col, row int, _ float64) {
			c.blend(col, row, clr)
		})
	}
}

func (c *CellCanvas) RadialGradient(cx, cy, r float64, stops []renderer.Stop) {
	if r <= 0 {
		return
	}
	c0, r0, c1, r1 := c.view.CellSpan(cx-r, cy-r, 2*r, 2*r)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			d := c.cellDistance(col, row, cx, cy)
			if d > r {
				continue
			}
			c.blend(col, row, renderer.SampleStops(stops, d/r))
		}
	}
}

func (c *CellCanvas) GradientLine(x1, y1, x2, y2, width float64, stops []renderer.Stop) {
	c.nextStamp()
	c.walk(x1, y1, x2, y2, func(col, row int, t float64) {
		c.blend(col, row, renderer.SampleStops(stops, t))
	})
}

func (c *CellCanvas) nextStamp() {
	c.gen++
	if c.gen == 0 {
		for i := range c.stamp {
			c.stamp[i] = 0
		}
		c.gen = 1
	}
}

// walk samples the segment at half-cell steps and calls fn once per cell
// with the segment parameter t of the first sample that hit it.
func (c *CellCanvas) walk(x1, y1, x2, y2 float64, fn func(col, row int, t float64)) {
	step := math.Min(c.view.CellW, c.view.CellH) / 2
	n := int(math.Ceil(math.Hypot(x2-x1, y2-y1)/step)) + 1
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		col, row, ok := c.view.CanvasToCell(x1+(x2-x1)*t, y1+(y2-y1)*t)
		if !ok {
			continue
		}
		idx := row*c.view.Cols + col
		if c.stamp[idx] == c.gen {
			continue
		}
		c.stamp[idx] = c.gen
		fn(col, row, t)
	}
}

// Flush copies the buffer to the screen as background-colored blanks.
func (c *CellCanvas) Flush(s tcell.Screen) {
	for row := 0; row < c.view.Rows; row++ {
		for col := 0; col < c.view.Cols; col++ {
			s.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(tcellColor(c.At(col, row))))
		}
	}
}

func tcellColor(c renderer.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
