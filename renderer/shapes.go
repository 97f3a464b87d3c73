package renderer

import (
	"math"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/systems"
)

const shapeStrokeWidth = 1.5

// ShapeRenderer draws the floating outline shapes behind the particle field.
type ShapeRenderer struct {
	points []Point
}

// NewShapeRenderer creates a shape renderer.
func NewShapeRenderer() *ShapeRenderer {
	return &ShapeRenderer{points: make([]Point, 0, 8)}
}

// Draw renders every shape of s. It returns the number drawn.
func (r *ShapeRenderer) Draw(c Canvas, s *systems.ShapeSystem) int {
	w, h := c.Size()
	n := 0
	s.Each(func(anchor *components.Anchor, shape *components.Shape, tr *components.Transform) {
		cx := anchor.FX*w + tr.OffsetX
		cy := anchor.FY*h + tr.OffsetY
		r.drawShape(c, cx, cy, shape, tr)
		n++
	})
	return n
}

func (r *ShapeRenderer) drawShape(c Canvas, cx, cy float64, shape *components.Shape, tr *components.Transform) {
	col := HSLA(shape.Hue, 0.7, 0.6, shape.Alpha)
	hw := shape.Width * tr.Scale / 2
	hh := shape.Height * tr.Scale / 2

	switch shape.Kind {
	case components.ShapeCircle:
		c.StrokeCircle(cx, cy, hw, shapeStrokeWidth, col)
		return
	case components.ShapeSquare:
		r.outline(-hw, -hh, hw, -hh, hw, hh, -hw, hh)
	case components.ShapeDiamond:
		r.outline(0, -hh, hw, 0, 0, hh, -hw, 0)
	case components.ShapeTriangle:
		r.outline(0, -hh, hw, hh, -hw, hh)
	case components.ShapeHexagon:
		r.points = r.points[:0]
		for i := 0; i < 6; i++ {
			a := float64(i) * math.Pi / 3
			r.points = append(r.points, Point{math.Cos(a) * hw, math.Sin(a) * hw})
		}
	case components.ShapeWindow:
		// Frame first, title bar as a separate two point stroke
		r.outline(-hw, -hh, hw, -hh, hw, hh, -hw, hh)
		c.StrokePolygon(r.place(cx, cy, tr.Rotation), shapeStrokeWidth, col)
		bar := -hh + shape.Height*tr.Scale*0.2
		r.outline(-hw, bar, hw, bar)
		c.StrokePolygon(r.place(cx, cy, tr.Rotation), shapeStrokeWidth, col)
		return
	}

	c.StrokePolygon(r.place(cx, cy, tr.Rotation), shapeStrokeWidth, col)
}

// outline loads local vertices given as x, y pairs.
func (r *ShapeRenderer) outline(xy ...float64) {
	r.points = r.points[:0]
	for i := 0; i+1 < len(xy); i += 2 {
		r.points = append(r.points, Point{xy[i], xy[i+1]})
	}
}

// place rotates the loaded vertices by deg and moves them to (cx, cy).
func (r *ShapeRenderer) place(cx, cy, deg float64) []Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	for i, p := range r.points {
		r.points[i] = Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return r.points
}

// DrawCursor draws the follower rings: a filled dot for the main ring and
// an outline for the trailing one.
func DrawCursor(c Canvas, cursor *systems.CursorFollower, accent Color) {
	if !cursor.Visible() {
		return
	}
	main, trail := cursor.Rings()
	c.StrokeCircle(trail.X, trail.Y, trail.Radius, 2, accent.WithAlpha(trail.Opacity))
	c.FillCircle(main.X, main.Y, main.Radius, accent.WithAlpha(main.Opacity))
}
