// Package renderer draws the particle field onto a Canvas.
package renderer

// Canvas is a 2D drawing surface that keeps its contents between frames.
// Coordinates are in canvas pixels with the origin at the top left.
type Canvas interface {
	Size() (w, h float64)

	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	StrokeCircle(cx, cy, r, width float64, c Color)
	StrokePolygon(points []Point, width float64, c Color)

	// RadialGradient fills a disc of radius r, stop offsets measured from
	// the center outward.
	RadialGradient(cx, cy, r float64, stops []Stop)
	// GradientLine strokes a segment whose color follows stops from
	// (x1, y1) to (x2, y2).
	GradientLine(x1, y1, x2, y2, width float64, stops []Stop)
}
