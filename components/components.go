// Package components defines ECS components for the decorative background layer.
package components

// ShapeKind selects the outline drawn for a floating shape.
type ShapeKind uint8

const (
	ShapeSquare ShapeKind = iota
	ShapeCircle
	ShapeTriangle
	ShapeHexagon
	ShapeDiamond
	ShapeWindow // rounded panel with three title-bar dots
)

// ParseShapeKind maps a config name to a ShapeKind. Unknown names are squares.
func ParseShapeKind(name string) ShapeKind {
	switch name {
	case "circle":
		return ShapeCircle
	case "triangle":
		return ShapeTriangle
	case "hexagon":
		return ShapeHexagon
	case "diamond":
		return ShapeDiamond
	case "window":
		return ShapeWindow
	default:
		return ShapeSquare
	}
}

// String returns the config name of the kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	case ShapeHexagon:
		return "hexagon"
	case ShapeDiamond:
		return "diamond"
	case ShapeWindow:
		return "window"
	default:
		return "square"
	}
}

// Shape holds the static look of a floating shape.
type Shape struct {
	Kind          ShapeKind
	Width, Height float64
	Hue           float64
	Alpha         float64
}

// Drift holds the oscillation parameters of a floating shape.
// Offsets are sin(t*Speed)*Amplitude horizontally and
// cos(t*Speed*VerticalRatio)*Amplitude vertically.
type Drift struct {
	Speed         float64
	Amplitude     float64
	VerticalRatio float64
	Spin          float64 // degrees per unit of t*Speed
	Pulse         float64 // scale amplitude
}
