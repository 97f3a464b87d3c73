package components

// Anchor is a resting position expressed as fractions of the canvas size,
// so shapes keep their layout across resizes.
type Anchor struct {
	FX, FY float64
}

// Transform is the per-frame placement of a shape relative to its anchor.
type Transform struct {
	OffsetX, OffsetY float64
	Rotation         float64 // degrees
	Scale            float64
}
