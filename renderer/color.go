package renderer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB color with a floating alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// HSLA builds a color from hue in degrees and saturation, lightness and
// alpha in [0, 1].
func HSLA(h, s, l, a float64) Color {
	r, g, b := colorful.Hsl(math.Mod(h, 360), s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// RGB builds an opaque color from a palette triple.
func RGB(rgb [3]uint8) Color {
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Alpha8 returns the alpha as a byte.
func (c Color) Alpha8() uint8 {
	return uint8(math.Round(c.A * 255))
}

// Lerp blends toward o in RGB space.
func (c Color) Lerp(o Color, t float64) Color {
	t = clamp01(t)
	r, g, b := c.colorful().BlendRgb(o.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: c.A + (o.A-c.A)*t}
}

// Over composites c onto an opaque base color.
func (c Color) Over(base Color) Color {
	out := base.Lerp(c, c.A)
	out.A = 1
	return out
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Stop is one color stop of a gradient. Offset runs from 0 (start or
// center) to 1 (end or rim).
type Stop struct {
	Offset float64
	Color  Color
}

// SampleStops returns the gradient color at t. Stops must be sorted by offset.
func SampleStops(stops []Stop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
