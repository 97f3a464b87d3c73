package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the live-editable simulation parameters.
type Tuning struct {
	AttractionRadius   float32
	AttractionStrength float32
	Damping            float32
	ConnectionDistance float32
}

// slider describes one tuning control.
type slider struct {
	label    string
	format   string
	min, max float32
	value    func(t *Tuning) *float32
}

var sliders = []slider{
	{"Attraction radius", "%.0f", 0, 400, func(t *Tuning) *float32 { return &t.AttractionRadius }},
	{"Attraction strength", "%.3f", 0, 0.1, func(t *Tuning) *float32 { return &t.AttractionStrength }},
	{"Damping", "%.3f", 0.9, 1, func(t *Tuning) *float32 { return &t.Damping }},
	{"Link distance", "%.0f", 10, 300, func(t *Tuning) *float32 { return &t.ConnectionDistance }},
}

// Clamp forces every parameter into its slider range.
func (t *Tuning) Clamp() {
	for _, s := range sliders {
		v := s.value(t)
		if *v < s.min {
			*v = s.min
		}
		if *v > s.max {
			*v = s.max
		}
	}
}

// TuningPanel draws raygui sliders for a Tuning.
type TuningPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
}

// NewTuningPanel creates a panel anchored at the top-right of a screen of
// the given width.
func NewTuningPanel(screenWidth int32) *TuningPanel {
	p := &TuningPanel{renderer: NewRenderer(), width: 300}
	p.Anchor(screenWidth)
	return p
}

// Anchor repositions the panel after a resize.
func (p *TuningPanel) Anchor(screenWidth int32) {
	p.x = float32(screenWidth) - p.width - 10
	p.y = 10
}

// Draw renders the sliders and writes edits into t. It reports whether
// any value changed.
func (p *TuningPanel) Draw(t *Tuning, palette Palette) bool {
	r := p.renderer
	r.Theme = ThemeFor(palette)
	pad := float32(r.Theme.Padding)

	height := float32(len(sliders))*40 + pad*2 + 24
	r.DrawPanel(int32(p.x), int32(p.y), int32(p.width), int32(height))
	r.DrawSectionHeader(int32(p.x+pad), int32(p.y+pad), "Tuning")

	changed := false
	y := p.y + pad + 24
	for _, s := range sliders {
		v := s.value(t)
		rl.DrawText(s.label, int32(p.x+pad), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 16
		next := gui.SliderBar(
			rl.Rectangle{X: p.x + pad, Y: y, Width: p.width - pad*2 - 60, Height: 14},
			"", "",
			*v, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, *v), int32(p.x+p.width-pad-52), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
		if next != *v {
			*v = next
			changed = true
		}
		y += 24
	}
	return changed
}
