package renderer

import (
	"math"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/systems"
)

// FieldRenderer draws the particle field in three passes: trail fade,
// particles (glow and core), then connection lines.
type FieldRenderer struct {
	cfg        config.RenderConfig
	background Color

	glow [3]Stop
	line [3]Stop
}

// NewFieldRenderer creates a renderer that fades toward background.
func NewFieldRenderer(cfg config.RenderConfig, background Color) *FieldRenderer {
	return &FieldRenderer{cfg: cfg, background: background}
}

// SetBackground changes the trail fade color.
func (r *FieldRenderer) SetBackground(c Color) {
	r.background = c
}

// Background returns the trail fade color.
func (r *FieldRenderer) Background() Color {
	return r.background
}

// SetConfig replaces the render parameters.
func (r *FieldRenderer) SetConfig(cfg config.RenderConfig) {
	r.cfg = cfg
}

// Config returns the render parameters.
func (r *FieldRenderer) Config() config.RenderConfig {
	return r.cfg
}

// DrawTrail covers the canvas with the background at low alpha instead of
// clearing it, so earlier frames fade out gradually.
func (r *FieldRenderer) DrawTrail(c Canvas) {
	w, h := c.Size()
	c.FillRect(0, 0, w, h, r.background.WithAlpha(r.cfg.TrailAlpha))
}

// DrawParticles draws every particle as a radial glow with a solid core.
// It returns the number of particles drawn.
func (r *FieldRenderer) DrawParticles(c Canvas, particles []systems.Particle) int {
	for i := range particles {
		p := &particles[i]
		op := p.LifecycleOpacity()

		c.RadialGradient(p.X, p.Y, p.Radius*r.cfg.GlowScale, r.glowStops(p.Hue, op))
		c.FillCircle(p.X, p.Y, p.Radius, HSLA(p.Hue, 0.9, 0.7, op))
	}
	return len(particles)
}

// DrawConnections links every pair of particles closer than the
// connection distance. It returns the number of lines drawn.
func (r *FieldRenderer) DrawConnections(c Canvas, field *systems.ParticleField) int {
	maxDist := r.cfg.ConnectionDistance
	return field.ForEachConnection(maxDist, func(a, b *systems.Particle, d float64) {
		op := systems.ConnectionOpacity(d, maxDist, a.LifecycleOpacity(), r.cfg.ConnectionAlpha)
		c.GradientLine(a.X, a.Y, b.X, b.Y, r.LineWidth(op), r.lineStops(a.Hue, b.Hue, op))
	})
}

// DrawStats counts the work done by one Draw.
type DrawStats struct {
	Particles   int
	Connections int
}

// Draw runs all three passes.
func (r *FieldRenderer) Draw(c Canvas, field *systems.ParticleField) DrawStats {
	r.DrawTrail(c)
	n := r.DrawParticles(c, field.Particles())
	return DrawStats{
		Particles:   n,
		Connections: r.DrawConnections(c, field),
	}
}

// LineWidth returns the stroke width for a connection of the given opacity.
func (r *FieldRenderer) LineWidth(op float64) float64 {
	return math.Max(r.cfg.MinLineWidth, op*r.cfg.LineWidthScale)
}

func (r *FieldRenderer) glowStops(hue, op float64) []Stop {
	r.glow[0] = Stop{0, HSLA(hue, 0.8, 0.6, op)}
	r.glow[1] = Stop{0.5, HSLA(hue, 0.7, 0.5, op*0.5)}
	r.glow[2] = Stop{1, HSLA(hue, 0.6, 0.4, 0)}
	return r.glow[:]
}

// lineStops blends from one hue to the other through their average,
// brighter at the midpoint.
func (r *FieldRenderer) lineStops(h1, h2, op float64) []Stop {
	r.line[0] = Stop{0, HSLA(h1, 0.7, 0.6, op)}
	r.line[1] = Stop{0.5, HSLA((h1+h2)/2, 0.75, 0.65, op*1.5)}
	r.line[2] = Stop{1, HSLA(h2, 0.7, 0.6, op)}
	return r.line[:]
}
