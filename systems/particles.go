// Package systems advances the particle field, the floating shapes and the
// cursor follower.
package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/glowfield/config"
)

// Particle is a single glowing point of the background field.
// Radius and Hue never change after creation; Opacity is the base value
// that LifecycleOpacity modulates each frame.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Hue     float64
	Life    float64
	MaxLife float64
}

// LifeRatio returns Life/MaxLife in [0, 1].
func (p *Particle) LifeRatio() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp01(p.Life / p.MaxLife)
}

// LifecycleOpacity returns the base opacity scaled by a triangular pulse
// that is 0 at birth and death and peaks at mid-life.
func (p *Particle) LifecycleOpacity() float64 {
	return ModulatedOpacity(p.Opacity, p.LifeRatio())
}

// ModulatedOpacity is base * (1 - |ratio - 0.5| * 2).
func ModulatedOpacity(base, lifeRatio float64) float64 {
	return base * (1 - math.Abs(lifeRatio-0.5)*2)
}

// ConnectionOpacity returns the alpha of a line between two particles at
// distance d. It is zero at or beyond maxDist.
func ConnectionOpacity(d, maxDist, particleOpacity, scale float64) float64 {
	if d >= maxDist || maxDist <= 0 {
		return 0
	}
	return (1 - d/maxDist) * particleOpacity * scale
}

// Pointer is the last known pointer position in canvas coordinates.
type Pointer struct {
	X, Y    float64
	Active  bool // false until the first pointer event arrives
	Pressed bool
}

// StepInput carries everything a simulation step reads from the outside.
type StepInput struct {
	Pointer       Pointer
	Width, Height float64
}

// StepStats summarizes one simulation step.
type StepStats struct {
	Attracted int
	Respawned int
}

// ParticleField owns a fixed-size set of particles. The count is decided
// once at seeding; particles are recycled in place, never added or removed.
type ParticleField struct {
	particles []Particle
	cfg       config.FieldConfig
	rng       *rand.Rand

	width, height float64
}

// ParticleCount returns min(maxParticles, floor(w*h / areaPerParticle)).
func ParticleCount(w, h float64, maxParticles int, areaPerParticle float64) int {
	if w <= 0 || h <= 0 || areaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(w * h / areaPerParticle))
	if n > maxParticles {
		n = maxParticles
	}
	return n
}

// NewParticleField creates a field seeded for a w x h canvas.
func NewParticleField(cfg config.FieldConfig, w, h float64, rng *rand.Rand) *ParticleField {
	f := &ParticleField{
		cfg: cfg,
		rng: rng,
	}
	f.Reseed(w, h)
	return f
}

// Reseed discards every particle and creates a fresh batch for a w x h canvas.
func (f *ParticleField) Reseed(w, h float64) {
	f.width, f.height = w, h

	n := ParticleCount(w, h, f.cfg.MaxParticles, f.cfg.AreaPerParticle)
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = f.newParticle(w, h)
	}
}

func (f *ParticleField) newParticle(w, h float64) Particle {
	c := &f.cfg
	return Particle{
		X:       f.rng.Float64() * w,
		Y:       f.rng.Float64() * h,
		VX:      (f.rng.Float64()*2 - 1) * c.SpeedRange,
		VY:      (f.rng.Float64()*2 - 1) * c.SpeedRange,
		Radius:  lerp(c.RadiusMin, c.RadiusMax, f.rng.Float64()),
		Opacity: lerp(c.OpacityMin, c.OpacityMax, f.rng.Float64()),
		Hue:     lerp(c.HueMin, c.HueMax, f.rng.Float64()),
		Life:    f.rng.Float64() * c.InitialLifeMax,
		MaxLife: c.MaxLifeBase + f.rng.Float64()*c.MaxLifeJitter,
	}
}

// Resize records new canvas dimensions. Particles are left where they are
// unless the field is configured to reseed on resize; the next Step wraps
// any that now lie outside.
func (f *ParticleField) Resize(w, h float64) {
	if w == f.width && h == f.height {
		return
	}
	if f.cfg.ReseedOnResize {
		f.Reseed(w, h)
		return
	}
	f.width, f.height = w, h
}

// Step advances every particle by one frame.
func (f *ParticleField) Step(in StepInput) StepStats {
	var stats StepStats

	w, h := in.Width, in.Height
	f.width, f.height = w, h

	radius := f.cfg.AttractionRadius
	strength := f.cfg.AttractionStrength
	damping := f.cfg.Damping

	for i := range f.particles {
		p := &f.particles[i]

		// Aging and respawn
		p.Life++
		if p.Life > p.MaxLife {
			p.Life = 0
			p.X = f.rng.Float64() * w
			p.Y = f.rng.Float64() * h
			stats.Respawned++
		}

		// Pointer attraction with linear falloff
		if in.Pointer.Active {
			dx := in.Pointer.X - p.X
			dy := in.Pointer.Y - p.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 0 && d < radius {
				force := (radius - d) / radius
				p.VX += dx / d * force * strength
				p.VY += dy / d * force * strength
				stats.Attracted++
			}
		}

		p.VX *= damping
		p.VY *= damping

		p.X += p.VX
		p.Y += p.VY

		p.X = wrapEdge(p.X, w)
		p.Y = wrapEdge(p.Y, h)
	}

	return stats
}

// ForEachConnection calls fn once for every unordered pair (i < j) closer
// than maxDist, in collection order.
func (f *ParticleField) ForEachConnection(maxDist float64, fn func(a, b *Particle, d float64)) int {
	maxSq := maxDist * maxDist
	count := 0
	for i := range f.particles {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			dSq := distanceSq(a.X, a.Y, b.X, b.Y)
			if dSq >= maxSq {
				continue
			}
			fn(a, b, math.Sqrt(dSq))
			count++
		}
	}
	return count
}

// Particles returns the live particle slice. Callers must not append to it.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Bounds returns the canvas dimensions of the last step or seed.
func (f *ParticleField) Bounds() (w, h float64) {
	return f.width, f.height
}

// Config returns the field parameters.
func (f *ParticleField) Config() config.FieldConfig {
	return f.cfg
}

// SetAttraction updates the pointer interaction parameters in place.
func (f *ParticleField) SetAttraction(radius, strength, damping float64) {
	f.cfg.AttractionRadius = radius
	f.cfg.AttractionStrength = strength
	f.cfg.Damping = damping
}
