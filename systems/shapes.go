package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/config"
)

// ShapeSystem animates the decorative floating shapes. Each shape is an
// entity; its Transform is recomputed from elapsed time every frame, so the
// motion is a pure function of t and never accumulates error.
type ShapeSystem struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Anchor, components.Shape, components.Drift, components.Transform]
	filter *ecs.Filter4[components.Anchor, components.Shape, components.Drift, components.Transform]

	time  float64
	count int
}

// NewShapeSystem creates one entity per configured shape. Shape i drifts
// with speed SpeedBase + i*SpeedStep and amplitude AmplitudeBase + i*AmplitudeStep.
func NewShapeSystem(cfg config.ShapesConfig) *ShapeSystem {
	world := ecs.NewWorld()

	s := &ShapeSystem{
		world:  world,
		mapper: ecs.NewMap4[components.Anchor, components.Shape, components.Drift, components.Transform](world),
		filter: ecs.NewFilter4[components.Anchor, components.Shape, components.Drift, components.Transform](world),
	}

	if !cfg.Enabled {
		return s
	}

	for i, item := range cfg.Items {
		anchor := components.Anchor{FX: item.AnchorX, FY: item.AnchorY}
		shape := components.Shape{
			Kind:   components.ParseShapeKind(item.Kind),
			Width:  item.Width,
			Height: item.Height,
			Hue:    item.Hue,
			Alpha:  item.Alpha,
		}
		drift := components.Drift{
			Speed:         cfg.SpeedBase + float64(i)*cfg.SpeedStep,
			Amplitude:     cfg.AmplitudeBase + float64(i)*cfg.AmplitudeStep,
			VerticalRatio: cfg.VerticalRatio,
			Spin:          cfg.SpinDegrees,
			Pulse:         cfg.Pulse,
		}
		tr := components.Transform{Scale: 1}
		s.mapper.NewEntity(&anchor, &shape, &drift, &tr)
		s.count++
	}

	return s
}

// Update advances the shape clock by dt seconds and recomputes transforms.
func (s *ShapeSystem) Update(dt float64) {
	s.time += dt

	query := s.filter.Query()
	for query.Next() {
		_, _, drift, tr := query.Get()
		*tr = DriftTransform(*drift, s.time)
	}
}

// DriftTransform evaluates a drift at time t.
func DriftTransform(d components.Drift, t float64) components.Transform {
	phase := t * d.Speed
	return components.Transform{
		OffsetX:  math.Sin(phase) * d.Amplitude,
		OffsetY:  math.Cos(phase*d.VerticalRatio) * d.Amplitude,
		Rotation: phase * d.Spin,
		Scale:    1 + math.Sin(phase*2)*d.Pulse,
	}
}

// Each visits every shape in creation order.
func (s *ShapeSystem) Each(fn func(anchor *components.Anchor, shape *components.Shape, tr *components.Transform)) {
	query := s.filter.Query()
	for query.Next() {
		anchor, shape, _, tr := query.Get()
		fn(anchor, shape, tr)
	}
}

// Len returns the number of shapes.
func (s *ShapeSystem) Len() int {
	return s.count
}

// Time returns the shape clock in seconds.
func (s *ShapeSystem) Time() float64 {
	return s.time
}
