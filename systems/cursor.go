package systems

import (
	"github.com/charmbracelet/harmonica"

	"github.com/pthm-cable/glowfield/config"
)

// SpringPoint is a 2D point chasing a target through a damped spring.
type SpringPoint struct {
	spring harmonica.Spring
	X, Y   float64
	vx, vy float64
}

// NewSpringPoint creates a spring follower stepped at fps frames per second.
func NewSpringPoint(fps int, p config.SpringParams) SpringPoint {
	return SpringPoint{
		spring: harmonica.NewSpring(harmonica.FPS(fps), p.AngularFrequency, p.DampingRatio),
	}
}

// Update moves the point one frame toward (tx, ty).
func (s *SpringPoint) Update(tx, ty float64) {
	s.X, s.vx = s.spring.Update(s.X, s.vx, tx)
	s.Y, s.vy = s.spring.Update(s.Y, s.vy, ty)
}

// Snap places the point on (x, y) at rest.
func (s *SpringPoint) Snap(x, y float64) {
	s.X, s.Y = x, y
	s.vx, s.vy = 0, 0
}

// CursorFollower is a pair of rings that trail the pointer: a small dot on
// a stiff spring and a larger ring on a looser one.
type CursorFollower struct {
	Main  SpringPoint
	Trail SpringPoint

	mainCfg, trailCfg config.SpringConfig

	visible bool
	pressed bool
}

// CursorRing is the drawable state of one ring.
type CursorRing struct {
	X, Y    float64
	Radius  float64
	Opacity float64
}

// NewCursorFollower creates a follower from cursor config and its derived spring params.
func NewCursorFollower(cfg config.CursorConfig, fps int, mainP, trailP config.SpringParams) *CursorFollower {
	return &CursorFollower{
		Main:     NewSpringPoint(fps, mainP),
		Trail:    NewSpringPoint(fps, trailP),
		mainCfg:  cfg.Main,
		trailCfg: cfg.Trail,
	}
}

// Update steps both springs toward the pointer. The rings appear at the
// pointer on its first event instead of flying in from the origin.
func (c *CursorFollower) Update(p Pointer) {
	if !p.Active {
		return
	}
	if !c.visible {
		c.Main.Snap(p.X, p.Y)
		c.Trail.Snap(p.X, p.Y)
		c.visible = true
	}
	c.pressed = p.Pressed
	c.Main.Update(p.X, p.Y)
	c.Trail.Update(p.X, p.Y)
}

// Visible reports whether the pointer has been seen.
func (c *CursorFollower) Visible() bool {
	return c.visible
}

// Rings returns the main and trailing ring for drawing.
func (c *CursorFollower) Rings() (main, trail CursorRing) {
	main = ringFor(c.Main, c.mainCfg, c.pressed)
	trail = ringFor(c.Trail, c.trailCfg, c.pressed)
	return main, trail
}

func ringFor(p SpringPoint, cfg config.SpringConfig, pressed bool) CursorRing {
	r := CursorRing{X: p.X, Y: p.Y, Radius: cfg.Radius, Opacity: cfg.Opacity}
	if pressed {
		r.Radius *= cfg.PressedScale
		r.Opacity = cfg.PressedAlpha
	}
	return r
}
