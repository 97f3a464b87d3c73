package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/glowfield/config"
)

func newTestCursor() *CursorFollower {
	cfg := config.Default().Cursor
	return NewCursorFollower(cfg, 60, cfg.Main.Params(), cfg.Trail.Params())
}

func TestCursorHiddenUntilPointer(t *testing.T) {
	c := newTestCursor()

	c.Update(Pointer{X: 100, Y: 100})
	if c.Visible() {
		t.Error("cursor visible before any pointer event")
	}

	c.Update(Pointer{X: 100, Y: 100, Active: true})
	if !c.Visible() {
		t.Fatal("cursor not visible after pointer event")
	}
	main, trail := c.Rings()
	if main.X != 100 || main.Y != 100 || trail.X != 100 || trail.Y != 100 {
		t.Errorf("rings not snapped to first pointer: main (%v, %v) trail (%v, %v)", main.X, main.Y, trail.X, trail.Y)
	}
}

func TestCursorConverges(t *testing.T) {
	c := newTestCursor()
	c.Update(Pointer{X: 0, Y: 0, Active: true})

	target := Pointer{X: 300, Y: 200, Active: true}
	for i := 0; i < 300; i++ {
		c.Update(target)
	}

	main, trail := c.Rings()
	if math.Abs(main.X-300) > 0.5 || math.Abs(main.Y-200) > 0.5 {
		t.Errorf("main ring at (%v, %v), want ~(300, 200)", main.X, main.Y)
	}
	if math.Abs(trail.X-300) > 0.5 || math.Abs(trail.Y-200) > 0.5 {
		t.Errorf("trail ring at (%v, %v), want ~(300, 200)", trail.X, trail.Y)
	}
}

func TestCursorTrailLags(t *testing.T) {
	c := newTestCursor()
	c.Update(Pointer{X: 0, Y: 0, Active: true})

	for i := 0; i < 5; i++ {
		c.Update(Pointer{X: 400, Y: 0, Active: true})
	}

	main, trail := c.Rings()
	if trail.X >= main.X {
		t.Errorf("trail ring (%v) should lag main ring (%v)", trail.X, main.X)
	}
}

func TestCursorPressed(t *testing.T) {
	c := newTestCursor()
	c.Update(Pointer{X: 10, Y: 10, Active: true})

	main, trail := c.Rings()
	if main.Radius != 8 || trail.Radius != 16 {
		t.Errorf("radii (%v, %v), want (8, 16)", main.Radius, trail.Radius)
	}
	if trail.Opacity != 0.3 {
		t.Errorf("trail opacity %v, want 0.3", trail.Opacity)
	}

	c.Update(Pointer{X: 10, Y: 10, Active: true, Pressed: true})
	main, trail = c.Rings()
	if math.Abs(main.Radius-6.4) > 1e-9 {
		t.Errorf("pressed main radius %v, want 6.4", main.Radius)
	}
	if trail.Opacity != 0.5 {
		t.Errorf("pressed trail opacity %v, want 0.5", trail.Opacity)
	}
}
