package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/systems"
)

func TestShapeRendererDraw(t *testing.T) {
	cfg := config.Default().Shapes
	s := systems.NewShapeSystem(cfg)
	s.Update(0.5)

	c := NewRecordingCanvas(1280, 800, true)
	n := NewShapeRenderer().Draw(c, s)
	if n != s.Len() {
		t.Errorf("drew %d shapes, want %d", n, s.Len())
	}

	circles, windows := 0, 0
	for _, item := range cfg.Items {
		switch item.Kind {
		case "circle":
			circles++
		case "window":
			windows++
		}
	}
	if got := c.Count(OpStrokeCircle); got != circles {
		t.Errorf("stroked %d circles, want %d", got, circles)
	}
	// Windows draw a frame plus a title bar
	wantPolys := len(cfg.Items) - circles + windows
	if got := c.Count(OpStrokePolygon); got != wantPolys {
		t.Errorf("stroked %d polygons, want %d", got, wantPolys)
	}
}

func TestShapeRendererRotation(t *testing.T) {
	r := NewShapeRenderer()
	r.outline(10, 0)
	pts := r.place(100, 50, 90)

	if math.Abs(pts[0].X-100) > 1e-9 || math.Abs(pts[0].Y-60) > 1e-9 {
		t.Errorf("rotated point (%v, %v), want (100, 60)", pts[0].X, pts[0].Y)
	}
}

func TestDrawCursor(t *testing.T) {
	cfg := config.Default().Cursor
	cursor := systems.NewCursorFollower(cfg, 60, cfg.Main.Params(), cfg.Trail.Params())
	c := NewRecordingCanvas(100, 100, true)
	accent := RGB([3]uint8{139, 92, 246})

	DrawCursor(c, cursor, accent)
	if c.Total() != 0 {
		t.Error("cursor drawn before pointer seen")
	}

	cursor.Update(systems.Pointer{X: 40, Y: 40, Active: true})
	DrawCursor(c, cursor, accent)

	fills := c.OpsOf(OpFillCircle)
	rings := c.OpsOf(OpStrokeCircle)
	if len(fills) != 1 || len(rings) != 1 {
		t.Fatalf("got %d fills and %d rings, want 1 each", len(fills), len(rings))
	}
	if fills[0].Radius != 8 || rings[0].Radius != 16 {
		t.Errorf("radii (%v, %v), want (8, 16)", fills[0].Radius, rings[0].Radius)
	}
	if math.Abs(rings[0].Color.A-0.3) > 1e-9 {
		t.Errorf("trail alpha %v, want 0.3", rings[0].Color.A)
	}
}
