package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/systems"
)

var slate = RGB([3]uint8{15, 23, 42})

func newTestRenderer() *FieldRenderer {
	return NewFieldRenderer(config.Default().Render, slate)
}

func TestDrawTrail(t *testing.T) {
	c := NewRecordingCanvas(640, 480, true)
	newTestRenderer().DrawTrail(c)

	rects := c.OpsOf(OpFillRect)
	if len(rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(rects))
	}
	r := rects[0]
	if r.X1 != 0 || r.Y1 != 0 || r.W != 640 || r.H != 480 {
		t.Errorf("trail rect (%v, %v, %v, %v), want full canvas", r.X1, r.Y1, r.W, r.H)
	}
	if r.Color.R != 15 || r.Color.G != 23 || r.Color.B != 42 {
		t.Errorf("trail color %+v, want background", r.Color)
	}
	if math.Abs(r.Color.A-0.1) > 1e-9 {
		t.Errorf("trail alpha %v, want 0.1", r.Color.A)
	}
}

func TestDrawParticles(t *testing.T) {
	c := NewRecordingCanvas(300, 200, true)
	ps := []systems.Particle{
		{X: 10, Y: 20, Radius: 2, Opacity: 0.6, Hue: 270, Life: 50, MaxLife: 100},
		{X: 30, Y: 40, Radius: 3, Opacity: 0.4, Hue: 300, Life: 0, MaxLife: 150},
	}

	n := newTestRenderer().DrawParticles(c, ps)
	if n != 2 {
		t.Errorf("drew %d particles, want 2", n)
	}

	glows := c.OpsOf(OpRadialGradient)
	cores := c.OpsOf(OpFillCircle)
	if len(glows) != 2 || len(cores) != 2 {
		t.Fatalf("got %d glows and %d cores, want 2 each", len(glows), len(cores))
	}

	g := glows[0]
	if g.Radius != 6 {
		t.Errorf("glow radius %v, want 3 x radius = 6", g.Radius)
	}
	if len(g.Stops) != 3 {
		t.Fatalf("glow has %d stops, want 3", len(g.Stops))
	}
	// Mid-life particle draws at its base opacity
	if math.Abs(g.Stops[0].Color.A-0.6) > 1e-9 {
		t.Errorf("inner stop alpha %v, want 0.6", g.Stops[0].Color.A)
	}
	if math.Abs(g.Stops[1].Color.A-0.3) > 1e-9 || g.Stops[1].Offset != 0.5 {
		t.Errorf("middle stop %+v, want offset 0.5 alpha 0.3", g.Stops[1])
	}
	if g.Stops[2].Color.A != 0 {
		t.Errorf("rim stop alpha %v, want 0", g.Stops[2].Color.A)
	}

	if cores[0].Radius != 2 || math.Abs(cores[0].Color.A-0.6) > 1e-9 {
		t.Errorf("core %+v, want radius 2 alpha 0.6", cores[0])
	}
	// Newborn particle is invisible
	if cores[1].Color.A != 0 || glows[1].Stops[0].Color.A != 0 {
		t.Error("particle at life 0 should draw fully transparent")
	}
}

func TestDrawConnections(t *testing.T) {
	cfg := config.Default()
	field := systems.NewParticleField(cfg.Field, 1500, 1000, rand.New(rand.NewSource(11)))
	ps := field.Particles()
	for i := range ps {
		ps[i].Life = ps[i].MaxLife / 2
	}

	c := NewRecordingCanvas(1500, 1000, true)
	r := newTestRenderer()
	got := r.DrawConnections(c, field)

	want := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y) < 120 {
				want++
			}
		}
	}
	if got != want {
		t.Errorf("DrawConnections = %d, want %d", got, want)
	}

	lines := c.OpsOf(OpGradientLine)
	if len(lines) != want {
		t.Fatalf("recorded %d lines, want %d", len(lines), want)
	}
	for _, l := range lines {
		if d := math.Hypot(l.X2-l.X1, l.Y2-l.Y1); d >= 120 {
			t.Errorf("line of length %v drawn", d)
		}
		if l.Width < 0.5 {
			t.Errorf("line width %v below minimum", l.Width)
		}
		if len(l.Stops) != 3 {
			t.Fatalf("line has %d stops, want 3", len(l.Stops))
		}
		if math.Abs(l.Stops[1].Color.A-math.Min(1, l.Stops[0].Color.A*1.5)) > 1e-9 {
			t.Errorf("midpoint alpha %v, want 1.5x end alpha %v", l.Stops[1].Color.A, l.Stops[0].Color.A)
		}
	}
}

func TestLineWidth(t *testing.T) {
	r := newTestRenderer()
	tests := []struct {
		op, want float64
	}{
		{0, 0.5},
		{0.1, 0.5},
		{0.2, 0.6},
		{0.3, 0.9},
	}
	for _, tt := range tests {
		if got := r.LineWidth(tt.op); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LineWidth(%v) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestDrawOrder(t *testing.T) {
	cfg := config.Default()
	field := systems.NewParticleField(cfg.Field, 600, 600, rand.New(rand.NewSource(2)))
	c := NewRecordingCanvas(600, 600, true)

	stats := newTestRenderer().Draw(c, field)
	if stats.Particles != field.Len() {
		t.Errorf("Particles = %d, want %d", stats.Particles, field.Len())
	}

	if c.Ops[0].Kind != OpFillRect {
		t.Fatalf("first op %v, want trail fill", c.Ops[0].Kind)
	}
	// All particle ops come before the first connection line
	seenLine := false
	for _, op := range c.Ops[1:] {
		switch op.Kind {
		case OpGradientLine:
			seenLine = true
		case OpRadialGradient, OpFillCircle:
			if seenLine {
				t.Fatal("particle drawn after a connection line")
			}
		}
	}
}

func TestRecordingCanvasCounts(t *testing.T) {
	c := NewRecordingCanvas(10, 10, false)
	c.FillRect(0, 0, 10, 10, slate)
	c.FillCircle(1, 1, 1, slate)
	c.GradientLine(0, 0, 1, 1, 1, nil)

	if c.Total() != 3 || c.Count(OpGradientLine) != 1 {
		t.Errorf("counts total=%d lines=%d", c.Total(), c.Count(OpGradientLine))
	}
	if len(c.Ops) != 0 {
		t.Error("ops recorded with Record off")
	}
	c.Reset()
	if c.Total() != 0 {
		t.Error("Reset did not clear counters")
	}
}
