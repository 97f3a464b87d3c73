package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/glowfield/components"
	"github.com/pthm-cable/glowfield/config"
)

func TestDriftTransform(t *testing.T) {
	d := components.Drift{Speed: 0.5, Amplitude: 20, VerticalRatio: 0.8, Spin: 10}

	tests := []struct {
		t       float64
		wantX   float64
		wantY   float64
		wantRot float64
	}{
		{0, 0, 20, 0},
		{math.Pi, 20, 20 * math.Cos(math.Pi/2*0.8), math.Pi / 2 * 10},
		{2 * math.Pi, 0, 20 * math.Cos(math.Pi*0.8), math.Pi * 10},
	}

	for _, tt := range tests {
		got := DriftTransform(d, tt.t)
		if math.Abs(got.OffsetX-tt.wantX) > 1e-9 {
			t.Errorf("t=%v: OffsetX = %v, want %v", tt.t, got.OffsetX, tt.wantX)
		}
		if math.Abs(got.OffsetY-tt.wantY) > 1e-9 {
			t.Errorf("t=%v: OffsetY = %v, want %v", tt.t, got.OffsetY, tt.wantY)
		}
		if math.Abs(got.Rotation-tt.wantRot) > 1e-9 {
			t.Errorf("t=%v: Rotation = %v, want %v", tt.t, got.Rotation, tt.wantRot)
		}
		if got.Scale != 1 {
			t.Errorf("t=%v: Scale = %v, want 1 without pulse", tt.t, got.Scale)
		}
	}
}

func TestDriftTransformBounded(t *testing.T) {
	d := components.Drift{Speed: 0.75, Amplitude: 65, VerticalRatio: 0.8, Pulse: 0.1}

	for step := 0; step < 2000; step++ {
		tr := DriftTransform(d, float64(step)*0.05)
		if math.Abs(tr.OffsetX) > 65+1e-9 || math.Abs(tr.OffsetY) > 65+1e-9 {
			t.Fatalf("step %d: offset (%v, %v) exceeds amplitude", step, tr.OffsetX, tr.OffsetY)
		}
		if tr.Scale < 0.9-1e-9 || tr.Scale > 1.1+1e-9 {
			t.Fatalf("step %d: scale %v outside pulse range", step, tr.Scale)
		}
	}
}

func TestShapeSystemFromConfig(t *testing.T) {
	cfg := config.Default().Shapes
	s := NewShapeSystem(cfg)

	if s.Len() != len(cfg.Items) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(cfg.Items))
	}

	s.Update(1.5)
	if math.Abs(s.Time()-1.5) > 1e-12 {
		t.Errorf("Time = %v, want 1.5", s.Time())
	}

	visited := 0
	s.Each(func(anchor *components.Anchor, shape *components.Shape, tr *components.Transform) {
		if anchor.FX < 0 || anchor.FX > 1 || anchor.FY < 0 || anchor.FY > 1 {
			t.Errorf("anchor (%v, %v) outside unit square", anchor.FX, anchor.FY)
		}
		if shape.Width <= 0 || shape.Height <= 0 {
			t.Errorf("shape %v has empty size", shape.Kind)
		}
		if tr.OffsetX == 0 && tr.OffsetY == 0 {
			t.Error("transform not updated")
		}
		visited++
	})
	if visited != s.Len() {
		t.Errorf("visited %d shapes, want %d", visited, s.Len())
	}
}

func TestShapeSystemDisabled(t *testing.T) {
	cfg := config.Default().Shapes
	cfg.Enabled = false
	s := NewShapeSystem(cfg)

	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 when disabled", s.Len())
	}
	s.Update(1)
	s.Each(func(*components.Anchor, *components.Shape, *components.Transform) {
		t.Error("disabled system should have no shapes")
	})
}
