package camera

import "testing"

func TestNew(t *testing.T) {
	v := New(100, 40, 0, 0)

	if v.CellW != 8 || v.CellH != 16 {
		t.Errorf("expected default 8x16 cells, got %vx%v", v.CellW, v.CellH)
	}
	w, h := v.CanvasSize()
	if w != 800 || h != 640 {
		t.Errorf("expected canvas 800x640, got %vx%v", w, h)
	}
}

func TestCellRoundtrip(t *testing.T) {
	v := New(100, 40, 8, 16)

	testCases := []struct{ col, row int }{
		{0, 0},
		{50, 20},
		{99, 39},
	}

	for _, tc := range testCases {
		x, y := v.CellToCanvas(tc.col, tc.row)
		col, row, ok := v.CanvasToCell(x, y)
		if !ok || col != tc.col || row != tc.row {
			t.Errorf("roundtrip failed: (%d,%d) -> (%v,%v) -> (%d,%d,%v)",
				tc.col, tc.row, x, y, col, row, ok)
		}
	}
}

func TestCanvasToCellOffGrid(t *testing.T) {
	v := New(10, 10, 8, 16)

	testCases := []struct{ x, y float64 }{
		{-0.1, 5},
		{5, -0.1},
		{80, 5},
		{5, 160},
	}

	for _, tc := range testCases {
		if _, _, ok := v.CanvasToCell(tc.x, tc.y); ok {
			t.Errorf("(%v, %v) should be off grid", tc.x, tc.y)
		}
	}
}

func TestCellSpan(t *testing.T) {
	v := New(10, 10, 8, 16)

	tests := []struct {
		name           string
		x, y, w, h     float64
		c0, r0, c1, r1 int
	}{
		{"full canvas", 0, 0, 80, 160, 0, 0, 10, 10},
		{"inside one cell", 1, 1, 2, 2, 0, 0, 1, 1},
		{"straddles", 6, 14, 4, 4, 0, 0, 2, 2},
		{"clipped left", -20, 0, 24, 16, 0, 0, 1, 1},
		{"off screen", 100, 0, 10, 10, 10, 0, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c0, r0, c1, r1 := v.CellSpan(tt.x, tt.y, tt.w, tt.h)
			if c0 != tt.c0 || r0 != tt.r0 || c1 != tt.c1 || r1 != tt.r1 {
				t.Errorf("CellSpan = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					c0, r0, c1, r1, tt.c0, tt.r0, tt.c1, tt.r1)
			}
		})
	}
}

func TestResize(t *testing.T) {
	v := New(10, 10, 8, 16)

	if v.Resize(10, 10) {
		t.Error("same size reported as changed")
	}
	if !v.Resize(20, 5) {
		t.Error("new size not reported as changed")
	}
	if w, h := v.CanvasSize(); w != 160 || h != 80 {
		t.Errorf("canvas %vx%v after resize, want 160x80", w, h)
	}
}
