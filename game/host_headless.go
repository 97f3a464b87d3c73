package game

import (
	"math"

	"github.com/pthm-cable/glowfield/renderer"
)

// HeadlessHost runs the loop without a display. Draw calls are counted by
// a RecordingCanvas; with Orbit set the pointer circles the canvas center
// so attraction is exercised.
type HeadlessHost struct {
	canvas *renderer.RecordingCanvas
	orbit  bool
	frame  int
}

// NewHeadlessHost creates a host with a w x h canvas.
func NewHeadlessHost(w, h float64, orbit bool) *HeadlessHost {
	return &HeadlessHost{
		canvas: renderer.NewRecordingCanvas(w, h, false),
		orbit:  orbit,
	}
}

// Recording returns the underlying canvas.
func (h *HeadlessHost) Recording() *renderer.RecordingCanvas {
	return h.canvas
}

func (h *HeadlessHost) Canvas() renderer.Canvas {
	return h.canvas
}

func (h *HeadlessHost) Poll(in *InputCell) ([]Action, bool) {
	if h.orbit {
		w, ht := h.canvas.Size()
		r := math.Min(w, ht) / 3
		a := float64(h.frame) * 0.02
		in.MovePointer(w/2+math.Cos(a)*r, ht/2+math.Sin(a)*r)
	}
	h.frame++
	return nil, true
}

func (h *HeadlessHost) BeginFrame() {
	h.canvas.Reset()
}

func (h *HeadlessHost) Present(Overlay) bool {
	return false
}
