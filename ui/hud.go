package ui

import (
	"fmt"
	"time"
)

// HUDState is a snapshot of everything the HUD shows.
type HUDState struct {
	Particles   int
	Connections int
	Shapes      int
	FPS         float64
	FrameBusy   time.Duration
	FrameBudget time.Duration
	Theme       string
	Paused      bool
	Remote      string // listen address of the remote pointer feed, empty when off
	Palette     Palette
}

// KeyLegend lists the keyboard shortcuts.
const KeyLegend = "[Space] pause  [R] reseed  [T] theme  [H] hud  [Tab] tuning  [Esc] quit"

// HUDLines formats the HUD as plain text lines, shared by every backend.
func HUDLines(s HUDState) []string {
	status := "running"
	if s.Paused {
		status = "paused"
	}
	lines := []string{
		fmt.Sprintf("Glowfield  %s", status),
		fmt.Sprintf("Particles: %d | Links: %d | Shapes: %d", s.Particles, s.Connections, s.Shapes),
		fmt.Sprintf("FPS: %.0f | Frame: %s | Theme: %s", s.FPS, s.FrameBusy.Round(time.Microsecond), s.Theme),
	}
	if s.Remote != "" {
		lines = append(lines, "Remote: "+s.Remote)
	}
	return lines
}

// BudgetUsed returns the share of the frame budget spent on work.
func (s HUDState) BudgetUsed() float32 {
	if s.FrameBudget <= 0 {
		return 0
	}
	return float32(s.FrameBusy) / float32(s.FrameBudget)
}

// HUD renders the heads-up display in the top-left corner.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    340,
	}
}

// Draw renders the HUD panel and the key legend along the bottom edge.
func (h *HUD) Draw(s HUDState, screenHeight int32) {
	r := h.renderer
	r.Theme = ThemeFor(s.Palette)
	pad := r.Theme.Padding

	lines := HUDLines(s)
	height := int32(len(lines)+1)*r.Theme.LineHeight + pad*2 + 4
	r.DrawPanel(h.x, h.y, h.width, height)

	y := r.DrawSectionHeader(h.x+pad, h.y+pad, lines[0])
	for _, line := range lines[1:] {
		r.DrawValueLine(h.x+pad, y, line)
		y += r.Theme.LineHeight
	}
	r.DrawBar(h.x+pad, y, "Frame budget", s.BudgetUsed(), h.width-pad*2)

	r.DrawValueLine(h.x, screenHeight-24, KeyLegend)
}
