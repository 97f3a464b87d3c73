package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/telemetry"
	"github.com/pthm-cable/glowfield/ui"
)

// Overlay is what a host draws on top of the canvas after each frame.
type Overlay struct {
	Background renderer.Color
	Palette    ui.Palette
	HUD        ui.HUDState
	ShowHUD    bool
	Tuning     *ui.Tuning // nil when the tuning panel is hidden
}

// Host is a display backend. All methods are called from the frame loop's
// goroutine.
type Host interface {
	// Canvas returns the persistent drawing surface, or nil if none is available.
	Canvas() renderer.Canvas
	// Poll publishes pending pointer and resize events into in, returns the
	// actions triggered since the last call, and false once the host wants
	// to stop.
	Poll(in *InputCell) ([]Action, bool)
	// BeginFrame prepares the canvas for drawing.
	BeginFrame()
	// Present shows the finished frame with the overlay on top. It reports
	// whether the tuning panel edited any value.
	Present(o Overlay) bool
}

// Run drives the frame loop until ctx is cancelled, the host stops, a quit
// action arrives, or maxFrames frames have run (0 = unlimited). A host
// without a canvas makes Run return immediately without simulating.
func Run(ctx context.Context, g *Game, h Host, maxFrames int64) error {
	canvas := h.Canvas()
	if canvas == nil {
		slog.Warn("no drawing surface, animation disabled")
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("frame loop cancelled", "frame", g.frame)
			return nil
		default:
		}

		g.perf.StartFrame()

		g.perf.StartPhase(telemetry.PhaseInput)
		actions, ok := h.Poll(g.input)
		if !ok {
			slog.Info("host closed", "frame", g.frame)
			return nil
		}
		for _, a := range actions {
			if !g.Apply(ctx, a) {
				slog.Info("quit requested", "frame", g.frame)
				return nil
			}
		}

		g.Update()

		h.BeginFrame()
		g.Draw(canvas)

		g.perf.StartPhase(telemetry.PhaseOverlay)
		hud, show := g.HUD()
		overlay := Overlay{
			Background: g.Background(),
			Palette:    g.uiPalette(),
			HUD:        hud,
			ShowHUD:    show,
			Tuning:     g.Tuning(),
		}

		g.perf.StartPhase(telemetry.PhasePresent)
		if h.Present(overlay) {
			g.ApplyTuning()
		}

		g.lastBusy = g.perf.EndFrame()
		g.frame++
		g.recordFrame()

		if maxFrames > 0 && g.frame >= maxFrames {
			slog.Info("max frames reached", "frame", g.frame)
			return nil
		}
	}
}
