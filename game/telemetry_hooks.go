package game

import (
	"log/slog"

	"github.com/pthm-cable/glowfield/telemetry"
)

// recordFrame feeds the frame into the stats collector and flushes a
// window when one is complete.
func (g *Game) recordFrame() {
	g.collector.Record(telemetry.FrameSample{
		Busy:        g.lastBusy,
		Particles:   g.field.Len(),
		Connections: g.lastDraw.Connections,
		Attracted:   g.lastStep.Attracted,
		Respawned:   g.lastStep.Respawned,
		Paused:      g.paused,
	})

	if !g.collector.ShouldFlush(g.frame) {
		return
	}
	g.flushTelemetry()
}

// flushTelemetry closes the current stats window and publishes it.
func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.frame, g.theme)
	perfStats := g.perf.Stats()

	g.statsMu.Lock()
	g.latest = stats
	g.statsMu.Unlock()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// LatestStats returns the most recently flushed window. Safe to call from
// any goroutine.
func (g *Game) LatestStats() telemetry.WindowStats {
	g.statsMu.RLock()
	defer g.statsMu.RUnlock()
	return g.latest
}
