// Package telemetry provides frame timing, windowed statistics and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-" json:"window_start"`
	WindowEndFrame   int64   `csv:"window_end" json:"window_end"`
	ElapsedSec       float64 `csv:"elapsed" json:"elapsed"`
	Theme            string  `csv:"theme" json:"theme"`

	// Field size at window end
	Particles int `csv:"particles" json:"particles"`

	// Busy time per frame, milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms" json:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms" json:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms" json:"frame_p50_ms"`
	FrameP90MS  float64 `csv:"frame_p90_ms" json:"frame_p90_ms"`
	FrameMaxMS  float64 `csv:"frame_max_ms" json:"frame_max_ms"`

	// Connection lines per frame
	ConnectionsMean float64 `csv:"connections_mean" json:"connections_mean"`
	ConnectionsMax  int     `csv:"connections_max" json:"connections_max"`

	// Simulation events
	AttractedMean float64 `csv:"attracted_mean" json:"attracted_mean"`
	Respawned     int     `csv:"respawned" json:"respawned"`
	PausedFrames  int     `csv:"paused_frames" json:"paused_frames"`
}

// ComputeFrameStats returns mean, standard deviation, median, 90th
// percentile and maximum of values. Empty input gives zeros.
func ComputeFrameStats(values []float64) (mean, std, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	max = floats.Max(sorted)

	return mean, std, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.String("theme", s.Theme),
		slog.Int("particles", s.Particles),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_std_ms", s.FrameStdMS),
		slog.Float64("frame_p50_ms", s.FrameP50MS),
		slog.Float64("frame_p90_ms", s.FrameP90MS),
		slog.Float64("frame_max_ms", s.FrameMaxMS),
		slog.Float64("connections_mean", s.ConnectionsMean),
		slog.Int("connections_max", s.ConnectionsMax),
		slog.Float64("attracted_mean", s.AttractedMean),
		slog.Int("respawned", s.Respawned),
		slog.Int("paused_frames", s.PausedFrames),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
