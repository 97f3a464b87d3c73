package telemetry

import "time"

// FrameSample is what one frame reports to the collector.
type FrameSample struct {
	Busy        time.Duration
	Particles   int
	Connections int
	Attracted   int
	Respawned   int
	Paused      bool
}

// Collector accumulates frame samples and produces WindowStats every
// windowFrames frames.
type Collector struct {
	windowFrames int64
	dt           float64

	windowStartFrame int64

	busyMS      []float64
	connections []float64
	attracted   []float64
	maxConn     int
	respawned   int
	paused      int
	particles   int
}

// NewCollector creates a new stats collector.
// windowFrames: frames per window; dt: seconds per frame, used for elapsed time.
func NewCollector(windowFrames int, dt float64) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: int64(windowFrames),
		dt:           dt,
		busyMS:       make([]float64, 0, windowFrames),
		connections:  make([]float64, 0, windowFrames),
		attracted:    make([]float64, 0, windowFrames),
	}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameSample) {
	c.busyMS = append(c.busyMS, float64(s.Busy)/float64(time.Millisecond))
	c.particles = s.Particles
	if s.Paused {
		c.paused++
		return
	}
	c.connections = append(c.connections, float64(s.Connections))
	c.attracted = append(c.attracted, float64(s.Attracted))
	if s.Connections > c.maxConn {
		c.maxConn = s.Connections
	}
	c.respawned += s.Respawned
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(frame int64, theme string) WindowStats {
	mean, std, p50, p90, max := ComputeFrameStats(c.busyMS)
	connMean, _, _, _, _ := ComputeFrameStats(c.connections)
	attrMean, _, _, _, _ := ComputeFrameStats(c.attracted)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		ElapsedSec:       float64(frame) * c.dt,
		Theme:            theme,
		Particles:        c.particles,
		FrameMeanMS:      mean,
		FrameStdMS:       std,
		FrameP50MS:       p50,
		FrameP90MS:       p90,
		FrameMaxMS:       max,
		ConnectionsMean:  connMean,
		ConnectionsMax:   c.maxConn,
		AttractedMean:    attrMean,
		Respawned:        c.respawned,
		PausedFrames:     c.paused,
	}

	c.windowStartFrame = frame
	c.busyMS = c.busyMS[:0]
	c.connections = c.connections[:0]
	c.attracted = c.attracted[:0]
	c.maxConn = 0
	c.respawned = 0
	c.paused = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
