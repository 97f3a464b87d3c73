package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a frame, in execution order.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseSimulate
	PhaseShapes
	PhaseTrail
	PhaseParticles
	PhaseConnections
	PhaseOverlay
	// PhasePresent includes the host's wait for vsync or its frame ticker.
	PhasePresent
	NumPhases
)

var phaseNames = [NumPhases]string{
	"input", "simulate", "shapes", "trail", "particles", "connections", "overlay", "present",
}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// frameTiming is the record of one finished frame.
type frameTiming struct {
	phases   [NumPhases]time.Duration
	busy     time.Duration // all phases except present
	interval time.Duration // end of previous frame to end of this one, 0 for the first
}

// PerfCollector times frame phases and keeps the last window of frames.
// A frame's busy time is the work the loop controls; present is reported
// apart because on a vsynced or ticker-paced host it is mostly waiting.
type PerfCollector struct {
	frames []frameTiming
	next   int
	filled int

	cur        frameTiming
	phase      Phase
	inPhase    bool
	phaseStart time.Time
	lastEnd    time.Time
}

// NewPerfCollector keeps the last window frames (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{frames: make([]frameTiming, window)}
}

// StartFrame resets the per-frame phase timers.
func (p *PerfCollector) StartFrame() {
	p.cur = frameTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.inPhase, p.phaseStart = ph, true, now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndFrame closes the frame, stores it in the window and returns its busy time.
func (p *PerfCollector) EndFrame() time.Duration {
	now := time.Now()
	p.closePhase(now)

	for ph := Phase(0); ph < NumPhases; ph++ {
		if ph != PhasePresent {
			p.cur.busy += p.cur.phases[ph]
		}
	}
	if !p.lastEnd.IsZero() {
		p.cur.interval = now.Sub(p.lastEnd)
	}
	p.lastEnd = now

	p.frames[p.next] = p.cur
	p.next = (p.next + 1) % len(p.frames)
	if p.filled < len(p.frames) {
		p.filled++
	}
	return p.cur.busy
}

// PerfStats summarizes the current window.
type PerfStats struct {
	AvgBusy time.Duration
	MinBusy time.Duration
	MaxBusy time.Duration

	AvgPresent  time.Duration
	AvgInterval time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average frame interval

	Headroom float64 // frames per second the busy time alone would allow
	FPS      float64 // measured from frame intervals
}

// Stats aggregates the frames in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.filled == 0 {
		return s
	}

	var busySum, intervalSum time.Duration
	intervals := 0
	for i := 0; i < p.filled; i++ {
		f := &p.frames[i]
		busySum += f.busy
		if i == 0 || f.busy < s.MinBusy {
			s.MinBusy = f.busy
		}
		if f.busy > s.MaxBusy {
			s.MaxBusy = f.busy
		}
		for ph := range f.phases {
			s.PhaseAvg[ph] += f.phases[ph]
		}
		if f.interval > 0 {
			intervalSum += f.interval
			intervals++
		}
	}

	n := time.Duration(p.filled)
	s.AvgBusy = busySum / n
	for ph := range s.PhaseAvg {
		s.PhaseAvg[ph] /= n
	}
	s.AvgPresent = s.PhaseAvg[PhasePresent]

	if intervals > 0 {
		s.AvgInterval = intervalSum / time.Duration(intervals)
		s.FPS = float64(time.Second) / float64(s.AvgInterval)
		for ph := range s.PhasePct {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgInterval) * 100
		}
	}
	if s.AvgBusy > 0 {
		s.Headroom = float64(time.Second) / float64(s.AvgBusy)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_busy_us", s.AvgBusy.Microseconds()),
		slog.Int64("max_busy_us", s.MaxBusy.Microseconds()),
		slog.Int64("avg_present_us", s.AvgPresent.Microseconds()),
		slog.Float64("headroom_fps", s.Headroom),
		slog.Float64("fps", s.FPS),
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	AvgBusyUS      int64   `csv:"avg_busy_us"`
	MinBusyUS      int64   `csv:"min_busy_us"`
	MaxBusyUS      int64   `csv:"max_busy_us"`
	AvgPresentUS   int64   `csv:"avg_present_us"`
	AvgIntervalUS  int64   `csv:"avg_interval_us"`
	Headroom       float64 `csv:"headroom_fps"`
	FPS            float64 `csv:"fps"`
	InputPct       float64 `csv:"input_pct"`
	SimulatePct    float64 `csv:"simulate_pct"`
	ShapesPct      float64 `csv:"shapes_pct"`
	TrailPct       float64 `csv:"trail_pct"`
	ParticlesPct   float64 `csv:"particles_pct"`
	ConnectionsPct float64 `csv:"connections_pct"`
	OverlayPct     float64 `csv:"overlay_pct"`
	PresentPct     float64 `csv:"present_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgBusyUS:      s.AvgBusy.Microseconds(),
		MinBusyUS:      s.MinBusy.Microseconds(),
		MaxBusyUS:      s.MaxBusy.Microseconds(),
		AvgPresentUS:   s.AvgPresent.Microseconds(),
		AvgIntervalUS:  s.AvgInterval.Microseconds(),
		Headroom:       s.Headroom,
		FPS:            s.FPS,
		InputPct:       s.PhasePct[PhaseInput],
		SimulatePct:    s.PhasePct[PhaseSimulate],
		ShapesPct:      s.PhasePct[PhaseShapes],
		TrailPct:       s.PhasePct[PhaseTrail],
		ParticlesPct:   s.PhasePct[PhaseParticles],
		ConnectionsPct: s.PhasePct[PhaseConnections],
		OverlayPct:     s.PhasePct[PhaseOverlay],
		PresentPct:     s.PhasePct[PhasePresent],
	}
}
