package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorBusyExcludesPresent(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSimulate)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhasePresent)
		time.Sleep(2 * time.Millisecond) // stands in for a vsync wait
		busy := pc.EndFrame()

		if busy < 200*time.Microsecond || busy >= 2*time.Millisecond {
			t.Errorf("frame %d busy = %v, want simulate time only", i, busy)
		}
	}

	s := pc.Stats()
	if s.AvgPresent < 2*time.Millisecond {
		t.Errorf("AvgPresent = %v, want >= 2ms", s.AvgPresent)
	}
	if s.AvgBusy >= s.AvgPresent {
		t.Errorf("AvgBusy %v should be below AvgPresent %v", s.AvgBusy, s.AvgPresent)
	}
	if s.Headroom <= s.FPS {
		t.Errorf("Headroom %v should exceed FPS %v when waiting dominates", s.Headroom, s.FPS)
	}
}

func TestPerfCollectorIntervalsAndFPS(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartFrame()
		pc.StartPhase(PhasePresent)
		time.Sleep(16 * time.Millisecond)
		pc.EndFrame()
	}

	s := pc.Stats()
	if s.AvgInterval < 15*time.Millisecond {
		t.Errorf("AvgInterval = %v, want >= 15ms", s.AvgInterval)
	}
	// ~60 fps, generous for scheduler jitter
	if s.FPS < 30 || s.FPS > 70 {
		t.Errorf("FPS = %v, want 30-70", s.FPS)
	}
	if s.PhasePct[PhasePresent] < 50 {
		t.Errorf("present share = %v%%, want most of the interval", s.PhasePct[PhasePresent])
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	// A slow frame followed by enough fast ones to push it out of the window
	pc.StartFrame()
	pc.StartPhase(PhaseConnections)
	time.Sleep(5 * time.Millisecond)
	pc.EndFrame()
	for i := 0; i < 3; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTrail)
		pc.EndFrame()
	}

	if s := pc.Stats(); s.MaxBusy >= 5*time.Millisecond {
		t.Errorf("MaxBusy = %v, slow frame still in window", s.MaxBusy)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(10).Stats()
	if s.AvgBusy != 0 || s.FPS != 0 || s.Headroom != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseInput, "input"},
		{PhaseConnections, "connections"},
		{PhasePresent, "present"},
		{NumPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgBusy = 2 * time.Millisecond
	s.AvgInterval = 16 * time.Millisecond
	s.PhasePct[PhaseConnections] = 40
	s.PhasePct[PhaseParticles] = 35

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgBusyUS != 2000 || row.AvgIntervalUS != 16000 {
		t.Errorf("row = %+v", row)
	}
	if row.ConnectionsPct != 40 || row.ParticlesPct != 35 || row.SimulatePct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
