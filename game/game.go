// Package game wires the simulation, renderer and telemetry into a frame
// loop driven by a display Host.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/systems"
	"github.com/pthm-cable/glowfield/telemetry"
	"github.com/pthm-cable/glowfield/ui"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeStore persists the chosen theme.
type ThemeStore interface {
	SetTheme(ctx context.Context, theme string) error
}

// Options configures a game instance.
type Options struct {
	Seed      int64
	Theme     string // initial theme, empty = config default
	LogStats  bool
	OutputDir string
	Prefs     ThemeStore // nil disables persistence
	Remote    string     // shown on the HUD
}

// Game holds the complete animation state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	input  *InputCell
	field  *systems.ParticleField
	shapes *systems.ShapeSystem
	cursor *systems.CursorFollower

	fieldRenderer *renderer.FieldRenderer
	shapeRenderer *renderer.ShapeRenderer

	// State
	frame      int64
	paused     bool
	showHUD    bool
	showTuning bool
	theme      string
	tuning     ui.Tuning
	lastStep   systems.StepStats
	lastDraw   renderer.DrawStats
	lastBusy   time.Duration

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	statsMu sync.RWMutex
	latest  telemetry.WindowStats

	prefs  ThemeStore
	remote string
}

// New creates a game sized to the configured screen.
func New(cfg *config.Config, opts Options) (*Game, error) {
	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	rng := rand.New(rand.NewSource(opts.Seed))

	theme := opts.Theme
	if theme == "" {
		theme = cfg.Theme.Default
	}
	if theme != ThemeDark && theme != ThemeLight {
		return nil, fmt.Errorf("unknown theme %q", theme)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		rng:           rng,
		input:         NewInputCell(w, h),
		field:         systems.NewParticleField(cfg.Field, w, h, rng),
		shapes:        systems.NewShapeSystem(cfg.Shapes),
		fieldRenderer: renderer.NewFieldRenderer(cfg.Render, renderer.Color{}),
		shapeRenderer: renderer.NewShapeRenderer(),
		showHUD:       cfg.Render.ShowHUD,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.FrameDT),
		output:        output,
		logStats:      opts.LogStats,
		prefs:         opts.Prefs,
		remote:        opts.Remote,
		tuning: ui.Tuning{
			AttractionRadius:   float32(cfg.Field.AttractionRadius),
			AttractionStrength: float32(cfg.Field.AttractionStrength),
			Damping:            float32(cfg.Field.Damping),
			ConnectionDistance: float32(cfg.Render.ConnectionDistance),
		},
	}
	if cfg.Cursor.Enabled {
		g.cursor = systems.NewCursorFollower(cfg.Cursor, cfg.Screen.TargetFPS, cfg.Derived.MainSpring, cfg.Derived.TrailSpring)
	}
	g.setTheme(theme)

	slog.Info("game created",
		"particles", g.field.Len(),
		"shapes", g.shapes.Len(),
		"width", w,
		"height", h,
		"theme", theme,
		"stats_window", g.collector.WindowFrames(),
		"output_dir", g.output.Dir(),
	)

	return g, nil
}

// Input returns the cell event sources publish into.
func (g *Game) Input() *InputCell {
	return g.input
}

// Field returns the particle field.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Frame returns the number of frames run.
func (g *Game) Frame() int64 {
	return g.frame
}

// Theme returns the current theme name.
func (g *Game) Theme() string {
	return g.theme
}

// Paused reports whether the simulation is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Palette returns the colors of the current theme.
func (g *Game) Palette() config.PaletteConfig {
	return g.cfg.Theme.Palette(g.theme)
}

// Background returns the current theme's background color.
func (g *Game) Background() renderer.Color {
	return renderer.RGB(g.Palette().Background)
}

// Update advances the simulation by one frame using the latest input.
func (g *Game) Update() {
	in := g.input.Load()

	g.perf.StartPhase(telemetry.PhaseSimulate)
	g.field.Resize(in.Width, in.Height)
	if g.paused {
		g.lastStep = systems.StepStats{}
	} else {
		g.lastStep = g.field.Step(systems.StepInput{
			Pointer: in.Pointer,
			Width:   in.Width,
			Height:  in.Height,
		})
	}

	g.perf.StartPhase(telemetry.PhaseShapes)
	if !g.paused {
		g.shapes.Update(g.cfg.Derived.FrameDT)
	}
	if g.cursor != nil {
		g.cursor.Update(in.Pointer)
	}
}

// Draw renders the frame onto c. A nil canvas draws nothing.
func (g *Game) Draw(c renderer.Canvas) {
	if c == nil {
		return
	}

	g.perf.StartPhase(telemetry.PhaseTrail)
	g.fieldRenderer.DrawTrail(c)
	g.shapeRenderer.Draw(c, g.shapes)

	g.perf.StartPhase(telemetry.PhaseParticles)
	g.lastDraw.Particles = g.fieldRenderer.DrawParticles(c, g.field.Particles())

	g.perf.StartPhase(telemetry.PhaseConnections)
	g.lastDraw.Connections = g.fieldRenderer.DrawConnections(c, g.field)

	if g.cursor != nil {
		renderer.DrawCursor(c, g.cursor, renderer.RGB(g.Palette().Accent))
	}
}

// Apply executes a user action. It returns false for ActionQuit.
func (g *Game) Apply(ctx context.Context, a Action) bool {
	switch a {
	case ActionTogglePause:
		g.paused = !g.paused
	case ActionReseed:
		in := g.input.Load()
		g.field.Reseed(in.Width, in.Height)
	case ActionToggleTheme:
		next := ThemeLight
		if g.theme == ThemeLight {
			next = ThemeDark
		}
		g.setTheme(next)
		g.saveTheme(ctx)
	case ActionToggleHUD:
		g.showHUD = !g.showHUD
	case ActionToggleTuning:
		g.showTuning = !g.showTuning
	case ActionQuit:
		return false
	}
	if a != ActionNone {
		slog.Debug("action", "action", a.String(), "frame", g.frame)
	}
	return true
}

func (g *Game) setTheme(theme string) {
	g.theme = theme
	g.fieldRenderer.SetBackground(g.Background())
}

func (g *Game) saveTheme(ctx context.Context) {
	if g.prefs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := g.prefs.SetTheme(ctx, g.theme); err != nil {
		slog.Warn("failed to save theme", "theme", g.theme, "error", err)
	}
}

// Tuning returns the live-editable parameters, or nil when the tuning
// panel is hidden.
func (g *Game) Tuning() *ui.Tuning {
	if !g.showTuning {
		return nil
	}
	return &g.tuning
}

// ApplyTuning pushes edited tuning values into the simulation and renderer.
func (g *Game) ApplyTuning() {
	g.tuning.Clamp()
	g.field.SetAttraction(
		float64(g.tuning.AttractionRadius),
		float64(g.tuning.AttractionStrength),
		float64(g.tuning.Damping),
	)
	rc := g.fieldRenderer.Config()
	rc.ConnectionDistance = float64(g.tuning.ConnectionDistance)
	g.fieldRenderer.SetConfig(rc)
}

// HUD returns the overlay snapshot for this frame, or false when the HUD is hidden.
func (g *Game) HUD() (ui.HUDState, bool) {
	if !g.showHUD {
		return ui.HUDState{}, false
	}
	return ui.HUDState{
		Particles:   g.field.Len(),
		Connections: g.lastDraw.Connections,
		Shapes:      g.shapes.Len(),
		FPS:         g.perf.Stats().FPS,
		FrameBusy:   g.lastBusy,
		FrameBudget: time.Duration(g.cfg.Derived.FrameDT * float64(time.Second)),
		Theme:       g.theme,
		Paused:      g.paused,
		Remote:      g.remote,
		Palette:     g.uiPalette(),
	}, true
}

func (g *Game) uiPalette() ui.Palette {
	p := g.Palette()
	return ui.Palette{Background: p.Background, Foreground: p.Foreground, Accent: p.Accent}
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
