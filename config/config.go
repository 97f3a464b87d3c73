// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Environment variables that override file configuration.
const (
	EnvConfigPath = "GLOWFIELD_CONFIG"
	EnvRemoteAddr = "GLOWFIELD_REMOTE_ADDR"
	EnvPrefsPath  = "GLOWFIELD_PREFS_PATH"
	EnvTheme      = "GLOWFIELD_THEME"
)

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Render    RenderConfig    `yaml:"render"`
	Theme     ThemeConfig     `yaml:"theme"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Remote    RemoteConfig    `yaml:"remote"`
	Prefs     PrefsConfig     `yaml:"prefs"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds particle field creation and physics parameters.
type FieldConfig struct {
	MaxParticles    int     `yaml:"max_particles"`     // Hard cap on particle count
	AreaPerParticle float64 `yaml:"area_per_particle"` // Canvas px² per particle
	SpeedRange      float64 `yaml:"speed_range"`       // Initial velocity components in [-r, r]
	RadiusMin       float64 `yaml:"radius_min"`
	RadiusMax       float64 `yaml:"radius_max"`
	OpacityMin      float64 `yaml:"opacity_min"`
	OpacityMax      float64 `yaml:"opacity_max"`
	HueMin          float64 `yaml:"hue_min"`
	HueMax          float64 `yaml:"hue_max"`
	InitialLifeMax  float64 `yaml:"initial_life_max"` // Initial life in [0, this)
	MaxLifeBase     float64 `yaml:"max_life_base"`
	MaxLifeJitter   float64 `yaml:"max_life_jitter"` // maxLife = base + U[0, jitter)

	AttractionRadius   float64 `yaml:"attraction_radius"`
	AttractionStrength float64 `yaml:"attraction_strength"`
	Damping            float64 `yaml:"damping"` // Velocity multiplier per frame

	ReseedOnResize bool `yaml:"reseed_on_resize"`
}

// RenderConfig holds per-frame drawing parameters.
type RenderConfig struct {
	TrailAlpha         float64 `yaml:"trail_alpha"`
	GlowScale          float64 `yaml:"glow_scale"` // Glow radius as a multiple of particle radius
	ConnectionDistance float64 `yaml:"connection_distance"`
	ConnectionAlpha    float64 `yaml:"connection_alpha"`
	LineWidthScale     float64 `yaml:"line_width_scale"`
	MinLineWidth       float64 `yaml:"min_line_width"`
	LineSegments       int     `yaml:"line_segments"` // Gradient line subdivisions on backends without gradient strokes
	ShowHUD            bool    `yaml:"show_hud"`
}

// ThemeConfig holds theme palettes.
type ThemeConfig struct {
	Default string        `yaml:"default"` // "dark" or "light"
	Dark    PaletteConfig `yaml:"dark"`
	Light   PaletteConfig `yaml:"light"`
}

// PaletteConfig holds the colours of one theme as 0-255 RGB triples.
type PaletteConfig struct {
	Background [3]uint8 `yaml:"background"`
	Foreground [3]uint8 `yaml:"foreground"`
	Accent     [3]uint8 `yaml:"accent"`
}

// CursorConfig holds cursor follower parameters.
type CursorConfig struct {
	Enabled bool         `yaml:"enabled"`
	Main    SpringConfig `yaml:"main"`
	Trail   SpringConfig `yaml:"trail"`
}

// SpringConfig describes a mass-spring-damper in physical terms.
type SpringConfig struct {
	Stiffness    float64 `yaml:"stiffness"`
	Damping      float64 `yaml:"damping"`
	Mass         float64 `yaml:"mass"`
	Radius       float64 `yaml:"radius"`
	Opacity      float64 `yaml:"opacity"`
	PressedScale float64 `yaml:"pressed_scale"`
	PressedAlpha float64 `yaml:"pressed_alpha"`
}

// ShapesConfig holds decorative floating shape parameters.
type ShapesConfig struct {
	Enabled       bool          `yaml:"enabled"`
	SpeedBase     float64       `yaml:"speed_base"`
	SpeedStep     float64       `yaml:"speed_step"`
	AmplitudeBase float64       `yaml:"amplitude_base"`
	AmplitudeStep float64       `yaml:"amplitude_step"`
	VerticalRatio float64       `yaml:"vertical_ratio"` // y frequency relative to x
	SpinDegrees   float64       `yaml:"spin_degrees"`   // rotation degrees per unit phase
	Pulse         float64       `yaml:"pulse"`          // scale oscillation amplitude (0 = none)
	Items         []ShapeConfig `yaml:"items"`
}

// ShapeConfig defines one floating shape.
type ShapeConfig struct {
	Kind    string  `yaml:"kind"`     // square, circle, triangle, hexagon, diamond, window
	AnchorX float64 `yaml:"anchor_x"` // Fraction of canvas width
	AnchorY float64 `yaml:"anchor_y"` // Fraction of canvas height
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Hue     float64 `yaml:"hue"`
	Alpha   float64 `yaml:"alpha"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// RemoteConfig holds the websocket pointer feed parameters.
type RemoteConfig struct {
	Addr            string `yaml:"addr"` // Empty disables the server
	ShutdownTimeout int    `yaml:"shutdown_timeout_ms"`
}

// PrefsConfig holds preference store parameters.
type PrefsConfig struct {
	Path string `yaml:"path"` // Empty = <user config dir>/glowfield/prefs.db
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDT     float64 // Seconds per frame at the target rate
	MainSpring  SpringParams
	TrailSpring SpringParams
}

// SpringParams is a spring expressed as angular frequency and damping ratio.
type SpringParams struct {
	AngularFrequency float64
	DampingRatio     float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// applyEnv overrides selected fields from the environment.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvRemoteAddr); v != "" {
		c.Remote.Addr = v
	}
	if v := getenv(EnvPrefsPath); v != "" {
		c.Prefs.Path = v
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme.Default = strings.ToLower(v)
	}
}

// Validate rejects configurations the field cannot run with.
func (c *Config) Validate() error {
	f := c.Field
	switch {
	case f.MaxParticles < 0:
		return fmt.Errorf("field.max_particles must be >= 0, got %d", f.MaxParticles)
	case f.AreaPerParticle <= 0:
		return fmt.Errorf("field.area_per_particle must be > 0, got %v", f.AreaPerParticle)
	case f.RadiusMin <= 0 || f.RadiusMax < f.RadiusMin:
		return fmt.Errorf("field radius range [%v, %v) is invalid", f.RadiusMin, f.RadiusMax)
	case f.OpacityMin <= 0 || f.OpacityMax > 1 || f.OpacityMax < f.OpacityMin:
		return fmt.Errorf("field opacity range [%v, %v) must lie in (0, 1]", f.OpacityMin, f.OpacityMax)
	case f.MaxLifeBase <= 0:
		return fmt.Errorf("field.max_life_base must be > 0, got %v", f.MaxLifeBase)
	case f.InitialLifeMax > f.MaxLifeBase:
		return fmt.Errorf("field.initial_life_max (%v) exceeds max_life_base (%v)", f.InitialLifeMax, f.MaxLifeBase)
	case f.Damping < 0 || f.Damping > 1:
		return fmt.Errorf("field.damping must be in [0, 1], got %v", f.Damping)
	case c.Render.ConnectionDistance <= 0:
		return fmt.Errorf("render.connection_distance must be > 0, got %v", c.Render.ConnectionDistance)
	}
	if c.Theme.Default != "dark" && c.Theme.Default != "light" {
		return fmt.Errorf("theme.default must be dark or light, got %q", c.Theme.Default)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameDT = 1.0 / float64(fps)

	c.Derived.MainSpring = c.Cursor.Main.Params()
	c.Derived.TrailSpring = c.Cursor.Trail.Params()

	if c.Render.LineSegments < 1 {
		c.Render.LineSegments = 1
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 120
	}
}

// Params converts stiffness/damping/mass into angular frequency
// ω = sqrt(k/m) and damping ratio ζ = c / (2·sqrt(k·m)).
func (s SpringConfig) Params() SpringParams {
	if s.Stiffness <= 0 || s.Mass <= 0 {
		return SpringParams{}
	}
	return SpringParams{
		AngularFrequency: math.Sqrt(s.Stiffness / s.Mass),
		DampingRatio:     s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass)),
	}
}

// Palette returns the palette for the named theme, falling back to dark.
func (t ThemeConfig) Palette(name string) PaletteConfig {
	if name == "light" {
		return t.Light
	}
	return t.Dark
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
