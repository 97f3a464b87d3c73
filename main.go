package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/game"
	"github.com/pthm-cable/glowfield/prefs"
	"github.com/pthm-cable/glowfield/remote"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/terminal"
)

// Display backends.
const (
	backendRaylib   = "raylib"
	backendTerminal = "terminal"
	backendHeadless = "headless"
)

func main() {
	// CLI flags
	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", backendRaylib, "Display backend: raylib, terminal or headless")
	theme := flag.String("theme", "", "Initial theme, dark or light (empty = stored preference or config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "glowfield.log", "Log file for the terminal backend")
	orbit := flag.Bool("orbit", true, "Headless: move the pointer in a circle")
	remoteAddr := flag.String("remote", "", "Listen address for the remote pointer feed (empty = config)")
	noPrefs := flag.Bool("no-prefs", false, "Do not read or store preferences")

	flag.Parse()

	if err := run(runOptions{
		configPath: *configPath,
		backend:    *backend,
		theme:      *theme,
		seed:       *seed,
		maxFrames:  *maxFrames,
		outputDir:  *outputDir,
		logStats:   *logStats,
		logFile:    *logFile,
		orbit:      *orbit,
		remoteAddr: *remoteAddr,
		noPrefs:    *noPrefs,
	}); err != nil {
		slog.Error("glowfield failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath string
	backend    string
	theme      string
	seed       int64
	maxFrames  int64
	outputDir  string
	logStats   bool
	logFile    string
	orbit      bool
	remoteAddr string
	noPrefs    bool
}

func run(o runOptions) error {
	// Terminal output belongs to the animation, so logs go to a file
	var logOut io.Writer = os.Stdout
	if o.backend == backendTerminal {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	// Initialize config before anything else
	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var store *prefs.Store
	if !o.noPrefs {
		s, err := prefs.Open(ctx, cfg.Prefs.Path)
		if err != nil {
			slog.Warn("preferences unavailable", "error", err)
		} else {
			store = s
			defer store.Close()
			slog.Info("preferences opened", "path", store.Path())
		}
	}

	themeName := o.theme
	if themeName == "" && store != nil {
		saved, ok, err := store.Theme(ctx)
		if err != nil {
			slog.Warn("failed to read theme preference", "error", err)
		} else if ok && (saved == game.ThemeDark || saved == game.ThemeLight) {
			themeName = saved
		}
	}
	if themeName == "" {
		themeName = cfg.Theme.Default
	}
	background := renderer.RGB(cfg.Theme.Palette(themeName).Background)

	addr := o.remoteAddr
	if addr == "" {
		addr = cfg.Remote.Addr
	}

	// Open the display first so the field is seeded at the real canvas size
	var (
		host    game.Host
		cleanup func()
	)
	switch o.backend {
	case backendRaylib:
		h := game.NewRaylibHost(cfg, background)
		host, cleanup = h, h.Close
	case backendTerminal:
		h, err := terminal.NewHost(nil, cfg.Screen.TargetFPS, background)
		if err != nil {
			return err
		}
		host, cleanup = h, h.Close
	case backendHeadless:
		host = game.NewHeadlessHost(float64(cfg.Screen.Width), float64(cfg.Screen.Height), o.orbit)
		cleanup = func() {}
	default:
		return fmt.Errorf("unknown backend %q", o.backend)
	}
	defer cleanup()
	fitScreen(cfg, host.Canvas())

	opts := game.Options{
		Seed:      rngSeed,
		Theme:     themeName,
		LogStats:  o.logStats,
		OutputDir: o.outputDir,
		Remote:    addr,
	}
	if store != nil {
		opts.Prefs = store
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	if addr != "" {
		srv, err := remote.Start(addr, time.Duration(cfg.Remote.ShutdownTimeout)*time.Millisecond, g.Input(), g)
		if err != nil {
			return err
		}
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				slog.Warn("remote shutdown", "error", err)
			}
		}()
	}

	slog.Info("starting",
		"backend", o.backend,
		"seed", rngSeed,
		"theme", themeName,
		"max_frames", o.maxFrames,
	)

	return game.Run(ctx, g, host, o.maxFrames)
}

// fitScreen records the size the display actually opened at, which can
// differ from the configured one.
func fitScreen(cfg *config.Config, c renderer.Canvas) {
	if c == nil {
		return
	}
	w, h := c.Size()
	cfg.Screen.Width, cfg.Screen.Height = int(w), int(h)
}
