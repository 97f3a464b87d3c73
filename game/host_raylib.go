package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/ui"
)

// raylibKeys maps raylib key codes to the shared key runes.
var raylibKeys = []struct {
	key  int32
	char rune
}{
	{rl.KeySpace, ' '},
	{rl.KeyR, 'r'},
	{rl.KeyT, 't'},
	{rl.KeyH, 'h'},
	{rl.KeyTab, '\t'},
	{rl.KeyEscape, 0x1b},
}

// RaylibHost shows the animation in a desktop window.
type RaylibHost struct {
	canvas *renderer.RaylibCanvas
	hud    *ui.HUD
	tuning *ui.TuningPanel

	width, height int32
	hideCursor    bool
	background    renderer.Color
}

// NewRaylibHost opens the window. It must be called from the main goroutine.
func NewRaylibHost(cfg *config.Config, background renderer.Color) *RaylibHost {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape is handled as a quit action so it goes through the loop
	rl.SetExitKey(rl.KeyNull)

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	host := &RaylibHost{
		canvas:     renderer.NewRaylibCanvas(w, h, cfg.Render.LineSegments, background),
		hud:        ui.NewHUD(),
		tuning:     ui.NewTuningPanel(w),
		width:      w,
		height:     h,
		hideCursor: cfg.Cursor.Enabled,
		background: background,
	}
	if host.hideCursor {
		rl.HideCursor()
	}
	return host
}

func (h *RaylibHost) Canvas() renderer.Canvas {
	return h.canvas
}

func (h *RaylibHost) Poll(in *InputCell) ([]Action, bool) {
	if rl.WindowShouldClose() {
		return nil, false
	}

	if rl.IsWindowResized() {
		w, ht := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		if w != h.width || ht != h.height {
			h.width, h.height = w, ht
			h.canvas.Resize(w, ht, h.background)
			h.tuning.Anchor(w)
			in.SetSize(float64(w), float64(ht))
		}
	}

	mouse := LocalMouse{
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
	if rl.IsCursorOnScreen() {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			pos := rl.GetMousePosition()
			mouse.X, mouse.Y, mouse.Moved = float64(pos.X), float64(pos.Y), true
		}
	}
	in.ApplyLocalMouse(mouse)

	var actions []Action
	for _, k := range raylibKeys {
		if rl.IsKeyPressed(k.key) {
			actions = append(actions, ActionForKey(k.char))
		}
	}
	return actions, true
}

func (h *RaylibHost) BeginFrame() {
	h.canvas.Begin()
}

func (h *RaylibHost) Present(o Overlay) bool {
	h.canvas.End()

	h.background = o.Background

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: o.Background.R, G: o.Background.G, B: o.Background.B, A: 255})
	h.canvas.Present()

	if o.ShowHUD {
		h.hud.Draw(o.HUD, h.height)
	}

	changed := false
	if o.Tuning != nil {
		// Sliders need the OS cursor
		rl.ShowCursor()
		changed = h.tuning.Draw(o.Tuning, o.Palette)
	} else if h.hideCursor {
		rl.HideCursor()
	}

	rl.EndDrawing()
	return changed
}

// Close releases GPU resources and closes the window.
func (h *RaylibHost) Close() {
	h.canvas.Unload()
	rl.CloseWindow()
}
