package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibCanvas draws into an off-screen render texture that persists
// between frames, which is what lets the trail fade accumulate.
// All methods must be called on the thread that owns the raylib window.
type RaylibCanvas struct {
	target        rl.RenderTexture2D
	width, height int32
	segments      int
	loaded        bool
}

// NewRaylibCanvas allocates the render target (call after rl.InitWindow).
// segments is how many pieces a gradient line is split into.
func NewRaylibCanvas(w, h int32, segments int, clear Color) *RaylibCanvas {
	if segments < 1 {
		segments = 1
	}
	c := &RaylibCanvas{segments: segments}
	c.Resize(w, h, clear)
	return c
}

// Resize reallocates the render target and clears it. Previous contents
// are discarded.
func (c *RaylibCanvas) Resize(w, h int32, clear Color) {
	if c.loaded && w == c.width && h == c.height {
		return
	}
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
	}
	c.target = rl.LoadRenderTexture(w, h)
	c.width, c.height = w, h
	c.loaded = true

	rl.BeginTextureMode(c.target)
	rl.ClearBackground(toRL(clear))
	rl.EndTextureMode()
}

// Begin redirects drawing to the persistent target.
func (c *RaylibCanvas) Begin() {
	rl.BeginTextureMode(c.target)
}

// End restores drawing to the window framebuffer.
func (c *RaylibCanvas) End() {
	rl.EndTextureMode()
}

// Present draws the target onto the current framebuffer at the origin.
func (c *RaylibCanvas) Present() {
	// Render textures are stored upside down, flip on the way out
	src := rl.Rectangle{X: 0, Y: float32(c.height), Width: float32(c.width), Height: -float32(c.height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(c.width), Height: float32(c.height)}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload releases the render target.
func (c *RaylibCanvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

func (c *RaylibCanvas) Size() (w, h float64) {
	return float64(c.width), float64(c.height)
}

func (c *RaylibCanvas) FillRect(x, y, w, h float64, col Color) {
	rl.DrawRectangleV(vec(x, y), vec(w, h), toRL(col))
}

func (c *RaylibCanvas) FillCircle(cx, cy, r float64, col Color) {
	rl.DrawCircleV(vec(cx, cy), float32(r), toRL(col))
}

func (c *RaylibCanvas) StrokeCircle(cx, cy, r, width float64, col Color) {
	inner := r - width/2
	if inner < 0 {
		inner = 0
	}
	rl.DrawRing(vec(cx, cy), float32(inner), float32(r+width/2), 0, 360, 48, toRL(col))
}

func (c *RaylibCanvas) StrokePolygon(points []Point, width float64, col Color) {
	if len(points) < 2 {
		return
	}
	rc := toRL(col)
	n := len(points)
	if n == 2 {
		rl.DrawLineEx(vec(points[0].X, points[0].Y), vec(points[1].X, points[1].Y), float32(width), rc)
		return
	}
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		rl.DrawLineEx(vec(a.X, a.Y), vec(b.X, b.Y), float32(width), rc)
	}
}

// RadialGradient approximates a multi-stop gradient with one two-color
// disc per stop interval, drawn from the rim inward.
func (c *RaylibCanvas) RadialGradient(cx, cy, r float64, stops []Stop) {
	if len(stops) < 2 || r <= 0 {
		return
	}
	x, y := int32(cx), int32(cy)
	for i := len(stops) - 1; i > 0; i-- {
		outer := stops[i]
		inner := stops[i-1]
		rad := float32(r * outer.Offset)
		if rad <= 0 {
			continue
		}
		rl.DrawCircleGradient(x, y, rad, toRL(inner.Color), toRL(outer.Color))
	}
}

// GradientLine strokes the segment in equal pieces, each colored by the
// gradient at its midpoint.
func (c *RaylibCanvas) GradientLine(x1, y1, x2, y2, width float64, stops []Stop) {
	n := c.segments
	dx := (x2 - x1) / float64(n)
	dy := (y2 - y1) / float64(n)
	for i := 0; i < n; i++ {
		t := (float64(i) + 0.5) / float64(n)
		a := vec(x1+dx*float64(i), y1+dy*float64(i))
		b := vec(x1+dx*float64(i+1), y1+dy*float64(i+1))
		rl.DrawLineEx(a, b, float32(width), toRL(SampleStops(stops, t)))
	}
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

func toRL(c Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.Alpha8()}
}
