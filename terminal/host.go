package terminal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glowfield/camera"
	"github.com/pthm-cable/glowfield/game"
	"github.com/pthm-cable/glowfield/renderer"
	"github.com/pthm-cable/glowfield/ui"
)

// Host shows the animation in a terminal. Events are read by a goroutine
// and drained by Poll; Present paces frames with a ticker.
type Host struct {
	screen tcell.Screen
	view   *camera.Viewport
	canvas *CellCanvas
	events chan tcell.Event
	ticker *time.Ticker

	background renderer.Color
	closed     bool
}

// NewHost initializes screen and starts reading its events. Pass nil to
// open the controlling terminal.
func NewHost(screen tcell.Screen, fps int, background renderer.Color) (*Host, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("opening terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	if fps <= 0 {
		fps = 30
	}

	cols, rows := screen.Size()
	view := camera.New(cols, rows, 0, 0)
	h := &Host{
		screen:     screen,
		view:       view,
		canvas:     NewCellCanvas(view, background),
		events:     make(chan tcell.Event, 100),
		ticker:     time.NewTicker(time.Second / time.Duration(fps)),
		background: background,
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Fini was called
				close(h.events)
				return
			}
			h.events <- ev
		}
	}()

	slog.Info("terminal opened", "cols", cols, "rows", rows)
	return h, nil
}

func (h *Host) Canvas() renderer.Canvas {
	return h.canvas
}

func (h *Host) Poll(in *game.InputCell) ([]game.Action, bool) {
	var actions []game.Action
	for {
		select {
		case ev, ok := <-h.events:
			if !ok {
				return actions, false
			}
			if a := h.handle(ev, in); a != game.ActionNone {
				actions = append(actions, a)
			}
		default:
			return actions, true
		}
	}
}

// handle applies one event to the input cell and returns the action it
// triggers, if any.
func (h *Host) handle(ev tcell.Event, in *game.InputCell) game.Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return game.ActionQuit
		case tcell.KeyTab:
			return game.ActionForKey('\t')
		case tcell.KeyRune:
			return game.ActionForKey(ev.Rune())
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := h.view.CellToCanvas(col, row)
		in.MovePointer(x, y)
		in.SetPressed(ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if h.view.Resize(cols, rows) {
			h.canvas.Resize(h.background)
			w, ht := h.view.CanvasSize()
			in.SetSize(w, ht)
			h.screen.Sync()
			slog.Debug("terminal resized", "cols", cols, "rows", rows)
		}
	}
	return game.ActionNone
}

func (h *Host) BeginFrame() {}

func (h *Host) Present(o game.Overlay) bool {
	h.background = o.Background

	h.canvas.Flush(h.screen)
	if o.ShowHUD {
		h.drawHUD(o.HUD)
	}
	h.screen.Show()

	<-h.ticker.C
	return false
}

func (h *Host) drawHUD(s ui.HUDState) {
	style := tcell.StyleDefault.
		Foreground(tcellColor(renderer.RGB(s.Palette.Foreground))).
		Background(tcellColor(renderer.RGB(s.Palette.Background)))

	lines := append(ui.HUDLines(s), ui.KeyLegend)
	for row, line := range lines {
		if row >= h.view.Rows {
			break
		}
		col := 0
		for _, r := range line {
			if col >= h.view.Cols {
				break
			}
			h.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}
}

// Close restores the terminal.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.ticker.Stop()
	h.screen.Fini()
}
