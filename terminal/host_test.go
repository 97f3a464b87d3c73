package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/glowfield/game"
	"github.com/pthm-cable/glowfield/renderer"
)

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	h, err := NewHost(s, 120, renderer.Color{A: 1})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	t.Cleanup(h.Close)
	return h, s
}

// pollUntil polls until cond holds or a second passes, collecting actions.
func pollUntil(t *testing.T, h *Host, in *game.InputCell, cond func([]game.Action) bool) []game.Action {
	t.Helper()
	var all []game.Action
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		actions, ok := h.Poll(in)
		if !ok {
			t.Fatal("host closed")
		}
		all = append(all, actions...)
		if cond(all) {
			return all
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met, actions = %v", all)
	return nil
}

func TestHostKeys(t *testing.T) {
	h, s := newTestHost(t)
	in := game.NewInputCell(h.Canvas().Size())

	s.InjectKey(tcell.KeyRune, 't', tcell.ModNone)
	s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	actions := pollUntil(t, h, in, func(a []game.Action) bool { return len(a) >= 3 })
	want := []game.Action{game.ActionToggleTheme, game.ActionToggleTuning, game.ActionQuit}
	for i, a := range want {
		if actions[i] != a {
			t.Errorf("action %d = %v, want %v", i, actions[i], a)
		}
	}
}

func TestHostMouseMovesPointer(t *testing.T) {
	h, s := newTestHost(t)
	in := game.NewInputCell(h.Canvas().Size())

	s.InjectMouse(3, 2, tcell.ButtonNone, tcell.ModNone)
	pollUntil(t, h, in, func([]game.Action) bool { return in.Load().Pointer.Active })

	p := in.Load().Pointer
	// Center of cell (3, 2) with 8 x 16 cells
	if p.X != 28 || p.Y != 40 {
		t.Errorf("pointer = (%v, %v), want (28, 40)", p.X, p.Y)
	}
}

func TestHostCloseEndsPoll(t *testing.T) {
	h, _ := newTestHost(t)
	in := game.NewInputCell(h.Canvas().Size())
	h.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := h.Poll(in); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Poll still open after Close")
}
