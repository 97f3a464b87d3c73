package game

import (
	"sync/atomic"

	"github.com/pthm-cable/glowfield/systems"
)

// Input is the latest pointer and canvas size published by event sources.
type Input struct {
	Pointer       systems.Pointer
	Width, Height float64
}

// InputCell holds the latest Input. Hosts and the remote feed write it from
// any goroutine; the frame loop reads one consistent snapshot per frame.
type InputCell struct {
	v atomic.Pointer[Input]
}

// NewInputCell creates a cell for a w x h canvas with an inactive pointer.
func NewInputCell(w, h float64) *InputCell {
	c := &InputCell{}
	c.v.Store(&Input{Width: w, Height: h})
	return c
}

// Load returns the current snapshot.
func (c *InputCell) Load() Input {
	return *c.v.Load()
}

// update applies fn to a copy of the current value and publishes it,
// retrying if another writer got there first.
func (c *InputCell) update(fn func(*Input)) {
	for {
		old := c.v.Load()
		next := *old
		fn(&next)
		if c.v.CompareAndSwap(old, &next) {
			return
		}
	}
}

// MovePointer records a pointer position and marks the pointer active.
func (c *InputCell) MovePointer(x, y float64) {
	c.update(func(in *Input) {
		in.Pointer.X, in.Pointer.Y = x, y
		in.Pointer.Active = true
	})
}

// SetPressed records the primary button state.
func (c *InputCell) SetPressed(pressed bool) {
	c.update(func(in *Input) {
		in.Pointer.Pressed = pressed
	})
}

// SetPointer replaces the whole pointer state.
func (c *InputCell) SetPointer(p systems.Pointer) {
	c.update(func(in *Input) {
		in.Pointer = p
	})
}

// SetSize records new canvas dimensions.
func (c *InputCell) SetSize(w, h float64) {
	c.update(func(in *Input) {
		in.Width, in.Height = w, h
	})
}

// LocalMouse is one frame of a host's own mouse state.
type LocalMouse struct {
	X, Y     float64
	Moved    bool // position changed this frame
	Pressed  bool // button went down this frame
	Released bool // button went up this frame
}

// ApplyLocalMouse publishes only the changes in m. An idle mouse leaves the
// cell untouched, so the latest event from any source stays in effect.
func (c *InputCell) ApplyLocalMouse(m LocalMouse) {
	if m.Moved {
		c.MovePointer(m.X, m.Y)
	}
	switch {
	case m.Pressed:
		c.SetPressed(true)
	case m.Released:
		c.SetPressed(false)
	}
}

// Action is a discrete user command.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionReseed
	ActionToggleTheme
	ActionToggleHUD
	ActionToggleTuning
	ActionQuit
)

// ActionForKey maps a key rune to an action. Hosts translate their own key
// codes to runes first so the bindings stay the same on every backend.
func ActionForKey(r rune) Action {
	switch r {
	case ' ':
		return ActionTogglePause
	case 'r', 'R':
		return ActionReseed
	case 't', 'T':
		return ActionToggleTheme
	case 'h', 'H':
		return ActionToggleHUD
	case '\t':
		return ActionToggleTuning
	case 'q', 'Q', 0x1b:
		return ActionQuit
	}
	return ActionNone
}

func (a Action) String() string {
	switch a {
	case ActionTogglePause:
		return "toggle_pause"
	case ActionReseed:
		return "reseed"
	case ActionToggleTheme:
		return "toggle_theme"
	case ActionToggleHUD:
		return "toggle_hud"
	case ActionToggleTuning:
		return "toggle_tuning"
	case ActionQuit:
		return "quit"
	}
	return "none"
}
