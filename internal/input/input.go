// Package input turns raw key state into one fixed-shape Frame per tick.
package input

import "chosenoffset.com/quizfield/internal/render"

// Action is a logical input the game reacts to.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionCancel
	ActionSave
	ActionInventory
	ActionQuit
	actionCount
)

// KeyState reports whether a key is held right now.
type KeyState interface {
	IsKeyPressed(key render.Key) bool
}

// Bindings maps each action to the keys that trigger it.
type Bindings map[Action][]render.Key

// DefaultBindings returns arrows for movement, Z/Enter/Space to confirm,
// Q/X to cancel, S to save, I for the inventory and Escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		ActionUp:        {render.KeyUp},
		ActionDown:      {render.KeyDown},
		ActionLeft:      {render.KeyLeft},
		ActionRight:     {render.KeyRight},
		ActionConfirm:   {render.KeyZ, render.KeyEnter, render.KeySpace},
		ActionCancel:    {render.KeyQ, render.KeyX},
		ActionSave:      {render.KeyS},
		ActionInventory: {render.KeyI},
		ActionQuit:      {render.KeyEscape},
	}
}

// Frame is the input snapshot for one tick. Held fields are level signals;
// *Pressed fields and the command fields are true only on the tick the
// action went down.
type Frame struct {
	Up, Down, Left, Right bool

	UpPressed, DownPressed bool

	Confirm   bool
	Cancel    bool
	Save      bool
	Inventory bool
	Quit      bool
}

// Direction returns the held direction with priority up, down, left, right.
// ok is false when no direction is held.
func (f Frame) Direction() (dx, dy int, ok bool) {
	switch {
	case f.Up:
		return 0, -1, true
	case f.Down:
		return 0, 1, true
	case f.Left:
		return -1, 0, true
	case f.Right:
		return 1, 0, true
	}
	return 0, 0, false
}

// Sampler produces Frames and keeps the previous tick's held state for edge
// detection.
type Sampler struct {
	keys     KeyState
	bindings Bindings
	prev     [actionCount]bool
}

// NewSampler creates a sampler. Nil bindings select DefaultBindings.
func NewSampler(keys KeyState, bindings Bindings) *Sampler {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Sampler{keys: keys, bindings: bindings}
}

// Sample reads the keys once and returns this tick's Frame.
func (s *Sampler) Sample() Frame {
	var held, pressed [actionCount]bool
	for a := Action(0); a < actionCount; a++ {
		for _, k := range s.bindings[a] {
			if s.keys.IsKeyPressed(k) {
				held[a] = true
				break
			}
		}
		pressed[a] = held[a] && !s.prev[a]
	}
	s.prev = held

	return Frame{
		Up:          held[ActionUp],
		Down:        held[ActionDown],
		Left:        held[ActionLeft],
		Right:       held[ActionRight],
		UpPressed:   pressed[ActionUp],
		DownPressed: pressed[ActionDown],
		Confirm:     pressed[ActionConfirm],
		Cancel:      pressed[ActionCancel],
		Save:        pressed[ActionSave],
		Inventory:   pressed[ActionInventory],
		Quit:        pressed[ActionQuit],
	}
}
