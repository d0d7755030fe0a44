// Package movement moves the player one tile at a time with a sliding
// sub-tile offset.
package movement

import (
	"fmt"

	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/world"
)

// Direction is a unit step on the grid.
type Direction struct {
	DX int
	DY int
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// MoveState is the in-progress move. Offset is 0 whenever Active is false.
type MoveState struct {
	Active    bool
	Direction Direction
	Offset    int
}

// Area answers whether the player may step onto a tile.
type Area interface {
	Walkable(p world.Position) bool
}

// AreaFunc adapts a function to Area.
type AreaFunc func(p world.Position) bool

func (f AreaFunc) Walkable(p world.Position) bool { return f(p) }

// Result reports what happened during one Update.
type Result struct {
	// Interact is set when the player pressed confirm while standing still.
	Interact bool
	// Save is set when the player asked to save while standing still.
	Save bool
	// Arrived is set on the frame a move completes; the caller looks up exits.
	Arrived bool
	// Started is set on the frame a move begins.
	Started bool
}

// Controller owns the player's tile position and move animation.
type Controller struct {
	pos      world.Position
	facing   Direction
	move     MoveState
	tileSize int
	speed    int
}

// New creates a controller at start facing down. tileSize and speed are in
// pixels and pixels per frame.
func New(start world.Position, tileSize, speed int) (*Controller, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("move speed must be positive, got %d", speed)
	}
	return &Controller{pos: start, facing: Down, tileSize: tileSize, speed: speed}, nil
}

// Update advances the controller by one frame.
func (c *Controller) Update(in input.Frame, area Area) Result {
	if c.move.Active {
		c.move.Offset += c.speed
		if c.move.Offset >= c.tileSize {
			c.pos = c.pos.Add(c.move.Direction.DX, c.move.Direction.DY)
			c.move = MoveState{}
			return Result{Arrived: true}
		}
		return Result{}
	}

	var res Result
	res.Save = in.Save

	if dx, dy, ok := in.Direction(); ok {
		d := Direction{DX: dx, DY: dy}
		c.facing = d
		if area.Walkable(c.pos.Add(dx, dy)) {
			c.move = MoveState{Active: true, Direction: d}
			res.Started = true
		}
		return res
	}

	res.Interact = in.Confirm
	return res
}

// Teleport places the player on p and cancels any move in progress.
func (c *Controller) Teleport(p world.Position) {
	c.pos = p
	c.move = MoveState{}
}

// Position returns the player's tile.
func (c *Controller) Position() world.Position { return c.pos }

// Facing returns the last direction the player tried to move in.
func (c *Controller) Facing() Direction { return c.facing }

// State returns the current move.
func (c *Controller) State() MoveState { return c.move }

// Moving reports whether a move is in progress.
func (c *Controller) Moving() bool { return c.move.Active }

// PixelOffset returns how far, in pixels, the player has slid from its tile
// towards the next one.
func (c *Controller) PixelOffset() (dx, dy int) {
	if !c.move.Active {
		return 0, 0
	}
	return c.move.Direction.DX * c.move.Offset, c.move.Direction.DY * c.move.Offset
}

// TileSize returns the tile size in pixels.
func (c *Controller) TileSize() int { return c.tileSize }
