// Package transition runs the iris wipe that hides a map swap: the visible
// circle shrinks to nothing, the map changes, then the circle grows back.
package transition

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/world"
)

// Stage of the wipe.
type Stage int

const (
	StageNone Stage = iota
	StageClosing
	StageOpening
)

func (s Stage) String() string {
	switch s {
	case StageClosing:
		return "closing"
	case StageOpening:
		return "opening"
	default:
		return "none"
	}
}

var (
	// ErrBusy is returned by Start while a wipe is already running.
	ErrBusy = errors.New("transition already running")
	// ErrUnknownMap is returned by Start when the exit targets a map that
	// is not loaded.
	ErrUnknownMap = errors.New("unknown target map")
	// ErrBadDestination is returned by Start when the exit lands on a tile
	// the player cannot stand on.
	ErrBadDestination = errors.New("exit destination not walkable")
)

// Activator swaps the active map while the screen is fully covered.
type Activator interface {
	// CanEnter reports why exit cannot be taken, or nil when it can. It
	// wraps ErrUnknownMap or ErrBadDestination.
	CanEnter(exit world.Exit) error
	// Activate makes exit.Target the current map and places the player on
	// exit.Destination.
	Activate(exit world.Exit) error
}

// State is a snapshot of the controller.
type State struct {
	Stage       Stage
	Radius      float64
	Target      string
	Destination world.Position
}

// Controller drives one wipe at a time.
type Controller struct {
	state     State
	maxRadius float64
	speed     float64
	activator Activator
	logger    *zap.Logger
}

// New creates an idle controller whose radius rests at maxRadius. speed is
// the radius change per frame.
func New(maxRadius, speed float64, activator Activator, logger *zap.Logger) (*Controller, error) {
	if maxRadius <= 0 {
		return nil, fmt.Errorf("max radius must be positive, got %v", maxRadius)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("transition speed must be positive, got %v", speed)
	}
	if activator == nil {
		return nil, errors.New("activator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		state:     State{Radius: maxRadius},
		maxRadius: maxRadius,
		speed:     speed,
		activator: activator,
		logger:    logger,
	}, nil
}

// MaxRadiusFor returns half the diagonal of a w x h viewport: the smallest
// radius whose circle uncovers every corner.
func MaxRadiusFor(w, h int) float64 {
	return math.Hypot(float64(w), float64(h)) / 2
}

// Start begins closing towards exit. An exit the activator refuses leaves
// the player on the current map.
func (c *Controller) Start(exit world.Exit) error {
	if c.Active() {
		return ErrBusy
	}
	if err := c.activator.CanEnter(exit); err != nil {
		c.logger.Warn("exit refused, staying put",
			zap.String("target", exit.Target),
			zap.Stringer("destination", exit.Destination),
			zap.Error(err))
		return err
	}
	c.state = State{
		Stage:       StageClosing,
		Radius:      c.maxRadius,
		Target:      exit.Target,
		Destination: exit.Destination,
	}
	c.logger.Debug("transition started", zap.String("target", exit.Target))
	return nil
}

// Update advances the wipe by one frame. It does nothing when idle.
func (c *Controller) Update() {
	switch c.state.Stage {
	case StageClosing:
		c.state.Radius -= c.speed
		if c.state.Radius > 0 {
			return
		}
		c.state.Radius = 0
		c.state.Stage = StageOpening
		exit := world.Exit{Target: c.state.Target, Destination: c.state.Destination}
		if err := c.activator.Activate(exit); err != nil {
			c.logger.Error("map swap failed, keeping current map",
				zap.String("target", exit.Target), zap.Error(err))
		}
	case StageOpening:
		c.state.Radius += c.speed
		if c.state.Radius < c.maxRadius {
			return
		}
		c.state = State{Radius: c.maxRadius}
		c.logger.Debug("transition finished")
	}
}

// Active reports whether a wipe is running.
func (c *Controller) Active() bool { return c.state.Stage != StageNone }

// Stage returns the current stage.
func (c *Controller) Stage() Stage { return c.state.Stage }

// Radius returns the radius of the visible circle.
func (c *Controller) Radius() float64 { return c.state.Radius }

// MaxRadius returns the resting radius.
func (c *Controller) MaxRadius() float64 { return c.maxRadius }

// State returns a snapshot of the controller.
func (c *Controller) State() State { return c.state }
