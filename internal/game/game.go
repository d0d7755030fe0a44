package game

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/audio"
	"chosenoffset.com/quizfield/internal/config"
	"chosenoffset.com/quizfield/internal/dialog"
	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/inventory"
	"chosenoffset.com/quizfield/internal/logging"
	"chosenoffset.com/quizfield/internal/movement"
	"chosenoffset.com/quizfield/internal/render"
	"chosenoffset.com/quizfield/internal/save"
	"chosenoffset.com/quizfield/internal/transition"
	"chosenoffset.com/quizfield/internal/world"
)

// Deps are the collaborators shared by the manager and the game.
type Deps struct {
	Config   config.Config
	Renderer render.Renderer
	Input    render.InputManager
	Loader   render.ResourceLoader
	Audio    audio.Service
	Store    save.Store
	Logger   *zap.Logger
}

// Game holds all state for one pack being played.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Pack       gamescanner.PackEntry
	Maps       *world.Registry
	Current    *world.MapDescriptor
	Player     *movement.Controller
	Dialog     *dialog.Engine
	Inventory  *inventory.Ledger
	Transition *transition.Controller
	Camera     Camera

	// UI state
	Messages      []Message
	InventoryOpen bool

	cfg      config.GameConfig
	timeout  time.Duration
	renderer render.Renderer
	loader   render.ResourceLoader
	audio    audio.Service
	store    save.Store
	logger   *zap.Logger

	images   map[string]render.Image
	whiteImg render.Image
}

// NewGame loads pack and restores any saved progress.
func NewGame(pack gamescanner.PackEntry, deps Deps) (*Game, error) {
	cfg := deps.Config
	logger := logging.OrNop(deps.Logger).With(zap.String("pack", pack.Name))

	maps, err := world.LoadMaps(pack.MapsFile, world.Size{Width: cfg.Game.DefaultMapWidth, Height: cfg.Game.DefaultMapHeight})
	if err != nil {
		return nil, fmt.Errorf("failed to load maps: %w", err)
	}
	for _, problem := range maps.CheckExits() {
		logger.Warn("broken exit", zap.Error(problem))
	}
	start, ok := maps.Get(cfg.Game.StartMap)
	if !ok {
		return nil, fmt.Errorf("start map %q not found in %s", cfg.Game.StartMap, pack.MapsFile)
	}

	entries, err := dialog.Load(pack.DialoguesFile, cfg.Game.StartMap)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogues: %w", err)
	}
	engine, err := dialog.NewEngine(entries, dialog.Options{
		CooldownFrames: cfg.Game.DialogCooldownFrames,
		RevealSpeed:    cfg.Game.RevealSpeed,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogues: %w", err)
	}

	player, err := movement.New(world.Position{X: cfg.Game.StartX, Y: cfg.Game.StartY}, cfg.Game.TileSize, cfg.Game.MoveSpeed)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Pack:         pack,
		Maps:         maps,
		Current:      start,
		Player:       player,
		Dialog:       engine,
		Inventory:    inventory.New(),
		cfg:          cfg.Game,
		timeout:      cfg.Save.Timeout,
		renderer:     deps.Renderer,
		loader:       deps.Loader,
		audio:        deps.Audio,
		store:        deps.Store,
		logger:       logger,
		images:       make(map[string]render.Image),
	}
	if g.audio == nil {
		g.audio = audio.Silent{}
	}

	g.Transition, err = transition.New(
		transition.MaxRadiusFor(g.ScreenWidth, g.ScreenHeight),
		cfg.Game.TransitionSpeed, g, logger)
	if err != nil {
		return nil, err
	}

	g.Load()
	g.Inventory.OnAdd = g.itemAdded
	g.audio.PlayMusic(g.Current.BGM)
	g.UpdateCamera()

	logger.Info("game loaded",
		zap.Int("maps", maps.Len()),
		zap.Int("npcs", len(entries)),
		zap.String("map", g.Current.ID),
		zap.Stringer("position", g.Player.Position()))
	return g, nil
}

// Step runs one frame of game logic.
func (g *Game) Step(in input.Frame) {
	g.updateMessages(1.0 / 60.0)

	if in.Inventory {
		g.InventoryOpen = !g.InventoryOpen
		if g.InventoryOpen {
			g.audio.Play(audio.SoundInventoryOpen)
		} else {
			g.audio.Play(audio.SoundInventoryClose)
		}
	}

	if !g.Transition.Active() {
		// a dialog open at the start of the frame owns the whole frame, so
		// the confirm that closes it cannot start a new one
		if g.Dialog.Active() {
			g.updateDialog(in)
		} else {
			g.updatePlayer(in)
		}
	}

	g.Transition.Update()
	g.UpdateCamera()
}

func (g *Game) updateDialog(in input.Frame) {
	switch g.Dialog.Update(in, g.Inventory) {
	case dialog.EventCorrect:
		g.audio.Play(audio.SoundCorrect)
	case dialog.EventWrong:
		g.audio.Play(audio.SoundWrong)
	}
}

func (g *Game) updatePlayer(in input.Frame) {
	res := g.Player.Update(in, movement.AreaFunc(g.walkable))

	if res.Interact {
		g.Dialog.TryTalk(g.Current.ID, g.Player.Position())
	}
	if res.Save {
		g.Save()
	}
	if res.Arrived {
		if exit, ok := g.Current.ExitAt(g.Player.Position()); ok {
			if err := g.Transition.Start(exit); err != nil {
				g.logger.Debug("exit ignored", zap.Error(err))
			}
		}
	}
}

// walkable combines the current map with NPC occupancy.
func (g *Game) walkable(p world.Position) bool {
	return g.standable(g.Current, p)
}

func (g *Game) standable(m *world.MapDescriptor, p world.Position) bool {
	return m.Walkable(p) && !g.Dialog.Occupied(m.ID, p)
}

// CanEnter implements transition.Activator. The destination must be a
// free tile of the target map.
func (g *Game) CanEnter(exit world.Exit) error {
	m, ok := g.Maps.Get(exit.Target)
	if !ok {
		return fmt.Errorf("%w: %q", transition.ErrUnknownMap, exit.Target)
	}
	if !g.standable(m, exit.Destination) {
		return fmt.Errorf("%w: %s on %q", transition.ErrBadDestination, exit.Destination, exit.Target)
	}
	return nil
}

// Activate implements transition.Activator.
func (g *Game) Activate(exit world.Exit) error {
	if err := g.CanEnter(exit); err != nil {
		return err
	}
	m, _ := g.Maps.Get(exit.Target)
	from := g.Current.ID
	g.Current = m
	g.Player.Teleport(exit.Destination)
	g.audio.PlayMusic(m.BGM)
	g.logger.Info("map changed",
		zap.String("from", from),
		zap.String("to", m.ID),
		zap.Stringer("position", exit.Destination))
	return nil
}

// Save writes position, map and inventory to the store. Failures are logged
// and otherwise ignored.
func (g *Game) Save() {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	pos := g.Player.Position()
	rec := save.Record{X: pos.X, Y: pos.Y, Items: g.Inventory.Items(), Map: g.Current.ID}
	if err := g.store.Save(ctx, rec); err != nil {
		g.logger.Warn("save failed", zap.Error(err))
		return
	}
	g.audio.Play(audio.SoundSave)
	g.ShowMessage("Saved.")
	g.logger.Info("game saved", zap.Stringer("position", pos), zap.Int("items", len(rec.Items)))
}

// Load restores a saved record. With no record, or on error, the current
// state is kept. A record whose map is unknown or whose tile is not free
// restores the inventory only.
func (g *Game) Load() {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	rec, ok, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Warn("load failed, keeping defaults", zap.Error(err))
		return
	}
	if !ok {
		g.logger.Debug("no save data")
		return
	}
	g.Inventory.Restore(rec.Items)

	m := g.Current
	if rec.Map != "" {
		found, ok := g.Maps.Get(rec.Map)
		if !ok {
			g.logger.Warn("saved map not found, keeping position", zap.String("map", rec.Map))
			return
		}
		m = found
	}
	pos := world.Position{X: rec.X, Y: rec.Y}
	if !g.standable(m, pos) {
		g.logger.Warn("saved position not walkable, keeping position",
			zap.String("map", m.ID), zap.Stringer("position", pos))
		return
	}
	g.Current = m
	g.Player.Teleport(pos)
	g.logger.Info("save loaded", zap.String("map", g.Current.ID), zap.Stringer("position", g.Player.Position()))
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// UpdateCamera centers the camera on the player, clamped to the map. Maps
// smaller than the screen are centered.
func (g *Game) UpdateCamera() {
	tile := float64(g.cfg.TileSize)
	px, py := g.playerPixel()

	g.Camera.X = clampAxis(px+tile/2-float64(g.ScreenWidth)/2, float64(g.Current.Width)*tile, float64(g.ScreenWidth))
	g.Camera.Y = clampAxis(py+tile/2-float64(g.ScreenHeight)/2, float64(g.Current.Height)*tile, float64(g.ScreenHeight))
}

func clampAxis(v, mapSize, view float64) float64 {
	if mapSize <= view {
		return (mapSize - view) / 2
	}
	if v < 0 {
		return 0
	}
	if v > mapSize-view {
		return mapSize - view
	}
	return v
}

// playerPixel returns the world pixel position of the player's top-left
// corner, including the slide offset.
func (g *Game) playerPixel() (float64, float64) {
	pos := g.Player.Position()
	dx, dy := g.Player.PixelOffset()
	tile := g.cfg.TileSize
	return float64(pos.X*tile + dx), float64(pos.Y*tile + dy)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

func (g *Game) itemAdded(token string) {
	g.ShowMessage("Got: " + token)
	g.logger.Info("item added", zap.String("item", token), zap.Int("items", g.Inventory.Len()))
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 2.0,
		MaxTime:  2.0,
	})
}

// mapImage returns the map's background image, or nil when it has none or it
// failed to load.
func (g *Game) mapImage(m *world.MapDescriptor) render.Image {
	if m.Image == "" || g.loader == nil {
		return nil
	}
	if img, ok := g.images[m.Image]; ok {
		return img
	}
	path := m.Image
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.Pack.Dir, path)
	}
	img, err := g.loader.LoadImage(path)
	if err != nil {
		g.logger.Warn("map image unavailable, drawing tiles", zap.String("path", path), zap.Error(err))
		img = nil
	}
	g.images[m.Image] = img
	return img
}
