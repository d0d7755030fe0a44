package game

import (
	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/logging"
	"chosenoffset.com/quizfield/internal/render"
	"chosenoffset.com/quizfield/internal/ui/title"
)

// Manager handles the overall game state: the title screen and the game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Scene        Scene
	Title        *title.Menu
	Game         *Game

	deps    Deps
	sampler *input.Sampler
}

// NewManager creates a manager showing the title screen with packs.
func NewManager(deps Deps, packs []gamescanner.PackEntry) *Manager {
	deps.Logger = logging.OrNop(deps.Logger)
	w, h := deps.Config.Window.Width, deps.Config.Window.Height
	return &Manager{
		ScreenWidth:  w,
		ScreenHeight: h,
		Scene:        SceneTitle,
		Title:        title.NewMenu(deps.Config.Window.Title, packs, deps.Renderer, deps.Input, w, h),
		deps:         deps,
		sampler:      input.NewSampler(deps.Input, nil),
	}
}

// Update samples input once and advances the current scene. Quit ends the
// game loop.
func (m *Manager) Update() error {
	in := m.sampler.Sample()
	if in.Quit {
		m.deps.Logger.Info("quit requested")
		return render.ErrQuit
	}

	switch m.Scene {
	case SceneTitle:
		if ok, pack := m.Title.Update(in); ok {
			if err := m.LoadGame(pack); err != nil {
				m.deps.Logger.Error("failed to load pack", zap.String("pack", pack.Name), zap.Error(err))
				return err
			}
		}
	case ScenePlaying:
		m.Game.Step(in)
	}
	return nil
}

// LoadGame starts playing pack.
func (m *Manager) LoadGame(pack gamescanner.PackEntry) error {
	g, err := NewGame(pack, m.deps)
	if err != nil {
		return err
	}
	m.Game = g
	m.Scene = ScenePlaying
	return nil
}

// Draw draws the current scene.
func (m *Manager) Draw(screen render.Image) {
	switch m.Scene {
	case SceneTitle:
		m.Title.Draw(screen)
	case ScenePlaying:
		m.Game.Draw(screen)
	}
}

// Layout keeps a fixed logical screen; the engine scales it to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
