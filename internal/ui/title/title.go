// Package title draws the start screen and lets the player pick a pack.
package title

import (
	"image/color"

	"chosenoffset.com/quizfield/internal/gamescanner"
	"chosenoffset.com/quizfield/internal/input"
	"chosenoffset.com/quizfield/internal/render"
)

const (
	listTop     = 80
	entryHeight = 18
	listLeft    = 40
)

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	titleColor      = color.RGBA{255, 255, 255, 255}
	entryColor      = color.RGBA{200, 200, 255, 255}
	selectedColor   = color.RGBA{100, 255, 100, 255}
	errorColor      = color.RGBA{255, 100, 100, 255}
)

// Menu is the title screen.
type Menu struct {
	title    string
	packs    []gamescanner.PackEntry
	selected int
	renderer render.Renderer
	mouse    render.Pointer
	width    int
	height   int
}

// NewMenu creates a title screen offering packs. mouse may be nil.
func NewMenu(title string, packs []gamescanner.PackEntry, r render.Renderer, mouse render.Pointer, width, height int) *Menu {
	return &Menu{
		title:    title,
		packs:    packs,
		renderer: r,
		mouse:    mouse,
		width:    width,
		height:   height,
	}
}

// Selected returns the highlighted pack index.
func (m *Menu) Selected() int { return m.selected }

// Update handles one frame. It returns true and the chosen pack when the
// player starts a game.
func (m *Menu) Update(in input.Frame) (bool, gamescanner.PackEntry) {
	if len(m.packs) == 0 {
		return false, gamescanner.PackEntry{}
	}

	n := len(m.packs)
	switch {
	case in.UpPressed:
		m.selected = (m.selected - 1 + n) % n
	case in.DownPressed:
		m.selected = (m.selected + 1) % n
	case in.Confirm:
		return true, m.packs[m.selected]
	}

	if m.mouse != nil && m.mouse.Clicked() {
		// a click on a row picks that pack, anywhere else starts the
		// highlighted one
		_, y := m.mouse.CursorPosition()
		if i := (y - listTop) / entryHeight; y >= listTop && i < n {
			m.selected = i
		}
		return true, m.packs[m.selected]
	}
	return false, gamescanner.PackEntry{}
}

// Draw renders the title screen.
func (m *Menu) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	m.drawCentered(screen, m.title, 30, titleColor)

	if len(m.packs) == 0 {
		m.renderer.DrawText(screen, "No packs found in data directory!", 20, listTop, errorColor)
		return
	}

	if len(m.packs) > 1 {
		for i, p := range m.packs {
			clr := entryColor
			prefix := "  "
			if i == m.selected {
				clr = selectedColor
				prefix = "> "
			}
			m.renderer.DrawText(screen, prefix+p.Name, listLeft, listTop+i*entryHeight, clr)
		}
	}

	m.drawCentered(screen, "CLICK TO START", m.height-40, titleColor)
}

func (m *Menu) drawCentered(screen render.Image, s string, y int, clr color.Color) {
	w, _ := m.renderer.MeasureText(s)
	m.renderer.DrawText(screen, s, (m.width-w)/2, y, clr)
}
