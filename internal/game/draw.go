package game

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/quizfield/internal/render"
	"chosenoffset.com/quizfield/internal/ui/textwrap"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	floorColor      = color.RGBA{70, 110, 60, 255}
	floorAltColor   = color.RGBA{64, 102, 56, 255}
	wallColor       = color.RGBA{60, 60, 70, 255}
	exitColor       = color.RGBA{200, 180, 90, 255}
	npcColor        = color.RGBA{255, 140, 60, 255}
	clearedNPCColor = color.RGBA{90, 200, 255, 255}
	playerColor     = color.RGBA{255, 255, 100, 255}
	playerEdgeColor = color.RGBA{200, 200, 50, 255}
	panelColor      = color.RGBA{10, 10, 40, 230}
	panelEdgeColor  = color.RGBA{255, 255, 255, 255}
	textColor       = color.RGBA{255, 255, 255, 255}
	speakerColor    = color.RGBA{255, 220, 120, 255}
	selectedColor   = color.RGBA{100, 255, 100, 255}
)

const (
	margin  = 4
	padding = 6
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	g.drawMap(screen)
	g.drawNPCs(screen)
	g.drawPlayer(screen)

	g.drawHUD(screen)
	g.drawMessages(screen)
	if g.Dialog.Active() {
		g.drawDialog(screen)
	}
	if g.InventoryOpen {
		g.drawInventory(screen)
	}
	if g.Transition.Active() {
		g.drawIris(screen)
	}
}

// toScreen converts a tile coordinate to the screen position of its top-left
// corner.
func (g *Game) toScreen(x, y int) (float32, float32) {
	tile := float64(g.cfg.TileSize)
	return float32(float64(x)*tile - g.Camera.X), float32(float64(y)*tile - g.Camera.Y)
}

func (g *Game) drawMap(screen render.Image) {
	tile := float32(g.cfg.TileSize)

	if img := g.mapImage(g.Current); img != nil {
		screen.DrawImage(img, -g.Camera.X, -g.Camera.Y)
	} else {
		for y := 0; y < g.Current.Height; y++ {
			for x := 0; x < g.Current.Width; x++ {
				sx, sy := g.toScreen(x, y)
				if !g.onScreen(sx, sy, tile) {
					continue
				}
				clr := floorColor
				if (x+y)%2 == 1 {
					clr = floorAltColor
				}
				g.renderer.FillRect(screen, sx, sy, tile, tile, clr)
			}
		}
		for _, p := range g.Current.BlockedTiles() {
			sx, sy := g.toScreen(p.X, p.Y)
			g.renderer.FillRect(screen, sx, sy, tile, tile, wallColor)
		}
	}

	for _, p := range g.Current.ExitTiles() {
		sx, sy := g.toScreen(p.X, p.Y)
		g.renderer.StrokeRect(screen, sx+1, sy+1, tile-2, tile-2, 1, exitColor)
	}
}

func (g *Game) onScreen(sx, sy, size float32) bool {
	return sx+size >= 0 && sy+size >= 0 && sx < float32(g.ScreenWidth) && sy < float32(g.ScreenHeight)
}

func (g *Game) drawNPCs(screen render.Image) {
	half := float32(g.cfg.TileSize) / 2
	for _, npc := range g.Dialog.NPCsOn(g.Current.ID) {
		sx, sy := g.toScreen(npc.Position.X, npc.Position.Y)
		clr := npcColor
		if g.Dialog.Cleared(npc.Key) {
			clr = clearedNPCColor
		}
		g.renderer.FillCircle(screen, sx+half, sy+half, half-2, clr)
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	half := float32(g.cfg.TileSize) / 2
	px, py := g.playerPixel()
	sx := float32(px-g.Camera.X) + half
	sy := float32(py-g.Camera.Y) + half
	g.renderer.FillCircle(screen, sx, sy, half-1, playerColor)
	g.renderer.StrokeCircle(screen, sx, sy, half-1, 1, playerEdgeColor)

	// facing marker
	f := g.Player.Facing()
	g.renderer.FillCircle(screen, sx+float32(f.DX)*(half-3), sy+float32(f.DY)*(half-3), 2, playerEdgeColor)
}

func (g *Game) drawHUD(screen render.Image) {
	g.renderer.DrawText(screen, "ITEMS: "+g.Inventory.Summary(), margin, margin, textColor)

	pos := g.Player.Position()
	status := fmt.Sprintf("%s %d,%d", g.Current.ID, pos.X, pos.Y)
	w, _ := g.renderer.MeasureText(status)
	g.renderer.DrawText(screen, status, g.ScreenWidth-w-margin, margin, textColor)
}

func (g *Game) drawMessages(screen render.Image) {
	y := margin + g.renderer.LineHeight()
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.renderer.DrawText(screen, msg.Text, margin, y, color.RGBA{255, 255, 255, alpha})
		y += g.renderer.LineHeight()
	}
}

// drawPanel draws a bordered box and returns the inner text origin.
func (g *Game) drawPanel(screen render.Image, x, y, w, h int) (int, int) {
	g.renderer.FillRect(screen, float32(x), float32(y), float32(w), float32(h), panelColor)
	g.renderer.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, panelEdgeColor)
	return x + padding, y + padding
}

func (g *Game) drawDialog(screen render.Image) {
	lh := g.renderer.LineHeight()

	var lines []string
	selected := -1
	if q := g.Dialog.Quiz(); q != nil {
		lines = append(lines, textwrap.Wrap(q.Def.Question, g.cfg.TextWidth)...)
		first := len(lines)
		for i, c := range q.Def.Choices {
			prefix := "  "
			if i == q.Selected {
				prefix = "> "
			}
			lines = append(lines, prefix+c)
		}
		selected = first + q.Selected
	} else {
		lines = textwrap.Wrap(g.Dialog.VisibleLine(), g.cfg.TextWidth)
	}

	h := (len(lines)+1)*lh + 2*padding
	x, y := margin, g.ScreenHeight-h-margin
	tx, ty := g.drawPanel(screen, x, y, g.ScreenWidth-2*margin, h)

	g.renderer.DrawText(screen, g.Dialog.Speaker(), tx, ty, speakerColor)
	for i, l := range lines {
		clr := textColor
		if i == selected {
			clr = selectedColor
		}
		g.renderer.DrawText(screen, l, tx, ty+(i+1)*lh, clr)
	}
}

func (g *Game) drawInventory(screen render.Image) {
	lh := g.renderer.LineHeight()
	items := g.Inventory.Items()
	rows := len(items)
	if rows == 0 {
		rows = 1
	}

	w := g.ScreenWidth / 2
	h := (rows+1)*lh + 2*padding
	x := (g.ScreenWidth - w) / 2
	y := margin + 2*lh
	tx, ty := g.drawPanel(screen, x, y, w, h)

	g.renderer.DrawText(screen, "INVENTORY", tx, ty, speakerColor)
	if len(items) == 0 {
		g.renderer.DrawText(screen, "(empty)", tx, ty+lh, textColor)
		return
	}
	for i, it := range items {
		g.renderer.DrawText(screen, "- "+it, tx, ty+(i+1)*lh, textColor)
	}
}

// drawIris covers everything outside the transition circle.
func (g *Game) drawIris(screen render.Image) {
	if g.whiteImg == nil {
		img := g.renderer.NewImage(3, 3)
		img.Fill(color.White)
		g.whiteImg = img.SubImage(image.Rect(1, 1, 2, 2))
	}
	cx, cy := float32(g.ScreenWidth)/2, float32(g.ScreenHeight)/2
	outer := float32(g.Transition.MaxRadius()) + 2
	vertices, indices := render.IrisTriangles(cx, cy, float32(g.Transition.Radius()), outer, 64, 1)
	screen.DrawTriangles(vertices, indices, g.whiteImg, true)
}
