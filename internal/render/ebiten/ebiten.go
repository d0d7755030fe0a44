// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/quizfield/internal/render"
)

// TPS is the fixed simulation rate. Every per-tick constant in the game
// assumes it.
const TPS = 60

// Renderer draws vector shapes and text/v2 glyphs.
type Renderer struct {
	face *text.GoTextFace
}

// NewRenderer loads the face at fontPath. An empty or unusable path falls
// back to the embedded Go Regular face.
func NewRenderer(fontPath string, size float64, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := faceSource(fontPath, logger)
	if err != nil {
		return nil, err
	}
	return &Renderer{face: &text.GoTextFace{Source: src, Size: size}}, nil
}

func faceSource(fontPath string, logger *zap.Logger) (*text.GoTextFaceSource, error) {
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err == nil {
			var src *text.GoTextFaceSource
			if src, err = text.NewGoTextFaceSource(bytes.NewReader(data)); err == nil {
				logger.Info("loaded font", zap.String("path", fontPath))
				return src, nil
			}
		}
		logger.Warn("font unavailable, using Go Regular", zap.String("path", fontPath), zap.Error(err))
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading embedded font: %w", err)
	}
	return src, nil
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(unwrap(dst), x, y, radius, strokeWidth, clr, true)
}

func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = float64(r.LineHeight())
	text.Draw(unwrap(dst), str, r.face, op)
}

func (r *Renderer) MeasureText(str string) (width, height int) {
	w, h := text.Measure(str, r.face, float64(r.LineHeight()))
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// LineHeight is the distance between consecutive baselines.
func (r *Renderer) LineHeight() int {
	m := r.face.Metrics()
	return int(math.Ceil(m.HAscent + m.HDescent + m.HLineGap))
}

// Image wraps an *ebiten.Image.
type Image struct {
	img *ebiten.Image
}

func unwrap(i render.Image) *ebiten.Image { return i.(*Image).img }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{img: i.img.SubImage(r).(*ebiten.Image)}
}

func (i *Image) Fill(clr color.Color) { i.img.Fill(clr) }

func (i *Image) DrawImage(src render.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	i.img.DrawImage(unwrap(src), op)
}

func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, src render.Image, antiAlias bool) {
	vs := make([]ebiten.Vertex, len(vertices))
	for j, v := range vertices {
		vs[j] = ebiten.Vertex{
			DstX: v.DstX, DstY: v.DstY,
			SrcX: v.SrcX, SrcY: v.SrcY,
			ColorR: v.ColorR, ColorG: v.ColorG, ColorB: v.ColorB, ColorA: v.ColorA,
		}
	}
	i.img.DrawTriangles(vs, indices, unwrap(src), &ebiten.DrawTrianglesOptions{AntiAlias: antiAlias})
}

// Input reads the keyboard and mouse through ebiten and inpututil.
type Input struct{}

func NewInput() *Input { return &Input{} }

var keys = map[render.Key]ebiten.Key{
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeyZ:      ebiten.KeyZ,
	render.KeyX:      ebiten.KeyX,
	render.KeyQ:      ebiten.KeyQ,
	render.KeyS:      ebiten.KeyS,
	render.KeyI:      ebiten.KeyI,
	render.KeyEnter:  ebiten.KeyEnter,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (in *Input) CursorPosition() (x, y int) { return ebiten.CursorPosition() }

func (in *Input) Clicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Loader decodes PNG and JPEG files into GPU images.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

func (l *Loader) LoadImage(path string) (render.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &Image{img: ebiten.NewImageFromImage(img)}, nil
}

// Engine runs a render.Game in an ebiten window.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (e *Engine) Run(game render.Game, win render.Window) error {
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)
	if win.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(&adapter{game: game})
}

// adapter turns a render.Game into an ebiten.Game.
type adapter struct {
	game render.Game
}

func (a *adapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (a *adapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&Image{img: screen})
}

func (a *adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.Image          = (*Image)(nil)
	_ render.InputManager   = (*Input)(nil)
	_ render.ResourceLoader = (*Loader)(nil)
	_ render.Engine         = (*Engine)(nil)
)
