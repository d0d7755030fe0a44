// Package rendertest provides in-memory render fakes for tests.
package rendertest

import (
	"image"
	"image/color"
	"unicode/utf8"

	"chosenoffset.com/quizfield/internal/render"
)

// Text is one recorded DrawText call.
type Text struct {
	S    string
	X, Y int
}

// Renderer records text and counts shapes. Each character measures 6x10.
type Renderer struct {
	Texts   []Text
	Rects   int
	Circles int
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

func (r *Renderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	r.Rects++
}

func (r *Renderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.Rects++
}

func (r *Renderer) FillCircle(render.Image, float32, float32, float32, color.Color) {
	r.Circles++
}

func (r *Renderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
	r.Circles++
}

func (r *Renderer) DrawText(_ render.Image, s string, x, y int, _ color.Color) {
	r.Texts = append(r.Texts, Text{S: s, X: x, Y: y})
}

func (r *Renderer) MeasureText(s string) (int, int) {
	return utf8.RuneCountInString(s) * 6, 10
}

func (r *Renderer) LineHeight() int { return 10 }

// Drawn reports whether s was drawn exactly.
func (r *Renderer) Drawn(s string) bool {
	for _, t := range r.Texts {
		if t.S == s {
			return true
		}
	}
	return false
}

// Reset forgets recorded calls.
func (r *Renderer) Reset() {
	r.Texts = nil
	r.Rects = 0
	r.Circles = 0
}

// Image is a blank surface that counts draw calls.
type Image struct {
	W, H      int
	Fills     int
	Draws     int
	Triangles int
	// Offsets records where each DrawImage call placed its source.
	Offsets [][2]float64
}

var _ render.Image = (*Image)(nil)

// NewImage creates a w x h image.
func NewImage(w, h int) *Image { return &Image{W: w, H: h} }

func (i *Image) SubImage(r image.Rectangle) render.Image { return &Image{W: r.Dx(), H: r.Dy()} }
func (i *Image) Fill(color.Color)                        { i.Fills++ }

func (i *Image) DrawImage(_ render.Image, x, y float64) {
	i.Draws++
	i.Offsets = append(i.Offsets, [2]float64{x, y})
}

func (i *Image) DrawTriangles([]render.Vertex, []uint16, render.Image, bool) {
	i.Triangles++
}

// Input is a scripted InputManager. Keys holds the key state; Click
// is consumed by the next Clicked call.
type Input struct {
	Keys   map[render.Key]bool
	Click  bool
	MouseX int
	MouseY int
}

var _ render.InputManager = (*Input)(nil)

// NewInput creates an input with no keys held.
func NewInput() *Input { return &Input{Keys: map[render.Key]bool{}} }

func (in *Input) IsKeyPressed(k render.Key) bool { return in.Keys[k] }
func (in *Input) CursorPosition() (int, int)     { return in.MouseX, in.MouseY }

func (in *Input) Clicked() bool {
	c := in.Click
	in.Click = false
	return c
}

// Loader serves Image for every path, or fails when Image is nil, which
// exercises image fallbacks.
type Loader struct {
	Image    render.Image
	Requests []string
}

var _ render.ResourceLoader = (*Loader)(nil)

func (l *Loader) LoadImage(path string) (render.Image, error) {
	l.Requests = append(l.Requests, path)
	if l.Image == nil {
		return nil, errNoImages
	}
	return l.Image, nil
}

type loaderError string

func (e loaderError) Error() string { return string(e) }

const errNoImages = loaderError("rendertest: no images")
