// Package render is the seam between game logic and the graphics backend.
// Game code draws through these interfaces; internal/render/ebiten supplies
// the real implementation and internal/render/rendertest supplies fakes.
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the game loop normally.
var ErrQuit = errors.New("render: quit requested")

// Renderer draws shapes and text onto images.
type Renderer interface {
	NewImage(width, height int) Image

	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// DrawText draws text with its top-left corner at (x, y).
	DrawText(dst Image, text string, x, y int, clr color.Color)
	MeasureText(text string) (width, height int)
	LineHeight() int
}

// Image is a surface that can be drawn to or drawn from.
type Image interface {
	SubImage(r image.Rectangle) Image
	Fill(clr color.Color)

	// DrawImage draws src with its top-left corner at (x, y).
	DrawImage(src Image, x, y float64)
	// DrawTriangles fills the triangles listed by indices, sampling src.
	DrawTriangles(vertices []Vertex, indices []uint16, src Image, antiAlias bool)
}

// Vertex is one corner of a triangle passed to Image.DrawTriangles.
type Vertex struct {
	DstX, DstY                     float32
	SrcX, SrcY                     float32
	ColorR, ColorG, ColorB, ColorA float32
}

// Key is a keyboard key the game can bind.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZ
	KeyX
	KeyQ
	KeyS
	KeyI
	KeyEnter
	KeySpace
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyZ:      "z",
	KeyX:      "x",
	KeyQ:      "q",
	KeyS:      "s",
	KeyI:      "i",
	KeyEnter:  "enter",
	KeySpace:  "space",
	KeyEscape: "escape",
}

// String returns the lower-case key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Pointer reports the mouse.
type Pointer interface {
	CursorPosition() (x, y int)
	// Clicked reports whether the primary button went down this tick.
	Clicked() bool
}

// InputManager is the keyboard and mouse state for the current tick.
type InputManager interface {
	Pointer
	IsKeyPressed(key Key) bool
}

// ResourceLoader loads images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game is driven by the Engine once per tick.
type Game interface {
	// Update advances one tick. Returning ErrQuit ends the loop without an error.
	Update() error
	Draw(screen Image)
	// Layout returns the logical screen size for the given window size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Window describes the window the Engine opens.
type Window struct {
	Title         string
	Width, Height int
	Resizable     bool
}

// Engine owns the window and the fixed-rate game loop.
type Engine interface {
	// Run blocks until the game ends.
	Run(game Game, win Window) error
}
