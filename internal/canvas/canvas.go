// Package canvas renders the game at its logical pixel size: a 600x600
// canvas with 30 pixel cells. It backs PNG screenshots.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
)

// Palette of the canvas renderer.
var (
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	BodyColor  = color.RGBA{R: 0x32, G: 0xCD, B: 0x32, A: 0xFF}
	HeadAccent = color.RGBA{A: 0xFF}
	FoodColor  = color.RGBA{R: 0xFF, G: 0x00, B: 0x66, A: 0xFF}
	TextColor  = color.RGBA{A: 0xFF}
)

// Head accent geometry in pixels, relative to the cell's top-left corner.
const (
	accentOffset = 4
	accentSize   = 4
)

// Renderer is a caterpillar.Renderer that paints into an RGBA image.
type Renderer struct {
	img *image.RGBA
}

// New creates a renderer with a blank canvas.
func New() *Renderer {
	r := &Renderer{
		img: image.NewRGBA(image.Rect(0, 0, caterpillar.CanvasSize, caterpillar.CanvasSize)),
	}
	r.clear()
	return r
}

// Image returns the canvas. It is overwritten by the next Render.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

func (r *Renderer) clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

// Render paints the snapshot.
func (r *Renderer) Render(s caterpillar.Snapshot) {
	r.clear()

	if s.State == caterpillar.StateNotStarted {
		r.drawCenteredText(caterpillar.StartPrompt)
		return
	}

	const cell = caterpillar.CellSize
	for i, seg := range s.Caterpillar {
		x, y := seg.X*cell, seg.Y*cell
		r.fill(image.Rect(x, y, x+cell, y+cell), BodyColor)
		if i == 0 {
			ax, ay := x+accentOffset, y+accentOffset
			r.fill(image.Rect(ax, ay, ax+accentSize, ay+accentSize), HeadAccent)
		}
	}

	cx := s.Food.X*cell + cell/2
	cy := s.Food.Y*cell + cell/2
	r.fillCircle(cx, cy, cell/3, FoodColor)
}

func (r *Renderer) fill(rect image.Rectangle, c color.Color) {
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Renderer) fillCircle(cx, cy, radius int, c color.RGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				r.img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}

func (r *Renderer) drawCenteredText(text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(TextColor),
		Face: face,
		Dot:  fixed.P((caterpillar.CanvasSize-width)/2, caterpillar.CanvasSize/2),
	}
	d.DrawString(text)
}

// Encode writes the canvas as PNG.
func (r *Renderer) Encode(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("canvas: cannot encode png: %w", err)
	}
	return nil
}

// SavePNG renders s and writes it to path, creating parent directories.
func SavePNG(path string, s caterpillar.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("canvas: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: cannot create %s: %w", path, err)
	}

	r := New()
	r.Render(s)
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
