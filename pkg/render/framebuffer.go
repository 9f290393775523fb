// Package render draws painter3d scenes into an in-memory framebuffer that
// can be shown in a terminal or written out as a PNG.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// Framebuffer is a 2D array of non-premultiplied pixels.
// For terminal output the height is twice the number of rows, since each
// cell shows two pixels with a half-block character.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.NRGBA // row-major
}

// NewFramebuffer creates a transparent framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.NRGBA, width*height),
	}
}

// Resize changes the dimensions, reusing the pixel buffer when it is large
// enough. Contents are cleared.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(fb.Pixels) >= n {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]color.NRGBA, n)
	}
	fb.Width, fb.Height = width, height
	fb.Clear(color.NRGBA{})
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.NRGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel replaces the pixel at (x, y). Out of bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.NRGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.NRGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// BlendPixel composites c over the pixel at (x, y) (source-over).
func (fb *Framebuffer) BlendPixel(x, y int, c color.NRGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height || c.A == 0 {
		return
	}
	i := y*fb.Width + x
	if c.A == 255 {
		fb.Pixels[i] = c
		return
	}
	fb.Pixels[i] = over(c, fb.Pixels[i])
}

// BlendSpan composites c over pixels x0..x1 inclusive on row y.
func (fb *Framebuffer) BlendSpan(x0, x1, y int, c color.NRGBA) {
	if y < 0 || y >= fb.Height {
		return
	}
	x0, x1 = max(x0, 0), min(x1, fb.Width-1)
	for x := x0; x <= x1; x++ {
		fb.BlendPixel(x, y, c)
	}
}

// over composites non-premultiplied src over dst.
func over(src, dst color.NRGBA) color.NRGBA {
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		return color.NRGBA{}
	}
	mix := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / outA
		return uint8(math.Round(math.Min(v, 255)))
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// DrawLine draws a one pixel line from (x0, y0) to (x1, y1) using
// Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.BlendPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc fills every pixel whose centre lies within r of (cx, cy).
func (fb *Framebuffer) FillDisc(cx, cy, r float64, c color.NRGBA) {
	if !(r > 0) || math.IsInf(r, 0) || math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return
	}
	y0 := max(int(math.Floor(math.Max(cy-r, -1))), 0)
	y1 := min(int(math.Ceil(math.Min(cy+r, float64(fb.Height)))), fb.Height-1)
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		if dy*dy > r*r {
			continue
		}
		dx := math.Sqrt(r*r - dy*dy)
		x0 := math.Max(cx-dx-0.5, -1)
		x1 := math.Min(cx+dx-0.5, float64(fb.Width)+1)
		fb.BlendSpan(int(math.Ceil(x0)), int(math.Ceil(x1))-1, y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage copies the framebuffer into a standard image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetNRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// EncodePNG writes the framebuffer as PNG.
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, fb.ToImage())
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	if err := fb.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return f.Close()
}
