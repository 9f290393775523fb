package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a polygon fill colour. R, G and B are in [0, 255] and A is an
// opacity in [0, 1]. Channels are kept as real numbers so repeated lighting
// does not accumulate rounding error.
type RGBA struct {
	R, G, B, A float64
}

// NewRGBA returns a clamped fill colour.
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}.Clamp()
}

// Clamp returns c with RGB limited to [0, 255] and A to [0, 1].
// NaN channels become 0.
func (c RGBA) Clamp() RGBA {
	return RGBA{
		R: clamp(c.R, 0, 255),
		G: clamp(c.G, 0, 255),
		B: clamp(c.B, 0, 255),
		A: clamp(c.A, 0, 1),
	}
}

// Color converts c to the non-premultiplied colour drawing surfaces consume.
func (c RGBA) Color() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(math.Round(c.R)),
		G: uint8(math.Round(c.G)),
		B: uint8(math.Round(c.B)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// Hex formats the RGB channels as #rrggbb. Alpha is dropped.
func (c RGBA) Hex() string {
	c = c.Clamp()
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped().Hex()
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// ParseHex parses a #rgb or #rrggbb colour into an opaque fill.
func ParseHex(s string) (RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("parse colour %q: %w: %v", s, ErrInvalidArgument, err)
	}
	return NewRGBA(col.R*255, col.G*255, col.B*255, 1), nil
}

// RGBAFromColor converts any colour into a fill, keeping its alpha.
func RGBAFromColor(c color.Color) RGBA {
	if c == nil {
		return RGBA{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: float64(n.R), G: float64(n.G), B: float64(n.B), A: float64(n.A) / 255}
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
