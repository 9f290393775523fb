// Package vector renders painter3d scenes with the anti-aliased gg 2D
// engine.
package vector

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/taigrr/painter3d/pkg/scene"
)

// Surface adapts a gg.Context to scene.Surface. It follows the same path
// semantics as render.Canvas: EndFill keeps the path, EndStroke consumes
// it, and starting a new shape strokes any outline still pending.
type Surface struct {
	dc    *gg.Context
	view  scene.Viewport
	style scene.LineStyle

	stroke, fill color.Color
	pending      bool
}

// NewSurface creates a width x height surface cleared to background. A nil
// background leaves it transparent. The engine logger is shared with gg.
func NewSurface(width, height int, background color.Color) *Surface {
	gg.SetLogger(scene.Logger())
	dc := gg.NewContext(width, height)
	dc.SetFillRule(gg.FillRuleEvenOdd)
	if background != nil {
		dc.ClearWithColor(toRGBA(background))
	}
	return &Surface{
		dc:    dc,
		view:  scene.Identity(),
		style: scene.DefaultLineStyle(),
	}
}

// SetViewport sets the mapping from projected coordinates to pixels.
func (s *Surface) SetViewport(v scene.Viewport) { s.view = v }

// Context exposes the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.dc }

func (s *Surface) SetStrokeColor(c color.Color) {
	if err := s.Flush(); err != nil {
		scene.Logger().Debug("vector: stroke pending outline", "err", err)
	}
	s.dc.ClearPath()
	s.stroke = c
}

func (s *Surface) SetFillColor(c color.Color) { s.fill = c }

func (s *Surface) SetLineStyle(style scene.LineStyle) {
	s.style = style
	s.dc.SetLineWidth(s.view.LineWidth(style))
	s.dc.SetLineCap(lineCaps[style.Cap])
	s.dc.SetLineJoin(lineJoins[style.Join])
	if style.MiterLimit > 0 {
		s.dc.SetMiterLimit(style.MiterLimit)
	}
}

func (s *Surface) DrawCircle(x, y, r float64) {
	px, py := s.view.Apply(x, y)
	s.dc.DrawCircle(px, py, r*s.view.Scale)
	s.pending = true
}

func (s *Surface) MoveTo(x, y float64) {
	s.dc.MoveTo(s.view.Apply(x, y))
	s.pending = true
}

func (s *Surface) LineTo(x, y float64) {
	s.dc.LineTo(s.view.Apply(x, y))
	s.pending = true
}

func (s *Surface) ClosePath() { s.dc.ClosePath() }

// EndFill fills the current path and keeps it.
func (s *Surface) EndFill() error {
	defer func() { s.fill = nil }()
	if !visible(s.fill) {
		return nil
	}
	s.dc.SetFillBrush(gg.Solid(toRGBA(s.fill)))
	if err := s.dc.FillPreserve(); err != nil {
		return fmt.Errorf("vector fill: %w", err)
	}
	return nil
}

// EndStroke strokes the current path and clears it.
func (s *Surface) EndStroke() error {
	err := s.Flush()
	s.dc.ClearPath()
	s.stroke = nil
	return err
}

// Flush strokes a pending outline.
func (s *Surface) Flush() error {
	if !s.pending {
		return nil
	}
	s.pending = false
	if !visible(s.stroke) {
		return nil
	}
	s.dc.SetLineWidth(s.view.LineWidth(s.style))
	s.dc.SetStrokeBrush(gg.Solid(toRGBA(s.stroke)))
	if err := s.dc.StrokePreserve(); err != nil {
		return fmt.Errorf("vector stroke: %w", err)
	}
	return nil
}

// Image returns the rendered image.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the image to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// Close releases the gg context.
func (s *Surface) Close() error { return s.dc.Close() }

var lineCaps = map[scene.LineCap]gg.LineCap{
	scene.CapButt:   gg.LineCapButt,
	scene.CapRound:  gg.LineCapRound,
	scene.CapSquare: gg.LineCapSquare,
}

var lineJoins = map[scene.LineJoin]gg.LineJoin{
	scene.JoinMiter: gg.LineJoinMiter,
	scene.JoinRound: gg.LineJoinRound,
	scene.JoinBevel: gg.LineJoinBevel,
}

// toRGBA converts to gg's straight-alpha colour. gg.FromColor would keep
// the premultiplied channels of color.Color.RGBA.
func toRGBA(c color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func visible(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a > 0
}
