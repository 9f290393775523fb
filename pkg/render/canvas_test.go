package render

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/painter3d/pkg/math3d"
	"github.com/taigrr/painter3d/pkg/scene"
)

func TestCanvasFillSquare(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	c := NewCanvas(fb)

	c.SetStrokeColor(nil)
	c.SetFillColor(red)
	c.MoveTo(2, 2)
	c.LineTo(2, 6)
	c.LineTo(6, 6)
	c.LineTo(6, 2)
	c.ClosePath()
	if err := c.EndFill(); err != nil {
		t.Fatal(err)
	}

	// Pixel centres 2.5..5.5 are inside: a 4x4 block.
	if n := countPixels(fb, red); n != 16 {
		t.Errorf("filled %d pixels, want 16", n)
	}
	if fb.GetPixel(2, 2) != red || fb.GetPixel(5, 5) != red {
		t.Error("corner pixels not filled")
	}
	if fb.GetPixel(6, 6) == red {
		t.Error("pixel past the edge filled")
	}
}

func TestCanvasEvenOdd(t *testing.T) {
	fb := NewFramebuffer(12, 12)
	c := NewCanvas(fb)

	c.SetFillColor(red)
	c.MoveTo(0, 0)
	c.LineTo(12, 0)
	c.LineTo(12, 12)
	c.LineTo(0, 12)
	c.ClosePath()
	c.MoveTo(4, 4)
	c.LineTo(8, 4)
	c.LineTo(8, 8)
	c.LineTo(4, 8)
	c.ClosePath()
	_ = c.EndFill()

	if fb.GetPixel(6, 6) == red {
		t.Error("hole was filled")
	}
	if n := countPixels(fb, red); n != 144-16 {
		t.Errorf("filled %d pixels, want %d", n, 144-16)
	}
}

func TestCanvasStrokeAfterFill(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	c := NewCanvas(fb)

	c.SetStrokeColor(blue)
	c.SetFillColor(red)
	c.MoveTo(1, 1)
	c.LineTo(1, 8)
	c.LineTo(8, 8)
	c.LineTo(8, 1)
	c.ClosePath()
	_ = c.EndFill()
	_ = c.EndStroke()

	if fb.GetPixel(1, 1) != blue || fb.GetPixel(8, 8) != blue || fb.GetPixel(1, 5) != blue {
		t.Error("outline not stroked over the fill")
	}
	if fb.GetPixel(4, 4) != red {
		t.Error("interior not filled")
	}

	// The path is gone after EndStroke.
	fb.Clear(color.NRGBA{})
	_ = c.EndFill()
	_ = c.Flush()
	if n := countPixels(fb, red) + countPixels(fb, blue); n != 0 {
		t.Errorf("stale path painted %d pixels", n)
	}
}

func TestCanvasPendingStroke(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	c := NewCanvas(fb)

	c.SetStrokeColor(blue)
	c.SetFillColor(red)
	c.DrawCircle(10, 10, 5)
	_ = c.EndFill()
	if countPixels(fb, blue) != 0 {
		t.Fatal("outline drawn before the shape ended")
	}

	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if countPixels(fb, blue) == 0 {
		t.Error("Flush did not stroke the pending outline")
	}
	if fb.GetPixel(10, 10) != red {
		t.Error("circle interior not filled")
	}
}

func TestCanvasThickLine(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	c := NewCanvas(fb)

	c.SetStrokeColor(red)
	c.SetLineStyle(scene.LineStyle{Width: 4, IgnoreScale: true})
	c.MoveTo(2, 10)
	c.LineTo(18, 10)
	_ = c.EndStroke()

	for _, y := range []int{8, 9, 10, 11} {
		if fb.GetPixel(10, y) != red {
			t.Errorf("pixel (10, %d) not covered by 4px stroke", y)
		}
	}
	if fb.GetPixel(10, 13) == red || fb.GetPixel(10, 6) == red {
		t.Error("stroke wider than 4px")
	}
}

func TestCanvasViewport(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	c := NewCanvas(fb)
	c.SetViewport(scene.Viewport{Scale: 5, OffsetX: 5, OffsetY: 5})

	c.SetFillColor(red)
	c.MoveTo(-1, -1)
	c.LineTo(-1, 1)
	c.LineTo(1, 1)
	c.LineTo(1, -1)
	_ = c.EndFill()

	if n := countPixels(fb, red); n != 100 {
		t.Errorf("viewport fill covered %d pixels, want 100", n)
	}
}

func TestCanvasIgnoresNonFinite(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	c := NewCanvas(fb)

	c.SetStrokeColor(red)
	c.SetFillColor(red)
	c.MoveTo(0, 0)
	c.LineTo(math.Inf(1), 5)
	c.LineTo(5, 5)
	_ = c.EndFill()
	_ = c.EndStroke()

	c.SetStrokeColor(red)
	c.MoveTo(-1e12, 5)
	c.LineTo(1e12, 5)
	_ = c.EndStroke()
	if fb.GetPixel(5, 5) != red {
		t.Error("long clipped line not drawn")
	}
}

func TestCanvasRendersScene(t *testing.T) {
	poly, err := scene.NewPolygon([]math3d.Vec3{
		math3d.V3(-1, -1, 0),
		math3d.V3(-1, 1, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(1, -1, 0),
	}, nil, scene.DefaultLineStyle(), &scene.RGBA{R: 255, A: 1}, nil, "quad")
	if err != nil {
		t.Fatal(err)
	}

	s := scene.New()
	if err := s.Add(poly); err != nil {
		t.Fatal(err)
	}

	pr := scene.Projection{Mode: scene.Orthographic, CubeSize: 2}
	fb := NewFramebuffer(40, 40)
	c := NewCanvas(fb)
	c.SetViewport(scene.FitViewport(pr, fb.Width, fb.Height, 0))
	if err := s.Draw(c, pr); err != nil {
		t.Fatal(err)
	}

	// Ortho halves the quad: it covers the centre 20x20 pixels.
	if fb.GetPixel(20, 20) != red {
		t.Error("centre not filled")
	}
	if fb.GetPixel(2, 2) == red {
		t.Error("corner filled")
	}
	if got := s.Stats(); got.Drawn != 1 {
		t.Errorf("stats = %+v, want one drawn", got)
	}
}

func BenchmarkCanvasFill(b *testing.B) {
	fb := NewFramebuffer(200, 200)
	c := NewCanvas(fb)

	for b.Loop() {
		c.SetStrokeColor(blue)
		c.SetFillColor(red)
		c.MoveTo(10, 10)
		c.LineTo(20, 190)
		c.LineTo(190, 150)
		c.ClosePath()
		_ = c.EndFill()
		_ = c.EndStroke()
	}
}

func TestSceneSegmentHairline(t *testing.T) {
	pr := scene.Projection{Mode: scene.Orthographic, CubeSize: 10}
	fb := NewFramebuffer(64, 64)
	c := NewCanvas(fb)
	c.SetViewport(scene.FitViewport(pr, 64, 64, 0.1))

	style := scene.DefaultLineStyle()
	style.IgnoreScale = true
	s := scene.New()
	if err := s.Add(scene.NewSegment(math3d.V3(-5, 0, 0), math3d.V3(5, 0, 0), red, style, "axis")); err != nil {
		t.Fatal(err)
	}
	if err := s.Draw(c, pr); err != nil {
		t.Fatal(err)
	}

	rows := map[int]bool{}
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == red {
				rows[y] = true
			}
		}
	}
	if len(rows) != 1 {
		t.Errorf("hairline segment covers %d pixel rows, want 1", len(rows))
	}
}

func TestCanvasTypedNilSurface(t *testing.T) {
	var c *Canvas
	p := scene.NewPoint(0, 0, 0, 1, red, scene.DefaultLineStyle(), red, "p")
	if err := p.Render(c); !errors.Is(err, scene.ErrInvalidContext) {
		t.Errorf("Render(nil *Canvas) = %v, want ErrInvalidContext", err)
	}
	if err := scene.New().Draw(c, scene.Projection{Mode: scene.Orthographic, CubeSize: 1}); !errors.Is(err, scene.ErrInvalidContext) {
		t.Errorf("Draw(nil *Canvas) = %v, want ErrInvalidContext", err)
	}
}
