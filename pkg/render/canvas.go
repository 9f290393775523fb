package render

import (
	"image/color"
	"math"
	"slices"

	"github.com/taigrr/painter3d/pkg/scene"
)

type point struct{ x, y float64 }

type subpath struct {
	pts    []point
	closed bool
}

// Canvas is a scene.Surface that rasterizes into a Framebuffer.
//
// Paths follow canvas semantics: EndFill keeps the path so a following
// EndStroke outlines the same shape, EndStroke discards it, and a new
// SetStrokeColor first strokes whatever outline is still pending.
type Canvas struct {
	fb    *Framebuffer
	view  scene.Viewport
	style scene.LineStyle

	stroke, fill color.Color
	path         []subpath
	pending      bool // path has an outline that has not been stroked yet
}

// NewCanvas creates a canvas over fb with an identity viewport.
func NewCanvas(fb *Framebuffer) *Canvas {
	return &Canvas{
		fb:    fb,
		view:  scene.Identity(),
		style: scene.DefaultLineStyle(),
	}
}

// SetViewport sets the mapping from projected coordinates to pixels.
func (c *Canvas) SetViewport(v scene.Viewport) { c.view = v }

// Framebuffer returns the target framebuffer.
func (c *Canvas) Framebuffer() *Framebuffer { return c.fb }

// SetStrokeColor strokes any pending outline and starts a new shape.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.flush()
	c.path = c.path[:0]
	c.stroke = col
}

func (c *Canvas) SetFillColor(col color.Color) { c.fill = col }

func (c *Canvas) SetLineStyle(style scene.LineStyle) { c.style = style }

// DrawCircle appends a closed circular subpath.
func (c *Canvas) DrawCircle(x, y, r float64) {
	cx, cy := c.view.Apply(x, y)
	rr := math.Abs(r * c.view.Scale)
	n := int(math.Ceil(math.Pi * rr))
	n = min(max(n, 12), 256)

	sp := subpath{pts: make([]point, n), closed: true}
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		sp.pts[i] = point{cx + rr*math.Cos(a), cy + rr*math.Sin(a)}
	}
	c.path = append(c.path, sp)
	c.pending = true
}

func (c *Canvas) MoveTo(x, y float64) {
	px, py := c.view.Apply(x, y)
	c.path = append(c.path, subpath{pts: []point{{px, py}}})
	c.pending = true
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	px, py := c.view.Apply(x, y)
	sp := &c.path[len(c.path)-1]
	sp.pts = append(sp.pts, point{px, py})
	c.pending = true
}

func (c *Canvas) ClosePath() {
	if len(c.path) > 0 {
		c.path[len(c.path)-1].closed = true
	}
}

// EndFill fills the current path with the even-odd rule. The path is kept.
func (c *Canvas) EndFill() error {
	if col, ok := nrgba(c.fill); ok {
		c.fillPath(col)
	}
	c.fill = nil
	return nil
}

// EndStroke outlines the current path and discards it.
func (c *Canvas) EndStroke() error {
	c.flush()
	c.path = c.path[:0]
	c.stroke = nil
	return nil
}

// Flush strokes a pending outline. scene.Scene.Render calls it after the
// last primitive.
func (c *Canvas) Flush() error {
	c.flush()
	return nil
}

func (c *Canvas) flush() {
	if !c.pending {
		return
	}
	c.pending = false
	col, ok := nrgba(c.stroke)
	if !ok {
		return
	}
	w := c.view.LineWidth(c.style)
	for _, sp := range c.path {
		for i := 1; i < len(sp.pts); i++ {
			c.strokeSegment(sp.pts[i-1], sp.pts[i], w, col)
		}
		if sp.closed && len(sp.pts) > 2 {
			c.strokeSegment(sp.pts[len(sp.pts)-1], sp.pts[0], w, col)
		}
	}
}

func (c *Canvas) strokeSegment(a, b point, width float64, col color.NRGBA) {
	pad := width + 1
	var ok bool
	a, b, ok = clipLine(a, b, -pad, -pad, float64(c.fb.Width)+pad, float64(c.fb.Height)+pad)
	if !ok {
		return
	}
	if width <= 1.5 {
		c.fb.DrawLine(round(a.x), round(a.y), round(b.x), round(b.y), col)
		return
	}

	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		c.fb.FillDisc(a.x, a.y, width/2, col)
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	if c.style.Cap == scene.CapSquare {
		ex, ey := dx/l*width/2, dy/l*width/2
		a = point{a.x - ex, a.y - ey}
		b = point{b.x + ex, b.y + ey}
	}
	scanFill(c.fb, [][]point{{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}}, col)
	if c.style.Cap == scene.CapRound || c.style.Join == scene.JoinRound {
		c.fb.FillDisc(a.x, a.y, width/2, col)
		c.fb.FillDisc(b.x, b.y, width/2, col)
	}
}

func (c *Canvas) fillPath(col color.NRGBA) {
	rings := make([][]point, 0, len(c.path))
	for _, sp := range c.path {
		if len(sp.pts) > 2 && finite(sp.pts) {
			rings = append(rings, sp.pts)
		}
	}
	scanFill(c.fb, rings, col)
}

// scanFill fills the even-odd interior of rings, sampling pixel centres.
// Each ring is treated as closed.
func scanFill(fb *Framebuffer, rings [][]point, col color.NRGBA) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		for _, p := range r {
			minY = math.Min(minY, p.y)
			maxY = math.Max(maxY, p.y)
		}
	}
	if !finite([]point{{0, minY}, {0, maxY}}) {
		return
	}

	y0 := max(int(math.Floor(math.Max(minY, -1))), 0)
	y1 := min(int(math.Ceil(math.Min(maxY, float64(fb.Height)))), fb.Height-1)
	lo, hi := -1.0, float64(fb.Width)+1
	var xs []float64
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				a, b := r[i], r[(i+1)%len(r)]
				if (a.y <= sy && b.y > sy) || (b.y <= sy && a.y > sy) {
					xs = append(xs, a.x+(sy-a.y)*(b.x-a.x)/(b.y-a.y))
				}
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := math.Min(math.Max(xs[i]-0.5, lo), hi)
			x1 := math.Min(math.Max(xs[i+1]-0.5, lo), hi)
			fb.BlendSpan(int(math.Ceil(x0)), int(math.Ceil(x1))-1, y, col)
		}
	}
}

// clipLine clips segment ab to the rectangle with the Liang-Barsky
// algorithm. It reports false when nothing is left or a coordinate is not
// finite.
func clipLine(a, b point, xmin, ymin, xmax, ymax float64) (point, point, bool) {
	if !finite([]point{a, b}) {
		return a, b, false
	}
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a.x - xmin},
		{dx, xmax - a.x},
		{-dy, a.y - ymin},
		{dy, ymax - a.y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return point{a.x + t0*dx, a.y + t0*dy}, point{a.x + t1*dx, a.y + t1*dy}, true
}

func finite(pts []point) bool {
	for _, p := range pts {
		if math.IsNaN(p.x) || math.IsNaN(p.y) || math.IsInf(p.x, 0) || math.IsInf(p.y, 0) {
			return false
		}
	}
	return true
}

func nrgba(c color.Color) (color.NRGBA, bool) {
	if c == nil {
		return color.NRGBA{}, false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n, n.A > 0
}

func round(v float64) int {
	return int(math.Round(v))
}
