package scene

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/taigrr/painter3d/pkg/math3d"
)

// Polygon is a planar face with an ordered vertex ring. The order is never
// changed; it decides which side faces the camera.
type Polygon struct {
	Vertices []*Point
	Stroke   color.Color
	Style    LineStyle
	Fill     *RGBA // nil disables rendering
	Attribs  Attribs
	Name     string
}

// NewPolygon creates a polygon from at least three vertex positions. The
// positions are copied, the fill is clamped and nil attribs mean
// DefaultAttribs.
func NewPolygon(vertices []math3d.Vec3, stroke color.Color, style LineStyle, fill *RGBA, attribs *Attribs, name string) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("new polygon %q: %w: %d vertices, need at least 3", name, ErrInvalidArgument, len(vertices))
	}

	p := &Polygon{
		Vertices: make([]*Point, len(vertices)),
		Stroke:   stroke,
		Style:    style,
		Name:     name,
	}
	for i, v := range vertices {
		p.Vertices[i] = vertex(v)
	}
	if fill != nil {
		f := fill.Clamp()
		p.Fill = &f
	}
	if attribs != nil {
		p.Attribs = attribs.clone()
	} else {
		p.Attribs = DefaultAttribs()
	}
	return p, nil
}

func (p *Polygon) primitive() {}

func (p *Polygon) RotateX(angle float64) *Polygon {
	for _, v := range p.Vertices {
		v.RotateX(angle)
	}
	return p
}

func (p *Polygon) RotateY(angle float64) *Polygon {
	for _, v := range p.Vertices {
		v.RotateY(angle)
	}
	return p
}

func (p *Polygon) RotateZ(angle float64) *Polygon {
	for _, v := range p.Vertices {
		v.RotateZ(angle)
	}
	return p
}

func (p *Polygon) Scale(f float64) *Polygon {
	for _, v := range p.Vertices {
		v.Scale(f)
	}
	return p
}

func (p *Polygon) Translate(dx, dy, dz float64) *Polygon {
	for _, v := range p.Vertices {
		v.Translate(dx, dy, dz)
	}
	return p
}

func (p *Polygon) Ortho(cubeSize float64) *Polygon {
	for _, v := range p.Vertices {
		v.Ortho(cubeSize)
	}
	return p
}

func (p *Polygon) Perspective(cubeSize, focalLen float64) *Polygon {
	for _, v := range p.Vertices {
		v.Perspective(cubeSize, focalLen)
	}
	return p
}

// Points returns the vertex ring.
func (p *Polygon) Points() []*Point { return p.Vertices }

// Centroid returns the arithmetic mean of the vertices.
func (p *Polygon) Centroid() math3d.Vec3 {
	var sum math3d.Vec3
	for _, v := range p.Vertices {
		sum = sum.Add(v.Pos)
	}
	return sum.Div(float64(len(p.Vertices)))
}

// CentroidZ returns the mean vertex depth.
func (p *Polygon) CentroidZ() float64 {
	var sum float64
	for _, v := range p.Vertices {
		sum += v.Pos.Z
	}
	return sum / float64(len(p.Vertices))
}

// Normal is a polygon surface normal: the raw Newell vector, its length and
// its unit direction.
type Normal struct {
	Vec       math3d.Vec3
	Magnitude float64
	Unit      math3d.Vec3
}

// Degenerate reports whether the normal has no usable direction, which
// happens for collinear or coincident vertices.
func (n Normal) Degenerate() bool {
	return n.Magnitude == 0 || math.IsNaN(n.Magnitude) || math.IsInf(n.Magnitude, 0)
}

// SurfaceNormal computes the normal with Newell's method, which tolerates
// slightly non-planar rings. For a degenerate ring Unit is the zero vector.
func (p *Polygon) SurfaceNormal() Normal {
	var n math3d.Vec3
	count := len(p.Vertices)
	for i, vi := range p.Vertices {
		a := vi.Pos
		b := p.Vertices[(i+1)%count].Pos
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		// (zi-zj)(xi+xj), not (zi-zj)(zi+zj): the latter always sums to zero.
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	mag := n.Len()
	out := Normal{Vec: n, Magnitude: mag}
	if !out.Degenerate() {
		out.Unit = n.Div(mag)
	}
	return out
}

// ShouldRender reports whether the polygon faces the camera.
func (p *Polygon) ShouldRender() bool {
	return p.SurfaceNormal().Vec.Z < 0
}

// AddLight attaches l unless it is already attached.
func (p *Polygon) AddLight(l *LightSource) *Polygon {
	if l == nil {
		return p
	}
	for _, have := range p.Attribs.Lights {
		if have == l || have.ID == l.ID {
			return p
		}
	}
	p.Attribs.Lights = append(p.Attribs.Lights, l)
	return p
}

// RemoveLight detaches the light with the given ID and reports whether it
// was attached.
func (p *Polygon) RemoveLight(id uuid.UUID) bool {
	n := len(p.Attribs.Lights)
	p.Attribs.Lights = slices.DeleteFunc(p.Attribs.Lights, func(l *LightSource) bool {
		return l != nil && l.ID == id
	})
	return len(p.Attribs.Lights) != n
}

// Lights returns a copy of the attached light list.
func (p *Polygon) Lights() []*LightSource {
	return slices.Clone(p.Attribs.Lights)
}

// ApplyLights replaces the fill with the sum of every attached light's
// contribution. Ambient lights scale the fill by AmbientReflectance and the
// light's intensity. Diffuse lights additionally scale RGB by the cosine
// between the surface normal and the direction to the light, clamped at
// zero, and use DiffuseReflectance. Each contribution and the final sum are
// clamped.
//
// A polygon without fill or without lights is left unchanged. Diffuse lights
// that have no defined direction (degenerate polygon, light on the centroid)
// contribute nothing.
func (p *Polygon) ApplyLights() *Polygon {
	if p.Fill == nil || len(p.Attribs.Lights) == 0 {
		return p
	}

	fill := *p.Fill
	var sum RGBA
	var normal Normal
	var centroid math3d.Vec3
	geometry := false

	for _, l := range p.Attribs.Lights {
		if l == nil {
			continue
		}
		var c RGBA
		switch l.Type {
		case LightAmbient:
			k := p.Attribs.AmbientReflectance
			c = RGBA{
				R: fill.R * k * l.Intensity.R,
				G: fill.G * k * l.Intensity.G,
				B: fill.B * k * l.Intensity.B,
				A: fill.A * k * l.Intensity.A,
			}
		case LightDiffuse:
			if !geometry {
				normal = p.SurfaceNormal()
				centroid = p.Centroid()
				geometry = true
			}
			if normal.Degenerate() {
				Logger().Debug("scene: skipping diffuse light on degenerate polygon",
					"polygon", p.Name, "light", l.ID)
				continue
			}
			dir := l.Pos.Sub(centroid)
			if dir.LenSq() == 0 || !dir.IsFinite() {
				Logger().Debug("scene: skipping diffuse light without direction",
					"polygon", p.Name, "light", l.ID, "pos", l.Pos)
				continue
			}
			cos := clamp(dir.Normalize().Dot(normal.Unit), 0, 1)
			k := p.Attribs.DiffuseReflectance
			c = RGBA{
				R: fill.R * k * l.Intensity.R * cos,
				G: fill.G * k * l.Intensity.G * cos,
				B: fill.B * k * l.Intensity.B * cos,
				A: fill.A * l.Intensity.A,
			}
		default:
			Logger().Debug("scene: skipping light of unknown type",
				"polygon", p.Name, "light", l.ID, "type", l.Type)
			continue
		}
		c = c.Clamp()
		sum.R += c.R
		sum.G += c.G
		sum.B += c.B
		sum.A += c.A
	}

	sum = sum.Clamp()
	p.Fill = &sum
	return p
}

// Clone deep-copies the vertices. Lights stay shared.
func (p *Polygon) Clone() *Polygon {
	c := *p
	c.Vertices = make([]*Point, len(p.Vertices))
	for i, v := range p.Vertices {
		c.Vertices[i] = v.Clone()
	}
	if p.Fill != nil {
		f := *p.Fill
		c.Fill = &f
	}
	c.Attribs = p.Attribs.clone()
	return &c
}

// Render fills and outlines the polygon. Back faces and polygons without a
// fill draw nothing. The outline uses the fill colour unless the polygon is
// in wireframe mode.
func (p *Polygon) Render(s Surface) error {
	if noSurface(s) {
		return fmt.Errorf("render polygon %q: %w", p.Name, ErrInvalidContext)
	}
	if p.Fill == nil || !p.ShouldRender() {
		return nil
	}

	fill := p.Fill.Color()
	if p.Attribs.Wireframe {
		s.SetStrokeColor(p.Stroke)
	} else {
		s.SetStrokeColor(fill)
	}
	style := p.Style
	style.IgnoreScale = true
	s.SetLineStyle(style)
	s.SetFillColor(fill)

	s.MoveTo(p.Vertices[0].Pos.X, p.Vertices[0].Pos.Y)
	for _, v := range p.Vertices[1:] {
		s.LineTo(v.Pos.X, v.Pos.Y)
	}
	s.ClosePath()

	if err := s.EndFill(); err != nil {
		return fmt.Errorf("render polygon %q: fill: %w", p.Name, err)
	}
	if err := s.EndStroke(); err != nil {
		return fmt.Errorf("render polygon %q: stroke: %w", p.Name, err)
	}
	return nil
}
