package scene

import (
	"fmt"
	"image/color"

	"github.com/taigrr/painter3d/pkg/math3d"
)

// Point is a positioned dot. It is also the vertex type owned by segments
// and polygons, where only Pos is used.
type Point struct {
	Pos    math3d.Vec3
	Radius float64
	Stroke color.Color
	Style  LineStyle
	Fill   color.Color
	Name   string
}

// NewPoint creates a point at (x, y, z).
func NewPoint(x, y, z, radius float64, stroke color.Color, style LineStyle, fill color.Color, name string) *Point {
	return &Point{
		Pos:    math3d.V3(x, y, z),
		Radius: radius,
		Stroke: stroke,
		Style:  style,
		Fill:   fill,
		Name:   name,
	}
}

// vertex returns a bare point used as a segment endpoint or polygon vertex.
func vertex(v math3d.Vec3) *Point {
	return &Point{Pos: v}
}

func (p *Point) primitive() {}

// RotateX rotates the point about the X axis by angle radians.
func (p *Point) RotateX(angle float64) *Point {
	p.Pos = p.Pos.RotateX(angle)
	return p
}

// RotateY rotates the point about the Y axis by angle radians.
func (p *Point) RotateY(angle float64) *Point {
	p.Pos = p.Pos.RotateY(angle)
	return p
}

// RotateZ rotates the point about the Z axis by angle radians.
func (p *Point) RotateZ(angle float64) *Point {
	p.Pos = p.Pos.RotateZ(angle)
	return p
}

// Scale multiplies every coordinate by f. The radius is unchanged.
func (p *Point) Scale(f float64) *Point {
	p.Pos = p.Pos.Scale(f)
	return p
}

// Translate moves the point by (dx, dy, dz).
func (p *Point) Translate(dx, dy, dz float64) *Point {
	p.Pos = p.Pos.Translate(dx, dy, dz)
	return p
}

// Ortho divides x and y by cubeSize. z is left as is.
func (p *Point) Ortho(cubeSize float64) *Point {
	p.Pos.X /= cubeSize
	p.Pos.Y /= cubeSize
	return p
}

// Perspective applies a pinhole projection with the given focal length and
// re-centres the result into a window of roughly [0, 2*cubeSize]. A point
// with z == -focalLen lands at infinity.
func (p *Point) Perspective(cubeSize, focalLen float64) *Point {
	s := focalLen / (focalLen + p.Pos.Z) / cubeSize
	p.Pos.X = cubeSize + p.Pos.X*s
	p.Pos.Y = cubeSize + p.Pos.Y*s
	p.Pos.Z = cubeSize + p.Pos.Z*s
	return p
}

// Centroid returns the point's position.
func (p *Point) Centroid() math3d.Vec3 { return p.Pos }

// CentroidZ returns the point's depth.
func (p *Point) CentroidZ() float64 { return p.Pos.Z }

// Points returns the point itself.
func (p *Point) Points() []*Point { return []*Point{p} }

// Clone returns an independent copy.
func (p *Point) Clone() *Point {
	c := *p
	return &c
}

// Render draws the point as a filled circle of its radius.
func (p *Point) Render(s Surface) error {
	if noSurface(s) {
		return fmt.Errorf("render point %q: %w", p.Name, ErrInvalidContext)
	}
	s.SetStrokeColor(p.Stroke)
	s.SetFillColor(p.Fill)
	s.SetLineStyle(p.Style)
	s.DrawCircle(p.Pos.X, p.Pos.Y, p.Radius)
	if err := s.EndFill(); err != nil {
		return fmt.Errorf("render point %q: %w", p.Name, err)
	}
	return nil
}

func (p *Point) String() string {
	return fmt.Sprintf("Point(%s %g, %g, %g)", p.Name, p.Pos.X, p.Pos.Y, p.Pos.Z)
}
