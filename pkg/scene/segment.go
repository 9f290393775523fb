package scene

import (
	"fmt"
	"image/color"

	"github.com/taigrr/painter3d/pkg/math3d"
)

// Segment is a stroked line between two owned endpoints.
type Segment struct {
	Start, End *Point
	Stroke     color.Color
	Style      LineStyle
	Name       string
}

// NewSegment creates a segment from a to b.
func NewSegment(a, b math3d.Vec3, stroke color.Color, style LineStyle, name string) *Segment {
	return &Segment{
		Start:  vertex(a),
		End:    vertex(b),
		Stroke: stroke,
		Style:  style,
		Name:   name,
	}
}

// SegmentBetween creates a segment between the positions of a and b.
// Only the coordinates are copied; the points' render attributes are ignored.
func SegmentBetween(a, b *Point, stroke color.Color, style LineStyle, name string) *Segment {
	return NewSegment(a.Pos, b.Pos, stroke, style, name)
}

func (sg *Segment) primitive() {}

func (sg *Segment) RotateX(angle float64) *Segment {
	sg.Start.RotateX(angle)
	sg.End.RotateX(angle)
	return sg
}

func (sg *Segment) RotateY(angle float64) *Segment {
	sg.Start.RotateY(angle)
	sg.End.RotateY(angle)
	return sg
}

func (sg *Segment) RotateZ(angle float64) *Segment {
	sg.Start.RotateZ(angle)
	sg.End.RotateZ(angle)
	return sg
}

func (sg *Segment) Scale(f float64) *Segment {
	sg.Start.Scale(f)
	sg.End.Scale(f)
	return sg
}

func (sg *Segment) Translate(dx, dy, dz float64) *Segment {
	sg.Start.Translate(dx, dy, dz)
	sg.End.Translate(dx, dy, dz)
	return sg
}

func (sg *Segment) Ortho(cubeSize float64) *Segment {
	sg.Start.Ortho(cubeSize)
	sg.End.Ortho(cubeSize)
	return sg
}

func (sg *Segment) Perspective(cubeSize, focalLen float64) *Segment {
	sg.Start.Perspective(cubeSize, focalLen)
	sg.End.Perspective(cubeSize, focalLen)
	return sg
}

// Centroid returns the midpoint.
func (sg *Segment) Centroid() math3d.Vec3 {
	return sg.Start.Pos.Add(sg.End.Pos).Scale(0.5)
}

// CentroidZ returns the mean depth of the endpoints.
func (sg *Segment) CentroidZ() float64 {
	return (sg.Start.Pos.Z + sg.End.Pos.Z) / 2
}

// Points returns the two endpoints.
func (sg *Segment) Points() []*Point { return []*Point{sg.Start, sg.End} }

// Clone returns a copy with independent endpoints.
func (sg *Segment) Clone() *Segment {
	c := *sg
	c.Start = sg.Start.Clone()
	c.End = sg.End.Clone()
	return &c
}

// Render strokes the segment.
func (sg *Segment) Render(s Surface) error {
	if noSurface(s) {
		return fmt.Errorf("render segment %q: %w", sg.Name, ErrInvalidContext)
	}
	s.SetStrokeColor(sg.Stroke)
	s.SetLineStyle(sg.Style)
	s.MoveTo(sg.Start.Pos.X, sg.Start.Pos.Y)
	s.LineTo(sg.End.Pos.X, sg.End.Pos.Y)
	if err := s.EndStroke(); err != nil {
		return fmt.Errorf("render segment %q: %w", sg.Name, err)
	}
	return nil
}
