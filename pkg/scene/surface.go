package scene

import (
	"image/color"
	"reflect"
)

// LineCap is the shape drawn at open stroke ends.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape drawn where two stroke segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineStyle describes how outlines are stroked.
type LineStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// IgnoreScale keeps the stroke width in device units regardless of any
	// scaling the surface applies. Polygons always stroke this way.
	IgnoreScale bool
}

// DefaultLineStyle returns a one unit wide butt-capped, mitred stroke.
func DefaultLineStyle() LineStyle {
	return LineStyle{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
}

// Surface is the 2D drawing target primitives render onto. It follows the
// path model of canvas-style APIs: MoveTo/LineTo/ClosePath build the current
// path, EndFill paints its interior and EndStroke its outline.
//
// A nil colour means "paint nothing" for that operation.
type Surface interface {
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineStyle(style LineStyle)

	// DrawCircle appends a full circle to the current path.
	DrawCircle(x, y, r float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	EndFill() error
	EndStroke() error
}

// Flusher is implemented by surfaces that stroke an outline lazily, when
// the next shape starts. Scene.Render flushes after the last primitive.
type Flusher interface {
	Flush() error
}

// noSurface reports whether s is nil or a nil pointer behind the interface.
func noSurface(s Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
