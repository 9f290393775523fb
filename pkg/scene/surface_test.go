package scene

import (
	"fmt"
	"image/color"
	"strings"
)

// recorder is a Surface that logs every call.
type recorder struct {
	calls     []string
	fillErr   error
	strokeErr error
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) SetStrokeColor(c color.Color) { r.add("stroke %v", c) }
func (r *recorder) SetFillColor(c color.Color)   { r.add("fill %v", c) }
func (r *recorder) SetLineStyle(s LineStyle)     { r.add("style %g %v", s.Width, s.IgnoreScale) }
func (r *recorder) DrawCircle(x, y, rad float64) { r.add("circle %g %g %g", x, y, rad) }
func (r *recorder) MoveTo(x, y float64)          { r.add("move %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)          { r.add("line %g %g", x, y) }
func (r *recorder) ClosePath()                   { r.add("close") }

func (r *recorder) EndFill() error {
	r.add("endfill")
	return r.fillErr
}

func (r *recorder) EndStroke() error {
	r.add("endstroke")
	return r.strokeErr
}

// ops returns the call names without arguments.
func (r *recorder) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i], _, _ = strings.Cut(c, " ")
	}
	return out
}
