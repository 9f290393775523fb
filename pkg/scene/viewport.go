package scene

import "math"

// Viewport maps projected coordinates to surface pixels: x' = x*Scale + OffsetX.
// Both projections place the visible window at a half-width of one unit,
// centred on the origin for orthographic and on (CubeSize, CubeSize) for
// perspective.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity returns a viewport that leaves coordinates unchanged.
func Identity() Viewport {
	return Viewport{Scale: 1}
}

// FitViewport returns the viewport that fits pr's window into a width x
// height surface, leaving margin (a fraction in [0, 1)) of the shorter side
// empty.
func FitViewport(pr Projection, width, height int, margin float64) Viewport {
	margin = clamp(margin, 0, 0.95)
	half := math.Min(float64(width), float64(height)) / 2 * (1 - margin)
	var cx, cy float64
	if pr.Mode == Perspective {
		cx, cy = pr.CubeSize, pr.CubeSize
	}
	return Viewport{
		Scale:   half,
		OffsetX: float64(width)/2 - cx*half,
		OffsetY: float64(height)/2 - cy*half,
	}
}

// Apply maps a projected point to surface coordinates.
func (v Viewport) Apply(x, y float64) (float64, float64) {
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}

// LineWidth returns the stroke width in surface units.
func (v Viewport) LineWidth(style LineStyle) float64 {
	if style.IgnoreScale {
		return style.Width
	}
	return style.Width * v.Scale
}
