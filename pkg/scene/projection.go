package scene

import (
	"fmt"
	"strings"
)

// ProjectionMode selects the camera model.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("ProjectionMode(%d)", int(m))
}

// ParseProjectionMode accepts "perspective", "orthographic" and "ortho".
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "persp":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return 0, fmt.Errorf("projection %q: %w", s, ErrInvalidArgument)
}

// Projection is a fixed camera. CubeSize is the half-width of the device
// window and FocalLength the pinhole distance used in perspective mode.
type Projection struct {
	Mode        ProjectionMode
	CubeSize    float64
	FocalLength float64
}

// Validate checks the camera parameters. It cannot detect geometry sitting
// on the focal plane; such points project to infinity.
func (pr Projection) Validate() error {
	if pr.CubeSize == 0 {
		return fmt.Errorf("projection: %w: cube size must be nonzero", ErrInvalidArgument)
	}
	switch pr.Mode {
	case Perspective:
		if !(pr.FocalLength > 0) {
			return fmt.Errorf("projection: %w: focal length must be positive, got %g", ErrInvalidArgument, pr.FocalLength)
		}
	case Orthographic:
	default:
		return fmt.Errorf("projection: %w: mode %s", ErrInvalidArgument, pr.Mode)
	}
	return nil
}

// Apply projects every point owned by prim in place.
func (pr Projection) Apply(prim Primitive) {
	for _, pt := range prim.Points() {
		if pr.Mode == Orthographic {
			pt.Ortho(pr.CubeSize)
		} else {
			pt.Perspective(pr.CubeSize, pr.FocalLength)
		}
	}
}
