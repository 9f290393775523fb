package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taigrr/painter3d/pkg/math3d"
)

// LightType selects how a light contributes to a polygon's fill.
type LightType int

const (
	// LightDiffuse is a point light whose contribution follows Lambert's
	// cosine law.
	LightDiffuse LightType = iota
	// LightAmbient is a uniform light independent of position and normal.
	LightAmbient
)

func (t LightType) String() string {
	switch t {
	case LightDiffuse:
		return "DIFFUSE"
	case LightAmbient:
		return "AMBIENT"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// ParseLightType maps a textual tag to a LightType. The empty tag means
// DIFFUSE.
func ParseLightType(s string) (LightType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DIFFUSE":
		return LightDiffuse, nil
	case "AMBIENT":
		return LightAmbient, nil
	}
	return 0, fmt.Errorf("light type %q: %w", s, ErrInvalidArgument)
}

// LightSource is shared by reference between every polygon that lists it.
// Changing its position or intensity takes effect on each polygon's next
// ApplyLights. Mutation must not race with lighting.
type LightSource struct {
	ID        uuid.UUID
	Pos       math3d.Vec3
	Intensity RGBA // every channel in [0, 1]
	Type      LightType
}

// NewLightSource creates a light with the given per-channel intensity.
// Channels are clamped to [0, 1].
func NewLightSource(typ LightType, r, g, b, a float64, pos math3d.Vec3) (*LightSource, error) {
	if typ != LightDiffuse && typ != LightAmbient {
		return nil, fmt.Errorf("new light: %w: type %d", ErrInvalidArgument, int(typ))
	}
	l := &LightSource{
		ID:   uuid.New(),
		Pos:  pos,
		Type: typ,
	}
	l.SetIntensity(r, g, b, a)
	return l, nil
}

// SetPosition moves the light.
func (l *LightSource) SetPosition(pos math3d.Vec3) {
	l.Pos = pos
}

// SetIntensity replaces the per-channel intensity, clamped to [0, 1].
func (l *LightSource) SetIntensity(r, g, b, a float64) {
	l.Intensity = RGBA{
		R: clamp(r, 0, 1),
		G: clamp(g, 0, 1),
		B: clamp(b, 0, 1),
		A: clamp(a, 0, 1),
	}
}

func (l *LightSource) String() string {
	return fmt.Sprintf("%s light %s at %v", l.Type, l.ID, l.Pos)
}
