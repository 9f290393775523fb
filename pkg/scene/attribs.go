package scene

import (
	"fmt"
	"slices"
)

// AttribKey names a settable polygon attribute.
type AttribKey int

const (
	AttribDiffuse AttribKey = iota
	AttribAmbient
	AttribLights
	AttribWireframe
)

var attribNames = map[AttribKey]string{
	AttribDiffuse:   "diffuse-reflectance",
	AttribAmbient:   "ambient-reflectance",
	AttribLights:    "lights",
	AttribWireframe: "wireframe",
}

func (k AttribKey) String() string {
	if s, ok := attribNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AttribKey(%d)", int(k))
}

// ParseAttribKey maps an attribute name such as "diffuse-reflectance" to its
// key.
func ParseAttribKey(s string) (AttribKey, error) {
	for k, name := range attribNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("attribute %q: %w", s, ErrUnknownAttrib)
}

// Attribs are the lighting and outline settings of a polygon.
type Attribs struct {
	DiffuseReflectance float64
	AmbientReflectance float64
	Lights             []*LightSource
	Wireframe          bool
}

// DefaultAttribs returns full reflectance, no lights and a fill-coloured
// outline.
func DefaultAttribs() Attribs {
	return Attribs{DiffuseReflectance: 1, AmbientReflectance: 1}
}

// clone copies the light list. The lights themselves stay shared.
func (a Attribs) clone() Attribs {
	a.Lights = slices.Clone(a.Lights)
	return a
}

// SetAttrib sets one attribute by key. Reflectances accept float64 or int,
// lights accept []*LightSource (copied) and wireframe accepts bool.
func (p *Polygon) SetAttrib(key AttribKey, value any) error {
	switch key {
	case AttribDiffuse, AttribAmbient:
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		default:
			return fmt.Errorf("attribute %s: %w: want number, got %T", key, ErrInvalidArgument, value)
		}
		if key == AttribDiffuse {
			p.Attribs.DiffuseReflectance = f
		} else {
			p.Attribs.AmbientReflectance = f
		}
	case AttribLights:
		lights, ok := value.([]*LightSource)
		if !ok {
			return fmt.Errorf("attribute %s: %w: want []*LightSource, got %T", key, ErrInvalidArgument, value)
		}
		p.Attribs.Lights = slices.Clone(lights)
	case AttribWireframe:
		w, ok := value.(bool)
		if !ok {
			return fmt.Errorf("attribute %s: %w: want bool, got %T", key, ErrInvalidArgument, value)
		}
		p.Attribs.Wireframe = w
	default:
		return fmt.Errorf("attribute %s: %w", key, ErrUnknownAttrib)
	}
	return nil
}
