package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter3d/pkg/math3d"
)

func TestParseAttribKey(t *testing.T) {
	tests := []struct {
		in   string
		want AttribKey
	}{
		{"diffuse-reflectance", AttribDiffuse},
		{"ambient-reflectance", AttribAmbient},
		{"lights", AttribLights},
		{"wireframe", AttribWireframe},
	}
	for _, tc := range tests {
		got, err := ParseAttribKey(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.in, got.String())
	}

	_, err := ParseAttribKey("specular")
	assert.ErrorIs(t, err, ErrUnknownAttrib)
}

func TestSetAttrib(t *testing.T) {
	p := mustPolygon(t, frontSquare(), nil)
	l := mustLight(t, LightDiffuse, 1, 1, 1, 1, math3d.Zero3())
	lights := []*LightSource{l}

	require.NoError(t, p.SetAttrib(AttribDiffuse, 0.25))
	require.NoError(t, p.SetAttrib(AttribAmbient, 2))
	require.NoError(t, p.SetAttrib(AttribLights, lights))
	require.NoError(t, p.SetAttrib(AttribWireframe, true))

	assert.Equal(t, 0.25, p.Attribs.DiffuseReflectance)
	assert.Equal(t, 2.0, p.Attribs.AmbientReflectance)
	assert.True(t, p.Attribs.Wireframe)

	lights[0] = nil
	assert.Same(t, l, p.Lights()[0], "light list is copied")
}

func TestSetAttribErrors(t *testing.T) {
	p := mustPolygon(t, frontSquare(), nil)

	assert.ErrorIs(t, p.SetAttrib(AttribKey(42), 1.0), ErrUnknownAttrib)
	assert.ErrorIs(t, p.SetAttrib(AttribDiffuse, "bright"), ErrInvalidArgument)
	assert.ErrorIs(t, p.SetAttrib(AttribLights, "sun"), ErrInvalidArgument)
	assert.ErrorIs(t, p.SetAttrib(AttribWireframe, 1), ErrInvalidArgument)
	assert.Equal(t, DefaultAttribs(), p.Attribs)
}

func TestNewPolygonAttribsCopied(t *testing.T) {
	l := mustLight(t, LightAmbient, 1, 1, 1, 1, math3d.Zero3())
	attrs := DefaultAttribs()
	attrs.Lights = []*LightSource{l}
	attrs.Wireframe = true

	p, err := NewPolygon(frontSquare(), nil, DefaultLineStyle(), nil, &attrs, "")
	require.NoError(t, err)

	attrs.Lights[0] = nil
	attrs.Wireframe = false
	assert.True(t, p.Attribs.Wireframe)
	assert.Same(t, l, p.Attribs.Lights[0])
}
