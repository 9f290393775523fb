package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter3d/pkg/math3d"
)

func TestParseProjectionMode(t *testing.T) {
	for in, want := range map[string]ProjectionMode{
		"perspective":  Perspective,
		"Orthographic": Orthographic,
		"ortho":        Orthographic,
	} {
		got, err := ParseProjectionMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseProjectionMode("fisheye")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProjectionValidate(t *testing.T) {
	tests := []struct {
		name string
		pr   Projection
		ok   bool
	}{
		{"perspective", Projection{Mode: Perspective, CubeSize: 100, FocalLength: 300}, true},
		{"orthographic", Projection{Mode: Orthographic, CubeSize: 10}, true},
		{"zero cube", Projection{Mode: Orthographic}, false},
		{"zero focal", Projection{Mode: Perspective, CubeSize: 10}, false},
		{"negative focal", Projection{Mode: Perspective, CubeSize: 10, FocalLength: -1}, false},
		{"unknown mode", Projection{Mode: ProjectionMode(9), CubeSize: 10}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pr.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestProjectionApply(t *testing.T) {
	poly := mustPolygon(t, []math3d.Vec3{
		math3d.V3(20, 30, 5), math3d.V3(10, 0, 5), math3d.V3(0, 10, 5),
	}, nil)
	Projection{Mode: Orthographic, CubeSize: 10}.Apply(poly)
	assert.Equal(t, math3d.V3(2, 3, 5), poly.Vertices[0].Pos)
	assert.Equal(t, math3d.V3(1, 0, 5), poly.Vertices[1].Pos)

	p := NewPoint(0, 0, 0, 1, nil, DefaultLineStyle(), nil, "")
	Projection{Mode: Perspective, CubeSize: 50, FocalLength: 100}.Apply(p)
	assert.Equal(t, math3d.V3(50, 50, 50), p.Pos)
}
