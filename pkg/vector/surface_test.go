package vector

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter3d/pkg/math3d"
	"github.com/taigrr/painter3d/pkg/scene"
)

func nrgbaAt(t *testing.T, s *Surface, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(s.Image().At(x, y)).(color.NRGBA)
}

func square(t *testing.T, fill scene.RGBA, wire bool) *scene.Polygon {
	t.Helper()
	attrs := scene.DefaultAttribs()
	attrs.Wireframe = wire
	style := scene.DefaultLineStyle()
	style.Width = 6
	p, err := scene.NewPolygon([]math3d.Vec3{
		math3d.V3(-1, -1, 0),
		math3d.V3(-1, 1, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(1, -1, 0),
	}, color.NRGBA{B: 255, A: 255}, style, &fill, &attrs, "square")
	require.NoError(t, err)
	return p
}

func TestSurfaceFillsPolygon(t *testing.T) {
	s := NewSurface(64, 64, color.White)
	defer s.Close()

	pr := scene.Projection{Mode: scene.Orthographic, CubeSize: 2}
	s.SetViewport(scene.FitViewport(pr, 64, 64, 0))

	sc := scene.New()
	require.NoError(t, sc.Add(square(t, scene.RGBA{R: 255, A: 1}, false)))
	require.NoError(t, sc.Draw(s, pr))

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(t, s, 32, 32))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nrgbaAt(t, s, 2, 2))
}

func TestSurfaceWireframeOutline(t *testing.T) {
	s := NewSurface(64, 64, nil)
	defer s.Close()

	pr := scene.Projection{Mode: scene.Orthographic, CubeSize: 2}
	s.SetViewport(scene.FitViewport(pr, 64, 64, 0))

	sc := scene.New()
	require.NoError(t, sc.Add(square(t, scene.RGBA{R: 255, A: 1}, true)))
	require.NoError(t, sc.Draw(s, pr))

	// The square spans pixels 16..48; its 6px outline is centred on x=16.
	edge := nrgbaAt(t, s, 16, 32)
	assert.Equal(t, uint8(255), edge.B, "outline uses the stroke colour")
	assert.Zero(t, edge.R)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(t, s, 32, 32))
	assert.Zero(t, nrgbaAt(t, s, 2, 2).A, "background stays transparent")
}

func TestSurfacePointPendingStroke(t *testing.T) {
	s := NewSurface(40, 40, nil)
	defer s.Close()

	style := scene.DefaultLineStyle()
	style.Width = 4
	p := scene.NewPoint(20, 20, 0, 10, color.NRGBA{G: 255, A: 255}, style, color.NRGBA{R: 255, A: 255}, "dot")
	require.NoError(t, p.Render(s))
	assert.Zero(t, nrgbaAt(t, s, 30, 20).G, "outline waits for the next shape")

	require.NoError(t, s.Flush())
	assert.Equal(t, uint8(255), nrgbaAt(t, s, 30, 20).G)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(t, s, 20, 20))
}

func TestSurfaceEncodePNG(t *testing.T) {
	s := NewSurface(8, 4, color.Black)
	defer s.Close()

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestToRGBAStraightAlpha(t *testing.T) {
	got := toRGBA(color.NRGBA{R: 255, A: 51})
	assert.InDelta(t, 1.0, got.R, 1e-9)
	assert.InDelta(t, 0.2, got.A, 1e-9)
	assert.False(t, visible(nil))
	assert.False(t, visible(color.NRGBA{R: 255}))
}
