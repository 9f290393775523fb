package config

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter3d/pkg/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "painter3d.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	pr, err := cfg.ProjectionSettings()
	require.NoError(t, err)
	assert.Equal(t, scene.Perspective, pr.Mode)
	assert.Equal(t, 10.0, pr.CubeSize)
	assert.Equal(t, 40.0, pr.FocalLength)

	lights, err := cfg.Lights()
	require.NoError(t, err)
	require.Len(t, lights, 2)
	assert.Equal(t, scene.LightDiffuse, lights[0].Type)
	assert.Equal(t, scene.LightAmbient, lights[1].Type)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 320
projection = "ortho"
fill = "#ff8000"
wireframe = true
diffuse = 0.5

[light]
x = 1
y = 2
z = 3
intensity = "#808080"

[rotate]
y = 90
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, Default().Height, cfg.Height, "unset keys keep their default")
	assert.Equal(t, Rotation{X: Default().Rotate.X, Y: 90}, cfg.Rotate, "tables overlay key by key")

	pr, err := cfg.ProjectionSettings()
	require.NoError(t, err)
	assert.Equal(t, scene.Orthographic, pr.Mode)

	fill := cfg.FillColor()
	assert.InDelta(t, 255, fill.R, 1e-9)
	assert.InDelta(t, 128, fill.G, 1e-9)
	assert.InDelta(t, 0, fill.B, 1e-9)

	attrs := cfg.Attribs()
	assert.True(t, attrs.Wireframe)
	assert.Equal(t, 0.5, attrs.DiffuseReflectance)
	assert.Equal(t, 1.0, attrs.AmbientReflectance)

	lights, err := cfg.Lights()
	require.NoError(t, err)
	require.NotEmpty(t, lights)
	l := lights[0]
	assert.Equal(t, 1.0, l.Pos.X)
	assert.Equal(t, 3.0, l.Pos.Z)
	assert.InDelta(t, 128.0/255, l.Intensity.R, 1e-9)
	assert.Equal(t, 1.0, l.Intensity.A)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "widht = 100\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "size"},
		{"bad projection", func(c *Config) { c.Projection = "fisheye" }, "fisheye"},
		{"zero cube", func(c *Config) { c.CubeSize = 0 }, "cube size"},
		{"negative focal", func(c *Config) { c.FocalLength = -1 }, "focal length"},
		{"bad background", func(c *Config) { c.Background = "blue" }, "background"},
		{"bad light", func(c *Config) { c.Light.Intensity = "#12" }, "light.intensity"},
		{"negative diffuse", func(c *Config) { c.Diffuse = -1 }, "reflectance"},
		{"fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOrthographicIgnoresFocalLength(t *testing.T) {
	cfg := Default()
	cfg.Projection = "orthographic"
	cfg.FocalLength = 0
	assert.NoError(t, cfg.Validate())
}

func TestLightsDisabled(t *testing.T) {
	cfg := Default()
	cfg.Light.Intensity = ""
	cfg.AmbientLight = ""
	require.NoError(t, cfg.Validate())

	lights, err := cfg.Lights()
	require.NoError(t, err)
	assert.Empty(t, lights)
}

func TestColors(t *testing.T) {
	cfg := Default()
	cfg.Background = "#102030"
	cfg.Stroke = "#fff"

	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, cfg.BackgroundColor())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cfg.StrokeColor())
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.LogLevel = in
		got, err := cfg.SlogLevel()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
