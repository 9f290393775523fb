// Package config holds the render settings shared by the painter3d
// commands. Settings come from Default, are overlaid by an optional TOML
// file and finally by command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/painter3d/pkg/math3d"
	"github.com/taigrr/painter3d/pkg/scene"
)

// Config is the render configuration.
type Config struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Projection  string  `toml:"projection"`
	CubeSize    float64 `toml:"cube_size"`
	FocalLength float64 `toml:"focal_length"`

	Background string `toml:"background"`
	Fill       string `toml:"fill"`
	Stroke     string `toml:"stroke"`
	Wireframe  bool   `toml:"wireframe"`

	Diffuse      float64  `toml:"diffuse"`
	Ambient      float64  `toml:"ambient"`
	Light        Light    `toml:"light"`
	AmbientLight string   `toml:"ambient_light"`
	Rotate       Rotation `toml:"rotate"`

	FPS      int    `toml:"fps"`
	LogLevel string `toml:"log_level"`
}

// Light is a diffuse point light in engine coordinates (y down, viewer on
// the -z side). An empty intensity disables it.
type Light struct {
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Z         float64 `toml:"z"`
	Intensity string  `toml:"intensity"`
}

// Rotation is an initial orientation in degrees, applied X then Y then Z.
type Rotation struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:       800,
		Height:      800,
		Projection:  "perspective",
		CubeSize:    10,
		FocalLength: 40,
		Background:  "#1e1e28",
		Fill:        "#c8c8c8",
		Stroke:      "#000000",
		Diffuse:     1,
		Ambient:     1,
		Light: Light{
			X:         -15,
			Y:         -20,
			Z:         -30,
			Intensity: "#ffffff",
		},
		AmbientLight: "#404040",
		Rotate:       Rotation{X: -25, Y: 35},
		FPS:          30,
		LogLevel:     "info",
	}
}

// Load reads a TOML file over Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, len(strict.Errors))
			for i, e := range strict.Errors {
				keys[i] = strings.Join(e.Key(), ".")
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if _, err := c.ProjectionSettings(); err != nil {
		errs = append(errs, err)
	}
	colors := []struct {
		name, value string
		optional    bool
	}{
		{"background", c.Background, false},
		{"fill", c.Fill, false},
		{"stroke", c.Stroke, false},
		{"light.intensity", c.Light.Intensity, true},
		{"ambient_light", c.AmbientLight, true},
	}
	for _, col := range colors {
		if col.optional && col.value == "" {
			continue
		}
		if _, err := parseColor(col.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", col.name, err))
		}
	}
	if c.Diffuse < 0 || c.Ambient < 0 {
		errs = append(errs, fmt.Errorf("reflectance must not be negative (diffuse %g, ambient %g)", c.Diffuse, c.Ambient))
	}
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range 1-240", c.FPS))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ProjectionSettings returns the camera described by the configuration.
func (c Config) ProjectionSettings() (scene.Projection, error) {
	mode, err := scene.ParseProjectionMode(c.Projection)
	if err != nil {
		return scene.Projection{}, err
	}
	pr := scene.Projection{Mode: mode, CubeSize: c.CubeSize, FocalLength: c.FocalLength}
	if err := pr.Validate(); err != nil {
		return scene.Projection{}, err
	}
	return pr, nil
}

// BackgroundColor returns the parsed background colour.
func (c Config) BackgroundColor() color.NRGBA {
	return mustColor(c.Background)
}

// StrokeColor returns the parsed outline colour.
func (c Config) StrokeColor() color.NRGBA {
	return mustColor(c.Stroke)
}

// FillColor returns the default polygon fill.
func (c Config) FillColor() scene.RGBA {
	f, err := scene.ParseHex(c.Fill)
	if err != nil {
		return scene.NewRGBA(200, 200, 200, 1)
	}
	return f
}

// Attribs returns the polygon lighting attributes.
func (c Config) Attribs() scene.Attribs {
	a := scene.DefaultAttribs()
	a.DiffuseReflectance = c.Diffuse
	a.AmbientReflectance = c.Ambient
	a.Wireframe = c.Wireframe
	return a
}

// Lights builds the configured light sources. Lights with an empty
// intensity are left out.
func (c Config) Lights() ([]*scene.LightSource, error) {
	var lights []*scene.LightSource
	if c.Light.Intensity != "" {
		l, err := newLight(scene.LightDiffuse, c.Light.Intensity, math3d.V3(c.Light.X, c.Light.Y, c.Light.Z))
		if err != nil {
			return nil, fmt.Errorf("light: %w", err)
		}
		lights = append(lights, l)
	}
	if c.AmbientLight != "" {
		l, err := newLight(scene.LightAmbient, c.AmbientLight, math3d.Zero3())
		if err != nil {
			return nil, fmt.Errorf("ambient light: %w", err)
		}
		lights = append(lights, l)
	}
	return lights, nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

func newLight(typ scene.LightType, hex string, pos math3d.Vec3) (*scene.LightSource, error) {
	c, err := parseColor(hex)
	if err != nil {
		return nil, err
	}
	return scene.NewLightSource(typ, c.R, c.G, c.B, 1, pos)
}

func parseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}

// mustColor is only called on validated configurations; invalid input
// falls back to opaque black.
func mustColor(s string) color.NRGBA {
	c, err := parseColor(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
