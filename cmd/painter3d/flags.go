package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/painter3d/internal/config"
)

// addConfigFlags binds the configuration fields a command can override.
// Defaults are shown from config.Default; only flags the user sets are
// applied over the config file.
func addConfigFlags(cmd *cobra.Command, cfg *config.Config) {
	*cfg = config.Default()
	f := cmd.Flags()
	f.IntVar(&cfg.Width, "width", cfg.Width, "output width in pixels")
	f.IntVar(&cfg.Height, "height", cfg.Height, "output height in pixels")
	f.StringVarP(&cfg.Projection, "projection", "p", cfg.Projection, "camera: perspective or orthographic")
	f.Float64Var(&cfg.CubeSize, "cube-size", cfg.CubeSize, "half-width of the view volume")
	f.Float64Var(&cfg.FocalLength, "focal-length", cfg.FocalLength, "pinhole distance for perspective")
	f.StringVar(&cfg.Background, "background", cfg.Background, "background colour (#rrggbb)")
	f.StringVar(&cfg.Fill, "fill", cfg.Fill, "fill for faces without a material (#rrggbb)")
	f.StringVar(&cfg.Stroke, "stroke", cfg.Stroke, "outline colour (#rrggbb)")
	f.BoolVarP(&cfg.Wireframe, "wireframe", "w", cfg.Wireframe, "outline faces with the stroke colour")
	f.Float64Var(&cfg.Diffuse, "diffuse", cfg.Diffuse, "diffuse reflectance")
	f.Float64Var(&cfg.Ambient, "ambient", cfg.Ambient, "ambient reflectance")
	f.Float64Var(&cfg.Rotate.X, "rotate-x", cfg.Rotate.X, "initial rotation about X in degrees")
	f.Float64Var(&cfg.Rotate.Y, "rotate-y", cfg.Rotate.Y, "initial rotation about Y in degrees")
	f.Float64Var(&cfg.Rotate.Z, "rotate-z", cfg.Rotate.Z, "initial rotation about Z in degrees")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "target frames per second (view)")
}

// overlayFlags copies every flag the user set from src into dst.
func overlayFlags(cmd *cobra.Command, dst, src *config.Config) {
	if src == nil {
		return
	}
	apply := map[string]func(){
		"width":        func() { dst.Width = src.Width },
		"height":       func() { dst.Height = src.Height },
		"projection":   func() { dst.Projection = src.Projection },
		"cube-size":    func() { dst.CubeSize = src.CubeSize },
		"focal-length": func() { dst.FocalLength = src.FocalLength },
		"background":   func() { dst.Background = src.Background },
		"fill":         func() { dst.Fill = src.Fill },
		"stroke":       func() { dst.Stroke = src.Stroke },
		"wireframe":    func() { dst.Wireframe = src.Wireframe },
		"diffuse":      func() { dst.Diffuse = src.Diffuse },
		"ambient":      func() { dst.Ambient = src.Ambient },
		"rotate-x":     func() { dst.Rotate.X = src.Rotate.X },
		"rotate-y":     func() { dst.Rotate.Y = src.Rotate.Y },
		"rotate-z":     func() { dst.Rotate.Z = src.Rotate.Z },
		"fps":          func() { dst.FPS = src.FPS },
	}
	for name, fn := range apply {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			fn()
		}
	}
}
