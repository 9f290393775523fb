package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/painter3d/internal/config"
	"github.com/taigrr/painter3d/pkg/render"
	"github.com/taigrr/painter3d/pkg/scene"
	"github.com/taigrr/painter3d/pkg/vector"
)

// imageMargin is the fraction of the shorter image side left around the
// view window.
const imageMargin = 0.1

type renderOptions struct {
	output string
	raster bool
	edges  bool
	flags  config.Config
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render a model to a PNG image",
		Long: `Render a built-in solid or a .glb/.gltf file to PNG.

The default output is anti-aliased vector rendering. --raster uses the
software scanline rasterizer that also drives the terminal viewer.`,
		Example: `  painter3d render cube -o cube.png
  painter3d render octahedron --projection ortho --wireframe
  painter3d render model.glb --rotate-y 45 --raster`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolve(cmd, &opts.flags)
			if err != nil {
				return err
			}
			model := "cube"
			if len(args) > 0 {
				model = args[0]
			}
			return runRender(cmd.Context(), cfg, model, opts)
		},
	}
	addConfigFlags(cmd, &opts.flags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "painter3d.png", "output PNG path")
	cmd.Flags().BoolVar(&opts.raster, "raster", false, "use the software rasterizer")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "draw mesh edges only")
	return cmd
}

func runRender(ctx context.Context, cfg config.Config, model string, opts *renderOptions) error {
	mesh, err := loadMesh(model)
	if err != nil {
		return err
	}
	pr, err := cfg.ProjectionSettings()
	if err != nil {
		return err
	}

	mode := modeSolid
	switch {
	case opts.edges:
		mode = modeEdges
	case cfg.Wireframe:
		mode = modeOutline
	}
	base, err := buildScene(mesh, cfg, mode)
	if err != nil {
		return err
	}
	frame, err := orient(ctx, base, degrees(cfg.Rotate), 1)
	if err != nil {
		return err
	}

	stats, err := renderPNG(frame, cfg, pr, opts.raster, opts.output)
	if err != nil {
		return err
	}
	slog.Info("rendered",
		"model", mesh.Name,
		"output", opts.output,
		"projection", pr.Mode,
		"drawn", stats.Drawn,
		"culled", stats.Culled,
	)
	return nil
}

// renderPNG draws s on the selected surface and writes the image to path.
func renderPNG(s *scene.Scene, cfg config.Config, pr scene.Projection, raster bool, path string) (scene.Stats, error) {
	view := scene.FitViewport(pr, cfg.Width, cfg.Height, imageMargin)

	if raster {
		fb := render.NewFramebuffer(cfg.Width, cfg.Height)
		fb.Clear(cfg.BackgroundColor())
		canvas := render.NewCanvas(fb)
		canvas.SetViewport(view)
		if err := s.Draw(canvas, pr); err != nil {
			return s.Stats(), fmt.Errorf("draw: %w", err)
		}
		return s.Stats(), fb.SavePNG(path)
	}

	surf := vector.NewSurface(cfg.Width, cfg.Height, cfg.BackgroundColor())
	defer surf.Close()
	surf.SetViewport(view)
	if err := s.Draw(surf, pr); err != nil {
		return s.Stats(), fmt.Errorf("draw: %w", err)
	}
	return s.Stats(), surf.SavePNG(path)
}
