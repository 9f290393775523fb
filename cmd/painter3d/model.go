package main

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/painter3d/internal/config"
	"github.com/taigrr/painter3d/pkg/models"
	"github.com/taigrr/painter3d/pkg/scene"
)

// drawMode controls how a mesh becomes primitives.
type drawMode int

const (
	modeSolid   drawMode = iota // filled, outlined in the fill colour
	modeOutline                 // filled, outlined in the stroke colour
	modeEdges                   // unique edges only
)

func (m drawMode) String() string {
	switch m {
	case modeOutline:
		return "outline"
	case modeEdges:
		return "edges"
	}
	return "solid"
}

func (m drawMode) next() drawMode {
	return (m + 1) % 3
}

func builtinList() string {
	return strings.Join(models.BuiltinNames(), ", ")
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in solids",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range models.BuiltinNames() {
				m, _ := models.Builtin(name, 1)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d vertices, %d faces\n", name, m.VertexCount(), m.FaceCount())
			}
		},
	}
}

// loadMesh resolves a built-in solid name or a .glb/.gltf path.
func loadMesh(arg string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".glb", ".gltf":
		mesh, err := models.LoadGLB(arg)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil
	case "":
		mesh, err := models.Builtin(arg, 1)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil
	}
	return nil, fmt.Errorf("unsupported model %q (use a built-in name, .glb or .gltf)", arg)
}

// buildScene centres mesh in the view volume and turns it into primitives.
// Polygons get the configured lights; edges are drawn unlit.
func buildScene(mesh *models.Mesh, cfg config.Config, mode drawMode) (*scene.Scene, error) {
	mesh = mesh.Clone()
	mesh.Normalize(cfg.CubeSize)

	s := scene.New()
	style := scene.DefaultLineStyle()
	fill := cfg.FillColor()

	if mode == modeEdges {
		// Segments are strokes only, so keep them a device hairline.
		hairline := style
		hairline.IgnoreScale = true
		segs, err := mesh.Edges(fill.Color(), hairline)
		if err != nil {
			return nil, fmt.Errorf("build scene: %w", err)
		}
		for _, seg := range segs {
			if err := s.Add(seg); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	attrs := cfg.Attribs()
	attrs.Wireframe = mode == modeOutline
	polys, err := mesh.Polygons(models.PolygonOptions{
		Fill:    &fill,
		Stroke:  cfg.StrokeColor(),
		Style:   style,
		Attribs: attrs,
	})
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	for _, p := range polys {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}

	lights, err := cfg.Lights()
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	for _, l := range lights {
		if err := s.AddLight(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// orientation is a rotation in radians applied about X, then Y, then Z.
type orientation struct {
	X, Y, Z float64
}

func degrees(r config.Rotation) orientation {
	const k = math.Pi / 180
	return orientation{X: r.X * k, Y: r.Y * k, Z: r.Z * k}
}

// orient returns a rotated and scaled copy of base. The geometry of base is
// left untouched so every frame starts from the same pose.
func orient(ctx context.Context, base *scene.Scene, o orientation, zoom float64) (*scene.Scene, error) {
	s := base.Clone()
	err := s.TransformParallel(ctx, runtime.GOMAXPROCS(0), func(p scene.Primitive) error {
		for _, pt := range p.Points() {
			pt.RotateX(o.X).RotateY(o.Y).RotateZ(o.Z).Scale(zoom)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
