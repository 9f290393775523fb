// painter3d - painter's algorithm 3D renderer
// Render built-in solids or glTF/GLB models to PNG, or spin them in the
// terminal.
//
// Viewer controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	X           - Cycle solid / outlined / edges
//	P           - Toggle perspective / orthographic
//	?           - Toggle HUD overlay
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/painter3d/internal/config"
	"github.com/taigrr/painter3d/pkg/scene"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "painter3d",
		Short: "Render 3D models with the painter's algorithm",
		Long: `painter3d projects polygons with a fixed pinhole or orthographic camera,
lights them with ambient and diffuse point lights and draws them back to
front.

Models are built-in solids (` + builtinList() + `) or .glb/.gltf files.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.Default().LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(opts), newViewCmd(opts), newModelsCmd())
	return root
}

// resolve builds the effective configuration: defaults, then the config
// file, then flags the user actually set. It also installs the logger.
func (o *rootOptions) resolve(cmd *cobra.Command, flags *config.Config) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
	}
	overlayFlags(cmd, &cfg, flags)
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg config.Config) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	scene.SetLogger(logger)
}
