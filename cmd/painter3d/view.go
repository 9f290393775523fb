package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/painter3d/internal/config"
	"github.com/taigrr/painter3d/pkg/models"
	"github.com/taigrr/painter3d/pkg/render"
	"github.com/taigrr/painter3d/pkg/scene"
)

const (
	torqueStrength = 3.0
	zoomStep       = 1.1
	minZoom        = 0.2
	maxZoom        = 5.0
	// viewMargin leaves room for the HUD rows.
	viewMargin = 0.08
)

func newViewCmd(root *rootOptions) *cobra.Command {
	var flags config.Config
	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Spin a model in the terminal",
		Long: `Open an interactive terminal viewer. Each cell shows two pixels with an
upper half block.

Controls: drag or W/A/S/D/arrows to rotate, Q/E to roll, space for a
random spin, +/- or scroll to zoom, R to reset, X to cycle solid,
outlined and edge drawing, P to switch projection, ? to toggle the HUD,
Esc to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			model := "cube"
			if len(args) > 0 {
				model = args[0]
			}
			return runView(cmd.Context(), cfg, model)
		},
	}
	addConfigFlags(cmd, &flags)
	return cmd
}

// viewer holds the interactive state. It is driven from a single goroutine.
type viewer struct {
	cfg  config.Config
	pr   scene.Projection
	mesh *models.Mesh
	mode drawMode
	base *scene.Scene

	rot    *RotationState
	torque struct{ pitch, yaw, roll float64 }
	zoom   float64

	mouseDown    bool
	lastX, lastY int

	hud     *HUD
	showHUD bool

	cols, rows int
	fb         *render.Framebuffer
	canvas     *render.Canvas
}

func newViewer(cfg config.Config, mesh *models.Mesh) (*viewer, error) {
	pr, err := cfg.ProjectionSettings()
	if err != nil {
		return nil, err
	}
	v := &viewer{
		cfg:     cfg,
		pr:      pr,
		mesh:    mesh,
		rot:     NewRotationState(cfg.FPS),
		zoom:    1,
		hud:     NewHUD(mesh.Name, mesh.FaceCount()),
		showHUD: true,
		fb:      render.NewFramebuffer(1, 1),
	}
	v.canvas = render.NewCanvas(v.fb)
	if cfg.Wireframe {
		v.mode = modeOutline
	}
	if err := v.rebuild(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) rebuild() error {
	base, err := buildScene(v.mesh, v.cfg, v.mode)
	if err != nil {
		return err
	}
	v.base = base
	return nil
}

// resize fits the framebuffer to a cols x rows terminal.
func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	w, h := render.TerminalSize(cols, rows)
	v.fb.Resize(w, h)
	v.canvas.SetViewport(scene.FitViewport(v.pr, w, h, viewMargin))
}

func (v *viewer) reset() {
	v.rot.Reset()
	v.zoom = 1
	v.torque.pitch, v.torque.yaw, v.torque.roll = 0, 0, 0
}

// handle applies one input event. It reports whether the viewer should
// quit.
func (v *viewer) handle(ev uv.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true, nil
		case ev.MatchString("w", "up"):
			v.torque.pitch = -torqueStrength
		case ev.MatchString("s", "down"):
			v.torque.pitch = torqueStrength
		case ev.MatchString("a", "left"):
			v.torque.yaw = -torqueStrength
		case ev.MatchString("d", "right"):
			v.torque.yaw = torqueStrength
		case ev.MatchString("q"):
			v.torque.roll = -torqueStrength
		case ev.MatchString("e"):
			v.torque.roll = torqueStrength
		case ev.MatchString("space"):
			v.rot.ApplyImpulse(
				(rand.Float64()-0.5)*1.5,
				(rand.Float64()-0.5)*1.5,
				(rand.Float64()-0.5)*1.5,
			)
		case ev.MatchString("r"):
			v.reset()
		case ev.MatchString("+", "="):
			v.setZoom(v.zoom * zoomStep)
		case ev.MatchString("-", "_"):
			v.setZoom(v.zoom / zoomStep)
		case ev.MatchString("x"):
			v.mode = v.mode.next()
			return false, v.rebuild()
		case ev.MatchString("p"):
			v.toggleProjection()
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w", "up", "s", "down"):
			v.torque.pitch = 0
		case ev.MatchString("a", "left", "d", "right"):
			v.torque.yaw = 0
		case ev.MatchString("q", "e"):
			v.torque.roll = 0
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx, dy := ev.X-v.lastX, ev.Y-v.lastY
			v.rot.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.setZoom(v.zoom * zoomStep)
		case uv.MouseWheelDown:
			v.setZoom(v.zoom / zoomStep)
		}
	}
	return false, nil
}

func (v *viewer) setZoom(z float64) {
	v.zoom = math.Min(math.Max(z, minZoom), maxZoom)
}

func (v *viewer) toggleProjection() {
	if v.pr.Mode == scene.Perspective {
		v.pr.Mode = scene.Orthographic
	} else {
		v.pr.Mode = scene.Perspective
	}
	v.resize(v.cols, v.rows)
}

// step advances the animation by dt seconds and draws one frame into the
// framebuffer.
func (v *viewer) step(ctx context.Context, dt float64) error {
	v.rot.ApplyImpulse(v.torque.pitch*dt, v.torque.yaw*dt, v.torque.roll*dt)
	// Key release events are not reported by every terminal.
	v.torque.pitch *= 0.9
	v.torque.yaw *= 0.9
	v.torque.roll *= 0.9
	v.rot.Update()

	frame, err := orient(ctx, v.base, v.rot.Orientation(degrees(v.cfg.Rotate)), v.zoom)
	if err != nil {
		return err
	}
	v.fb.Clear(v.cfg.BackgroundColor())
	if err := frame.Draw(v.canvas, v.pr); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	v.hud.Tick(time.Now(), frame.Stats())
	return nil
}

// Draw implements uv.Drawable.
func (v *viewer) Draw(scr uv.Screen, area uv.Rectangle) {
	v.fb.Draw(scr, area)
	if v.showHUD {
		v.hud.Draw(scr, area, v.mode, v.pr.Mode)
	}
}

func runView(ctx context.Context, cfg config.Config, model string) error {
	mesh, err := loadMesh(model)
	if err != nil {
		return err
	}
	v, err := newViewer(cfg, mesh)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.resize(width, height)

	// Any-event mouse tracking with SGR coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			if ev, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				v.resize(ev.Width, ev.Height)
				continue
			}
			quit, err := v.handle(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case now := <-ticker.C:
			dt := math.Min(now.Sub(last).Seconds(), 0.1)
			last = now
			if err := v.step(ctx, dt); err != nil {
				return err
			}
			v.Draw(term, uv.Rect(0, 0, v.cols, v.rows))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
