package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/painter3d/pkg/scene"
)

var (
	hudBar   = lipgloss.NewStyle().Background(lipgloss.Color("#101014")).Foreground(lipgloss.Color("#e4e4e4"))
	hudFPS   = hudBar.Foreground(lipgloss.Color("#5fff87")).Padding(0, 1)
	hudTitle = hudBar.Bold(true).Padding(0, 1)
	hudCount = hudBar.Foreground(lipgloss.Color("#5fd7ff")).Padding(0, 1)
	hudHint  = hudBar.Foreground(lipgloss.Color("#ffd75f")).Faint(true).Padding(0, 1)
)

// HUD is the viewer's status overlay: frame rate, model and draw counts on
// the top row, mode toggles on the bottom row.
type HUD struct {
	name  string
	faces int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
	stats     scene.Stats
}

func NewHUD(name string, faces int) *HUD {
	return &HUD{name: name, faces: faces, fpsTime: time.Now()}
}

// Tick records one frame.
func (h *HUD) Tick(now time.Time, st scene.Stats) {
	h.stats = st
	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Lines renders the two HUD rows for a terminal width columns wide.
func (h *HUD) Lines(width int, mode drawMode, pr scene.ProjectionMode) (top, bottom string) {
	fps := hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps))
	title := hudTitle.Render(h.name)
	count := hudCount.Render(fmt.Sprintf("%d/%d faces", h.stats.Drawn, h.faces))
	gap := max(width-lipgloss.Width(fps)-lipgloss.Width(title)-lipgloss.Width(count), 0)
	left := gap / 2
	top = lipgloss.JoinHorizontal(lipgloss.Top,
		fps,
		hudBar.Width(left).Render(""),
		title,
		hudBar.Width(gap-left).Render(""),
		count,
	)

	status := hudBar.Padding(0, 1).Render(fmt.Sprintf("[x] %s  [p] %s", mode, pr))
	hint := hudHint.Render("? hide  esc quit")
	pad := max(width-lipgloss.Width(status)-lipgloss.Width(hint), 0)
	bottom = lipgloss.JoinHorizontal(lipgloss.Top, status, hudBar.Width(pad).Render(""), hint)
	return top, bottom
}

// Draw paints the HUD rows over area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, mode drawMode, pr scene.ProjectionMode) {
	if area.Dy() < 2 {
		return
	}
	top, bottom := h.Lines(area.Dx(), mode, pr)
	uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
}
