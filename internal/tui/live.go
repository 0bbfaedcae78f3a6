package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
	"github.com/san-kum/armrig/internal/viz"
)

const (
	liveWidth   = 70
	liveHeight  = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the arm to out after ticks, at most frameRate times a
// second. It is used as a tick observer during headless runs.
type LiveRenderer struct {
	out       io.Writer
	cam       pointer.Camera
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
	scene     *viz.Scene
}

func NewLiveRenderer(out io.Writer, cam pointer.Camera, frameRate int) *LiveRenderer {
	c := viz.NewCanvas(liveWidth, liveHeight)
	cam.Aspect = c.Aspect()
	return &LiveRenderer{
		out:       out,
		cam:       cam,
		frameRate: frameRate,
		canvas:    c,
		scene:     viz.NewScene(),
	}
}

func (r *LiveRenderer) OnTick(tick int, arm *rig.Arm) {
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.scene.Draw(r.canvas, arm, r.cam, "")

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  armrig  tick=%d\n", tick))
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	for _, line := range strings.SplitAfter(r.canvas.String(), "\n") {
		if line != "" {
			b.WriteString("  " + line)
		}
	}
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")

	b.WriteString(" ")
	for i, j := range arm.Joints {
		if !j.Rigid {
			b.WriteString(fmt.Sprintf(" %s=%.1f°", j.ID, orient.Degrees(arm.Swing(i))))
		}
	}
	b.WriteString("\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
