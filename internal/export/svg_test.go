package export

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
	"github.com/san-kum/armrig/internal/script"
	"github.com/san-kum/armrig/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Pen = viz.InkHandle
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, viz.ThemeMinimal, 2)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, string(viz.ThemeMinimal.Handle)) {
		t.Error("dots should use the handle color")
	}
	if CanvasToSVG(nil, viz.ThemeMinimal, 1) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestHandPath(t *testing.T) {
	arm := rig.NewTwoBone(rig.DefaultDimensions())
	cam := pointer.NewCamera(mgl64.Vec3{0, 1, 10}, mgl64.Vec3{0, 1, 0}, 50, 1)

	samples := make([]script.Sample, 0)
	for _, deg := range []float64{0, 45, 90} {
		q := mgl64.QuatRotate(-orient.Radians(deg), orient.AxisZ)
		samples = append(samples, script.Sample{Joints: []script.JointSample{
			{ID: rig.Shoulder, Current: q, Target: q},
			{ID: rig.Elbow, Current: mgl64.QuatIdent(), Target: mgl64.QuatIdent()},
		}})
	}

	path := HandPath(arm, samples, cam)
	if len(path) != 3 {
		t.Fatalf("expected 3 points, got %d", len(path))
	}
	// the hand sweeps right and down
	if !(path[0][0] < path[1][0] && path[1][0] < path[2][0]) {
		t.Errorf("expected increasing x, got %v", path)
	}
	if math.Abs(path[0][0]) > 1e-9 {
		t.Errorf("rest hand should sit on the center line, got %v", path[0])
	}
}

func TestPathToSVG(t *testing.T) {
	if PathToSVG([]mgl64.Vec2{{0, 0}}, 100, 100, "#fff") != "" {
		t.Error("single point should give empty output")
	}
	svg := PathToSVG([]mgl64.Vec2{{0, 0}, {1, 1}, {2, 0}}, 100, 50, "#00ff00")
	if strings.Count(svg, " L") != 2 || !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Errorf("unexpected svg %s", svg)
	}
}
