package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

// near compares vectors by absolute distance.
func near(a, b mgl64.Vec2, tol float64) bool { return a.Sub(b).Len() <= tol }

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Clear()
	if strings.Count(c.String(), string(rune(blank))) != 2 {
		t.Error("clear should blank every cell")
	}
}

func TestInkPrecedence(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Pen = InkHandle
	c.Set(0, 0)
	c.Pen = InkGrid
	c.Set(1, 1)

	if c.Inks[0][0] != InkHandle {
		t.Errorf("grid must not paint over a handle, got ink %d", c.Inks[0][0])
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for i, r := range c.Grid[0] {
		if r&0x9 != 0x9 {
			t.Errorf("cell %d: expected top row lit, got %U", i, r)
		}
	}
}

func TestClip(t *testing.T) {
	x0, y0, x1, y1, ok := clip(-10, 5, 110, 5, 99, 9)
	if !ok || math.Abs(x0) > 1e-9 || math.Abs(x1-99) > 1e-9 || y0 != 5 || y1 != 5 {
		t.Errorf("unexpected clip %v %v %v %v %v", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := clip(-10, -5, -1, -1, 99, 9); ok {
		t.Error("line outside the canvas should be rejected")
	}
}

func TestCellToNDC(t *testing.T) {
	c := NewCanvas(80, 24)
	ndc := CellToNDC(c, 40, 12)
	if !near(ndc, mgl64.Vec2{1.0 / 80, -1.0 / 24}, 1e-9) {
		t.Errorf("unexpected ndc %v", ndc)
	}
}

func TestSceneDrawsHandles(t *testing.T) {
	c := NewCanvas(60, 20)
	arm := rig.NewTwoBone(rig.DefaultDimensions())
	cam := pointer.NewCamera(mgl64.Vec3{0, 1, 10}, mgl64.Vec3{0, 1, 0}, 50, c.Aspect())

	NewScene().Draw(c, arm, cam, rig.Elbow)

	at := func(p mgl64.Vec3) Ink {
		x, y, ok := Dot(c, cam, p)
		if !ok {
			t.Fatalf("%v not visible", p)
		}
		return c.Inks[y/4][x/2]
	}
	if got := at(mgl64.Vec3{0, -1, 0}); got != InkHandle {
		t.Errorf("expected shoulder handle ink, got %d", got)
	}
	if got := at(mgl64.Vec3{0, 1, 0}); got != InkActive {
		t.Errorf("expected active elbow ink, got %d", got)
	}
	if got := at(mgl64.Vec3{0, 2, 0}); got != InkBone {
		t.Errorf("expected bone ink mid forearm, got %d", got)
	}
	if !strings.Contains(c.Render(ThemeMinimal), "\n") {
		t.Error("render produced no rows")
	}
}

func TestSwingBar(t *testing.T) {
	if got := SwingBar(30, 60, 10); strings.Count(got, "█") != 5 {
		t.Errorf("expected half filled bar, got %q", got)
	}
	if got := SwingBar(90, 60, 10); strings.Count(got, "░") != 0 {
		t.Errorf("bar should saturate, got %q", got)
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 4)
	if got != "▁▃▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
}

func TestThemeNext(t *testing.T) {
	th := Themes[len(Themes)-1]
	if th.Next().Name != Themes[0].Name {
		t.Error("theme cycle should wrap")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
}
