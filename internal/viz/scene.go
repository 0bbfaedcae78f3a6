package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

// Scene draws an arm onto a canvas as seen from a camera.
type Scene struct {
	// GridHalf is the grid extent either side of the base, in world units.
	// Zero disables the grid.
	GridHalf int
}

func NewScene() *Scene {
	return &Scene{GridHalf: 4}
}

// Draw clears c and renders arm. The active joint's handle is highlighted.
func (s *Scene) Draw(c *Canvas, arm *rig.Arm, cam pointer.Camera, active rig.JointID) {
	c.Clear()
	poses := arm.Poses()

	if s.GridHalf > 0 && len(poses) > 0 {
		c.Pen = InkGrid
		base := poses[0].Position
		n := float64(s.GridHalf)
		for k := -s.GridHalf; k <= s.GridHalf; k++ {
			f := float64(k)
			segment(c, cam, base.Add(mgl64.Vec3{f, 0, -n}), base.Add(mgl64.Vec3{f, 0, n}))
			segment(c, cam, base.Add(mgl64.Vec3{-n, 0, f}), base.Add(mgl64.Vec3{n, 0, f}))
		}
	}

	c.Pen = InkBone
	for _, b := range arm.Bones() {
		segment(c, cam, b.From, b.To)
	}

	c.Pen = InkHand
	for _, h := range arm.HandSegments() {
		segment(c, cam, h.From, h.To)
	}

	for i, p := range poses {
		if arm.Joints[i].Rigid {
			continue
		}
		c.Pen = InkHandle
		if p.ID == active {
			c.Pen = InkActive
		}
		x, y, ok := Dot(c, cam, p.Position)
		if !ok {
			continue
		}
		c.FillCircle(x, y, handleDots(c, cam, p.Position, arm.HandleRadius))
	}
	c.Pen = InkBone
}

// Dot projects a world point to canvas sub-pixel coordinates.
func Dot(c *Canvas, cam pointer.Camera, p mgl64.Vec3) (int, int, bool) {
	x, y, ok := dotf(c, cam, p)
	return int(math.Round(x)), int(math.Round(y)), ok
}

func dotf(c *Canvas, cam pointer.Camera, p mgl64.Vec3) (float64, float64, bool) {
	ndc, ok := cam.Project(p)
	if !ok {
		return 0, 0, false
	}
	w, h := c.Dots()
	x, y := pointer.NDCToScreen(ndc, float64(w), float64(h))
	return x, y, true
}

// CellToNDC maps a terminal cell to the NDC point at its center.
func CellToNDC(c *Canvas, col, row int) mgl64.Vec2 {
	return pointer.ScreenToNDC(float64(col)+0.5, float64(row)+0.5, float64(c.Width), float64(c.Height))
}

func segment(c *Canvas, cam pointer.Camera, a, b mgl64.Vec3) {
	x0, y0, ok0 := dotf(c, cam, a)
	x1, y1, ok1 := dotf(c, cam, b)
	if !ok0 || !ok1 {
		return
	}
	w, h := c.Dots()
	x0, y0, x1, y1, visible := clip(x0, y0, x1, y1, float64(w-1), float64(h-1))
	if !visible {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// clip trims a line to [0, maxX] x [0, maxY] (Liang-Barsky).
func clip(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func handleDots(c *Canvas, cam pointer.Camera, p mgl64.Vec3, radius float64) int {
	right := cam.Forward().Cross(cam.Up).Normalize()
	x0, y0, ok0 := Dot(c, cam, p)
	x1, y1, ok1 := Dot(c, cam, p.Add(right.Mul(radius)))
	if !ok0 || !ok1 {
		return 1
	}
	r := int(math.Hypot(float64(x1-x0), float64(y1-y0)))
	if r < 1 {
		r = 1
	}
	return r
}
