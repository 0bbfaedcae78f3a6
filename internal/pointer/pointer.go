// Package pointer turns 2D pointer positions into 3D points on the drag
// plane.
package pointer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEpsilon is the |dir . normal| below which a ray counts as parallel
// to a plane.
const DefaultEpsilon = 1e-6

// Camera is a perspective camera. FOV is the vertical field of view in
// degrees.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

func NewCamera(position, target mgl64.Vec3, fov, aspect float64) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      fov,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c Camera) viewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Forward is the unit viewing direction.
func (c Camera) Forward() mgl64.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Orbit swings the camera about the vertical axis through its target,
// keeping its distance.
func (c Camera) Orbit(angle float64) Camera {
	rel := c.Position.Sub(c.Target)
	c.Position = c.Target.Add(mgl64.QuatRotate(angle, c.Up).Rotate(rel))
	return c
}

// Ray returns the ray from the camera through a point in normalized device
// coordinates ([-1, 1] on both axes, +Y up).
func (c Camera) Ray(ndc mgl64.Vec2) Ray {
	inv := c.viewProjection().Inv()
	p := inv.Mul4x1(mgl64.Vec4{ndc[0], ndc[1], 0.5, 1})
	if p[3] != 0 {
		p = p.Mul(1 / p[3])
	}
	return Ray{
		Origin:    c.Position,
		Direction: p.Vec3().Sub(c.Position).Normalize(),
	}
}

// Project maps a world point to normalized device coordinates. It reports
// false for points behind the camera.
func (c Camera) Project(p mgl64.Vec3) (mgl64.Vec2, bool) {
	clip := c.viewProjection().Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{clip[0] / clip[3], clip[1] / clip[3]}, true
}

// ScreenToNDC converts pixel coordinates (origin top-left) to normalized
// device coordinates.
func ScreenToNDC(x, y, width, height float64) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{2*x/width - 1, 1 - 2*y/height}
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(ndc mgl64.Vec2, width, height float64) (float64, float64) {
	return (ndc[0] + 1) * width / 2, (1 - ndc[1]) * height / 2
}

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Intersect returns where r crosses the plane. It reports false when r is
// parallel to the plane within eps, the crossing is behind the origin, or
// the crossing is not a finite point.
func (p Plane) Intersect(r Ray, eps float64) (mgl64.Vec3, bool) {
	n := p.Normal.Normalize()
	denom := r.Direction.Dot(n)
	if math.Abs(denom) < eps {
		return mgl64.Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(n) / denom
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// DragPlane is an invisible plane through a fixed anchor whose normal is
// turned toward the camera every frame.
type DragPlane struct {
	Plane
}

func NewDragPlane() DragPlane {
	return DragPlane{Plane{Normal: mgl64.Vec3{0, 0, 1}}}
}

// Anchor moves the plane to pass through p.
func (d *DragPlane) Anchor(p mgl64.Vec3) {
	d.Point = p
}

// Face points the normal from the anchor to eye. The previous normal is kept
// when eye coincides with the anchor.
func (d *DragPlane) Face(eye mgl64.Vec3) {
	dir := eye.Sub(d.Point)
	if dir.Len() < 1e-12 {
		return
	}
	d.Normal = dir.Normalize()
}

// Project casts the pointer through cam onto the plane.
func (d DragPlane) Project(cam Camera, ndc mgl64.Vec2, eps float64) (mgl64.Vec3, bool) {
	return d.Intersect(cam.Ray(ndc), eps)
}

// PickSphere returns the ray distance to the nearest hit on a sphere.
func PickSphere(r Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
