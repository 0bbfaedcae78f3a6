package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/rig"
)

const (
	boneRadius   = 0.08
	fingerRadius = 0.03
	planeHalf    = 1.5
)

// drawGrid draws a floor grid at the arm's base height.
func (a *App) drawGrid(slices int, spacing float32) {
	base := a.Rot.Arm().WorldPose(0).Position
	y := float32(base[1])
	half := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, y, -half), rl.NewVector3(pos, y, half), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-half, y, pos), rl.NewVector3(half, y, pos), ColGrid)
	}
}

func (a *App) drawArm() {
	arm := a.Rot.Arm()
	active, _ := a.Rot.Active()

	for _, b := range arm.Bones() {
		rl.DrawCylinderEx(v3(b.From), v3(b.To), boneRadius, boneRadius, 12, ColBone)
	}
	for _, s := range arm.HandSegments() {
		r := float32(boneRadius)
		if s.Kind == rig.KindFinger {
			r = fingerRadius
		}
		rl.DrawCylinderEx(v3(s.From), v3(s.To), r, r, 8, ColHand)
	}

	for i, p := range arm.Poses() {
		if arm.Joints[i].Rigid {
			continue
		}
		col := ColHandle
		if p.ID == active {
			col = ColActive
		}
		rl.DrawSphere(v3(p.Position), float32(arm.HandleRadius), col)
	}
}

// drawPlane outlines the drag plane and marks the last drag point.
func (a *App) drawPlane() {
	c, ok := a.Rot.(*animate.Controller)
	if !ok {
		return
	}
	plane := c.Plane()
	n := plane.Normal
	u := n.Cross(a.View.Up)
	if u.Len() < 1e-6 {
		u = n.Cross(mgl64.Vec3{1, 0, 0})
	}
	u = u.Normalize().Mul(planeHalf)
	v := n.Cross(u).Normalize().Mul(planeHalf)

	corners := [4]mgl64.Vec3{
		plane.Point.Add(u).Add(v),
		plane.Point.Sub(u).Add(v),
		plane.Point.Sub(u).Sub(v),
		plane.Point.Add(u).Sub(v),
	}
	for i := range corners {
		rl.DrawLine3D(v3(corners[i]), v3(corners[(i+1)%4]), ColPlane)
	}
	if hit, ok := c.LastHit(); ok {
		rl.DrawSphere(v3(hit), 0.05, ColPlane)
	}
}
