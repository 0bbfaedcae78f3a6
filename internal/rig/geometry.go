package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/orient"
)

// Hand geometry, in the hand joint's frame.
const (
	PalmLength   = 0.4
	FingerCount  = 3
	FingerRadius = 0.1
	FingerHeight = 0.5
	FingerLength = 0.3
	FingerTilt   = math.Pi / 6
)

// Segment is a world-space line piece, used by renderers.
type Segment struct {
	From, To mgl64.Vec3
	Kind     SegmentKind
}

type SegmentKind int

const (
	KindBone SegmentKind = iota
	KindPalm
	KindFinger
)

// Bones returns one segment from every joint to each of its children.
func (a *Arm) Bones() []Segment {
	poses := a.Poses()
	out := make([]Segment, 0, len(a.Joints))
	for i, j := range a.Joints {
		if j.Parent < 0 {
			continue
		}
		out = append(out, Segment{From: poses[j.Parent].Position, To: poses[i].Position, Kind: KindBone})
	}
	return out
}

// HandSegments returns the palm and fingers rigidly attached to the hand
// joint. It returns nil when the arm has no hand.
func (a *Arm) HandSegments() []Segment {
	i, ok := a.index[Hand]
	if !ok {
		return nil
	}
	pose := a.Poses()[i]
	at := pose.ToWorld

	out := []Segment{{From: at(mgl64.Vec3{}), To: at(mgl64.Vec3{0, PalmLength, 0}), Kind: KindPalm}}

	axis := mgl64.QuatRotate(FingerTilt, orient.AxisX).Rotate(orient.AxisY).Mul(FingerLength / 2)
	for k := 0; k < FingerCount; k++ {
		ang := float64(k) * math.Pi / 3
		c := mgl64.Vec3{math.Cos(ang) * FingerRadius, FingerHeight, math.Sin(ang) * FingerRadius}
		out = append(out, Segment{From: at(c.Sub(axis)), To: at(c.Add(axis)), Kind: KindFinger})
	}
	return out
}
