// Package rig models the articulated arm: an ordered joint hierarchy with
// per-joint orientation state and swing limits.
package rig

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
)

type JointID string

const (
	Shoulder JointID = "shoulder"
	Elbow    JointID = "elbow"
	Hand     JointID = "hand"
)

var ErrUnknownJoint = errors.New("rig: unknown joint")

// RestDirection is the bone axis of every joint before interaction.
var RestDirection = orient.AxisY

// ConstraintMode selects how swing limits are enforced.
type ConstraintMode string

const (
	// ConstraintEuler clamps the X and Z angles of an XYZ decomposition.
	ConstraintEuler ConstraintMode = "euler"
	// ConstraintCone clamps the swing angle away from the rest axis.
	ConstraintCone ConstraintMode = "cone"
)

func ParseConstraintMode(s string) (ConstraintMode, error) {
	switch ConstraintMode(s) {
	case "", ConstraintEuler:
		return ConstraintEuler, nil
	case ConstraintCone:
		return ConstraintCone, nil
	}
	return "", fmt.Errorf("rig: unknown constraint mode %q", s)
}

// Limits bounds rotation about the two swing axes of a joint.
type Limits struct {
	X, Z orient.Range
}

// SymmetricLimits returns +/-deg on both swing axes.
func SymmetricLimits(deg float64) Limits {
	r := orient.Symmetric(orient.Radians(deg))
	return Limits{X: r, Z: r}
}

// Cone is the swing half-angle used by ConstraintCone.
func (l Limits) Cone() float64 {
	if l.X.Extent() < l.Z.Extent() {
		return l.X.Extent()
	}
	return l.Z.Extent()
}

// Joint is the per-joint state. Current is what renderers draw; Target is
// where the stepper is easing toward.
type Joint struct {
	ID     JointID
	Parent int
	Offset mgl64.Vec3
	Rigid  bool
	Limits Limits

	Current mgl64.Quat
	Target  mgl64.Quat
}

// Settled reports whether Current is within eps radians of Target.
func (j *Joint) Settled(eps float64) bool {
	return orient.Angle(j.Current, j.Target) <= eps
}

// Pose is a joint's world transform.
type Pose struct {
	ID       JointID
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// ToWorld maps a point in the pose's local frame to world space.
func (p Pose) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// Arm is an ordered hierarchy; a joint's parent always precedes it.
type Arm struct {
	Joints []Joint
	Mode   ConstraintMode
	// HandleRadius is the pick radius around each draggable joint.
	HandleRadius float64

	index map[JointID]int
}

// JointSpec describes one joint when building an arm.
type JointSpec struct {
	ID     JointID
	Parent JointID
	Offset mgl64.Vec3
	Rigid  bool
	Limits Limits
}

// New builds an arm from specs listed parent-first. The first spec is the
// root; its offset is the base position in world space.
func New(specs []JointSpec, mode ConstraintMode) (*Arm, error) {
	if len(specs) == 0 {
		return nil, errors.New("rig: arm needs at least one joint")
	}
	a := &Arm{
		Joints: make([]Joint, 0, len(specs)),
		Mode:   mode,
		index:  make(map[JointID]int, len(specs)),
	}
	for i, s := range specs {
		if _, dup := a.index[s.ID]; dup {
			return nil, fmt.Errorf("rig: duplicate joint %q", s.ID)
		}
		parent := -1
		if i > 0 {
			p, ok := a.index[s.Parent]
			if !ok {
				return nil, fmt.Errorf("rig: joint %q: parent %q: %w", s.ID, s.Parent, ErrUnknownJoint)
			}
			parent = p
		}
		a.index[s.ID] = i
		a.Joints = append(a.Joints, Joint{
			ID:      s.ID,
			Parent:  parent,
			Offset:  s.Offset,
			Rigid:   s.Rigid,
			Limits:  s.Limits,
			Current: mgl64.QuatIdent(),
			Target:  mgl64.QuatIdent(),
		})
	}
	return a, nil
}

// Dimensions of the two-bone arm.
type Dimensions struct {
	Base         mgl64.Vec3
	UpperLength  float64
	LowerLength  float64
	ShoulderDeg  float64
	ElbowDeg     float64
	Constraint   ConstraintMode
	HandleRadius float64
}

func DefaultDimensions() Dimensions {
	return Dimensions{
		Base:         mgl64.Vec3{0, -1, 0},
		UpperLength:  2,
		LowerLength:  2,
		ShoulderDeg:  90,
		ElbowDeg:     60,
		Constraint:   ConstraintEuler,
		HandleRadius: 0.2,
	}
}

// NewTwoBone builds shoulder -> elbow -> hand.
func NewTwoBone(d Dimensions) *Arm {
	a, err := New([]JointSpec{
		{ID: Shoulder, Offset: d.Base, Limits: SymmetricLimits(d.ShoulderDeg)},
		{ID: Elbow, Parent: Shoulder, Offset: mgl64.Vec3{0, d.UpperLength, 0}, Limits: SymmetricLimits(d.ElbowDeg)},
		{ID: Hand, Parent: Elbow, Offset: mgl64.Vec3{0, d.LowerLength, 0}, Rigid: true},
	}, d.Constraint)
	if err != nil {
		panic(err)
	}
	a.HandleRadius = d.HandleRadius
	return a
}

func (a *Arm) Index(id JointID) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

func (a *Arm) Joint(id JointID) (*Joint, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return &a.Joints[i], true
}

// Draggable lists joints that own orientation state.
func (a *Arm) Draggable() []JointID {
	ids := make([]JointID, 0, len(a.Joints))
	for _, j := range a.Joints {
		if !j.Rigid {
			ids = append(ids, j.ID)
		}
	}
	return ids
}

// Pick returns the draggable joint whose handle r hits first.
func (a *Arm) Pick(r pointer.Ray) (JointID, bool) {
	return a.PickRadius(r, a.HandleRadius)
}

// PickRadius is Pick with an explicit handle radius, for hosts whose pointer
// is coarser than the handles.
func (a *Arm) PickRadius(r pointer.Ray, radius float64) (JointID, bool) {
	var (
		best  JointID
		bestT = math.Inf(1)
	)
	for i, p := range a.Poses() {
		if a.Joints[i].Rigid {
			continue
		}
		if t, ok := pointer.PickSphere(r, p.Position, radius); ok && t < bestT {
			best, bestT = p.ID, t
		}
	}
	return best, !math.IsInf(bestT, 1)
}

// Poses returns world transforms for every joint, in hierarchy order.
func (a *Arm) Poses() []Pose {
	poses := make([]Pose, len(a.Joints))
	for i, j := range a.Joints {
		pos, rot := j.Offset, mgl64.QuatIdent()
		if j.Parent >= 0 {
			p := poses[j.Parent]
			pos = p.ToWorld(j.Offset)
			rot = p.Rotation
		}
		poses[i] = Pose{ID: j.ID, Position: pos, Rotation: rot.Mul(j.Current).Normalize()}
	}
	return poses
}

// WorldPose returns the world transform of joint i.
func (a *Arm) WorldPose(i int) Pose {
	return a.Poses()[i]
}

func (a *Arm) parentRotation(i int) mgl64.Quat {
	p := a.Joints[i].Parent
	if p < 0 {
		return mgl64.QuatIdent()
	}
	return a.WorldPose(p).Rotation
}

// Constrain applies the arm's constraint mode to a local rotation.
func (a *Arm) Constrain(q mgl64.Quat, l Limits) mgl64.Quat {
	if a.Mode == ConstraintCone {
		return orient.ClampSwingCone(q, RestDirection, l.Cone())
	}
	return orient.ClampSwingEuler(q, l.X, l.Z)
}

// ComputeTarget aims joint id from jointPos toward dragPoint and stores the
// clamped result as its target. It returns false, leaving the target alone,
// when the two points coincide or either is not finite. Current orientation
// is not touched.
func (a *Arm) ComputeTarget(id JointID, jointPos, dragPoint mgl64.Vec3) (bool, error) {
	i, ok := a.index[id]
	if !ok || a.Joints[i].Rigid {
		return false, fmt.Errorf("%w: %q", ErrUnknownJoint, id)
	}

	dir := dragPoint.Sub(jointPos)
	if l := dir.Len(); l < 1e-9 || math.IsNaN(l) || math.IsInf(l, 0) {
		return false, nil
	}
	local := a.parentRotation(i).Conjugate().Rotate(dir.Normalize())

	arc, ok := orient.ShortestArc(RestDirection, local)
	if !ok {
		return false, nil
	}
	j := &a.Joints[i]
	j.Target = a.Constrain(arc, j.Limits)
	return true, nil
}

// Reset returns every joint to the rest pose.
func (a *Arm) Reset() {
	for i := range a.Joints {
		a.Joints[i].Current = mgl64.QuatIdent()
		a.Joints[i].Target = mgl64.QuatIdent()
	}
}

// Swing is the angle between joint i's bone and its rest direction in the
// parent frame.
func (a *Arm) Swing(i int) float64 {
	return orient.SwingAngle(a.Joints[i].Current, RestDirection)
}
