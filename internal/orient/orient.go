package orient

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// gimbalThreshold matches the cutoff where the XYZ decomposition switches to
// its degenerate branch.
const gimbalThreshold = 0.9999999

// Range is a closed angular interval in radians.
type Range struct {
	Min, Max float64
}

// Symmetric returns [-limit, limit].
func Symmetric(limit float64) Range {
	limit = math.Abs(limit)
	return Range{Min: -limit, Max: limit}
}

func (r Range) Clamp(a float64) float64 { return mgl64.Clamp(a, r.Min, r.Max) }

func (r Range) Contains(a, tol float64) bool { return a >= r.Min-tol && a <= r.Max+tol }

// Extent is the smallest distance from zero to either bound.
func (r Range) Extent() float64 { return math.Min(math.Abs(r.Min), math.Abs(r.Max)) }

// Euler holds intrinsic XYZ angles in radians. The rotation matrix is
// Rx(X) * Ry(Y) * Rz(Z).
type Euler struct {
	X, Y, Z float64
}

// ToEuler decomposes q into XYZ angles. Y is in [-pi/2, pi/2]; at the poles
// Z is reported as zero and the whole rotation is folded into X.
func ToEuler(q mgl64.Quat) Euler {
	q = q.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	m11 := 1 - 2*(y*y+z*z)
	m12 := 2 * (x*y - w*z)
	m13 := 2 * (x*z + w*y)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - w*x)
	m32 := 2 * (y*z + w*x)
	m33 := 1 - 2*(x*x+y*y)

	e := Euler{Y: math.Asin(mgl64.Clamp(m13, -1, 1))}
	if math.Abs(m13) < gimbalThreshold {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
	}
	return e
}

// FromEuler composes XYZ angles back into a unit quaternion.
func FromEuler(e Euler) mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, AxisX)
	qy := mgl64.QuatRotate(e.Y, AxisY)
	qz := mgl64.QuatRotate(e.Z, AxisZ)
	return qx.Mul(qy).Mul(qz).Normalize()
}

// ShortestArc returns the minimal rotation mapping from onto to. It reports
// false when either vector has zero length.
func ShortestArc(from, to mgl64.Vec3) (mgl64.Quat, bool) {
	if from.Len() < 1e-12 || to.Len() < 1e-12 {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatBetweenVectors(from.Normalize(), to.Normalize()).Normalize(), true
}

// ClampSwingEuler limits the X and Z angles of q's XYZ decomposition. The Y
// angle, roll about the bone, passes through untouched.
func ClampSwingEuler(q mgl64.Quat, x, z Range) mgl64.Quat {
	e := ToEuler(q)
	e.X = x.Clamp(e.X)
	e.Z = z.Clamp(e.Z)
	return FromEuler(e)
}

// SwingTwist splits q into a swing that moves axis and a twist about axis,
// with q = swing * twist.
func SwingTwist(q mgl64.Quat, axis mgl64.Vec3) (swing, twist mgl64.Quat) {
	q = q.Normalize()
	axis = axis.Normalize()
	proj := axis.Mul(q.V.Dot(axis))
	twist = mgl64.Quat{W: q.W, V: proj}
	if twist.Len() < 1e-12 {
		// 180 degree swing; twist is undefined.
		twist = mgl64.QuatIdent()
	} else {
		twist = twist.Normalize()
	}
	swing = q.Mul(twist.Conjugate()).Normalize()
	return swing, twist
}

// SwingAngle is the angle between axis and its image under q.
func SwingAngle(q mgl64.Quat, axis mgl64.Vec3) float64 {
	axis = axis.Normalize()
	return math.Acos(mgl64.Clamp(q.Rotate(axis).Dot(axis), -1, 1))
}

// ClampSwingCone limits the swing of q away from axis to at most limit
// radians, keeping the swing direction and the twist.
func ClampSwingCone(q mgl64.Quat, axis mgl64.Vec3, limit float64) mgl64.Quat {
	swing, twist := SwingTwist(q, axis)
	if swing.W < 0 {
		swing = swing.Scale(-1)
	}
	angle := 2 * math.Acos(mgl64.Clamp(swing.W, -1, 1))
	if angle <= limit {
		return q.Normalize()
	}
	swingAxis := swing.V
	if swingAxis.Len() < 1e-12 {
		return q.Normalize()
	}
	swing = mgl64.QuatRotate(limit, swingAxis.Normalize())
	return swing.Mul(twist).Normalize()
}

// Angle returns the angular distance between two orientations, in [0, pi].
func Angle(a, b mgl64.Quat) float64 {
	rel := a.Normalize().Conjugate().Mul(b.Normalize())
	return 2 * math.Atan2(rel.V.Len(), math.Abs(rel.W))
}

// SlerpToward moves current a fraction f of the way to target along the
// shortest arc and renormalizes the result.
func SlerpToward(current, target mgl64.Quat, f float64) mgl64.Quat {
	f = mgl64.Clamp(f, 0, 1)
	current, target = Unit(current), Unit(target)
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return Unit(mgl64.QuatSlerp(current, target, f))
}

// Unit scales q to length one. Quat.Normalize leaves lengths within about
// 1e-10 of one alone, which lets drift accumulate over many ticks.
func Unit(q mgl64.Quat) mgl64.Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.QuatIdent()
	}
	return q.Scale(1 / l)
}

func Degrees(rad float64) float64 { return mgl64.RadToDeg(rad) }
func Radians(deg float64) float64 { return mgl64.DegToRad(deg) }
