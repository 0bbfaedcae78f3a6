package animate_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/interact"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

func project(cam pointer.Camera, p mgl64.Vec3) mgl64.Vec2 {
	ndc, ok := cam.Project(p)
	ExpectWithOffset(1, ok).To(BeTrue(), "point %v should be visible", p)
	return ndc
}

var _ = Describe("Controller", func() {
	var (
		arm  *rig.Arm
		ctrl *animate.Controller
	)

	BeforeEach(func() {
		arm = rig.NewTwoBone(rig.DefaultDimensions())
		var err error
		ctrl, err = animate.NewController(arm, animate.DefaultSettings())
		Expect(err).NotTo(HaveOccurred())
	})

	tick := func(cam pointer.Camera, n int) {
		for i := 0; i < n; i++ {
			ctrl.Tick(cam)
		}
	}

	Context("with the scene camera at (4,4,4)", func() {
		var cam pointer.Camera

		BeforeEach(func() {
			cam = pointer.NewCamera(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{}, 50, 16.0/9.0)
		})

		It("eases the shoulder onto the clamped arc toward the drag point", func() {
			base := arm.WorldPose(0).Position
			Expect(ctrl.PointerDown(rig.Shoulder, project(cam, base))).To(Succeed())

			ndc := project(cam, base.Add(mgl64.Vec3{1, 0, 0}))
			ctrl.PointerMove(ndc)

			plane := pointer.Plane{Point: base, Normal: cam.Position.Sub(base).Normalize()}
			hit, ok := plane.Intersect(cam.Ray(ndc), pointer.DefaultEpsilon)
			Expect(ok).To(BeTrue())
			arc, _ := orient.ShortestArc(orient.AxisY, hit.Sub(base))
			lim := orient.Symmetric(math.Pi / 2)
			want := orient.ClampSwingEuler(arc, lim, lim)

			s, _ := arm.Joint(rig.Shoulder)
			tick(cam, 400)

			Expect(orient.Angle(s.Current, want)).To(BeNumerically("<", 1e-6))
			e := orient.ToEuler(s.Current)
			Expect(lim.Contains(e.X, 1e-6)).To(BeTrue())
			Expect(lim.Contains(e.Z, 1e-6)).To(BeTrue())
			last, ok := ctrl.LastHit()
			Expect(ok).To(BeTrue())
			Expect(last.Sub(hit).Len()).To(BeNumerically("<", 1e-9))
		})

		It("ignores a pointer-up without a prior pointer-down", func() {
			ctrl.PointerUp()
			tick(cam, 50)

			Expect(ctrl.State()).To(Equal(interact.Idle))
			for _, j := range arm.Joints {
				Expect(j.Current).To(Equal(mgl64.QuatIdent()))
				Expect(j.Target).To(Equal(mgl64.QuatIdent()))
			}
		})

		It("ends idle after down(shoulder), down(elbow), up", func() {
			Expect(ctrl.PointerDown(rig.Shoulder, mgl64.Vec2{})).To(Succeed())
			tick(cam, 1)
			Expect(ctrl.PointerDown(rig.Elbow, mgl64.Vec2{0.1, 0.1})).To(Succeed())

			id, ok := ctrl.Active()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(rig.Elbow))
			Expect(ctrl.Plane().Point).To(Equal(arm.WorldPose(1).Position))

			ctrl.PointerUp()
			Expect(ctrl.State()).To(Equal(interact.Idle))
		})

		It("treats a miss like a pointer-up", func() {
			Expect(ctrl.PointerDown(rig.Elbow, mgl64.Vec2{})).To(Succeed())
			ctrl.PointerMiss()
			Expect(ctrl.State()).To(Equal(interact.Idle))
		})
	})

	Context("with a camera square to the arm", func() {
		It("swings the shoulder exactly onto +X", func() {
			base := arm.WorldPose(0).Position
			cam := pointer.NewCamera(base.Add(mgl64.Vec3{0, 0, 6}), base, 50, 1)

			Expect(ctrl.PointerDown(rig.Shoulder, project(cam, base))).To(Succeed())
			ctrl.PointerMove(project(cam, base.Add(mgl64.Vec3{1, 0, 0})))
			tick(cam, 400)

			s, _ := arm.Joint(rig.Shoulder)
			want, _ := orient.ShortestArc(orient.AxisY, orient.AxisX)
			Expect(orient.Angle(s.Current, want)).To(BeNumerically("<", 1e-6))
			Expect(orient.Degrees(arm.Swing(0))).To(BeNumerically("~", 90, 1e-6))
		})

		It("clamps a 120 degree elbow bend to 60 and never passes it", func() {
			elbow := arm.WorldPose(1).Position
			cam := pointer.NewCamera(elbow.Add(mgl64.Vec3{0, 0, 6}), elbow, 50, 1)
			dir := mgl64.QuatRotate(orient.Radians(120), orient.AxisZ).Rotate(orient.AxisY)

			Expect(ctrl.PointerDown(rig.Elbow, project(cam, elbow))).To(Succeed())
			ctrl.PointerMove(project(cam, elbow.Add(dir.Mul(1.5))))

			e, _ := arm.Joint(rig.Elbow)
			prev := 0.0
			for i := 0; i < 400; i++ {
				ctrl.Tick(cam)
				Expect(orient.Degrees(orient.SwingAngle(e.Target, rig.RestDirection))).To(BeNumerically("~", 60, 1e-6))

				swing := orient.Degrees(arm.Swing(1))
				Expect(swing).To(BeNumerically("<=", 60+1e-9))
				Expect(swing).To(BeNumerically(">=", prev-1e-9))
				prev = swing
			}
			Expect(prev).To(BeNumerically("~", 60, 1e-6))

			s, _ := arm.Joint(rig.Shoulder)
			Expect(s.Current).To(Equal(mgl64.QuatIdent()))
		})
	})
})

var _ = Describe("DeltaController", func() {
	It("rotates only while dragging", func() {
		d := animate.NewDeltaController(rig.NewTwoBone(rig.DefaultDimensions()))
		cam := pointer.NewCamera(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{}, 50, 1)

		Expect(d.PointerDown(rig.Elbow, mgl64.Vec2{0, 0})).To(Succeed())
		d.PointerMove(mgl64.Vec2{0, 0.25})
		d.Tick(cam)

		e, ok := d.Angles(rig.Elbow)
		Expect(ok).To(BeTrue())
		Expect(e.X).To(BeNumerically("~", 0.5, 1e-12))

		d.PointerMiss()
		d.PointerMove(mgl64.Vec2{0.5, 0.5})
		d.Tick(cam)
		after, _ := d.Angles(rig.Elbow)
		Expect(after).To(Equal(e))
	})
})
