package pointer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// near compares vectors by absolute distance.
func near(a, b mgl64.Vec3, tol float64) bool { return a.Sub(b).Len() <= tol }

func TestPlaneIntersectAnalytic(t *testing.T) {
	plane := Plane{Point: mgl64.Vec3{1, 2, 3}, Normal: mgl64.Vec3{0, 0, 1}}
	ray := Ray{Origin: mgl64.Vec3{0, 0, 10}, Direction: mgl64.Vec3{1, 2, -7}.Normalize()}

	got, ok := plane.Intersect(ray, DefaultEpsilon)
	if !ok {
		t.Fatal("expected intersection")
	}
	want := mgl64.Vec3{1, 2, 3}
	if !near(got, want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPlaneIntersectTilted(t *testing.T) {
	n := mgl64.Vec3{1, 1, 1}.Normalize()
	x := mgl64.Vec3{0.5, -0.25, 2}
	plane := Plane{Point: mgl64.Vec3{1, 1, 1}, Normal: n}
	// x lies on the plane iff (x - p) . n == 0; move x onto it first.
	x = x.Sub(n.Mul(x.Sub(plane.Point).Dot(n)))

	origin := mgl64.Vec3{5, -3, 4}
	ray := Ray{Origin: origin, Direction: x.Sub(origin).Normalize()}

	got, ok := plane.Intersect(ray, DefaultEpsilon)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !near(got, x, 1e-9) {
		t.Errorf("expected %v, got %v", x, got)
	}
}

func TestPlaneIntersectParallel(t *testing.T) {
	plane := Plane{Point: mgl64.Vec3{}, Normal: mgl64.Vec3{0, 1, 0}}
	ray := Ray{Origin: mgl64.Vec3{0, 1, 0}, Direction: mgl64.Vec3{1, 0, 0}}

	if _, ok := plane.Intersect(ray, DefaultEpsilon); ok {
		t.Error("parallel ray should not intersect")
	}

	nearly := Ray{Origin: mgl64.Vec3{0, 1, 0}, Direction: mgl64.Vec3{1, 1e-9, 0}.Normalize()}
	if _, ok := plane.Intersect(nearly, DefaultEpsilon); ok {
		t.Error("ray within epsilon of parallel should not intersect")
	}
}

func TestPlaneIntersectZeroEpsilon(t *testing.T) {
	plane := Plane{Point: mgl64.Vec3{}, Normal: mgl64.Vec3{0, 1, 0}}

	// In-plane ray: 0/0.
	inPlane := Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}
	if hit, ok := plane.Intersect(inPlane, 0); ok {
		t.Errorf("in-plane ray should not intersect, got %v", hit)
	}
	// Off-plane parallel ray: x/0.
	above := Ray{Origin: mgl64.Vec3{0, -1, 0}, Direction: mgl64.Vec3{1, 0, 0}}
	if hit, ok := plane.Intersect(above, 0); ok {
		t.Errorf("parallel ray should not intersect, got %v", hit)
	}
}

func TestPlaneIntersectBehind(t *testing.T) {
	plane := Plane{Point: mgl64.Vec3{0, 0, 5}, Normal: mgl64.Vec3{0, 0, 1}}
	ray := Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{0, 0, -1}}

	if _, ok := plane.Intersect(ray, DefaultEpsilon); ok {
		t.Error("intersection behind origin should be rejected")
	}
}

func TestCameraRayThroughProjectedPoint(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{}, 50, 16.0/9.0)

	points := []mgl64.Vec3{
		{0, 0, 0},
		{0, -1, 0},
		{1.5, 0.3, -0.7},
	}
	for _, p := range points {
		ndc, ok := cam.Project(p)
		if !ok {
			t.Fatalf("point %v should be visible", p)
		}
		ray := cam.Ray(ndc)
		toP := p.Sub(ray.Origin).Normalize()
		if !near(ray.Direction, toP, 1e-9) {
			t.Errorf("ray %v does not pass through %v (want dir %v)", ray.Direction, p, toP)
		}
	}
}

func TestCameraCenterRay(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{}, 50, 1)
	ray := cam.Ray(mgl64.Vec2{0, 0})

	if !near(ray.Direction, cam.Forward(), 1e-9) {
		t.Errorf("center ray should follow forward, got %v", ray.Direction)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, 50, 1)
	if _, ok := cam.Project(mgl64.Vec3{0, 0, 10}); ok {
		t.Error("point behind camera should not project")
	}
}

func TestDragPlaneFacesCamera(t *testing.T) {
	d := NewDragPlane()
	d.Anchor(mgl64.Vec3{0, -1, 0})
	d.Face(mgl64.Vec3{4, 4, 4})

	want := mgl64.Vec3{4, 5, 4}.Normalize()
	if !near(d.Normal, want, 1e-9) {
		t.Errorf("expected normal %v, got %v", want, d.Normal)
	}

	prev := d.Normal
	d.Face(d.Point)
	if d.Normal != prev {
		t.Error("normal should be kept when the eye sits on the anchor")
	}
}

func TestDragPlaneProject(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{}, 50, 1)
	d := NewDragPlane()
	d.Anchor(mgl64.Vec3{0, -1, 0})
	d.Face(cam.Position)

	ndc, _ := cam.Project(d.Point)
	got, ok := d.Project(cam, ndc, DefaultEpsilon)
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(got, d.Point, 1e-9) {
		t.Errorf("pointer over anchor should hit the anchor, got %v", got)
	}

	ndc2 := mgl64.Vec2{ndc[0] + 0.2, ndc[1] - 0.1}
	got, ok = d.Project(cam, ndc2, DefaultEpsilon)
	if !ok {
		t.Fatal("expected hit")
	}
	if off := got.Sub(d.Point).Dot(d.Normal); math.Abs(off) > 1e-9 {
		t.Errorf("hit is %g off the plane", off)
	}
}

func TestPickSphere(t *testing.T) {
	ray := Ray{Origin: mgl64.Vec3{0, 0, 10}, Direction: mgl64.Vec3{0, 0, -1}}

	tHit, ok := PickSphere(ray, mgl64.Vec3{}, 0.2)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(tHit-9.8) > 1e-9 {
		t.Errorf("expected t=9.8, got %f", tHit)
	}

	if _, ok := PickSphere(ray, mgl64.Vec3{1, 0, 0}, 0.2); ok {
		t.Error("expected miss")
	}
	if _, ok := PickSphere(ray, mgl64.Vec3{0, 0, 20}, 0.2); ok {
		t.Error("sphere behind origin should miss")
	}
}

func TestScreenToNDC(t *testing.T) {
	ndc := ScreenToNDC(0, 0, 200, 100)
	if ndc != (mgl64.Vec2{-1, 1}) {
		t.Errorf("top-left should map to (-1, 1), got %v", ndc)
	}
	x, y := NDCToScreen(mgl64.Vec2{0, 0}, 200, 100)
	if x != 100 || y != 50 {
		t.Errorf("center should map to (100, 50), got (%f, %f)", x, y)
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 2, 5}, mgl64.Vec3{0, 2, 0}, 50, 1)
	got := cam.Orbit(math.Pi / 2)

	if !near(got.Position, mgl64.Vec3{5, 2, 0}, 1e-9) {
		t.Errorf("expected (5,2,0), got %v", got.Position)
	}
	if cam.Position != (mgl64.Vec3{0, 2, 5}) {
		t.Error("orbit must not modify the receiver")
	}
}
