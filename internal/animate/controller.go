package animate

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/interact"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

// Rotator is what a host drives: pointer events plus one Tick per frame.
type Rotator interface {
	PointerDown(id rig.JointID, ndc mgl64.Vec2) error
	PointerMove(ndc mgl64.Vec2)
	PointerUp()
	PointerMiss()
	Tick(cam pointer.Camera)
	Arm() *rig.Arm
	Active() (rig.JointID, bool)
	Ticks() int
	AddObserver(o Observer)
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(tick int, arm *rig.Arm)
}

type ObserverFunc func(tick int, arm *rig.Arm)

func (f ObserverFunc) OnTick(tick int, arm *rig.Arm) { f(tick, arm) }

type Settings struct {
	// Smoothing is the fraction of the remaining angle closed per tick.
	Smoothing float64
	// ParallelEpsilon rejects rays nearly parallel to the drag plane.
	ParallelEpsilon float64
	// SettleEpsilon snaps current onto target once this close, in radians.
	SettleEpsilon float64
	Policy        interact.PressPolicy
}

func DefaultSettings() Settings {
	return Settings{
		Smoothing:       0.1,
		ParallelEpsilon: pointer.DefaultEpsilon,
		SettleEpsilon:   1e-9,
		Policy:          interact.Switch,
	}
}

func (s Settings) Validate() error {
	if s.Smoothing <= 0 || s.Smoothing > 1 {
		return fmt.Errorf("smoothing must be in (0, 1], got %f", s.Smoothing)
	}
	if !(s.ParallelEpsilon > 0) {
		return fmt.Errorf("parallel epsilon must be positive, got %g", s.ParallelEpsilon)
	}
	if s.SettleEpsilon < 0 {
		return fmt.Errorf("settle epsilon must be non-negative, got %g", s.SettleEpsilon)
	}
	return nil
}

// Controller is the raycast rotator.
type Controller struct {
	arm       *rig.Arm
	machine   *interact.Machine
	plane     pointer.DragPlane
	settings  Settings
	ticks     int
	lastHit   mgl64.Vec3
	hasHit    bool
	observers []Observer
}

func NewController(arm *rig.Arm, settings Settings) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		arm:       arm,
		machine:   interact.New(arm.Draggable(), settings.Policy),
		plane:     pointer.NewDragPlane(),
		settings:  settings,
		observers: make([]Observer, 0),
	}, nil
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Arm() *rig.Arm { return c.arm }

func (c *Controller) Ticks() int { return c.ticks }

func (c *Controller) State() interact.State { return c.machine.State() }

func (c *Controller) Active() (rig.JointID, bool) { return c.machine.Active() }

// Plane exposes the drag plane pose for debug drawing.
func (c *Controller) Plane() pointer.DragPlane { return c.plane }

// LastHit is the most recent drag point, if the current drag produced one.
func (c *Controller) LastHit() (mgl64.Vec3, bool) { return c.lastHit, c.hasHit }

// PointerDown starts dragging id and anchors the drag plane at the joint's
// current world position.
func (c *Controller) PointerDown(id rig.JointID, ndc mgl64.Vec2) error {
	started, err := c.machine.Press(id, ndc)
	if err != nil || !started {
		return err
	}
	i, _ := c.arm.Index(id)
	c.plane.Anchor(c.arm.WorldPose(i).Position)
	c.hasHit = false
	return nil
}

func (c *Controller) PointerMove(ndc mgl64.Vec2) { c.machine.Move(ndc) }

func (c *Controller) PointerUp() {
	c.machine.Release()
	c.hasHit = false
}

func (c *Controller) PointerMiss() {
	c.machine.Miss()
	c.hasHit = false
}

// Reset ends any drag and returns the arm to rest.
func (c *Controller) Reset() {
	c.machine.Release()
	c.arm.Reset()
	c.hasHit = false
}

// Tick advances one frame.
func (c *Controller) Tick(cam pointer.Camera) {
	c.plane.Face(cam.Position)

	if s := c.machine.Session(); s != nil {
		if hit, ok := c.plane.Project(cam, s.Pointer, c.settings.ParallelEpsilon); ok {
			i, _ := c.arm.Index(s.Joint)
			if updated, _ := c.arm.ComputeTarget(s.Joint, c.arm.WorldPose(i).Position, hit); updated {
				c.lastHit, c.hasHit = hit, true
			}
		}
	}

	for i := range c.arm.Joints {
		ease(&c.arm.Joints[i], c.settings.Smoothing, c.settings.SettleEpsilon)
	}

	c.ticks++
	for _, o := range c.observers {
		o.OnTick(c.ticks, c.arm)
	}
}

// ease moves one joint toward its target. Joints already on target are left
// alone, whichever joint is being dragged.
func ease(j *rig.Joint, f, settle float64) {
	if j.Rigid || j.Current == j.Target {
		return
	}
	next := orient.SlerpToward(j.Current, j.Target, f)
	if orient.Angle(next, j.Target) <= settle {
		next = orient.Unit(j.Target)
	}
	j.Current = next
}

// Settled reports whether every joint has reached its target.
func Settled(arm *rig.Arm, eps float64) bool {
	for i := range arm.Joints {
		if !arm.Joints[i].Settled(eps) {
			return false
		}
	}
	return true
}
