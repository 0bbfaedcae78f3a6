package animate

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/interact"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

// DeltaGain converts pointer travel in NDC units to radians.
const DeltaGain = 2.0

// DeltaController is the direct-delta rotator. Horizontal travel turns the
// joint about Y, vertical travel about X. A second pointer-down while
// dragging is ignored.
type DeltaController struct {
	arm       *rig.Arm
	machine   *interact.Machine
	angles    []orient.Euler
	prev      mgl64.Vec2
	ticks     int
	observers []Observer
}

func NewDeltaController(arm *rig.Arm) *DeltaController {
	return &DeltaController{
		arm:     arm,
		machine: interact.New(arm.Draggable(), interact.Ignore),
		angles:  make([]orient.Euler, len(arm.Joints)),
	}
}

func (d *DeltaController) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *DeltaController) Arm() *rig.Arm { return d.arm }

func (d *DeltaController) Ticks() int { return d.ticks }

func (d *DeltaController) Active() (rig.JointID, bool) { return d.machine.Active() }

func (d *DeltaController) PointerDown(id rig.JointID, ndc mgl64.Vec2) error {
	started, err := d.machine.Press(id, ndc)
	if err != nil || !started {
		return err
	}
	d.prev = ndc
	return nil
}

func (d *DeltaController) PointerMove(ndc mgl64.Vec2) { d.machine.Move(ndc) }

func (d *DeltaController) PointerUp() { d.machine.Release() }

func (d *DeltaController) PointerMiss() { d.machine.Miss() }

func (d *DeltaController) Reset() {
	d.machine.Release()
	d.arm.Reset()
	for i := range d.angles {
		d.angles[i] = orient.Euler{}
	}
}

// Tick applies the pointer travel since the previous tick. The camera is
// unused.
func (d *DeltaController) Tick(_ pointer.Camera) {
	if s := d.machine.Session(); s != nil {
		delta := s.Pointer.Sub(d.prev)
		i, _ := d.arm.Index(s.Joint)
		d.angles[i].Y += delta[0] * DeltaGain
		d.angles[i].X += delta[1] * DeltaGain

		q := orient.FromEuler(d.angles[i])
		d.arm.Joints[i].Current = q
		d.arm.Joints[i].Target = q
		d.prev = s.Pointer
	}

	d.ticks++
	for _, o := range d.observers {
		o.OnTick(d.ticks, d.arm)
	}
}

// Angles returns the accumulated Euler angles of joint id.
func (d *DeltaController) Angles(id rig.JointID) (orient.Euler, bool) {
	i, ok := d.arm.Index(id)
	if !ok {
		return orient.Euler{}, false
	}
	return d.angles[i], true
}
