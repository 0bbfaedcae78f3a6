// Package interact tracks which joint, if any, the pointer is dragging.
package interact

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/armrig/internal/rig"
)

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// PressPolicy decides what a pointer-down does while a drag is active.
type PressPolicy int

const (
	// Switch releases the current joint and starts dragging the new one.
	Switch PressPolicy = iota
	// Ignore keeps the current drag.
	Ignore
)

func ParsePressPolicy(s string) (PressPolicy, error) {
	switch s {
	case "", "switch":
		return Switch, nil
	case "ignore":
		return Ignore, nil
	}
	return Switch, fmt.Errorf("interact: unknown press policy %q", s)
}

// Session is the live drag. Pointer is the last known position in
// normalized device coordinates.
type Session struct {
	Joint   rig.JointID
	Pointer mgl64.Vec2
}

// Machine is the Idle / Dragging(joint) state machine.
type Machine struct {
	policy  PressPolicy
	known   map[rig.JointID]bool
	session *Session
}

func New(joints []rig.JointID, policy PressPolicy) *Machine {
	known := make(map[rig.JointID]bool, len(joints))
	for _, id := range joints {
		known[id] = true
	}
	return &Machine{policy: policy, known: known}
}

func (m *Machine) State() State {
	if m.session == nil {
		return Idle
	}
	return Dragging
}

// Session returns the active drag, or nil when idle.
func (m *Machine) Session() *Session { return m.session }

func (m *Machine) Active() (rig.JointID, bool) {
	if m.session == nil {
		return "", false
	}
	return m.session.Joint, true
}

// Press handles pointer-down on a joint handle. It reports whether a new
// drag started, in which case the caller anchors the drag plane. Unknown
// joints are rejected without any transition.
func (m *Machine) Press(id rig.JointID, at mgl64.Vec2) (bool, error) {
	if !m.known[id] {
		return false, fmt.Errorf("%w: %q", rig.ErrUnknownJoint, id)
	}
	if m.session != nil && m.policy == Ignore {
		return false, nil
	}
	m.session = &Session{Joint: id, Pointer: at}
	return true, nil
}

// Move records the pointer position for the active drag.
func (m *Machine) Move(at mgl64.Vec2) {
	if m.session != nil {
		m.session.Pointer = at
	}
}

// Release ends the drag on pointer-up. It reports whether a drag was active.
func (m *Machine) Release() bool {
	active := m.session != nil
	m.session = nil
	return active
}

// Miss handles a pointer event that hit no interactive geometry; it ends the
// drag exactly like Release.
func (m *Machine) Miss() bool {
	return m.Release()
}
