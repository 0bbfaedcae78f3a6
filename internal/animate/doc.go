// Package animate drives the arm once per rendered frame.
//
// Two rotators implement [Rotator]:
//
//   - [Controller]: casts the pointer onto a camera-facing drag plane,
//     aims the dragged joint at the hit point, clamps it to the joint's
//     limits and eases every joint toward its target.
//   - [DeltaController]: adds raw pointer deltas to the dragged joint's
//     Euler angles with no limits and no easing.
//
// # Threading
//
// Rotators are not safe for concurrent use. Hosts call pointer events and
// Tick from a single goroutine; events land between ticks, never during one.
// Renderers read [rig.Arm] poses after Tick returns and must not write them.
package animate
