// Package orient provides the rotation primitives shared by the arm
// controller.
//
// Vectors and quaternions are the [mgl64] types; this package adds the
// pieces the controller needs on top of them:
//
//   - [Euler]: intrinsic XYZ angles and conversion to and from quaternions
//   - [ShortestArc]: minimal rotation taking one direction onto another
//   - [ClampSwingEuler] and [ClampSwingCone]: joint limit enforcement
//   - [SlerpToward]: one easing step along the shortest great-circle arc
//
// All functions are pure. Quaternions returned by this package are unit
// length.
package orient
