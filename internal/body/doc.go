// Package body implements the simulated bodies and their integration step.
//
// The set of variants is closed:
//
//   - [Particle]: a point mass with position, velocity and a force accumulator
//   - [RigidBody]: a particle with orientation, angular velocity and torque
//
// Both satisfy [Body], which is the only capability the force, contact and
// world packages depend on. [Kind] identifies the variant for diagnostics.
//
// An inverse mass of zero makes a body immovable: forces and Update calls
// are ignored, only the explicit setters change its state.
//
// # Thread Safety
//
// Bodies are not safe for concurrent use. A world steps its bodies from a
// single goroutine.
package body
