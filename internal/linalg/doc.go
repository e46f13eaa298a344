// Package linalg provides the vector, quaternion and matrix algebra the
// physics core is written against.
//
// The types are aliases of the mgl64 types from go-gl/mathgl, so values
// flow freely between this package and code that uses mgl64 directly. The
// helpers here add the behaviour the simulation depends on:
//
//   - [Normalized]: unit vector, zero stays zero
//   - [AddScaledVector]: first-order quaternion integration
//   - [Transform], [RotateTensor]: world transform and inertia rotation
//   - [Inverse3], [Inverse4]: inversion that reports [ErrSingularMatrix]
package linalg
