package body

import "errors"

var (
	// ErrNegativeInverseMass indicates a body was configured with inverse mass below zero.
	ErrNegativeInverseMass = errors.New("body: inverse mass must not be negative")

	// ErrDegenerateInertia indicates a movable rigid body whose shape has no
	// invertible inertia tensor.
	ErrDegenerateInertia = errors.New("body: degenerate inertia tensor")
)
