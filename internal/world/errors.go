package world

import "errors"

var (
	// ErrInvalidContactLimit indicates a world configured without room for contacts.
	ErrInvalidContactLimit = errors.New("world: max contacts must be positive")

	// ErrInvalidIterations indicates a negative resolver iteration count.
	ErrInvalidIterations = errors.New("world: contact iterations must not be negative")
)
