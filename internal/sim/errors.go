package sim

import "errors"

var (
	// ErrInvalidTimestep indicates a non-positive step size.
	ErrInvalidTimestep = errors.New("sim: dt must be positive")

	// ErrInvalidDuration indicates a non-positive run length.
	ErrInvalidDuration = errors.New("sim: duration must be positive")

	// ErrDuplicateTrack indicates two tracked bodies sharing a name.
	ErrDuplicateTrack = errors.New("sim: duplicate track name")

	ErrInvalidRuns = errors.New("sim: ensemble needs at least one run")
)
