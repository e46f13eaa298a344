package analysis

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/sim"
)

// Point is one sample of a phase portrait.
type Point struct{ X, V float64 }

// PhasePortrait pairs axis (0, 1 or 2) of a tracked body's position with the
// same component of its velocity.
func PhasePortrait(result *sim.Result, body string, axis int) ([]Point, error) {
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("analysis: axis %d out of range", axis)
	}
	track := result.Track(body)
	if track == nil {
		return nil, fmt.Errorf("analysis: body %q was not tracked", body)
	}
	points := make([]Point, len(track))
	for i, s := range track {
		points[i] = Point{X: s.Position[axis], V: s.Velocity[axis]}
	}
	return points, nil
}

// Column extracts one axis of a tracked body's position, or of its velocity
// when velocity is set.
func Column(result *sim.Result, body string, axis int, velocity bool) []float64 {
	track := result.Track(body)
	out := make([]float64, len(track))
	for i, s := range track {
		if velocity {
			out[i] = s.Velocity[axis]
		} else {
			out[i] = s.Position[axis]
		}
	}
	return out
}
