package sim

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/world"
)

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *world.World, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// ValidateState stops the run at the first non-finite body state.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Steps is the number of whole steps that fit in Duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

// Sample is the kinematic state of one tracked body at one instant.
type Sample struct {
	Position linalg.Vec3
	Velocity linalg.Vec3
}

func (s Sample) IsValid() bool {
	return linalg.IsFinite(s.Position) && linalg.IsFinite(s.Velocity)
}

type Result struct {
	Times []float64
	// Order lists tracked body names in the order they were registered.
	Order    []string
	Tracks   map[string][]Sample
	Contacts []int
	Metrics  map[string]float64

	StepsTaken int
	Errors     []error
}

// Track returns the samples recorded for name, or nil.
func (r *Result) Track(name string) []Sample {
	return r.Tracks[name]
}

// Final returns the last sample recorded for name.
func (r *Result) Final(name string) (Sample, bool) {
	samples := r.Tracks[name]
	if len(samples) == 0 {
		return Sample{}, false
	}
	return samples[len(samples)-1], true
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
