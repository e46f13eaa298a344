package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/world"
)

// TotalEnergy sums kinetic and gravitational potential energy of every
// finite-mass body, with gravity g acting along -y and zero potential at y=0.
func TotalEnergy(bodies []body.Body, g float64) float64 {
	total := 0.0
	for _, b := range bodies {
		if !b.HasFiniteMass() {
			continue
		}
		m := b.Mass()
		v := b.Velocity()
		total += 0.5*m*v.Dot(v) + m*g*b.Position()[1]
		if r, ok := b.(*body.RigidBody); ok {
			total += rotationalEnergy(r)
		}
	}
	return total
}

func rotationalEnergy(r *body.RigidBody) float64 {
	inertia, err := linalg.Inverse3(r.InverseInertiaWorld())
	if err != nil {
		return 0
	}
	w := r.AngularVelocity()
	return 0.5 * w.Dot(inertia.Mul3x1(w))
}

// Energy is the mean total energy over a run.
type Energy struct {
	name    string
	gravity float64
	samples []float64
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *world.World, t float64) {
	e.samples = append(e.samples, TotalEnergy(w.Bodies(), e.gravity))
}

func (e *Energy) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return stat.Mean(e.samples, nil)
}

// Samples returns the energy recorded at each step.
func (e *Energy) Samples() []float64 { return e.samples }

func (e *Energy) Reset() {
	e.samples = e.samples[:0]
}

// EnergyDrift is the largest relative departure from the first observed
// energy.
type EnergyDrift struct {
	name          string
	gravity       float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(gravity float64) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *world.World, t float64) {
	energy := TotalEnergy(w.Bodies(), e.gravity)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
