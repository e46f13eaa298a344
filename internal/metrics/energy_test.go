package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
	"github.com/san-kum/rigidsim/internal/world"
)

func newWorld(t *testing.T, bodies ...body.Body) *world.World {
	t.Helper()
	w, err := world.New(world.DefaultConfig())
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	for _, b := range bodies {
		w.AddObject(b)
	}
	return w
}

func particle(t *testing.T, pos, vel linalg.Vec3, inverseMass float64) *body.Particle {
	t.Helper()
	p, err := body.NewParticle(body.Params{Position: pos, Velocity: vel, InverseMass: inverseMass})
	if err != nil {
		t.Fatalf("particle: %v", err)
	}
	return p
}

func TestTotalEnergy(t *testing.T) {
	p := particle(t, linalg.Vec3{0, 2, 0}, linalg.Vec3{3, 4, 0}, 0.5)
	ground := particle(t, linalg.Vec3{0, 100, 0}, linalg.Vec3{}, 0)

	// m=2: ke = 0.5*2*25, pe = 2*10*2
	expected := 25.0 + 40.0
	if got := TotalEnergy([]body.Body{p, ground}, 10); math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, got)
	}
}

func TestTotalEnergyRotation(t *testing.T) {
	r, err := body.NewRigidBody(body.RigidParams{
		Params:          body.Params{InverseMass: 1, Shape: shape.NewSphere(1)},
		AngularVelocity: linalg.Vec3{0, 0, 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	// I = 0.4 for a unit sphere of unit mass
	expected := 0.5 * 0.4 * 4
	if got := TotalEnergy([]body.Body{r}, 9.81); math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected rotational energy %f, got %f", expected, got)
	}
}

func TestEnergyReset(t *testing.T) {
	w := newWorld(t, particle(t, linalg.Vec3{0, 1, 0}, linalg.Vec3{1, 0, 0}, 1))
	m := NewEnergy(9.81)

	m.Observe(w, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyMean(t *testing.T) {
	p := particle(t, linalg.Vec3{0, 1, 0}, linalg.Vec3{}, 1)
	w := newWorld(t, p)
	m := NewEnergy(10)

	m.Observe(w, 0)
	p.SetPosition(linalg.Vec3{0, 3, 0})
	m.Observe(w, 1)

	if got := m.Value(); math.Abs(got-20) > 1e-12 {
		t.Errorf("expected mean energy 20, got %f", got)
	}
	if len(m.Samples()) != 2 {
		t.Errorf("expected 2 samples, got %d", len(m.Samples()))
	}
}

func TestEnergyDrift(t *testing.T) {
	p := particle(t, linalg.Vec3{0, 1, 0}, linalg.Vec3{}, 1)
	w := newWorld(t, p)
	m := NewEnergyDrift(10)

	m.Observe(w, 0)
	p.SetPosition(linalg.Vec3{0, 1.1, 0})
	m.Observe(w, 1)
	p.SetPosition(linalg.Vec3{0, 1.05, 0})
	m.Observe(w, 2)

	if got := m.Value(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected drift 0.1, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
