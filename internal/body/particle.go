package body

import (
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

type Particle struct {
	position    linalg.Vec3
	velocity    linalg.Vec3
	force       linalg.Vec3
	inverseMass float64
	damping     bool
	model       shape.Model
}

func NewParticle(p Params) (*Particle, error) {
	if p.InverseMass < 0 {
		return nil, ErrNegativeInverseMass
	}
	model := p.Shape
	if model == nil {
		model = shape.Point{}
	}
	return &Particle{
		position:    p.Position,
		velocity:    p.Velocity,
		inverseMass: p.InverseMass,
		damping:     p.Damping,
		model:       model,
	}, nil
}

func (p *Particle) Kind() Kind { return KindParticle }

func (p *Particle) Position() linalg.Vec3     { return p.position }
func (p *Particle) SetPosition(v linalg.Vec3) { p.position = v }
func (p *Particle) Velocity() linalg.Vec3     { return p.velocity }
func (p *Particle) SetVelocity(v linalg.Vec3) { p.velocity = v }

func (p *Particle) InverseMass() float64 { return p.inverseMass }
func (p *Particle) HasFiniteMass() bool  { return p.inverseMass > 0 }
func (p *Particle) Damping() bool        { return p.damping }

// Mass is +Inf for an immovable body.
func (p *Particle) Mass() float64 {
	if p.inverseMass == 0 {
		return math.Inf(1)
	}
	return 1 / p.inverseMass
}

func (p *Particle) AddForce(f linalg.Vec3) {
	if !p.HasFiniteMass() {
		return
	}
	p.force = p.force.Add(f)
}

// AddForceAtPoint ignores the point: a particle has no orientation.
func (p *Particle) AddForceAtPoint(f, _ linalg.Vec3) {
	p.AddForce(f)
}

func (p *Particle) Force() linalg.Vec3 { return p.force }

func (p *Particle) LocalToWorld(local linalg.Vec3) linalg.Vec3 {
	return p.position.Add(local)
}

// Update advances the particle by dt with semi-implicit Euler: the position
// moves with the velocity from before this step.
func (p *Particle) Update(dt float64) {
	if !p.HasFiniteMass() {
		return
	}
	p.integrate(dt)
}

func (p *Particle) integrate(dt float64) {
	p.position = p.position.Add(p.velocity.Mul(dt))
	p.velocity = p.velocity.Add(p.force.Mul(p.inverseMass * dt))
	if p.damping {
		p.velocity = p.velocity.Mul(math.Pow(LinearDamping, dt))
	}
	p.force = linalg.Vec3{}
}

func (p *Particle) WorldTransform() linalg.Mat4 {
	return linalg.Translation(p.position)
}

func (p *Particle) Shape() shape.Model { return p.model }

func (p *Particle) BoundingSphere() shape.BoundingSphere {
	return shape.NewBoundingSphere(p.position, p.model.BoundingRadius())
}

func (p *Particle) String() string { return Describe(p) }
