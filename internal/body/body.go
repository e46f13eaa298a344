package body

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

const (
	LinearDamping  = 0.9
	AngularDamping = 0.9
)

type Kind int

const (
	KindParticle Kind = iota
	KindRigid
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "Particle"
	case KindRigid:
		return "RigidBody"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Body interface {
	Kind() Kind

	Position() linalg.Vec3
	SetPosition(p linalg.Vec3)
	Velocity() linalg.Vec3
	SetVelocity(v linalg.Vec3)

	InverseMass() float64
	HasFiniteMass() bool
	Mass() float64

	AddForce(f linalg.Vec3)
	// AddForceAtPoint applies f at a world-space point. Rigid bodies pick up
	// torque from any offset to their centre.
	AddForceAtPoint(f, point linalg.Vec3)
	Force() linalg.Vec3

	// LocalToWorld maps a body-space point into world space.
	LocalToWorld(local linalg.Vec3) linalg.Vec3

	Update(dt float64)

	WorldTransform() linalg.Mat4
	Shape() shape.Model
	BoundingSphere() shape.BoundingSphere

	String() string
}

// Describe formats a body as Kind(shape)@position.
func Describe(b Body) string {
	p := b.Position()
	desc := fmt.Sprintf("%s(%s)@[%.3f %.3f %.3f]", b.Kind(), b.Shape(), p[0], p[1], p[2])
	if !b.HasFiniteMass() {
		desc += " immovable"
	}
	return desc
}

// Params configures a new body.
type Params struct {
	Position    linalg.Vec3
	Velocity    linalg.Vec3
	InverseMass float64
	Damping     bool
	// Shape defaults to a zero-radius point.
	Shape shape.Model
}

var (
	_ Body = (*Particle)(nil)
	_ Body = (*RigidBody)(nil)
)
