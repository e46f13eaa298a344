package body

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

type RigidParams struct {
	Params
	// Orientation is normalized on construction; the zero value is the identity.
	Orientation     linalg.Quat
	AngularVelocity linalg.Vec3
}

type RigidBody struct {
	Particle

	orientation     linalg.Quat
	angularVelocity linalg.Vec3
	torque          linalg.Vec3

	transform           linalg.Mat4
	inverseInertiaBody  linalg.Mat3
	inverseInertiaWorld linalg.Mat3
}

func NewRigidBody(p RigidParams) (*RigidBody, error) {
	particle, err := NewParticle(p.Params)
	if err != nil {
		return nil, err
	}

	tensor, err := particle.model.InverseInertiaTensor(p.InverseMass)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrDegenerateInertia, particle.model, err)
	}

	r := &RigidBody{
		Particle:           *particle,
		orientation:        linalg.NormalizeQuat(p.Orientation),
		angularVelocity:    p.AngularVelocity,
		inverseInertiaBody: tensor,
	}
	r.calculateDerivedData()
	return r, nil
}

func (r *RigidBody) Kind() Kind { return KindRigid }

func (r *RigidBody) SetPosition(v linalg.Vec3) {
	r.Particle.SetPosition(v)
	r.calculateDerivedData()
}

func (r *RigidBody) Orientation() linalg.Quat { return r.orientation }

func (r *RigidBody) SetOrientation(q linalg.Quat) {
	r.orientation = q
	r.calculateDerivedData()
}

func (r *RigidBody) AngularVelocity() linalg.Vec3     { return r.angularVelocity }
func (r *RigidBody) SetAngularVelocity(w linalg.Vec3) { r.angularVelocity = w }
func (r *RigidBody) Torque() linalg.Vec3              { return r.torque }

func (r *RigidBody) InverseInertiaWorld() linalg.Mat3 { return r.inverseInertiaWorld }

func (r *RigidBody) AddForceAtPoint(f, point linalg.Vec3) {
	if !r.HasFiniteMass() {
		return
	}
	r.AddForce(f)
	offset := point.Sub(r.position)
	if linalg.IsZero(offset) {
		return
	}
	r.torque = r.torque.Add(offset.Cross(f))
}

// AddForceAtBodyPoint applies f at a point given in body space.
func (r *RigidBody) AddForceAtBodyPoint(f, local linalg.Vec3) {
	r.AddForceAtPoint(f, r.PointInWorldSpace(local))
}

func (r *RigidBody) PointInWorldSpace(local linalg.Vec3) linalg.Vec3 {
	return linalg.TransformPoint(r.transform, local)
}

func (r *RigidBody) PointInBodySpace(world linalg.Vec3) linalg.Vec3 {
	p, err := linalg.InverseTransformPoint(r.transform, world)
	if err != nil {
		// A rigid transform is always invertible once the orientation is unit.
		return linalg.Vec3{}
	}
	return p
}

func (r *RigidBody) LocalToWorld(local linalg.Vec3) linalg.Vec3 {
	return r.PointInWorldSpace(local)
}

func (r *RigidBody) Update(dt float64) {
	if !r.HasFiniteMass() {
		return
	}

	angularAcc := r.inverseInertiaWorld.Mul3x1(r.torque)
	r.angularVelocity = r.angularVelocity.Add(angularAcc.Mul(dt))
	r.orientation = linalg.AddScaledVector(r.orientation, r.angularVelocity, dt)
	if r.damping {
		r.angularVelocity = r.angularVelocity.Mul(math.Pow(AngularDamping, dt))
	}

	r.integrate(dt)
	r.torque = linalg.Vec3{}

	r.calculateDerivedData()
}

func (r *RigidBody) calculateDerivedData() {
	r.orientation = linalg.NormalizeQuat(r.orientation)
	r.transform = linalg.Transform(r.position, r.orientation)
	r.inverseInertiaWorld = linalg.RotateTensor(r.orientation, r.inverseInertiaBody)
}

func (r *RigidBody) WorldTransform() linalg.Mat4 { return r.transform }

func (r *RigidBody) BoundingSphere() shape.BoundingSphere {
	return shape.NewBoundingSphere(r.position, r.model.BoundingRadius())
}

func (r *RigidBody) String() string {
	q := r.orientation
	return fmt.Sprintf("%s q=[%.3f %.3f %.3f %.3f]", Describe(r), q.W, q.V[0], q.V[1], q.V[2])
}
