package body

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

func mustRigid(t *testing.T, p RigidParams) *RigidBody {
	t.Helper()
	b, err := NewRigidBody(p)
	if err != nil {
		t.Fatalf("NewRigidBody: %v", err)
	}
	return b
}

func unitCube(invMass float64) RigidParams {
	return RigidParams{Params: Params{InverseMass: invMass, Shape: shape.NewBox(1, 1, 1)}}
}

func TestNewRigidBodyDegenerateInertia(t *testing.T) {
	_, err := NewRigidBody(RigidParams{Params: Params{InverseMass: 1, Shape: shape.NewSphere(0)}})
	if !errors.Is(err, ErrDegenerateInertia) {
		t.Errorf("expected ErrDegenerateInertia, got %v", err)
	}
	if !errors.Is(err, linalg.ErrSingularMatrix) {
		t.Errorf("expected wrapped ErrSingularMatrix, got %v", err)
	}

	// immovable bodies have no inertia to invert
	if _, err := NewRigidBody(RigidParams{Params: Params{Shape: shape.NewSphere(0)}}); err != nil {
		t.Errorf("immovable body should construct, got %v", err)
	}
}

func TestTorqueFromOffCentreForce(t *testing.T) {
	tests := []struct {
		name   string
		point  linalg.Vec3
		force  linalg.Vec3
		torque linalg.Vec3
	}{
		{"at centre", linalg.Vec3{}, linalg.Vec3{0, 1, 0}, linalg.Vec3{}},
		{"lever on x", linalg.Vec3{1, 0, 0}, linalg.Vec3{0, 1, 0}, linalg.Vec3{0, 0, 1}},
		{"parallel to offset", linalg.Vec3{2, 0, 0}, linalg.Vec3{3, 0, 0}, linalg.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRigid(t, unitCube(1))
			r.AddForceAtPoint(tt.force, tt.point)
			if !linalg.ApproxEqual(r.Torque(), tt.torque, 1e-12) {
				t.Errorf("torque = %v, want %v", r.Torque(), tt.torque)
			}
			if r.Force() != tt.force {
				t.Errorf("force = %v, want %v", r.Force(), tt.force)
			}
		})
	}
}

func TestAddForceAtBodyPointRotated(t *testing.T) {
	p := unitCube(1)
	p.Orientation = linalg.FromAxisAngle(linalg.Vec3{0, 0, 1}, math.Pi/2)
	r := mustRigid(t, p)

	// body +x is world +y after a quarter turn about z
	r.AddForceAtBodyPoint(linalg.Vec3{1, 0, 0}, linalg.Vec3{1, 0, 0})
	if want := (linalg.Vec3{0, 0, -1}); !linalg.ApproxEqual(r.Torque(), want, 1e-9) {
		t.Errorf("torque = %v, want %v", r.Torque(), want)
	}
}

func TestRigidBodyUpdateSpinsUp(t *testing.T) {
	r := mustRigid(t, unitCube(1))
	r.AddForceAtPoint(linalg.Vec3{0, 1, 0}, linalg.Vec3{0.5, 0, 0})
	r.Update(0.1)

	// I = 1/6 for a unit cube, torque 0.5 about z
	want := 0.5 * 6 * 0.1
	if got := r.AngularVelocity()[2]; math.Abs(got-want) > 1e-9 {
		t.Errorf("angular velocity z = %f, want %f", got, want)
	}
	if !linalg.IsZero(r.Torque()) || !linalg.IsZero(r.Force()) {
		t.Error("accumulators not cleared")
	}
	if r.Orientation() == linalg.QuatIdentity() {
		t.Error("orientation did not change")
	}
}

func TestOrientationStaysUnit(t *testing.T) {
	p := unitCube(2)
	p.AngularVelocity = linalg.Vec3{3, -7, 11}
	p.Damping = true
	r := mustRigid(t, p)

	for i := 0; i < 500; i++ {
		r.AddForceAtBodyPoint(linalg.Vec3{0, 0, 1}, linalg.Vec3{0.5, 0.5, 0})
		r.Update(0.02)
		if !linalg.IsUnit(r.Orientation(), 1e-9) {
			t.Fatalf("step %d: orientation length %f", i, r.Orientation().Len())
		}
	}
}

func TestImmovableRigidBody(t *testing.T) {
	p := unitCube(0)
	p.Position = linalg.Vec3{0, 1, 0}
	p.AngularVelocity = linalg.Vec3{1, 0, 0}
	r := mustRigid(t, p)
	q := r.Orientation()

	r.AddForceAtPoint(linalg.Vec3{5, 0, 0}, linalg.Vec3{0, 2, 0})
	r.Update(1)

	if r.Position() != p.Position || r.Orientation() != q {
		t.Errorf("immovable rigid body changed: %v", r)
	}
	if !linalg.IsZero(r.Torque()) {
		t.Errorf("immovable rigid body accumulated torque %v", r.Torque())
	}
}

func TestPointSpaceRoundTrip(t *testing.T) {
	p := unitCube(1)
	p.Position = linalg.Vec3{3, -2, 1}
	p.Orientation = linalg.FromEuler(0.4, -0.2, 1.1)
	r := mustRigid(t, p)

	local := linalg.Vec3{0.5, 0.25, -0.5}
	back := r.PointInBodySpace(r.PointInWorldSpace(local))
	if !linalg.ApproxEqual(back, local, 1e-9) {
		t.Errorf("round trip = %v, want %v", back, local)
	}

	r.SetPosition(linalg.Vec3{})
	if got := linalg.TransformPoint(r.WorldTransform(), linalg.Vec3{}); !linalg.ApproxEqual(got, linalg.Vec3{}, 1e-12) {
		t.Errorf("SetPosition did not refresh the transform: %v", got)
	}
}

func TestInverseInertiaWorldFollowsOrientation(t *testing.T) {
	p := RigidParams{Params: Params{InverseMass: 1, Shape: shape.NewBox(2, 1, 1)}}
	p.Orientation = linalg.FromAxisAngle(linalg.Vec3{0, 0, 1}, math.Pi/2)
	r := mustRigid(t, p)

	body, _ := shape.NewBox(2, 1, 1).InverseInertiaTensor(1)
	world := r.InverseInertiaWorld()
	// x and y moments swap after a quarter turn about z
	if math.Abs(world.At(0, 0)-body.At(1, 1)) > 1e-9 || math.Abs(world.At(1, 1)-body.At(0, 0)) > 1e-9 {
		t.Errorf("world tensor %v does not match rotated body tensor %v", world, body)
	}
}
