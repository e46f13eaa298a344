package linalg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Quat = mgl64.Quat

func QuatIdentity() Quat {
	return mgl64.QuatIdent()
}

// FromAxisAngle builds a rotation of angle radians about axis. The axis does
// not need to be unit length; a zero axis yields the identity.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	n := Normalized(axis)
	if IsZero(n) {
		return QuatIdentity()
	}
	return mgl64.QuatRotate(angle, n)
}

// FromEuler composes roll (about Z), pitch (about X) and yaw (about Y), in
// that order of application from the left.
func FromEuler(yaw, pitch, roll float64) Quat {
	r := mgl64.QuatRotate(roll, Vec3{0, 0, 1})
	p := mgl64.QuatRotate(pitch, Vec3{1, 0, 0})
	y := mgl64.QuatRotate(yaw, Vec3{0, 1, 0})
	return r.Mul(p).Mul(y)
}

// AddScaledVector advances q by the angular velocity v over scale seconds:
// q + 0.5 * (0, v*scale) * q. The result is not normalized.
func AddScaledVector(q Quat, v Vec3, scale float64) Quat {
	w := Quat{W: 0, V: v.Mul(scale)}
	return q.Add(w.Mul(q).Scale(0.5))
}

// NormalizeQuat returns q at unit length. A zero quaternion becomes the
// identity.
func NormalizeQuat(q Quat) Quat {
	if q.Len() == 0 {
		return QuatIdentity()
	}
	return q.Normalize()
}

func IsUnit(q Quat, eps float64) bool {
	return math.Abs(q.Len()-1) <= eps
}
