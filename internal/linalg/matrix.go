package linalg

import (
	"github.com/go-gl/mathgl/mgl64"
)

type (
	Mat3 = mgl64.Mat3
	Mat4 = mgl64.Mat4
)

const singularEpsilon = 1e-12

func Ident3() Mat3 { return mgl64.Ident3() }
func Ident4() Mat4 { return mgl64.Ident4() }

func Diag3(v Vec3) Mat3 { return mgl64.Diag3(v) }

// Transform returns the world transform translate(pos) * rotate(q).
func Transform(pos Vec3, q Quat) Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).Mul4(q.Mat4())
}

func Translation(pos Vec3) Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2])
}

func Rotation(q Quat) Mat3 {
	return q.Mat4().Mat3()
}

// TransformPoint applies the affine transform m to the point p.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// InverseTransformPoint maps a world point back through m. If m is singular
// the zero vector is returned together with ErrSingularMatrix.
func InverseTransformPoint(m Mat4, p Vec3) (Vec3, error) {
	inv, err := Inverse4(m)
	if err != nil {
		return Vec3{}, err
	}
	return TransformPoint(inv, p), nil
}

// RotateTensor expresses the body-space tensor t in world space: R t Rᵀ.
func RotateTensor(q Quat, t Mat3) Mat3 {
	r := Rotation(q)
	return r.Mul3(t).Mul3(r.Transpose())
}

// Inverse3 inverts m. Singular input yields the zero matrix and
// ErrSingularMatrix.
func Inverse3(m Mat3) (Mat3, error) {
	if mgl64.FloatEqualThreshold(m.Det(), 0, singularEpsilon) {
		return Mat3{}, ErrSingularMatrix
	}
	return m.Inv(), nil
}

// Inverse4 inverts m. Singular input yields the zero matrix and
// ErrSingularMatrix.
func Inverse4(m Mat4) (Mat4, error) {
	if mgl64.FloatEqualThreshold(m.Det(), 0, singularEpsilon) {
		return Mat4{}, ErrSingularMatrix
	}
	return m.Inv(), nil
}
