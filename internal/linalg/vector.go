package linalg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type (
	Vec3 = mgl64.Vec3
	Vec4 = mgl64.Vec4
)

var (
	Zero = Vec3{}
	Up   = Vec3{0, 1, 0}
)

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged instead of producing NaN or Inf components.
func Normalized(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func IsZero(v Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// IsFinite reports whether every component is neither NaN nor infinite.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares a and b component-wise with an absolute tolerance.
func ApproxEqual(a, b Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
