package shape

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
)

// BoundingSphere is the broad-phase volume.
type BoundingSphere struct {
	Center linalg.Vec3
	Radius float64
}

func NewBoundingSphere(center linalg.Vec3, radius float64) BoundingSphere {
	return BoundingSphere{Center: center, Radius: radius}
}

// Enclose returns the smallest sphere containing both a and b. When one
// sphere already contains the other the larger one is returned unchanged.
func Enclose(a, b BoundingSphere) BoundingSphere {
	offset := b.Center.Sub(a.Center)
	distSq := offset.LenSqr()
	radiusDiff := b.Radius - a.Radius

	if radiusDiff*radiusDiff >= distSq {
		if a.Radius > b.Radius {
			return a
		}
		return b
	}

	dist := math.Sqrt(distSq)
	radius := 0.5 * (dist + a.Radius + b.Radius)
	center := a.Center
	if dist > 0 {
		center = center.Add(offset.Mul((radius - a.Radius) / dist))
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// Overlaps reports whether the spheres intersect. Touching counts.
func (s BoundingSphere) Overlaps(other BoundingSphere) bool {
	distSq := s.Center.Sub(other.Center).LenSqr()
	r := s.Radius + other.Radius
	return distSq <= r*r
}

func (s BoundingSphere) Contains(other BoundingSphere) bool {
	if other.Radius > s.Radius {
		return false
	}
	d := s.Radius - other.Radius
	return s.Center.Sub(other.Center).LenSqr() <= d*d
}

func (s BoundingSphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

// Growth is how much the volume would increase if other were merged in.
func (s BoundingSphere) Growth(other BoundingSphere) float64 {
	return Enclose(s, other).Volume() - s.Volume()
}

func (s BoundingSphere) String() string {
	return fmt.Sprintf("sphere(c=[%.3f %.3f %.3f] r=%.3f)", s.Center[0], s.Center[1], s.Center[2], s.Radius)
}
