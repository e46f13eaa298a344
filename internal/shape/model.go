package shape

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
)

type Kind int

const (
	KindPoint Kind = iota
	KindSphere
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Model is the shared, immutable description of a body's geometry.
type Model interface {
	Kind() Kind
	// InverseInertiaTensor returns the body-space inverse inertia tensor for
	// a body with the given inverse mass. Infinite mass (inverseMass == 0)
	// yields the zero tensor without error.
	InverseInertiaTensor(inverseMass float64) (linalg.Mat3, error)
	BoundingRadius() float64
	String() string
}

// Point has no rotational inertia. The radius only sizes its bounding sphere.
type Point struct {
	Radius float64
}

func NewPoint(radius float64) Point { return Point{Radius: radius} }

func (Point) Kind() Kind { return KindPoint }

func (Point) InverseInertiaTensor(float64) (linalg.Mat3, error) {
	return linalg.Mat3{}, nil
}

func (p Point) BoundingRadius() float64 { return p.Radius }

func (p Point) String() string { return fmt.Sprintf("point(r=%g)", p.Radius) }

// Sphere is a solid ball.
type Sphere struct {
	Radius float64
}

func NewSphere(radius float64) Sphere { return Sphere{Radius: radius} }

func (Sphere) Kind() Kind { return KindSphere }

func (s Sphere) InverseInertiaTensor(inverseMass float64) (linalg.Mat3, error) {
	if inverseMass == 0 {
		return linalg.Mat3{}, nil
	}
	moment := 0.4 * (1 / inverseMass) * s.Radius * s.Radius
	return linalg.Inverse3(linalg.Diag3(linalg.Vec3{moment, moment, moment}))
}

func (s Sphere) BoundingRadius() float64 { return s.Radius }

func (s Sphere) String() string { return fmt.Sprintf("sphere(r=%g)", s.Radius) }

// Box is a solid rectangular prism with full edge lengths Size.
type Box struct {
	Size linalg.Vec3
}

func NewBox(x, y, z float64) Box { return Box{Size: linalg.Vec3{x, y, z}} }

func (Box) Kind() Kind { return KindBox }

func (b Box) InverseInertiaTensor(inverseMass float64) (linalg.Mat3, error) {
	if inverseMass == 0 {
		return linalg.Mat3{}, nil
	}
	x2, y2, z2 := b.Size[0]*b.Size[0], b.Size[1]*b.Size[1], b.Size[2]*b.Size[2]
	k := (1 / inverseMass) / 12
	inertia := linalg.Diag3(linalg.Vec3{k * (y2 + z2), k * (x2 + z2), k * (x2 + y2)})
	return linalg.Inverse3(inertia)
}

// BoundingRadius is half the box diagonal.
func (b Box) BoundingRadius() float64 {
	return 0.5 * math.Sqrt(b.Size.LenSqr())
}

func (b Box) String() string {
	return fmt.Sprintf("box(%gx%gx%g)", b.Size[0], b.Size[1], b.Size[2])
}
