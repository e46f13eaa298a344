package contact

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Generator writes at most len(out) contacts into out and returns the count.
type Generator interface {
	AddContact(out []Contact) int
}

// Floor keeps a body above the plane y = FloorY.
type Floor struct {
	Body        body.Body
	FloorY      float64
	Restitution float64
}

func NewFloor(b body.Body, floorY, restitution float64) *Floor {
	return &Floor{Body: b, FloorY: floorY, Restitution: restitution}
}

func (f *Floor) AddContact(out []Contact) int {
	if len(out) == 0 {
		return 0
	}
	y := f.Body.Position()[1]
	if y > f.FloorY {
		return 0
	}
	out[0] = Contact{
		Bodies:      [2]body.Body{f.Body, nil},
		Normal:      linalg.Up,
		Penetration: f.FloorY - y,
		Restitution: f.Restitution,
	}
	return 1
}
