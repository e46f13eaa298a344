package contact

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Link joins two bodies by their centres.
type Link struct {
	Bodies [2]body.Body
}

func (l Link) CurrentLength() float64 {
	return linalg.Distance(l.Bodies[1].Position(), l.Bodies[0].Position())
}

// direction is the unit vector from the first body toward the second.
func (l Link) direction() linalg.Vec3 {
	return linalg.Normalized(l.Bodies[1].Position().Sub(l.Bodies[0].Position()))
}

// Cable lets two bodies move freely while closer than MaxLength.
type Cable struct {
	Link
	MaxLength   float64
	Restitution float64
}

func NewCable(a, b body.Body, maxLength, restitution float64) *Cable {
	return &Cable{Link: Link{Bodies: [2]body.Body{a, b}}, MaxLength: maxLength, Restitution: restitution}
}

func (c *Cable) AddContact(out []Contact) int {
	if len(out) == 0 {
		return 0
	}
	length := c.CurrentLength()
	if length < c.MaxLength {
		return 0
	}
	out[0] = Contact{
		Bodies:      c.Bodies,
		Normal:      c.direction(),
		Penetration: length - c.MaxLength,
		Restitution: c.Restitution,
	}
	return 1
}

// Rod holds two bodies at exactly Length. Its contacts never bounce.
type Rod struct {
	Link
	Length float64
}

func NewRod(a, b body.Body, length float64) *Rod {
	return &Rod{Link: Link{Bodies: [2]body.Body{a, b}}, Length: length}
}

func (r *Rod) AddContact(out []Contact) int {
	if len(out) == 0 {
		return 0
	}
	current := r.CurrentLength()
	// exact: a settled rod still emits contacts with ~1e-16 penetration
	if current == r.Length {
		return 0
	}

	normal := r.direction()
	penetration := current - r.Length
	if current < r.Length {
		normal = normal.Mul(-1)
		penetration = r.Length - current
	}

	out[0] = Contact{
		Bodies:      r.Bodies,
		Normal:      normal,
		Penetration: penetration,
		Restitution: 0,
	}
	return 1
}
