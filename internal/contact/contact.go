package contact

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Contact is a single point of contact. Normal points in the direction the
// first body must move to separate; Bodies[1] is nil for contacts against
// scenery.
type Contact struct {
	Bodies      [2]body.Body
	Normal      linalg.Vec3
	Penetration float64
	Restitution float64
}

// SeparatingVelocity is (v0 - v1) · n. Negative values mean the bodies are
// closing.
func (c *Contact) SeparatingVelocity() float64 {
	rel := c.Bodies[0].Velocity()
	if c.Bodies[1] != nil {
		rel = rel.Sub(c.Bodies[1].Velocity())
	}
	return rel.Dot(c.Normal)
}

func (c *Contact) totalInverseMass() float64 {
	total := c.Bodies[0].InverseMass()
	if c.Bodies[1] != nil {
		total += c.Bodies[1].InverseMass()
	}
	return total
}

// resolve applies the impulse and the positional correction and returns how
// far each body was moved.
func (c *Contact) resolve() [2]linalg.Vec3 {
	c.resolveVelocity()
	return c.resolveInterpenetration()
}

func (c *Contact) resolveVelocity() {
	sepVel := c.SeparatingVelocity()
	if sepVel > 0 {
		return
	}

	total := c.totalInverseMass()
	if total <= 0 {
		return
	}

	newSepVel := -sepVel * c.Restitution
	impulse := c.Normal.Mul((newSepVel - sepVel) / total)

	b0 := c.Bodies[0]
	b0.SetVelocity(b0.Velocity().Add(impulse.Mul(b0.InverseMass())))
	if b1 := c.Bodies[1]; b1 != nil {
		b1.SetVelocity(b1.Velocity().Sub(impulse.Mul(b1.InverseMass())))
	}
}

func (c *Contact) resolveInterpenetration() [2]linalg.Vec3 {
	var moved [2]linalg.Vec3
	if c.Penetration <= 0 {
		return moved
	}

	total := c.totalInverseMass()
	if total <= 0 {
		return moved
	}

	perIMass := c.Normal.Mul(c.Penetration / total)

	b0 := c.Bodies[0]
	moved[0] = perIMass.Mul(b0.InverseMass())
	b0.SetPosition(b0.Position().Add(moved[0]))
	if b1 := c.Bodies[1]; b1 != nil {
		moved[1] = perIMass.Mul(-b1.InverseMass())
		b1.SetPosition(b1.Position().Add(moved[1]))
	}
	return moved
}

func (c *Contact) String() string {
	second := "scenery"
	if c.Bodies[1] != nil {
		second = c.Bodies[1].Kind().String()
	}
	return fmt.Sprintf("contact(%s<->%s n=%v pen=%.4f e=%.2f)", c.Bodies[0].Kind(), second, c.Normal, c.Penetration, c.Restitution)
}
