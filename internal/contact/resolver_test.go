package contact

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

func floorContact(b body.Body, pen, restitution float64) Contact {
	return Contact{
		Bodies:      [2]body.Body{b, nil},
		Normal:      linalg.Up,
		Penetration: pen,
		Restitution: restitution,
	}
}

func TestResolveNoContacts(t *testing.T) {
	g := NewWithT(t)
	r := NewResolver(10)
	g.Expect(r.Resolve(nil)).To(Equal(0))
	g.Expect(r.IterationsUsed()).To(Equal(0))
}

func TestResolvePicksMostNegativeFirst(t *testing.T) {
	g := NewWithT(t)

	fast := particleAt(t, linalg.Vec3{}, 1)
	fast.SetVelocity(linalg.Vec3{0, -5, 0})
	slow := particleAt(t, linalg.Vec3{}, 1)
	slow.SetVelocity(linalg.Vec3{0, -1, 0})
	leaving := particleAt(t, linalg.Vec3{}, 1)
	leaving.SetVelocity(linalg.Vec3{0, 2, 0})

	contacts := []Contact{
		floorContact(slow, 0.1, 0.5),
		floorContact(fast, 0.1, 0.5),
		floorContact(leaving, 0, 0.5),
	}

	r := NewResolver(1)
	g.Expect(r.Resolve(contacts)).To(Equal(1))

	g.Expect(fast.Velocity()[1]).To(BeNumerically("~", 2.5, 1e-12))
	g.Expect(fast.Position()[1]).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(slow.Velocity()[1]).To(Equal(-1.0))
	g.Expect(slow.Position()[1]).To(Equal(0.0))
	g.Expect(leaving.Velocity()[1]).To(Equal(2.0))
}

func TestResolveStopsWhenSettled(t *testing.T) {
	g := NewWithT(t)

	p := particleAt(t, linalg.Vec3{0, -0.5, 0}, 1)
	p.SetVelocity(linalg.Vec3{0, -4, 0})
	contacts := []Contact{floorContact(p, 0.5, 0)}

	r := NewResolver(10)
	g.Expect(r.Resolve(contacts)).To(Equal(1))
	g.Expect(p.Velocity()).To(Equal(linalg.Vec3{0, 0, 0}))
	g.Expect(p.Position()[1]).To(BeNumerically("~", 0, 1e-12))
	g.Expect(contacts[0].Penetration).To(Equal(0.0))
}

func TestResolveSplitsByInverseMass(t *testing.T) {
	g := NewWithT(t)

	light := particleAt(t, linalg.Vec3{}, 3)
	heavy := particleAt(t, linalg.Vec3{}, 1)
	c := Contact{
		Bodies:      [2]body.Body{heavy, light},
		Normal:      linalg.Vec3{1, 0, 0},
		Penetration: 0.4,
	}

	NewResolver(1).Resolve([]Contact{c})

	g.Expect(heavy.Position()[0]).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(light.Position()[0]).To(BeNumerically("~", -0.3, 1e-12))
}

func TestResolveImpulseConservesMomentum(t *testing.T) {
	g := NewWithT(t)

	a := particleAt(t, linalg.Vec3{}, 0.5)
	a.SetVelocity(linalg.Vec3{-2, 0, 0})
	b := particleAt(t, linalg.Vec3{}, 1)
	b.SetVelocity(linalg.Vec3{3, 0, 0})
	contacts := []Contact{{
		Bodies:      [2]body.Body{a, b},
		Normal:      linalg.Vec3{1, 0, 0},
		Restitution: 1,
	}}

	before := a.Velocity().Mul(a.Mass()).Add(b.Velocity().Mul(b.Mass()))
	NewResolver(4).Resolve(contacts)
	after := a.Velocity().Mul(a.Mass()).Add(b.Velocity().Mul(b.Mass()))

	g.Expect(linalg.ApproxEqual(before, after, 1e-12)).To(BeTrue())
	g.Expect(contacts[0].SeparatingVelocity()).To(BeNumerically("~", 5, 1e-12))
}

func TestResolveImmovablePair(t *testing.T) {
	g := NewWithT(t)

	a := particleAt(t, linalg.Vec3{}, 0)
	b := particleAt(t, linalg.Vec3{3, 0, 0}, 0)
	out := make([]Contact, 1)
	n := NewCable(a, b, 1, 0).AddContact(out)
	g.Expect(n).To(Equal(1))

	NewResolver(4).Resolve(out[:n])
	g.Expect(a.Position()).To(Equal(linalg.Vec3{}))
	g.Expect(b.Position()).To(Equal(linalg.Vec3{3, 0, 0}))
}

func TestResolveAdjustsSharedPenetration(t *testing.T) {
	g := NewWithT(t)

	p := particleAt(t, linalg.Vec3{0, -0.2, 0}, 1)
	contacts := []Contact{
		floorContact(p, 0.2, 0),
		floorContact(p, 0.3, 0),
	}

	r := NewResolver(10)
	r.Resolve(contacts)

	// the second contact only needs the extra 0.1 once the first has lifted the body
	g.Expect(p.Position()[1]).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(r.IterationsUsed()).To(Equal(2))
}

func TestResolveSkipsImmovablePairAheadOfMovable(t *testing.T) {
	g := NewWithT(t)

	fixedA := particleAt(t, linalg.Vec3{}, 0)
	fixedB := particleAt(t, linalg.Vec3{2, 0, 0}, 0)
	a := particleAt(t, linalg.Vec3{0, 5, 0}, 1)
	b := particleAt(t, linalg.Vec3{1.5, 5, 0}, 1)

	out := make([]Contact, 2)
	n := NewRod(fixedA, fixedB, 1).AddContact(out)
	n += NewRod(a, b, 1).AddContact(out[n:])
	g.Expect(n).To(Equal(2))

	r := NewResolver(4)
	g.Expect(r.Resolve(out[:n])).To(Equal(1))
	g.Expect(a.Position().Sub(b.Position()).Len()).To(BeNumerically("~", 1, 1e-12))
	g.Expect(fixedA.Position()).To(Equal(linalg.Vec3{}))
	g.Expect(fixedB.Position()).To(Equal(linalg.Vec3{2, 0, 0}))
}

func TestResolveZeroNormalRodDoesNotStall(t *testing.T) {
	g := NewWithT(t)

	a := particleAt(t, linalg.Vec3{}, 1)
	b := particleAt(t, linalg.Vec3{}, 1)
	p := particleAt(t, linalg.Vec3{0, -0.2, 0}, 1)

	out := make([]Contact, 1)
	g.Expect(NewRod(a, b, 1).AddContact(out)).To(Equal(1))
	contacts := []Contact{out[0], floorContact(p, 0.2, 0)}

	r := NewResolver(10)
	g.Expect(r.Resolve(contacts)).To(Equal(2))
	g.Expect(contacts[0].Penetration).To(Equal(0.0))
	g.Expect(p.Position()[1]).To(BeNumerically("~", 0, 1e-12))
	g.Expect(a.Position()).To(Equal(linalg.Vec3{}))
}
