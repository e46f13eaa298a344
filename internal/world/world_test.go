package world_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/contact"
	"github.com/san-kum/rigidsim/internal/force"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/shape"
	"github.com/san-kum/rigidsim/internal/world"
)

func newParticle(pos linalg.Vec3, inverseMass float64) *body.Particle {
	p, err := body.NewParticle(body.Params{Position: pos, InverseMass: inverseMass})
	Expect(err).NotTo(HaveOccurred())
	return p
}

func newWorld(opts ...world.Option) *world.World {
	w, err := world.New(world.DefaultConfig(), opts...)
	Expect(err).NotTo(HaveOccurred())
	return w
}

// recorder records the position its body had each time it was asked for a force
// or a contact.
type recorder struct {
	b      body.Body
	forces []linalg.Vec3
	checks []linalg.Vec3
}

func (p *recorder) UpdateForce(b body.Body, _ float64) { p.forces = append(p.forces, b.Position()) }

func (p *recorder) AddContact(out []contact.Contact) int {
	p.checks = append(p.checks, p.b.Position())
	return 0
}

// always reports one floor contact for its body regardless of position.
type always struct {
	b     body.Body
	calls int
}

func (a *always) AddContact(out []contact.Contact) int {
	a.calls++
	if len(out) == 0 {
		return 0
	}
	out[0] = contact.Contact{Bodies: [2]body.Body{a.b, nil}, Normal: linalg.Up}
	return 1
}

var _ = Describe("World", func() {
	Describe("New", func() {
		It("rejects a world without contact capacity", func() {
			_, err := world.New(world.Config{MaxContacts: 0})
			Expect(err).To(MatchError(world.ErrInvalidContactLimit))
		})

		It("rejects negative iterations", func() {
			_, err := world.New(world.Config{MaxContacts: 4, ContactIterations: -1})
			Expect(err).To(MatchError(world.ErrInvalidIterations))
		})
	})

	Describe("a bouncing particle", func() {
		It("rebounds to restitution squared times the drop height", func() {
			w := newWorld()
			p := newParticle(linalg.Vec3{0, 10, 0}, 1)
			w.AddObject(p)
			gravity := force.NewGravity(linalg.Vec3{0, -10, 0})
			w.AddForceGenerator(gravity)
			w.ApplyForceToObject(p, gravity)
			w.AddContactGenerator(contact.NewFloor(p, 0, 0.5))

			bounced := false
			peak := 0.0
			for i := 0; i < 5000; i++ {
				w.Update(0.001)
				vy := p.Velocity()[1]
				if vy > 0 {
					bounced = true
				}
				if bounced {
					peak = max(peak, p.Position()[1])
					if vy <= 0 {
						break
					}
				}
			}

			Expect(bounced).To(BeTrue())
			Expect(peak).To(BeNumerically("~", 2.5, 0.1))
			Expect(w.Steps()).To(BeNumerically("<", 5000))
		})
	})

	Describe("a rod", func() {
		It("pulls two bodies back to its length without bounce", func() {
			w := newWorld()
			a := newParticle(linalg.Vec3{0, 0, 0}, 1)
			b := newParticle(linalg.Vec3{1.5, 0, 0}, 1)
			a.SetVelocity(linalg.Vec3{-1, 0, 0})
			b.SetVelocity(linalg.Vec3{1, 0, 0})
			w.AddObject(a)
			w.AddObject(b)
			rod := contact.NewRod(a, b, 1)
			w.AddContactGenerator(rod)

			w.Update(0.001)
			Expect(w.Stats().Contacts).To(Equal(1))

			for i := 0; i < 50; i++ {
				w.Update(0.001)
			}
			Expect(rod.CurrentLength()).To(BeNumerically("~", 1, 1e-6))
			rel := b.Velocity().Sub(a.Velocity())
			Expect(rel[0]).To(BeNumerically("~", 0, 1e-9))
		})
	})

	Describe("Update", func() {
		It("applies forces before integrating and generates contacts after", func() {
			w := newWorld()
			p := newParticle(linalg.Vec3{0, 5, 0}, 1)
			p.SetVelocity(linalg.Vec3{0, -1, 0})
			w.AddObject(p)
			pr := &recorder{b: p}
			w.ApplyForceToObject(p, pr)
			w.AddContactGenerator(pr)

			w.Update(0.5)

			Expect(pr.forces).To(Equal([]linalg.Vec3{{0, 5, 0}}))
			Expect(pr.checks).To(Equal([]linalg.Vec3{{0, 4.5, 0}}))
			Expect(w.Time()).To(Equal(0.5))
			Expect(w.Stats().Step).To(Equal(0))
			Expect(w.Stats().Contacts).To(Equal(0))
			Expect(w.Stats().Iterations).To(Equal(0))
		})

		It("stops generating once the contact buffer is full", func() {
			logger, logs := logging.NewObservedTestLogger(GinkgoTB())
			w, err := world.New(world.Config{MaxContacts: 2}, world.WithLogger(logger))
			Expect(err).NotTo(HaveOccurred())

			gens := make([]*always, 4)
			for i := range gens {
				p := newParticle(linalg.Vec3{}, 1)
				w.AddObject(p)
				gens[i] = &always{b: p}
				w.AddContactGenerator(gens[i])
			}

			w.Update(0.01)

			Expect(w.Stats().Contacts).To(Equal(2))
			Expect(w.Stats().Dropped).To(Equal(2))
			Expect(w.Contacts()).To(HaveLen(2))
			Expect(gens[0].calls).To(Equal(1))
			Expect(gens[1].calls).To(Equal(1))
			Expect(gens[2].calls).To(Equal(0))
			Expect(gens[3].calls).To(Equal(0))

			entries := logs.FilterMessage("contact buffer exhausted").All()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ContextMap()).To(HaveKeyWithValue("skipped", int64(2)))
		})

		It("resolves with twice as many iterations as contacts by default", func() {
			w := newWorld()
			for i := 0; i < 3; i++ {
				p := newParticle(linalg.Vec3{float64(i), -0.1, 0}, 1)
				p.SetVelocity(linalg.Vec3{0, -1, 0})
				w.AddObject(p)
				w.AddContactGenerator(contact.NewFloor(p, 0, 0))
			}

			w.Update(0.001)

			Expect(w.Stats().Contacts).To(Equal(3))
			Expect(w.Stats().Iterations).To(BeNumerically(">=", 3))
			Expect(w.Stats().Iterations).To(BeNumerically("<=", 6))
			for _, b := range w.Bodies() {
				Expect(b.Position()[1]).To(BeNumerically("~", 0, 1e-12))
				Expect(b.Velocity()[1]).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("never moves an immovable body", func() {
			w := newWorld()
			ground := newParticle(linalg.Vec3{0, -1, 0}, 0)
			w.AddObject(ground)
			gravity := force.NewGravity(linalg.Vec3{0, -9.81, 0})
			w.ApplyForceToObject(ground, gravity)
			w.AddContactGenerator(contact.NewFloor(ground, 0, 0.5))

			for i := 0; i < 100; i++ {
				w.Update(0.01)
			}

			Expect(ground.Position()).To(Equal(linalg.Vec3{0, -1, 0}))
			Expect(ground.Velocity()).To(Equal(linalg.Vec3{}))
			Expect(w.Stats().Contacts).To(Equal(1))
		})

		It("still corrects a rod added after a link between two immovable bodies", func() {
			w := newWorld()
			fixedA := newParticle(linalg.Vec3{}, 0)
			fixedB := newParticle(linalg.Vec3{2, 0, 0}, 0)
			a := newParticle(linalg.Vec3{0, 2, 0}, 1)
			b := newParticle(linalg.Vec3{1.5, 2, 0}, 1)
			for _, p := range []body.Body{fixedA, fixedB, a, b} {
				w.AddObject(p)
			}
			w.AddContactGenerator(contact.NewRod(fixedA, fixedB, 1))
			w.AddContactGenerator(contact.NewRod(a, b, 1))

			for i := 0; i < 200; i++ {
				w.Update(0.001)
			}

			Expect(a.Position().Sub(b.Position()).Len()).To(BeNumerically("~", 1, 1e-9))
			Expect(fixedB.Position()).To(Equal(linalg.Vec3{2, 0, 0}))
		})
	})

	Describe("RemoveObject", func() {
		It("drops the body and its force registrations", func() {
			w := newWorld()
			p := newParticle(linalg.Vec3{0, 1, 0}, 1)
			q := newParticle(linalg.Vec3{0, 2, 0}, 1)
			w.AddObject(p)
			w.AddObject(q)
			gravity := force.NewGravity(linalg.Vec3{0, -10, 0})
			w.ApplyForceToObject(p, gravity)
			w.ApplyForceToObject(q, gravity)

			Expect(w.RemoveObject(p)).To(BeTrue())
			Expect(w.RemoveObject(p)).To(BeFalse())
			Expect(w.Bodies()).To(ConsistOf(body.Body(q)))
			Expect(w.Registry().Len()).To(Equal(1))

			w.Update(0.1)
			Expect(p.Position()).To(Equal(linalg.Vec3{0, 1, 0}))
			Expect(q.Velocity()[1]).To(BeNumerically("~", -1, 1e-12))
		})

		It("unbinds a single force", func() {
			w := newWorld()
			p := newParticle(linalg.Vec3{}, 1)
			w.AddObject(p)
			gravity := force.NewGravity(linalg.Vec3{0, -10, 0})
			w.ApplyForceToObject(p, gravity)

			Expect(w.RemoveForceFromObject(p, gravity)).To(BeTrue())
			w.Update(0.1)
			Expect(p.Velocity()).To(Equal(linalg.Vec3{}))
		})

		It("removes a contact generator", func() {
			w := newWorld()
			p := newParticle(linalg.Vec3{0, -1, 0}, 1)
			w.AddObject(p)
			floor := contact.NewFloor(p, 0, 0)
			w.AddContactGenerator(floor)

			Expect(w.RemoveContactGenerator(floor)).To(BeTrue())
			Expect(w.RemoveContactGenerator(floor)).To(BeFalse())
			w.Update(0.01)
			Expect(w.Stats().Contacts).To(Equal(0))
		})
	})

	Describe("with collisions", func() {
		newBall := func(pos, vel linalg.Vec3) *body.Particle {
			p, err := body.NewParticle(body.Params{
				Position:    pos,
				Velocity:    vel,
				InverseMass: 1,
				Shape:       shape.NewSphere(0.5),
			})
			Expect(err).NotTo(HaveOccurred())
			return p
		}

		It("keeps every body in the broad phase", func() {
			w := newWorld(world.WithCollisions(1, 0))
			a := newBall(linalg.Vec3{}, linalg.Vec3{})
			b := newBall(linalg.Vec3{5, 0, 0}, linalg.Vec3{})
			w.AddObject(a)
			w.AddObject(b)
			Expect(w.Broadphase().Len()).To(Equal(2))

			w.RemoveObject(a)
			Expect(w.Broadphase().Len()).To(Equal(1))
			Expect(w.Broadphase().Contains(b)).To(BeTrue())
		})

		It("bounces two approaching spheres apart", func() {
			w := newWorld(world.WithCollisions(1, 0))
			a := newBall(linalg.Vec3{-0.6, 0, 0}, linalg.Vec3{1, 0, 0})
			b := newBall(linalg.Vec3{0.6, 0, 0}, linalg.Vec3{-1, 0, 0})
			w.AddObject(a)
			w.AddObject(b)

			for i := 0; i < 30; i++ {
				w.Update(0.01)
			}

			Expect(a.Velocity()[0]).To(BeNumerically("~", -1, 1e-9))
			Expect(b.Velocity()[0]).To(BeNumerically("~", 1, 1e-9))
			Expect(b.Position()[0] - a.Position()[0]).To(BeNumerically(">", 1))
		})

		It("has no broad phase unless enabled", func() {
			Expect(newWorld().Broadphase()).To(BeNil())
		})
	})
})
