package world

import (
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/bvh"
	"github.com/san-kum/rigidsim/internal/contact"
	"github.com/san-kum/rigidsim/internal/force"
	"github.com/san-kum/rigidsim/internal/logging"
)

type Config struct {
	MaxContacts int
	// ContactIterations is the resolver budget per step. Zero resolves up to
	// twice the number of contacts found.
	ContactIterations int
}

func DefaultConfig() Config {
	return Config{MaxContacts: 256}
}

// StepStats describes the most recent Update.
type StepStats struct {
	Step       int
	Time       float64
	Contacts   int
	Iterations int
	// Dropped counts contact generators skipped because the buffer was full.
	Dropped int
	// Pairs is the number of broad-phase pairs examined.
	Pairs int
}

type Option func(*World)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *World) { w.logger = logger }
}

// WithCollisions enables body-body contacts from bounding-sphere overlap.
// pairBudget caps the broad-phase pairs examined per step; zero uses the
// remaining contact budget.
func WithCollisions(restitution float64, pairBudget int) Option {
	return func(w *World) {
		w.broadphase = bvh.New[body.Body]()
		w.collisions = contact.NewSphereCollisions(w.broadphase, restitution, pairBudget)
	}
}

type World struct {
	cfg Config

	bodies            []body.Body
	forces            []force.Generator
	registry          *force.Registry
	contactGenerators []contact.Generator

	contacts     []contact.Contact
	usedContacts int
	resolver     *contact.Resolver

	broadphase *bvh.Tree[body.Body]
	collisions *contact.SphereCollisions

	logger *zap.SugaredLogger
	stats  StepStats
	time   float64
	steps  int
}

func New(cfg Config, opts ...Option) (*World, error) {
	if cfg.MaxContacts <= 0 {
		return nil, ErrInvalidContactLimit
	}
	if cfg.ContactIterations < 0 {
		return nil, ErrInvalidIterations
	}

	w := &World{
		cfg:      cfg,
		registry: force.NewRegistry(),
		contacts: make([]contact.Contact, cfg.MaxContacts),
		resolver: contact.NewResolver(cfg.ContactIterations),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *World) Config() Config { return w.cfg }

func (w *World) AddObject(b body.Body) {
	w.bodies = append(w.bodies, b)
	if w.broadphase != nil {
		w.broadphase.Insert(b)
	}
	w.logger.Debugw("body added", "body", b.String(), "count", len(w.bodies))
}

// RemoveObject drops b along with its force registrations and its broad-phase
// entry. Contact generators referring to b are left to the caller.
func (w *World) RemoveObject(b body.Body) bool {
	idx := -1
	for i, existing := range w.bodies {
		if existing == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	regs := w.registry.RemoveBody(b)
	if w.broadphase != nil {
		w.broadphase.Remove(b)
	}
	w.logger.Debugw("body removed", "body", b.String(), "registrations", regs)
	return true
}

func (w *World) Bodies() []body.Body {
	out := make([]body.Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// AddForceGenerator hands g to the world. It has no effect until bound to a
// body with ApplyForceToObject.
func (w *World) AddForceGenerator(g force.Generator) {
	w.forces = append(w.forces, g)
}

func (w *World) ForceGenerators() []force.Generator {
	out := make([]force.Generator, len(w.forces))
	copy(out, w.forces)
	return out
}

func (w *World) ApplyForceToObject(b body.Body, g force.Generator) {
	w.registry.Add(b, g)
}

func (w *World) RemoveForceFromObject(b body.Body, g force.Generator) bool {
	return w.registry.Remove(b, g)
}

func (w *World) Registry() *force.Registry { return w.registry }

func (w *World) AddContactGenerator(g contact.Generator) {
	w.contactGenerators = append(w.contactGenerators, g)
}

func (w *World) ContactGenerators() []contact.Generator {
	out := make([]contact.Generator, len(w.contactGenerators))
	copy(out, w.contactGenerators)
	return out
}

func (w *World) RemoveContactGenerator(g contact.Generator) bool {
	for i, existing := range w.contactGenerators {
		if existing == g {
			w.contactGenerators = append(w.contactGenerators[:i], w.contactGenerators[i+1:]...)
			return true
		}
	}
	return false
}

// Broadphase returns the collision tree, or nil when collisions are off.
func (w *World) Broadphase() *bvh.Tree[body.Body] { return w.broadphase }

// Contacts returns the contacts produced by the last Update. The slice is
// reused by the next Update.
func (w *World) Contacts() []contact.Contact { return w.contacts[:w.usedContacts] }

func (w *World) Stats() StepStats { return w.stats }
func (w *World) Time() float64    { return w.time }
func (w *World) Steps() int       { return w.steps }

// Update advances the world by dt seconds.
func (w *World) Update(dt float64) {
	stats := StepStats{Step: w.steps}

	w.registry.UpdateForces(dt)

	for _, b := range w.bodies {
		b.Update(dt)
	}

	used, dropped := w.generateContacts()
	w.usedContacts = used
	stats.Contacts = used
	stats.Dropped = dropped
	if w.collisions != nil {
		stats.Pairs = w.collisions.LastPairs()
	}

	if used > 0 {
		if w.cfg.ContactIterations == 0 {
			w.resolver.SetIterations(2 * used)
		}
		stats.Iterations = w.resolver.Resolve(w.contacts[:used])
	}

	w.steps++
	w.time += dt
	stats.Time = w.time
	w.stats = stats
}

func (w *World) generateContacts() (used, dropped int) {
	gens := w.contactGenerators
	if w.collisions != nil {
		gens = append(gens[:len(gens):len(gens)], w.collisions)
	}

	limit := len(w.contacts)
	for i, g := range gens {
		used += g.AddContact(w.contacts[used:])
		if used >= limit {
			dropped = len(gens) - i - 1
			if dropped > 0 {
				w.logger.Debugw("contact buffer exhausted", "step", w.steps, "limit", limit, "skipped", dropped)
			}
			break
		}
	}
	return used, dropped
}
