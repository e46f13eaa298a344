package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/contact"
	"github.com/san-kum/rigidsim/internal/force"
)

// ForceFactory adds the generators for one force entry to the scene and binds
// them to targets.
type ForceFactory func(f config.ForceConfig, scene *Scene, targets []body.Body) error

// ContactFactory returns the contact generators for one contact entry.
type ContactFactory func(c config.ContactConfig, bodies []body.Body) ([]contact.Generator, error)

type Registry struct {
	forces   map[string]ForceFactory
	contacts map[string]ContactFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		forces:   make(map[string]ForceFactory),
		contacts: make(map[string]ContactFactory),
	}

	r.forces[config.ForceGravity] = func(f config.ForceConfig, scene *Scene, targets []body.Body) error {
		scene.bind(force.NewGravity(f.G.Vec3()), targets)
		return nil
	}
	r.forces[config.ForceDrag] = func(f config.ForceConfig, scene *Scene, targets []body.Body) error {
		scene.bind(force.NewDrag(f.K1, f.K2), targets)
		return nil
	}
	r.forces[config.ForceBuoyancy] = func(f config.ForceConfig, scene *Scene, targets []body.Body) error {
		scene.bind(force.NewBuoyancy(f.MaxDepth, f.Volume, f.WaterHeight, f.LiquidDensity), targets)
		return nil
	}
	r.forces[config.ForceAttraction] = func(f config.ForceConfig, scene *Scene, targets []body.Body) error {
		source, ok := scene.Bodies[f.Source]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBody, f.Source)
		}
		scene.bind(force.NewAttraction(source, f.Strength), targets)
		return nil
	}
	r.forces[config.ForceSpring] = buildSpring

	r.contacts[config.ContactFloor] = func(c config.ContactConfig, bodies []body.Body) ([]contact.Generator, error) {
		gens := make([]contact.Generator, len(bodies))
		for i, b := range bodies {
			gens[i] = contact.NewFloor(b, c.FloorY, c.Restitution)
		}
		return gens, nil
	}
	r.contacts[config.ContactCable] = func(c config.ContactConfig, bodies []body.Body) ([]contact.Generator, error) {
		if len(bodies) != 2 {
			return nil, fmt.Errorf("%w: cable has %d bodies", ErrLinkArity, len(bodies))
		}
		return []contact.Generator{contact.NewCable(bodies[0], bodies[1], c.Length, c.Restitution)}, nil
	}
	r.contacts[config.ContactRod] = func(c config.ContactConfig, bodies []body.Body) ([]contact.Generator, error) {
		if len(bodies) != 2 {
			return nil, fmt.Errorf("%w: rod has %d bodies", ErrLinkArity, len(bodies))
		}
		return []contact.Generator{contact.NewRod(bodies[0], bodies[1], c.Length)}, nil
	}

	return r
}

func buildSpring(f config.ForceConfig, scene *Scene, targets []body.Body) error {
	apply := func(s *force.Spring) {
		if f.SpringDamping != nil {
			s.Damping = *f.SpringDamping
		}
	}

	if f.Anchor != nil {
		s := force.NewSpring(force.FixedAnchor(f.Anchor.Vec3()), f.K, f.RestLength, f.Push)
		s.Connection = f.Connection.Vec3()
		apply(s)
		scene.bind(s, targets)
		return nil
	}

	other, ok := scene.Bodies[f.Other]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, f.Other)
	}
	for _, b := range targets {
		forB, forOther := force.NewSpringPair(b, f.Connection.Vec3(), other, f.OtherConnection.Vec3(), f.K, f.RestLength, f.Push)
		apply(forB)
		apply(forOther)
		scene.bind(forB, []body.Body{b})
		scene.bind(forOther, []body.Body{other})
	}
	return nil
}

func (r *Registry) force(name string) (ForceFactory, error) {
	fn, ok := r.forces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForce, name)
	}
	return fn, nil
}

func (r *Registry) contact(name string) (ContactFactory, error) {
	fn, ok := r.contacts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContact, name)
	}
	return fn, nil
}

func (r *Registry) ListForces() []string   { return sortedKeys(r.forces) }
func (r *Registry) ListContacts() []string { return sortedKeys(r.contacts) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
