package config

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("config: invalid scenario")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Validate reports every problem in the scenario at once.
func (s *Scenario) Validate() error {
	var err error

	if s.Dt <= 0 {
		err = multierr.Append(err, invalid("dt must be positive, got %g", s.Dt))
	}
	if s.Duration <= 0 {
		err = multierr.Append(err, invalid("duration must be positive, got %g", s.Duration))
	}
	if s.Jitter < 0 {
		err = multierr.Append(err, invalid("jitter must not be negative, got %g", s.Jitter))
	}
	if s.World.MaxContacts <= 0 {
		err = multierr.Append(err, invalid("world.max_contacts must be positive, got %d", s.World.MaxContacts))
	}
	if s.World.ContactIterations < 0 {
		err = multierr.Append(err, invalid("world.contact_iterations must not be negative"))
	}
	if c := s.World.Collisions; c.Enabled && (c.Restitution < 0 || c.Restitution > 1) {
		err = multierr.Append(err, invalid("world.collisions.restitution %g outside [0, 1]", c.Restitution))
	}
	if len(s.Bodies) == 0 {
		err = multierr.Append(err, invalid("no bodies"))
	}

	names := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		err = multierr.Append(err, b.validate(i))
		if b.Name != "" && names[b.Name] {
			err = multierr.Append(err, invalid("bodies[%d]: duplicate name %q", i, b.Name))
		}
		names[b.Name] = true
	}

	for i, f := range s.Forces {
		err = multierr.Append(err, f.validate(i, names))
	}
	for i, c := range s.Contacts {
		err = multierr.Append(err, c.validate(i, names))
	}
	for _, name := range s.Track {
		if !names[name] {
			err = multierr.Append(err, invalid("track: unknown body %q", name))
		}
	}
	return err
}

func (b BodyConfig) validate(i int) error {
	var err error
	if b.Name == "" {
		err = multierr.Append(err, invalid("bodies[%d]: missing name", i))
	}
	if b.Kind != KindParticle && b.Kind != KindRigid {
		err = multierr.Append(err, invalid("bodies[%d]: unknown kind %q", i, b.Kind))
	}
	if b.InverseMass != nil && (*b.InverseMass < 0 || math.IsNaN(*b.InverseMass)) {
		err = multierr.Append(err, invalid("bodies[%d]: inverse_mass must not be negative", i))
	}
	if b.InverseMass == nil && b.Mass != nil && !(*b.Mass > 0) {
		err = multierr.Append(err, invalid("bodies[%d]: mass must be positive; use inverse_mass: 0 for immovable bodies", i))
	}
	switch b.Shape.Type {
	case "", ShapePoint:
		if b.Kind == KindRigid && b.ResolvedInverseMass() > 0 {
			err = multierr.Append(err, invalid("bodies[%d]: a movable rigid body needs a sphere or box shape", i))
		}
	case ShapeSphere:
		if b.Shape.Radius <= 0 {
			err = multierr.Append(err, invalid("bodies[%d]: sphere radius must be positive", i))
		}
	case ShapeBox:
		if b.Shape.Size[0] <= 0 || b.Shape.Size[1] <= 0 || b.Shape.Size[2] <= 0 {
			err = multierr.Append(err, invalid("bodies[%d]: box size must be positive", i))
		}
	default:
		err = multierr.Append(err, invalid("bodies[%d]: unknown shape %q", i, b.Shape.Type))
	}
	return err
}

func (f ForceConfig) validate(i int, names map[string]bool) error {
	var err error
	err = multierr.Append(err, knownBodies(fmt.Sprintf("forces[%d]", i), f.Bodies, names))

	switch f.Type {
	case ForceGravity, ForceDrag:
	case ForceSpring:
		if len(f.Bodies) == 0 {
			err = multierr.Append(err, invalid("forces[%d]: spring needs at least one body", i))
		}
		if (f.Anchor == nil) == (f.Other == "") {
			err = multierr.Append(err, invalid("forces[%d]: spring needs exactly one of anchor and other", i))
		}
		if f.Other != "" && !names[f.Other] {
			err = multierr.Append(err, invalid("forces[%d]: unknown body %q", i, f.Other))
		}
		if f.RestLength < 0 {
			err = multierr.Append(err, invalid("forces[%d]: rest_length must not be negative", i))
		}
	case ForceAttraction:
		if !names[f.Source] {
			err = multierr.Append(err, invalid("forces[%d]: unknown source %q", i, f.Source))
		}
	case ForceBuoyancy:
		if f.MaxDepth <= 0 {
			err = multierr.Append(err, invalid("forces[%d]: max_depth must be positive", i))
		}
	default:
		err = multierr.Append(err, invalid("forces[%d]: unknown type %q", i, f.Type))
	}
	return err
}

func (c ContactConfig) validate(i int, names map[string]bool) error {
	var err error
	err = multierr.Append(err, knownBodies(fmt.Sprintf("contacts[%d]", i), c.Bodies, names))

	if c.Restitution < 0 || c.Restitution > 1 {
		err = multierr.Append(err, invalid("contacts[%d]: restitution %g outside [0, 1]", i, c.Restitution))
	}
	switch c.Type {
	case ContactFloor:
		if len(c.Bodies) == 0 {
			err = multierr.Append(err, invalid("contacts[%d]: floor needs at least one body", i))
		}
	case ContactCable, ContactRod:
		if len(c.Bodies) != 2 {
			err = multierr.Append(err, invalid("contacts[%d]: %s joins exactly two bodies, got %d", i, c.Type, len(c.Bodies)))
		}
		if c.Length <= 0 {
			err = multierr.Append(err, invalid("contacts[%d]: length must be positive", i))
		}
	default:
		err = multierr.Append(err, invalid("contacts[%d]: unknown type %q", i, c.Type))
	}
	return err
}

func knownBodies(where string, bodies []string, names map[string]bool) error {
	var err error
	for _, name := range bodies {
		if !names[name] {
			err = multierr.Append(err, invalid("%s: unknown body %q", where, name))
		}
	}
	return err
}
