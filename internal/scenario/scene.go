package scenario

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/force"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/shape"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/world"
)

// Scene is a built world plus the names its bodies were declared with.
type Scene struct {
	Config *config.Scenario
	World  *world.World
	Bodies map[string]body.Body
	// Order is the declaration order of Bodies.
	Order []string
}

func (s *Scene) Body(name string) (body.Body, bool) {
	b, ok := s.Bodies[name]
	return b, ok
}

// SimConfig returns the run settings declared by the scenario.
func (s *Scene) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = s.Config.Dt
	cfg.Duration = s.Config.Duration
	cfg.Seed = s.Config.Seed
	return cfg
}

// Gravity is the downward acceleration of the first gravity force, or zero.
func (s *Scene) Gravity() float64 {
	for _, f := range s.Config.Forces {
		if f.Type == config.ForceGravity {
			return -f.G[1]
		}
	}
	return 0
}

func (s *Scene) bind(g force.Generator, targets []body.Body) {
	s.World.AddForceGenerator(g)
	for _, b := range targets {
		s.World.ApplyForceToObject(b, g)
	}
}

func (s *Scene) lookup(names []string) ([]body.Body, error) {
	out := make([]body.Body, len(names))
	for i, name := range names {
		b, ok := s.Bodies[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		out[i] = b
	}
	return out, nil
}

// Build validates sc and constructs its world.
func (r *Registry) Build(sc *config.Scenario, logger *zap.SugaredLogger) (*Scene, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	opts := []world.Option{world.WithLogger(logger)}
	if c := sc.World.Collisions; c.Enabled {
		opts = append(opts, world.WithCollisions(c.Restitution, c.PairBudget))
	}
	w, err := world.New(world.Config{
		MaxContacts:       sc.World.MaxContacts,
		ContactIterations: sc.World.ContactIterations,
	}, opts...)
	if err != nil {
		return nil, err
	}

	scene := &Scene{
		Config: sc,
		World:  w,
		Bodies: make(map[string]body.Body, len(sc.Bodies)),
		Order:  make([]string, 0, len(sc.Bodies)),
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	for _, bc := range sc.Bodies {
		b, err := buildBody(bc)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.Name, err)
		}
		if sc.Jitter > 0 && b.HasFiniteMass() {
			offset := linalg.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
			b.SetPosition(b.Position().Add(offset.Mul(sc.Jitter)))
		}
		w.AddObject(b)
		scene.Bodies[bc.Name] = b
		scene.Order = append(scene.Order, bc.Name)
	}

	for i, fc := range sc.Forces {
		fn, err := r.force(fc.Type)
		if err != nil {
			return nil, err
		}
		targets, err := scene.forceTargets(fc)
		if err != nil {
			return nil, fmt.Errorf("forces[%d]: %w", i, err)
		}
		if err := fn(fc, scene, targets); err != nil {
			return nil, fmt.Errorf("forces[%d]: %w", i, err)
		}
	}

	for i, cc := range sc.Contacts {
		fn, err := r.contact(cc.Type)
		if err != nil {
			return nil, err
		}
		bodies, err := scene.lookup(cc.Bodies)
		if err != nil {
			return nil, fmt.Errorf("contacts[%d]: %w", i, err)
		}
		gens, err := fn(cc, bodies)
		if err != nil {
			return nil, fmt.Errorf("contacts[%d]: %w", i, err)
		}
		for _, g := range gens {
			w.AddContactGenerator(g)
		}
	}

	logger.Infow("scenario built",
		"name", sc.Name,
		"bodies", len(scene.Order),
		"registrations", w.Registry().Len(),
		"contact_generators", len(w.ContactGenerators()),
		"collisions", sc.World.Collisions.Enabled,
	)
	return scene, nil
}

// forceTargets resolves the bodies a force acts on. An empty list means
// every body, except an attraction's own source.
func (s *Scene) forceTargets(f config.ForceConfig) ([]body.Body, error) {
	if len(f.Bodies) > 0 {
		return s.lookup(f.Bodies)
	}
	targets := make([]body.Body, 0, len(s.Order))
	for _, name := range s.Order {
		if f.Type == config.ForceAttraction && name == f.Source {
			continue
		}
		targets = append(targets, s.Bodies[name])
	}
	return targets, nil
}

func buildShape(sc config.ShapeConfig) shape.Model {
	switch sc.Type {
	case config.ShapeSphere:
		return shape.NewSphere(sc.Radius)
	case config.ShapeBox:
		return shape.NewBox(sc.Size[0], sc.Size[1], sc.Size[2])
	default:
		return shape.NewPoint(sc.Radius)
	}
}

func buildBody(bc config.BodyConfig) (body.Body, error) {
	params := body.Params{
		Position:    bc.Position.Vec3(),
		Velocity:    bc.Velocity.Vec3(),
		InverseMass: bc.ResolvedInverseMass(),
		Damping:     bc.Damping,
		Shape:       buildShape(bc.Shape),
	}

	if bc.Kind == config.KindRigid {
		o := bc.Orientation
		r, err := body.NewRigidBody(body.RigidParams{
			Params:          params,
			Orientation:     linalg.FromEuler(o[0], o[1], o[2]),
			AngularVelocity: bc.AngularVelocity.Vec3(),
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	p, err := body.NewParticle(params)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Build uses a fresh default registry.
func Build(sc *config.Scenario, logger *zap.SugaredLogger) (*Scene, error) {
	return NewRegistry().Build(sc, logger)
}

// DefaultMetrics returns the metrics every scenario run reports.
func DefaultMetrics(scene *Scene) []sim.Metric {
	g := scene.Gravity()
	ms := []sim.Metric{
		metrics.NewEnergy(g),
		metrics.NewEnergyDrift(g),
		metrics.NewContactLoad(),
		metrics.NewStability(100),
	}
	if tracked := scene.Config.TrackedBodies(); len(tracked) > 0 {
		if b, ok := scene.Bodies[tracked[0]]; ok {
			ms = append(ms, metrics.NewPeakHeight(b))
		}
	}
	return ms
}

// NewSimulator wires the scene's tracked bodies and default metrics.
func NewSimulator(scene *Scene) (*sim.Simulator, error) {
	s := sim.New(scene.World)
	for _, name := range scene.Config.TrackedBodies() {
		b, ok := scene.Bodies[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		if err := s.Track(name, b); err != nil {
			return nil, err
		}
	}
	for _, m := range DefaultMetrics(scene) {
		s.AddMetric(m)
	}
	return s, nil
}
