package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/world"
)

type trackedBody struct {
	name string
	body body.Body
}

// Simulator drives a world with a fixed timestep and records what happens.
type Simulator struct {
	world     *world.World
	tracks    []trackedBody
	metrics   []Metric
	observers []Observer
	logger    *zap.SugaredLogger
}

func New(w *world.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logging.NewNop(),
	}
}

func (s *Simulator) World() *world.World { return s.world }

func (s *Simulator) SetLogger(logger *zap.SugaredLogger) { s.logger = logger }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Track records the position and velocity of b under name at every step.
func (s *Simulator) Track(name string, b body.Body) error {
	for _, tb := range s.tracks {
		if tb.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateTrack, name)
		}
	}
	s.tracks = append(s.tracks, trackedBody{name: name, body: b})
	return nil
}

func (s *Simulator) TrackNames() []string {
	names := make([]string, len(s.tracks))
	for i, tb := range s.tracks {
		names[i] = tb.name
	}
	return names
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		Order:    s.TrackNames(),
		Tracks:   make(map[string][]Sample, len(s.tracks)),
		Contacts: make([]int, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}
	for _, tb := range s.tracks {
		result.Tracks[tb.name] = make([]Sample, 0, steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	s.record(result, t, 0)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.world.Update(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s.world, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world, t)
		}

		if cfg.ValidateState {
			if b := firstInvalid(s.world.Bodies()); b != nil {
				err := SimError{Time: t, Step: i, Message: fmt.Sprintf("non-finite state in %s", b)}
				result.Errors = append(result.Errors, err)
				s.logger.Warnw("simulation diverged", "step", i, "time", t, "body", b.String())
				break
			}
		}

		s.record(result, t, s.world.Stats().Contacts)
	}

	s.finish(result)
	return result, nil
}

// RunWithCallback steps the world until Duration elapses or fn returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(w *world.World, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(s.world, t) {
			return nil
		}

		s.world.Update(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if b := firstInvalid(s.world.Bodies()); b != nil {
				return SimError{Time: t, Step: i, Message: fmt.Sprintf("non-finite state in %s", b)}
			}
		}
	}
	return nil
}

func (s *Simulator) record(result *Result, t float64, contacts int) {
	result.Times = append(result.Times, t)
	result.Contacts = append(result.Contacts, contacts)
	for _, tb := range s.tracks {
		result.Tracks[tb.name] = append(result.Tracks[tb.name], Sample{
			Position: tb.body.Position(),
			Velocity: tb.body.Velocity(),
		})
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDuration, cfg.Duration)
	}
	return nil
}

func firstInvalid(bodies []body.Body) body.Body {
	for _, b := range bodies {
		if !(Sample{Position: b.Position(), Velocity: b.Velocity()}).IsValid() {
			return b
		}
	}
	return nil
}
