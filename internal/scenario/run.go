package scenario

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/sim"
)

// Run builds sc and simulates it for its declared duration.
func Run(ctx context.Context, sc *config.Scenario, logger *zap.SugaredLogger) (*Scene, *sim.Result, error) {
	scene, err := Build(sc, logger)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSimulator(scene)
	if err != nil {
		return nil, nil, err
	}
	if logger != nil {
		s.SetLogger(logger)
	}
	result, err := s.Run(ctx, scene.SimConfig())
	return scene, result, err
}

// Factory returns an ensemble factory that rebuilds sc with each member's
// seed, so members differ only through jitter.
func Factory(sc *config.Scenario, logger *zap.SugaredLogger) sim.Factory {
	return func(run int, seed int64) (*sim.Simulator, error) {
		member := sc.Clone()
		member.Seed = seed
		scene, err := Build(member, logger)
		if err != nil {
			return nil, err
		}
		return NewSimulator(scene)
	}
}
