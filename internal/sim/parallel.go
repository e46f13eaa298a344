package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds a fresh simulator for one ensemble member. Worlds are not
// shared between members.
type Factory func(run int, seed int64) (*Simulator, error)

type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		factory:   factory,
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.GOMAXPROCS(0),
	}
}

// SetWorkers caps how many members run at once. n <= 0 removes the cap.
func (e *Ensemble) SetWorkers(n int) { e.workers = n }

// Run executes every member and returns results in member order. The first
// failure cancels the members still running.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, ErrInvalidRuns
	}

	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(i)

			s, err := e.factory(i, cfgCopy.Seed)
			if err != nil {
				return err
			}
			results[i], err = s.Run(ctx, cfgCopy)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunEnsemble is shorthand for NewEnsemble(factory, n, cfg.Seed).Run.
func RunEnsemble(ctx context.Context, factory Factory, n int, cfg Config) ([]*Result, error) {
	return NewEnsemble(factory, n, cfg.Seed).Run(ctx, cfg)
}
