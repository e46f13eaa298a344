package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/scenario"
	"github.com/san-kum/rigidsim/internal/sim"
)

// ParameterSweep runs one scenario across evenly spaced parameter values.
type ParameterSweep struct {
	Scenario  *config.Scenario
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	// Workers caps concurrent runs; zero uses every CPU.
	Workers int
}

// SweepResult holds results from one sweep point
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Final      map[string]sim.Sample
	Errors     []error
}

// Values returns the parameter value of every sweep point.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	values := make([]float64, s.NumSteps)
	for i := range values {
		values[i] = s.ParamMin + float64(i)*step
	}
	return values
}

// RunSweep runs every sweep point concurrently.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *zap.SugaredLogger) ([]SweepResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", sim.ErrInvalidRuns)
	}

	values := sweep.Values()
	// Fail fast on a parameter the scenario cannot take.
	if err := ApplyParam(sweep.Scenario.Clone(), sweep.ParamName, values[0]); err != nil {
		return nil, err
	}

	factory := func(run int, seed int64) (*sim.Simulator, error) {
		sc := sweep.Scenario.Clone()
		if err := ApplyParam(sc, sweep.ParamName, values[run]); err != nil {
			return nil, err
		}
		scene, err := scenario.Build(sc, nil)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, values[run], err)
		}
		return scenario.NewSimulator(scene)
	}

	ensemble := sim.NewEnsemble(factory, len(values), sweep.Scenario.Seed)
	if sweep.Workers > 0 {
		ensemble.SetWorkers(sweep.Workers)
	}

	cfg := sim.DefaultConfig()
	cfg.Dt = sweep.Scenario.Dt
	cfg.Duration = sweep.Scenario.Duration

	start := time.Now()
	runs, err := ensemble.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		final := make(map[string]sim.Sample, len(r.Order))
		for _, name := range r.Order {
			if s, ok := r.Final(name); ok {
				final[name] = s
			}
		}
		results[i] = SweepResult{
			ParamValue: values[i],
			Metrics:    r.Metrics,
			Final:      final,
			Errors:     r.Errors,
		}
	}

	logger.Infow("sweep complete",
		"scenario", sweep.Scenario.Name,
		"param", sweep.ParamName,
		"points", len(results),
		"elapsed", time.Since(start),
	)
	return results, nil
}

// MonteCarloConfig perturbs a scenario's starting positions across trials.
type MonteCarloConfig struct {
	Scenario     *config.Scenario
	Perturbation float64
	NumTrials    int
	Seed         int64
	// Bound is the largest coordinate a stable trial may end with.
	Bound float64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int
	Seed    int64
	Final   map[string]sim.Sample
	Stable  bool
}

// RunMonteCarlo executes trials concurrently, each with its own jitter seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *zap.SugaredLogger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}

	sc := cfg.Scenario.Clone()
	sc.Jitter = cfg.Perturbation
	bound := cfg.Bound
	if bound <= 0 {
		bound = 1e6
	}

	simCfg := sim.DefaultConfig()
	simCfg.Dt = sc.Dt
	simCfg.Duration = sc.Duration

	runs, err := sim.NewEnsemble(scenario.Factory(sc, nil), cfg.NumTrials, seed).Run(ctx, simCfg)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for trial, r := range runs {
		final := make(map[string]sim.Sample, len(r.Order))
		stable := len(r.Errors) == 0
		for _, name := range r.Order {
			s, ok := r.Final(name)
			if !ok {
				continue
			}
			final[name] = s
			for _, v := range s.Position {
				if v > bound || v < -bound {
					stable = false
				}
			}
		}
		results[trial] = MonteCarloResult{
			TrialID: trial,
			Seed:    seed + int64(trial),
			Final:   final,
			Stable:  stable,
		}
	}

	stableCount, unstableCount := MonteCarloStats(results)
	logger.Infow("monte carlo complete", "trials", len(results), "stable", stableCount, "unstable", unstableCount)
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
