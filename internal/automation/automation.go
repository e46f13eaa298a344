package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/scenario"
	"github.com/san-kum/rigidsim/internal/sim"
)

var (
	ErrEmptyStep     = errors.New("automation: step names neither a preset nor a file")
	ErrUnknownPreset = errors.New("automation: unknown preset")
)

// Plan is a scripted sequence of scenario runs.
type Plan struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Steps       []PlanStep `yaml:"steps"`
}

// PlanStep runs one preset or scenario file, optionally overriding its
// timing and sweepable parameters.
type PlanStep struct {
	Preset   string             `yaml:"preset,omitempty"`
	File     string             `yaml:"file,omitempty"`
	Duration float64            `yaml:"duration,omitempty"`
	Dt       float64            `yaml:"dt,omitempty"`
	Seed     int64              `yaml:"seed,omitempty"`
	Params   map[string]float64 `yaml:"params,omitempty"`
	SaveAs   string             `yaml:"save_as,omitempty"`
}

type StepResult struct {
	Step     PlanStep
	Scenario *config.Scenario
	Result   *sim.Result
}

// LoadPlan loads a plan from a YAML file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading plan %s", path)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, errors.Wrapf(err, "decoding plan %s", path)
	}
	return &plan, nil
}

// Scenario resolves the step to a scenario. Relative files are looked up in
// baseDir.
func (s PlanStep) Scenario(baseDir string) (*config.Scenario, error) {
	var sc *config.Scenario
	switch {
	case s.Preset != "":
		sc = config.GetPreset(s.Preset)
		if sc == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, s.Preset)
		}
	case s.File != "":
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		sc = loaded
	default:
		return nil, ErrEmptyStep
	}

	if s.Duration > 0 {
		sc.Duration = s.Duration
	}
	if s.Dt > 0 {
		sc.Dt = s.Dt
	}
	if s.Seed != 0 {
		sc.Seed = s.Seed
	}
	for name, value := range s.Params {
		if err := ApplyParam(sc, name, value); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		sc.Name = s.SaveAs
	}
	return sc, nil
}

// RunPlan executes all steps in order and stops at the first failure.
func RunPlan(ctx context.Context, plan *Plan, baseDir string, logger *zap.SugaredLogger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	results := make([]StepResult, 0, len(plan.Steps))

	for i, step := range plan.Steps {
		sc, err := step.Scenario(baseDir)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Infow("running step", "step", i+1, "of", len(plan.Steps), "scenario", sc.Name)

		_, result, err := scenario.Run(ctx, sc, logger)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Scenario: sc, Result: result})
	}

	return results, nil
}
