package optim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/automation"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/scenario"
)

// GridSearch tries every combination of parameter values on a scenario and
// keeps the one whose metric lands closest to Target.
type GridSearch struct {
	Scenario *config.Scenario
	Params   []string
	Ranges   [][]float64
	Metric   string
	Target   float64
	Logger   *zap.SugaredLogger
}

// Candidate is one evaluated grid point.
type Candidate struct {
	Params map[string]float64
	Value  float64
	// Score is |Value - Target|.
	Score float64
}

// Search returns the best candidate. Grid points whose run fails or which
// lack the metric are skipped.
func (g *GridSearch) Search(ctx context.Context) (Candidate, error) {
	if len(g.Params) != len(g.Ranges) {
		return Candidate{}, fmt.Errorf("optim: %d params but %d ranges", len(g.Params), len(g.Ranges))
	}
	if g.Logger == nil {
		g.Logger = logging.NewNop()
	}

	best := Candidate{Score: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, &best); err != nil {
		return Candidate{}, err
	}
	if best.Params == nil {
		return Candidate{}, fmt.Errorf("optim: no grid point produced metric %q", g.Metric)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, best *Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.Params) {
		c, ok := g.evaluate(ctx, current)
		if ok && c.Score < best.Score {
			*best = c
		}
		return nil
	}

	for _, v := range g.Ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, cv := range current {
			next[k] = cv
		}
		next[g.Params[depth]] = v
		if err := g.searchRecursive(ctx, depth+1, next, best); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64) (Candidate, bool) {
	sc := g.Scenario.Clone()
	for name, v := range params {
		if err := automation.ApplyParam(sc, name, v); err != nil {
			g.Logger.Debugw("skipping grid point", "params", params, "error", err)
			return Candidate{}, false
		}
	}

	_, result, err := scenario.Run(ctx, sc, g.Logger)
	if err != nil {
		g.Logger.Debugw("grid point failed", "params", params, "error", err)
		return Candidate{}, false
	}
	value, ok := result.Metrics[g.Metric]
	if !ok {
		return Candidate{}, false
	}
	c := Candidate{Params: params, Value: value, Score: math.Abs(value - g.Target)}
	g.Logger.Debugw("grid point", "params", params, "value", value)
	return c, true
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
