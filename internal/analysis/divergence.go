package analysis

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/scenario"
)

var ErrNoMovableBody = errors.New("analysis: scenario has no finite-mass body to perturb")

type DivergenceConfig struct {
	// Perturbation is the initial x offset of the first movable body.
	Perturbation float64
	// RenormEvery is the number of steps between renormalizations.
	RenormEvery int
	Logger      *zap.SugaredLogger
}

// Divergence estimates the largest Lyapunov exponent of sc. A twin of the
// scene starts Perturbation away; every RenormEvery steps the separation in
// position and velocity is measured, its log growth accumulated, and the twin
// pulled back to the initial distance along the same direction.
func Divergence(ctx context.Context, sc *config.Scenario, cfg DivergenceConfig) (float64, error) {
	if cfg.Perturbation <= 0 {
		cfg.Perturbation = 1e-8
	}
	if cfg.RenormEvery <= 0 {
		cfg.RenormEvery = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	ref, err := scenario.Build(sc.Clone(), cfg.Logger)
	if err != nil {
		return 0, errors.Wrap(err, "building reference")
	}
	twin, err := scenario.Build(sc.Clone(), logging.NewNop())
	if err != nil {
		return 0, errors.Wrap(err, "building twin")
	}

	a, b := movable(ref), movable(twin)
	if len(a) == 0 {
		return 0, ErrNoMovableBody
	}
	b[0].SetPosition(b[0].Position().Add(linalg.Vec3{cfg.Perturbation, 0, 0}))

	d0 := cfg.Perturbation
	steps := int(sc.Duration/sc.Dt + 1e-9)
	sumLog, elapsed := 0.0, 0.0
	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ref.World.Update(sc.Dt)
		twin.World.Update(sc.Dt)
		if i%cfg.RenormEvery != 0 {
			continue
		}

		d := separation(a, b)
		elapsed = float64(i) * sc.Dt
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		sumLog += math.Log(d / d0)
		rescale(a, b, d0/d)
	}

	if elapsed == 0 {
		return 0, nil
	}
	rate := sumLog / elapsed
	cfg.Logger.Debugw("divergence estimated", "scenario", sc.Name, "rate", rate, "time", elapsed)
	return rate, nil
}

func movable(scene *scenario.Scene) []body.Body {
	out := make([]body.Body, 0, len(scene.Order))
	for _, name := range scene.Order {
		if b := scene.Bodies[name]; b.HasFiniteMass() {
			out = append(out, b)
		}
	}
	return out
}

func separation(a, b []body.Body) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Position().Sub(a[i].Position())
		dv := b[i].Velocity().Sub(a[i].Velocity())
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}

func rescale(a, b []body.Body, k float64) {
	for i := range a {
		b[i].SetPosition(a[i].Position().Add(b[i].Position().Sub(a[i].Position()).Mul(k)))
		b[i].SetVelocity(a[i].Velocity().Add(b[i].Velocity().Sub(a[i].Velocity()).Mul(k)))
	}
}
