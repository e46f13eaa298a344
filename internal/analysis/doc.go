// Package analysis characterizes recorded and live trajectories.
//
//   - [Spectrum] and [DominantFrequency]: frequency content of a sampled signal
//   - [Divergence]: largest Lyapunov exponent of a scenario by renormalized
//     twin-trajectory separation
//   - [PhasePortrait]: coordinate against velocity for one tracked body
//
// A positive divergence rate indicates sensitive dependence on starting
// conditions:
//
//	rate, err := analysis.Divergence(ctx, sc, analysis.DivergenceConfig{Perturbation: 1e-6})
//	if rate > 0 {
//	    // chaotic
//	}
package analysis
