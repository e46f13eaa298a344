package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSignal = errors.New("analysis: need at least two samples")

// Spectrum returns the one-sided amplitude spectrum of values sampled every
// dt seconds, with the mean removed. freqs[i] is the frequency of amps[i].
func Spectrum(values []float64, dt float64) (freqs, amps []float64, err error) {
	n := len(values)
	if n < 2 {
		return nil, nil, ErrShortSignal
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	centered := make([]float64, n)
	for i, v := range values {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n/2 + 1
	freqs = make([]float64, half)
	amps = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		amps[k] = cmplx.Abs(coeffs[k]) / float64(n)
		if k > 0 && 2*k != n {
			amps[k] *= 2
		}
	}
	return freqs, amps, nil
}

// DominantFrequency is the non-zero frequency with the largest amplitude.
func DominantFrequency(values []float64, dt float64) (float64, error) {
	freqs, amps, err := Spectrum(values, dt)
	if err != nil {
		return 0, err
	}
	best, peak := 0.0, math.Inf(-1)
	for k := 1; k < len(amps); k++ {
		if amps[k] > peak {
			best, peak = freqs[k], amps[k]
		}
	}
	return best, nil
}
