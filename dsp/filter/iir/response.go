package iir

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Response is a sampled frequency response over [0, 1) of the Nyquist rate.
type Response struct {
	// Frequencies holds the normalized frequency of each bin.
	Frequencies []float64
	// H holds the complex response.
	H []complex128
	// Magnitude holds |H|.
	Magnitude []float64
}

// MagnitudeDB returns 20*log10(|H|) per bin.
func (r Response) MagnitudeDB() []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = core.LinearToDB(m)
	}
	return out
}

// Phase returns the phase of H per bin in radians.
func (r Response) Phase() []float64 {
	out := make([]float64, len(r.H))
	for i, h := range r.H {
		out[i] = cmplx.Phase(h)
	}
	return out
}

// FrequencyResponse evaluates b/a at points equally spaced bins from DC up to
// (but excluding) Nyquist. points is rounded up to a power of two. Numerator
// and denominator are transformed with one FFT each.
func FrequencyResponse(b, a []float64, points int) (Response, error) {
	if points <= 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidPoints, points)
	}

	if len(b) == 0 || len(a) == 0 {
		return Response{}, ErrEmptyCoefficients
	}

	points = nextPowerOf2(points)
	size := 2 * points

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Response{}, fmt.Errorf("iir: failed to create FFT plan: %w", err)
	}

	num, err := spectrum(plan, b, size)
	if err != nil {
		return Response{}, err
	}

	den, err := spectrum(plan, a, size)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		Frequencies: make([]float64, points),
		H:           make([]complex128, points),
		Magnitude:   make([]float64, points),
	}

	re := make([]float64, points)
	im := make([]float64, points)

	for k := range points {
		h := num[k] / den[k]
		resp.Frequencies[k] = float64(k) / float64(points)
		resp.H[k] = h
		re[k] = real(h)
		im[k] = imag(h)
	}

	vecmath.Magnitude(resp.Magnitude, re, im)

	return resp, nil
}

// spectrum folds c modulo size, which leaves its values at the size-th
// roots of unity unchanged, and transforms it.
func spectrum(plan *algofft.Plan[complex128], c []float64, size int) ([]complex128, error) {
	buf := make([]complex128, size)
	for i, v := range c {
		buf[i%size] += complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("iir: forward FFT failed: %w", err)
	}

	return buf, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
