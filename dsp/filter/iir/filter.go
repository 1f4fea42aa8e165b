package iir

import (
	"fmt"
	"math"
)

// Filter is a real-valued IIR filter of arbitrary order in Direct Form II
// Transposed. The state holds Order() values.
type Filter struct {
	b, a []float64
	z    []float64
}

// NewFilter builds a filter from numerator b and denominator a. Both are
// zero-padded to a common length and divided by a[0].
func NewFilter(b, a []float64) (*Filter, error) {
	nb, na, err := normalize(b, a)
	if err != nil {
		return nil, err
	}

	return &Filter{b: nb, a: na, z: make([]float64, len(nb)-1)}, nil
}

func normalize(b, a []float64) ([]float64, []float64, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, nil, ErrEmptyCoefficients
	}

	if a[0] == 0 || math.IsNaN(a[0]) {
		return nil, nil, ErrZeroLeading
	}

	n := max(len(b), len(a))
	nb := make([]float64, n)
	na := make([]float64, n)

	for i, v := range b {
		nb[i] = v / a[0]
	}

	for i, v := range a {
		na[i] = v / a[0]
	}

	return nb, na, nil
}

// Order returns the number of state values.
func (f *Filter) Order() int { return len(f.z) }

// Coefficients returns copies of the normalized numerator and denominator.
func (f *Filter) Coefficients() (b, a []float64) {
	return append([]float64(nil), f.b...), append([]float64(nil), f.a...)
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.z)
	if n == 0 {
		return f.b[0] * x
	}

	y := f.b[0]*x + f.z[0]
	for i := 1; i < n; i++ {
		f.z[i-1] = f.b[i]*x - f.a[i]*y + f.z[i]
	}
	f.z[n-1] = f.b[n]*x - f.a[n]*y

	return y
}

// Process filters src into dst. dst must be at least as long as src and
// may alias it.
func (f *Filter) Process(dst, src []float64) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.Process(buf, buf)
}

// State returns a copy of the delay state.
func (f *Filter) State() []float64 {
	return append([]float64(nil), f.z...)
}

// SetState replaces the delay state. zi must have Order() values.
func (f *Filter) SetState(zi []float64) error {
	if len(zi) != len(f.z) {
		return fmt.Errorf("%w: got %d, want %d", ErrStateLength, len(zi), len(f.z))
	}

	copy(f.z, zi)
	return nil
}

// Reset zeroes the delay state.
func (f *Filter) Reset() {
	clear(f.z)
}
