package iir

import (
	"fmt"
	"math/cmplx"
)

// ComplexFilter is a Direct Form II Transposed filter with complex
// coefficients driven by a real input.
type ComplexFilter struct {
	b, a []complex128
	z    []complex128
}

// NewComplexFilter builds a complex filter. The same padding and a[0]
// normalization as [NewFilter] apply.
func NewComplexFilter(b, a []complex128) (*ComplexFilter, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrEmptyCoefficients
	}

	if a[0] == 0 || cmplx.IsNaN(a[0]) {
		return nil, ErrZeroLeading
	}

	n := max(len(b), len(a))
	nb := make([]complex128, n)
	na := make([]complex128, n)

	for i, v := range b {
		nb[i] = v / a[0]
	}

	for i, v := range a {
		na[i] = v / a[0]
	}

	return &ComplexFilter{b: nb, a: na, z: make([]complex128, n-1)}, nil
}

// Rotate returns the coefficients of H(z) shifted by a quarter of the sample
// rate: c[k] * j^k. Applied to a real lowpass this yields a filter that
// passes only positive frequencies.
func Rotate(c []float64) []complex128 {
	out := make([]complex128, len(c))
	rot := complex(1, 0)

	for i, v := range c {
		out[i] = complex(v, 0) * rot
		rot *= 1i
	}

	return out
}

// Order returns the number of state values.
func (f *ComplexFilter) Order() int { return len(f.z) }

// ProcessSample filters one real sample.
func (f *ComplexFilter) ProcessSample(x float64) complex128 {
	xc := complex(x, 0)

	n := len(f.z)
	if n == 0 {
		return f.b[0] * xc
	}

	y := f.b[0]*xc + f.z[0]
	for i := 1; i < n; i++ {
		f.z[i-1] = f.b[i]*xc - f.a[i]*y + f.z[i]
	}
	f.z[n-1] = f.b[n]*xc - f.a[n]*y

	return y
}

// Process filters the real block src into dst.
func (f *ComplexFilter) Process(dst []complex128, src []float64) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// State returns a copy of the delay state.
func (f *ComplexFilter) State() []complex128 {
	return append([]complex128(nil), f.z...)
}

// SetState replaces the delay state. zi must have Order() values.
func (f *ComplexFilter) SetState(zi []complex128) error {
	if len(zi) != len(f.z) {
		return fmt.Errorf("%w: got %d, want %d", ErrStateLength, len(zi), len(f.z))
	}

	copy(f.z, zi)
	return nil
}

// Reset zeroes the delay state.
func (f *ComplexFilter) Reset() {
	clear(f.z)
}
