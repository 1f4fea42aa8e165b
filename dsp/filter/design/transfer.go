package design

import (
	"math"
	"math/cmplx"
)

// TransferFunction holds rational filter coefficients in ascending powers
// of z^-1. Designers return A normalized so that A[0] == 1.
type TransferFunction struct {
	B []float64
	A []float64
}

// Order returns the filter order, i.e. the number of state values a
// direct-form implementation needs.
func (tf TransferFunction) Order() int {
	return max(len(tf.B), len(tf.A)) - 1
}

// Response evaluates H(e^{jw}) at the normalized frequency w, where 1 is
// the Nyquist rate.
func (tf TransferFunction) Response(w float64) complex128 {
	zinv := cmplx.Exp(complex(0, -math.Pi*w))
	return horner(tf.B, zinv) / horner(tf.A, zinv)
}

// Magnitude returns |H| at the normalized frequency w.
func (tf TransferFunction) Magnitude(w float64) float64 {
	return cmplx.Abs(tf.Response(w))
}

func horner(c []float64, zinv complex128) complex128 {
	var acc complex128
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*zinv + complex(c[i], 0)
	}
	return acc
}
