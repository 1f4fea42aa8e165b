package design

import (
	"math"
	"math/cmplx"
)

// bilinearRate is the virtual sample rate of the bilinear transform. With
// fs = 2 a normalized cutoff w maps to the analog frequency 4*tan(pi*w/2).
const bilinearRate = 2.0

// ZPK is a filter in zero/pole/gain form.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// degree returns the relative degree len(Poles) - len(Zeros).
func (f ZPK) degree() int {
	return len(f.Poles) - len(f.Zeros)
}

// prewarp maps a normalized digital frequency to the analog frequency that
// the bilinear transform sends back onto it.
func prewarp(w float64) float64 {
	return 2 * bilinearRate * math.Tan(math.Pi*w/bilinearRate)
}

// lowpass scales a unit-cutoff prototype to cutoff wo.
func (f ZPK) lowpass(wo float64) ZPK {
	w := complex(wo, 0)

	return ZPK{
		Zeros: scaleRoots(f.Zeros, w),
		Poles: scaleRoots(f.Poles, w),
		Gain:  f.Gain * math.Pow(wo, float64(f.degree())),
	}
}

// highpass maps a unit-cutoff lowpass prototype to a highpass at wo.
func (f ZPK) highpass(wo float64) ZPK {
	w := complex(wo, 0)

	zeros := make([]complex128, 0, len(f.Poles))
	for _, z := range f.Zeros {
		zeros = append(zeros, w/z)
	}
	for range f.degree() {
		zeros = append(zeros, 0)
	}

	poles := make([]complex128, len(f.Poles))
	for i, p := range f.Poles {
		poles[i] = w / p
	}

	gain := f.Gain * real(productNeg(f.Zeros)/productNeg(f.Poles))

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}
}

// bandpass maps a unit-cutoff lowpass prototype to a bandpass centred at wo
// with bandwidth bw. Each root splits into two.
func (f ZPK) bandpass(wo, bw float64) ZPK {
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128, extra int) []complex128 {
		out := make([]complex128, 0, 2*len(roots)+extra)
		for _, r := range roots {
			s := r * half
			out = append(out, s+cmplx.Sqrt(s*s-wo2))
		}
		for _, r := range roots {
			s := r * half
			out = append(out, s-cmplx.Sqrt(s*s-wo2))
		}
		for range extra {
			out = append(out, 0)
		}
		return out
	}

	return ZPK{
		Zeros: split(f.Zeros, f.degree()),
		Poles: split(f.Poles, 0),
		Gain:  f.Gain * math.Pow(bw, float64(f.degree())),
	}
}

// bilinear maps the analog filter to the z-plane. Zeros at infinity land
// on z = -1 (Nyquist).
func (f ZPK) bilinear() ZPK {
	fs2 := complex(2*bilinearRate, 0)

	zeros := make([]complex128, 0, len(f.Poles))
	for _, z := range f.Zeros {
		zeros = append(zeros, (fs2+z)/(fs2-z))
	}
	for range f.degree() {
		zeros = append(zeros, -1)
	}

	poles := make([]complex128, len(f.Poles))
	for i, p := range f.Poles {
		poles[i] = (fs2 + p) / (fs2 - p)
	}

	num := complex(1, 0)
	for _, z := range f.Zeros {
		num *= fs2 - z
	}

	den := complex(1, 0)
	for _, p := range f.Poles {
		den *= fs2 - p
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: f.Gain * real(num/den)}
}

// TransferFunction expands the roots into polynomials in z^-1.
// Roots are assumed to come in conjugate pairs, so imaginary residue is dropped.
func (f ZPK) TransferFunction() TransferFunction {
	b := poly(f.Zeros)
	a := poly(f.Poles)

	tf := TransferFunction{
		B: make([]float64, len(b)),
		A: make([]float64, len(a)),
	}
	for i, c := range b {
		tf.B[i] = f.Gain * real(c)
	}
	for i, c := range a {
		tf.A[i] = real(c)
	}

	return tf
}

// poly returns the coefficients of prod(1 - r z^-1), highest power of z first.
func poly(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

func scaleRoots(roots []complex128, s complex128) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * s
	}
	return out
}

func productNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}
	return out
}

func finiteRoots(roots []complex128) bool {
	for _, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return false
		}
	}
	return true
}
