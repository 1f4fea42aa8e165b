package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/internal/ellipticmath"
)

const rootEpsilon = 2e-16

// EllipticPrototype returns the unit-cutoff analog elliptic lowpass with
// rippleDB of passband ripple and stopbandDB of stopband attenuation.
func EllipticPrototype(order int, rippleDB, stopbandDB float64) (ZPK, error) {
	epsSq := math.Pow(10, rippleDB/10) - 1

	if order == 1 {
		p := -math.Sqrt(1 / epsSq)
		return ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	ck1Sq := epsSq / (math.Pow(10, stopbandDB/10) - 1)
	m := ellipticmath.Degree(order, ck1Sq, ellipticmath.Tol)
	if math.IsNaN(m) || m <= 0 || m >= 1 {
		return ZPK{}, fmt.Errorf("%w: degree equation", ErrUnstableDesign)
	}

	capK, _ := ellipticmath.EllipK(math.Sqrt(m), ellipticmath.Tol)
	capK1, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq), ellipticmath.Tol)

	r := ellipticmath.ArcSC1(1/math.Sqrt(epsSq), ck1Sq)
	if math.IsNaN(r) {
		return ZPK{}, fmt.Errorf("%w: inverse sc", ErrUnstableDesign)
	}

	v0 := capK * r / (float64(order) * capK1)

	sv, cv, dv, ok := ellipticmath.Jacobi(v0, math.Sqrt(1-m), ellipticmath.Tol)
	if !ok {
		return ZPK{}, fmt.Errorf("%w: jacobi at v0", ErrUnstableDesign)
	}

	var zeros, poles []complex128

	for j := 1 - order%2; j < order; j += 2 {
		s, c, d, ok := ellipticmath.Jacobi(float64(j)*capK/float64(order), math.Sqrt(m), ellipticmath.Tol)
		if !ok {
			return ZPK{}, fmt.Errorf("%w: jacobi at j=%d", ErrUnstableDesign, j)
		}

		if math.Abs(s) > rootEpsilon {
			zeros = append(zeros, complex(0, 1/(math.Sqrt(m)*s)))
		}

		den := 1 - (d*sv)*(d*sv)
		poles = append(poles, -complex(c*d*sv*cv, s*dv)/complex(den, 0))
	}

	for _, z := range zeros[:len(zeros):len(zeros)] {
		zeros = append(zeros, conj(z))
	}

	if order%2 == 1 {
		energy := 0.0
		for _, p := range poles {
			energy += real(p)*real(p) + imag(p)*imag(p)
		}

		threshold := rootEpsilon * math.Sqrt(energy)
		n := len(poles)
		for _, p := range poles[:n] {
			if math.Abs(imag(p)) > threshold {
				poles = append(poles, conj(p))
			}
		}
	} else {
		for _, p := range poles[:len(poles):len(poles)] {
			poles = append(poles, conj(p))
		}
	}

	gain := real(productNeg(poles) / productNeg(zeros))
	if order%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

// Elliptic designs a digital elliptic lowpass at the normalized cutoff edge.
// The passband ripples between 0 and -rippleDB; the stopband stays at least
// stopbandDB below the passband. Even orders have unity peak gain and a DC
// gain of -rippleDB.
func Elliptic(order int, rippleDB, stopbandDB, edge float64) (TransferFunction, error) {
	if order < 1 || order > MaxOrder {
		return TransferFunction{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if !(rippleDB > 0) || !(stopbandDB > rippleDB) || math.IsInf(stopbandDB, 0) {
		return TransferFunction{}, fmt.Errorf("%w: ripple %g dB, stopband %g dB", ErrInvalidRipple, rippleDB, stopbandDB)
	}

	if err := validateCutoffs(Lowpass, []float64{edge}); err != nil {
		return TransferFunction{}, err
	}

	proto, err := EllipticPrototype(order, rippleDB, stopbandDB)
	if err != nil {
		return TransferFunction{}, err
	}

	zpk, err := transform(proto, Lowpass, []float64{edge})
	if err != nil {
		return TransferFunction{}, err
	}

	return zpk.bilinear().TransferFunction(), nil
}

func conj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}
