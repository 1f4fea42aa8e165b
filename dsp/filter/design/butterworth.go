package design

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ButterworthPrototype returns the unit-cutoff analog Butterworth lowpass of
// the given order: no zeros, poles evenly spaced on the left half circle.
func ButterworthPrototype(order int) ZPK {
	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		poles = append(poles, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*order))))
	}

	return ZPK{Poles: poles, Gain: 1}
}

// Butterworth designs a digital Butterworth filter. Lowpass and Highpass
// take one normalized cutoff; Bandpass takes the lower and upper band edge.
// A bandpass of order n has 2n poles.
func Butterworth(order int, kind Kind, cutoff ...float64) (TransferFunction, error) {
	if order < 1 || order > MaxOrder {
		return TransferFunction{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if err := validateCutoffs(kind, cutoff); err != nil {
		return TransferFunction{}, err
	}

	zpk, err := transform(ButterworthPrototype(order), kind, cutoff)
	if err != nil {
		return TransferFunction{}, err
	}

	return zpk.bilinear().TransferFunction(), nil
}

func validateCutoffs(kind Kind, cutoff []float64) error {
	switch kind {
	case Lowpass, Highpass, Bandpass:
	default:
		return fmt.Errorf("design: unsupported kind %v", kind)
	}

	if len(cutoff) != kind.Cutoffs() {
		return fmt.Errorf("%w: %s needs %d cutoff(s), got %d", ErrInvalidCutoff, kind, kind.Cutoffs(), len(cutoff))
	}

	for _, w := range cutoff {
		if !(w > 0 && w < 1) {
			return fmt.Errorf("%w: %g not in (0, 1)", ErrInvalidCutoff, w)
		}
	}

	if kind == Bandpass && cutoff[0] >= cutoff[1] {
		return fmt.Errorf("%w: band edges %g >= %g", ErrInvalidCutoff, cutoff[0], cutoff[1])
	}

	return nil
}

// transform moves a unit-cutoff prototype to the prewarped analog cutoff(s).
func transform(proto ZPK, kind Kind, cutoff []float64) (ZPK, error) {
	var out ZPK

	switch kind {
	case Lowpass:
		out = proto.lowpass(prewarp(cutoff[0]))
	case Highpass:
		out = proto.highpass(prewarp(cutoff[0]))
	case Bandpass:
		lo, hi := prewarp(cutoff[0]), prewarp(cutoff[1])
		out = proto.bandpass(math.Sqrt(lo*hi), hi-lo)
	}

	if !finiteRoots(out.Zeros) || !finiteRoots(out.Poles) {
		return ZPK{}, ErrUnstableDesign
	}

	return out, nil
}
