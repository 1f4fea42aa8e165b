package effects

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/iir"
)

const (
	defaultComplexAMOrder    = 6
	defaultComplexAMRipple   = 0.2
	defaultComplexAMStopband = 50.0
	defaultComplexAMEdge     = 0.48
	maxComplexAMOrder        = 10
)

// ComplexAMOption mutates single-sideband construction parameters.
type ComplexAMOption func(*complexAMConfig) error

type complexAMConfig struct {
	order    int
	ripple   float64
	stopband float64
	edge     float64
}

func defaultComplexAMConfig() complexAMConfig {
	return complexAMConfig{
		order:    defaultComplexAMOrder,
		ripple:   defaultComplexAMRipple,
		stopband: defaultComplexAMStopband,
		edge:     defaultComplexAMEdge,
	}
}

// WithComplexAMOrder sets the elliptic prototype order in [1, 10].
func WithComplexAMOrder(order int) ComplexAMOption {
	return func(cfg *complexAMConfig) error {
		if order < 1 || order > maxComplexAMOrder {
			return fmt.Errorf("%w: complex AM order must be in [1, %d]: %d",
				ErrInvalidParameter, maxComplexAMOrder, order)
		}

		cfg.order = order

		return nil
	}
}

// WithComplexAMRipple sets the passband ripple in dB.
func WithComplexAMRipple(db float64) ComplexAMOption {
	return func(cfg *complexAMConfig) error {
		if !(db > 0) || !core.IsFinite(db) {
			return fmt.Errorf("%w: complex AM ripple must be > 0 dB: %g", ErrInvalidParameter, db)
		}

		cfg.ripple = db

		return nil
	}
}

// WithComplexAMStopband sets the stopband attenuation in dB.
func WithComplexAMStopband(db float64) ComplexAMOption {
	return func(cfg *complexAMConfig) error {
		if !(db > 0) || !core.IsFinite(db) {
			return fmt.Errorf("%w: complex AM stopband must be > 0 dB: %g", ErrInvalidParameter, db)
		}

		cfg.stopband = db

		return nil
	}
}

// WithComplexAMEdge sets the prototype passband edge, normalized to Nyquist.
// After the quarter-rate rotation the filter passes (edge/2 ... 1-edge/2)
// of the positive half band.
func WithComplexAMEdge(edge float64) ComplexAMOption {
	return func(cfg *complexAMConfig) error {
		if !(edge > 0 && edge < 1) {
			return fmt.Errorf("%w: complex AM edge must be in (0, 1): %g", ErrInvalidParameter, edge)
		}

		cfg.edge = edge

		return nil
	}
}

// ComplexAM shifts the spectrum by the modulation frequency using single
// sideband modulation. A real elliptic lowpass is rotated tap by tap with
// j^k into a filter that keeps only positive frequencies; its complex
// output is multiplied by exp(j*2*pi*f*t), with t the absolute sample
// index, and the real part is returned.
type ComplexAM struct {
	base

	order  int
	filter *iir.ComplexFilter
	work   []complex128
}

// NewComplexAM returns a single-sideband modulator shifting by frequency Hz.
func NewComplexAM(frequency float64, sampleRate int, opts ...ComplexAMOption) (*ComplexAM, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := defaultComplexAMConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	tf, err := design.Elliptic(cfg.order, cfg.ripple, cfg.stopband, cfg.edge)
	if err != nil {
		return nil, fmt.Errorf("%w: complex AM prototype: %w", ErrInvalidParameter, err)
	}

	filter, err := iir.NewComplexFilter(iir.Rotate(tf.B), iir.Rotate(tf.A))
	if err != nil {
		return nil, fmt.Errorf("%w: complex AM filter: %w", ErrInvalidParameter, err)
	}

	return &ComplexAM{
		base:   b,
		order:  cfg.order,
		filter: filter,
		work:   make([]complex128, 0, 1024),
	}, nil
}

// Order returns the elliptic prototype order, which is also the length of
// the complex filter state.
func (e *ComplexAM) Order() int { return e.order }

// State returns a copy of the complex filter state.
func (e *ComplexAM) State() []complex128 { return e.filter.State() }

// Process shifts src into dst.
func (e *ComplexAM) Process(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	e.work = core.EnsureLen(e.work, n)
	e.filter.Process(e.work, src)

	f := e.freqs[0]
	for i, v := range e.work {
		t := float64(e.n + uint64(i))
		dst[i] = real(v * cmplx.Exp(complex(0, 2*math.Pi*f*t)))
	}

	e.n += uint64(n)
}

// ProcessInPlace shifts buf.
func (e *ComplexAM) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset clears the filter state and the counter.
func (e *ComplexAM) Reset() {
	e.filter.Reset()
	e.resetCounter()
}
