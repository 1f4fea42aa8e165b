package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/iir"
)

const defaultButterworthOrder = 5

// ButterworthOption mutates Butterworth construction parameters.
type ButterworthOption func(*butterworthConfig) error

type butterworthConfig struct {
	order int
	kind  design.Kind
}

// WithButterworthOrder sets the filter order in [1, design.MaxOrder].
func WithButterworthOrder(order int) ButterworthOption {
	return func(cfg *butterworthConfig) error {
		if order < 1 || order > design.MaxOrder {
			return fmt.Errorf("%w: butterworth order must be in [1, %d]: %d",
				ErrInvalidParameter, design.MaxOrder, order)
		}

		cfg.order = order

		return nil
	}
}

// WithButterworthType selects lowpass, highpass or bandpass.
func WithButterworthType(kind design.Kind) ButterworthOption {
	return func(cfg *butterworthConfig) error {
		switch kind {
		case design.Lowpass, design.Highpass, design.Bandpass:
		default:
			return fmt.Errorf("%w: unknown butterworth type %v", ErrInvalidParameter, kind)
		}

		cfg.kind = kind

		return nil
	}
}

// Butterworth streams a Butterworth filter over consecutive blocks. The
// filter state has max(len(b), len(a))-1 values and carries across calls.
type Butterworth struct {
	base

	order  int
	kind   design.Kind
	filter *iir.Filter
}

// NewButterworth designs a Butterworth filter for the given cutoff
// frequencies in Hz: one for lowpass and highpass, low and high edge for
// bandpass. The default is a 5th-order lowpass.
func NewButterworth(frequencies []float64, sampleRate int, opts ...ButterworthOption) (*Butterworth, error) {
	cfg := butterworthConfig{order: defaultButterworthOrder, kind: design.Lowpass}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if len(frequencies) != cfg.kind.Cutoffs() {
		return nil, fmt.Errorf("%w: %s needs %d cutoff frequencies, got %d",
			ErrInvalidParameter, cfg.kind, cfg.kind.Cutoffs(), len(frequencies))
	}

	b, err := newBase(sampleRate, frequencies...)
	if err != nil {
		return nil, err
	}

	tf, err := design.Butterworth(cfg.order, cfg.kind, b.freqs...)
	if err != nil {
		return nil, fmt.Errorf("%w: butterworth %s: %w", ErrInvalidParameter, cfg.kind, err)
	}

	filter, err := iir.NewFilter(tf.B, tf.A)
	if err != nil {
		return nil, fmt.Errorf("%w: butterworth %s: %w", ErrInvalidParameter, cfg.kind, err)
	}

	return &Butterworth{base: b, order: cfg.order, kind: cfg.kind, filter: filter}, nil
}

// NewLPF returns a 5th-order Butterworth lowpass at frequency Hz.
func NewLPF(frequency float64, sampleRate int, opts ...ButterworthOption) (*Butterworth, error) {
	return NewButterworth([]float64{frequency}, sampleRate, append(opts[:len(opts):len(opts)], WithButterworthType(design.Lowpass))...)
}

// NewHPF returns a 5th-order Butterworth highpass at frequency Hz.
func NewHPF(frequency float64, sampleRate int, opts ...ButterworthOption) (*Butterworth, error) {
	return NewButterworth([]float64{frequency}, sampleRate, append(opts[:len(opts):len(opts)], WithButterworthType(design.Highpass))...)
}

// NewBPF returns a 5th-order Butterworth bandpass between low and high Hz.
func NewBPF(low, high float64, sampleRate int, opts ...ButterworthOption) (*Butterworth, error) {
	return NewButterworth([]float64{low, high}, sampleRate, append(opts[:len(opts):len(opts)], WithButterworthType(design.Bandpass))...)
}

// Order returns the prototype order.
func (e *Butterworth) Order() int { return e.order }

// Kind returns the band shape.
func (e *Butterworth) Kind() design.Kind { return e.kind }

// Coefficients returns copies of the normalized b and a.
func (e *Butterworth) Coefficients() (b, a []float64) { return e.filter.Coefficients() }

// State returns a copy of the filter state.
func (e *Butterworth) State() []float64 { return e.filter.State() }

// Process filters src into dst.
func (e *Butterworth) Process(dst, src []float64) {
	e.filter.Process(dst, src)
	e.n += uint64(len(src))
}

// ProcessInPlace filters buf.
func (e *Butterworth) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset zeroes the filter state; the coefficients are kept.
func (e *Butterworth) Reset() {
	e.filter.Reset()
	e.resetCounter()
}
