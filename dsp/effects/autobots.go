package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/iir"
)

const (
	defaultAutobotsLow  = 0.1
	defaultAutobotsHigh = 0.2
	autobotsFilterOrder = 4
)

// AutobotsOption mutates autobots construction parameters.
type AutobotsOption func(*autobotsConfig) error

type autobotsConfig struct {
	low, high float64
}

// WithAutobotsBand sets the band edges, normalized to Nyquist, with
// 0 < low < high < 1.
func WithAutobotsBand(low, high float64) AutobotsOption {
	return func(cfg *autobotsConfig) error {
		if !(low > 0 && low < high && high < 1) {
			return fmt.Errorf("%w: autobots band must satisfy 0 < low < high < 1: [%g, %g]",
				ErrInvalidParameter, low, high)
		}

		cfg.low, cfg.high = low, high

		return nil
	}
}

// Autobots runs a 4th-order Butterworth band-pass forward and backward over
// each block. The result has zero phase but no state crosses blocks, so
// block edges are not continuous.
type Autobots struct {
	base

	low, high float64
	filter    *iir.ZeroPhase
}

// NewAutobots returns a robot voice. The frequency is normalized but unused.
func NewAutobots(frequency float64, sampleRate int, opts ...AutobotsOption) (*Autobots, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := autobotsConfig{low: defaultAutobotsLow, high: defaultAutobotsHigh}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	tf, err := design.Butterworth(autobotsFilterOrder, design.Bandpass, cfg.low, cfg.high)
	if err != nil {
		return nil, fmt.Errorf("%w: autobots band-pass: %w", ErrInvalidParameter, err)
	}

	zp, err := iir.NewZeroPhase(tf.B, tf.A)
	if err != nil {
		return nil, fmt.Errorf("%w: autobots band-pass: %w", ErrInvalidParameter, err)
	}

	return &Autobots{base: b, low: cfg.low, high: cfg.high, filter: zp}, nil
}

// Band returns the normalized band edges.
func (e *Autobots) Band() (low, high float64) { return e.low, e.high }

// Process filters src into dst.
func (e *Autobots) Process(dst, src []float64) {
	e.filter.Process(dst, src)
	e.n += uint64(len(src))
}

// ProcessInPlace filters buf.
func (e *Autobots) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset rewinds the counter. There is no filter state to clear.
func (e *Autobots) Reset() { e.resetCounter() }
