package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/delay"
)

const (
	defaultAlienDelay = 0.2
	defaultAlienGain  = 1.0

	// alienCarrier is the carrier frequency in cycles per sample.
	alienCarrier = 0.6
)

// AlienOption mutates alien construction parameters.
type AlienOption func(*alienConfig) error

type alienConfig struct {
	delay float64
	gain  float64
}

// WithAlienDelay sets the feedback delay in seconds.
func WithAlienDelay(seconds float64) AlienOption {
	return func(cfg *alienConfig) error {
		if err := validateFinite("alien delay", seconds); err != nil {
			return err
		}

		cfg.delay = seconds

		return nil
	}
}

// WithAlienGain sets the feedback gain.
func WithAlienGain(gain float64) AlienOption {
	return func(cfg *alienConfig) error {
		if err := validateFinite("alien gain", gain); err != nil {
			return err
		}

		cfg.gain = gain

		return nil
	}
}

// Alien modulates the input by a fixed carrier and adds its own delayed
// output:
//
//	y[i] = x[i]*cos(2*pi*0.6*i) + g*buf[k]; buf[k] = y[i]
//
// i counts from zero in every block. The feedback line and its cursor are
// cleared at the start of each call, so no state crosses block boundaries.
type Alien struct {
	base

	gain float64
	line *delay.Line
}

// NewAlien returns an alien voice. The frequency is normalized but unused.
func NewAlien(frequency float64, sampleRate int, opts ...AlienOption) (*Alien, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := alienConfig{delay: defaultAlienDelay, gain: defaultAlienGain}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n, err := delaySamples("alien delay", cfg.delay, sampleRate)
	if err != nil {
		return nil, err
	}

	line, err := delay.New(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &Alien{base: b, gain: cfg.gain, line: line}, nil
}

// Process shapes src into dst.
func (e *Alien) Process(dst, src []float64) {
	e.line.Reset()

	for i, x := range src {
		y := x*math.Cos(2*math.Pi*alienCarrier*float64(i)) + e.gain*e.line.Tap()
		e.line.Write(y)
		dst[i] = y
	}

	e.n += uint64(len(src))
}

// ProcessInPlace shapes buf.
func (e *Alien) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset rewinds the counter; the line is cleared on every call anyway.
func (e *Alien) Reset() {
	e.line.Reset()
	e.resetCounter()
}
