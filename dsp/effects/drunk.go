package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/delay"
)

const defaultDrunkDelay = 0.2

// DrunkOption mutates drunk construction parameters.
type DrunkOption func(*drunkConfig) error

type drunkConfig struct {
	delay float64
}

// WithDrunkDelay sets the delay in seconds.
func WithDrunkDelay(seconds float64) DrunkOption {
	return func(cfg *drunkConfig) error {
		if err := validateFinite("drunk delay", seconds); err != nil {
			return err
		}

		cfg.delay = seconds

		return nil
	}
}

// Drunk shapes the input with cos(n)+sin(n), n being the running sample
// counter taken as radians, and adds the dry input from one delay ago:
//
//	y[n] = x[n]*cos(n) + x[n]*sin(n) + buf[k]; buf[k] = x[n]
//
// Unlike Alien the delay line persists across calls, and so does n, which
// keeps the output independent of how the stream is split into blocks.
type Drunk struct {
	base

	line *delay.Line
}

// NewDrunk returns a drunk voice. The frequency is normalized but unused.
func NewDrunk(frequency float64, sampleRate int, opts ...DrunkOption) (*Drunk, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := drunkConfig{delay: defaultDrunkDelay}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n, err := delaySamples("drunk delay", cfg.delay, sampleRate)
	if err != nil {
		return nil, err
	}

	line, err := delay.New(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &Drunk{base: b, line: line}, nil
}

// Process shapes src into dst.
func (e *Drunk) Process(dst, src []float64) {
	for i, x := range src {
		s, c := math.Sincos(float64(e.n))
		y := x*c + x*s + e.line.Tap()
		e.line.Write(x)
		dst[i] = y
		e.n++
	}
}

// ProcessInPlace shapes buf.
func (e *Drunk) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset clears the delay line and the counter.
func (e *Drunk) Reset() {
	e.line.Reset()
	e.resetCounter()
}
