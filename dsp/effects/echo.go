package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/delay"
)

const (
	defaultEchoDelay = 0.2
	defaultEchoGain  = 0.5
)

// EchoOption mutates echo construction parameters.
type EchoOption func(*echoConfig) error

type echoConfig struct {
	delay    float64
	gain     float64
	quantize bool
}

// WithEchoDelay sets the echo delay in seconds.
func WithEchoDelay(seconds float64) EchoOption {
	return func(cfg *echoConfig) error {
		if err := validateFinite("echo delay", seconds); err != nil {
			return err
		}

		cfg.delay = seconds

		return nil
	}
}

// WithEchoGain sets the gain of the delayed tap.
func WithEchoGain(gain float64) EchoOption {
	return func(cfg *echoConfig) error {
		if err := validateFinite("echo gain", gain); err != nil {
			return err
		}

		cfg.gain = gain

		return nil
	}
}

// WithEchoQuantize truncates every output sample toward zero, as an integer
// sample pipeline would.
func WithEchoQuantize(enabled bool) EchoOption {
	return func(cfg *echoConfig) error {
		cfg.quantize = enabled
		return nil
	}
}

// Echo adds one delayed copy of the input:
//
//	y[i] = x[i] + g*buf[k]; buf[k] = x[i]
//
// The line stores the dry input, so the echo does not repeat.
type Echo struct {
	base

	gain     float64
	quantize bool
	line     *delay.Line
}

// NewEcho returns an echo. The frequency is normalized but unused.
func NewEcho(frequency float64, sampleRate int, opts ...EchoOption) (*Echo, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := echoConfig{delay: defaultEchoDelay, gain: defaultEchoGain}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n, err := delaySamples("echo delay", cfg.delay, sampleRate)
	if err != nil {
		return nil, err
	}

	line, err := delay.New(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &Echo{base: b, gain: cfg.gain, quantize: cfg.quantize, line: line}, nil
}

// DelaySamples returns the echo delay in samples.
func (e *Echo) DelaySamples() int { return e.line.Len() }

// Gain returns the delayed tap gain.
func (e *Echo) Gain() float64 { return e.gain }

// Process adds the echo to src into dst.
func (e *Echo) Process(dst, src []float64) {
	for i, x := range src {
		y := x + e.gain*e.line.Tap()
		if e.quantize {
			y = math.Trunc(y)
		}

		e.line.Write(x)
		dst[i] = y
	}

	e.n += uint64(len(src))
}

// ProcessInPlace adds the echo to buf.
func (e *Echo) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset clears the delay line.
func (e *Echo) Reset() {
	e.line.Reset()
	e.resetCounter()
}
