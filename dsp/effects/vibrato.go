package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

const (
	defaultVibratoDelay = 0.5
	defaultVibratoVary  = 0.02
)

// VibratoOption mutates vibrato construction parameters.
type VibratoOption func(*vibratoConfig) error

type vibratoConfig struct {
	delay  float64
	vary   float64
	interp interp.Mode
}

// WithVibratoDelay sets the constant delay T in seconds.
func WithVibratoDelay(seconds float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: vibrato delay must be finite and >= 0: %g", ErrInvalidParameter, seconds)
		}

		cfg.delay = seconds

		return nil
	}
}

// WithVibratoVary sets the delay swing W in seconds. W must not exceed T.
func WithVibratoVary(seconds float64) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: vibrato vary delay must be finite and >= 0: %g", ErrInvalidParameter, seconds)
		}

		cfg.vary = seconds

		return nil
	}
}

// WithVibratoInterpolation selects the fractional read kernel. The default
// is linear.
func WithVibratoInterpolation(mode interp.Mode) VibratoOption {
	return func(cfg *vibratoConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("%w: unknown interpolation %v", ErrInvalidParameter, mode)
		}

		cfg.interp = mode

		return nil
	}
}

// Vibrato reads a delay line at a sinusoidally varying fractional delay
//
//	tau[n] = T + W*sin(2*pi*f*n)
//
// where T and W are whole samples and f is the normalized modulation
// frequency. The line holds T+W samples. Each sample is read before the
// input is written at the cursor.
type Vibrato struct {
	base

	t, w   int
	interp interp.Mode
	line   *delay.Line
}

// NewVibrato returns a vibrato modulated at frequency Hz.
func NewVibrato(frequency float64, sampleRate int, opts ...VibratoOption) (*Vibrato, error) {
	cfg := vibratoConfig{
		delay:  defaultVibratoDelay,
		vary:   defaultVibratoVary,
		interp: interp.ModeLinear,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.delay < cfg.vary {
		return nil, fmt.Errorf("%w: vibrato delay T (%g s) must be >= vary delay W (%g s)",
			ErrInvalidParameter, cfg.delay, cfg.vary)
	}

	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	t := samples(cfg.delay, sampleRate)
	w := samples(cfg.vary, sampleRate)
	if t+w == 0 {
		return nil, fmt.Errorf("%w: vibrato delay line is empty at %d Hz", ErrInvalidParameter, sampleRate)
	}

	line, err := delay.New(t + w)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &Vibrato{base: b, t: t, w: w, interp: cfg.interp, line: line}, nil
}

// DelaySamples returns the constant delay T and the swing W in samples.
func (e *Vibrato) DelaySamples() (t, w int) { return e.t, e.w }

// Interpolation returns the fractional read kernel.
func (e *Vibrato) Interpolation() interp.Mode { return e.interp }

// Process runs the modulated delay over src into dst.
func (e *Vibrato) Process(dst, src []float64) {
	f := e.freqs[0]
	tw, ww := float64(e.t), float64(e.w)

	for i, x := range src {
		tau := tw + ww*math.Sin(2*math.Pi*f*float64(e.n))
		y := e.line.ReadFractional(tau, e.interp)
		e.line.Write(x)
		dst[i] = y
		e.n++
	}
}

// ProcessInPlace runs the modulated delay over buf.
func (e *Vibrato) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset clears the delay line, its cursor and the counter.
func (e *Vibrato) Reset() {
	e.line.Reset()
	e.resetCounter()
}
