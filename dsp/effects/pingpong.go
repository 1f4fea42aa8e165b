package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/delay"
)

const defaultPingPongDelay = 0.2

// PingPongOption mutates ping-pong construction parameters.
type PingPongOption func(*pingPongConfig) error

type pingPongConfig struct {
	a1, a2 float64
	b1, b2 float64
	c1, c2 float64
	delay  float64
}

func defaultPingPongConfig() pingPongConfig {
	return pingPongConfig{
		a1: 1, a2: 1,
		b1: 0.7, b2: 0.7,
		c1: 1, c2: 1,
		delay: defaultPingPongDelay,
	}
}

// WithPingPongInput sets the direct input gains a1 and a2.
func WithPingPongInput(a1, a2 float64) PingPongOption {
	return func(cfg *pingPongConfig) error {
		if err := validateFinite("ping-pong a1", a1); err != nil {
			return err
		}
		if err := validateFinite("ping-pong a2", a2); err != nil {
			return err
		}

		cfg.a1, cfg.a2 = a1, a2

		return nil
	}
}

// WithPingPongFeedback sets the cross-feedback gains b1 and b2.
func WithPingPongFeedback(b1, b2 float64) PingPongOption {
	return func(cfg *pingPongConfig) error {
		if err := validateFinite("ping-pong b1", b1); err != nil {
			return err
		}
		if err := validateFinite("ping-pong b2", b2); err != nil {
			return err
		}

		cfg.b1, cfg.b2 = b1, b2

		return nil
	}
}

// WithPingPongOutput sets the delayed output gains c1 and c2.
func WithPingPongOutput(c1, c2 float64) PingPongOption {
	return func(cfg *pingPongConfig) error {
		if err := validateFinite("ping-pong c1", c1); err != nil {
			return err
		}
		if err := validateFinite("ping-pong c2", c2); err != nil {
			return err
		}

		cfg.c1, cfg.c2 = c1, c2

		return nil
	}
}

// WithPingPongDelay sets the delay of both lines in seconds.
func WithPingPongDelay(seconds float64) PingPongOption {
	return func(cfg *pingPongConfig) error {
		if err := validateFinite("ping-pong delay", seconds); err != nil {
			return err
		}

		cfg.delay = seconds

		return nil
	}
}

// PingPong is a two-line delay network in which each line feeds the other.
// Per sample, with k the shared cursor:
//
//	u1 = a1*x + b1*buf2[k]    y1 = a1*x + c1*buf1[k]
//	u2 = a2*x + b2*buf1[k]    y2 = a2*x + c2*buf2[k]
//
// after which buf1[k] = u1, buf2[k] = u2 and k advances. Process returns
// channel 1; ProcessStereo returns both.
type PingPong struct {
	base

	a1, a2 float64
	b1, b2 float64
	c1, c2 float64
	lines  *delay.Bank
}

// NewPingPong returns a ping-pong delay. The frequency is normalized but
// unused.
func NewPingPong(frequency float64, sampleRate int, opts ...PingPongOption) (*PingPong, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	cfg := defaultPingPongConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n, err := delaySamples("ping-pong delay", cfg.delay, sampleRate)
	if err != nil {
		return nil, err
	}

	lines, err := delay.NewBank(2, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &PingPong{
		base:  b,
		a1:    cfg.a1,
		a2:    cfg.a2,
		b1:    cfg.b1,
		b2:    cfg.b2,
		c1:    cfg.c1,
		c2:    cfg.c2,
		lines: lines,
	}, nil
}

// DelaySamples returns the length of each line.
func (e *PingPong) DelaySamples() int { return e.lines.Len() }

// Process writes channel 1 of the network for src into dst.
func (e *PingPong) Process(dst, src []float64) {
	for i, x := range src {
		dst[i], _ = e.step(x)
	}
}

// ProcessInPlace writes channel 1 over buf.
func (e *PingPong) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// ProcessStereo writes both channels for src into left and right. Either
// output may alias src.
func (e *PingPong) ProcessStereo(left, right, src []float64) {
	for i, x := range src {
		left[i], right[i] = e.step(x)
	}
}

func (e *PingPong) step(x float64) (y1, y2 float64) {
	d1 := e.lines.Tap(0)
	d2 := e.lines.Tap(1)

	y1 = e.a1*x + e.c1*d1
	y2 = e.a2*x + e.c2*d2

	e.lines.Set(0, e.a1*x+e.b1*d2)
	e.lines.Set(1, e.a2*x+e.b2*d1)
	e.lines.Advance()
	e.n++

	return y1, y2
}

// Reset clears both lines and rewinds the shared cursor.
func (e *PingPong) Reset() {
	e.lines.Reset()
	e.resetCounter()
}
