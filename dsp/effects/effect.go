package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// MaxNormalizedFrequency is the value substituted for frequencies at or
// above the Nyquist rate.
const MaxNormalizedFrequency = 0.999

// Effect processes consecutive blocks of samples.
type Effect interface {
	// Process computes the output for src into dst. len(dst) must be at
	// least len(src); dst may alias src. The output is not clipped.
	Process(dst, src []float64)
	// ProcessInPlace computes the output for buf over buf.
	ProcessInPlace(buf []float64)
	// Reset zeroes counters, delay lines and filter state.
	Reset()
}

// Diagnostics exposes the normalized configuration of an effect.
type Diagnostics interface {
	NormalizedFrequencies() []float64
	Clamped() []FrequencyClamped
	SampleRate() int
	Counter() uint64
}

// FrequencyClamped records a frequency that reached the Nyquist rate and was
// replaced by MaxNormalizedFrequency. It is a diagnostic, not an error.
type FrequencyClamped struct {
	// Index is the position of the frequency in the constructor arguments.
	Index int
	// Requested is the frequency in Hz as given.
	Requested float64
	// Normalized is Requested / (sampleRate/2) before clamping.
	Normalized float64
}

func (c FrequencyClamped) String() string {
	return fmt.Sprintf("frequency %d: %g Hz is %.4g of Nyquist, clamped to %g",
		c.Index, c.Requested, c.Normalized, MaxNormalizedFrequency)
}

// Compute runs one block through e and returns the output in a new slice.
func Compute(e Effect, block []float64) []float64 {
	out := make([]float64, len(block))
	e.Process(out, block)
	return out
}

// ClampedOf returns the clamp diagnostics of e, or nil when e does not
// report any.
func ClampedOf(e Effect) []FrequencyClamped {
	if d, ok := e.(Diagnostics); ok {
		return d.Clamped()
	}
	return nil
}

// base carries what every effect shares: the sample rate, the normalized
// frequencies and the running sample counter.
type base struct {
	sampleRate int
	freqs      []float64
	clamped    []FrequencyClamped
	n          uint64
}

func newBase(sampleRate int, frequencies ...float64) (base, error) {
	if sampleRate <= 0 {
		return base{}, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidParameter, sampleRate)
	}

	b := base{
		sampleRate: sampleRate,
		freqs:      make([]float64, len(frequencies)),
	}

	nyquist := float64(sampleRate) / 2
	for i, f := range frequencies {
		if f < 0 || !core.IsFinite(f) {
			return base{}, fmt.Errorf("%w: frequency must be finite and >= 0: %g", ErrInvalidParameter, f)
		}

		norm := f / nyquist
		if norm >= 1 {
			b.clamped = append(b.clamped, FrequencyClamped{Index: i, Requested: f, Normalized: norm})
			norm = MaxNormalizedFrequency
		}

		b.freqs[i] = norm
	}

	return b, nil
}

// NormalizedFrequencies returns the frequencies as fractions of Nyquist.
func (b *base) NormalizedFrequencies() []float64 {
	return append([]float64(nil), b.freqs...)
}

// Clamped returns the frequencies that were clamped at construction.
func (b *base) Clamped() []FrequencyClamped {
	return append([]FrequencyClamped(nil), b.clamped...)
}

// SampleRate returns the sample rate in Hz.
func (b *base) SampleRate() int { return b.sampleRate }

// Counter returns the number of samples processed since the last reset.
func (b *base) Counter() uint64 { return b.n }

func (b *base) resetCounter() { b.n = 0 }

// samples converts a duration to a whole number of samples, truncating.
func samples(seconds float64, sampleRate int) int {
	return int(seconds * float64(sampleRate))
}

func validateFinite(name string, v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%w: %s must be finite: %g", ErrInvalidParameter, name, v)
	}
	return nil
}

func delaySamples(name string, seconds float64, sampleRate int) (int, error) {
	if seconds < 0 || !core.IsFinite(seconds) {
		return 0, fmt.Errorf("%w: %s must be finite and >= 0: %g", ErrInvalidParameter, name, seconds)
	}

	n := samples(seconds, sampleRate)
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s of %g s is shorter than one sample at %d Hz",
			ErrInvalidParameter, name, seconds, sampleRate)
	}

	return n, nil
}

var (
	_ Effect = (*NoEffect)(nil)
	_ Effect = (*AM)(nil)
	_ Effect = (*ComplexAM)(nil)
	_ Effect = (*Vibrato)(nil)
	_ Effect = (*Echo)(nil)
	_ Effect = (*PingPong)(nil)
	_ Effect = (*Alien)(nil)
	_ Effect = (*Drunk)(nil)
	_ Effect = (*Autobots)(nil)
	_ Effect = (*Butterworth)(nil)

	_ Diagnostics = (*AM)(nil)
	_ Diagnostics = (*Butterworth)(nil)
)
