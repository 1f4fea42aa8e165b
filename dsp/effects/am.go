package effects

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// AM multiplies the input by a cosine carrier keyed to the running sample
// counter:
//
//	y[n] = x[n] * cos(2*pi*f*n)
//
// with f the normalized carrier frequency.
type AM struct {
	base

	carrier []float64
}

// NewAM returns an amplitude modulator with carrier frequency in Hz.
func NewAM(frequency float64, sampleRate int) (*AM, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}

	return &AM{base: b, carrier: make([]float64, 0, 1024)}, nil
}

// Frequency returns the normalized carrier frequency.
func (e *AM) Frequency() float64 { return e.freqs[0] }

// Process modulates src into dst.
func (e *AM) Process(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	e.carrier = core.EnsureLen(e.carrier, n)

	f := e.freqs[0]
	for i := range e.carrier {
		e.carrier[i] = math.Cos(2 * math.Pi * f * float64(e.n+uint64(i)))
	}

	out := dst[:n]
	copy(out, src)
	vecmath.MulBlockInPlace(out, e.carrier)

	e.n += uint64(n)
}

// ProcessInPlace modulates buf.
func (e *AM) ProcessInPlace(buf []float64) { e.Process(buf, buf) }

// Reset rewinds the carrier phase.
func (e *AM) Reset() { e.resetCounter() }
