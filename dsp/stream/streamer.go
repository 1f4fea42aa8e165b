package stream

import (
	"github.com/gopxl/beep/v2"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/stats/level"
)

// Streamer is a beep.Streamer that mixes its source to mono, runs the
// effect in the 16-bit scale and writes the result to both channels,
// clamped to [-1, 1].
type Streamer struct {
	s      beep.Streamer
	effect effects.Effect
	buf    []float64
}

// NewStreamer wraps s with effect.
func NewStreamer(s beep.Streamer, effect effects.Effect) *Streamer {
	return &Streamer{s: s, effect: effect}
}

// Stream implements beep.Streamer.
func (st *Streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := st.s.Stream(samples)
	if n == 0 {
		return n, ok
	}

	st.buf = core.EnsureLen(st.buf, n)
	for i := range n {
		st.buf[i] = (samples[i][0] + samples[i][1]) / 2 * level.FullScale
	}

	st.effect.ProcessInPlace(st.buf)

	for i := range n {
		v := core.Clamp(st.buf[i]/level.FullScale, -1, 1)
		samples[i] = [2]float64{v, v}
	}

	return n, ok
}

// Err returns the underlying streamer's error.
func (st *Streamer) Err() error {
	return st.s.Err()
}

var _ beep.Streamer = (*Streamer)(nil)
