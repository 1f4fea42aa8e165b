// Package signal generates deterministic test signals, either whole or as
// a block Source that stands in for a capture device.
package signal

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGeneratorWithOptions creates a signal generator from processor options
// and signal-specific options. The seed defaults to 1.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Waveform selects what a Source produces.
type Waveform int

const (
	// WaveSine is a sine at a fixed frequency.
	WaveSine Waveform = iota
	// WaveNoise is uniform white noise.
	WaveNoise
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveNoise:
		return "noise"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Source streams a 16-bit test signal block by block. The phase and the
// noise sequence continue across blocks.
type Source struct {
	wave      Waveform
	step      float64
	amplitude float64
	rng       *rand.Rand
	n         int
	total     int
}

// Source returns a block source of samples frames of wave. amplitude is in
// the 16-bit scale and must not exceed 32767.
func (g *Generator) Source(wave Waveform, freqHz, amplitude float64, samples int) (*Source, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("source samples must be > 0: %d", samples)
	}
	if amplitude < 0 || amplitude > math.MaxInt16 {
		return nil, fmt.Errorf("source amplitude must be in [0, %d]: %f", math.MaxInt16, amplitude)
	}
	if wave != WaveSine && wave != WaveNoise {
		return nil, fmt.Errorf("unknown waveform %v", wave)
	}

	return &Source{
		wave:      wave,
		step:      2 * math.Pi * freqHz / float64(g.cfg.SampleRate),
		amplitude: amplitude,
		rng:       rand.New(rand.NewSource(g.seed)),
		total:     samples,
	}, nil
}

// ReadBlock fills buf with the next frames and returns io.EOF when done.
func (s *Source) ReadBlock(buf []int16) (int, error) {
	if s.n >= s.total {
		return 0, io.EOF
	}

	n := min(len(buf), s.total-s.n)
	for i := range n {
		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(s.step * float64(s.n+i))
		case WaveNoise:
			v = s.rng.Float64()*2 - 1
		}
		buf[i] = int16(math.Trunc(v * s.amplitude))
	}

	s.n += n

	return n, nil
}

// ParseSpec parses "sine:440" or "noise" into a waveform and frequency.
func ParseSpec(spec string) (Waveform, float64, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(spec), ":")

	switch name {
	case "sine":
		if !hasArg {
			return 0, 0, fmt.Errorf("sine needs a frequency, e.g. sine:440")
		}
		hz, err := strconv.ParseFloat(arg, 64)
		if err != nil || hz < 0 || !core.IsFinite(hz) {
			return 0, 0, fmt.Errorf("bad sine frequency %q", arg)
		}
		return WaveSine, hz, nil
	case "noise":
		return WaveNoise, 0, nil
	default:
		return 0, 0, fmt.Errorf("unknown signal %q", spec)
	}
}
