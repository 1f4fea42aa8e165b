package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/stats/level"
)

// maxEmptyReads bounds consecutive (0, nil) reads before Run gives up.
const maxEmptyReads = 100

// Stats reports what a session has processed since the last restart.
type Stats struct {
	Blocks  uint64
	Samples uint64
	// Clipped counts output samples that were limited to the 16-bit range.
	Clipped uint64
	// Level covers the output before clipping, over all blocks.
	Level level.Stats
	// Last covers the most recent block only.
	Last level.Stats
}

// Session owns one effect instance and the buffers around it. It is not
// safe for concurrent use.
type Session struct {
	cfg    core.ProcessorConfig
	effect effects.Effect
	gain   float64

	in  []float64
	out []float64

	inBlock  []int16
	outBlock []int16

	meter   level.Meter
	blocks  uint64
	samples uint64
	clipped uint64
}

// NewSession creates a session running effect with the given block settings.
func NewSession(effect effects.Effect, opts ...core.ProcessorOption) (*Session, error) {
	if effect == nil {
		return nil, ErrNilEffect
	}

	cfg := core.ApplyProcessorOptions(opts...)

	return &Session{
		cfg:      cfg,
		effect:   effect,
		gain:     1,
		in:       make([]float64, cfg.BlockSize),
		out:      make([]float64, cfg.BlockSize),
		inBlock:  make([]int16, cfg.BlockSize),
		outBlock: make([]int16, cfg.BlockSize),
	}, nil
}

// Config returns the block settings.
func (s *Session) Config() core.ProcessorConfig { return s.cfg }

// Effect returns the active effect.
func (s *Session) Effect() effects.Effect { return s.effect }

// SetEffect swaps the active effect. State is not carried over.
func (s *Session) SetEffect(effect effects.Effect) error {
	if effect == nil {
		return ErrNilEffect
	}

	s.effect = effect

	return nil
}

// Gain returns the output gain.
func (s *Session) Gain() float64 { return s.gain }

// SetGain sets the linear output gain applied after the effect.
func (s *Session) SetGain(gain float64) error {
	if gain < 0 || !core.IsFinite(gain) {
		return fmt.Errorf("%w: %g", ErrInvalidGain, gain)
	}

	s.gain = gain

	return nil
}

// Restart resets the effect and clears the statistics.
func (s *Session) Restart() {
	s.effect.Reset()
	s.meter.Reset()
	s.blocks = 0
	s.samples = 0
	s.clipped = 0
}

// Stats returns the statistics since the last restart.
func (s *Session) Stats() Stats {
	return Stats{
		Blocks:  s.blocks,
		Samples: s.samples,
		Clipped: s.clipped,
		Level:   s.meter.Result(),
		Last:    s.meter.Last(),
	}
}

// ProcessBlock runs one block of src into dst. Both must be exactly one
// block long. It returns the number of clipped samples.
func (s *Session) ProcessBlock(dst, src []int16) (int, error) {
	if len(src) != s.cfg.BlockSize || len(dst) != len(src) {
		return 0, fmt.Errorf("%w: got %d in, %d out, want %d", ErrBlockSize, len(src), len(dst), s.cfg.BlockSize)
	}

	for i, v := range src {
		s.in[i] = float64(v)
	}

	s.effect.Process(s.out, s.in)

	if s.gain != 1 {
		vecmath.ScaleBlock(s.out, s.out, s.gain)
	}

	s.meter.Update(s.out)

	clipped := Quantize(dst, s.out)

	s.blocks++
	s.samples += uint64(len(src))
	s.clipped += uint64(clipped)

	return clipped, nil
}

// Run processes blocks from src into sink until src returns io.EOF or ctx
// is done. The final short block is zero-padded to the block size.
func (s *Session) Run(ctx context.Context, src Source, sink Sink) error {
	empty := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.ReadBlock(s.inBlock)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("stream: read block %d: %w", s.blocks, err)
		}

		if n > 0 {
			empty = 0
			clear(s.inBlock[n:])

			if _, perr := s.ProcessBlock(s.outBlock, s.inBlock); perr != nil {
				return perr
			}

			if werr := sink.WriteBlock(s.outBlock); werr != nil {
				return fmt.Errorf("stream: write block %d: %w", s.blocks-1, werr)
			}
		}

		if err != nil {
			return nil
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}
}

// Quantize truncates src toward zero into dst, clipping to the 16-bit
// range. len(src) must be at least len(dst). NaN becomes 0 and counts as
// clipped. It returns the clip count.
func Quantize(dst []int16, src []float64) int {
	clipped := 0

	for i, x := range src[:len(dst)] {
		t := math.Trunc(x)

		switch {
		case math.IsNaN(t):
			dst[i] = 0
			clipped++
		case t > level.MaxSample:
			dst[i] = math.MaxInt16
			clipped++
		case t < level.MinSample:
			dst[i] = math.MinInt16
			clipped++
		default:
			dst[i] = int16(t)
		}
	}

	return clipped
}
