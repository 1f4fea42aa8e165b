package effectchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

// ErrEmptyChain is returned when a chain description names no effect.
var ErrEmptyChain = errors.New("effectchain: empty chain")

type stage struct {
	name   string
	effect effects.Effect
}

// Chain runs effects in series. The output of each stage is the input of
// the next. Intermediate results are not clipped.
type Chain struct {
	stages []stage
}

// NewChain builds a chain from already constructed effects.
func NewChain(fx ...effects.Effect) *Chain {
	c := &Chain{stages: make([]stage, 0, len(fx))}
	for i, e := range fx {
		c.stages = append(c.stages, stage{name: fmt.Sprintf("stage%d", i), effect: e})
	}

	return c
}

// ParseChain builds a chain from a description such as
//
//	echo: delay=0.1, gain=0.4 | am: frequency=300
//
// Each stage is an effect name optionally followed by ':' and a parameter
// string. The clamp diagnostics of all stages are returned in stage order.
func (r *Registry) ParseChain(ctx Context, desc string) (*Chain, []effects.FrequencyClamped, error) {
	c := &Chain{}

	var clamped []effects.FrequencyClamped

	for _, part := range splitUnquoted(desc, '|') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, input, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)

		fx, cl, err := r.Build(name, ctx, input)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %d: %w", len(c.stages), err)
		}

		c.stages = append(c.stages, stage{name: name, effect: fx})
		clamped = append(clamped, cl...)
	}

	if len(c.stages) == 0 {
		return nil, nil, ErrEmptyChain
	}

	return c, clamped, nil
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Names returns the stage names in processing order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}

	return names
}

// Process runs src through every stage into dst.
func (c *Chain) Process(dst, src []float64) {
	if len(c.stages) == 0 {
		copy(dst, src)
		return
	}

	c.stages[0].effect.Process(dst, src)

	out := dst[:len(src)]
	for _, s := range c.stages[1:] {
		s.effect.ProcessInPlace(out)
	}
}

// ProcessInPlace runs buf through every stage.
func (c *Chain) ProcessInPlace(buf []float64) {
	for _, s := range c.stages {
		s.effect.ProcessInPlace(buf)
	}
}

// Reset resets every stage.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.effect.Reset()
	}
}

var _ effects.Effect = (*Chain)(nil)
