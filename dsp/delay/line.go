package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

// Line is a fixed-size circular delay line with a single write cursor.
//
// The cursor advances by exactly one slot per Write and wraps modulo Len.
// Read positions are expressed relative to the cursor: a delay of Len
// addresses the slot about to be overwritten, i.e. the oldest sample.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zeroed delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Cursor returns the current write position.
func (d *Line) Cursor() int {
	return d.writePos
}

// Write stores one sample at the cursor and advances it.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Tap returns the sample at the cursor, written Len samples ago.
func (d *Line) Tap() float64 {
	return d.buffer[d.writePos]
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	return d.buffer[core.Mod(d.writePos-delay, len(d.buffer))]
}

// ReadFractional reads the position cursor-delay using the selected kernel.
//
// The position is split into floor and fraction; both neighbouring slots are
// addressed modulo Len so any delay, including one longer than the line,
// wraps instead of failing.
func (d *Line) ReadFractional(delay float64, mode interp.Mode) float64 {
	pos := float64(d.writePos) - delay
	prev := math.Floor(pos)
	frac := pos - prev

	size := len(d.buffer)
	k := int(prev)
	i0 := core.Mod(k, size)
	i1 := core.Mod(k+1, size)

	if mode == interp.ModeHermite {
		return interp.Hermite4(frac,
			d.buffer[core.Mod(k-1, size)],
			d.buffer[i0],
			d.buffer[i1],
			d.buffer[core.Mod(k+2, size)],
		)
	}

	return interp.Linear2(frac, d.buffer[i0], d.buffer[i1])
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
