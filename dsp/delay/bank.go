package delay

import "fmt"

// Bank is a set of equally sized delay lines sharing one write cursor, as
// used by cross-coupled delay networks. All lines advance in lock-step.
type Bank struct {
	lines    [][]float64
	writePos int
}

// NewBank returns a zeroed bank of channels lines with size slots each.
func NewBank(channels, size int) (*Bank, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay bank channels must be > 0: %d", channels)
	}
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	lines := make([][]float64, channels)
	backing := make([]float64, channels*size)
	for ch := range lines {
		lines[ch] = backing[ch*size : (ch+1)*size : (ch+1)*size]
	}

	return &Bank{lines: lines}, nil
}

// Channels returns the number of lines.
func (b *Bank) Channels() int { return len(b.lines) }

// Len returns the per-line size.
func (b *Bank) Len() int { return len(b.lines[0]) }

// Cursor returns the shared write position.
func (b *Bank) Cursor() int { return b.writePos }

// Tap returns the sample of line ch at the cursor.
func (b *Bank) Tap(ch int) float64 {
	return b.lines[ch][b.writePos]
}

// Set overwrites the sample of line ch at the cursor without advancing.
func (b *Bank) Set(ch int, v float64) {
	b.lines[ch][b.writePos] = v
}

// Advance moves the shared cursor one slot forward.
func (b *Bank) Advance() {
	b.writePos++
	if b.writePos >= len(b.lines[0]) {
		b.writePos = 0
	}
}

// Reset clears every line and rewinds the cursor.
func (b *Bank) Reset() {
	for _, l := range b.lines {
		clear(l)
	}
	b.writePos = 0
}
