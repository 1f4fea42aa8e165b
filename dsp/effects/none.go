package effects

// NoEffect passes its input through unchanged.
type NoEffect struct {
	base
}

// NewNoEffect returns a pass-through effect. The frequency is normalized
// like any other effect's but otherwise unused.
func NewNoEffect(frequency float64, sampleRate int) (*NoEffect, error) {
	b, err := newBase(sampleRate, frequency)
	if err != nil {
		return nil, err
	}
	return &NoEffect{base: b}, nil
}

// Process copies src into dst.
func (e *NoEffect) Process(dst, src []float64) {
	copy(dst[:len(src)], src)
	e.n += uint64(len(src))
}

// ProcessInPlace leaves buf untouched.
func (e *NoEffect) ProcessInPlace(buf []float64) {
	e.n += uint64(len(buf))
}

// Reset rewinds the counter.
func (e *NoEffect) Reset() { e.resetCounter() }
