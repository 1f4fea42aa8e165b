package level

import "math"

const (
	// FullScale is the magnitude that maps to 0 dBFS.
	FullScale = 32768.0
	// MaxSample and MinSample bound the representable 16-bit range.
	MaxSample = 32767.0
	MinSample = -32768.0
)

// Stats holds level statistics of a signal.
type Stats struct {
	Length      int
	DC          float64 // mean
	RMS         float64
	RMSdBFS     float64
	Peak        float64 // max |x|
	PeakdBFS    float64
	CrestFactor float64 // peak / RMS (linear)
	// Clipped counts samples outside [MinSample, MaxSample].
	Clipped       int
	ZeroCrossings int
}

// DBFS converts an amplitude to decibels relative to FullScale.
// Returns -Inf for zero.
func DBFS(amplitude float64) float64 {
	a := math.Abs(amplitude)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * mathLog10(a/FullScale)
}

// IsClipped reports whether x lies outside the 16-bit range.
func IsClipped(x float64) bool {
	return x > MaxSample || x < MinSample
}

func emptyStats() Stats {
	return Stats{
		RMSdBFS:  math.Inf(-1),
		PeakdBFS: math.Inf(-1),
	}
}

// Calculate computes all statistics of signal in a single pass.
func Calculate(signal []float64) Stats {
	var acc accumulator
	acc.update(signal)

	return acc.result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return mathSqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// accumulator carries running sums across blocks.
type accumulator struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	clipped       int
	zeroCrossings int
	last          float64
}

func (a *accumulator) update(samples []float64) {
	for _, x := range samples {
		if a.n > 0 && a.last*x < 0 {
			a.zeroCrossings++
		}

		a.n++
		a.sum += x
		a.sumSq += x * x

		if v := math.Abs(x); v > a.peak {
			a.peak = v
		}

		if IsClipped(x) {
			a.clipped++
		}

		a.last = x
	}
}

func (a *accumulator) result() Stats {
	if a.n == 0 {
		return emptyStats()
	}

	nf := float64(a.n)
	rms := mathSqrt(a.sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = a.peak / rms
	}

	return Stats{
		Length:        a.n,
		DC:            a.sum / nf,
		RMS:           rms,
		RMSdBFS:       DBFS(rms),
		Peak:          a.peak,
		PeakdBFS:      DBFS(a.peak),
		CrestFactor:   crest,
		Clipped:       a.clipped,
		ZeroCrossings: a.zeroCrossings,
	}
}

// Meter accumulates statistics across consecutive blocks. A zero Meter is
// ready to use.
type Meter struct {
	total   accumulator
	last    Stats
	hasLast bool
}

// NewMeter creates a new Meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block and records it as the most recent block.
func (m *Meter) Update(block []float64) {
	m.total.update(block)
	m.last = Calculate(block)
	m.hasLast = true
}

// Last returns the statistics of the most recent block.
func (m *Meter) Last() Stats {
	if !m.hasLast {
		return emptyStats()
	}

	return m.last
}

// Result returns the statistics of everything seen since the last reset.
// Zero crossings between blocks are counted.
func (m *Meter) Result() Stats {
	return m.total.result()
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
