// Package effects implements the block-wise voice effects.
//
// Every effect satisfies [Effect]: Process computes one block, ProcessInPlace
// does the same over a single buffer, and Reset returns the instance to its
// freshly constructed state. State that carries across blocks (phase
// counters, delay lines, filter memory) is kept so that a stream split into
// blocks produces the same output as the stream processed in one piece. The
// exceptions are [Alien], which clears its delay line on every call, and
// [Autobots], which filters each block in isolation.
//
// Effects available in this package:
//   - NoEffect: pass-through.
//   - AM: ring modulation by a cosine carrier.
//   - ComplexAM: single-sideband frequency shift through a complex elliptic filter.
//   - Vibrato: sinusoidally modulated fractional delay.
//   - Echo: single feedforward tap.
//   - PingPong: two cross-coupled delay lines with a shared cursor.
//   - Alien: carrier-shaped feedback delay, cleared per block.
//   - Drunk: trigonometric shaping plus a persistent delay tap.
//   - Autobots: zero-phase band-pass over each block.
//   - Butterworth (LPF, HPF, BPF): streaming IIR filtering.
//
// Constructors take the effect frequency in Hz and the sample rate, followed
// by functional options. Frequencies are normalized to the Nyquist rate;
// values at or above Nyquist are clamped to [MaxNormalizedFrequency] and
// reported through Clamped rather than failing. Instances are not safe for
// concurrent use.
package effects
