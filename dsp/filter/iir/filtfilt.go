package iir

// steadyState returns the initial state for which a unit step produces a
// constant output from the first sample. Scaled by the first input value it
// suppresses the start-up transient. nb and na must be normalized.
func steadyState(nb, na []float64) []float64 {
	sumB, sumA := 0.0, 0.0
	for i := range nb {
		sumB += nb[i]
		sumA += na[i]
	}

	// A pole at z = 1 has no finite steady state; fall back to zero state.
	zi := make([]float64, len(nb)-1)
	if sumA == 0 {
		return zi
	}

	y := sumB / sumA
	acc := 0.0
	for k := len(nb) - 1; k >= 1; k-- {
		acc += nb[k] - na[k]*y
		zi[k-1] = acc
	}

	return zi
}

// padLength returns the odd-extension length used for a block of n samples:
// three times the longer coefficient vector, limited to n-1.
func padLength(b, a []float64, n int) int {
	pad := 3 * max(len(b), len(a))
	return max(min(pad, n-1), 0)
}

// ZeroPhase runs a filter forward and backward over whole blocks. Nothing is
// carried from one block to the next; the value keeps only scratch memory so
// repeated calls do not allocate once the longest block has been seen.
type ZeroPhase struct {
	f    *Filter
	zi   []float64
	init []float64
	ext  []float64
}

// NewZeroPhase prepares forward-backward filtering with b/a.
func NewZeroPhase(b, a []float64) (*ZeroPhase, error) {
	f, err := NewFilter(b, a)
	if err != nil {
		return nil, err
	}

	return &ZeroPhase{
		f:    f,
		zi:   steadyState(f.b, f.a),
		init: make([]float64, f.Order()),
	}, nil
}

// Process writes the zero-phase filtered src into dst. The block is extended
// at both ends by odd reflection and each pass starts from the steady state
// scaled by its first sample. dst may alias src.
func (z *ZeroPhase) Process(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	pad := padLength(z.f.b, z.f.a, n)
	size := n + 2*pad
	if cap(z.ext) < size {
		z.ext = make([]float64, size)
	}
	ext := z.ext[:size]

	for i := range pad {
		ext[i] = 2*src[0] - src[pad-i]
	}

	copy(ext[pad:], src)

	for i := range pad {
		ext[pad+n+i] = 2*src[n-1] - src[n-2-i]
	}

	z.pass(ext)
	reverse(ext)
	z.pass(ext)
	reverse(ext)

	copy(dst[:n], ext[pad:pad+n])
}

func (z *ZeroPhase) pass(buf []float64) {
	for i, v := range z.zi {
		z.init[i] = v * buf[0]
	}

	copy(z.f.z, z.init)
	z.f.ProcessInPlace(buf)
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
