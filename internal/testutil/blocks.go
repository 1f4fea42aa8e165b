package testutil

// Block is a half-open index range [Start, End).
type Block struct {
	Start, End int
}

// Len returns End - Start.
func (b Block) Len() int { return b.End - b.Start }

// Blocks splits n samples into consecutive blocks whose sizes cycle through
// sizes. The final block is truncated to fit. Sizes must be positive.
func Blocks(n int, sizes ...int) []Block {
	if len(sizes) == 0 {
		sizes = []int{n}
	}

	var out []Block
	for start, i := 0, 0; start < n; i++ {
		size := sizes[i%len(sizes)]
		if size <= 0 {
			panic("testutil: non-positive block size")
		}

		end := min(start+size, n)
		out = append(out, Block{Start: start, End: end})
		start = end
	}

	return out
}
