package core

// Sample is the element type of real and analytic signal blocks.
type Sample interface {
	~float64 | ~complex128
}

// EnsureLen returns a slice with the requested length, reusing buf capacity
// if possible. Contents beyond the previous length are unspecified.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
