package interp

import "fmt"

// Mode selects a fractional interpolation kernel.
type Mode int

const (
	// ModeLinear blends the two samples around the read position.
	ModeLinear Mode = iota
	// ModeHermite fits a cubic through the four samples around the read position.
	ModeHermite
)

// String returns the lower-case name of m.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m names a known kernel.
func (m Mode) Valid() bool {
	return m == ModeLinear || m == ModeHermite
}

// Linear2 returns (1-t)*x0 + t*x1.
//
// The weighted form is kept (rather than x0 + t*(x1-x0)) so that t == 1
// returns x1 exactly.
func Linear2(t, x0, x1 float64) float64 {
	return (1-t)*x0 + t*x1
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
