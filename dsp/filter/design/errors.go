package design

import "errors"

var (
	// ErrInvalidOrder is returned for orders outside [1, MaxOrder].
	ErrInvalidOrder = errors.New("design: invalid filter order")
	// ErrInvalidCutoff is returned for cutoffs outside (0, 1) or a band with low >= high.
	ErrInvalidCutoff = errors.New("design: invalid cutoff frequency")
	// ErrInvalidRipple is returned for non-positive ripple or stopband <= ripple.
	ErrInvalidRipple = errors.New("design: invalid ripple specification")
	// ErrUnstableDesign is returned when the prototype cannot be evaluated.
	ErrUnstableDesign = errors.New("design: prototype evaluation failed")
)

// MaxOrder bounds prototype orders; beyond it the expanded polynomial
// coefficients lose too much precision to be useful.
const MaxOrder = 24
