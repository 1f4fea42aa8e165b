package iir

import "errors"

var (
	// ErrEmptyCoefficients is returned when B or A is empty.
	ErrEmptyCoefficients = errors.New("iir: empty coefficient vector")
	// ErrZeroLeading is returned when A[0] is zero.
	ErrZeroLeading = errors.New("iir: leading denominator coefficient is zero")
	// ErrStateLength is returned when a state vector does not match the order.
	ErrStateLength = errors.New("iir: state length mismatch")
	// ErrInvalidPoints is returned for a non-positive response size.
	ErrInvalidPoints = errors.New("iir: invalid number of response points")
)
