package stream

import "errors"

var (
	// ErrNilEffect is returned when a session is given no effect.
	ErrNilEffect = errors.New("stream: nil effect")
	// ErrInvalidGain is returned for negative or non-finite gains.
	ErrInvalidGain = errors.New("stream: gain must be finite and >= 0")
	// ErrBlockSize is returned when a block does not match the session block size.
	ErrBlockSize = errors.New("stream: block size mismatch")
)
