package design

import (
	"fmt"
	"strings"
)

// Kind selects the band shape of a Butterworth design.
type Kind int

const (
	// Lowpass passes frequencies below the cutoff.
	Lowpass Kind = iota
	// Highpass passes frequencies above the cutoff.
	Highpass
	// Bandpass passes frequencies between two cutoffs.
	Bandpass
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Cutoffs returns how many cutoff frequencies k requires.
func (k Kind) Cutoffs() int {
	if k == Bandpass {
		return 2
	}
	return 1
}

// ParseKind parses a band-shape name. Besides the canonical names it accepts
// the short forms lp, hp, bp and the words low, high, band.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "low", "lp":
		return Lowpass, nil
	case "highpass", "high", "hp":
		return Highpass, nil
	case "bandpass", "band", "bp":
		return Bandpass, nil
	default:
		return 0, fmt.Errorf("design: unknown filter type %q", s)
	}
}
