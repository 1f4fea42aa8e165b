package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/interp"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

const testRate = 8000

type factory struct {
	name string
	make func() (Effect, error)
	// streaming effects produce the same output however the input is split
	streaming bool
}

func factories() []factory {
	return []factory{
		{"none", func() (Effect, error) { return NewNoEffect(200, testRate) }, true},
		{"am", func() (Effect, error) { return NewAM(200, testRate) }, true},
		{"complex-am", func() (Effect, error) { return NewComplexAM(200, testRate) }, true},
		{"complex-am order 3", func() (Effect, error) {
			return NewComplexAM(300, testRate, WithComplexAMOrder(3))
		}, true},
		{"vibrato", func() (Effect, error) {
			return NewVibrato(2, testRate, WithVibratoDelay(0.05), WithVibratoVary(0.01))
		}, true},
		{"vibrato hermite", func() (Effect, error) {
			return NewVibrato(5, testRate, WithVibratoDelay(0.05), WithVibratoVary(0.02),
				WithVibratoInterpolation(interp.ModeHermite))
		}, true},
		{"echo", func() (Effect, error) { return NewEcho(200, testRate, WithEchoDelay(0.05)) }, true},
		{"echo quantized", func() (Effect, error) {
			return NewEcho(200, testRate, WithEchoDelay(0.05), WithEchoQuantize(true))
		}, true},
		{"pingpong", func() (Effect, error) { return NewPingPong(200, testRate, WithPingPongDelay(0.03)) }, true},
		{"drunk", func() (Effect, error) { return NewDrunk(200, testRate, WithDrunkDelay(0.04)) }, true},
		{"lpf", func() (Effect, error) { return NewLPF(800, testRate) }, true},
		{"hpf", func() (Effect, error) { return NewHPF(800, testRate) }, true},
		{"bpf", func() (Effect, error) { return NewBPF(300, 1200, testRate) }, true},
		{"butterworth order 2 highpass", func() (Effect, error) {
			return NewButterworth([]float64{1000}, testRate, WithButterworthOrder(2), WithButterworthType(design.Highpass))
		}, true},
		{"alien", func() (Effect, error) { return NewAlien(200, testRate, WithAlienDelay(0.02), WithAlienGain(0.5)) }, false},
		{"autobots", func() (Effect, error) { return NewAutobots(200, testRate) }, false},
	}
}

func mustMake(t *testing.T, f factory) Effect {
	t.Helper()

	e, err := f.make()
	if err != nil {
		t.Fatalf("%s: construct: %v", f.name, err)
	}

	return e
}

func testInput(n int) []float64 {
	// Integer-valued PCM-like samples exercise the quantizing echo too.
	in := testutil.DeterministicNoise(99, 20000, n)
	for i := range in {
		in[i] = float64(int(in[i]))
	}
	return in
}

func TestBlockInvariance(t *testing.T) {
	in := testInput(3000)

	for _, f := range factories() {
		if !f.streaming {
			continue
		}

		t.Run(f.name, func(t *testing.T) {
			whole := Compute(mustMake(t, f), in)

			for _, sizes := range [][]int{{1}, {7, 300}, {1024}, {1500, 1500}} {
				e := mustMake(t, f)
				got := make([]float64, len(in))
				for _, blk := range testutil.Blocks(len(in), sizes...) {
					e.Process(got[blk.Start:blk.End], in[blk.Start:blk.End])
				}
				testutil.RequireSliceNearlyEqual(t, got, whole, 1e-9)
			}
		})
	}
}

func TestProcessInPlaceMatchesProcess(t *testing.T) {
	in := testInput(700)

	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			want := Compute(mustMake(t, f), in)

			got := append([]float64(nil), in...)
			mustMake(t, f).ProcessInPlace(got)

			testutil.RequireSliceNearlyEqual(t, got, want, 0)
		})
	}
}

func TestResetIdempotence(t *testing.T) {
	in := testInput(1200)

	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			want := Compute(mustMake(t, f), in)

			fresh := mustMake(t, f)
			fresh.Reset()
			testutil.RequireSliceNearlyEqual(t, Compute(fresh, in), want, 0)

			used := mustMake(t, f)
			Compute(used, testInput(517))
			used.Reset()
			testutil.RequireSliceNearlyEqual(t, Compute(used, in), want, 0)

			if d, ok := used.(Diagnostics); ok {
				used.Reset()
				if d.Counter() != 0 {
					t.Fatalf("counter after Reset = %d", d.Counter())
				}
			}
		})
	}
}

func TestCounterTracksSamples(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			e := mustMake(t, f)
			d, ok := e.(Diagnostics)
			if !ok {
				t.Fatalf("%T does not expose diagnostics", e)
			}

			e.Process(make([]float64, 100), make([]float64, 100))
			e.ProcessInPlace(make([]float64, 23))
			e.Process(nil, nil)

			if got := d.Counter(); got != 123 {
				t.Fatalf("Counter = %d, want 123", got)
			}
			if got := d.SampleRate(); got != testRate {
				t.Fatalf("SampleRate = %d, want %d", got, testRate)
			}
		})
	}
}

func TestClampingAtNyquist(t *testing.T) {
	constructors := []struct {
		name string
		make func(f float64) (Effect, error)
	}{
		{"none", func(f float64) (Effect, error) { return NewNoEffect(f, testRate) }},
		{"am", func(f float64) (Effect, error) { return NewAM(f, testRate) }},
		{"complex-am", func(f float64) (Effect, error) { return NewComplexAM(f, testRate) }},
		{"vibrato", func(f float64) (Effect, error) { return NewVibrato(f, testRate) }},
		{"echo", func(f float64) (Effect, error) { return NewEcho(f, testRate) }},
		{"pingpong", func(f float64) (Effect, error) { return NewPingPong(f, testRate) }},
		{"alien", func(f float64) (Effect, error) { return NewAlien(f, testRate) }},
		{"drunk", func(f float64) (Effect, error) { return NewDrunk(f, testRate) }},
		{"autobots", func(f float64) (Effect, error) { return NewAutobots(f, testRate) }},
		{"lpf", func(f float64) (Effect, error) { return NewLPF(f, testRate) }},
		{"hpf", func(f float64) (Effect, error) { return NewHPF(f, testRate) }},
	}

	for _, c := range constructors {
		for _, hz := range []float64{testRate / 2, 5000, 1e9} {
			e, err := c.make(hz)
			if err != nil {
				t.Fatalf("%s at %g Hz: %v", c.name, hz, err)
			}

			d := e.(Diagnostics)
			if got := d.NormalizedFrequencies()[0]; got != MaxNormalizedFrequency {
				t.Fatalf("%s at %g Hz: normalized = %v, want %v", c.name, hz, got, MaxNormalizedFrequency)
			}

			clamped := d.Clamped()
			if len(clamped) != 1 || clamped[0].Requested != hz || clamped[0].Normalized < 1 {
				t.Fatalf("%s at %g Hz: clamped = %+v", c.name, hz, clamped)
			}
		}

		e, err := c.make(1000)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got := e.(Diagnostics).NormalizedFrequencies()[0]; got != 0.25 {
			t.Fatalf("%s: normalized 1000 Hz = %v, want 0.25", c.name, got)
		}
		if ClampedOf(e) != nil {
			t.Fatalf("%s: unexpected clamp %v", c.name, ClampedOf(e))
		}
	}
}

func TestClampingSecondBandEdge(t *testing.T) {
	e, err := NewBPF(300, 4500, testRate)
	if err != nil {
		t.Fatalf("NewBPF: %v", err)
	}

	freqs := e.NormalizedFrequencies()
	if freqs[0] != 0.075 || freqs[1] != MaxNormalizedFrequency {
		t.Fatalf("normalized = %v", freqs)
	}

	clamped := e.Clamped()
	if len(clamped) != 1 || clamped[0].Index != 1 {
		t.Fatalf("clamped = %+v", clamped)
	}
	if clamped[0].String() == "" {
		t.Fatal("empty diagnostic text")
	}
}

func TestInvalidConstruction(t *testing.T) {
	tests := []struct {
		name string
		make func() (Effect, error)
	}{
		{"zero rate", func() (Effect, error) { return NewAM(200, 0) }},
		{"negative frequency", func() (Effect, error) { return NewAM(-1, testRate) }},
		{"nan frequency", func() (Effect, error) { return NewAM(math.NaN(), testRate) }},
		{"infinite frequency", func() (Effect, error) { return NewComplexAM(math.Inf(1), testRate) }},
		{"nan vibrato delay", func() (Effect, error) { return NewVibrato(2, testRate, WithVibratoDelay(math.NaN())) }},
		{"infinite vibrato vary", func() (Effect, error) {
			return NewVibrato(2, testRate, WithVibratoVary(math.Inf(1)))
		}},
		{"nan echo delay", func() (Effect, error) { return NewEcho(200, testRate, WithEchoDelay(math.NaN())) }},
		{"infinite ripple", func() (Effect, error) { return NewComplexAM(200, testRate, WithComplexAMRipple(math.Inf(1))) }},
		{"vary exceeds delay", func() (Effect, error) {
			return NewVibrato(2, testRate, WithVibratoDelay(0.01), WithVibratoVary(0.02))
		}},
		{"empty vibrato line", func() (Effect, error) {
			return NewVibrato(2, testRate, WithVibratoDelay(0), WithVibratoVary(0))
		}},
		{"bad interpolation", func() (Effect, error) {
			return NewVibrato(2, testRate, WithVibratoInterpolation(interp.Mode(9)))
		}},
		{"complex-am order", func() (Effect, error) { return NewComplexAM(200, testRate, WithComplexAMOrder(11)) }},
		{"complex-am edge", func() (Effect, error) { return NewComplexAM(200, testRate, WithComplexAMEdge(1)) }},
		{"complex-am stopband below ripple", func() (Effect, error) {
			return NewComplexAM(200, testRate, WithComplexAMRipple(3), WithComplexAMStopband(1))
		}},
		{"echo too short", func() (Effect, error) { return NewEcho(200, testRate, WithEchoDelay(1e-5)) }},
		{"pingpong negative delay", func() (Effect, error) { return NewPingPong(200, testRate, WithPingPongDelay(-1)) }},
		{"alien zero delay", func() (Effect, error) { return NewAlien(200, testRate, WithAlienDelay(0)) }},
		{"drunk zero delay", func() (Effect, error) { return NewDrunk(200, testRate, WithDrunkDelay(0)) }},
		{"autobots reversed", func() (Effect, error) { return NewAutobots(200, testRate, WithAutobotsBand(0.3, 0.2)) }},
		{"autobots edge", func() (Effect, error) { return NewAutobots(200, testRate, WithAutobotsBand(0, 0.2)) }},
		{"butterworth order", func() (Effect, error) { return NewLPF(200, testRate, WithButterworthOrder(0)) }},
		{"butterworth zero cutoff", func() (Effect, error) { return NewLPF(0, testRate) }},
		{"butterworth cutoff count", func() (Effect, error) {
			return NewButterworth([]float64{100, 200}, testRate)
		}},
		{"bpf clamped together", func() (Effect, error) { return NewBPF(5000, 6000, testRate) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tc.make()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
			if e != nil && !isNilEffect(e) {
				t.Fatalf("got instance %T alongside error", e)
			}
		})
	}
}

// isNilEffect reports whether e wraps a nil pointer, which is what the
// typed constructors return on error.
func isNilEffect(e Effect) bool {
	switch v := e.(type) {
	case *AM:
		return v == nil
	case *ComplexAM:
		return v == nil
	case *Vibrato:
		return v == nil
	case *Echo:
		return v == nil
	case *PingPong:
		return v == nil
	case *Alien:
		return v == nil
	case *Drunk:
		return v == nil
	case *Autobots:
		return v == nil
	case *Butterworth:
		return v == nil
	default:
		return false
	}
}
