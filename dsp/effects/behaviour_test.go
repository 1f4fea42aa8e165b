package effects

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/iir"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestNoEffectPassThrough(t *testing.T) {
	e, err := NewNoEffect(200, testRate)
	if err != nil {
		t.Fatalf("NewNoEffect: %v", err)
	}

	for _, in := range [][]float64{nil, {0}, {-32768, 32767, 1.5}, testInput(1024)} {
		testutil.RequireSliceNearlyEqual(t, Compute(e, in), in, 0)
	}
}

func TestAMMatchesReference(t *testing.T) {
	const x = 0.75

	e, err := NewAM(200, testRate)
	if err != nil {
		t.Fatalf("NewAM: %v", err)
	}

	f := e.Frequency()
	if f != 0.05 {
		t.Fatalf("Frequency = %v, want 0.05", f)
	}

	got := make([]float64, 1000)
	in := testutil.DC(x, 1000)
	for _, blk := range testutil.Blocks(len(in), 1, 64, 333) {
		e.Process(got[blk.Start:blk.End], in[blk.Start:blk.End])
	}

	for n := range got {
		want := x * math.Cos(2*math.Pi*f*float64(n))
		if got[n] != want {
			t.Fatalf("n=%d: got %v, want %v", n, got[n], want)
		}
	}
}

func TestEchoImpulse(t *testing.T) {
	const (
		delaySeconds = 0.01
		gain         = 0.4
	)

	e, err := NewEcho(200, testRate, WithEchoDelay(delaySeconds), WithEchoGain(gain))
	if err != nil {
		t.Fatalf("NewEcho: %v", err)
	}

	n := e.DelaySamples()
	if n != 80 {
		t.Fatalf("DelaySamples = %d, want 80", n)
	}

	out := Compute(e, testutil.Impulse(2*n-1, 0))
	for i, v := range out {
		want := 0.0
		switch i {
		case 0:
			want = 1
		case n:
			want = gain
		}
		if v != want {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestEchoQuantizeTruncates(t *testing.T) {
	e, err := NewEcho(200, testRate, WithEchoDelay(0.001), WithEchoGain(0.5), WithEchoQuantize(true))
	if err != nil {
		t.Fatalf("NewEcho: %v", err)
	}

	in := make([]float64, 12)
	copy(in, []float64{3, 5, -3, 2.7})

	// Echoes of 1.5, 2.5, -1.5 and 1.35 all truncate toward zero.
	want := []float64{3, 5, -3, 2, 0, 0, 0, 0, 1, 2, -1, 1}
	testutil.RequireSliceNearlyEqual(t, Compute(e, in), want, 0)
}

func TestVibratoBoundary(t *testing.T) {
	if _, err := NewVibrato(2, testRate, WithVibratoDelay(0.02), WithVibratoVary(0.02)); err != nil {
		t.Fatalf("vary == delay: %v", err)
	}

	e, err := NewVibrato(2, testRate)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if tw, ww := e.DelaySamples(); tw != 4000 || ww != 160 {
		t.Fatalf("DelaySamples = %d, %d, want 4000, 160", tw, ww)
	}
}

func TestVibratoWithoutSwingIsPureDelay(t *testing.T) {
	e, err := NewVibrato(3, testRate, WithVibratoDelay(0.01), WithVibratoVary(0))
	if err != nil {
		t.Fatalf("NewVibrato: %v", err)
	}

	in := testutil.Ramp(300)
	in[0] = -1
	out := Compute(e, in)

	for i, v := range out {
		want := 0.0
		if i >= 80 {
			want = in[i-80]
		}
		if v != want {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestVibratoFollowsModulatedDelay(t *testing.T) {
	const (
		T = 40
		W = 8
	)

	e, err := NewVibrato(50, testRate, WithVibratoDelay(float64(T)/testRate), WithVibratoVary(float64(W)/testRate))
	if err != nil {
		t.Fatalf("NewVibrato: %v", err)
	}

	// A ramp delayed by a fractional amount reads back exactly under
	// linear interpolation once the line is full.
	in := testutil.Ramp(2000)
	out := Compute(e, in)
	f := e.NormalizedFrequencies()[0]

	for n := T + W; n < len(in); n++ {
		tau := T + W*math.Sin(2*math.Pi*f*float64(n))
		want := float64(n) - tau
		if math.Abs(out[n]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", n, out[n], want)
		}
	}
}

func TestPingPongImpulse(t *testing.T) {
	e, err := NewPingPong(200, testRate, WithPingPongDelay(0.001))
	if err != nil {
		t.Fatalf("NewPingPong: %v", err)
	}
	if e.DelaySamples() != 8 {
		t.Fatalf("DelaySamples = %d, want 8", e.DelaySamples())
	}

	in := testutil.Impulse(40, 0)
	left := make([]float64, len(in))
	right := make([]float64, len(in))
	e.ProcessStereo(left, right, in)

	want := map[int]float64{0: 1, 8: 1, 16: 0.7, 24: 0.49, 32: 0.343}
	for i, v := range left {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Fatalf("left[%d] = %v, want %v", i, v, want[i])
		}
	}
	testutil.RequireSliceNearlyEqual(t, right, left, 1e-12)

	mono, err := NewPingPong(200, testRate, WithPingPongDelay(0.001))
	if err != nil {
		t.Fatalf("NewPingPong: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, Compute(mono, in), left, 0)
}

func TestPingPongAsymmetricChannels(t *testing.T) {
	e, err := NewPingPong(200, testRate,
		WithPingPongDelay(0.001),
		WithPingPongInput(1, 0),
		WithPingPongFeedback(1, 1),
		WithPingPongOutput(1, 1),
	)
	if err != nil {
		t.Fatalf("NewPingPong: %v", err)
	}

	in := testutil.Impulse(20, 0)
	left := make([]float64, len(in))
	right := make([]float64, len(in))
	e.ProcessStereo(left, right, in)

	// Only line 1 is fed; it bounces into line 2 after one delay.
	if left[0] != 1 || right[0] != 0 {
		t.Fatalf("n=0: %v %v", left[0], right[0])
	}
	if left[8] != 1 || right[8] != 0 {
		t.Fatalf("n=8: %v %v", left[8], right[8])
	}
	if left[16] != 0 || right[16] != 1 {
		t.Fatalf("n=16: %v %v", left[16], right[16])
	}
}

func TestAlienClearsEveryBlock(t *testing.T) {
	e, err := NewAlien(200, testRate, WithAlienDelay(0.002), WithAlienGain(0.5))
	if err != nil {
		t.Fatalf("NewAlien: %v", err)
	}

	in := testInput(64)
	first := Compute(e, in)
	second := Compute(e, in)
	testutil.RequireSliceNearlyEqual(t, second, first, 0)

	// Direct evaluation of the recurrence from an empty line.
	const n = 16
	buf := make([]float64, n)
	for i, x := range in {
		y := x*math.Cos(2*math.Pi*0.6*float64(i)) + 0.5*buf[i%n]
		buf[i%n] = y
		if math.Abs(first[i]-y) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, first[i], y)
		}
	}
}

func TestDrunkMatchesReference(t *testing.T) {
	e, err := NewDrunk(200, testRate, WithDrunkDelay(0.001))
	if err != nil {
		t.Fatalf("NewDrunk: %v", err)
	}

	in := testInput(100)
	got := Compute(e, in)

	const n = 8
	for i, x := range in {
		delayed := 0.0
		if i >= n {
			delayed = in[i-n]
		}
		want := x*math.Cos(float64(i)) + x*math.Sin(float64(i)) + delayed
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestAutobotsIsBlockwiseZeroPhase(t *testing.T) {
	e, err := NewAutobots(200, testRate, WithAutobotsBand(0.15, 0.3))
	if err != nil {
		t.Fatalf("NewAutobots: %v", err)
	}

	if lo, hi := e.Band(); lo != 0.15 || hi != 0.3 {
		t.Fatalf("Band = %v, %v", lo, hi)
	}

	tf, err := design.Butterworth(4, design.Bandpass, 0.15, 0.3)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	for _, n := range []int{1, 10, 1024} {
		zp, err := iir.NewZeroPhase(tf.B, tf.A)
		if err != nil {
			t.Fatalf("NewZeroPhase: %v", err)
		}

		in := testInput(n)
		want := make([]float64, n)
		zp.Process(want, in)
		testutil.RequireSliceNearlyEqual(t, Compute(e, in), want, 1e-9)
	}
}

func TestButterworthStateLength(t *testing.T) {
	tests := []struct {
		name  string
		make  func() (*Butterworth, error)
		state int
	}{
		{"lpf", func() (*Butterworth, error) { return NewLPF(500, testRate) }, 5},
		{"hpf order 3", func() (*Butterworth, error) { return NewHPF(500, testRate, WithButterworthOrder(3)) }, 3},
		{"bpf", func() (*Butterworth, error) { return NewBPF(300, 900, testRate) }, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tc.make()
			if err != nil {
				t.Fatalf("construct: %v", err)
			}

			if got := len(e.State()); got != tc.state {
				t.Fatalf("state length = %d, want %d", got, tc.state)
			}

			b, a := e.Coefficients()
			if len(e.State()) != max(len(b), len(a))-1 {
				t.Fatalf("state length does not match coefficients")
			}

			Compute(e, testInput(50))
			before, _ := e.Coefficients()
			e.Reset()
			after, _ := e.Coefficients()
			testutil.RequireSliceNearlyEqual(t, after, before, 0)
			testutil.RequireSliceNearlyEqual(t, e.State(), make([]float64, tc.state), 0)
		})
	}
}

func TestLPFPassesDC(t *testing.T) {
	e, err := NewLPF(400, testRate)
	if err != nil {
		t.Fatalf("NewLPF: %v", err)
	}

	out := Compute(e, testutil.DC(1000, 2000))
	if math.Abs(out[len(out)-1]-1000) > 1e-6 {
		t.Fatalf("settled output = %v, want 1000", out[len(out)-1])
	}
}

func TestComplexAMShiftsUp(t *testing.T) {
	e, err := NewComplexAM(200, testRate)
	if err != nil {
		t.Fatalf("NewComplexAM: %v", err)
	}
	if e.Order() != 6 || len(e.State()) != 6 {
		t.Fatalf("order %d, state length %d, want 6", e.Order(), len(e.State()))
	}

	in := testutil.DeterministicSine(1000, testRate, 1, 3000)
	out := Compute(e, in)[1000:]

	amp := func(hz float64) float64 {
		var acc complex128
		for i, v := range out {
			acc += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*hz*float64(i+1000)/testRate))
		}
		return 2 * cmplx.Abs(acc) / float64(len(out))
	}

	// The frequency is normalized to Nyquist, so the shift in Hz is 2*200.
	if up := amp(1400); up < 0.48 || up > 0.51 {
		t.Fatalf("1400 Hz amplitude %v, want ~0.5", up)
	}
	for _, hz := range []float64{600, 1000, 1200} {
		if a := amp(hz); a > 0.01 {
			t.Fatalf("%g Hz amplitude %v, want < 0.01", hz, a)
		}
	}
}
