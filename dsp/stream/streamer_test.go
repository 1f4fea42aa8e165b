package stream

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

func constant(l, r float64, total int) beep.Streamer {
	left := total

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}

		n := min(len(samples), left)
		for i := range n {
			samples[i] = [2]float64{l, r}
		}

		left -= n

		return n, true
	})
}

func TestStreamerMixesToMono(t *testing.T) {
	t.Parallel()

	st := NewStreamer(constant(0.5, 0.1, 8), newNone(t))

	buf := make([][2]float64, 16)

	n, ok := st.Stream(buf)
	if n != 8 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}

	for i := range n {
		if math.Abs(buf[i][0]-0.3) > 1e-12 || buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d = %v, want [0.3 0.3]", i, buf[i])
		}
	}

	if n, ok := st.Stream(buf); n != 0 || ok {
		t.Fatalf("drained Stream() = %d, %v", n, ok)
	}

	if st.Err() != nil {
		t.Fatalf("Err() = %v", st.Err())
	}
}

func TestStreamerAppliesEffectAndClamps(t *testing.T) {
	t.Parallel()

	echo, err := effects.NewEcho(0, 8000, effects.WithEchoDelay(0.0005), effects.WithEchoGain(1))
	if err != nil {
		t.Fatal(err)
	}

	st := NewStreamer(constant(0.8, 0.8, 6), echo)
	buf := make([][2]float64, 3)

	for _, want := range [][]float64{{0.8, 0.8, 0.8}, {0.8, 1, 1}} {
		n, _ := st.Stream(buf)
		if n != 3 {
			t.Fatalf("n = %d", n)
		}

		for i, w := range want {
			if math.Abs(buf[i][0]-w) > 1e-12 {
				t.Fatalf("sample %d = %g, want %g", i, buf[i][0], w)
			}
		}
	}
}
