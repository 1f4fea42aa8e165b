package stream_test

import (
	"context"
	"fmt"

	"github.com/gopxl/beep/v2"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/stream"
)

func ExampleSession_Run() {
	echo, err := effects.NewEcho(0, 8000, effects.WithEchoDelay(0.0005), effects.WithEchoGain(0.5))
	if err != nil {
		fmt.Println(err)
		return
	}

	s, err := stream.NewSession(echo, core.WithBlockSize(4))
	if err != nil {
		fmt.Println(err)
		return
	}

	sink := &stream.SliceSink{}
	if err := s.Run(context.Background(), stream.NewSliceSource([]int16{1000, 0, 0, 0, 0, 0}), sink); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(sink.Samples, s.Stats().Blocks)
	// Output:
	// [1000 0 0 0 500 0 0 0] 2
}

func ExampleStreamer() {
	echo, err := effects.NewEcho(0, 8000, effects.WithEchoDelay(0.0005), effects.WithEchoGain(0.5))
	if err != nil {
		fmt.Println(err)
		return
	}

	played := false
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if played {
			return 0, false
		}
		played = true

		n := min(len(samples), 6)
		for i := range n {
			samples[i] = [2]float64{}
		}
		samples[0] = [2]float64{0.75, 0.25}

		return n, true
	})

	buf := make([][2]float64, 8)
	n, ok := stream.NewStreamer(src, echo).Stream(buf)
	fmt.Println(n, ok, buf[:n])
	// Output:
	// 6 true [[0.5 0.5] [0 0] [0 0] [0 0] [0.25 0.25] [0 0]]
}
