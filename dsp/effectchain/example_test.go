package effectchain_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

func ExampleRegistry_Build() {
	reg := effectchain.DefaultRegistry()

	entry, _ := reg.Lookup("echo")
	fmt.Println(entry.DefaultInput)

	fx, _, err := reg.Build("echo", effectchain.Context{SampleRate: 8000}, "delay=0.0005")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(effects.Compute(fx, []float64{1, 0, 0, 0, 0, 0}))
	// Output:
	// delay=0.2, gain=0.5, quantize=0  # quantize=1 truncates the output
	// [1 0 0 0 0.5 0]
}
