package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

// DefaultRegistry returns a registry with all built-in voice effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltins(r)

	return r
}

func registerBuiltins(r *Registry) {
	r.MustRegister(Entry{
		Name:         "none",
		Description:  "pass the input through unchanged",
		DefaultInput: "",
		Factory:      factoryNone,
	})
	r.MustRegister(Entry{
		Name:         "am",
		Description:  "ring modulation with a cosine carrier",
		DefaultInput: "frequency=200",
		Factory:      factoryAM,
	})
	r.MustRegister(Entry{
		Name:         "complex-am",
		Description:  "single-sideband frequency shift",
		DefaultInput: "frequency=200, order=6  # order between 1 and 10",
		Factory:      factoryComplexAM,
	})
	r.MustRegister(Entry{
		Name:         "vibrato",
		Description:  "sinusoidally modulated delay",
		DefaultInput: "frequency=2, delay=0.5, vary=0.02, interp='linear'  # linear or hermite",
		Factory:      factoryVibrato,
	})
	r.MustRegister(Entry{
		Name:         "butterworth",
		Description:  "Butterworth filter of selectable type",
		DefaultInput: "frequency=200, order=5, type='lowpass'  # bandpass also needs frequency2",
		Factory:      factoryButterworth,
	})
	r.MustRegister(Entry{
		Name:         "lpf",
		Description:  "Butterworth lowpass",
		DefaultInput: "frequency=200, order=5",
		Factory:      factoryPass(design.Lowpass),
	})
	r.MustRegister(Entry{
		Name:         "hpf",
		Description:  "Butterworth highpass",
		DefaultInput: "frequency=200, order=5",
		Factory:      factoryPass(design.Highpass),
	})
	r.MustRegister(Entry{
		Name:         "bpf",
		Description:  "Butterworth bandpass",
		DefaultInput: "low=200, high=1000, order=5",
		Factory:      factoryBPF,
	})
	r.MustRegister(Entry{
		Name:         "pingpong",
		Description:  "two cross-coupled feedback delays",
		DefaultInput: "a1=1, a2=1, b1=0.7, b2=0.7, c1=1, c2=1, delay=0.2",
		Factory:      factoryPingPong,
	})
	r.MustRegister(Entry{
		Name:         "echo",
		Description:  "single feedforward echo",
		DefaultInput: "delay=0.2, gain=0.5, quantize=0  # quantize=1 truncates the output",
		Factory:      factoryEcho,
	})
	r.MustRegister(Entry{
		Name:         "alien",
		Description:  "echo mixed with a ring-modulated copy",
		DefaultInput: "delay=0.2, gain=1",
		Factory:      factoryAlien,
	})
	r.MustRegister(Entry{
		Name:         "autobots",
		Description:  "zero-phase band-limited robot voice",
		DefaultInput: "frequency=200, low=0.1, high=0.2  # band edges as fractions of Nyquist",
		Factory:      factoryAutobots,
	})
	r.MustRegister(Entry{
		Name:         "drunk",
		Description:  "delayed copy with a wandering phase",
		DefaultInput: "delay=0.2",
		Factory:      factoryDrunk,
	})
}

func factoryNone(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency"); err != nil {
		return nil, err
	}
	return effects.NewNoEffect(p.GetNum("frequency", 0), ctx.SampleRate)
}

func factoryAM(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency"); err != nil {
		return nil, err
	}
	return effects.NewAM(p.GetNum("frequency", 200), ctx.SampleRate)
}

func factoryComplexAM(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "order", "ripple", "stopband", "edge"); err != nil {
		return nil, err
	}

	order, err := p.GetInt("order", 6)
	if err != nil {
		return nil, err
	}

	opts := []effects.ComplexAMOption{effects.WithComplexAMOrder(order)}
	if v, ok := p.Num["ripple"]; ok {
		opts = append(opts, effects.WithComplexAMRipple(v))
	}
	if v, ok := p.Num["stopband"]; ok {
		opts = append(opts, effects.WithComplexAMStopband(v))
	}
	if v, ok := p.Num["edge"]; ok {
		opts = append(opts, effects.WithComplexAMEdge(v))
	}

	return effects.NewComplexAM(p.GetNum("frequency", 200), ctx.SampleRate, opts...)
}

func factoryVibrato(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "delay", "vary", "interp"); err != nil {
		return nil, err
	}

	mode, err := parseInterp(p.GetStr("interp", "linear"))
	if err != nil {
		return nil, err
	}

	return effects.NewVibrato(p.GetNum("frequency", 2), ctx.SampleRate,
		effects.WithVibratoDelay(p.GetNum("delay", 0.5)),
		effects.WithVibratoVary(p.GetNum("vary", 0.02)),
		effects.WithVibratoInterpolation(mode),
	)
}

func parseInterp(s string) (interp.Mode, error) {
	for _, m := range []interp.Mode{interp.ModeLinear, interp.ModeHermite} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: interp must be linear or hermite: %q", effects.ErrInvalidParameter, s)
}

func factoryButterworth(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "frequency2", "order", "type"); err != nil {
		return nil, err
	}

	kind, err := design.ParseKind(p.GetStr("type", "lowpass"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", effects.ErrInvalidParameter, err)
	}

	order, err := p.GetInt("order", 5)
	if err != nil {
		return nil, err
	}

	freqs := []float64{p.GetNum("frequency", 200)}
	if kind == design.Bandpass {
		f2, ok := p.Num["frequency2"]
		if !ok {
			return nil, fmt.Errorf("%w: bandpass needs frequency2", effects.ErrInvalidParameter)
		}
		freqs = append(freqs, f2)
	}

	return effects.NewButterworth(freqs, ctx.SampleRate,
		effects.WithButterworthOrder(order),
		effects.WithButterworthType(kind),
	)
}

func factoryPass(kind design.Kind) Factory {
	return func(ctx Context, p Params) (effects.Effect, error) {
		if err := p.Check("frequency", "order"); err != nil {
			return nil, err
		}

		order, err := p.GetInt("order", 5)
		if err != nil {
			return nil, err
		}

		f := p.GetNum("frequency", 200)
		if kind == design.Highpass {
			return effects.NewHPF(f, ctx.SampleRate, effects.WithButterworthOrder(order))
		}
		return effects.NewLPF(f, ctx.SampleRate, effects.WithButterworthOrder(order))
	}
}

func factoryBPF(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("low", "high", "order"); err != nil {
		return nil, err
	}

	order, err := p.GetInt("order", 5)
	if err != nil {
		return nil, err
	}

	return effects.NewBPF(p.GetNum("low", 200), p.GetNum("high", 1000), ctx.SampleRate,
		effects.WithButterworthOrder(order))
}

func factoryPingPong(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "a1", "a2", "b1", "b2", "c1", "c2", "delay"); err != nil {
		return nil, err
	}

	return effects.NewPingPong(p.GetNum("frequency", 0), ctx.SampleRate,
		effects.WithPingPongInput(p.GetNum("a1", 1), p.GetNum("a2", 1)),
		effects.WithPingPongFeedback(p.GetNum("b1", 0.7), p.GetNum("b2", 0.7)),
		effects.WithPingPongOutput(p.GetNum("c1", 1), p.GetNum("c2", 1)),
		effects.WithPingPongDelay(p.GetNum("delay", 0.2)),
	)
}

func factoryEcho(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "delay", "gain", "quantize"); err != nil {
		return nil, err
	}

	return effects.NewEcho(p.GetNum("frequency", 0), ctx.SampleRate,
		effects.WithEchoDelay(p.GetNum("delay", 0.2)),
		effects.WithEchoGain(p.GetNum("gain", 0.5)),
		effects.WithEchoQuantize(p.GetBool("quantize", false)),
	)
}

func factoryAlien(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "delay", "gain"); err != nil {
		return nil, err
	}

	return effects.NewAlien(p.GetNum("frequency", 0), ctx.SampleRate,
		effects.WithAlienDelay(p.GetNum("delay", 0.2)),
		effects.WithAlienGain(p.GetNum("gain", 1)),
	)
}

func factoryAutobots(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "low", "high"); err != nil {
		return nil, err
	}

	return effects.NewAutobots(p.GetNum("frequency", 200), ctx.SampleRate,
		effects.WithAutobotsBand(p.GetNum("low", 0.1), p.GetNum("high", 0.2)),
	)
}

func factoryDrunk(ctx Context, p Params) (effects.Effect, error) {
	if err := p.Check("frequency", "delay"); err != nil {
		return nil, err
	}

	return effects.NewDrunk(p.GetNum("frequency", 0), ctx.SampleRate,
		effects.WithDrunkDelay(p.GetNum("delay", 0.2)),
	)
}
