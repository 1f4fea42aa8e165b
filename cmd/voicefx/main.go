// Command voicefx runs a voice effect over a WAV file block by block, the
// way a capture/playback loop would feed it.
//
// Usage:
//
//	voicefx -in voice.wav -out robot.wav -effect autobots
//	voicefx -in voice.wav -out shifted.wav -effect complex-am -params "frequency=150"
//	voicefx -in voice.wav -out mix.wav -chain "echo: delay=0.1 | am: frequency=300"
//	voicefx -in sine:440 -out ring.wav -effect am -params "frequency=30"
//	voicefx -in noise -seed 7 -out alien.wav -effect alien
//	voicefx -list
//
// Flags that are not given fall back to VOICEFX_EFFECT, VOICEFX_PARAMS,
// VOICEFX_BLOCK_SIZE and VOICEFX_GAIN, optionally loaded from a .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	testsignal "github.com/cwbudde/algo-voicefx/dsp/signal"
	"github.com/cwbudde/algo-voicefx/dsp/stream"
	"github.com/cwbudde/algo-voicefx/internal/wavio"
	"github.com/cwbudde/algo-voicefx/stats/level"
)

func main() {
	ctx := logger.WithContext(context.Background())

	if err := doMain(ctx, os.Args[1:]); err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}
}

func doMain(ctx context.Context, args []string) error {
	cfg, err := parseConfig(args, os.Stderr)
	if err != nil {
		return errors.Wrapf(err, "parse config")
	}

	reg := effectchain.DefaultRegistry()

	if cfg.list {
		return printList(os.Stdout, reg)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case s := <-sc:
			logger.Tf(ctx, "Got signal %v", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	return process(ctx, cfg, reg)
}

func process(ctx context.Context, cfg *config, reg *effectchain.Registry) error {
	src, rate, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	logger.Tf(ctx, "open %v ok, rate=%v", cfg.in, rate)

	fx, label, err := buildEffect(ctx, cfg, reg, rate)
	if err != nil {
		return err
	}

	session, err := stream.NewSession(fx,
		core.WithSampleRate(rate),
		core.WithBlockSize(cfg.block),
	)
	if err != nil {
		return errors.Wrapf(err, "new session")
	}

	if err := session.SetGain(cfg.gain); err != nil {
		return errors.Wrapf(err, "set gain")
	}

	w, err := wavio.Create(cfg.out, rate)
	if err != nil {
		return errors.Wrapf(err, "create %v", cfg.out)
	}

	logger.Tf(ctx, "run %v, block=%v (%.1fms), gain=%v", label, cfg.block,
		session.Config().BlockDuration()*1000, cfg.gain)

	runErr := session.Run(ctx, src, w)
	if err := w.Close(); err != nil && runErr == nil {
		runErr = errors.Wrapf(err, "close %v", cfg.out)
	}

	if runErr != nil {
		return errors.Wrapf(runErr, "process %v", cfg.in)
	}

	st := session.Stats()
	logger.Tf(ctx, "write %v ok, blocks=%v, samples=%v, rms=%.1fdBFS, peak=%.1fdBFS",
		cfg.out, st.Blocks, st.Samples, st.Level.RMSdBFS, st.Level.PeakdBFS)

	if st.Clipped > 0 {
		logger.Wf(ctx, "clipped %v of %v samples, consider -gain below %v", st.Clipped, st.Samples, cfg.gain)
	}

	return nil
}

// openSource opens the WAV input or, for "sine:<hz>" and "noise", a
// generated test signal.
func openSource(cfg *config) (stream.Source, int, func(), error) {
	if wave, hz, err := testsignal.ParseSpec(cfg.in); err == nil {
		if cfg.rate <= 0 || !(cfg.seconds > 0) {
			return nil, 0, nil, errors.Errorf("invalid test signal rate=%v seconds=%v", cfg.rate, cfg.seconds)
		}

		g := testsignal.NewGeneratorWithOptions(
			[]core.ProcessorOption{core.WithSampleRate(cfg.rate)},
			testsignal.WithSeed(cfg.seed),
		)

		src, err := g.Source(wave, hz, 0.5*level.FullScale, int(cfg.seconds*float64(cfg.rate)))
		if err != nil {
			return nil, 0, nil, errors.Wrapf(err, "generate %v", cfg.in)
		}

		return src, cfg.rate, func() {}, nil
	}

	r, err := wavio.Open(cfg.in)
	if err != nil {
		return nil, 0, nil, errors.Wrapf(err, "open %v", cfg.in)
	}

	return r, r.SampleRate(), func() { r.Close() }, nil
}

func buildEffect(ctx context.Context, cfg *config, reg *effectchain.Registry, rate int) (effects.Effect, string, error) {
	ec := effectchain.Context{SampleRate: rate}

	var (
		fx      effects.Effect
		clamped []effects.FrequencyClamped
		label   string
		err     error
	)

	if cfg.chain != "" {
		fx, clamped, err = reg.ParseChain(ec, cfg.chain)
		label = fmt.Sprintf("chain %q", cfg.chain)
	} else {
		fx, clamped, err = reg.Build(cfg.effect, ec, cfg.params)
		label = fmt.Sprintf("effect %v(%v)", cfg.effect, cfg.params)
	}

	if err != nil {
		return nil, "", errors.Wrapf(err, "build %v", label)
	}

	for _, c := range clamped {
		logger.Wf(ctx, "%v at %v Hz", c, rate)
	}

	return fx, label, nil
}

func printList(out io.Writer, reg *effectchain.Registry) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Effect\tDescription\tDefault parameters\n"); err != nil {
		return errors.Wrapf(err, "write header")
	}

	if _, err := fmt.Fprintf(tw, "------\t-----------\t------------------\n"); err != nil {
		return errors.Wrapf(err, "write header")
	}

	for _, name := range reg.Names() {
		e, _ := reg.Lookup(name)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Description, e.DefaultInput); err != nil {
			return errors.Wrapf(err, "write row")
		}
	}

	return tw.Flush()
}
