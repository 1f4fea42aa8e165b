package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"
)

const defaultEnvFile = ".env"

// Environment variables consulted for flags that were not given.
const (
	envEffect    = "VOICEFX_EFFECT"
	envParams    = "VOICEFX_PARAMS"
	envBlockSize = "VOICEFX_BLOCK_SIZE"
	envGain      = "VOICEFX_GAIN"
)

type config struct {
	in      string
	out     string
	effect  string
	params  string
	chain   string
	block   int
	gain    float64
	list    bool
	envFile string
	rate    int
	seconds float64
	seed    int64
}

func newFlagSet(cfg *config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("voicefx", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.in, "in", "", "input WAV file (16-bit PCM), or a test signal: sine:<hz> or noise")
	fs.StringVar(&cfg.out, "out", "", "output WAV file")
	fs.StringVar(&cfg.effect, "effect", "none", "effect name, see -list ($"+envEffect+")")
	fs.StringVar(&cfg.params, "params", "", "parameters, e.g. \"frequency=300, gain=0.5\" ($"+envParams+")")
	fs.StringVar(&cfg.chain, "chain", "", "serial chain, e.g. \"echo: delay=0.1 | am: frequency=300\"; overrides -effect")
	fs.IntVar(&cfg.block, "block", 1024, "block size in samples ($"+envBlockSize+")")
	fs.Float64Var(&cfg.gain, "gain", 1, "linear output gain ($"+envGain+")")
	fs.BoolVar(&cfg.list, "list", false, "list available effects and their default parameters")
	fs.IntVar(&cfg.rate, "rate", 8000, "sample rate of a generated test signal")
	fs.Float64Var(&cfg.seconds, "seconds", 2, "duration of a generated test signal")
	fs.Int64Var(&cfg.seed, "seed", 1, "random seed of a generated noise signal")
	fs.StringVar(&cfg.envFile, "env", defaultEnvFile, "optional .env file with "+envEffect+" and friends")

	return fs
}

// parseConfig parses args, loads the .env file and fills every flag that
// was not given explicitly from the environment.
func parseConfig(args []string, output io.Writer) (*config, error) {
	cfg := &config{}

	fs := newFlagSet(cfg, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := loadEnvFile(cfg.envFile, set["env"]); err != nil {
		return nil, err
	}

	if v := os.Getenv(envEffect); v != "" && !set["effect"] {
		cfg.effect = v
	}

	if v := os.Getenv(envParams); v != "" && !set["params"] {
		cfg.params = v
	}

	if v := os.Getenv(envBlockSize); v != "" && !set["block"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %v=%v", envBlockSize, v)
		}
		cfg.block = n
	}

	if v := os.Getenv(envGain); v != "" && !set["gain"] {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %v=%v", envGain, v)
		}
		cfg.gain = g
	}

	if cfg.block <= 0 {
		return nil, errors.Errorf("block size must be > 0, got %v", cfg.block)
	}

	if !cfg.list && (cfg.in == "" || cfg.out == "") {
		return nil, errors.New("both -in and -out are required")
	}

	return cfg, nil
}

// loadEnvFile loads path into the environment. A missing default file is
// not an error; a missing explicit one is.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.Wrapf(err, "stat %v", path)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %v", path)
	}

	return nil
}
