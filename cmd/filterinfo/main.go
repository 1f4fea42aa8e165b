// Command filterinfo prints the coefficients and magnitude response of the
// filters the voice effects are built from.
//
// Usage:
//
//	filterinfo [flags] <lowpass|highpass|bandpass|elliptic> <hz> [hz2]
//
// Examples:
//
//	filterinfo lowpass 1000
//	filterinfo -order 3 -rate 16000 bandpass 300 3400
//	filterinfo -order 6 elliptic 1800
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/filter/iir"
)

type options struct {
	rate     int
	order    int
	ripple   float64
	stopband float64
	points   int
	rows     int
}

func main() {
	var opt options

	flag.IntVar(&opt.rate, "rate", 8000, "sample rate in Hz")
	flag.IntVar(&opt.order, "order", 5, "filter order")
	flag.Float64Var(&opt.ripple, "ripple", 0.1, "elliptic passband ripple in dB")
	flag.Float64Var(&opt.stopband, "stopband", 60, "elliptic stopband attenuation in dB")
	flag.IntVar(&opt.points, "points", 512, "FFT bins between DC and Nyquist")
	flag.IntVar(&opt.rows, "rows", 16, "response rows to print")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: filterinfo [flags] <lowpass|highpass|bandpass|elliptic> <hz> [hz2]\n\n")
		fmt.Fprintf(os.Stderr, "Prints coefficients and magnitude response of a designed filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	tf, title, err := designFilter(flag.Args(), opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := printInfo(os.Stdout, title, tf, opt); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func designFilter(args []string, opt options) (design.TransferFunction, string, error) {
	if len(args) < 2 {
		return design.TransferFunction{}, "", errors.New("need a filter type and at least one frequency")
	}

	if opt.rate <= 0 {
		return design.TransferFunction{}, "", fmt.Errorf("invalid sample rate %d", opt.rate)
	}

	nyquist := float64(opt.rate) / 2

	edges := make([]float64, 0, len(args)-1)
	for _, s := range args[1:] {
		hz, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return design.TransferFunction{}, "", fmt.Errorf("bad frequency %q: %w", s, err)
		}
		edges = append(edges, hz/nyquist)
	}

	if args[0] == "elliptic" {
		tf, err := design.Elliptic(opt.order, opt.ripple, opt.stopband, edges[0])
		title := fmt.Sprintf("elliptic lowpass order %d, %g dB ripple, %g dB stopband, edge %s Hz",
			opt.order, opt.ripple, opt.stopband, args[1])
		return tf, title, err
	}

	kind, err := design.ParseKind(args[0])
	if err != nil {
		return design.TransferFunction{}, "", err
	}

	tf, err := design.Butterworth(opt.order, kind, edges...)
	title := fmt.Sprintf("butterworth %s order %d at %v Hz", kind, opt.order, args[1:])

	return tf, title, err
}

func printInfo(out io.Writer, title string, tf design.TransferFunction, opt options) error {
	resp, err := iir.FrequencyResponse(tf.B, tf.A, opt.points)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", title)
	fmt.Fprintf(out, "b = %.6g\n", tf.B)
	fmt.Fprintf(out, "a = %.6g\n\n", tf.A)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude [dB]\tPhase [rad]\t\n")
	fmt.Fprintf(tw, "--------------\t--------------\t-----------\t\n")

	nyquist := float64(opt.rate) / 2
	db := resp.MagnitudeDB()
	phase := resp.Phase()

	rows := max(1, min(opt.rows, len(db)))
	step := len(db) / rows

	for i := 0; i < len(db); i += step {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.3f\t\n", resp.Frequencies[i]*nyquist, db[i], phase[i])
	}

	return tw.Flush()
}
