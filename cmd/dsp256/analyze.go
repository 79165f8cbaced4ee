package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/effects/reverb"
	"github.com/cwbudde/dsp256/dsp/host"
	"github.com/cwbudde/dsp256/internal/audiofile"
	"github.com/cwbudde/dsp256/measure/ir"
	"github.com/cwbudde/dsp256/measure/response"
)

// Bands for the high/low energy ratio, in Hz.
const (
	lowBandLo  = 100
	lowBandHi  = 1000
	highBandLo = 4000
	highBandHi = 10000
)

func runAnalyze(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	rate := fs.Float64("rate", core.DefaultSampleRate, "sample rate in Hz")
	seconds := fs.Float64("seconds", 4, "impulse response length in seconds")
	save := fs.String("save", "", "also write the impulse response to this WAV file")
	var ef effectFlags
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seconds <= 0 {
		return fmt.Errorf("analyze: seconds must be positive, got %v", *seconds)
	}

	// Measure the wet signal; a later -p mix still wins.
	ef.params = append(assignments{{name: "mix", value: 1}}, ef.params...)

	rack, err := host.NewDefaultRack()
	if err != nil {
		return err
	}

	p, hall, err := ef.attach(rack)
	if err != nil {
		return err
	}
	defer p.ReleaseResources()

	if err := p.Prepare(core.WithSampleRate(*rate)); err != nil {
		return err
	}

	clip, err := impulseResponse(ctx, p, *rate, *seconds)
	if err != nil {
		return err
	}

	if *save != "" {
		if err := audiofile.SaveWAV(*save, clip, outputDepth); err != nil {
			return err
		}
	}

	return report(stdout, hall, clip, *rate)
}

// impulseResponse renders a unit impulse through p.
func impulseResponse(ctx context.Context, p *host.Processor, rate, seconds float64) (*audiofile.Clip, error) {
	n := int(seconds * rate)
	impulse := &audiofile.Clip{
		Left:       make([]float64, n),
		Right:      make([]float64, n),
		SampleRate: int(rate),
	}
	impulse.Left[0] = 1
	impulse.Right[0] = 1

	return processClip(ctx, p, impulse, p.Config().BlockSize, 0)
}

func report(w io.Writer, hall *reverb.Hall, clip *audiofile.Clip, rate float64) error {
	an, err := ir.NewAnalyzer(rate)
	if err != nil {
		return err
	}

	m, err := an.Analyze(clip.Left)
	if err != nil && !errors.Is(err, ir.ErrNoDecay) {
		return err
	}

	corr, err := ir.InterauralCorrelation(clip.Left, clip.Right)
	if err != nil {
		return err
	}

	resp, err := response.Analyze(clip.Left, rate)
	if err != nil {
		return err
	}
	ratio := math.NaN()
	if nyquist := rate / 2; nyquist > highBandLo {
		ratio, err = resp.BandRatioDB(lowBandLo, lowBandHi, highBandLo, min(highBandHi, nyquist))
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Display RT60\t%.2f s\n", hall.RT60())
	if m.RT60 > 0 {
		fmt.Fprintf(tw, "Measured RT60\t%.2f s\n", m.RT60)
	} else {
		fmt.Fprintf(tw, "Measured RT60\tn/a (no decay)\n")
	}
	fmt.Fprintf(tw, "EDT\t%.2f s\n", m.EDT)
	fmt.Fprintf(tw, "T20 / T30\t%.2f / %.2f s\n", m.T20, m.T30)
	fmt.Fprintf(tw, "C80\t%.1f dB\n", m.C80)
	fmt.Fprintf(tw, "D50\t%.3f\n", m.D50)
	fmt.Fprintf(tw, "Center time\t%.1f ms\n", 1000*m.CenterTime)
	fmt.Fprintf(tw, "L/R correlation\t%.3f\n", corr)
	if math.IsNaN(ratio) {
		fmt.Fprintf(tw, "High/low energy\tn/a (rate too low)\n")
	} else {
		fmt.Fprintf(tw, "High/low energy\t%.1f dB\n", ratio)
	}

	return tw.Flush()
}
