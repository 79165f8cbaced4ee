// Command dsp256 renders, measures and plays audio through the fixed-point
// hall reverb.
//
// Usage:
//
//	dsp256 <command> [flags]
//
// Commands:
//
//	presets   list the factory presets with their display values
//	params    list the parameters
//	render    process audio files offline into 24-bit WAV
//	analyze   render an impulse and measure the decay
//	play      process a file and play it on the default output
//	live      run as a JACK stereo insert (built with -tags jack)
//
// Examples:
//
//	dsp256 presets
//	dsp256 render -in drums.wav,vox.flac -out-dir out -preset "Large Hall"
//	dsp256 analyze -preset "Large Hall" -rate 48000 -seconds 6
//	dsp256 play -in vox.wav -preset "Plate Verb" -p mix=0.3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout io.Writer) error
}

var commands = []command{
	{"presets", "list the factory presets with their display values", runPresets},
	{"params", "list the parameters", runParams},
	{"render", "process audio files offline into 24-bit WAV", runRender},
	{"analyze", "render an impulse and measure the decay", runAnalyze},
	{"play", "process a file and play it on the default output", runPlay},
	{"live", "run as a JACK stereo insert", runLive},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := dispatch(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, name string, args []string, stdout io.Writer) error {
	if name == "help" || name == "-h" || name == "--help" {
		usage(stdout)
		return nil
	}

	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, args, stdout)
		}
	}

	usage(os.Stderr)
	return fmt.Errorf("unknown command %q", name)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: dsp256 <command> [flags]\n\n")
	fmt.Fprintf(w, "Fixed-point hall reverb tools.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s  %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun 'dsp256 <command> -h' for the flags of a command.\n")
}
