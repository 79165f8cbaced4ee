//go:build jack

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/GeoffreyPlitt/debuggo"
	"github.com/xthexder/go-jack"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/host"
)

var jackDebug = debuggo.Debug("dsp256:jack")

// jackInsert is a stereo in/out JACK client around one processor.
type jackInsert struct {
	client *jack.Client
	p      *host.Processor
	in     [2]*jack.Port
	out    [2]*jack.Port

	left, right []float64
}

func runLive(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("live", flag.ContinueOnError)
	name := fs.String("name", "dsp256", "JACK client name")
	var ef effectFlags
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rack, err := host.NewDefaultRack()
	if err != nil {
		return err
	}
	p, _, err := ef.attach(rack)
	if err != nil {
		return err
	}
	defer p.ReleaseResources()

	ji, err := newJackInsert(*name, p)
	if err != nil {
		return err
	}
	// Closing the client also deactivates it.
	defer func() {
		if code := ji.client.Close(); code != 0 {
			jackDebug("close: %v", jack.StrError(code))
		}
	}()

	if code := ji.client.Activate(); code != 0 {
		return fmt.Errorf("live: activate: %w", jack.StrError(code))
	}

	jackDebug("running as %q", *name)

	tty := isTerminal(stdout)
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if tty {
				fmt.Fprintln(stdout)
			}
			return nil
		case <-ticker.C:
			if tty {
				fmt.Fprintf(stdout, "\r\033[K%s", statusLine(p))
			}
		}
	}
}

func newJackInsert(name string, p *host.Processor) (*jackInsert, error) {
	client, status := jack.ClientOpen(name, jack.NoStartServer)
	if status != 0 || client == nil {
		return nil, fmt.Errorf("live: open JACK client: %w", jack.StrError(status))
	}

	rate := float64(client.GetSampleRate())
	block := int(client.GetBufferSize())
	if err := p.Prepare(core.WithSampleRate(rate), core.WithBlockSize(block)); err != nil {
		client.Close()
		return nil, err
	}

	ji := &jackInsert{
		client: client,
		p:      p,
		left:   make([]float64, block),
		right:  make([]float64, block),
	}

	for ch, side := range []string{"left", "right"} {
		ji.in[ch] = client.PortRegister("in_"+side, jack.DEFAULT_AUDIO_TYPE, jack.PortIsInput, 0)
		ji.out[ch] = client.PortRegister("out_"+side, jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput, 0)
		if ji.in[ch] == nil || ji.out[ch] == nil {
			client.Close()
			return nil, fmt.Errorf("live: register %s ports", side)
		}
	}

	if code := client.SetProcessCallback(ji.process); code != 0 {
		client.Close()
		return nil, fmt.Errorf("live: set process callback: %w", jack.StrError(code))
	}

	jackDebug("client %q at %.0f Hz, %d frames", name, rate, block)

	return ji, nil
}

func (ji *jackInsert) process(nframes uint32) int {
	n := int(nframes)
	ji.left = core.EnsureLen(ji.left, n)
	ji.right = core.EnsureLen(ji.right, n)
	left, right := ji.left, ji.right

	inL := ji.in[0].GetBuffer(nframes)
	inR := ji.in[1].GetBuffer(nframes)
	for i := range n {
		left[i] = float64(inL[i])
		right[i] = float64(inR[i])
	}

	if err := ji.p.ProcessBlock(left, right); err != nil {
		return 1
	}

	outL := ji.out[0].GetBuffer(nframes)
	outR := ji.out[1].GetBuffer(nframes)
	for i := range n {
		outL[i] = jack.AudioSample(left[i])
		outR[i] = jack.AudioSample(right[i])
	}

	return 0
}
