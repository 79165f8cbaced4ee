//go:build !headless

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/host"
	"github.com/cwbudde/dsp256/internal/audiofile"
)

func runPlay(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	in := fs.String("in", "", "input file (.wav, .flac)")
	block := fs.Int("block", core.DefaultBlockSize, "block size in samples")
	var ef effectFlags
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("play: -in is required")
	}

	clip, err := audiofile.Load(*in)
	if err != nil {
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

	if err := p.Prepare(core.WithSampleRate(float64(clip.SampleRate)), core.WithBlockSize(*block)); err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   clip.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("play: open audio output: %w", err)
	}
	<-ready

	src := newStream(p, clip, *block, host.TailSeconds)
	player := otoCtx.NewPlayer(src)
	defer player.Close()
	player.Play()

	tty := isTerminal(stdout)
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			player.Pause()
			if tty {
				fmt.Fprintln(stdout)
			}
			return nil
		case <-ticker.C:
			if tty {
				fmt.Fprintf(stdout, "\r\033[K%s", statusLine(p))
			}
			if !player.IsPlaying() {
				if tty {
					fmt.Fprintln(stdout)
				}
				return player.Err()
			}
		}
	}
}
