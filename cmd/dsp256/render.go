package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/host"
	"github.com/cwbudde/dsp256/internal/audiofile"
)

func runRender(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	in := fs.String("in", "", "comma-separated input files (.wav, .flac)")
	outDir := fs.String("out-dir", ".", "directory for the rendered WAV files")
	block := fs.Int("block", core.DefaultBlockSize, "block size in samples")
	tail := fs.Float64("tail", host.TailSeconds, "seconds of silence appended for the tail")
	dither := fs.Bool("dither", true, "add TPDF dither when writing 24-bit output")
	var ef effectFlags
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	inputs := splitList(*in)
	if len(inputs) == 0 {
		return errors.New("render: -in is required")
	}
	if *tail < 0 {
		return fmt.Errorf("render: negative tail %v", *tail)
	}
	outs, err := outputPaths(inputs, *outDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	rack, err := host.NewDefaultRack()
	if err != nil {
		return err
	}

	progress := newProgress(stdout, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range inputs {
		out := outs[i]
		g.Go(func() error {
			var opts []audiofile.SaveOption
			if *dither {
				opts = append(opts, audiofile.WithDither(ditherSeed(path)))
			}
			if err := renderFile(ctx, rack, &ef, path, out, *block, *tail, opts...); err != nil {
				return fmt.Errorf("render %s: %w", path, err)
			}
			progress.done(out)
			return nil
		})
	}

	return g.Wait()
}

func renderFile(ctx context.Context, rack *host.Rack, ef *effectFlags, in, out string, block int, tail float64, opts ...audiofile.SaveOption) error {
	clip, err := audiofile.Load(in)
	if err != nil {
		return err
	}

	p, _, err := ef.attach(rack)
	if err != nil {
		return err
	}
	defer p.ReleaseResources()

	if err := p.Prepare(core.WithSampleRate(float64(clip.SampleRate)), core.WithBlockSize(block)); err != nil {
		return err
	}

	rendered, err := processClip(ctx, p, clip, block, tail)
	if err != nil {
		return err
	}

	return audiofile.SaveWAV(out, rendered, outputDepth, opts...)
}

// ditherSeed derives a per-file seed so repeated renders are identical.
func ditherSeed(path string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(filepath.Base(path)))
	return h.Sum64()
}

// processClip runs clip through p in blocks of block frames and appends
// tail seconds of silence so the decay is kept.
func processClip(ctx context.Context, p *host.Processor, clip *audiofile.Clip, block int, tail float64) (*audiofile.Clip, error) {
	extra := int(tail * float64(clip.SampleRate))
	n := clip.Len() + extra

	out := &audiofile.Clip{
		Left:       make([]float64, n),
		Right:      make([]float64, n),
		SampleRate: clip.SampleRate,
	}
	copy(out.Left, clip.Left)
	copy(out.Right, clip.Right)

	for start := 0; start < n; start += block {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+block, n)
		if err := p.ProcessBlock(out.Left[start:end], out.Right[start:end]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-reverb.wav"
}

// outputPaths maps each input to its file in dir. Inputs that would write
// the same file are rejected before anything is rendered.
func outputPaths(inputs []string, dir string) ([]string, error) {
	outs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, path := range inputs {
		out := filepath.Join(dir, outputName(path))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("render: %s and %s both write %s", prev, path, out)
		}
		seen[out] = path
		outs[i] = out
	}
	return outs, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// progress reports finished files. On a terminal it rewrites one line.
type progress struct {
	w     io.Writer
	tty   bool
	total int
	count atomic.Int32
}

func newProgress(w io.Writer, total int) *progress {
	return &progress{w: w, tty: isTerminal(w), total: total}
}

func (p *progress) done(path string) {
	n := p.count.Add(1)
	if p.tty {
		fmt.Fprintf(p.w, "\r\033[Krendered %d/%d  %s", n, p.total, path)
		if int(n) == p.total {
			fmt.Fprintln(p.w)
		}
		return
	}
	fmt.Fprintf(p.w, "rendered %s\n", path)
}
