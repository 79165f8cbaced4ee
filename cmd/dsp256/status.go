package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/host"
)

const (
	meterFloorDB   = -60
	statusInterval = 33 * time.Millisecond
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// statusLine is the one-line meter shown while audio runs.
func statusLine(p *host.Processor) string {
	in, out := p.Levels()
	return fmt.Sprintf("%s  in %6.1f dB  out %6.1f dB",
		p.Status(), core.GainToDB(in, meterFloorDB), core.GainToDB(out, meterFloorDB))
}
