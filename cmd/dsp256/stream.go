package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/dsp256/dsp/core"
	"github.com/cwbudde/dsp256/dsp/host"
	"github.com/cwbudde/dsp256/internal/audiofile"
)

const bytesPerFrame = 8 // stereo float32

// stream renders a clip through a processor on demand as interleaved
// little-endian float32 stereo, followed by tail frames of silence.
type stream struct {
	p     *host.Processor
	clip  *audiofile.Clip
	block int

	pos   int
	total int

	left, right []float64
	scratch     []byte
	pending     []byte
}

func newStream(p *host.Processor, clip *audiofile.Clip, block int, tail float64) *stream {
	return &stream{
		p:     p,
		clip:  clip,
		block: block,
		total: clip.Len() + int(tail*float64(clip.SampleRate)),
	}
}

// Position returns the number of frames rendered so far.
func (s *stream) Position() int { return s.pos }

// Frames returns the total number of frames the stream produces.
func (s *stream) Frames() int { return s.total }

func (s *stream) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		if len(s.pending) == 0 {
			if s.pos >= s.total {
				break
			}
			if err := s.render(); err != nil {
				return n, err
			}
		}

		c := copy(b[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.pos >= s.total {
		return 0, io.EOF
	}
	return n, nil
}

func (s *stream) render() error {
	frames := min(s.block, s.total-s.pos)
	s.left = core.EnsureLen(s.left, frames)
	s.right = core.EnsureLen(s.right, frames)
	left, right := s.left, s.right

	for i := range frames {
		if j := s.pos + i; j < s.clip.Len() {
			left[i], right[i] = s.clip.Left[j], s.clip.Right[j]
		} else {
			left[i], right[i] = 0, 0
		}
	}

	if err := s.p.ProcessBlock(left, right); err != nil {
		return err
	}
	s.pos += frames

	s.scratch = core.EnsureLen(s.scratch, frames*bytesPerFrame)
	buf := s.scratch
	for i := range frames {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFrame:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(buf[i*bytesPerFrame+4:], math.Float32bits(float32(right[i])))
	}
	s.pending = buf

	return nil
}
