// Package audiofile loads WAV and FLAC files into normalized stereo clips and
// writes clips back out as PCM WAV.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/GeoffreyPlitt/debuggo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

var debug = debuggo.Debug("dsp256:audiofile")

var (
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	ErrInvalidFile       = errors.New("audiofile: invalid file")
)

const wavFormatPCM = 1

// Clip is a stereo signal normalized to [-1, 1]. Mono sources are duplicated
// into both channels.
type Clip struct {
	Left       []float64
	Right      []float64
	SampleRate int
}

// Len returns the number of frames.
func (c *Clip) Len() int { return len(c.Left) }

// Seconds returns the clip duration.
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Len()) / float64(c.SampleRate)
}

// Load decodes a .wav or .flac file selected by extension.
func Load(path string) (*Clip, error) {
	var (
		clip *Clip
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		clip, err = loadWAV(path)
	case ".flac":
		clip, err = loadFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: .wav, .flac)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	debug("loaded %s: %d frames at %d Hz", path, clip.Len(), clip.SampleRate)
	return clip, nil
}

func loadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a WAV file", ErrInvalidFile, path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s uses WAV format %d, only PCM is read",
			ErrUnsupportedFormat, path, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: read %s: %w", path, err)
	}

	scale, offset, err := pcmScale(int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %s has no channels", ErrInvalidFile, path)
	}

	frames := len(buf.Data) / channels
	clip := newClip(frames, buf.Format.SampleRate)
	for i := range frames {
		clip.Left[i] = float64(buf.Data[i*channels]-offset) / scale
		if channels > 1 {
			clip.Right[i] = float64(buf.Data[i*channels+1]-offset) / scale
		} else {
			clip.Right[i] = clip.Left[i]
		}
	}

	return clip, nil
}

func loadFLAC(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open %s: %w", path, err)
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.NChannels == 0 {
		return nil, fmt.Errorf("%w: %s has no stream info", ErrInvalidFile, path)
	}

	scale, _, err := pcmScale(int(info.BitsPerSample))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	clip := newClip(0, int(info.SampleRate))
	if info.NSamples > 0 {
		clip.Left = make([]float64, 0, info.NSamples)
		clip.Right = make([]float64, 0, info.NSamples)
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audiofile: read FLAC frame from %s: %w", path, err)
		}

		left := frame.Subframes[0].Samples
		right := left
		if len(frame.Subframes) > 1 {
			right = frame.Subframes[1].Samples
		}
		for i := range left {
			clip.Left = append(clip.Left, float64(left[i])/scale)
			clip.Right = append(clip.Right, float64(right[i])/scale)
		}
	}

	return clip, nil
}

// pcmScale returns the full-scale divisor and the zero offset for integer
// PCM of the given depth. 8-bit WAV is unsigned.
func pcmScale(bitDepth int) (scale float64, offset int, err error) {
	switch bitDepth {
	case 8:
		return 128, 128, nil
	case 16, 24, 32:
		return math.Exp2(float64(bitDepth - 1)), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}

func newClip(frames, sampleRate int) *Clip {
	return &Clip{
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
		SampleRate: sampleRate,
	}
}

// SaveWAV writes clip as interleaved stereo PCM at bitDepth (16, 24 or 32).
// Samples outside [-1, 1] are clipped.
func SaveWAV(path string, clip *Clip, bitDepth int, opts ...SaveOption) error {
	if clip == nil || len(clip.Left) != len(clip.Right) || clip.SampleRate <= 0 {
		return fmt.Errorf("%w: clip must have equal channels and a positive sample rate", ErrInvalidFile)
	}
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d-bit output", ErrUnsupportedFormat, bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: create %s: %w", path, err)
	}

	var cfg saveConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	q := newQuantizer(bitDepth, cfg.rng)
	data := make([]int, 2*clip.Len())
	for i := range clip.Len() {
		data[2*i] = q.quantize(clip.Left[i])
		data[2*i+1] = q.quantize(clip.Right[i])
	}

	enc := wav.NewEncoder(f, clip.SampleRate, bitDepth, 2, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: finalize %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audiofile: close %s: %w", path, err)
	}

	debug("wrote %s: %d frames, %d-bit", path, clip.Len(), bitDepth)
	return nil
}
