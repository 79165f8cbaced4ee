// Package response computes the magnitude response of a rendered impulse
// response and the energy it carries in frequency bands.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidBand       = errors.New("response: band edges must satisfy 0 <= lo < hi")
)

const (
	minFFTSize = 16
	floorDB    = -200
)

// Response is the one-sided magnitude spectrum of an impulse response,
// zero-padded to a power of two.
type Response struct {
	sampleRate float64
	size       int
	magnitude  []float64
}

// Analyze transforms ir.
func Analyze(ir []float64, sampleRate float64) (*Response, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	n := max(minFFTSize, 1<<bits.Len(uint(len(ir)-1)))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range ir {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("response: forward FFT: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(buf[k])
		im[k] = imag(buf[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Response{sampleRate: sampleRate, size: n, magnitude: mag}, nil
}

// Size returns the FFT length.
func (r *Response) Size() int { return r.size }

// Bins returns the number of one-sided bins (Size/2 + 1).
func (r *Response) Bins() int { return len(r.magnitude) }

// BinFrequency returns the centre frequency of bin k in Hz.
func (r *Response) BinFrequency(k int) float64 {
	return float64(k) * r.sampleRate / float64(r.size)
}

// Magnitude returns a copy of the linear magnitude per bin.
func (r *Response) Magnitude() []float64 {
	out := make([]float64, len(r.magnitude))
	copy(out, r.magnitude)
	return out
}

func (r *Response) bin(hz float64) int {
	k := int(math.Round(hz * float64(r.size) / r.sampleRate))
	return min(max(k, 0), len(r.magnitude)-1)
}

// MagnitudeDB returns the magnitude of the bin nearest hz in dB, floored
// at -200 dB.
func (r *Response) MagnitudeDB(hz float64) float64 {
	m := r.magnitude[r.bin(hz)]
	if m <= 0 {
		return floorDB
	}
	return math.Max(floorDB, 20*math.Log10(m))
}

// BandEnergy sums the squared magnitude of the bins from lo to hi Hz,
// both inclusive, normalized by the FFT length.
func (r *Response) BandEnergy(lo, hi float64) (float64, error) {
	if lo < 0 || hi <= lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidBand, lo, hi)
	}

	band := r.magnitude[r.bin(lo) : r.bin(hi)+1]
	return vecmath.DotProduct(band, band) / float64(r.size), nil
}

// BandRatioDB compares the energy of a high band to a low band in dB. A
// damped reverb reads negative.
func (r *Response) BandRatioDB(lowLo, lowHi, highLo, highHi float64) (float64, error) {
	low, err := r.BandEnergy(lowLo, lowHi)
	if err != nil {
		return 0, err
	}
	high, err := r.BandEnergy(highLo, highHi)
	if err != nil {
		return 0, err
	}

	switch {
	case low <= 0 && high <= 0:
		return 0, nil
	case low <= 0:
		return math.Inf(1), nil
	case high <= 0:
		return math.Inf(-1), nil
	}
	return 10 * math.Log10(high/low), nil
}
