package ir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
	ErrLengthMismatch    = errors.New("ir: channel lengths differ")
)

const (
	// DefaultOnsetThreshold is the fraction of the peak that marks the onset.
	DefaultOnsetThreshold = 0.1

	silenceDB = -200
)

// Metrics holds the analysis of one channel.
type Metrics struct {
	RT60       float64 // T30, or T20 when the response does not reach -35 dB
	EDT        float64
	T20        float64
	T30        float64
	C80        float64 // dB
	D50        float64 // ratio 0-1
	CenterTime float64 // seconds after onset
	Onset      int     // first sample at or above the onset threshold
	Peak       float64
}

// Analyzer computes decay metrics at a fixed sample rate.
type Analyzer struct {
	sampleRate     float64
	onsetThreshold float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithOnsetThreshold sets the fraction of the peak that marks the onset.
// Values outside (0, 1] are ignored.
func WithOnsetThreshold(ratio float64) Option {
	return func(a *Analyzer) {
		if ratio > 0 && ratio <= 1 {
			a.onsetThreshold = ratio
		}
	}
}

// NewAnalyzer returns an analyzer for responses sampled at sampleRate.
func NewAnalyzer(sampleRate float64, opts ...Option) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	a := &Analyzer{sampleRate: sampleRate, onsetThreshold: DefaultOnsetThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// SampleRate returns the analyzer's sample rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Analyze measures one channel. A silent response yields ErrNoDecay.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	peak := vecmath.MaxAbs(ir)
	if peak == 0 {
		return Metrics{}, ErrNoDecay
	}

	onset := a.onset(ir, peak)
	tail := ir[onset:]
	curve := DecayCurve(tail)

	m := Metrics{
		Peak:       peak,
		Onset:      onset,
		EDT:        a.decayTime(curve, 0, -10),
		T20:        a.decayTime(curve, -5, -25),
		T30:        a.decayTime(curve, -5, -35),
		C80:        a.clarity(tail, 80),
		D50:        a.definition(tail, 50),
		CenterTime: a.centerTime(tail),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	if m.RT60 == 0 {
		return m, ErrNoDecay
	}

	return m, nil
}

// InterauralCorrelation returns the normalized zero-lag cross-correlation
// of two channels in [-1, 1]. Silent input returns 0.
func InterauralCorrelation(left, right []float64) (float64, error) {
	if len(left) != len(right) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(left), len(right))
	}
	if len(left) == 0 {
		return 0, ErrEmptyIR
	}

	el := energy(left)
	er := energy(right)
	if el == 0 || er == 0 {
		return 0, nil
	}
	return vecmath.DotProduct(left, right) / math.Sqrt(el*er), nil
}

// DecayCurve returns the Schroeder backward integral of ir in dB relative
// to its total energy:
//
//	S(n) = 10*log10( sum_{k>=n} h[k]^2 / sum_k h[k]^2 )
//
// Samples after the energy runs out read -200 dB.
func DecayCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var remaining float64
	for i := len(ir) - 1; i >= 0; i-- {
		remaining += ir[i] * ir[i]
		curve[i] = remaining
	}

	if len(curve) == 0 || curve[0] <= 0 {
		return curve
	}

	total := curve[0]
	for i, e := range curve {
		if e <= 0 {
			curve[i] = silenceDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}

	return curve
}

// decayTime fits a line to the curve between fromDB and toDB and
// extrapolates it to -60 dB. It returns 0 when the curve never spans the
// range or does not fall.
func (a *Analyzer) decayTime(curve []float64, fromDB, toDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= fromDB {
			start = i
		}
		if start >= 0 && v <= toDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	slope := regressionSlope(curve[start : end+1])
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.sampleRate)
}

// regressionSlope is the least-squares slope of y over its index.
func regressionSlope(y []float64) float64 {
	n := float64(len(y))

	var sumX, sumY, sumXX, sumXY float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXX += x * x
		sumXY += x * v
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func (a *Analyzer) boundary(ms float64) int {
	return int(math.Round(ms * 0.001 * a.sampleRate))
}

// clarity is the early-to-late energy ratio around ms in dB.
func (a *Analyzer) clarity(ir []float64, ms float64) float64 {
	b := min(a.boundary(ms), len(ir))

	early := energy(ir[:b])
	late := energy(ir[b:])

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(early/late)
}

// definition is the energy fraction arriving before ms.
func (a *Analyzer) definition(ir []float64, ms float64) float64 {
	b := min(a.boundary(ms), len(ir))

	total := energy(ir)
	if total <= 0 {
		return 0
	}
	return energy(ir[:b]) / total
}

// centerTime is the energy centroid in seconds.
func (a *Analyzer) centerTime(ir []float64) float64 {
	var weighted, total float64
	for i, v := range ir {
		e := v * v
		weighted += float64(i) * e
		total += e
	}
	if total <= 0 {
		return 0
	}
	return weighted / total / a.sampleRate
}

func energy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.DotProduct(x, x)
}

func (a *Analyzer) onset(ir []float64, peak float64) int {
	threshold := peak * a.onsetThreshold
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}
