package fixed

// DefaultDCCoeff is the pole of the input DC filter.
const DefaultDCCoeff float32 = 0.999

// Engine bundles the stateless arithmetic with the few settings the
// emulated DSP core carries between calls. Filter state lives with the
// caller so one engine can serve every stream.
type Engine struct {
	sampleRate float64
	dcCoeff    float32
}

// NewEngine returns an engine prepared for 44.1 kHz.
func NewEngine() *Engine {
	e := &Engine{}
	e.Prepare(44100)
	return e
}

// Prepare stores the sample rate and restores the default coefficients.
func (e *Engine) Prepare(sampleRate float64) {
	e.sampleRate = sampleRate
	e.dcCoeff = DefaultDCCoeff
}

// SampleRate returns the rate given to Prepare.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// DCBlock runs the single-pole DC filter on input. state holds the previous
// input in floating point and belongs to one stream.
//
//	out = in - state + coeff*state
func (e *Engine) DCBlock(input Sample, state *float32) Sample {
	in := input.Float()
	// Explicit float32 conversions keep the product unfused.
	out := in - *state + float32(e.dcCoeff**state)
	*state = in
	return FromFloat(out)
}
