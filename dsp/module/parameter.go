package module

import "math"

// Parameter describes one host-visible control. Min, Max, Default and Step
// are in display units; the engine itself works on normalized values.
type Parameter struct {
	ID          string
	Name        string
	Label       string
	Unit        string
	Min         float64
	Max         float64
	Default     float64
	Step        float64
	Logarithmic bool
}

// Normalize maps a display value to [0, 1].
func (p Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min || math.IsNaN(plain) {
		return 0
	}

	var n float64
	if p.Logarithmic && p.Min > 0 {
		n = math.Log(plain/p.Min) / math.Log(p.Max/p.Min)
		if math.IsNaN(n) {
			n = 0
		}
	} else {
		n = (plain - p.Min) / (p.Max - p.Min)
	}

	return min(max(n, 0), 1)
}

// Denormalize maps a normalized value to display units.
func (p Parameter) Denormalize(normalized float64) float64 {
	normalized = min(max(normalized, 0), 1)
	if p.Logarithmic && p.Min > 0 {
		return p.Min * math.Pow(p.Max/p.Min, normalized)
	}
	return p.Min + normalized*(p.Max-p.Min)
}

// DefaultNormalized returns Default mapped to [0, 1].
func (p Parameter) DefaultNormalized() float64 {
	return p.Normalize(p.Default)
}
