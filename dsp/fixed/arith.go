package fixed

// Mul multiplies two Q12 values through a 64-bit intermediate and rebases
// the product to Q12. The flag reports saturation.
func Mul(a, b Sample) (Sample, bool) {
	product := (int64(a) * int64(b)) >> FracBits
	return Saturate(product)
}

// MulAcc computes a*b + c in Q12 (the DSP's MAC instruction). The flag
// reports saturation of the final sum.
func MulAcc(a, b, c Sample) (Sample, bool) {
	result := ((int64(a) * int64(b)) >> FracBits) + int64(c)
	return Saturate(result)
}

// MulSat is Mul without the overflow flag.
func MulSat(a, b Sample) Sample {
	s, _ := Mul(a, b)
	return s
}

// MulAccSat is MulAcc without the overflow flag.
func MulAccSat(a, b, c Sample) Sample {
	s, _ := MulAcc(a, b, c)
	return s
}

// Add adds two samples with saturation.
func Add(a, b Sample) Sample {
	s, _ := Saturate(int64(a) + int64(b))
	return s
}
