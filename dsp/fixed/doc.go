// Package fixed emulates the 20-bit Q12 arithmetic of the HISC-style DSP
// the reverb was designed for.
//
// A Sample carries a signed value with 12 fractional bits inside a 20-bit
// span ([-2^19, 2^19-1], roughly ±128.0). Every operation saturates instead
// of wrapping, and the multiply paths report whether saturation happened.
// Results are bit-reproducible for a given input sequence.
package fixed
