// Package reverb implements the hall reverb engine of the emulated
// multi-effect DSP.
//
// Hall is a Schroeder-Moorer network: a pre-delay line, eight early
// reflection taps, four parallel comb filters, two series allpass
// diffusers and a one-pole damping filter. Delay memory is Q12 fixed
// point and every stage requantizes its output, so the result carries the
// same quantization as the hardware it models. Coefficients are derived in
// float32 and quantized once per parameter change.
package reverb
