// Package ir measures rendered impulse responses of the reverb.
//
// Decay times come from the Schroeder backward integral of the squared
// response (EDT from 0 to -10 dB, T20 from -5 to -25 dB, T30 from -5 to
// -35 dB, each extrapolated to -60 dB). Energy ratios (C80, D50), the
// centre time and the interaural correlation of stereo responses are
// computed from the onset of the response.
//
//	a, _ := ir.NewAnalyzer(44100)
//	m, err := a.Analyze(response)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
