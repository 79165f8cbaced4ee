// Package delay provides the circular buffers behind the reverb network:
// a float pre-delay line and fixed-point taps with a guard cell.
package delay
