//go:build !fastmath

package reverb

import "github.com/cwbudde/dsp256/dsp/core"

// gainToDB converts a level to dB with a -100 dB floor.
func gainToDB(gain float32) float32 {
	return float32(core.GainToDB(float64(gain), tailFloorDB))
}
