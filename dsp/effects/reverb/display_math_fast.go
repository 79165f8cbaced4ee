//go:build fastmath

package reverb

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const ln10 = 2.302585092994045684017991454684

// gainToDB converts a level to dB with a -100 dB floor using a fast log
// approximation. Only the status display uses it.
func gainToDB(gain float32) float32 {
	if gain <= 0 {
		return tailFloorDB
	}
	db := 20 * approx.FastLog(float64(gain)) / ln10
	return float32(math.Max(tailFloorDB, db))
}
