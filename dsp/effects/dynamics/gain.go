package dynamics

import (
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// masterGainExponent is an empirical loudness compensation applied to the
// full-scale curve output.
const masterGainExponent = 0.6

// masterGain normalizes the curve so a full-scale input lands at a sensible
// level, then applies the post gain.
func masterGain(curve *staticCurve, postGainDB float64) float64 {
	fullLevel := curve.eval(1)
	return core.DBToLinear(postGainDB) * math.Pow(1/fullLevel, masterGainExponent)
}
