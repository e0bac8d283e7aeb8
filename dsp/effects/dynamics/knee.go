package dynamics

import (
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

const (
	kneeInitialK   = 5.0
	kneeMinK       = 0.1
	kneeMaxK       = 10000.0
	kneeIterations = 15
)

// staticCurve is the solved static gain curve for one parameter set.
type staticCurve struct {
	thresholdDB      float64
	kneeDB           float64
	slope            float64 // 1/ratio
	linThreshold     float64
	linThresholdKnee float64
	k                float64 // knee sharpness
	kneeDBOffset     float64 // curve level at the top of the knee
}

// kneeCurve is an exponential approach above the threshold whose initial
// slope is 1 and whose asymptotic rise is 1/k.
func kneeCurve(x, k, linThreshold float64) float64 {
	return linThreshold + (1-math.Exp(-k*(x-linThreshold)))/k
}

// kneeSlope is the dB-domain slope of kneeCurve at x. It decreases
// monotonically as k grows.
func kneeSlope(x, k, linThreshold float64) float64 {
	return k * x / ((k*linThreshold+1)*math.Exp(k*(x-linThreshold)) - 1)
}

// solveCurve derives the static curve for threshold/knee/ratio. With a
// knee, k is found by a geometric bisection so that the knee's dB slope at
// its upper edge equals 1/ratio.
func solveCurve(thresholdDB, kneeDB, ratio float64) staticCurve {
	c := staticCurve{
		thresholdDB:  thresholdDB,
		kneeDB:       kneeDB,
		slope:        1 / ratio,
		linThreshold: core.DBToLinear(thresholdDB),
		k:            kneeInitialK,
	}

	if kneeDB <= 0 {
		return c
	}

	xKnee := core.DBToLinear(thresholdDB + kneeDB)
	minK, maxK := kneeMinK, kneeMaxK
	k := kneeInitialK
	for range kneeIterations {
		if kneeSlope(xKnee, k, c.linThreshold) < c.slope {
			maxK = k
		} else {
			minK = k
		}
		k = math.Sqrt(minK * maxK)
	}

	c.k = k
	c.kneeDBOffset = core.LinearToDB(kneeCurve(xKnee, k, c.linThreshold))
	c.linThresholdKnee = xKnee

	return c
}

// eval maps an input amplitude to its compressed amplitude.
func (c *staticCurve) eval(x float64) float64 {
	if x < c.linThreshold {
		return x
	}

	if c.kneeDB <= 0 {
		return core.DBToLinear(c.thresholdDB + c.slope*(core.LinearToDB(x)-c.thresholdDB))
	}

	if x < c.linThresholdKnee {
		return kneeCurve(x, c.k, c.linThreshold)
	}

	return core.DBToLinear(c.kneeDBOffset + c.slope*(core.LinearToDB(x)-c.thresholdDB-c.kneeDB))
}
