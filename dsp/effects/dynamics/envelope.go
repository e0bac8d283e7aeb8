package dynamics

import (
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/core"
)

const (
	chunkSize = 32

	// spacingDB is how far one release period moves the gain.
	spacingDB = 5.0
	// attackFloorDB keeps the attack rate finite for tiny differences.
	attackFloorDB = 0.5

	satReleaseSeconds = 0.0025
	satReleaseFloorDB = 2.0

	meterFalloffSeconds = 0.325
	// meterFloorDB keeps the meter finite if the gain state reaches zero.
	meterFloorDB = -120.0

	silenceFloor = 0.0001

	ang90    = math.Pi * 0.5
	ang90Inv = 2 / math.Pi
)

// envelope is the state carried from sample to sample during one run.
// The update order in step is part of the algorithm: the detector moves
// first, then the gain moves toward the target fixed at chunk start.
type envelope struct {
	detectorAvg   float64
	compGain      float64
	maxCompDiffDB float64 // -1 after a release, running max while attacking
	meterGain     float64 // dB, starts above any reachable premix level

	// fixed for the current chunk
	scaledDesired float64
	rate          float64
}

func newEnvelope() envelope {
	return envelope{
		compGain:      1,
		maxCompDiffDB: -1,
		meterGain:     1,
	}
}

// beginChunk chooses attack or release for the next chunk and derives the
// per-sample envelope rate from the current detector average.
func (e *envelope) beginChunk(c *Compressor) {
	// Pre-warp so the sine in step yields the detector average.
	e.scaledDesired = math.Asin(e.detectorAvg) * ang90Inv
	compDiffDB := core.LinearToDB(e.compGain / e.scaledDesired)
	if !core.IsFinite(compDiffDB) {
		// The detector is still empty on the first chunk: no target yet.
		// Releasing keeps +Inf out of the attack tracker.
		compDiffDB = -1
	}

	if compDiffDB < 0 {
		// Gain is below target: release along the adaptive curve.
		e.maxCompDiffDB = -1
		releaseSamples := c.release.eval(releaseIndex(compDiffDB))
		e.rate = core.DBToLinear(spacingDB / releaseSamples)
		return
	}

	if e.maxCompDiffDB == -1 || e.maxCompDiffDB < compDiffDB {
		e.maxCompDiffDB = compDiffDB
	}
	attenuate := e.maxCompDiffDB
	if attenuate < attackFloorDB {
		attenuate = attackFloorDB
	}
	e.rate = 1 - math.Pow(0.25/attenuate, c.attackSamplesInv)
}

// step advances the detector and gain state by one undelayed input sample
// and returns the gain to apply to the delayed program sample.
func (e *envelope) step(in buffer.Sample, c *Compressor) float64 {
	inputMax := core.StereoPeak(in.L, in.R)

	var attenuation float64
	if inputMax < silenceFloor {
		attenuation = 1
	} else {
		attenuation = c.curve.eval(inputMax) / inputMax
	}

	var rate float64
	if attenuation > e.detectorAvg {
		attenuationDB := -core.LinearToDB(attenuation)
		if attenuationDB < satReleaseFloorDB {
			attenuationDB = satReleaseFloorDB
		}
		rate = core.DBToLinear(attenuationDB*c.satReleaseSamplesInv) - 1
	} else {
		rate = 1
	}

	e.detectorAvg += (attenuation - e.detectorAvg) * rate
	if e.detectorAvg > 1 {
		e.detectorAvg = 1
	}

	if e.rate < 1 {
		e.compGain += (e.scaledDesired - e.compGain) * e.rate
	} else {
		e.compGain *= e.rate
		if e.compGain > 1 {
			e.compGain = 1
		}
	}

	premix := math.Sin(ang90 * e.compGain)
	gain := c.dry + c.wet*c.masterGain*premix

	premixDB := core.LinearToDB(premix)
	if premixDB < meterFloorDB {
		premixDB = meterFloorDB
	}
	if premixDB < e.meterGain {
		e.meterGain = premixDB
	} else {
		e.meterGain += (premixDB - e.meterGain) * c.meterRelease
	}

	return gain
}
