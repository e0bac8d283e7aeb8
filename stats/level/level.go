package level

import (
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
)

// Channel holds level statistics for one channel.
//
//nolint:revive
type Channel struct {
	DC             float64 // mean
	Peak           float64 // max(|x|)
	Peak_dB        float64
	PeakPos        int
	RMS            float64
	RMS_dB         float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
}

// Levels holds level statistics for a stereo sound. The stereo RMS is the
// RMS over both channels; the stereo peak is the larger channel peak.
//
//nolint:revive
type Levels struct {
	Length         int
	Left           Channel
	Right          Channel
	Peak           float64
	Peak_dB        float64
	RMS            float64
	RMS_dB         float64
	CrestFactor    float64
	CrestFactor_dB float64
}

// Change describes how processing moved the level of a sound. Negative
// values mean the output is lower or less peaky than the input.
//
//nolint:revive
type Change struct {
	Peak_dB        float64
	RMS_dB         float64
	CrestFactor_dB float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func crest(peak, rms float64) (float64, float64) {
	if rms == 0 {
		return 0, 0
	}

	c := peak / rms

	return c, ampTodB(c)
}

func emptyChannel() Channel {
	return Channel{
		Peak_dB: math.Inf(-1),
		RMS_dB:  math.Inf(-1),
	}
}

func analyzeChannel(x []float64) Channel {
	if len(x) == 0 {
		return emptyChannel()
	}

	var (
		sum, c  float64
		sumSq   float64
		peak    float64
		peakPos int
	)

	for i, v := range x {
		// Kahan summation for the mean.
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += v * v

		if a := math.Abs(v); a > peak {
			peak = a
			peakPos = i
		}
	}

	nf := float64(len(x))
	rms := math.Sqrt(sumSq / nf)
	cf, cfdB := crest(peak, rms)

	return Channel{
		DC:             sum / nf,
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		PeakPos:        peakPos,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		CrestFactor:    cf,
		CrestFactor_dB: cfdB,
	}
}

// Analyze computes the level statistics of snd.
func Analyze(snd *buffer.Sound) Levels {
	n := snd.Len()
	if n == 0 {
		return Levels{
			Left:    emptyChannel(),
			Right:   emptyChannel(),
			Peak_dB: math.Inf(-1),
			RMS_dB:  math.Inf(-1),
		}
	}

	l, r := snd.Channels()
	out := Levels{
		Length: n,
		Left:   analyzeChannel(l),
		Right:  analyzeChannel(r),
	}

	power := make([]float64, n)
	vecmath.Power(power, l, r)

	var energy float64
	for _, p := range power {
		energy += p
	}

	out.Peak = math.Max(out.Left.Peak, out.Right.Peak)
	out.Peak_dB = ampTodB(out.Peak)
	out.RMS = math.Sqrt(energy / float64(2*n))
	out.RMS_dB = ampTodB(out.RMS)
	out.CrestFactor, out.CrestFactor_dB = crest(out.Peak, out.RMS)

	return out
}

// GainChange returns the stereo level change from in to out.
func GainChange(in, out Levels) Change {
	return Change{
		Peak_dB:        out.Peak_dB - in.Peak_dB,
		RMS_dB:         out.RMS_dB - in.RMS_dB,
		CrestFactor_dB: out.CrestFactor_dB - in.CrestFactor_dB,
	}
}
