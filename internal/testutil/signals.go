// Package testutil holds deterministic signal builders and tolerance
// assertions shared by package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Stereo builds a sound from separate channel slices; the shorter one
// sets the length.
func Stereo(rate int, l, r []float64) *buffer.Sound {
	n := min(len(l), len(r))
	snd := &buffer.Sound{Rate: rate, Samples: make([]buffer.Sample, n)}
	for i := range n {
		snd.Samples[i] = buffer.Sample{L: l[i], R: r[i]}
	}
	return snd
}

// Mono builds a sound carrying x on both channels.
func Mono(rate int, x []float64) *buffer.Sound {
	return Stereo(rate, x, x)
}

// ConstantSound returns n samples of value on both channels.
func ConstantSound(rate, n int, value float64) *buffer.Sound {
	return Mono(rate, DC(value, n))
}

// NoiseSound returns seeded, decorrelated white noise on each channel.
func NoiseSound(rate, n int, seed int64, amplitude float64) *buffer.Sound {
	return Stereo(rate, DeterministicNoise(seed, amplitude, n), DeterministicNoise(seed+1, amplitude, n))
}
